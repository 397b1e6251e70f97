package zerowidth

import (
	"fmt"

	"github.com/redactyl/zerowidth/internal/strip"
	"github.com/spf13/cobra"
)

var flagStripWrite bool

func init() {
	cmd := &cobra.Command{
		Use:   "strip [file...]",
		Short: "Remove hidden payloads from text or files",
		Long: "With no files, strip cleans stdin and writes it to stdout. With files, it\n" +
			"lists the ones that contain hidden runs and rewrites them with --write.",
		RunE: runStrip,
	}
	cmd.Flags().BoolVarP(&flagStripWrite, "write", "w", false, "rewrite files in place")
	rootCmd.AddCommand(cmd)
}

func runStrip(cmd *cobra.Command, args []string) error {
	d := currentDetector()
	out := cmd.OutOrStdout()
	if len(args) == 0 {
		text, err := readInput(cmd, nil)
		if err != nil {
			return err
		}
		clean, n := strip.Text(d, text)
		current.log.Info("stripped", "runs", n)
		_, err = fmt.Fprintln(out, clean)
		return err
	}
	changed := 0
	for _, p := range args {
		var (
			ok  bool
			err error
		)
		if flagStripWrite {
			ok, err = strip.Apply(p, d)
		} else {
			ok, err = strip.WouldChange(p, d)
		}
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		changed++
		if flagStripWrite {
			fmt.Fprintln(out, "stripped", p)
		} else {
			fmt.Fprintln(out, "would strip", p)
		}
	}
	if changed > 0 && !flagStripWrite {
		fmt.Fprintln(cmd.ErrOrStderr(), "re-run with --write to modify files")
	}
	return nil
}

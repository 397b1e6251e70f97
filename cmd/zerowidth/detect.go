package zerowidth

import (
	"fmt"
	"io"

	"github.com/redactyl/zerowidth/internal/stego"
	"github.com/spf13/cobra"
)

var (
	flagDetectStats     bool
	flagDetectClipboard bool
)

func init() {
	cmd := &cobra.Command{
		Use:   "detect [text...]",
		Short: "Find and decode payloads hidden in text",
		Long: "Detect splits the input into maximal runs of alphabet symbols and decodes\n" +
			"each. Runs that do not decode are skipped; --stats shows them.",
		RunE: runDetect,
	}
	cmd.Flags().BoolVar(&flagDetectStats, "stats", false, "report every run, including ones that do not decode")
	cmd.Flags().BoolVar(&flagDetectClipboard, "clipboard", false, "read the text from the clipboard")
	rootCmd.AddCommand(cmd)
}

type runJSON struct {
	Start   int    `json:"start"`
	End     int    `json:"end"`
	Symbols int    `json:"symbols"`
	Decoded string `json:"decoded,omitempty"`
	Error   string `json:"error,omitempty"`
}

func runDetect(cmd *cobra.Command, args []string) error {
	var (
		text string
		err  error
	)
	if flagDetectClipboard {
		text, err = readClipboard()
		if err != nil {
			return fmt.Errorf("clipboard: %w", err)
		}
	} else if text, err = readInput(cmd, args); err != nil {
		return err
	}
	res := currentDetector().DetectWithStats(text)
	for _, rr := range res.Runs {
		if !rr.OK() {
			current.log.Info("run skipped", "start", rr.Start, "symbols", rr.Len(), "error", rr.Err)
		}
	}
	out := cmd.OutOrStdout()
	switch {
	case flagJSON && flagDetectStats:
		runs := make([]runJSON, 0, len(res.Runs))
		for _, rr := range res.Runs {
			r := runJSON{Start: rr.Start, End: rr.End, Symbols: rr.Len(), Decoded: rr.Decoded}
			if rr.Err != nil {
				r.Error = rr.Err.Error()
			}
			runs = append(runs, r)
		}
		return writeJSON(out, map[string]any{"payloads": res.Payloads, "runs": runs, "skipped": res.Skipped})
	case flagJSON:
		return writeJSON(out, res.Payloads)
	case flagDetectStats:
		printRunStats(out, res)
		return nil
	}
	for _, p := range res.Payloads {
		if _, err := fmt.Fprintln(out, p); err != nil {
			return err
		}
	}
	return nil
}

func printRunStats(w io.Writer, res stego.Result) {
	fmt.Fprintf(w, "runs: %d, decoded: %d, skipped: %d\n", len(res.Runs), len(res.Payloads), res.Skipped)
	for _, rr := range res.Runs {
		if rr.OK() {
			fmt.Fprintf(w, "  [%d:%d] %d symbols  %q\n", rr.Start, rr.End, rr.Len(), rr.Decoded)
		} else {
			fmt.Fprintf(w, "  [%d:%d] %d symbols  skipped: %v\n", rr.Start, rr.End, rr.Len(), rr.Err)
		}
	}
}

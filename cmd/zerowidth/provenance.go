package zerowidth

import (
	"fmt"

	"github.com/redactyl/zerowidth/internal/provenance"
	"github.com/spf13/cobra"
)

var flagProvenanceClipboard bool

func init() {
	cmd := &cobra.Command{
		Use:   "provenance [text...]",
		Short: "Show provenance records hidden in text",
		RunE:  runProvenance,
	}
	cmd.Flags().BoolVar(&flagProvenanceClipboard, "clipboard", false, "read the text from the clipboard")
	rootCmd.AddCommand(cmd)
}

func runProvenance(cmd *cobra.Command, args []string) error {
	var (
		text string
		err  error
	)
	if flagProvenanceClipboard {
		if text, err = readClipboard(); err != nil {
			return fmt.Errorf("clipboard: %w", err)
		}
	} else if text, err = readInput(cmd, args); err != nil {
		return err
	}
	recs, rejected := provenance.Parse(currentDetector().Detect(text))
	if rejected > 0 {
		current.log.Info("payloads are not provenance records", "count", rejected)
	}
	if flagJSON {
		if recs == nil {
			recs = []provenance.Record{}
		}
		return writeJSON(cmd.OutOrStdout(), recs)
	}
	out := cmd.OutOrStdout()
	if len(recs) == 0 {
		fmt.Fprintln(out, "No provenance records found")
		return nil
	}
	for _, r := range recs {
		when := r.Date
		if t := r.Time(); !t.IsZero() {
			when = t.Local().Format("2006-01-02 15:04:05")
		}
		note := ""
		if !r.Compatible() {
			note = ", unsupported version"
		}
		fmt.Fprintf(out, "copied from %s at %s (v%s%s)\n  %q\n", r.Href, when, r.Version, note, r.Original)
	}
	return nil
}

package zerowidth

import (
	"fmt"
	"time"

	"github.com/redactyl/zerowidth/internal/provenance"
	"github.com/spf13/cobra"
)

var (
	flagHref           string
	flagStampClipboard bool
	now                = time.Now
)

func init() {
	cmd := &cobra.Command{
		Use:   "stamp [text...]",
		Short: "Embed an invisible provenance record into text",
		Long: "Stamp hides a JSON record of the text, its source and the current time\n" +
			"inside the text itself. The provenance command reads it back.",
		RunE: runStamp,
	}
	cmd.Flags().StringVar(&flagHref, "href", "", "source URL recorded in the stamp (default from config provenance.href)")
	cmd.Flags().BoolVar(&flagStampClipboard, "clipboard", false, "also copy the result to the clipboard")
	rootCmd.AddCommand(cmd)
}

func runStamp(cmd *cobra.Command, args []string) error {
	text, err := readInput(cmd, args)
	if err != nil {
		return err
	}
	href := flagHref
	if href == "" {
		href = current.local.Href()
	}
	if href == "" {
		href = current.global.Href()
	}
	out, err := provenance.Stamp(currentCodec(), text, href, now())
	if err != nil {
		return err
	}
	if flagStampClipboard {
		if err := writeClipboard(out); err != nil {
			return fmt.Errorf("clipboard: %w", err)
		}
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
	return err
}

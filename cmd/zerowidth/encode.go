package zerowidth

import (
	"fmt"
	"unicode/utf8"

	"github.com/spf13/cobra"
)

var flagEncodeClipboard bool

func init() {
	cmd := &cobra.Command{
		Use:   "encode [text...]",
		Short: "Encode text into invisible symbols",
		Example: `  zerowidth encode "meet at noon"
  echo -n secret | zerowidth encode --alphabet binary`,
		RunE: runEncode,
	}
	cmd.Flags().BoolVar(&flagEncodeClipboard, "clipboard", false, "also copy the result to the clipboard")
	rootCmd.AddCommand(cmd)
}

func runEncode(cmd *cobra.Command, args []string) error {
	text, err := readInput(cmd, args)
	if err != nil {
		return err
	}
	enc := currentCodec().Encode(text)
	if flagEncodeClipboard {
		if err := writeClipboard(enc); err != nil {
			return fmt.Errorf("clipboard: %w", err)
		}
	}
	if flagJSON {
		return writeJSON(cmd.OutOrStdout(), map[string]any{
			"alphabet": current.alphabet.Name(),
			"symbols":  utf8.RuneCountInString(enc),
			"encoded":  enc,
		})
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), enc)
	return err
}

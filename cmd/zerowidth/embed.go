package zerowidth

import (
	"errors"
	"fmt"

	"github.com/redactyl/zerowidth/internal/stego"
	"github.com/spf13/cobra"
)

var (
	flagHidden         string
	flagEmbedClipboard bool
)

func init() {
	cmd := &cobra.Command{
		Use:   "embed --hidden TEXT [carrier...]",
		Short: "Hide text in the middle of a carrier text",
		Example: `  zerowidth embed --hidden "Hello World!" foo bar
  cat letter.txt | zerowidth embed --hidden "copy 17" > letter-17.txt`,
		RunE: runEmbed,
	}
	cmd.Flags().StringVarP(&flagHidden, "hidden", "H", "", "text to hide (required)")
	cmd.Flags().BoolVar(&flagEmbedClipboard, "clipboard", false, "also copy the result to the clipboard")
	rootCmd.AddCommand(cmd)
}

func runEmbed(cmd *cobra.Command, args []string) error {
	if !cmd.Flags().Changed("hidden") {
		return errors.New("--hidden is required")
	}
	carrier, err := readInput(cmd, args)
	if err != nil {
		return err
	}
	out := stego.Embed(currentCodec(), carrier, flagHidden)
	if flagEmbedClipboard {
		if err := writeClipboard(out); err != nil {
			return fmt.Errorf("clipboard: %w", err)
		}
	}
	if flagJSON {
		return writeJSON(cmd.OutOrStdout(), map[string]any{
			"alphabet": current.alphabet.Name(),
			"split":    stego.SplitIndex(carrier),
			"text":     out,
		})
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
	return err
}

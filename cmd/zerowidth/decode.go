package zerowidth

import (
	"errors"
	"fmt"

	"github.com/redactyl/zerowidth/internal/codec"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "decode [symbols...]",
		Short: "Decode a string made only of invisible symbols",
		Long: "Decode reverses encode. The input must consist solely of symbols of the\n" +
			"selected alphabet; use detect to find payloads inside ordinary text.",
		RunE: runDecode,
	})
}

func runDecode(cmd *cobra.Command, args []string) error {
	in, err := readInput(cmd, args)
	if err != nil {
		return err
	}
	out, err := currentCodec().Decode(in)
	if err != nil {
		var se *codec.InvalidSymbolError
		if errors.As(err, &se) {
			current.log.Debug("foreign rune", "symbol", fmt.Sprintf("%U", se.Symbol), "offset", se.Offset)
			return fmt.Errorf("%w (rune %U at offset %d is not in the %s alphabet; try detect)",
				codec.ErrInvalidSymbol, se.Symbol, se.Offset, current.alphabet.Name())
		}
		return err
	}
	if flagJSON {
		return writeJSON(cmd.OutOrStdout(), map[string]string{"alphabet": current.alphabet.Name(), "decoded": out})
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
	return err
}

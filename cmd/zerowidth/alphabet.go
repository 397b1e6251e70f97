package zerowidth

import (
	"fmt"

	"github.com/redactyl/zerowidth/internal/alphabet"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "alphabet [name]",
		Short: "List alphabets or describe one",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runAlphabet,
	})
}

type alphabetJSON struct {
	Name           string                `json:"name"`
	BitsPerSymbol  int                   `json:"bits_per_symbol"`
	SymbolsPerByte int                   `json:"symbols_per_byte"`
	Default        bool                  `json:"default"`
	Symbols        []alphabet.SymbolInfo `json:"symbols"`
}

func runAlphabet(cmd *cobra.Command, args []string) error {
	names := alphabet.Names()
	if len(args) == 1 {
		names = []string{args[0]}
	}
	var list []alphabetJSON
	for _, n := range names {
		a, err := alphabet.Lookup(n)
		if err != nil {
			return err
		}
		list = append(list, alphabetJSON{
			Name:           a.Name(),
			BitsPerSymbol:  a.BitsPerSymbol(),
			SymbolsPerByte: a.SymbolsPerByte(),
			Default:        a.Name() == alphabet.Default,
			Symbols:        alphabet.Describe(a),
		})
	}
	out := cmd.OutOrStdout()
	if flagJSON {
		return writeJSON(out, list)
	}
	for i, a := range list {
		if i > 0 {
			fmt.Fprintln(out)
		}
		def := ""
		if a.Default {
			def = " (default)"
		}
		fmt.Fprintf(out, "%s%s: %d bits per symbol, %d symbols per byte\n", a.Name, def, a.BitsPerSymbol, a.SymbolsPerByte)
		for _, s := range a.Symbols {
			fmt.Fprintf(out, "  %s  %s  %s\n", s.Bits, s.CodePoint, s.Name)
		}
	}
	return nil
}

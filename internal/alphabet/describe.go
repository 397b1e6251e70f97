package alphabet

import (
	"fmt"

	"golang.org/x/text/unicode/runenames"
)

// SymbolInfo describes one symbol of an alphabet for display.
type SymbolInfo struct {
	Index     int    `json:"index"`
	CodePoint string `json:"code_point"`
	Bits      string `json:"bits"`
	Name      string `json:"name"`
}

// Describe lists every symbol of a with its bit pattern and Unicode name.
func Describe(a *Alphabet) []SymbolInfo {
	out := make([]SymbolInfo, a.Size())
	for i, r := range a.symbols {
		out[i] = SymbolInfo{
			Index:     i,
			CodePoint: fmt.Sprintf("%U", r),
			Bits:      fmt.Sprintf("%0*b", a.bits, i),
			Name:      runenames.Name(r),
		}
	}
	return out
}

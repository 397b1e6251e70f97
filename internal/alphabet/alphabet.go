package alphabet

import (
	"errors"
	"fmt"
	"math/bits"
	"sort"
	"strings"
)

var (
	// ErrInvalidSize is returned when the symbol count is not a power of two
	// whose bit width divides a byte evenly.
	ErrInvalidSize = errors.New("alphabet size must be 2, 4, 16 or 256")
	// ErrDuplicateSymbol is returned when the same code point appears twice.
	ErrDuplicateSymbol = errors.New("duplicate symbol in alphabet")
	// ErrUnknownAlphabet is returned by Lookup for an unregistered name.
	ErrUnknownAlphabet = errors.New("unknown alphabet")
)

// Alphabet is an ordered set of distinct code points. The index of a symbol is
// the bit pattern it stands for.
type Alphabet struct {
	name    string
	symbols []rune
	index   map[rune]int
	bits    int
}

// New validates points and builds an Alphabet named name.
func New(name string, points ...rune) (*Alphabet, error) {
	n := len(points)
	if n < 2 || n&(n-1) != 0 {
		return nil, fmt.Errorf("%w: got %d symbols", ErrInvalidSize, n)
	}
	width := bits.TrailingZeros(uint(n))
	if 8%width != 0 {
		return nil, fmt.Errorf("%w: %d bits per symbol", ErrInvalidSize, width)
	}
	index := make(map[rune]int, n)
	for i, r := range points {
		if prev, ok := index[r]; ok {
			return nil, fmt.Errorf("%w: %U at %d and %d", ErrDuplicateSymbol, r, prev, i)
		}
		index[r] = i
	}
	symbols := make([]rune, n)
	copy(symbols, points)
	return &Alphabet{name: name, symbols: symbols, index: index, bits: width}, nil
}

// MustNew is like New but panics on an invalid alphabet. It is meant for
// package-level definitions, where a bad alphabet is a programming error.
func MustNew(name string, points ...rune) *Alphabet {
	a, err := New(name, points...)
	if err != nil {
		panic(fmt.Sprintf("alphabet %q: %v", name, err))
	}
	return a
}

// Name returns the registry name of the alphabet.
func (a *Alphabet) Name() string { return a.name }

// Size returns the number of symbols.
func (a *Alphabet) Size() int { return len(a.symbols) }

// BitsPerSymbol returns log2(Size()).
func (a *Alphabet) BitsPerSymbol() int { return a.bits }

// SymbolsPerByte returns how many symbols encode one byte.
func (a *Alphabet) SymbolsPerByte() int { return 8 / a.bits }

// SymbolAt returns the code point for index i. It panics if i is out of
// range, like a slice index.
func (a *Alphabet) SymbolAt(i int) rune { return a.symbols[i] }

// IndexOf reports the index of r and whether r belongs to the alphabet.
func (a *Alphabet) IndexOf(r rune) (int, bool) {
	i, ok := a.index[r]
	return i, ok
}

// Contains reports whether r belongs to the alphabet.
func (a *Alphabet) Contains(r rune) bool {
	_, ok := a.index[r]
	return ok
}

// Symbols returns a copy of the symbols in index order.
func (a *Alphabet) Symbols() []rune {
	out := make([]rune, len(a.symbols))
	copy(out, a.symbols)
	return out
}

func (a *Alphabet) String() string {
	parts := make([]string, len(a.symbols))
	for i, r := range a.symbols {
		parts[i] = fmt.Sprintf("%U", r)
	}
	return a.name + "[" + strings.Join(parts, ",") + "]"
}

// Known alphabets. They are not interchangeable: a payload must be decoded
// with the alphabet it was encoded with.
var (
	// Quad packs two bits per symbol.
	Quad = MustNew("quad", '\u200c', '\u200d', '\u2060', '\u2062')
	// Binary packs one bit per symbol.
	Binary = MustNew("binary", '\u200b', '\u200c')
)

// Default is the alphabet used when none is configured.
const Default = "quad"

var registry = map[string]*Alphabet{
	Quad.Name():   Quad,
	Binary.Name(): Binary,
}

// Lookup returns the registered alphabet with the given name.
func Lookup(name string) (*Alphabet, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		name = Default
	}
	a, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %s)", ErrUnknownAlphabet, name, strings.Join(Names(), ", "))
	}
	return a, nil
}

// Names returns the registered alphabet names, sorted.
func Names() []string {
	out := make([]string, 0, len(registry))
	for n := range registry {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

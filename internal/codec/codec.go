// Package codec converts byte sequences to and from strings of invisible
// alphabet symbols. Each byte is split into fixed-width bit groups, most
// significant group first, and every group is written as one symbol.
package codec

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/redactyl/zerowidth/internal/alphabet"
)

// Codec encodes and decodes under a single alphabet. It holds no mutable
// state and is safe for concurrent use.
type Codec struct {
	alpha *alphabet.Alphabet
}

// New returns a Codec for a.
func New(a *alphabet.Alphabet) *Codec {
	return &Codec{alpha: a}
}

// Alphabet returns the alphabet the codec was built with.
func (c *Codec) Alphabet() *alphabet.Alphabet { return c.alpha }

// Encode returns the symbol string for the UTF-8 bytes of text.
func (c *Codec) Encode(text string) string {
	return c.EncodeBytes([]byte(text))
}

// EncodeBytes returns the symbol string for b. The result holds exactly
// len(b)*SymbolsPerByte runes.
func (c *Codec) EncodeBytes(b []byte) string {
	width := c.alpha.BitsPerSymbol()
	per := c.alpha.SymbolsPerByte()
	mask := byte(1<<width - 1)

	var sb strings.Builder
	sb.Grow(len(b) * per * utf8.UTFMax)
	for _, v := range b {
		for shift := (per - 1) * width; shift >= 0; shift -= width {
			sb.WriteRune(c.alpha.SymbolAt(int(v >> shift & mask)))
		}
	}
	return sb.String()
}

// Decode reverses Encode. Any rune outside the alphabet rejects the whole
// input with *InvalidSymbolError. A trailing partial group is dropped. The
// reconstructed bytes must be valid UTF-8, otherwise *UTF8Error is returned.
func (c *Codec) Decode(s string) (string, error) {
	idx := make([]int, 0, len(s))
	for i, r := range []rune(s) {
		v, ok := c.alpha.IndexOf(r)
		if !ok {
			return "", &InvalidSymbolError{Input: s, Symbol: r, Offset: i}
		}
		idx = append(idx, v)
	}

	width := c.alpha.BitsPerSymbol()
	per := c.alpha.SymbolsPerByte()
	out := make([]byte, len(idx)/per)
	for g := range out {
		var acc byte
		for _, v := range idx[g*per : (g+1)*per] {
			acc = acc<<width | byte(v)
		}
		out[g] = acc
	}

	if off, ok := firstInvalidUTF8(out); !ok {
		return "", &UTF8Error{Offset: off, Detail: describeInvalid(out[off:])}
	}
	return string(out), nil
}

func firstInvalidUTF8(b []byte) (int, bool) {
	for off := 0; off < len(b); {
		r, size := utf8.DecodeRune(b[off:])
		if r == utf8.RuneError && size <= 1 {
			return off, false
		}
		off += size
	}
	return 0, true
}

func describeInvalid(b []byte) string {
	if !utf8.FullRune(b) {
		return "incomplete sequence"
	}
	return fmt.Sprintf("invalid byte %#02x", b[0])
}

package stego

import (
	"strings"
	"unicode/utf8"

	"github.com/redactyl/zerowidth/internal/codec"
)

// Embed hides hidden inside carrier. The payload is inserted after the first
// runeCount(carrier)/2 runes. Carriers that already contain alphabet symbols
// are not escaped; the payload may merge with them.
func Embed(c *codec.Codec, carrier, hidden string) string {
	payload := c.Encode(hidden)
	split := SplitIndex(carrier)

	var sb strings.Builder
	sb.Grow(len(carrier) + len(payload))
	sb.WriteString(carrier[:split])
	sb.WriteString(payload)
	sb.WriteString(carrier[split:])
	return sb.String()
}

// SplitIndex returns the byte offset of the rune at position
// runeCount(s)/2, which is where Embed inserts its payload.
func SplitIndex(s string) int {
	half := utf8.RuneCountInString(s) / 2
	for i := range s {
		if half == 0 {
			return i
		}
		half--
	}
	return len(s)
}

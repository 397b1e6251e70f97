package codec

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSymbol matches any *InvalidSymbolError.
	ErrInvalidSymbol = errors.New("invalid zero-width code")
	// ErrInvalidUTF8 matches any *UTF8Error.
	ErrInvalidUTF8 = errors.New("invalid UTF-8")
)

// InvalidSymbolError reports decode input containing a rune outside the
// alphabet. Input is the whole rejected string.
type InvalidSymbolError struct {
	Input  string
	Symbol rune
	Offset int // rune offset of the first foreign symbol
}

func (e *InvalidSymbolError) Error() string {
	return fmt.Sprintf("%s: %s", ErrInvalidSymbol, e.Input)
}

func (e *InvalidSymbolError) Is(target error) bool { return target == ErrInvalidSymbol }

// UTF8Error reports reconstructed bytes that are not valid UTF-8.
type UTF8Error struct {
	Offset int // byte offset of the first invalid sequence
	Detail string
}

func (e *UTF8Error) Error() string {
	return fmt.Sprintf("%s: %s at byte offset %d", ErrInvalidUTF8, e.Detail, e.Offset)
}

func (e *UTF8Error) Is(target error) bool { return target == ErrInvalidUTF8 }

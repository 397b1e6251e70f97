package core

import (
	"time"

	"github.com/redactyl/zerowidth/internal/alphabet"
	"github.com/redactyl/zerowidth/internal/codec"
	"github.com/redactyl/zerowidth/internal/engine"
	"github.com/redactyl/zerowidth/internal/provenance"
	"github.com/redactyl/zerowidth/internal/stego"
	"github.com/redactyl/zerowidth/internal/strip"
	"github.com/redactyl/zerowidth/internal/types"
)

// Re-export selected internal types as a stable public API surface.
type Config = engine.Config
type Result = engine.Result
type Finding = types.Finding
type Record = provenance.Record

// Errors returned by Decode and alphabet lookups.
var (
	ErrInvalidSymbol   = codec.ErrInvalidSymbol
	ErrInvalidUTF8     = codec.ErrInvalidUTF8
	ErrUnknownAlphabet = alphabet.ErrUnknownAlphabet
)

// Alphabets returns the names accepted wherever an alphabet is selected.
func Alphabets() []string { return alphabet.Names() }

func codecFor(name string) (*codec.Codec, error) {
	a, err := alphabet.Lookup(name)
	if err != nil {
		return nil, err
	}
	return codec.New(a), nil
}

// Encode turns text into invisible symbols of the named alphabet
// ("" selects the default).
func Encode(alpha, text string) (string, error) {
	c, err := codecFor(alpha)
	if err != nil {
		return "", err
	}
	return c.Encode(text), nil
}

// Decode reverses Encode. Any rune outside the alphabet fails the whole call.
func Decode(alpha, symbols string) (string, error) {
	c, err := codecFor(alpha)
	if err != nil {
		return "", err
	}
	return c.Decode(symbols)
}

// Embed hides hidden in the middle of carrier.
func Embed(alpha, carrier, hidden string) (string, error) {
	c, err := codecFor(alpha)
	if err != nil {
		return "", err
	}
	return stego.Embed(c, carrier, hidden), nil
}

// Detect returns every payload hidden in text, in order of appearance.
// Runs that do not decode are skipped.
func Detect(alpha, text string) ([]string, error) {
	c, err := codecFor(alpha)
	if err != nil {
		return nil, err
	}
	return stego.NewDetector(c).Detect(text), nil
}

// Strip removes hidden runs from text and reports how many were removed.
func Strip(alpha, text string) (string, int, error) {
	c, err := codecFor(alpha)
	if err != nil {
		return "", 0, err
	}
	out, n := strip.Text(stego.NewDetector(c), text)
	return out, n, nil
}

// Stamp embeds a provenance record describing text into text.
func Stamp(alpha, text, href string, now time.Time) (string, error) {
	c, err := codecFor(alpha)
	if err != nil {
		return "", err
	}
	return provenance.Stamp(c, text, href, now)
}

// Provenance returns the valid provenance records hidden in text.
func Provenance(alpha, text string) ([]Record, error) {
	payloads, err := Detect(alpha, text)
	if err != nil {
		return nil, err
	}
	recs, _ := provenance.Parse(payloads)
	return recs, nil
}

// Scan is the stable entrypoint for scanning a tree.
func Scan(cfg Config) ([]Finding, error) {
	return engine.Scan(cfg)
}

// ScanWithStats is Scan with file counts and timing.
func ScanWithStats(cfg Config) (Result, error) {
	return engine.ScanWithStats(cfg)
}

// DetectorIDs returns the detector IDs findings can carry.
func DetectorIDs() []string { return engine.DetectorIDs() }

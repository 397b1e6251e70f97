package stego

import (
	"errors"

	"github.com/redactyl/zerowidth/internal/alphabet"
	"github.com/redactyl/zerowidth/internal/codec"
)

// errEmptyPayload marks a run too short to hold a single byte.
var errEmptyPayload = errors.New("run shorter than one byte")

// Run is a maximal substring made only of alphabet symbols.
type Run struct {
	Start int    // rune offset of the first symbol
	End   int    // rune offset one past the last symbol
	Byte  int    // byte offset of the first symbol
	Text  string // the symbols themselves
}

// Len returns the number of symbols in the run.
func (r Run) Len() int { return r.End - r.Start }

// RunResult is the outcome of decoding one run.
type RunResult struct {
	Run
	Decoded string
	Err     error
}

// OK reports whether the run produced a payload.
func (r RunResult) OK() bool { return r.Err == nil }

// Result carries every payload found in a text together with per-run
// diagnostics.
type Result struct {
	Payloads []string
	Runs     []RunResult
	Skipped  int
}

// Detector finds and decodes payloads for one alphabet.
type Detector struct {
	codec *codec.Codec
	alpha *alphabet.Alphabet
}

// NewDetector returns a Detector that decodes with c.
func NewDetector(c *codec.Codec) *Detector {
	return &Detector{codec: c, alpha: c.Alphabet()}
}

// Alphabet returns the alphabet runs are made of.
func (d *Detector) Alphabet() *alphabet.Alphabet { return d.alpha }

// Runs returns the maximal alphabet runs of text, left to right.
func (d *Detector) Runs(text string) []Run {
	var (
		runs      []Run
		pos       int
		start     = -1
		startByte int
	)
	for i, r := range text {
		if d.alpha.Contains(r) {
			if start < 0 {
				start, startByte = pos, i
			}
		} else if start >= 0 {
			runs = append(runs, Run{Start: start, End: pos, Byte: startByte, Text: text[startByte:i]})
			start = -1
		}
		pos++
	}
	if start >= 0 {
		runs = append(runs, Run{Start: start, End: pos, Byte: startByte, Text: text[startByte:]})
	}
	return runs
}

// Detect returns the decoded payload of every run that decodes, in order of
// appearance. It never fails; undecodable runs are left out.
func (d *Detector) Detect(text string) []string {
	return d.DetectWithStats(text).Payloads
}

// DetectWithStats is Detect with the outcome of every run attached.
func (d *Detector) DetectWithStats(text string) Result {
	res := Result{Payloads: []string{}}
	for _, run := range d.Runs(text) {
		rr := RunResult{Run: run}
		rr.Decoded, rr.Err = d.codec.Decode(run.Text)
		if rr.Err == nil && rr.Decoded == "" {
			rr.Err = errEmptyPayload
		}
		if rr.Err != nil {
			res.Skipped++
		} else {
			res.Payloads = append(res.Payloads, rr.Decoded)
		}
		res.Runs = append(res.Runs, rr)
	}
	return res
}

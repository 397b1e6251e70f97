package report

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/redactyl/zerowidth/internal/types"
)

// BaselineFile is the default baseline location relative to the scan root.
const BaselineFile = "zerowidth.baseline.json"

// Baseline is a set of accepted findings.
type Baseline struct {
	Items map[string]bool `json:"items"`
}

// LoadBaseline reads a baseline file. A missing file yields an empty baseline
// and the read error.
func LoadBaseline(path string) (Baseline, error) {
	b := Baseline{Items: map[string]bool{}}
	f, err := os.ReadFile(path)
	if err != nil {
		return b, err
	}
	if err := json.Unmarshal(f, &b); err != nil {
		return Baseline{Items: map[string]bool{}}, fmt.Errorf("parse baseline %s: %w", path, err)
	}
	if b.Items == nil {
		b.Items = map[string]bool{}
	}
	return b, nil
}

// SaveBaseline records every finding as accepted.
func SaveBaseline(path string, findings []types.Finding) error {
	b := Baseline{Items: map[string]bool{}}
	for _, f := range findings {
		b.Items[Key(f)] = true
	}
	return WriteBaseline(path, b)
}

// WriteBaseline writes b to path as indented JSON.
func WriteBaseline(path string, b Baseline) error {
	buf, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, buf, 0644)
}

// FilterNewFindings drops findings present in base.
func FilterNewFindings(findings []types.Finding, base Baseline) []types.Finding {
	var out []types.Finding
	for _, f := range findings {
		if !base.Items[Key(f)] {
			out = append(out, f)
		}
	}
	return out
}

// Key identifies a run by file, detector and decoded text. The position is
// left out so edits elsewhere in the file do not resurface it.
func Key(f types.Finding) string {
	id := f.Payload
	if id == "" {
		id = f.Match
	}
	return f.Path + "|" + f.Detector + "|" + id
}

// ShouldFail reports whether any finding is at or above the failOn
// severity. "none" never fails; unknown values mean medium.
func ShouldFail(findings []types.Finding, failOn string) bool {
	if failOn == "none" || failOn == "off" {
		return false
	}
	level := map[string]int{"low": 1, "medium": 2, "high": 3}
	th := level[failOn]
	if th == 0 {
		th = 2
	}
	for _, f := range findings {
		if level[string(f.Severity)] >= th {
			return true
		}
	}
	return false
}

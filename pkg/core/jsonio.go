package core

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/redactyl/zerowidth/internal/report"
)

// WriteFindings writes findings in the format of "zerowidth scan --json".
// A nil slice is written as [].
func WriteFindings(w io.Writer, findings []Finding) error {
	return report.WriteJSON(w, findings)
}

// ReadFindings decodes findings written by WriteFindings. Payloads come back
// exactly as written, so redacted audit exports stay redacted.
func ReadFindings(r io.Reader) ([]Finding, error) {
	var fs []Finding
	if err := json.NewDecoder(r).Decode(&fs); err != nil {
		return nil, fmt.Errorf("decode findings: %w", err)
	}
	return fs, nil
}

package types

// Severity is a coarse-grained risk level for a finding.
type Severity string

const (
	SevLow  Severity = "low"
	SevMed  Severity = "medium"
	SevHigh Severity = "high"
)

// Detector IDs attached to findings.
const (
	DetectorPayload    = "payload"    // run decoded to text
	DetectorProvenance = "provenance" // run decoded to a provenance record
	DetectorStrayRun   = "stray_run"  // alphabet symbols that do not decode
)

// Finding describes a run of invisible symbols found at a path and position,
// with its decoded payload when the run decodes.
type Finding struct {
	Path     string            `json:"path"`
	Line     int               `json:"line"`
	Column   int               `json:"column"`            // 1-based, counted in runes
	Match    string            `json:"match"`             // the raw symbols
	Payload  string            `json:"payload,omitempty"` // decoded text (may be redacted)
	Symbols  int               `json:"symbols"`
	Alphabet string            `json:"alphabet"`
	Detector string            `json:"detector"`
	Severity Severity          `json:"severity"`
	Context  string            `json:"context,omitempty"` // decode error for stray runs
	Metadata map[string]string `json:"metadata,omitempty"`
}

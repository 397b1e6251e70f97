// Package audit keeps a JSONL history of scans next to the scanned tree.
package audit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/redactyl/zerowidth/internal/report"
	"github.com/redactyl/zerowidth/internal/types"
)

type ScanRecord struct {
	Timestamp      time.Time        `json:"timestamp"`
	ScanID         string           `json:"scan_id"`
	Root           string           `json:"root"`
	Alphabet       string           `json:"alphabet"`
	TotalFindings  int              `json:"total_findings"`
	NewFindings    int              `json:"new_findings"`
	BaselinedCount int              `json:"baselined_count"`
	SeverityCounts map[string]int   `json:"severity_counts"`
	FilesScanned   int              `json:"files_scanned"`
	Duration       string           `json:"duration"`
	BaselineFile   string           `json:"baseline_file,omitempty"`
	TopFindings    []FindingSummary `json:"top_findings,omitempty"`
	AllFindings    []types.Finding  `json:"all_findings,omitempty"`
}

type FindingSummary struct {
	Path     string `json:"path"`
	Detector string `json:"detector"`
	Severity string `json:"severity"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
}

type AuditLog struct {
	logPath string
}

func NewAuditLog(root string) *AuditLog {
	gitDir := filepath.Join(root, ".git")
	logPath := filepath.Join(root, ".zerowidth_audit.jsonl")
	if st, err := os.Stat(gitDir); err == nil && st.IsDir() {
		logPath = filepath.Join(gitDir, "zerowidth_audit.jsonl")
	}
	return &AuditLog{logPath: logPath}
}

// Path returns the log file location.
func (a *AuditLog) Path() string { return a.logPath }

// LoadHistory returns all records, newest first. Corrupt lines are skipped.
func (a *AuditLog) LoadHistory() ([]ScanRecord, error) {
	f, err := os.Open(a.logPath)
	if err != nil {
		return nil, fmt.Errorf("open audit log: %w", err)
	}
	defer f.Close()

	var records []ScanRecord
	dec := json.NewDecoder(f)
	for dec.More() {
		var rec ScanRecord
		if err := dec.Decode(&rec); err != nil {
			break
		}
		records = append(records, rec)
	}
	slices.Reverse(records)
	return records, nil
}

// LogScan appends record, assigning a scan ID when it has none.
func (a *AuditLog) LogScan(record ScanRecord) error {
	if record.ScanID == "" {
		record.ScanID = uuid.NewString()
	}
	return a.write(os.O_CREATE|os.O_APPEND|os.O_WRONLY, record)
}

// DeleteRecord removes the record at index in LoadHistory order.
func (a *AuditLog) DeleteRecord(index int) error {
	records, err := a.LoadHistory()
	if err != nil {
		return err
	}

	if index < 0 || index >= len(records) {
		return fmt.Errorf("invalid index: %d", index)
	}

	records = slices.Delete(records, index, index+1)
	slices.Reverse(records)
	return a.write(os.O_CREATE|os.O_TRUNC|os.O_WRONLY, records...)
}

// write encodes records oldest first, one JSON object per line.
func (a *AuditLog) write(flag int, records ...ScanRecord) error {
	// decoded payloads can be sensitive; owner-only
	f, err := os.OpenFile(a.logPath, flag, 0600)
	if err != nil {
		return fmt.Errorf("open audit log: %w", err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	for _, rec := range records {
		if err := enc.Encode(rec); err != nil {
			return fmt.Errorf("write audit record: %w", err)
		}
	}
	return nil
}

func CreateScanRecord(
	root string,
	alphabet string,
	allFindings []types.Finding,
	newFindings []types.Finding,
	filesScanned int,
	duration time.Duration,
	baselineFile string,
) ScanRecord {
	high, med, low := report.CountBySeverity(allFindings)
	severityCounts := map[string]int{
		string(types.SevHigh): high,
		string(types.SevMed):  med,
		string(types.SevLow):  low,
	}

	topFindings := make([]FindingSummary, 0, 10)
	for i, f := range newFindings {
		if i >= 10 {
			break
		}
		topFindings = append(topFindings, FindingSummary{
			Path:     f.Path,
			Detector: f.Detector,
			Severity: string(f.Severity),
			Line:     f.Line,
			Column:   f.Column,
		})
	}

	return ScanRecord{
		Timestamp:      time.Now(),
		ScanID:         uuid.NewString(),
		Root:           root,
		Alphabet:       alphabet,
		TotalFindings:  len(allFindings),
		NewFindings:    len(newFindings),
		BaselinedCount: len(allFindings) - len(newFindings),
		SeverityCounts: severityCounts,
		FilesScanned:   filesScanned,
		Duration:       duration.String(),
		BaselineFile:   baselineFile,
		TopFindings:    topFindings,
		AllFindings:    redactPayloads(allFindings),
	}
}

// redactPayloads returns a copy of findings without decoded text or raw
// symbols, so hidden content never lands in the log.
func redactPayloads(findings []types.Finding) []types.Finding {
	redacted := make([]types.Finding, len(findings))
	for i, f := range findings {
		redacted[i] = f
		redacted[i].Match = ""
		if f.Payload != "" {
			redacted[i].Payload = "[REDACTED]"
		}
	}
	return redacted
}

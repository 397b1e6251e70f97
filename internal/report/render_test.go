package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/redactyl/zerowidth/internal/types"
)

var sample = []types.Finding{
	{Path: "a.md", Line: 3, Column: 7, Payload: "tracking-id", Symbols: 44, Alphabet: "quad", Detector: types.DetectorPayload, Severity: types.SevHigh},
	{Path: "b.md", Line: 1, Column: 1, Symbols: 4, Alphabet: "quad", Detector: types.DetectorStrayRun, Severity: types.SevLow, Context: "invalid UTF-8: invalid byte 0xff at byte offset 0"},
	{Path: "c.md", Line: 2, Column: 5, Symbols: 400, Alphabet: "quad", Detector: types.DetectorProvenance, Severity: types.SevMed,
		Metadata: map[string]string{"href": "https://example.com", "date": "2024-05-01T12:00:00.000Z"}},
}

func TestPrintText_NoFindings_ShowsFooter(t *testing.T) {
	var buf bytes.Buffer
	PrintText(&buf, nil, PrintOptions{Duration: 1200 * time.Millisecond, FilesScanned: 10})
	out := buf.String()
	if !strings.Contains(out, "No hidden payloads found") {
		t.Fatalf("expected friendly no-findings message; got: %q", out)
	}
	if !strings.Contains(out, "Files scanned: 10") {
		t.Fatalf("expected footer with files scanned; got: %q", out)
	}
}

func TestPrintText_WithFindings(t *testing.T) {
	var buf bytes.Buffer
	PrintText(&buf, sample, PrintOptions{NoColor: true})
	out := buf.String()
	for _, want := range []string{
		"Findings: 3",
		"high   payload",
		"a.md:3:7",
		`"tracking-id"`,
		"undecodable: invalid UTF-8",
		"copied from https://example.com",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output; got: %q", want, out)
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Fatalf("no-color output contains escape codes: %q", out)
	}
}

func TestPrintText_HidePayloads(t *testing.T) {
	var buf bytes.Buffer
	PrintText(&buf, sample[:1], PrintOptions{NoColor: true, HidePayloads: true})
	out := buf.String()
	if strings.Contains(out, "tracking-id") {
		t.Fatalf("payload leaked: %q", out)
	}
	if !strings.Contains(out, "<11 bytes hidden>") {
		t.Fatalf("expected placeholder; got: %q", out)
	}
}

func TestPrintTable_WithFindings(t *testing.T) {
	var buf bytes.Buffer
	PrintTable(&buf, sample, PrintOptions{NoColor: true})
	out := buf.String()
	if !strings.Contains(out, "SEVERITY") {
		t.Fatalf("expected table header with SEVERITY; got: %q", out)
	}
	if !strings.Contains(out, "stray_run") || !strings.Contains(out, "c.md:2:5") {
		t.Fatalf("expected rows in table; got: %q", out)
	}
}

func TestPrintTable_NoFindings_ShowsFooter(t *testing.T) {
	var buf bytes.Buffer
	PrintTable(&buf, nil, PrintOptions{Duration: 1200 * time.Millisecond, FilesScanned: 10, FilesCached: 4})
	out := buf.String()
	if !strings.Contains(out, "No hidden payloads found") {
		t.Fatalf("expected friendly no-findings message; got: %q", out)
	}
	if !strings.Contains(out, "Files scanned: 10") || !strings.Contains(out, "last clean scan: 4") {
		t.Fatalf("expected footer with file counts; got: %q", out)
	}
}

func TestPrintFooter_Baselined(t *testing.T) {
	var buf bytes.Buffer
	PrintText(&buf, sample[:1], PrintOptions{NoColor: true, FilesScanned: 1, TotalFindings: 3})
	if !strings.Contains(buf.String(), "Baselined: 2") {
		t.Fatalf("expected baselined count; got: %q", buf.String())
	}
}

func TestWriteJSON_NilIsEmptyArray(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, nil); err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(buf.String()) != "[]" {
		t.Fatalf("expected [], got %q", buf.String())
	}
}

func TestTruncate(t *testing.T) {
	cases := []struct {
		in   string
		n    int
		want string
	}{
		{"short", 10, "short"},
		{"exactly", 7, "exactly"},
		{"héllo wörld", 5, "héllo…"},
	}
	for _, tc := range cases {
		if got := truncate(tc.in, tc.n); got != tc.want {
			t.Fatalf("truncate(%q, %d) = %q, want %q", tc.in, tc.n, got, tc.want)
		}
	}
}

func TestCountBySeverity(t *testing.T) {
	h, m, l := CountBySeverity(sample)
	if h != 1 || m != 1 || l != 1 {
		t.Fatalf("unexpected counts %d %d %d", h, m, l)
	}
}

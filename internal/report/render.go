package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"
	"github.com/redactyl/zerowidth/internal/types"
)

// PrintOptions controls human-readable output.
type PrintOptions struct {
	NoColor       bool
	HidePayloads  bool
	Duration      time.Duration
	FilesScanned  int
	FilesCached   int
	TotalFindings int // before baseline filtering; 0 means len(findings)
}

const maxPayloadRunes = 48

// PrintText writes one line per finding in plain columns.
func PrintText(w io.Writer, findings []types.Finding, opts PrintOptions) {
	if len(findings) == 0 {
		fmt.Fprintln(w, "No hidden payloads found ✅")
	} else {
		maxDet := 8
		for _, f := range findings {
			if l := len(f.Detector); l > maxDet {
				maxDet = l
			}
		}
		fmt.Fprintf(w, "Findings: %d\n", len(findings))
		for _, f := range findings {
			sev := colorSeverity(w, f.Severity, opts.NoColor)
			fmt.Fprintf(w, "%-6s %-*s %s  %s\n", sev, maxDet, f.Detector, location(f), describe(f, opts.HidePayloads))
		}
	}
	printFooter(w, findings, opts)
}

// PrintTable writes findings as a bordered table.
func PrintTable(w io.Writer, findings []types.Finding, opts PrintOptions) {
	if len(findings) == 0 {
		fmt.Fprintln(w, "No hidden payloads found ✅")
	} else {
		table := tablewriter.NewWriter(w)
		table.Header("SEVERITY", "DETECTOR", "LOCATION", "SYMBOLS", "PAYLOAD")
		for _, f := range findings {
			_ = table.Append([]string{
				colorSeverity(w, f.Severity, opts.NoColor),
				f.Detector,
				location(f),
				strconv.Itoa(f.Symbols),
				describe(f, opts.HidePayloads),
			})
		}
		_ = table.Render()
	}
	printFooter(w, findings, opts)
}

// WriteJSON writes findings as an indented JSON array; nil becomes [].
func WriteJSON(w io.Writer, findings []types.Finding) error {
	if findings == nil {
		findings = []types.Finding{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(findings)
}

func printFooter(w io.Writer, findings []types.Finding, opts PrintOptions) {
	if opts.Duration <= 0 && opts.FilesScanned <= 0 {
		return
	}
	high, med, low := CountBySeverity(findings)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Findings: %d (high: %d, medium: %d, low: %d)\n", len(findings), high, med, low)
	if opts.TotalFindings > len(findings) {
		fmt.Fprintf(w, "Baselined: %d\n", opts.TotalFindings-len(findings))
	}
	if opts.Duration > 0 {
		fmt.Fprintf(w, "Scan duration: %.2fs\n", opts.Duration.Seconds())
	}
	if opts.FilesScanned > 0 {
		fmt.Fprintf(w, "Files scanned: %d\n", opts.FilesScanned)
	}
	if opts.FilesCached > 0 {
		fmt.Fprintf(w, "Files unchanged since last clean scan: %d\n", opts.FilesCached)
	}
}

// CountBySeverity tallies findings per severity.
func CountBySeverity(findings []types.Finding) (high, med, low int) {
	for _, f := range findings {
		switch f.Severity {
		case types.SevHigh:
			high++
		case types.SevMed:
			med++
		default:
			low++
		}
	}
	return high, med, low
}

func location(f types.Finding) string {
	return fmt.Sprintf("%s:%d:%d", f.Path, f.Line, f.Column)
}

func describe(f types.Finding, hide bool) string {
	switch f.Detector {
	case types.DetectorStrayRun:
		return "undecodable: " + f.Context
	case types.DetectorProvenance:
		return "copied from " + f.Metadata["href"] + " at " + f.Metadata["date"]
	}
	if hide {
		return fmt.Sprintf("<%d bytes hidden>", len(f.Payload))
	}
	return strconv.Quote(truncate(f.Payload, maxPayloadRunes))
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos] + "…"
		}
		i++
	}
	return s
}

func colorSeverity(w io.Writer, s types.Severity, noColor bool) string {
	if noColor {
		return string(s)
	}
	r := lipgloss.NewRenderer(w)
	var c lipgloss.Color
	switch s {
	case types.SevHigh:
		c = lipgloss.Color("9")
	case types.SevMed:
		c = lipgloss.Color("11")
	default:
		c = lipgloss.Color("14")
	}
	return r.NewStyle().Foreground(c).Render(string(s))
}

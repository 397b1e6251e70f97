package report

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/redactyl/zerowidth/internal/types"
)

type sarifDoc struct {
	Version string `json:"version"`
	Runs    []struct {
		Properties map[string]any `json:"properties"`
		Tool       struct {
			Driver struct {
				Name  string `json:"name"`
				Rules []struct {
					ID string `json:"id"`
				} `json:"rules"`
			} `json:"driver"`
		} `json:"tool"`
		Results []struct {
			RuleID    string `json:"ruleId"`
			RuleIndex int    `json:"ruleIndex"`
			Level     string `json:"level"`
			Locations []struct {
				PhysicalLocation struct {
					Region struct {
						StartLine   int `json:"startLine"`
						StartColumn int `json:"startColumn"`
					} `json:"region"`
				} `json:"physicalLocation"`
			} `json:"locations"`
		} `json:"results"`
	} `json:"runs"`
}

func TestWriteSARIF(t *testing.T) {
	findings := []types.Finding{
		{Path: "a/b.txt", Line: 3, Column: 9, Symbols: 8, Alphabet: "quad", Detector: types.DetectorPayload, Severity: types.SevHigh},
		{Path: "c.txt", Line: 1, Column: 1, Symbols: 4, Alphabet: "quad", Detector: types.DetectorStrayRun, Severity: types.SevLow},
		{Path: "d.txt", Line: 2, Column: 1, Symbols: 8, Alphabet: "quad", Detector: types.DetectorPayload, Severity: types.SevHigh},
	}
	var buf bytes.Buffer
	if err := WriteSARIF(&buf, findings); err != nil {
		t.Fatalf("WriteSARIF: %v", err)
	}
	var doc sarifDoc
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("unmarshal: %v; body=%s", err, buf.String())
	}
	if doc.Version != "2.1.0" || len(doc.Runs) != 1 {
		t.Fatalf("unexpected document: %+v", doc)
	}
	run := doc.Runs[0]
	if run.Tool.Driver.Name != "zerowidth" {
		t.Fatalf("unexpected driver %q", run.Tool.Driver.Name)
	}
	if len(run.Tool.Driver.Rules) != 2 {
		t.Fatalf("expected one rule per detector, got %+v", run.Tool.Driver.Rules)
	}
	if run.Properties != nil {
		t.Fatalf("no stats were given, got %+v", run.Properties)
	}
	res := run.Results
	if len(res) != 3 {
		t.Fatalf("expected 3 results, got %d", len(res))
	}
	if res[0].Level != "error" || res[1].Level != "note" {
		t.Fatalf("unexpected levels %q %q", res[0].Level, res[1].Level)
	}
	if res[2].RuleIndex != 0 || res[1].RuleIndex != 1 {
		t.Fatalf("rule indexes not linked: %+v", res)
	}
	if run.Tool.Driver.Rules[res[1].RuleIndex].ID != types.DetectorStrayRun {
		t.Fatalf("ruleIndex points at wrong rule")
	}
	reg := res[0].Locations[0].PhysicalLocation.Region
	if reg.StartLine != 3 || reg.StartColumn != 9 {
		t.Fatalf("unexpected region %+v", reg)
	}
}

func TestWriteSARIFWithStats_IncludesProperties(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSARIFWithStats(&buf, nil, map[string]int{"filesScanned": 12, "runsSkipped": 1}); err != nil {
		t.Fatalf("WriteSARIFWithStats: %v", err)
	}
	var doc sarifDoc
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	stats, ok := doc.Runs[0].Properties["scanStats"].(map[string]any)
	if !ok {
		t.Fatalf("expected scanStats in properties, got: %#v", doc.Runs[0].Properties)
	}
	if stats["filesScanned"].(float64) != 12 || stats["runsSkipped"].(float64) != 1 {
		t.Fatalf("unexpected stats: %#v", stats)
	}
	if doc.Runs[0].Results == nil {
		t.Fatal("results must be an empty array, not null")
	}
}

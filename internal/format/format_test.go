package format

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

var (
	testCols = []string{"NAME", "ROWS"}
	testRows = [][]any{
		{"EMPLOYEES", 107},
		{"DEPARTMENTS", nil},
	}
)

func TestParse(t *testing.T) {
	for _, s := range []string{"table", "json", "yaml", "csv", "JSON", "Table"} {
		if _, err := Parse(s); err != nil {
			t.Errorf("Parse(%q) failed: %v", s, err)
		}
	}
	if _, err := Parse("xml"); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestRenderJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, FormatJSON, testCols, testRows); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var decoded []map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, buf.String())
	}
	if len(decoded) != 2 {
		t.Fatalf("expected 2 objects, got %d", len(decoded))
	}
	if decoded[0]["NAME"] != "EMPLOYEES" {
		t.Errorf("unexpected first row: %v", decoded[0])
	}
	if decoded[1]["ROWS"] != nil {
		t.Errorf("nil cell should stay null, got %v", decoded[1]["ROWS"])
	}
}

func TestRenderCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, FormatCSV, testCols, testRows); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d lines: %q", len(lines), lines)
	}
	if lines[0] != "NAME,ROWS" {
		t.Errorf("unexpected header: %q", lines[0])
	}
	if lines[1] != "EMPLOYEES,107" {
		t.Errorf("unexpected row: %q", lines[1])
	}
	if lines[2] != "DEPARTMENTS," {
		t.Errorf("nil cell should render empty: %q", lines[2])
	}
}

func TestRenderYAML(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, FormatYAML, testCols, testRows); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(buf.String(), "NAME: EMPLOYEES") {
		t.Errorf("unexpected yaml output:\n%s", buf.String())
	}
}

func TestRenderTable(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, FormatTable, testCols, testRows); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "NAME") || !strings.Contains(out, "EMPLOYEES") {
		t.Errorf("table output missing content:\n%s", out)
	}
}

func TestToMaps_ShortRow(t *testing.T) {
	maps := toMaps([]string{"A", "B"}, [][]any{{1}})
	if _, present := maps[0]["B"]; present {
		t.Error("missing cells should be absent, not zero-valued")
	}
}

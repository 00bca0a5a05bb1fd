// Package format renders result sets for the CLI in one of four
// formats. Every renderer takes the same ordered columns + rows shape,
// so callers never branch on row representation.
package format

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"gopkg.in/yaml.v3"
)

// Format selects an output rendering.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
	FormatCSV   Format = "csv"
)

// Parse validates an --output flag value.
func Parse(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case FormatTable:
		return FormatTable, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatYAML:
		return FormatYAML, nil
	case FormatCSV:
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("unknown output format %q (table, json, yaml, csv)", s)
	}
}

// Render writes rows under the given ordered column names.
func Render(w io.Writer, f Format, columns []string, rows [][]any) error {
	switch f {
	case FormatJSON:
		return renderJSON(w, columns, rows)
	case FormatYAML:
		return renderYAML(w, columns, rows)
	case FormatCSV:
		return renderCSV(w, columns, rows)
	default:
		return renderTable(w, columns, rows)
	}
}

func renderTable(w io.Writer, columns []string, rows [][]any) error {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(columns...)

	for _, row := range rows {
		t.Row(stringify(row)...)
	}

	_, err := fmt.Fprintln(w, t.String())
	return err
}

func renderJSON(w io.Writer, columns []string, rows [][]any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(toMaps(columns, rows))
}

func renderYAML(w io.Writer, columns []string, rows [][]any) error {
	data, err := yaml.Marshal(toMaps(columns, rows))
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func renderCSV(w io.Writer, columns []string, rows [][]any) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(columns); err != nil {
		return err
	}
	for _, row := range rows {
		if err := cw.Write(stringify(row)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// toMaps pairs each row's values with its column names. Used for the
// self-describing formats.
func toMaps(columns []string, rows [][]any) []map[string]any {
	out := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		m := make(map[string]any, len(columns))
		for i, col := range columns {
			if i < len(row) {
				m[col] = row[i]
			}
		}
		out = append(out, m)
	}
	return out
}

func stringify(row []any) []string {
	out := make([]string, len(row))
	for i, v := range row {
		if v == nil {
			out[i] = ""
			continue
		}
		out[i] = fmt.Sprint(v)
	}
	return out
}

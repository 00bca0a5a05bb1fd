package schema

import (
	"time"

	"github.com/flext/flext-db-oracle/internal/dberr"
)

// QueryResult holds the outcome of a SELECT: ordered column names and
// rows of values in the same order. RowCount always equals len(Rows).
type QueryResult struct {
	Columns       []string        `yaml:"columns" json:"columns"`
	Rows          [][]any         `yaml:"rows" json:"rows"`
	RowCount      int             `yaml:"row_count" json:"row_count"`
	ExecutionTime time.Duration   `yaml:"execution_time" json:"execution_time"`
}

// ColumnValues returns the values of the i-th column across all rows.
func (r *QueryResult) ColumnValues(i int) ([]any, error) {
	if i < 0 || i >= len(r.Columns) {
		return nil, dberr.Validationf("column index %d out of range [0,%d)", i, len(r.Columns))
	}
	values := make([]any, 0, len(r.Rows))
	for _, row := range r.Rows {
		values = append(values, row[i])
	}
	return values, nil
}

// ConnectionStatus reports the outcome of one liveness probe. A fresh
// value is produced on every check; existing values are never mutated.
type ConnectionStatus struct {
	Connected    bool      `yaml:"connected" json:"connected"`
	Host         string    `yaml:"host" json:"host"`
	Port         int       `yaml:"port" json:"port"`
	Database     string    `yaml:"database" json:"database"`
	Username     string    `yaml:"username" json:"username"`
	LastCheck    time.Time `yaml:"last_check" json:"last_check"`
	ErrorMessage string    `yaml:"error_message,omitempty" json:"error_message,omitempty"`
}

// Package schema defines the typed metadata model produced by the
// introspector and consumed by the DDL generator. All types are value
// objects: constructed once from catalog rows, read-only afterward.
package schema

import (
	"fmt"
	"time"

	"github.com/flext/flext-db-oracle/internal/dberr"
)

// ConstraintType classifies a table constraint.
type ConstraintType string

const (
	ConstraintPrimaryKey ConstraintType = "PRIMARY_KEY"
	ConstraintForeignKey ConstraintType = "FOREIGN_KEY"
	ConstraintUnique     ConstraintType = "UNIQUE"
	ConstraintCheck      ConstraintType = "CHECK"
)

// Column represents a table column as described by ALL_TAB_COLUMNS.
type Column struct {
	Name         string  `yaml:"name" json:"name"`
	DataType     string  `yaml:"data_type" json:"data_type"`
	Nullable     bool    `yaml:"nullable" json:"nullable"`
	DefaultValue *string `yaml:"default_value,omitempty" json:"default_value,omitempty"`
	MaxLength    *int    `yaml:"max_length,omitempty" json:"max_length,omitempty"`
	Precision    *int    `yaml:"precision,omitempty" json:"precision,omitempty"`
	Scale        *int    `yaml:"scale,omitempty" json:"scale,omitempty"`
	IsPrimaryKey bool    `yaml:"is_primary_key,omitempty" json:"is_primary_key,omitempty"`
	IsForeignKey bool    `yaml:"is_foreign_key,omitempty" json:"is_foreign_key,omitempty"`
	Comments     string  `yaml:"comments,omitempty" json:"comments,omitempty"`
}

// Validate checks the column invariants: name and data type non-empty.
func (c *Column) Validate() error {
	if c.Name == "" {
		return dberr.Validation("column name must not be empty")
	}
	if c.DataType == "" {
		return dberr.Validationf("column %s has no data type", c.Name)
	}
	return nil
}

// Constraint represents a table constraint from ALL_CONSTRAINTS.
// Condition carries the search condition for CHECK constraints.
type Constraint struct {
	Name              string         `yaml:"name" json:"name"`
	Type              ConstraintType `yaml:"type" json:"type"`
	Columns           []string       `yaml:"columns,omitempty" json:"columns,omitempty"`
	ReferencedTable   string         `yaml:"referenced_table,omitempty" json:"referenced_table,omitempty"`
	ReferencedColumns []string       `yaml:"referenced_columns,omitempty" json:"referenced_columns,omitempty"`
	Condition         string         `yaml:"condition,omitempty" json:"condition,omitempty"`
}

// Index represents a database index from ALL_INDEXES. Primary-key
// indexes carry Primary=true and are excluded from generated DDL.
type Index struct {
	Name       string   `yaml:"name" json:"name"`
	TableName  string   `yaml:"table_name" json:"table_name"`
	Columns    []string `yaml:"columns" json:"columns"`
	Unique     bool     `yaml:"unique,omitempty" json:"unique,omitempty"`
	Primary    bool     `yaml:"primary,omitempty" json:"primary,omitempty"`
	Tablespace string   `yaml:"tablespace,omitempty" json:"tablespace,omitempty"`
}

// Table represents a database table with its columns, constraints, and
// indexes. RowCount is the optimizer's estimate from ALL_TABLES and may
// be nil when statistics have never been gathered.
type Table struct {
	SchemaName  string       `yaml:"schema_name,omitempty" json:"schema_name,omitempty"`
	Name        string       `yaml:"name" json:"name"`
	Columns     []Column     `yaml:"columns" json:"columns"`
	Constraints []Constraint `yaml:"constraints,omitempty" json:"constraints,omitempty"`
	Indexes     []Index      `yaml:"indexes,omitempty" json:"indexes,omitempty"`
	RowCount    *int64       `yaml:"row_count,omitempty" json:"row_count,omitempty"`
	Tablespace  string       `yaml:"tablespace,omitempty" json:"tablespace,omitempty"`
	Comments    string       `yaml:"comments,omitempty" json:"comments,omitempty"`
}

// FullName returns schema.table, or just the table name when the
// schema is unknown.
func (t *Table) FullName() string {
	if t.SchemaName == "" {
		return t.Name
	}
	return t.SchemaName + "." + t.Name
}

// PrimaryKey returns the table's primary-key constraint, or nil.
func (t *Table) PrimaryKey() *Constraint {
	for i := range t.Constraints {
		if t.Constraints[i].Type == ConstraintPrimaryKey {
			return &t.Constraints[i]
		}
	}
	return nil
}

// ForeignKeys returns the table's foreign-key constraints.
func (t *Table) ForeignKeys() []Constraint {
	var fks []Constraint
	for _, c := range t.Constraints {
		if c.Type == ConstraintForeignKey {
			fks = append(fks, c)
		}
	}
	return fks
}

// Schema represents one owner and its tables.
type Schema struct {
	Name        string     `yaml:"name" json:"name"`
	Tables      []Table    `yaml:"tables" json:"tables"`
	CreatedDate *time.Time `yaml:"created_date,omitempty" json:"created_date,omitempty"`
}

// TableCount returns the number of tables in the schema.
func (s *Schema) TableCount() int {
	return len(s.Tables)
}

// Summary returns a human-readable one-line summary of the schema.
func (s *Schema) Summary() string {
	var cols, fks int
	for _, t := range s.Tables {
		cols += len(t.Columns)
		fks += len(t.ForeignKeys())
	}
	return fmt.Sprintf("Schema %s: %d tables, %d columns, %d foreign keys",
		s.Name, len(s.Tables), cols, fks)
}

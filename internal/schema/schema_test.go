package schema

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/flext/flext-db-oracle/internal/dberr"
)

func intPtr(v int) *int { return &v }

func TestColumnValidate(t *testing.T) {
	c := Column{Name: "ID", DataType: "NUMBER"}
	if err := c.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	c = Column{DataType: "NUMBER"}
	if err := c.Validate(); !dberr.IsValidation(err) {
		t.Errorf("empty name should be a validation error, got %v", err)
	}

	c = Column{Name: "ID"}
	if err := c.Validate(); !dberr.IsValidation(err) {
		t.Errorf("empty data type should be a validation error, got %v", err)
	}
}

func TestTableFullName(t *testing.T) {
	tbl := Table{SchemaName: "HR", Name: "EMPLOYEES"}
	if got := tbl.FullName(); got != "HR.EMPLOYEES" {
		t.Errorf("expected HR.EMPLOYEES, got %q", got)
	}

	tbl = Table{Name: "EMPLOYEES"}
	if got := tbl.FullName(); got != "EMPLOYEES" {
		t.Errorf("expected bare name without schema, got %q", got)
	}
}

func TestTableConstraintAccessors(t *testing.T) {
	tbl := Table{
		Name: "ORDERS",
		Constraints: []Constraint{
			{Name: "ORDERS_PK", Type: ConstraintPrimaryKey, Columns: []string{"ID"}},
			{Name: "ORDERS_CUST_FK", Type: ConstraintForeignKey, Columns: []string{"CUSTOMER_ID"}, ReferencedTable: "CUSTOMERS"},
			{Name: "ORDERS_QTY_CK", Type: ConstraintCheck, Condition: "QTY > 0"},
		},
	}

	pk := tbl.PrimaryKey()
	if pk == nil || pk.Name != "ORDERS_PK" {
		t.Fatalf("expected ORDERS_PK, got %+v", pk)
	}

	fks := tbl.ForeignKeys()
	if len(fks) != 1 || fks[0].ReferencedTable != "CUSTOMERS" {
		t.Errorf("expected one FK to CUSTOMERS, got %+v", fks)
	}
}

func TestQueryResultColumnValues(t *testing.T) {
	r := QueryResult{
		Columns:  []string{"ID", "NAME"},
		Rows:     [][]any{{1, "alpha"}, {2, "beta"}},
		RowCount: 2,
	}

	vals, err := r.ColumnValues(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(vals) != 2 || vals[0] != "alpha" || vals[1] != "beta" {
		t.Errorf("unexpected values: %v", vals)
	}

	if _, err := r.ColumnValues(2); !dberr.IsValidation(err) {
		t.Errorf("out-of-range index should be a validation error, got %v", err)
	}
	if _, err := r.ColumnValues(-1); !dberr.IsValidation(err) {
		t.Errorf("negative index should be a validation error, got %v", err)
	}
}

func TestSchemaSummary(t *testing.T) {
	s := Schema{
		Name: "HR",
		Tables: []Table{
			{Name: "A", Columns: []Column{{Name: "ID", DataType: "NUMBER"}}},
			{Name: "B", Columns: []Column{
				{Name: "ID", DataType: "NUMBER"},
				{Name: "A_ID", DataType: "NUMBER"},
			}, Constraints: []Constraint{
				{Name: "B_A_FK", Type: ConstraintForeignKey, ReferencedTable: "A"},
			}},
		},
	}

	got := s.Summary()
	if !strings.Contains(got, "2 tables") || !strings.Contains(got, "3 columns") || !strings.Contains(got, "1 foreign key") {
		t.Errorf("unexpected summary: %q", got)
	}
	if s.TableCount() != 2 {
		t.Errorf("expected 2 tables, got %d", s.TableCount())
	}
}

func TestSchemaYAMLRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out", "hr.yaml")

	s := &Schema{
		Name: "HR",
		Tables: []Table{{
			SchemaName: "HR",
			Name:       "EMPLOYEES",
			Columns: []Column{
				{Name: "ID", DataType: "NUMBER", Precision: intPtr(10)},
				{Name: "NAME", DataType: "VARCHAR2", MaxLength: intPtr(100), Nullable: true},
			},
		}},
	}

	if err := s.WriteYAML(path); err != nil {
		t.Fatalf("writing yaml: %v", err)
	}

	loaded, err := LoadYAML(path)
	if err != nil {
		t.Fatalf("loading yaml: %v", err)
	}
	if loaded.Name != "HR" || len(loaded.Tables) != 1 {
		t.Fatalf("unexpected loaded schema: %+v", loaded)
	}
	tbl := loaded.Tables[0]
	if len(tbl.Columns) != 2 || tbl.Columns[0].Precision == nil || *tbl.Columns[0].Precision != 10 {
		t.Errorf("column metadata did not survive round trip: %+v", tbl.Columns)
	}

	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected schema file at %s: %v", path, err)
	}
}

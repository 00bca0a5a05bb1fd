// Package ddl turns typed table metadata into Oracle DDL text. The
// generator is a pure transform: no I/O, no database access.
package ddl

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/flext/flext-db-oracle/internal/dberr"
	"github.com/flext/flext-db-oracle/internal/schema"
)

// Data types whose DDL rendering takes a size suffix.
var (
	lengthTypes    = map[string]bool{"VARCHAR2": true, "CHAR": true, "NVARCHAR2": true, "NCHAR": true}
	precisionTypes = map[string]bool{"NUMBER": true, "DECIMAL": true, "NUMERIC": true}
)

// Generator emits Oracle DDL from schema metadata.
type Generator struct {
	log zerolog.Logger
}

// New creates a Generator.
func New(log zerolog.Logger) *Generator {
	return &Generator{log: log.With().Str("component", "ddl").Logger()}
}

// TableDDL returns the CREATE TABLE statement for t, followed by
// COMMENT statements when metadata carries comments. A table with no
// columns cannot be rendered and fails validation.
func (g *Generator) TableDDL(t *schema.Table) (string, error) {
	if len(t.Columns) == 0 {
		return "", dberr.Validationf("table %s has no columns", t.FullName())
	}
	for i := range t.Columns {
		if err := t.Columns[i].Validate(); err != nil {
			return "", err
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "CREATE TABLE %s (\n", t.FullName())

	clauses := make([]string, 0, len(t.Columns))
	for _, c := range t.Columns {
		clauses = append(clauses, "    "+ColumnClause(c))
	}
	b.WriteString(strings.Join(clauses, ",\n"))
	b.WriteString("\n)")

	if t.Tablespace != "" {
		b.WriteString(" TABLESPACE " + t.Tablespace)
	}
	b.WriteString(";")

	if t.Comments != "" {
		fmt.Fprintf(&b, "\nCOMMENT ON TABLE %s IS '%s';", t.FullName(), escapeLiteral(t.Comments))
	}
	for _, c := range t.Columns {
		if c.Comments != "" {
			fmt.Fprintf(&b, "\nCOMMENT ON COLUMN %s.%s IS '%s';",
				t.FullName(), c.Name, escapeLiteral(c.Comments))
		}
	}

	return b.String(), nil
}

// ColumnClause renders one column definition:
// name TYPE(length|precision,scale) [DEFAULT value] [NOT NULL].
func ColumnClause(c schema.Column) string {
	var b strings.Builder
	b.WriteString(c.Name)
	b.WriteString(" ")
	b.WriteString(typeClause(c))

	if c.DefaultValue != nil && *c.DefaultValue != "" {
		b.WriteString(" DEFAULT " + *c.DefaultValue)
	}
	if !c.Nullable {
		b.WriteString(" NOT NULL")
	}
	return b.String()
}

func typeClause(c schema.Column) string {
	dataType := strings.ToUpper(c.DataType)

	switch {
	case lengthTypes[dataType]:
		if c.MaxLength != nil && *c.MaxLength > 0 {
			return fmt.Sprintf("%s(%d)", dataType, *c.MaxLength)
		}
	case precisionTypes[dataType]:
		if c.Precision != nil {
			if c.Scale != nil && *c.Scale != 0 {
				return fmt.Sprintf("%s(%d,%d)", dataType, *c.Precision, *c.Scale)
			}
			return fmt.Sprintf("%s(%d)", dataType, *c.Precision)
		}
	}
	return dataType
}

// ConstraintDDL returns the ALTER TABLE statement for one constraint.
// Unsupported constraint shapes are skipped with a warning; ok=false
// means no statement was produced.
func (g *Generator) ConstraintDDL(tableName string, c schema.Constraint) (stmt string, ok bool) {
	switch c.Type {
	case schema.ConstraintPrimaryKey:
		if len(c.Columns) == 0 {
			break
		}
		return fmt.Sprintf("ALTER TABLE %s ADD CONSTRAINT %s PRIMARY KEY (%s);",
			tableName, c.Name, strings.Join(c.Columns, ", ")), true

	case schema.ConstraintForeignKey:
		if len(c.Columns) == 0 || c.ReferencedTable == "" {
			break
		}
		stmt := fmt.Sprintf("ALTER TABLE %s ADD CONSTRAINT %s FOREIGN KEY (%s) REFERENCES %s",
			tableName, c.Name, strings.Join(c.Columns, ", "), c.ReferencedTable)
		if len(c.ReferencedColumns) > 0 {
			stmt += fmt.Sprintf(" (%s)", strings.Join(c.ReferencedColumns, ", "))
		}
		return stmt + ";", true

	case schema.ConstraintUnique:
		if len(c.Columns) == 0 {
			break
		}
		return fmt.Sprintf("ALTER TABLE %s ADD CONSTRAINT %s UNIQUE (%s);",
			tableName, c.Name, strings.Join(c.Columns, ", ")), true

	case schema.ConstraintCheck:
		if c.Condition == "" {
			break
		}
		return fmt.Sprintf("ALTER TABLE %s ADD CONSTRAINT %s CHECK (%s);",
			tableName, c.Name, c.Condition), true
	}

	g.log.Warn().Str("constraint", c.Name).Str("type", string(c.Type)).
		Msg("skipping constraint with no DDL rendering")
	return "", false
}

// IndexDDL returns the CREATE INDEX statement for idx, or "" for
// primary-key indexes, which the PK constraint already implies.
func (g *Generator) IndexDDL(idx schema.Index) string {
	if idx.Primary {
		return ""
	}

	var b strings.Builder
	b.WriteString("CREATE ")
	if idx.Unique {
		b.WriteString("UNIQUE ")
	}
	fmt.Fprintf(&b, "INDEX %s ON %s (%s)", idx.Name, idx.TableName, strings.Join(idx.Columns, ", "))
	if idx.Tablespace != "" {
		b.WriteString(" TABLESPACE " + idx.Tablespace)
	}
	b.WriteString(";")
	return b.String()
}

// SchemaDDL renders a full creation script for the given tables in
// foreign-key dependency order. Tables involved in a reference cycle
// are appended after all resolvable ones, in name order, with a
// warning. includeDrops prepends DROP TABLE statements in reverse
// creation order.
func (g *Generator) SchemaDDL(tables []schema.Table, includeDrops bool) (string, error) {
	if len(tables) == 0 {
		return "", dberr.Validation("no tables to generate DDL for")
	}

	ordered, cyclic := SortByDependencies(tables)
	if len(cyclic) > 0 {
		names := make([]string, len(cyclic))
		for i, t := range cyclic {
			names[i] = t.Name
		}
		g.log.Warn().Strs("tables", names).
			Msg("foreign key cycle detected; emitting remaining tables in name order")
		ordered = append(ordered, cyclic...)
	}

	var stmts []string

	if includeDrops {
		for i := len(ordered) - 1; i >= 0; i-- {
			stmts = append(stmts, fmt.Sprintf("DROP TABLE %s CASCADE CONSTRAINTS;", ordered[i].FullName()))
		}
	}

	for i := range ordered {
		t := &ordered[i]

		create, err := g.TableDDL(t)
		if err != nil {
			return "", err
		}
		stmts = append(stmts, create)

		for _, c := range t.Constraints {
			if stmt, ok := g.ConstraintDDL(t.FullName(), c); ok {
				stmts = append(stmts, stmt)
			}
		}
		for _, idx := range t.Indexes {
			if stmt := g.IndexDDL(idx); stmt != "" {
				stmts = append(stmts, stmt)
			}
		}
	}

	return strings.Join(stmts, "\n"), nil
}

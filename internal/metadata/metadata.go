// Package metadata translates the Oracle data dictionary
// (ALL_TABLES, ALL_TAB_COLUMNS, ALL_CONSTRAINTS, ALL_CONS_COLUMNS,
// ALL_INDEXES) into the typed schema model.
//
// A schema or table with no matching catalog rows yields an empty
// successful result, not an error: "no rows found" and "not found" are
// deliberately the same outcome here.
package metadata

import (
	"context"
	"database/sql"
	"strings"

	"github.com/rs/zerolog"

	"github.com/flext/flext-db-oracle/internal/dberr"
	"github.com/flext/flext-db-oracle/internal/pool"
	"github.com/flext/flext-db-oracle/internal/schema"
)

// Introspector reads catalog views through a borrowed pool connection.
type Introspector struct {
	pool *pool.Pool
	log  zerolog.Logger
}

// New creates an Introspector over the given pool.
func New(p *pool.Pool, log zerolog.Logger) *Introspector {
	return &Introspector{
		pool: p,
		log:  log.With().Str("component", "metadata").Logger(),
	}
}

// Normalize upper-cases an identifier the way Oracle stores unquoted
// names. Empty input falls back to def.
func Normalize(name, def string) string {
	if name == "" {
		name = def
	}
	return strings.ToUpper(strings.TrimSpace(name))
}

// owner resolves the target schema, defaulting to the connected user.
func (in *Introspector) owner(schemaName string) string {
	return Normalize(schemaName, in.pool.Config().Username)
}

// Schemas lists the distinct owners visible to the current user.
func (in *Introspector) Schemas(ctx context.Context) ([]string, error) {
	const q = `SELECT DISTINCT OWNER FROM ALL_TABLES ORDER BY OWNER`

	var owners []string
	err := in.pool.WithConn(ctx, func(conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx, q)
		if err != nil {
			return dberr.Metadata("listing schemas", err)
		}
		defer rows.Close()

		for rows.Next() {
			var owner string
			if err := rows.Scan(&owner); err != nil {
				return dberr.Metadata("scanning schema row", err)
			}
			owners = append(owners, owner)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return owners, nil
}

// Tables returns every table in the schema, columns included. One
// columns query is issued per table; fine for interactive metadata
// tooling, a known limit for very large schemas.
func (in *Introspector) Tables(ctx context.Context, schemaName string) ([]schema.Table, error) {
	owner := in.owner(schemaName)

	const q = `
		SELECT TABLE_NAME, NUM_ROWS, TABLESPACE_NAME
		FROM ALL_TABLES
		WHERE OWNER = :1
		ORDER BY TABLE_NAME`

	var tables []schema.Table
	err := in.pool.WithConn(ctx, func(conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx, q, owner)
		if err != nil {
			return dberr.Metadata("listing tables in "+owner, err)
		}
		defer rows.Close()

		for rows.Next() {
			var (
				name       string
				numRows    sql.NullInt64
				tablespace sql.NullString
			)
			if err := rows.Scan(&name, &numRows, &tablespace); err != nil {
				return dberr.Metadata("scanning table row", err)
			}

			t := schema.Table{SchemaName: owner, Name: name, Tablespace: tablespace.String}
			if numRows.Valid {
				t.RowCount = &numRows.Int64
			}
			tables = append(tables, t)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}

	for i := range tables {
		cols, err := in.Columns(ctx, tables[i].Name, owner)
		if err != nil {
			return nil, err
		}
		tables[i].Columns = cols
	}

	in.log.Debug().Str("owner", owner).Int("tables", len(tables)).Msg("tables introspected")
	return tables, nil
}

// Columns returns the columns of one table in COLUMN_ID order.
func (in *Introspector) Columns(ctx context.Context, tableName, schemaName string) ([]schema.Column, error) {
	owner := in.owner(schemaName)
	table := Normalize(tableName, "")
	if table == "" {
		return nil, dberr.Validation("table name must not be empty")
	}

	const q = `
		SELECT COLUMN_NAME, DATA_TYPE, NULLABLE, DATA_DEFAULT,
			CHAR_LENGTH, DATA_PRECISION, DATA_SCALE
		FROM ALL_TAB_COLUMNS
		WHERE OWNER = :1 AND TABLE_NAME = :2
		ORDER BY COLUMN_ID`

	var columns []schema.Column
	err := in.pool.WithConn(ctx, func(conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx, q, owner, table)
		if err != nil {
			return dberr.Metadata("listing columns of "+owner+"."+table, err)
		}
		defer rows.Close()

		for rows.Next() {
			var (
				name, dataType, nullable string
				defaultVal               sql.NullString
				charLen, precision, scale sql.NullInt64
			)
			if err := rows.Scan(&name, &dataType, &nullable, &defaultVal, &charLen, &precision, &scale); err != nil {
				return dberr.Metadata("scanning column row", err)
			}

			col := schema.Column{
				Name:     name,
				DataType: dataType,
				Nullable: nullable == "Y",
			}
			if defaultVal.Valid {
				v := strings.TrimSpace(defaultVal.String)
				col.DefaultValue = &v
			}
			col.MaxLength = nullableInt(charLen)
			col.Precision = nullableInt(precision)
			col.Scale = nullableInt(scale)
			columns = append(columns, col)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return columns, nil
}

// TableMetadata composes columns, constraints, and indexes into one
// Table. Any failing sub-query fails the whole call.
func (in *Introspector) TableMetadata(ctx context.Context, tableName, schemaName string) (*schema.Table, error) {
	owner := in.owner(schemaName)
	table := Normalize(tableName, "")
	if table == "" {
		return nil, dberr.Validation("table name must not be empty")
	}

	columns, err := in.Columns(ctx, table, owner)
	if err != nil {
		return nil, err
	}

	constraints, err := in.constraints(ctx, owner, table)
	if err != nil {
		return nil, err
	}

	indexes, err := in.indexes(ctx, owner, table)
	if err != nil {
		return nil, err
	}

	tableComment, colComments, err := in.comments(ctx, owner, table)
	if err != nil {
		return nil, err
	}

	t := &schema.Table{
		SchemaName:  owner,
		Name:        table,
		Columns:     columns,
		Constraints: constraints,
		Indexes:     indexes,
		Comments:    tableComment,
	}
	markKeyColumns(t)
	applyComments(t, colComments)
	return t, nil
}

// Version returns the first banner line from V$VERSION.
func (in *Introspector) Version(ctx context.Context) (string, error) {
	const q = `SELECT BANNER FROM V$VERSION WHERE ROWNUM = 1`

	var banner string
	err := in.pool.WithConn(ctx, func(conn *sql.Conn) error {
		return conn.QueryRowContext(ctx, q).Scan(&banner)
	})
	if err != nil {
		return "", dberr.Metadata("reading database version", err)
	}
	return banner, nil
}

func (in *Introspector) constraints(ctx context.Context, owner, table string) ([]schema.Constraint, error) {
	const q = `
		SELECT c.CONSTRAINT_NAME, c.CONSTRAINT_TYPE, cc.COLUMN_NAME,
			c.SEARCH_CONDITION,
			rc.TABLE_NAME AS REF_TABLE, rcc.COLUMN_NAME AS REF_COLUMN
		FROM ALL_CONSTRAINTS c
		LEFT JOIN ALL_CONS_COLUMNS cc
			ON c.CONSTRAINT_NAME = cc.CONSTRAINT_NAME AND c.OWNER = cc.OWNER
		LEFT JOIN ALL_CONSTRAINTS rc
			ON c.R_CONSTRAINT_NAME = rc.CONSTRAINT_NAME AND c.R_OWNER = rc.OWNER
		LEFT JOIN ALL_CONS_COLUMNS rcc
			ON rc.CONSTRAINT_NAME = rcc.CONSTRAINT_NAME AND rc.OWNER = rcc.OWNER
			AND cc.POSITION = rcc.POSITION
		WHERE c.OWNER = :1 AND c.TABLE_NAME = :2
		ORDER BY c.CONSTRAINT_NAME, cc.POSITION`

	type consRow struct {
		name, ctype        string
		column             sql.NullString
		condition          sql.NullString
		refTable, refCol   sql.NullString
	}
	var consRows []consRow

	err := in.pool.WithConn(ctx, func(conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx, q, owner, table)
		if err != nil {
			return dberr.Metadata("listing constraints of "+owner+"."+table, err)
		}
		defer rows.Close()

		for rows.Next() {
			var r consRow
			if err := rows.Scan(&r.name, &r.ctype, &r.column, &r.condition, &r.refTable, &r.refCol); err != nil {
				return dberr.Metadata("scanning constraint row", err)
			}
			consRows = append(consRows, r)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}

	grouped := make(map[string]*schema.Constraint)
	var order []string
	for _, r := range consRows {
		ctype, ok := constraintType(r.ctype)
		if !ok {
			in.log.Warn().Str("constraint", r.name).Str("type", r.ctype).
				Msg("skipping unsupported constraint type")
			continue
		}

		c, exists := grouped[r.name]
		if !exists {
			c = &schema.Constraint{
				Name:      r.name,
				Type:      ctype,
				Condition: r.condition.String,
			}
			// NOT NULL constraints surface as generated checks; the
			// column model already carries nullability.
			if ctype == schema.ConstraintCheck && strings.Contains(c.Condition, "IS NOT NULL") {
				continue
			}
			grouped[r.name] = c
			order = append(order, r.name)
		}
		if r.column.Valid {
			c.Columns = append(c.Columns, r.column.String)
		}
		if r.refTable.Valid {
			c.ReferencedTable = r.refTable.String
		}
		if r.refCol.Valid {
			c.ReferencedColumns = append(c.ReferencedColumns, r.refCol.String)
		}
	}

	constraints := make([]schema.Constraint, 0, len(order))
	for _, name := range order {
		constraints = append(constraints, *grouped[name])
	}
	return constraints, nil
}

func (in *Introspector) indexes(ctx context.Context, owner, table string) ([]schema.Index, error) {
	const q = `
		SELECT i.INDEX_NAME, i.UNIQUENESS, i.TABLESPACE_NAME, ic.COLUMN_NAME,
			CASE WHEN p.CONSTRAINT_NAME IS NULL THEN 0 ELSE 1 END AS IS_PK
		FROM ALL_INDEXES i
		JOIN ALL_IND_COLUMNS ic
			ON i.INDEX_NAME = ic.INDEX_NAME AND i.TABLE_OWNER = ic.TABLE_OWNER
		LEFT JOIN ALL_CONSTRAINTS p
			ON p.CONSTRAINT_NAME = i.INDEX_NAME AND p.OWNER = i.TABLE_OWNER
			AND p.CONSTRAINT_TYPE = 'P'
		WHERE i.TABLE_OWNER = :1 AND i.TABLE_NAME = :2
		ORDER BY i.INDEX_NAME, ic.COLUMN_POSITION`

	grouped := make(map[string]*schema.Index)
	var order []string

	err := in.pool.WithConn(ctx, func(conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx, q, owner, table)
		if err != nil {
			return dberr.Metadata("listing indexes of "+owner+"."+table, err)
		}
		defer rows.Close()

		for rows.Next() {
			var (
				name, uniqueness string
				tablespace       sql.NullString
				column           string
				isPK             int
			)
			if err := rows.Scan(&name, &uniqueness, &tablespace, &column, &isPK); err != nil {
				return dberr.Metadata("scanning index row", err)
			}

			idx, exists := grouped[name]
			if !exists {
				idx = &schema.Index{
					Name:       name,
					TableName:  table,
					Unique:     uniqueness == "UNIQUE",
					Primary:    isPK == 1,
					Tablespace: tablespace.String,
				}
				grouped[name] = idx
				order = append(order, name)
			}
			idx.Columns = append(idx.Columns, column)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}

	indexes := make([]schema.Index, 0, len(order))
	for _, name := range order {
		indexes = append(indexes, *grouped[name])
	}
	return indexes, nil
}

// comments reads the table and per-column comments from
// ALL_TAB_COMMENTS and ALL_COL_COMMENTS. Uncommented objects have NULL
// rows in both views and are simply absent from the result.
func (in *Introspector) comments(ctx context.Context, owner, table string) (string, map[string]string, error) {
	const tq = `
		SELECT COMMENTS FROM ALL_TAB_COMMENTS
		WHERE OWNER = :1 AND TABLE_NAME = :2`
	const cq = `
		SELECT COLUMN_NAME, COMMENTS FROM ALL_COL_COMMENTS
		WHERE OWNER = :1 AND TABLE_NAME = :2`

	var tableComment string
	colComments := make(map[string]string)

	err := in.pool.WithConn(ctx, func(conn *sql.Conn) error {
		var comment sql.NullString
		if err := conn.QueryRowContext(ctx, tq, owner, table).Scan(&comment); err != nil && err != sql.ErrNoRows {
			return dberr.Metadata("reading table comment of "+owner+"."+table, err)
		}
		tableComment = comment.String

		rows, err := conn.QueryContext(ctx, cq, owner, table)
		if err != nil {
			return dberr.Metadata("listing column comments of "+owner+"."+table, err)
		}
		defer rows.Close()

		for rows.Next() {
			var (
				column  string
				comment sql.NullString
			)
			if err := rows.Scan(&column, &comment); err != nil {
				return dberr.Metadata("scanning column comment row", err)
			}
			if comment.Valid {
				colComments[column] = comment.String
			}
		}
		return rows.Err()
	})
	if err != nil {
		return "", nil, err
	}
	return tableComment, colComments, nil
}

// applyComments copies catalog comments onto the matching columns.
func applyComments(t *schema.Table, colComments map[string]string) {
	for i := range t.Columns {
		if c, ok := colComments[t.Columns[i].Name]; ok {
			t.Columns[i].Comments = c
		}
	}
}

// markKeyColumns sets the per-column key flags from the table's
// constraints.
func markKeyColumns(t *schema.Table) {
	pkCols := make(map[string]bool)
	fkCols := make(map[string]bool)
	for _, c := range t.Constraints {
		switch c.Type {
		case schema.ConstraintPrimaryKey:
			for _, col := range c.Columns {
				pkCols[col] = true
			}
		case schema.ConstraintForeignKey:
			for _, col := range c.Columns {
				fkCols[col] = true
			}
		}
	}
	for i := range t.Columns {
		t.Columns[i].IsPrimaryKey = pkCols[t.Columns[i].Name]
		t.Columns[i].IsForeignKey = fkCols[t.Columns[i].Name]
	}
}

func constraintType(code string) (schema.ConstraintType, bool) {
	switch code {
	case "P":
		return schema.ConstraintPrimaryKey, true
	case "R":
		return schema.ConstraintForeignKey, true
	case "U":
		return schema.ConstraintUnique, true
	case "C":
		return schema.ConstraintCheck, true
	default:
		return "", false
	}
}

func nullableInt(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}

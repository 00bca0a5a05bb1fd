// Package pool owns the driver connection pool. It is the only
// component holding a live database handle; everything else borrows
// connections through it for the duration of one operation.
package pool

import (
	"context"
	"database/sql"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	_ "github.com/sijms/go-ora/v2"

	"github.com/flext/flext-db-oracle/internal/config"
	"github.com/flext/flext-db-oracle/internal/dberr"
	"github.com/flext/flext-db-oracle/internal/schema"
)

// Pool wraps a *sql.DB configured for Oracle via go-ora. The handle is
// set exactly once by Initialize (or lazily on first acquisition) and
// cleared exactly once by Close; mu guards both transitions.
type Pool struct {
	cfg *config.Config
	log zerolog.Logger

	mu sync.Mutex
	db *sql.DB
}

// New creates an uninitialized Pool for the given target.
func New(cfg *config.Config, log zerolog.Logger) *Pool {
	return &Pool{cfg: cfg, log: log.With().Str("component", "pool").Logger()}
}

// Config returns the pool's connection configuration.
func (p *Pool) Config() *config.Config {
	return p.cfg
}

// Initialize validates the configuration, opens the driver pool, and
// verifies connectivity with a ping.
func (p *Pool) Initialize(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.initLocked(ctx)
}

func (p *Pool) initLocked(ctx context.Context) error {
	if p.db != nil {
		return nil
	}

	if err := p.cfg.Validate(); err != nil {
		return dberr.Configuration(err.Error())
	}

	db, err := sql.Open("oracle", p.cfg.DSN())
	if err != nil {
		return dberr.Connection("opening driver pool", err)
	}

	db.SetMaxOpenConns(p.cfg.Pool.Max)
	db.SetMaxIdleConns(p.cfg.Pool.Min)
	db.SetConnMaxIdleTime(p.cfg.Pool.Timeout)

	pingCtx, cancel := context.WithTimeout(ctx, p.cfg.ConnectTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return classify(err, "connecting to "+p.cfg.ConnectionString())
	}

	p.db = db
	p.log.Info().
		Str("target", p.cfg.ConnectionString()).
		Int("pool_min", p.cfg.Pool.Min).
		Int("pool_max", p.cfg.Pool.Max).
		Msg("pool initialized")
	return nil
}

// handle returns the live *sql.DB, initializing lazily if needed.
func (p *Pool) handle(ctx context.Context) (*sql.DB, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.initLocked(ctx); err != nil {
		return nil, err
	}
	return p.db, nil
}

// Acquire checks a single connection out of the pool. The caller must
// hand it back with Release; prefer WithConn for scoped use. Blocks up
// to the pool timeout when all connections are busy.
func (p *Pool) Acquire(ctx context.Context) (*sql.Conn, error) {
	db, err := p.handle(ctx)
	if err != nil {
		return nil, err
	}

	acqCtx, cancel := context.WithTimeout(ctx, p.cfg.Pool.Timeout)
	defer cancel()

	conn, err := db.Conn(acqCtx)
	if err != nil {
		return nil, classify(err, "acquiring connection")
	}
	return conn, nil
}

// Release returns a connection to the pool. Safe to call with nil.
func (p *Pool) Release(conn *sql.Conn) {
	if conn == nil {
		return
	}
	if err := conn.Close(); err != nil {
		p.log.Warn().Err(err).Msg("releasing connection")
	}
}

// WithConn acquires a connection, invokes fn, and releases the
// connection on every exit path.
func (p *Pool) WithConn(ctx context.Context, fn func(*sql.Conn) error) error {
	conn, err := p.Acquire(ctx)
	if err != nil {
		return err
	}
	defer p.Release(conn)
	return fn(conn)
}

// Close tears the pool down. Closing an uninitialized or already
// closed pool is a no-op success.
func (p *Pool) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.db == nil {
		return nil
	}

	err := p.db.Close()
	p.db = nil
	if err != nil {
		p.log.Warn().Err(err).Msg("closing pool")
		return dberr.Connection("closing pool", err)
	}
	p.log.Info().Msg("pool closed")
	return nil
}

// IsConnected reports whether the pool handle is set. It does not probe
// liveness; use TestConnection for that.
func (p *Pool) IsConnected() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.db != nil
}

// Result is the outcome of Execute: Rows for SELECT statements,
// RowsAffected for everything else.
type Result struct {
	Rows         *schema.QueryResult
	RowsAffected int64
}

// IsSelect reports whether stmt routes through the query path.
// Classification is by leading keyword only; DDL and DML both take the
// exec path.
func IsSelect(stmt string) bool {
	trimmed := strings.TrimSpace(stmt)
	return len(trimmed) >= 6 && strings.EqualFold(trimmed[:6], "SELECT")
}

// Execute runs one statement with bind parameters. SELECTs return
// fetched rows; other statements return the affected row count.
func (p *Pool) Execute(ctx context.Context, stmt string, args ...any) (*Result, error) {
	db, err := p.handle(ctx)
	if err != nil {
		return nil, err
	}

	opCtx, cancel := context.WithTimeout(ctx, p.cfg.QueryTimeout)
	defer cancel()

	op := uuid.NewString()[:8]
	start := time.Now()

	if IsSelect(stmt) {
		rows, err := db.QueryContext(opCtx, stmt, args...)
		if err != nil {
			return nil, classify(err, "executing query")
		}
		qr, err := collectRows(rows)
		if err != nil {
			return nil, err
		}
		qr.ExecutionTime = time.Since(start)
		p.log.Debug().Str("op", op).Int("rows", qr.RowCount).
			Dur("elapsed", qr.ExecutionTime).Msg("query executed")
		return &Result{Rows: qr}, nil
	}

	res, err := db.ExecContext(opCtx, stmt, args...)
	if err != nil {
		return nil, classify(err, "executing statement")
	}
	affected, err := res.RowsAffected()
	if err != nil {
		affected = 0
	}
	p.log.Debug().Str("op", op).Int64("affected", affected).
		Dur("elapsed", time.Since(start)).Msg("statement executed")
	return &Result{RowsAffected: affected}, nil
}

// ExecuteMany runs one parameterized statement once per bind set and
// returns the total affected row count. Drivers that do not report a
// row count contribute zero.
func (p *Pool) ExecuteMany(ctx context.Context, stmt string, batch [][]any) (int64, error) {
	db, err := p.handle(ctx)
	if err != nil {
		return 0, err
	}

	opCtx, cancel := context.WithTimeout(ctx, p.cfg.QueryTimeout)
	defer cancel()

	prepared, err := db.PrepareContext(opCtx, stmt)
	if err != nil {
		return 0, classify(err, "preparing statement")
	}
	defer prepared.Close()

	var total int64
	for _, args := range batch {
		res, err := prepared.ExecContext(opCtx, args...)
		if err != nil {
			return total, classify(err, "executing batch")
		}
		if affected, err := res.RowsAffected(); err == nil {
			total += affected
		}
	}
	return total, nil
}

// Transaction runs fn inside a transaction: commit on nil return,
// rollback on error. No savepoint or partial-commit semantics.
func (p *Pool) Transaction(ctx context.Context, fn func(*sql.Tx) error) error {
	db, err := p.handle(ctx)
	if err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return classify(err, "beginning transaction")
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			p.log.Warn().Err(rbErr).Msg("rollback failed")
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return classify(err, "committing transaction")
	}
	return nil
}

// TestConnection probes liveness with SELECT 1 FROM DUAL and returns a
// fresh status report.
func (p *Pool) TestConnection(ctx context.Context) schema.ConnectionStatus {
	status := schema.ConnectionStatus{
		Host:      p.cfg.Host,
		Port:      p.cfg.Port,
		Database:  p.cfg.Database(),
		Username:  p.cfg.Username,
		LastCheck: time.Now(),
	}

	res, err := p.Execute(ctx, "SELECT 1 FROM DUAL")
	if err != nil {
		status.ErrorMessage = err.Error()
		return status
	}
	status.Connected = res.Rows != nil && res.Rows.RowCount == 1
	return status
}

// collectRows drains a *sql.Rows into a QueryResult, closing it.
func collectRows(rows *sql.Rows) (*schema.QueryResult, error) {
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, dberr.Query("reading column names", err)
	}

	result := &schema.QueryResult{Columns: columns, Rows: [][]any{}}
	for rows.Next() {
		values := make([]any, len(columns))
		dest := make([]any, len(columns))
		for i := range values {
			dest[i] = &values[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, dberr.Query("scanning row", err)
		}
		result.Rows = append(result.Rows, values)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Query("iterating rows", err)
	}

	result.RowCount = len(result.Rows)
	return result, nil
}

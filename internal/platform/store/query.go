package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"labelit/internal/platform/store/sqlite"
)

// Row is the scan contract of a single row
type Row interface {
	Scan(dest ...any) error
}

// Rows iterates a result set
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close()
}

// Result reports what a write touched
type Result interface {
	RowsAffected() int64
}

// Querier is the read and write surface repos use
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (Result, error)
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) Row
}

// TxRunner is a Querier that can also run fn inside a transaction
type TxRunner interface {
	Querier
	Tx(ctx context.Context, fn func(q Querier) error) error
}

// conn is what *sql.DB and *sql.Tx share
type conn interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// querier runs statements on c and reports each one to the tracer
type querier struct {
	c      conn
	tracer sqlite.QueryTracer
	slowMs int
}

func (q querier) Exec(ctx context.Context, stmt string, args ...any) (Result, error) {
	start := time.Now()
	res, err := q.c.ExecContext(ctx, stmt, args...)
	q.trace(ctx, stmt, args, start, err)
	if err != nil {
		return affected(0), err
	}
	n, _ := res.RowsAffected()
	return affected(n), nil
}

func (q querier) Query(ctx context.Context, stmt string, args ...any) (Rows, error) {
	start := time.Now()
	rs, err := q.c.QueryContext(ctx, stmt, args...)
	q.trace(ctx, stmt, args, start, err)
	if err != nil {
		return nil, err
	}
	return sqlRows{rs}, nil
}

// QueryRow traces once Scan has run so the scan error is reported
func (q querier) QueryRow(ctx context.Context, stmt string, args ...any) Row {
	start := time.Now()
	return tracedRow{r: q.c.QueryRowContext(ctx, stmt, args...), done: func(err error) {
		q.trace(ctx, stmt, args, start, err)
	}}
}

func (q querier) trace(ctx context.Context, stmt string, args []any, start time.Time, err error) {
	if q.tracer == nil {
		return
	}
	us := time.Since(start).Microseconds()
	q.tracer.OnQuery(ctx, sqlite.QueryEvent{
		SQL:       stmt,
		Args:      args,
		ElapsedUS: us,
		Err:       err,
		Slow:      q.slowMs >= 0 && us >= int64(q.slowMs)*1000,
	})
}

// DB is the TxRunner over an open sqlite handle
type DB struct {
	d *sqlite.DB
}

func (db *DB) q() querier { return querier{c: db.d.DB, tracer: db.d.Tracer, slowMs: db.d.SlowMs} }

// Exec implements Querier
func (db *DB) Exec(ctx context.Context, stmt string, args ...any) (Result, error) {
	return db.q().Exec(ctx, stmt, args...)
}

// Query implements Querier
func (db *DB) Query(ctx context.Context, stmt string, args ...any) (Rows, error) {
	return db.q().Query(ctx, stmt, args...)
}

// QueryRow implements Querier
func (db *DB) QueryRow(ctx context.Context, stmt string, args ...any) Row {
	return db.q().QueryRow(ctx, stmt, args...)
}

// Tx runs fn in a transaction, committing when fn returns nil
// there is no retry; lock waits are bounded by the connection busy_timeout
func (db *DB) Tx(ctx context.Context, fn func(q Querier) error) error {
	t, err := db.d.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	q := db.q()
	q.c = t
	if err := fn(q); err != nil {
		if rb := ignoreDone(t.Rollback()); rb != nil {
			return errors.Join(err, rb)
		}
		return err
	}
	return t.Commit()
}

// ignoreDone drops the error Rollback reports once the driver already ended the tx
func ignoreDone(err error) error {
	if errors.Is(err, sql.ErrTxDone) {
		return nil
	}
	return err
}

// Ping runs a trivial statement through the traced path
func (db *DB) Ping(ctx context.Context) error {
	if db == nil || db.d == nil {
		return errors.New("sqlite: nil handle")
	}
	var one int
	return db.QueryRow(ctx, "select 1").Scan(&one)
}

// Close closes the handle
func (db *DB) Close() error { return db.d.Close() }

// Path is the database file
func (db *DB) Path() string { return db.d.Path }

type affected int64

func (a affected) RowsAffected() int64 { return int64(a) }

type sqlRows struct{ r *sql.Rows }

func (x sqlRows) Next() bool            { return x.r.Next() }
func (x sqlRows) Scan(dst ...any) error { return x.r.Scan(dst...) }
func (x sqlRows) Err() error            { return x.r.Err() }
func (x sqlRows) Close()                { _ = x.r.Close() }

type tracedRow struct {
	r    *sql.Row
	done func(error)
}

func (x tracedRow) Scan(dst ...any) error {
	err := x.r.Scan(dst...)
	x.done(err)
	return err
}

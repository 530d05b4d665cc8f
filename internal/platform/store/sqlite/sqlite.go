// Package sqlite opens the annotation database with modernc.org/sqlite and optional query tracing
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	// registers the "sqlite" driver
	_ "modernc.org/sqlite"
)

// DriverName is the database/sql name registered by modernc.org/sqlite
const DriverName = "sqlite"

// Config configures the sqlite handle
type Config struct {
	Path        string
	SlowMs      int
	BusyTimeout time.Duration
}

// DB is a sqlite handle with an optional tracer
type DB struct {
	DB     *sql.DB
	Path   string
	Tracer QueryTracer
	SlowMs int
}

var sqlOpen = sql.Open

// DSN builds the driver connection string for path
// busy_timeout and foreign_keys are applied per connection by the driver
func DSN(path string, busy time.Duration) string {
	if busy <= 0 {
		busy = 5 * time.Second
	}
	q := url.Values{}
	q.Add("_pragma", fmt.Sprintf("busy_timeout(%d)", busy.Milliseconds()))
	q.Add("_pragma", "foreign_keys(1)")
	q.Set("_txlock", "immediate")
	return "file:" + uriPath.Replace(path) + "?" + q.Encode()
}

// uriPath escapes what sqlite's uri parser would treat as query, fragment or escape
var uriPath = strings.NewReplacer("%", "%25", "?", "%3F", "#", "%23")

// Open creates the parent directory if needed and opens a single connection handle
// The file itself is created lazily by sqlite on first use
func Open(ctx context.Context, cfg Config, tracer QueryTracer) (*DB, error) {
	if cfg.Path == "" {
		return nil, errors.New("sqlite: empty path")
	}
	if dir := filepath.Dir(cfg.Path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("sqlite: mkdir %s: %w", dir, err)
		}
	}

	db, err := sqlOpen(DriverName, DSN(cfg.Path, cfg.BusyTimeout))
	if err != nil {
		return nil, err
	}
	// one writer; every statement sees the previous commit
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	return &DB{
		DB:     db,
		Path:   cfg.Path,
		Tracer: tracer,
		SlowMs: cfg.SlowMs,
	}, nil
}

// Close closes the handle
func (d *DB) Close() error {
	if d != nil && d.DB != nil {
		return d.DB.Close()
	}
	return nil
}

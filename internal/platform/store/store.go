// Package store opens the sqlite annotation backend behind a small query seam
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"labelit/internal/platform/logger"
	"labelit/internal/platform/store/sqlite"

	"github.com/rs/zerolog"
)

// Config aggregates per backend configuration
type Config struct {
	AppName string
	SQLite  SQLiteConfig
}

// SQLiteConfig configures the annotation database file and tracing
type SQLiteConfig struct {
	Enabled     bool
	Path        string
	LogSQL      bool
	SlowQueryMs int

	// BusyTimeout is handed to the driver as busy_timeout, default 5s
	BusyTimeout time.Duration
	// PingRetries bounds the boot ping loop, default 5
	PingRetries int
}

// Store owns the open backends, a disabled backend stays nil
type Store struct {
	Log logger.Logger
	SQL TxRunner
}

// Option mutates Store during Open
type Option func(*Store)

// WithLogger sets the logger handed to the sql tracer
func WithLogger(l logger.Logger) Option { return func(s *Store) { s.Log = l } }

// Open constructs a Store with the backends enabled in cfg
func Open(ctx context.Context, cfg Config, opts ...Option) (*Store, error) {
	s := &Store{Log: zerolog.Nop()}
	for _, o := range opts {
		o(s)
	}
	if !cfg.SQLite.Enabled {
		return s, nil
	}

	var tr sqlite.QueryTracer
	if cfg.SQLite.LogSQL {
		tr = sqlite.Tracer(s.Log)
	}
	d, err := sqlite.Open(ctx, sqlite.Config{
		Path:        cfg.SQLite.Path,
		SlowMs:      cfg.SQLite.SlowQueryMs,
		BusyTimeout: cfg.SQLite.BusyTimeout,
	}, tr)
	if err != nil {
		return nil, err
	}
	if err := waitReady(ctx, d, cfg.SQLite.PingRetries); err != nil {
		_ = d.Close()
		return nil, err
	}
	s.SQL = &DB{d: d}
	return s, nil
}

// waitReady pings with a doubling backoff capped at one second
func waitReady(ctx context.Context, d *sqlite.DB, attempts int) error {
	if attempts <= 0 {
		attempts = 5
	}
	backoff := 50 * time.Millisecond
	var err error
	for range attempts {
		pctx, cancel := context.WithTimeout(ctx, 3*time.Second)
		err = d.DB.PingContext(pctx)
		cancel()
		if err == nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
		backoff = min(backoff*2, time.Second)
	}
	return fmt.Errorf("sqlite ping failed after %d attempts: %w", attempts, err)
}

// Guard pings every open backend
func (s *Store) Guard(ctx context.Context) error {
	if s == nil {
		return errors.New("nil store")
	}
	if p, ok := s.SQL.(interface{ Ping(context.Context) error }); ok {
		if err := p.Ping(ctx); err != nil {
			return fmt.Errorf("sqlite: %w", err)
		}
	}
	return nil
}

// Close closes every open backend
func (s *Store) Close(context.Context) error {
	if c, ok := s.SQL.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}

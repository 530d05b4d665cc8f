package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"labelit/internal/platform/testkit"
)

func TestOpen_EmptyPath(t *testing.T) {
	t.Parallel()

	if _, err := Open(context.Background(), Config{}, nil); err == nil {
		t.Fatalf("expected error for empty path")
	}
}

func TestOpen_SQLOpenError(t *testing.T) {
	// mutates a package seam
	testkit.Serial(t)

	testkit.Swap(t, &sqlOpen, func(string, string) (*sql.DB, error) {
		return nil, errors.New("boom")
	})

	_, err := Open(context.Background(), Config{Path: filepath.Join(t.TempDir(), "x.db")}, nil)
	if err == nil || err.Error() != "boom" {
		t.Fatalf("expected sqlOpen error, got %v", err)
	}
}

func TestDSN_Pragmas(t *testing.T) {
	t.Parallel()

	d := DSN("/tmp/labelit.db", 0)
	testkit.MustContain(t, d, "file:/tmp/labelit.db?")
	testkit.MustContain(t, d, "busy_timeout%285000%29")
	testkit.MustContain(t, d, "_txlock=immediate")

	if !strings.Contains(DSN("a.db", 250*time.Millisecond), "busy_timeout%28250%29") {
		t.Fatalf("custom busy timeout not applied")
	}
}

func TestDSN_EscapesURIPath(t *testing.T) {
	t.Parallel()

	d := DSN("/tmp/a?b#c%d.db", 0)
	testkit.MustContain(t, d, "file:/tmp/a%3Fb%23c%25d.db?_pragma=")
}

func TestOpen_PathWithQueryCharacters(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "odd?name#1.db")
	db, err := Open(context.Background(), Config{Path: path}, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if _, err := db.DB.ExecContext(context.Background(), `create table t (k text)`); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("database file not created under its literal name: %v", err)
	}
}

func TestOpen_CreatesParentAndRoundTrips(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "labelit.db")
	db, err := Open(context.Background(), Config{Path: path, SlowMs: 7}, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if db.SlowMs != 7 || db.Path != path {
		t.Fatalf("config not carried: %+v", db)
	}
	if got := db.DB.Stats().MaxOpenConnections; got != 1 {
		t.Fatalf("MaxOpenConnections = %d want 1", got)
	}

	ctx := context.Background()
	if _, err := db.DB.ExecContext(ctx, `create table t (k text primary key)`); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("database file not created: %v", err)
	}
}

func TestClose_NilSafe(t *testing.T) {
	t.Parallel()

	var d *DB
	if err := d.Close(); err != nil {
		t.Fatalf("nil Close: %v", err)
	}
	if err := (&DB{}).Close(); err != nil {
		t.Fatalf("zero Close: %v", err)
	}
}

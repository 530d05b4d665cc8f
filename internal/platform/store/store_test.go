package store

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	perr "labelit/internal/platform/errors"
	"labelit/internal/platform/store/sqlite"
)

type recordTracer struct {
	mu  sync.Mutex
	evs []sqlite.QueryEvent
}

func (r *recordTracer) OnQuery(_ context.Context, ev sqlite.QueryEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.evs = append(r.evs, ev)
}

func openDB(t *testing.T, tr sqlite.QueryTracer) *DB {
	t.Helper()
	d, err := sqlite.Open(context.Background(), sqlite.Config{Path: filepath.Join(t.TempDir(), "labelit.db")}, tr)
	if err != nil {
		t.Fatalf("sqlite.Open: %v", err)
	}
	db := &DB{d: d}
	t.Cleanup(func() { _ = db.Close() })
	if _, err := db.Exec(context.Background(), `create table tags (fingerprint text primary key, target text)`); err != nil {
		t.Fatalf("create: %v", err)
	}
	return db
}

func TestOpen_DisabledLeavesSQLNil(t *testing.T) {
	t.Parallel()

	st, err := Open(context.Background(), Config{})
	if err != nil || st.SQL != nil {
		t.Fatalf("Open = %+v, %v", st, err)
	}
	if err := st.Guard(context.Background()); err != nil {
		t.Fatalf("Guard with nothing open: %v", err)
	}
	if err := st.Close(context.Background()); err != nil {
		t.Fatalf("Close with nothing open: %v", err)
	}
}

func TestOpen_SQLiteGuardAndClose(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "labelit.db")
	st, err := Open(ctx, Config{SQLite: SQLiteConfig{Enabled: true, Path: path, LogSQL: true}})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := st.Guard(ctx); err != nil {
		t.Fatalf("Guard: %v", err)
	}
	if got := st.SQL.(*DB).Path(); got != path {
		t.Fatalf("Path = %s", got)
	}
	if err := st.Close(ctx); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := st.Guard(ctx); err == nil {
		t.Fatalf("Guard after Close should fail")
	}

	var nilStore *Store
	if err := nilStore.Guard(ctx); err == nil {
		t.Fatalf("nil store Guard should fail")
	}
}

func TestOpen_EmptyPathFails(t *testing.T) {
	t.Parallel()

	if _, err := Open(context.Background(), Config{SQLite: SQLiteConfig{Enabled: true}}); err == nil {
		t.Fatalf("expected error for empty path")
	}
}

func TestHelpers(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := openDB(t, nil)

	if err := ExecOne(ctx, db, `insert into tags values (?, ?)`, "a", "A"); err != nil {
		t.Fatalf("ExecOne insert: %v", err)
	}
	if err := ExecOne(ctx, db, `insert into tags values (?, ?)`, "b", "B"); err != nil {
		t.Fatalf("ExecOne insert: %v", err)
	}
	err := ExecOne(ctx, db, `update tags set target = 'x' where fingerprint = ?`, "missing")
	if !perr.IsCode(err, perr.ErrorCodeDB) {
		t.Fatalf("zero rows err = %v", err)
	}

	n, err := Scalar[int](ctx, db, `select count(1) from tags`)
	if err != nil || n != 2 {
		t.Fatalf("Scalar = %d, %v", n, err)
	}

	got, err := Many(ctx, db, func(r Row) (string, error) {
		var fp, target string
		err := r.Scan(&fp, &target)
		return fp + "=" + target, err
	}, `select fingerprint, target from tags order by rowid`)
	if err != nil || len(got) != 2 || got[0] != "a=A" || got[1] != "b=B" {
		t.Fatalf("Many = %v, %v", got, err)
	}

	if _, err := Many(ctx, db, func(Row) (int, error) { return 0, nil }, `select nope from tags`); err == nil {
		t.Fatalf("Many with bad sql should fail")
	}
}

func TestTx_CommitAndRollback(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := openDB(t, nil)

	err := db.Tx(ctx, func(q Querier) error {
		return ExecOne(ctx, q, `insert into tags values ('a', 'A')`)
	})
	if err != nil {
		t.Fatalf("commit: %v", err)
	}

	boom := perr.DBf("disk full")
	err = db.Tx(ctx, func(q Querier) error {
		if err := ExecOne(ctx, q, `insert into tags values ('b', 'B')`); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("rollback err = %v", err)
	}

	n, _ := Scalar[int](ctx, db, `select count(1) from tags`)
	if n != 1 {
		t.Fatalf("rows after rollback = %d want 1", n)
	}
}

func TestTx_RunsOnce(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := openDB(t, nil)

	calls := 0
	err := db.Tx(ctx, func(Querier) error {
		calls++
		return errors.New("database is locked")
	})
	if err == nil || calls != 1 {
		t.Fatalf("Tx = %v after %d calls want 1", err, calls)
	}
}

func TestTracer_SeesEveryStatement(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	tr := &recordTracer{}
	db := openDB(t, tr)

	_ = db.Tx(ctx, func(q Querier) error {
		_, err := q.Exec(ctx, `insert into tags values ('a', 'A')`)
		return err
	})
	if err := db.Ping(ctx); err != nil {
		t.Fatalf("Ping: %v", err)
	}
	var missing string
	_ = db.QueryRow(ctx, `select target from tags where fingerprint = 'zz'`).Scan(&missing)

	tr.mu.Lock()
	defer tr.mu.Unlock()
	// create, insert in tx, ping, miss
	if len(tr.evs) != 4 {
		t.Fatalf("events = %d", len(tr.evs))
	}
	if last := tr.evs[3]; last.Err == nil {
		t.Fatalf("scan error not traced: %+v", last)
	}
}

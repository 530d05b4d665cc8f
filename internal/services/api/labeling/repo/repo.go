// Package repo provides sqlite access for labeled tags
package repo

import (
	"context"

	"labelit/internal/core/annotate"
	"labelit/internal/modkit/repokit"
	perr "labelit/internal/platform/errors"
	"labelit/internal/platform/store"
)

// Repo is the minimal persistence surface for labeling
type Repo interface {
	Migrate(ctx context.Context) error
	Upsert(ctx context.Context, a annotate.Annotation) error
	ExportAll(ctx context.Context) ([]annotate.Annotation, error)
	Count(ctx context.Context) (int, error)
	Snapshot(ctx context.Context, path string) error
}

type (
	// SQLite is a binder that can bind the repo to a Queryer or TxRunner
	SQLite struct{}
	// queries implements the Repo interface
	queries struct{ q repokit.Queryer }
)

// NewSQLite returns a binder that can bind the repo to a Queryer or TxRunner
func NewSQLite() repokit.Binder[Repo] { return SQLite{} }

// Bind wires a Queryer to the repo
func (SQLite) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

// Migrate creates the tags table when missing
func (r *queries) Migrate(ctx context.Context) error {
	const sql = `
create table if not exists tags (
	fingerprint text primary key,
	content     text,
	target      text
)
`
	if _, err := r.q.Exec(ctx, sql); err != nil {
		return perr.FromSQLite(err, "labeling: migrate tags")
	}
	return nil
}

// Upsert inserts a tag or replaces the target of the existing row with the same fingerprint
// content is left as first written
func (r *queries) Upsert(ctx context.Context, a annotate.Annotation) error {
	const sql = `
insert into tags (fingerprint, content, target)
values (?, ?, ?)
on conflict(fingerprint) do update set target = excluded.target
`
	if err := store.ExecOne(ctx, r.q, sql, a.Fingerprint, a.Content, a.Target); err != nil {
		return perr.FromSQLitef(err, "labeling: upsert %s", a.Fingerprint)
	}
	return nil
}

// ExportAll returns every tag in first insert order
func (r *queries) ExportAll(ctx context.Context) ([]annotate.Annotation, error) {
	const sql = `
select fingerprint, coalesce(content, ''), coalesce(target, '')
from tags
order by rowid asc
`
	out, err := store.Many(ctx, r.q, scanAnnotation, sql)
	if err != nil {
		return nil, perr.FromSQLite(err, "labeling: export tags")
	}
	return out, nil
}

// Count returns the number of stored tags
func (r *queries) Count(ctx context.Context) (int, error) {
	n, err := store.Scalar[int](ctx, r.q, `select count(1) from tags`)
	if err != nil {
		return 0, perr.FromSQLite(err, "labeling: count tags")
	}
	return n, nil
}

// Snapshot writes a consistent copy of the whole database to path
// path must not exist yet
func (r *queries) Snapshot(ctx context.Context, path string) error {
	if _, err := r.q.Exec(ctx, `vacuum into ?`, path); err != nil {
		return perr.FromSQLitef(err, "labeling: snapshot to %s", path)
	}
	return nil
}

func scanAnnotation(row store.Row) (annotate.Annotation, error) {
	var a annotate.Annotation
	err := row.Scan(&a.Fingerprint, &a.Content, &a.Target)
	return a, err
}

package store

import (
	"context"

	perr "labelit/internal/platform/errors"
)

// ExecOne runs a write that must touch exactly one row
func ExecOne(ctx context.Context, q Querier, stmt string, args ...any) error {
	res, err := q.Exec(ctx, stmt, args...)
	if err != nil {
		return err
	}
	if n := res.RowsAffected(); n != 1 {
		return perr.DBf("store: %d rows affected, want 1", n)
	}
	return nil
}

// Scalar scans the first column of the first row into T
func Scalar[T any](ctx context.Context, q Querier, stmt string, args ...any) (T, error) {
	var v T
	err := q.QueryRow(ctx, stmt, args...).Scan(&v)
	return v, err
}

// Many maps every row with scan
func Many[T any](ctx context.Context, q Querier, scan func(Row) (T, error), stmt string, args ...any) ([]T, error) {
	rows, err := q.Query(ctx, stmt, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

// Package repokit is the persistence vocabulary service repos are written against
package repokit

import "labelit/internal/platform/store"

type (
	// Queryer is what a bound repo runs statements on, a plain handle or an open tx
	Queryer = store.Querier

	// TxRunner is a Queryer that can open transactions
	TxRunner = store.TxRunner

	// Row is a single scanned row
	Row = store.Row
)

// Binder binds a domain repo to a Queryer
// services bind once to the handle and again to every tx they open
type Binder[T any] interface {
	Bind(Queryer) T
}

// BindFunc adapts a function to Binder
type BindFunc[T any] func(Queryer) T

// Bind calls f
func (f BindFunc[T]) Bind(q Queryer) T { return f(q) }

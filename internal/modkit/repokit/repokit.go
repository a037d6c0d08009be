// Package repokit holds the seams domain repos are written against,
// so a repo never imports pgx or clickhouse directly
package repokit

import (
	"context"
	"fmt"
	"time"

	"chatstats/internal/platform/store"
)

type (
	// Queryer runs SQL against a pool or an open transaction
	Queryer = store.RowQuerier
	// TxRunner opens a transaction and hands fn a Queryer bound to it
	TxRunner = store.TxRunner
	// Rows is a query result set
	Rows = store.Rows
	// Row is a single row result
	Row = store.Row
	// CommandTag reports what an Exec touched
	CommandTag = store.CommandTag
	// Columnar is the clickhouse seam rollups are written through
	Columnar = store.Clickhouse
)

// Binder turns a Queryer into a domain repo. One binder serves both the pool and a tx
type Binder[T any] interface {
	Bind(Queryer) T
}

// BindFunc adapts a plain constructor to Binder
type BindFunc[T any] func(Queryer) T

// Bind implements Binder
func (f BindFunc[T]) Bind(q Queryer) T { return f(q) }

// MustBind binds b to q. A nil q is a wiring bug and panics
func MustBind[T any](b Binder[T], q Queryer) T {
	if q == nil {
		panic("repokit: bind on nil Queryer")
	}
	return b.Bind(q)
}

// WithTx runs fn in one transaction of tx
func WithTx(ctx context.Context, tx TxRunner, fn func(Queryer) error) error {
	return tx.Tx(ctx, fn)
}

// Guarder checks that required backends answer; *store.Store implements it
type Guarder interface {
	Guard(context.Context) error
}

const guardTimeout = 5 * time.Second

// MustGuard panics when g reports a dead backend. It is meant for process start.
// A ctx without deadline is bounded by guardTimeout
func MustGuard(ctx context.Context, g Guarder) {
	if g == nil {
		panic("repokit: nil guard")
	}
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, guardTimeout)
		defer cancel()
	}
	if err := g.Guard(ctx); err != nil {
		panic(fmt.Errorf("repokit: guard: %w", err))
	}
}

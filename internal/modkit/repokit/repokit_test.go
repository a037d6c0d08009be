package repokit

import (
	"context"
	"errors"
	"testing"
	"time"

	"chatstats/internal/platform/store"
	kit "chatstats/internal/platform/testkit"
)

type guardFunc func(context.Context) error

func (g guardFunc) Guard(ctx context.Context) error { return g(ctx) }

func TestMustGuard(t *testing.T) {
	var sawDeadline bool
	ok := guardFunc(func(ctx context.Context) error {
		_, sawDeadline = ctx.Deadline()
		return nil
	})
	kit.MustNotPanic(t, func() { MustGuard(context.Background(), ok) })
	if !sawDeadline {
		t.Fatalf("expected a default deadline")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	want, _ := ctx.Deadline()
	keep := guardFunc(func(c context.Context) error {
		if got, _ := c.Deadline(); !got.Equal(want) {
			t.Fatalf("caller deadline replaced")
		}
		return nil
	})
	MustGuard(ctx, keep)

	kit.MustPanic(t, func() {
		MustGuard(context.Background(), guardFunc(func(context.Context) error { return errors.New("pg down") }))
	})
	kit.MustPanic(t, func() { MustGuard(context.Background(), nil) })
}

type querier struct{ store.RowQuerier }

func TestMustBind(t *testing.T) {
	calls := 0
	b := BindFunc[int](func(q Queryer) int {
		calls++
		return 42
	})

	if got := MustBind[int](b, querier{}); got != 42 || calls != 1 {
		t.Fatalf("MustBind = %d (calls %d)", got, calls)
	}
	kit.MustPanic(t, func() { MustBind[int](b, nil) })
}

type txRunner struct {
	store.RowQuerier
	ran bool
}

func (r *txRunner) Tx(_ context.Context, fn func(store.RowQuerier) error) error {
	r.ran = true
	return fn(r.RowQuerier)
}

func TestWithTx(t *testing.T) {
	tx := &txRunner{}
	boom := errors.New("boom")
	if err := WithTx(context.Background(), tx, func(Queryer) error { return boom }); !errors.Is(err, boom) {
		t.Fatalf("WithTx err = %v", err)
	}
	if !tx.ran {
		t.Fatalf("fn not run in tx")
	}
}

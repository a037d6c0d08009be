package store

import (
	"context"
	"errors"
	"time"

	"chatstats/internal/platform/store/pg"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// pgxQuerier is the surface *pgxpool.Pool and pgx.Tx share
type pgxQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// traced is a RowQuerier that reports every statement to tracer.
// slowMs < 0 never marks a statement slow
type traced struct {
	q      pgxQuerier
	tracer pg.QueryTracer
	slowMs int
}

// observe starts the clock for one statement; call the result with the outcome
func (t traced) observe(ctx context.Context, sql string, args []any) func(error) {
	if t.tracer == nil {
		return func(error) {}
	}
	began := time.Now()
	return func(err error) {
		us := time.Since(began).Microseconds()
		t.tracer.OnQuery(ctx, pg.QueryEvent{
			SQL:       sql,
			Args:      args,
			ElapsedUS: us,
			Err:       err,
			Slow:      t.slowMs >= 0 && us >= int64(t.slowMs)*1000,
		})
	}
}

func (t traced) Exec(ctx context.Context, sql string, args ...any) (CommandTag, error) {
	done := t.observe(ctx, sql, args)
	tag, err := t.q.Exec(ctx, sql, args...)
	done(err)
	return tag, err
}

// Query is timed until the result set opens; scanning is not counted
func (t traced) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	done := t.observe(ctx, sql, args)
	rs, err := t.q.Query(ctx, sql, args...)
	done(err)
	if err != nil {
		return nil, err
	}
	return resultRows{rs}, nil
}

// QueryRow is timed until Scan returns
func (t traced) QueryRow(ctx context.Context, sql string, args ...any) Row {
	done := t.observe(ctx, sql, args)
	return resultRow{r: t.q.QueryRow(ctx, sql, args...), done: done}
}

// pgAdapter is the TxRunner and Pinger over an open pool
type pgAdapter struct {
	traced
	db *pg.PG
}

func newPGAdapter(db *pg.PG) *pgAdapter {
	return &pgAdapter{traced: traced{q: db.Pool, tracer: db.Tracer, slowMs: db.SlowMs}, db: db}
}

func (a *pgAdapter) Ping(ctx context.Context) error {
	if a == nil || a.db == nil {
		return errors.New("pg: nil adapter")
	}
	var one int
	return a.QueryRow(ctx, "SELECT 1").Scan(&one)
}

func (a *pgAdapter) Close() error {
	a.db.Close()
	return nil
}

// Tx commits when fn returns nil and rolls back otherwise. Statements in fn are traced too
func (a *pgAdapter) Tx(ctx context.Context, fn func(q RowQuerier) error) error {
	return pgx.BeginFunc(ctx, a.db.Pool, func(tx pgx.Tx) error {
		return fn(traced{q: tx, tracer: a.tracer, slowMs: a.slowMs})
	})
}

// pgconn.CommandTag already satisfies CommandTag; rows need thin wrappers

type resultRow struct {
	r    pgx.Row
	done func(error)
}

func (x resultRow) Scan(dst ...any) error {
	err := x.r.Scan(dst...)
	x.done(err)
	return err
}

type resultRows struct{ pgx.Rows }

func (x resultRows) Columns() []string {
	fds := x.FieldDescriptions()
	names := make([]string, 0, len(fds))
	for _, fd := range fds {
		names = append(names, fd.Name)
	}
	return names
}

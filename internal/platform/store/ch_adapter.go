package store

import (
	"context"
	"errors"
	"fmt"

	chx "chatstats/internal/platform/store/ch"
)

// chClient is what the adapter needs from *ch.CH
type chClient interface {
	Insert(ctx context.Context, table string, rows [][]any) error
	Exec(ctx context.Context, sql string, args ...any) error
	Query(ctx context.Context, sql string, args ...any) (chx.Rows, error)
	Ping(ctx context.Context) error
	Close() error
}

// clickhouseAdapter narrows a clickhouse client to Clickhouse and Pinger.
// Exec and Close pass straight through the embedded client
type clickhouseAdapter struct {
	chClient
}

var (
	_ Clickhouse = (*clickhouseAdapter)(nil)
	_ Pinger     = (*clickhouseAdapter)(nil)
)

func newCHAdapter(c chClient) Clickhouse { return &clickhouseAdapter{chClient: c} }

// Insert accepts only [][]any, the shape batches append
func (a *clickhouseAdapter) Insert(ctx context.Context, table string, data any) error {
	rows, ok := data.([][]any)
	if !ok {
		return fmt.Errorf("store: clickhouse insert wants [][]any, got %T", data)
	}
	return a.chClient.Insert(ctx, table, rows)
}

func (a *clickhouseAdapter) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	rs, err := a.chClient.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return &chRows{Rows: rs}, nil
}

func (a *clickhouseAdapter) Ping(ctx context.Context) error {
	if a == nil || a.chClient == nil {
		return errors.New("store: nil clickhouse adapter")
	}
	return a.chClient.Ping(ctx)
}

// chRows keeps the driver's Close error and reports it from Err
type chRows struct {
	chx.Rows
	closeErr error
}

func (r *chRows) Close()     { r.closeErr = r.Rows.Close() }
func (r *chRows) Err() error { return errors.Join(r.Rows.Err(), r.closeErr) }

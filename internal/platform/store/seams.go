package store

import "context"

// Row is one scanned result row
type Row interface {
	Scan(dest ...any) error
}

// Rows is a result set. Close must be called once iteration stops
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close()
	Columns() []string
}

// CommandTag describes what an Exec changed
type CommandTag interface {
	String() string
	RowsAffected() int64
}

// RowQuerier runs SQL against the pool or inside a transaction
type RowQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) Row
}

// TxRunner is a RowQuerier that can also open a transaction.
// fn's error rolls the transaction back
type TxRunner interface {
	RowQuerier
	Tx(ctx context.Context, fn func(q RowQuerier) error) error
}

// Clickhouse is the columnar seam the rollup archive writes through
type Clickhouse interface {
	// Insert sends data, a [][]any in table column order, as one batch
	Insert(ctx context.Context, table string, data any) error
	Exec(ctx context.Context, sql string, args ...any) error
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
	Close() error
}

// Pinger reports whether a backend answers
type Pinger interface{ Ping(context.Context) error }

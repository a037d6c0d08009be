package store

import (
	"context"
	"errors"
	"fmt"
)

// memRows is an in-memory Rows over fixed column values
type memRows struct {
	cols   []string
	data   [][]any
	idx    int
	err    error
	closed bool
}

func newMemRows(cols []string, data ...[]any) *memRows {
	return &memRows{cols: cols, data: data, idx: -1}
}

func (r *memRows) Next() bool {
	if r.err != nil {
		return false
	}
	r.idx++
	return r.idx < len(r.data)
}

func (r *memRows) Scan(dest ...any) error {
	if r.idx < 0 || r.idx >= len(r.data) {
		return errors.New("scan out of range")
	}
	row := r.data[r.idx]
	if len(row) != len(dest) {
		return fmt.Errorf("scan: %d columns into %d targets", len(row), len(dest))
	}
	for i, v := range row {
		switch d := dest[i].(type) {
		case *string:
			*d = v.(string)
		case *int:
			*d = v.(int)
		case *int64:
			*d = v.(int64)
		default:
			return fmt.Errorf("scan: unsupported target %T", d)
		}
	}
	return nil
}

func (r *memRows) Err() error        { return r.err }
func (r *memRows) Close()            { r.closed = true }
func (r *memRows) Columns() []string { return r.cols }

type memTag int64

func (t memTag) String() string      { return fmt.Sprintf("INSERT 0 %d", int64(t)) }
func (t memTag) RowsAffected() int64 { return int64(t) }

// memQuerier serves canned results and records the last statement
type memQuerier struct {
	rows     *memRows
	affected int64
	err      error
	lastSQL  string
}

func (q *memQuerier) Exec(_ context.Context, sql string, _ ...any) (CommandTag, error) {
	q.lastSQL = sql
	return memTag(q.affected), q.err
}

func (q *memQuerier) Query(_ context.Context, sql string, _ ...any) (Rows, error) {
	q.lastSQL = sql
	if q.err != nil {
		return nil, q.err
	}
	return q.rows, nil
}

func (q *memQuerier) QueryRow(_ context.Context, sql string, _ ...any) Row {
	q.lastSQL = sql
	q.rows.Next()
	return q.rows
}

package store

import (
	"context"
	"errors"
	"testing"

	perr "chatstats/internal/platform/errors"
)

type summary struct {
	ID    string
	Total int
}

func scanSummary(r Row) (summary, error) {
	var s summary
	err := r.Scan(&s.ID, &s.Total)
	return s, err
}

func TestExecOne(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	cases := []struct {
		name     string
		affected int64
		err      error
		ok       bool
	}{
		{"one row", 1, nil, true},
		{"no rows", 0, nil, false},
		{"two rows", 2, nil, false},
		{"driver error", 1, errors.New("conn reset"), false},
	}
	for _, tc := range cases {
		q := &memQuerier{affected: tc.affected, err: tc.err}
		err := ExecOne(ctx, q, "INSERT INTO reports VALUES ($1)", "id")
		if (err == nil) != tc.ok {
			t.Fatalf("%s: err = %v", tc.name, err)
		}
	}
}

func TestScalar(t *testing.T) {
	t.Parallel()
	q := &memQuerier{rows: newMemRows([]string{"count"}, []any{int64(42)})}
	n, err := Scalar[int64](context.Background(), q, "SELECT count(*) FROM reports")
	if err != nil || n != 42 {
		t.Fatalf("Scalar = %d, %v", n, err)
	}
}

func TestOne(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	cols := []string{"id", "total_messages"}

	got, err := One(ctx, &memQuerier{rows: newMemRows(cols, []any{"a", 3})}, scanSummary, "SELECT")
	if err != nil || got != (summary{"a", 3}) {
		t.Fatalf("One = %+v, %v", got, err)
	}

	_, err = One(ctx, &memQuerier{rows: newMemRows(cols)}, scanSummary, "SELECT")
	if !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("empty result err = %v, want not found", err)
	}

	_, err = One(ctx, &memQuerier{rows: newMemRows(cols, []any{"a", 1}, []any{"b", 2})}, scanSummary, "SELECT")
	if !errors.Is(err, ErrTooManyRows) {
		t.Fatalf("two rows err = %v", err)
	}

	_, err = One(ctx, &memQuerier{err: errors.New("down")}, scanSummary, "SELECT")
	if err == nil || err.Error() != "down" {
		t.Fatalf("query err = %v", err)
	}
}

func TestMany(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	cols := []string{"id", "total_messages"}

	rs := newMemRows(cols, []any{"a", 1}, []any{"b", 2})
	got, err := Many(ctx, &memQuerier{rows: rs}, scanSummary, "SELECT")
	if err != nil || len(got) != 2 || got[1].ID != "b" || !rs.closed {
		t.Fatalf("Many = %+v, %v closed=%v", got, err, rs.closed)
	}

	empty, err := Many(ctx, &memQuerier{rows: newMemRows(cols)}, scanSummary, "SELECT")
	if err != nil || empty == nil || len(empty) != 0 {
		t.Fatalf("empty Many = %#v, %v", empty, err)
	}

	bad := newMemRows(cols, []any{"a", 1})
	bad.err = errors.New("stream broke")
	if _, err := Many(ctx, &memQuerier{rows: bad}, scanSummary, "SELECT"); err == nil {
		t.Fatalf("expected rows error")
	}
}

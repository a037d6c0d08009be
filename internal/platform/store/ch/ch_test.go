package ch

import (
	"context"
	"errors"
	"testing"

	"chatstats/internal/platform/testkit"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
)

// fakeBatch embeds driver.Batch so only the methods under test need bodies
type fakeBatch struct {
	driver.Batch
	rows    [][]any
	failAt  int
	sent    bool
	aborted bool
}

func (b *fakeBatch) Append(v ...any) error {
	if b.failAt > 0 && len(b.rows)+1 == b.failAt {
		return errors.New("bad row")
	}
	b.rows = append(b.rows, v)
	return nil
}
func (b *fakeBatch) Send() error  { b.sent = true; return nil }
func (b *fakeBatch) Abort() error { b.aborted = true; return nil }

type fakeConn struct {
	batch   *fakeBatch
	query   string
	pingErr error
	closed  bool
}

func (f *fakeConn) PrepareBatch(_ context.Context, q string, _ ...driver.PrepareBatchOption) (driver.Batch, error) {
	f.query = q
	return f.batch, nil
}
func (f *fakeConn) Exec(_ context.Context, q string, _ ...any) error { f.query = q; return nil }
func (f *fakeConn) Query(_ context.Context, q string, _ ...any) (driver.Rows, error) {
	f.query = q
	return nil, errors.New("no rows in fake")
}
func (f *fakeConn) Ping(context.Context) error { return f.pingErr }
func (f *fakeConn) Close() error               { f.closed = true; return nil }

func TestInsert_BatchesRows(t *testing.T) {
	t.Parallel()

	fc := &fakeConn{batch: &fakeBatch{}}
	c := &CH{conn: fc}
	rows := [][]any{{"id-1", "2024-02-01", uint32(3)}, {"id-1", "2024-02-02", uint32(1)}}
	if err := c.Insert(context.Background(), "report_daily", rows); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if fc.query != "INSERT INTO report_daily" || len(fc.batch.rows) != 2 || !fc.batch.sent {
		t.Fatalf("query=%q rows=%d sent=%v", fc.query, len(fc.batch.rows), fc.batch.sent)
	}
}

func TestInsert_EdgeCases(t *testing.T) {
	t.Parallel()

	fc := &fakeConn{batch: &fakeBatch{failAt: 2}}
	c := &CH{conn: fc}
	if err := c.Insert(context.Background(), "report_daily", nil); err != nil || fc.query != "" {
		t.Fatalf("empty insert should be a no-op: err=%v query=%q", err, fc.query)
	}
	if err := c.Insert(context.Background(), " ", [][]any{{1}}); err == nil {
		t.Fatalf("expected error for blank table")
	}
	if err := c.Insert(context.Background(), "t", [][]any{{1}, {2}}); err == nil || !fc.batch.aborted || fc.batch.sent {
		t.Fatalf("append failure: err=%v aborted=%v sent=%v", err, fc.batch.aborted, fc.batch.sent)
	}
}

func TestOpen_PingFailureCloses(t *testing.T) {
	testkit.Serial(t)

	fc := &fakeConn{pingErr: errors.New("down")}
	var got *clickhouse.Options
	testkit.Swap(t, &open, func(o *clickhouse.Options) (conn, error) {
		got = o
		return fc, nil
	})

	_, err := Open(context.Background(), Config{URL: "clickhouse://default@localhost:9000/chatstats", Role: "api", Version: "1.0.0"})
	if err == nil || !fc.closed {
		t.Fatalf("err=%v closed=%v", err, fc.closed)
	}
	if got == nil || len(got.ClientInfo.Products) == 0 || got.ClientInfo.Products[0].Name != "chatstats" {
		t.Fatalf("client info not applied: %+v", got)
	}
}

func TestOpen_Success(t *testing.T) {
	testkit.Serial(t)

	fc := &fakeConn{}
	testkit.Swap(t, &open, func(*clickhouse.Options) (conn, error) { return fc, nil })

	c, err := Open(context.Background(), Config{URL: "clickhouse://localhost:9000"})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := c.Exec(context.Background(), "SELECT 1"); err != nil || fc.query != "SELECT 1" {
		t.Fatalf("Exec err=%v query=%q", err, fc.query)
	}
	if err := c.Ping(context.Background()); err != nil {
		t.Fatalf("Ping: %v", err)
	}
	if err := c.Close(); err != nil || !fc.closed {
		t.Fatalf("Close err=%v closed=%v", err, fc.closed)
	}
}

func TestOpen_BadDSN(t *testing.T) {
	t.Parallel()
	if _, err := Open(context.Background(), Config{URL: "://nope"}); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestBuildClientInfo(t *testing.T) {
	t.Parallel()
	ci := BuildClientInfo(" cli ", "v1")
	if len(ci.Products) < 3 || ci.Products[1].Version != "cli" || ci.Products[0].Version != "v1" {
		t.Fatalf("products = %+v", ci.Products)
	}
}

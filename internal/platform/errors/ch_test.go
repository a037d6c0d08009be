package errors

import (
	"context"
	stderrs "errors"
	"fmt"
	"testing"

	"github.com/ClickHouse/clickhouse-go/v2"
)

func TestClickHouseErrorCode(t *testing.T) {
	cases := []struct {
		code int32
		want ErrorCode
		ret  bool
	}{
		{chErrTimeoutExceeded, ErrorCodeUnavailable, true},
		{chErrNetworkError, ErrorCodeUnavailable, true},
		{chErrTooManyParts, ErrorCodeUnavailable, true},
		{60, ErrorCodeDB, false}, // unknown table
		{1, ErrorCodeDB, false},
	}
	for _, c := range cases {
		err := fmt.Errorf("insert: %w", &clickhouse.Exception{Code: c.code, Message: "boom"})
		got, ok := ClickHouseErrorCode(err)
		if !ok || got != c.want {
			t.Fatalf("code %d: got %v/%v, want %v", c.code, got, ok, c.want)
		}
		if IsClickHouseRetryable(err) != c.ret {
			t.Fatalf("code %d: retryable mismatch", c.code)
		}
		if CodeOf(FromClickHouse(err, "insert")) != c.want {
			t.Fatalf("code %d: FromClickHouse mismatch", c.code)
		}
	}
}

func TestFromClickHouse_Foreign(t *testing.T) {
	if FromClickHouse(nil, "x") != nil {
		t.Fatalf("nil should stay nil")
	}
	if _, ok := ClickHouseErrorCode(stderrs.New("plain")); ok {
		t.Fatalf("plain error reported as clickhouse")
	}
	if !IsCode(FromClickHouse(context.DeadlineExceeded, "x"), ErrorCodeUnavailable) {
		t.Fatalf("deadline should map to unavailable")
	}
	if !IsCode(FromClickHousef(stderrs.New("eof"), "send %s", "batch"), ErrorCodeDB) {
		t.Fatalf("foreign error should map to db")
	}
	if Retryable(&clickhouse.Exception{Code: chErrSocketTimeout}) != true {
		t.Fatalf("Retryable should include clickhouse transient codes")
	}
}

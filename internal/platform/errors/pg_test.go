package errors

import (
	"context"
	stderrs "errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func pgErr(code, column string) error {
	return fmt.Errorf("exec: %w", &pgconn.PgError{Code: code, ColumnName: column})
}

func TestDBErrorCode(t *testing.T) {
	tests := []struct {
		state string
		want  ErrorCode
	}{
		{"23505", ErrorCodeDuplicateKey},
		{"23502", ErrorCodeValidation},
		{"23514", ErrorCodeValidation},
		{"22001", ErrorCodeInvalidArgument},
		{"22P02", ErrorCodeInvalidArgument},
		{"42P01", ErrorCodeUnavailable},
		{"25006", ErrorCodeUnavailable},
		{"57P03", ErrorCodeUnavailable},
		{"53300", ErrorCodeUnavailable},
		{"40001", ErrorCodeDB},
		{"XX000", ErrorCodeDB},
	}
	for _, tc := range tests {
		got, ok := DBErrorCode(pgErr(tc.state, ""))
		if !ok || got != tc.want {
			t.Fatalf("DBErrorCode(%s) = %v/%v, want %v", tc.state, got, ok, tc.want)
		}
	}
	if _, ok := DBErrorCode(stderrs.New("no rows")); ok {
		t.Fatalf("plain error reported as postgres")
	}
	if _, ok := PgCode(nil); ok {
		t.Fatalf("nil reported as postgres")
	}
}

func TestFromPostgres(t *testing.T) {
	if FromPostgres(nil, "x") != nil || FromPostgresf(nil, "x %d", 1) != nil {
		t.Fatalf("nil should stay nil")
	}

	dup := FromPostgresf(pgErr("23505", ""), "insert report %s", "abc")
	if !IsCode(dup, ErrorCodeDuplicateKey) || !IsDuplicateKey(dup) {
		t.Fatalf("duplicate mapping: %v", dup)
	}

	nn := FromPostgres(pgErr("23502", "report"), "insert report")
	if w := WireFrom(nn); w.Field != "report" || w.Code != ErrorCodeValidation {
		t.Fatalf("not null wire = %+v", w)
	}

	// the column only names a field for validation classes
	trunc := FromPostgres(pgErr("22001", "report"), "insert report")
	if w := WireFrom(trunc); w.Field != "" {
		t.Fatalf("unexpected field %q", w.Field)
	}

	if !IsCode(FromPostgres(stderrs.New("conn closed"), "query"), ErrorCodeDB) {
		t.Fatalf("foreign error should map to db")
	}
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"serialization", pgErr("40001", ""), true},
		{"deadlock", pgErr("40P01", ""), true},
		{"lock", pgErr("55P03", ""), true},
		{"admin shutdown", pgErr("57P01", ""), true},
		{"unique", pgErr("23505", ""), false},
		{"commit text", fmt.Errorf("tx: %w", stderrs.New("commit unexpectedly resulted in rollback")), true},
		{"plain", stderrs.New("nope"), false},
		{"canceled", fmt.Errorf("q: %w", context.Canceled), false},
		{"deadline", context.DeadlineExceeded, false},
		{"nil", nil, false},
	}
	for _, tc := range tests {
		if got := IsRetryable(tc.err); got != tc.want {
			t.Fatalf("%s: IsRetryable = %v, want %v", tc.name, got, tc.want)
		}
		if tc.err != nil && Retryable(tc.err) != tc.want {
			t.Fatalf("%s: Retryable disagrees", tc.name)
		}
	}
}

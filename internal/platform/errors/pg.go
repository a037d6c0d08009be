package errors

import (
	"context"
	stderrs "errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE values the archive can hit
const (
	pgUniqueViolation   = "23505"
	pgNotNullViolation  = "23502"
	pgCheckViolation    = "23514"
	pgStringTruncated   = "22001"
	pgBadTextRepr       = "22P02"
	pgUndefinedTable    = "42P01"
	pgSerialization     = "40001"
	pgDeadlock          = "40P01"
	pgLockNotAvailable  = "55P03"
	pgReadOnlyTx        = "25006"
	pgCannotConnectNow  = "57P03"
	pgAdminShutdown     = "57P01"
	pgTooManyConnection = "53300"
)

var pgCodes = map[string]ErrorCode{
	pgUniqueViolation:   ErrorCodeDuplicateKey,
	pgNotNullViolation:  ErrorCodeValidation,
	pgCheckViolation:    ErrorCodeValidation,
	pgStringTruncated:   ErrorCodeInvalidArgument,
	pgBadTextRepr:       ErrorCodeInvalidArgument,
	pgReadOnlyTx:        ErrorCodeUnavailable,
	pgUndefinedTable:    ErrorCodeUnavailable,
	pgCannotConnectNow:  ErrorCodeUnavailable,
	pgAdminShutdown:     ErrorCodeUnavailable,
	pgTooManyConnection: ErrorCodeUnavailable,
}

// pgTransient lists the SQLSTATEs a retry can fix
var pgTransient = map[string]bool{
	pgSerialization:    true,
	pgDeadlock:         true,
	pgLockNotAvailable: true,
	pgAdminShutdown:    true,
}

// PgCode returns the SQLSTATE behind err
func PgCode(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if err == nil || !stderrs.As(err, &pgErr) {
		return "", false
	}
	return pgErr.Code, true
}

// DBErrorCode maps a Postgres error to an ErrorCode. ok is false for non Postgres errors.
// Unlisted states are ErrorCodeDB
func DBErrorCode(err error) (ErrorCode, bool) {
	state, ok := PgCode(err)
	if !ok {
		return ErrorCodeUnknown, false
	}
	if code, known := pgCodes[state]; known {
		return code, true
	}
	return ErrorCodeDB, true
}

// IsDuplicateKey reports a unique violation, e.g. a report id inserted twice
func IsDuplicateKey(err error) bool {
	state, _ := PgCode(err)
	return state == pgUniqueViolation
}

// FromPostgres wraps err with the mapped code. nil stays nil
func FromPostgres(err error, msg string) error {
	if err == nil {
		return nil
	}
	code, ok := DBErrorCode(err)
	if !ok {
		code = ErrorCodeDB
	}
	out := Wrap(err, code, msg)
	if pgErr := pgError(err); pgErr != nil && code == ErrorCodeValidation && pgErr.ColumnName != "" {
		out = WithField(out, pgErr.ColumnName)
	}
	return out
}

// FromPostgresf is FromPostgres with a formatted message
func FromPostgresf(err error, format string, a ...any) error {
	return FromPostgres(err, fmt.Sprintf(format, a...))
}

// IsRetryable reports transient Postgres failures. Context errors never are
func IsRetryable(err error) bool {
	if err == nil || stderrs.Is(err, context.Canceled) || stderrs.Is(err, context.DeadlineExceeded) {
		return false
	}
	if state, ok := PgCode(err); ok {
		return pgTransient[state]
	}
	// pgx reports a failed commit as plain text
	return strings.Contains(strings.ToLower(Root(err).Error()), "commit unexpectedly resulted in rollback")
}

func pgError(err error) *pgconn.PgError {
	var pgErr *pgconn.PgError
	if stderrs.As(err, &pgErr) {
		return pgErr
	}
	return nil
}

package errors

import (
	"context"
	stderrs "errors"
	"fmt"

	"github.com/ClickHouse/clickhouse-go/v2"
)

// ClickHouse server exception codes that clear up on retry
const (
	chErrTimeoutExceeded int32 = 159
	chErrTooManyQueries  int32 = 202
	chErrSocketTimeout   int32 = 209
	chErrNetworkError    int32 = 210
	chErrTooManyParts    int32 = 252
)

var chTransient = map[int32]bool{
	chErrTimeoutExceeded: true,
	chErrTooManyQueries:  true,
	chErrSocketTimeout:   true,
	chErrNetworkError:    true,
	chErrTooManyParts:    true,
}

// ExtractClickHouseException returns the server exception behind err, if any
func ExtractClickHouseException(err error) (*clickhouse.Exception, bool) {
	var ex *clickhouse.Exception
	if stderrs.As(err, &ex) {
		return ex, true
	}
	return nil, false
}

// ClickHouseErrorCode is Unavailable for transient exceptions and DB for the rest.
// ok is false when err carries no server exception
func ClickHouseErrorCode(err error) (code ErrorCode, ok bool) {
	ex, ok := ExtractClickHouseException(err)
	switch {
	case !ok:
		return ErrorCodeUnknown, false
	case chTransient[ex.Code]:
		return ErrorCodeUnavailable, true
	}
	return ErrorCodeDB, true
}

// FromClickHouse wraps err with its mapped code. A deadline without a server
// exception is Unavailable. nil stays nil
func FromClickHouse(err error, msg string) error {
	if err == nil {
		return nil
	}
	if code, ok := ClickHouseErrorCode(err); ok {
		return Wrap(err, code, msg)
	}
	if stderrs.Is(err, context.DeadlineExceeded) {
		return Wrap(err, ErrorCodeUnavailable, msg)
	}
	return Wrap(err, ErrorCodeDB, msg)
}

// FromClickHousef is FromClickHouse with a formatted message
func FromClickHousef(err error, format string, a ...any) error {
	return FromClickHouse(err, fmt.Sprintf(format, a...))
}

// IsClickHouseRetryable reports whether err carries a transient server exception
func IsClickHouseRetryable(err error) bool {
	ex, ok := ExtractClickHouseException(err)
	return ok && chTransient[ex.Code]
}

// Package net provides utilities for working with request contexts
package net

import (
	"context"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// ctxKey is an unexported key type for context values
type ctxKey string

const keyReportID ctxKey = "report_id"

// WithRequest annotates context with the request id and, once assigned, the report id
func WithRequest(ctx context.Context, reqID, reportID string) context.Context {
	if reqID != "" {
		// set chi RequestID so chimw.GetReqID can retrieve it
		ctx = context.WithValue(ctx, chimw.RequestIDKey, reqID)
	}
	if reportID != "" {
		ctx = context.WithValue(ctx, keyReportID, reportID)
	}
	return ctx
}

// RequestID returns the request id on the context if present
func RequestID(ctx context.Context) string {
	return chimw.GetReqID(ctx)
}

// ReportID returns the report id on the context if present
func ReportID(ctx context.Context) string {
	if v, ok := ctx.Value(keyReportID).(string); ok {
		return v
	}
	return ""
}

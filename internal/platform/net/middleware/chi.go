// Package middleware provides thin adapters over chi middleware without leaking chi types
package middleware

import (
	"compress/flate"
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// Func is the shape every middleware in this package returns
type Func = func(http.Handler) http.Handler

// RequestID propagates X-Request-ID or mints one
func RequestID() Func { return chimw.RequestID }

// RealIP trusts X-Forwarded-For and X-Real-IP for RemoteAddr
func RealIP() Func { return chimw.RealIP }

// Timeout cancels the request context after d
func Timeout(d time.Duration) Func { return chimw.Timeout(d) }

// NoCache marks every response as uncacheable
func NoCache() Func { return chimw.NoCache }

// StripSlashes drops one trailing slash before routing
func StripSlashes() Func { return chimw.StripSlashes }

// RequestSize caps the body; reads past n fail inside the handler
func RequestSize(n int64) Func { return chimw.RequestSize(n) }

// Heartbeat answers GET path with 200 before any other middleware runs
func Heartbeat(path string) Func { return chimw.Heartbeat(path) }

// ThrottleBacklog bounds concurrent analyses. Callers past limit+backlog,
// or waiting longer than ttl, get 429 or 503 from chi
func ThrottleBacklog(limit, backlog int, ttl time.Duration) Func {
	return chimw.ThrottleBacklog(limit, backlog, ttl)
}

// Compress gzips or deflates responses at level (see compress/flate)
func Compress(level int) Func {
	return chimw.NewCompressor(level).Handler
}

// Defaults is the outer stack every server gets before module middleware
func Defaults() []Func {
	return []Func{
		RealIP(),
		RequestID(),
		Correlate(),
		RecoverJSON,
		Compress(flate.DefaultCompression),
		NoCache(),
	}
}

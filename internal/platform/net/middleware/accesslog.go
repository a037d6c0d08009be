// Package middleware holds adapters and in house middlewares
package middleware

import (
	"net/http"
	"time"

	"chatstats/internal/platform/logger"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// AccessLogOptions configures the zerolog access log
type AccessLogOptions struct {
	// Slow logs requests at or above this duration as warn, 0 turns it off
	Slow time.Duration
	// Skip lists exact paths that are never logged
	Skip []string
}

// level picks the event level for one finished request
func (o AccessLogOptions) level(status int, took time.Duration) zerolog.Level {
	if status >= http.StatusInternalServerError {
		return zerolog.ErrorLevel
	}
	if o.Slow > 0 && took >= o.Slow {
		return zerolog.WarnLevel
	}
	return zerolog.InfoLevel
}

// AccessLogZerolog writes one line per request through the request scoped logger
func AccessLogZerolog(opt AccessLogOptions) func(http.Handler) http.Handler {
	quiet := map[string]bool{}
	for _, p := range opt.Skip {
		quiet[p] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if quiet[r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}

			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			began := time.Now()
			next.ServeHTTP(ww, r)
			took := time.Since(began)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}

			logger.C(r.Context()).WithLevel(opt.level(status, took)).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", status).
				Int64("request_bytes", r.ContentLength).
				Int("bytes", ww.BytesWritten()).
				Dur("elapsed", took).
				Msg("request done")
		})
	}
}

package middleware

import (
	"net/http"

	"chatstats/internal/platform/logger"
	pnet "chatstats/internal/platform/net"
)

// Correlate copies the chi request id onto the logger context and echoes it
// back as X-Request-ID. Mount it after RequestID
func Correlate() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rid := pnet.RequestID(r.Context())
			if rid == "" {
				next.ServeHTTP(w, r)
				return
			}
			w.Header().Set("X-Request-ID", rid)
			ctx := logger.WithRequest(r.Context(), rid, "")
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

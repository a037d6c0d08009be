package middleware

import (
	"net/http"
	"runtime/debug"
	"strings"

	perr "chatstats/internal/platform/errors"
	"chatstats/internal/platform/logger"
	pnet "chatstats/internal/platform/net"
)

// RecoverJSON turns a handler panic into the JSON 500 envelope.
// http.ErrAbortHandler is re-raised so net/http can drop the connection
func RecoverJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			v := recover()
			switch v {
			case nil:
				return
			case http.ErrAbortHandler:
				panic(v)
			}
			logPanic(r, v)

			rid := pnet.RequestID(r.Context())
			if rid != "" {
				w.Header().Set("X-Request-ID", rid)
			}
			status, body := pnet.Error(perr.PanicErrf("panic recovered"), rid)
			pnet.WriteJSON(w, status, body)
		}()
		next.ServeHTTP(w, r)
	})
}

// logPanic writes the value and an indented stack
func logPanic(r *http.Request, v any) {
	stack := strings.TrimSpace(string(debug.Stack()))
	logger.C(r.Context()).Error().
		Interface("panic", v).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Msg("panic recovered\n\t" + strings.ReplaceAll(stack, "\n", "\n\t"))
}

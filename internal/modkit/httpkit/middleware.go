package httpkit

import (
	"net/http"
	"time"

	"chatstats/internal/platform/config"
	"chatstats/internal/platform/net/middleware"
)

// StackOptions tunes the per API middleware stack
type StackOptions struct {
	CORSOrigins []string
	Timeout     time.Duration
	SlowRequest time.Duration
	// QuietPaths are never access logged
	QuietPaths []string
}

// StackFrom reads CORS_ORIGINS, REQUEST_TIMEOUT and SLOW_REQUEST from cfg
func StackFrom(cfg config.Conf) StackOptions {
	return StackOptions{
		CORSOrigins: cfg.MayCSV("CORS_ORIGINS", nil),
		Timeout:     cfg.MayDuration("REQUEST_TIMEOUT", 30*time.Second),
		SlowRequest: cfg.MayDuration("SLOW_REQUEST", 2*time.Second),
		QuietPaths:  []string{"/api/v1/meta/health", "/api/v1/meta/ready"},
	}
}

// CommonStack returns the middleware every versioned API scope gets
// the outer middleware.Defaults stack is applied once on the root router
func CommonStack(o StackOptions) []func(http.Handler) http.Handler {
	if o.Timeout <= 0 {
		o.Timeout = 30 * time.Second
	}
	return []func(http.Handler) http.Handler{
		middleware.AccessLogZerolog(middleware.AccessLogOptions{Slow: o.SlowRequest, Skip: o.QuietPaths}),
		middleware.CORS(middleware.CORSOptions{AllowedOrigins: o.CORSOrigins}),
		middleware.StripSlashes(),
		middleware.Timeout(o.Timeout),
	}
}

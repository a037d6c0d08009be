// Package logger wraps zerolog for the whole process.
// One root logger is built from LOG_* on first use. Request handlers log through C(ctx),
// which adds the request id, report id and upload name carried by the context
package logger

import (
	"context"
	"io"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"chatstats/internal/platform/config/raw"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
)

// Logger is the logging type used across packages
type Logger = zerolog.Logger

// Options configures a logger
type Options struct {
	Level        string // trace|debug|info|warn|error|fatal|panic, default debug
	Format       string // console|json
	Service      string
	Component    string
	Writer       io.Writer // default stdout
	WithCaller   bool
	SampleEvery  int
	StaticFields map[string]string
}

// FromEnv reads LOG_LEVEL, LOG_FORMAT, LOG_SERVICE, LOG_COMPONENT, LOG_CALLER and LOG_SAMPLE_EVERY
func FromEnv() Options {
	env := raw.New().Prefix("LOG_")
	return Options{
		Level:       env.Get("LEVEL", "debug"),
		Format:      strings.ToLower(env.Get("FORMAT", "console")),
		Service:     env.Get("SERVICE", ""),
		Component:   env.Get("COMPONENT", ""),
		WithCaller:  env.GetBool("CALLER", false),
		SampleEvery: env.GetInt("SAMPLE_EVERY", 0),
	}
}

// New builds a standalone logger from opt
func New(opt Options) Logger {
	out := opt.Writer
	if out == nil {
		out = os.Stdout
	}
	if opt.Format == "console" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	fields := zerolog.New(out).Level(parseLevel(opt.Level)).With().Timestamp()
	if opt.WithCaller {
		fields = fields.Caller()
	}
	for k, v := range map[string]string{"service": opt.Service, "component": opt.Component} {
		if v != "" {
			fields = fields.Str(k, v)
		}
	}
	for k, v := range opt.StaticFields {
		fields = fields.Str(k, v)
	}

	l := fields.Logger()
	if opt.SampleEvery > 1 {
		l = l.Sample(&zerolog.BasicSampler{N: uint32(opt.SampleEvery)})
	}
	return l
}

var (
	initOnce sync.Once
	root     atomic.Pointer[Logger]
)

// Init installs the root logger. Only the first call has an effect
func Init(opt Options) {
	initOnce.Do(func() {
		zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
		zerolog.TimeFieldFormat = time.RFC3339Nano
		l := New(opt)
		root.Store(&l)
	})
}

// Get returns the root logger, building it from the environment when Init was never called
func Get() *Logger {
	if l := root.Load(); l != nil {
		return l
	}
	Init(FromEnv())
	return root.Load()
}

// Named returns a root child tagged with component
func Named(component string) *Logger {
	if component == "" {
		return Get()
	}
	l := Get().With().Str("component", component).Logger()
	return &l
}

// parseLevel falls back to debug for anything zerolog does not know
func parseLevel(s string) zerolog.Level {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "warning" {
		s = "warn"
	}
	lvl, err := zerolog.ParseLevel(s)
	if err != nil || s == "" {
		return zerolog.DebugLevel
	}
	return lvl
}

// scope is what a request context carries for logging
type scope struct {
	requestID string
	reportID  string
	upload    string
}

type scopeKey struct{}

func scopeOf(ctx context.Context) scope {
	s, _ := ctx.Value(scopeKey{}).(scope)
	return s
}

// WithRequest records the request id and, once assigned, the report id. Empty values keep what ctx had
func WithRequest(ctx context.Context, reqID, reportID string) context.Context {
	s := scopeOf(ctx)
	if reqID != "" {
		s.requestID = reqID
	}
	if reportID != "" {
		s.reportID = reportID
	}
	return context.WithValue(ctx, scopeKey{}, s)
}

// WithUpload records the name of an uploaded export
func WithUpload(ctx context.Context, filename string) context.Context {
	if filename == "" {
		return ctx
	}
	s := scopeOf(ctx)
	s.upload = filename
	return context.WithValue(ctx, scopeKey{}, s)
}

// C returns a root child carrying the ids recorded in ctx
func C(ctx context.Context) *Logger {
	s := scopeOf(ctx)
	fields := Get().With()
	if s.requestID != "" {
		fields = fields.Str("request_id", s.requestID)
	}
	if s.reportID != "" {
		fields = fields.Str("report_id", s.reportID)
	}
	if s.upload != "" {
		fields = fields.Str("upload", s.upload)
	}
	l := fields.Logger()
	return &l
}

package pg

import (
	"context"
	"strings"

	"chatstats/internal/platform/logger"
	pnet "chatstats/internal/platform/net"

	"github.com/rs/zerolog"
)

// QueryEvent is one finished statement as the store adapter saw it
type QueryEvent struct {
	SQL       string
	Args      []any
	ElapsedUS int64
	Err       error
	Slow      bool
}

// QueryTracer is told about every statement the adapter runs
type QueryTracer interface {
	OnQuery(ctx context.Context, ev QueryEvent)
}

// TracerFunc adapts a plain func to QueryTracer
type TracerFunc func(context.Context, QueryEvent)

// OnQuery implements QueryTracer
func (f TracerFunc) OnQuery(ctx context.Context, ev QueryEvent) { f(ctx, ev) }

// Tracer logs each statement through root at its own level, so SERVICE_PGSQL_LOG_SQL
// shows queries even when the process runs at warn or error
func Tracer(root logger.Logger) QueryTracer {
	log := root.Level(zerolog.DebugLevel).With().Str("component", "pg").Logger()

	return TracerFunc(func(ctx context.Context, ev QueryEvent) {
		e := log.WithLevel(eventLevel(ev))
		if rid := pnet.RequestID(ctx); rid != "" {
			e = e.Str("request_id", rid)
		}
		if rep := pnet.ReportID(ctx); rep != "" {
			e = e.Str("report_id", rep)
		}
		e.Str("sql", compact(ev.SQL)).
			Interface("args", ev.Args).
			Float64("elapsed_ms", float64(ev.ElapsedUS)/1e3).
			Bool("slow", ev.Slow).
			Err(ev.Err).
			Msg("pg query")
	})
}

func eventLevel(ev QueryEvent) zerolog.Level {
	switch {
	case ev.Slow:
		return zerolog.WarnLevel
	case ev.Err != nil:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// compact puts a multi-line statement on one line
func compact(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

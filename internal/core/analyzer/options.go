package analyzer

import (
	"chatstats/internal/core/chatlog"
	"chatstats/internal/core/report"
	"chatstats/internal/core/rulepack"
	"chatstats/internal/platform/logger"

	"github.com/rs/zerolog"
)

// Options controls an Analyzer
type Options struct {
	// DateOrder picks which reading of an ambiguous numeric date is tried first (default dmy)
	DateOrder chatlog.DateOrder
	// Workers caps the parallel ranges; 0 or 1 runs a single pass
	Workers int
	// MinLinesPerWorker keeps small inputs on the single pass (default 2048)
	MinLinesPerWorker int
	// Pack overrides the embedded rule pack
	Pack *rulepack.Pack
	// Limits overrides the ranked list sizes from the pack
	Limits report.Limits
	// Log receives one debug summary per run. Nil disables logging
	Log *logger.Logger
}

// Option mutates Options
type Option func(*Options)

// WithDateOrder sets the date order
func WithDateOrder(o chatlog.DateOrder) Option {
	return func(opt *Options) { opt.DateOrder = o }
}

// WithWorkers sets the number of parallel ranges
func WithWorkers(n int) Option {
	return func(opt *Options) { opt.Workers = n }
}

// WithMinLinesPerWorker sets the parallel threshold
func WithMinLinesPerWorker(n int) Option {
	return func(opt *Options) { opt.MinLinesPerWorker = n }
}

// WithPack sets the rule pack
func WithPack(p *rulepack.Pack) Option {
	return func(opt *Options) { opt.Pack = p }
}

// WithLimits sets the ranked list sizes
func WithLimits(l report.Limits) Option {
	return func(opt *Options) { opt.Limits = l }
}

// WithLogger sets the debug logger
func WithLogger(l *logger.Logger) Option {
	return func(opt *Options) { opt.Log = l }
}

func (o Options) withDefaults() Options {
	if o.DateOrder != chatlog.MonthFirst {
		o.DateOrder = chatlog.DayFirst
	}
	if o.Workers < 1 {
		o.Workers = 1
	}
	if o.MinLinesPerWorker <= 0 {
		o.MinLinesPerWorker = 2048
	}
	if o.Pack == nil {
		o.Pack = rulepack.MustLoad()
	}
	if o.Limits.TopWords <= 0 {
		o.Limits.TopWords = o.Pack.TopWords
	}
	if o.Limits.TopEmojis <= 0 {
		o.Limits.TopEmojis = o.Pack.TopEmojis
	}
	if o.Log == nil {
		nop := zerolog.Nop()
		o.Log = &nop
	}
	return o
}

// Package analyzer runs the whole chat export pipeline
//
//	text -> normalize -> filter notices -> scan messages -> resolve date/time + extract features -> aggregate -> report
//
// An Analyzer is immutable after New and safe for concurrent use. Each run allocates its own
// aggregate state; nothing is shared between runs
package analyzer

import (
	"context"

	"chatstats/internal/core/aggregate"
	"chatstats/internal/core/chatlog"
	"chatstats/internal/core/features"
	"chatstats/internal/core/normalize"
	"chatstats/internal/core/report"

	"golang.org/x/sync/errgroup"
)

// Summary describes what one run did with its input
type Summary struct {
	// Notices is the number of lines removed as operational notices
	Notices int
	Ranges  int
	chatlog.Stats
	Undated int
	Untimed int
}

// Result is the report plus its run summary
type Result struct {
	Report  report.Report
	Summary Summary
}

// Analyzer turns export text into a report
type Analyzer struct {
	opt     Options
	grammar chatlog.Grammar
	chrono  chatlog.Chrono
	norm    *normalize.Normalizer
	ext     *features.Extractor
}

// New builds an Analyzer
func New(opts ...Option) *Analyzer {
	var o Options
	for _, fn := range opts {
		fn(&o)
	}
	return NewWithOptions(o)
}

// NewWithOptions builds an Analyzer from a filled Options value
func NewWithOptions(o Options) *Analyzer {
	o = o.withDefaults()
	return &Analyzer{
		opt:     o,
		grammar: chatlog.DefaultGrammar(),
		chrono:  chatlog.NewChrono(o.DateOrder),
		norm:    normalize.New(),
		ext:     features.New(o.Pack),
	}
}

// Options returns the effective options
func (a *Analyzer) Options() Options { return a.opt }

// Analyze runs the pipeline with default options
func Analyze(text string) report.Report {
	return New().Analyze(text)
}

// Analyze runs the pipeline. Malformed input never fails; it only yields fewer messages
func (a *Analyzer) Analyze(text string) report.Report {
	res, _ := a.Run(context.Background(), text)
	return res.Report
}

// Run is Analyze with a summary. The only error is ctx's, checked between ranges
func (a *Analyzer) Run(ctx context.Context, text string) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	all := chatlog.SplitLines(a.norm.Text(text))
	lines := chatlog.FilterLines(all, a.ext.Pack().IsSystemNotice)

	ranges := a.plan(lines)
	parts := make([]*aggregate.State, len(ranges))
	stats := make([]chatlog.Stats, len(ranges))

	if len(ranges) <= 1 {
		for i, r := range ranges {
			parts[i], stats[i] = a.scan(lines, r)
		}
	} else {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(a.opt.Workers)
		for i, r := range ranges {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				parts[i], stats[i] = a.scan(lines, r)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return Result{}, err
		}
	}

	// merge in range order so first-seen orders match a single pass
	st := aggregate.New()
	sum := Summary{Notices: len(all) - len(lines), Ranges: len(ranges)}
	for i := range parts {
		st.Merge(parts[i])
		sum.Stats.Add(stats[i])
	}
	sum.Undated, sum.Untimed = st.Undated, st.Untimed

	rep := report.Build(st, a.opt.Limits)

	a.opt.Log.Debug().
		Int("lines", sum.Lines).
		Int("notices", sum.Notices).
		Int("messages", sum.Messages).
		Int("continuations", sum.Continuations).
		Int("dropped", sum.Dropped).
		Int("undated", sum.Undated).
		Int("untimed", sum.Untimed).
		Int("ranges", sum.Ranges).
		Msg("chat analyzed")

	return Result{Report: rep, Summary: sum}, nil
}

// plan returns the line ranges to scan; a single range unless the input is large enough to split
func (a *Analyzer) plan(lines []string) [][2]int {
	if len(lines) == 0 {
		return nil
	}
	w := a.opt.Workers
	if w <= 1 || len(lines) < w*a.opt.MinLinesPerWorker {
		return [][2]int{{0, len(lines)}}
	}
	return chatlog.Split(lines, w, a.grammar)
}

func (a *Analyzer) scan(lines []string, r [2]int) (*aggregate.State, chatlog.Stats) {
	st := aggregate.New()
	sc := chatlog.NewScanner(lines[r[0]:r[1]], r[0], a.grammar)
	for sc.Scan() {
		st.Ingest(a.record(sc.Fields()))
	}
	return st, sc.Stats()
}

func (a *Analyzer) record(f chatlog.Fields) aggregate.Record {
	rec := aggregate.Record{
		Participant: f.Participant,
		Features:    a.ext.Extract(f.Body),
	}
	if d, ok := a.chrono.ParseDate(f.Date); ok {
		rec.Date = &d
	}
	if t, ok := a.chrono.ParseTime(f.Time); ok {
		rec.Time = &t
	}
	return rec
}

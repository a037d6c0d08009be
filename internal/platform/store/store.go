// Package store provides a unified interface to the optional report archive backends
package store

import (
	"context"
	"errors"
	"fmt"

	"chatstats/internal/platform/logger"
)

// Store holds the report archive backends. Both are optional and nil when not configured
type Store struct {
	// Log feeds the sql tracer. The zero logger discards
	Log logger.Logger

	PG TxRunner
	CH Clickhouse
}

// Backend is one optional seam under the name it reports as
type Backend struct {
	Name string
	Seam any
}

// Health statuses
const (
	HealthOK      = "ok"
	HealthFail    = "fail"
	HealthSkipped = "skipped"
	HealthUnknown = "unknown"
)

// Health is the outcome of pinging one backend
type Health struct {
	Name   string
	Status string
	Err    error
}

// Probe pings each backend in order. Nil seams are skipped, seams without Ping are unknown
func Probe(ctx context.Context, backends ...Backend) []Health {
	out := make([]Health, 0, len(backends))
	for _, b := range backends {
		h := Health{Name: b.Name, Status: HealthOK}
		switch p, ok := b.Seam.(Pinger); {
		case b.Seam == nil:
			h.Status = HealthSkipped
		case !ok:
			h.Status = HealthUnknown
		default:
			if h.Err = p.Ping(ctx); h.Err != nil {
				h.Status = HealthFail
			}
		}
		out = append(out, h)
	}
	return out
}

// seams for tests
var (
	openPGFn = openPG
	openCHFn = openCH
)

// Open connects every backend cfg enables. Disabled ones stay nil
func Open(ctx context.Context, cfg Config, opts ...Option) (*Store, error) {
	s := &Store{}
	for _, o := range opts {
		if err := o(s); err != nil {
			return nil, err
		}
	}

	if cfg.PG.Enabled {
		pgc, err := openPGFn(ctx, cfg, s)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		s.PG = pgc
	}
	if cfg.CH.Enabled {
		chc, err := openCHFn(ctx, cfg, s)
		if err != nil {
			_ = s.Close(ctx)
			return nil, fmt.Errorf("open clickhouse: %w", err)
		}
		s.CH = chc
	}
	return s, nil
}

// Backends lists pg then ch, leaving out interface values that hold nothing
func (s *Store) Backends() []Backend {
	var pgSeam, chSeam any
	if s.PG != nil {
		pgSeam = s.PG
	}
	if s.CH != nil {
		chSeam = s.CH
	}
	return []Backend{{Name: "pg", Seam: pgSeam}, {Name: "ch", Seam: chSeam}}
}

// Guard fails when a configured backend does not answer
func (s *Store) Guard(ctx context.Context) error {
	if s == nil {
		return errors.New("nil store")
	}
	var errs []error
	for _, h := range Probe(ctx, s.Backends()...) {
		if h.Status == HealthFail {
			errs = append(errs, fmt.Errorf("%s: %w", h.Name, h.Err))
		}
	}
	return errors.Join(errs...)
}

// Close releases every open backend. Safe on nil
func (s *Store) Close(context.Context) error {
	if s == nil {
		return nil
	}
	var errs []error
	if s.CH != nil {
		errs = append(errs, s.CH.Close())
	}
	if c, ok := s.PG.(interface{ Close() error }); ok {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}

// Package module wires the analyze service into the API using modkit
package module

import (
	"context"

	modkit "chatstats/internal/modkit"
	"chatstats/internal/modkit/httpkit"
	str "chatstats/internal/platform/strings"
	"chatstats/internal/services/analyze/domain"
	analyzehttp "chatstats/internal/services/analyze/http"
	analyzerepo "chatstats/internal/services/analyze/repo"
	analyzesvc "chatstats/internal/services/analyze/service"
)

// Ports exported by the analyze module
type Ports struct {
	Analyzer domain.ServicePort
}

// Module implements modkit.Module for analyze
type Module struct {
	b     modkit.Built
	opts  Options
	svc   analyzesvc.Service
	ports Ports
}

// New constructs the analyze module; it owns /analyze and /reports so it has no prefix of its own
func New(deps modkit.Deps, opts Options, mo ...modkit.Option) *Module {
	b := modkit.Build([]modkit.Option{modkit.WithName("analyze")}, mo...)

	svc := analyzesvc.New(
		deps.PG,
		analyzerepo.NewHybrid(deps.CH),
		analyzesvc.Config{
			DateOrder:      opts.DateOrder,
			Workers:        opts.Workers,
			MaxUploadBytes: opts.MaxUploadBytes,
			Archive:        opts.Archive,
		},
		deps.Logger("analyze"),
	)

	m := &Module{b: b, opts: opts, svc: svc}
	m.ports = Ports{Analyzer: svc}
	if p, ok := b.Ports.(Ports); ok {
		m.ports = p
	}
	return m
}

// Start prepares the archive tables when archiving is enabled
func (m *Module) Start(ctx context.Context) error { return m.svc.EnsureSchema(ctx) }

// MountRoutes mounts the module routes on the given router
func (m *Module) MountRoutes(r httpkit.Router) {
	m.b.Mount(r, func(rr httpkit.Router) {
		analyzehttp.Register(rr, m.ports.Analyzer, analyzehttp.Limits{MaxUploadBytes: m.opts.MaxUploadBytes})
	})
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.b.Name, "module name") }

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

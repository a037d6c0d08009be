// Package module mounts the meta routes under /meta
package module

import (
	"time"

	modkit "chatstats/internal/modkit"
	"chatstats/internal/modkit/httpkit"
	"chatstats/internal/platform/store"
	str "chatstats/internal/platform/strings"

	metahttp "chatstats/internal/services/api/meta/http"
)

// Module implements the modkit.Module interface
type Module struct {
	b         modkit.Built
	deps      modkit.Deps
	startedAt time.Time
}

// New constructs a meta module with the provided dependencies and options
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build([]modkit.Option{
		modkit.WithName("meta"),
		modkit.WithPrefix("/meta"),
	}, opts...)
	return &Module{b: b, deps: deps, startedAt: time.Now()}
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	st := store.Store{PG: m.deps.PG, CH: m.deps.CH}
	d := metahttp.Deps{
		ServiceName: "chatstats-api",
		StartedAt:   m.startedAt,
		Backends:    st.Backends(),
	}
	m.b.Mount(r, func(rr httpkit.Router) { metahttp.Register(rr, d) })
}

// Name implements the modkit.Module interface
func (m *Module) Name() string { return str.MustString(m.b.Name, "meta") }

// Ports implements the modkit.Module interface
func (m *Module) Ports() any { return nil }

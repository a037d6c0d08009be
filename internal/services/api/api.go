// Package api composes the HTTP API for the application
package api

import (
	"context"
	"sync"

	"chatstats/internal/core/version"
	"chatstats/internal/modkit"
	"chatstats/internal/modkit/httpkit"
	"chatstats/internal/modkit/module"
	"chatstats/internal/modkit/swaggerkit"
	"chatstats/internal/platform/config"
	"chatstats/internal/platform/logger"
	phttp "chatstats/internal/platform/net/http"
	"chatstats/internal/platform/net/middleware"
	"chatstats/internal/platform/store"

	analyzemod "chatstats/internal/services/analyze/module"
	metamod "chatstats/internal/services/api/meta/module"
)

// Options are the API options
type Options struct {
	// Config is the root view; modules read their own prefixes from it
	Config config.Conf
	// Store may be nil or carry nil backends when no archive is configured
	Store          *store.Store
	Logger         *logger.Logger
	EnableSwagger  bool
	EnableProfiler bool
}

// starter is implemented by modules that prepare storage before serving
type starter interface {
	Start(ctx context.Context) error
}

var stampDocs sync.Once

// docVersion makes the served document report the running build
func docVersion(doc map[string]any) {
	if info, ok := doc["info"].(map[string]any); ok {
		info["version"] = version.Info().Version
	}
}

// Mount mounts the API onto r and prepares module storage.
// Start failures are logged; the engine keeps serving without the archive
func Mount(ctx context.Context, r phttp.Router, opt Options) {
	deps := modkit.DepsFrom(opt.Config, opt.Logger, opt.Store)
	log := deps.Logger("api")
	apiCfg := opt.Config.Prefix("CORE_API_")

	mods := []module.Module{
		metamod.New(deps),
		analyzemod.New(deps, analyzemod.FromConfig(opt.Config)),
	}
	for _, m := range mods {
		if s, ok := m.(starter); ok {
			if err := s.Start(ctx); err != nil {
				log.Error().Err(err).Str("module", m.Name()).Msg("module start failed")
			}
		}
	}

	r.Use(middleware.Defaults()...)

	stampDocs.Do(func() { swaggerkit.Register(docVersion) })
	swaggerkit.Mount(r, apiCfg, opt.EnableSwagger)
	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

	httpkit.MountAPIV1(r, httpkit.CommonStack(httpkit.StackFrom(apiCfg)), func(api httpkit.Router) {
		for _, m := range mods {
			if module.HasPorts(m) {
				module.Register(m.Name(), m.Ports())
			}
			m.MountRoutes(api)
		}
	})
}

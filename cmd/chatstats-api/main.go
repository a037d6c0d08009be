// @title         chatstats API
// @version       0.1.0
// @description   Analyze exported chat logs into activity reports

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"chatstats/internal/core/version"
	"chatstats/internal/modkit/repokit"
	"chatstats/internal/platform/config"
	"chatstats/internal/platform/logger"
	phttp "chatstats/internal/platform/net/http"
	"chatstats/internal/platform/store"

	"chatstats/internal/services/api"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := config.New()
	apiCfg := root.Prefix("CORE_API_")

	// bring up logging early
	l := logger.Get()

	// the archive backends are optional; each is enabled by its DBURL
	st, err := store.Open(ctx,
		store.ConfigFrom(root, "chatstats-api", version.Info().Version),
		store.WithLogger(*l),
	)
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	// a configured backend must answer before we serve
	repokit.MustGuard(ctx, st)

	// http server (reads CORE_API_API_PORT and the *_TIMEOUT keys)
	srv := phttp.NewServer(apiCfg)

	api.Mount(ctx, srv.Router(), api.Options{
		Config:         root,
		Store:          st,
		Logger:         l,
		EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
		EnableProfiler: apiCfg.MayBool("PROFILER", false),
	})

	if err := srv.Run(ctx); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
	l.Info().Msg("bye")
}

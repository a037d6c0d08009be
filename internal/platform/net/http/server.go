package http

import (
	"context"
	"errors"
	stdhttp "net/http"
	"time"

	"chatstats/internal/platform/config"
	"chatstats/internal/platform/logger"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"
)

// Server owns one chi mux and the stdlib server in front of it
type Server struct {
	mux   *chi.Mux
	srv   *stdhttp.Server
	grace time.Duration
}

// NewServer reads API_PORT and the *_TIMEOUT keys from cfg.
// Each opt gets the bare mux before any module mounts
func NewServer(cfg config.Conf, opts ...func(*chi.Mux)) *Server {
	m := chi.NewRouter()
	for _, apply := range opts {
		apply(m)
	}

	srv := &stdhttp.Server{
		Addr:              cfg.MayString("API_PORT", ":4000"),
		Handler:           m,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.MayDuration("READ_TIMEOUT", 60*time.Second),
		WriteTimeout:      cfg.MayDuration("WRITE_TIMEOUT", 60*time.Second),
		IdleTimeout:       2 * time.Minute,
	}
	return &Server{mux: m, srv: srv, grace: cfg.MayDuration("SHUTDOWN_TIMEOUT", 10*time.Second)}
}

// Router returns the Router facade over the mux
func (s *Server) Router() Router { return AdaptChi(s.mux) }

// Addr returns the listening address
func (s *Server) Addr() string { return s.srv.Addr }

// Run serves until the listener fails or ctx ends.
// On ctx end the server drains for at most SHUTDOWN_TIMEOUT
func (s *Server) Run(ctx context.Context) error {
	log := logger.Named("http")
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Str("addr", s.srv.Addr).Msg("http listening")
		if err := s.srv.ListenAndServe(); !errors.Is(err, stdhttp.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Dur("grace", s.grace).Msg("http shutting down")
		sctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.grace)
		defer cancel()
		return s.Shutdown(sctx)
	})

	return g.Wait()
}

// Shutdown stops accepting connections and waits for in-flight requests
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

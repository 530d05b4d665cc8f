package http

import (
	"context"
	"errors"
	stdhttp "net/http"
	"time"

	"labelit/internal/platform/config"
	"labelit/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

// Server owns the chi mux and the listening http.Server
type Server struct {
	mux   *chi.Mux
	srv   *stdhttp.Server
	drain time.Duration
}

// NewServer reads API_PORT, API_READ_HEADER_TIMEOUT and API_SHUTDOWN_TIMEOUT from cfg
func NewServer(cfg config.Conf) *Server {
	m := chi.NewRouter()
	return &Server{
		mux:   m,
		drain: cfg.MayDuration("API_SHUTDOWN_TIMEOUT", 10*time.Second),
		srv: &stdhttp.Server{
			Addr:              cfg.MayString("API_PORT", ":4000"),
			Handler:           m,
			ReadHeaderTimeout: cfg.MayDuration("API_READ_HEADER_TIMEOUT", 10*time.Second),
		},
	}
}

// Router exposes the mux through the seam
func (s *Server) Router() Router { return AdaptChi(s.mux) }

// Addr is the configured listen address
func (s *Server) Addr() string { return s.srv.Addr }

// Run serves until ctx is done or the listener fails
// a cancelled ctx drains in flight requests for up to API_SHUTDOWN_TIMEOUT
func (s *Server) Run(ctx context.Context) error {
	log := logger.Named("http")
	errc := make(chan error, 1)
	go func() {
		log.Info().Str("addr", s.srv.Addr).Msg("http listening")
		errc <- s.srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, stdhttp.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info().Dur("drain", s.drain).Msg("http shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), s.drain)
	defer cancel()
	if err := s.Shutdown(sctx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, stdhttp.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting connections and waits for in flight requests
func (s *Server) Shutdown(ctx context.Context) error { return s.srv.Shutdown(ctx) }

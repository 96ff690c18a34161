// Package server exposes gravity sessions over HTTP.
//
// Routes mirror the browser client of the gravity experiment:
//
//	POST /experiments/gravity/start          seed with {"bodies": [...]} and step once
//	GET  /experiments/gravity/step?dt=0.1    step the session's bodies
//	GET  /experiments/gravity/presets        list built-in body sets
//	POST /experiments/gravity/preset/{name}  seed from a preset and step once
//
// Every response carrying bodies has the shape {"positions": [...]}. Each
// client is tracked by a cookie and owns its own gravity.State.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/san-kum/gravsim/internal/config"
	"github.com/san-kum/gravsim/internal/session"
)

const (
	sessionCookie = "gravsim_session"
	maxBodyBytes  = 1 << 20
)

type Server struct {
	cfg      config.ServerConfig
	sessions *session.Store
	log      *slog.Logger
	mux      *http.ServeMux
}

func New(cfg config.ServerConfig, sessions *session.Store, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.DefaultDt <= 0 {
		cfg.DefaultDt = config.DefaultDt
	}
	s := &Server{
		cfg:      cfg,
		sessions: sessions,
		log:      logger,
		mux:      http.NewServeMux(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.mux.HandleFunc("POST /experiments/gravity/start", s.handleStart)
	s.mux.HandleFunc("GET /experiments/gravity/step", s.handleStep)
	s.mux.HandleFunc("GET /experiments/gravity/presets", s.handlePresets)
	s.mux.HandleFunc("POST /experiments/gravity/preset/{name}", s.handlePreset)
	s.mux.HandleFunc("GET /experiments/gravity/state", s.handleState)
	s.mux.HandleFunc("DELETE /experiments/gravity/session", s.handleEnd)
}

// Handler returns the routed handler wrapped in request logging.
func (s *Server) Handler() http.Handler {
	return s.logRequests(s.mux)
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go s.sweep(ctx)

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", "addr", s.cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.log.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (s *Server) sweep(ctx context.Context) {
	if s.cfg.SessionIdle <= 0 || s.cfg.SweepInterval <= 0 {
		return
	}
	ticker := time.NewTicker(s.cfg.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if n := s.sessions.Sweep(now, s.cfg.SessionIdle); n > 0 {
				s.log.Debug("swept idle sessions", "removed", n, "remaining", s.sessions.Len())
			}
		}
	}
}

// Package server exposes the remix service over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"github.com/cwbudde/algo-remix/internal/config"
	"github.com/cwbudde/algo-remix/internal/remix"
)

// Remixer is the part of remix.Service the handlers use.
type Remixer interface {
	Remix(ctx context.Context, in remix.Input, p remix.Params) (remix.Result, error)
	MoodNames() []string
	RemoteEnabled() bool
}

// Server is the HTTP front end.
type Server struct {
	cfg      config.Config
	router   *chi.Mux
	log      *logrus.Logger
	remixer  Remixer
	jobs     chan struct{}
	maxBytes int64
}

// New creates a server with routes installed.
func New(cfg config.Config, remixer Remixer, log *logrus.Logger) *Server {
	s := &Server{
		cfg:      cfg,
		router:   chi.NewRouter(),
		log:      log,
		remixer:  remixer,
		jobs:     make(chan struct{}, max(1, cfg.Server.MaxJobs)),
		maxBytes: cfg.Server.MaxUploadMB << 20,
	}

	s.setupRoutes()

	return s
}

func (s *Server) setupRoutes() {
	r := s.router

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/health", s.handleHealth)
	r.Get("/moods", s.handleMoods)
	r.Post("/remix", s.handleRemix)
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.router }

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Server.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       2 * time.Minute,
		WriteTimeout:      s.cfg.Remote.Timeout + time.Minute,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.WithField("addr", srv.Addr).Info("server starting")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}

		return fmt.Errorf("server: %w", err)
	case <-ctx.Done():
	}

	s.log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}

	return nil
}

// requestLogger logs one line per request through logrus.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		s.log.WithFields(logrus.Fields{
			"request_id": middleware.GetReqID(r.Context()),
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     ww.Status(),
			"bytes":      ww.BytesWritten(),
			"duration":   time.Since(start).Round(time.Microsecond),
			"remote":     r.RemoteAddr,
		}).Debug("request")
	})
}

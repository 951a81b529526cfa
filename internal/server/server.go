// Package server exposes the render pipeline over HTTP.
//
// The API is intentionally small: one render endpoint, the flag manifest,
// and a health check. Render calls are stateless, so "last call wins"
// falls out naturally: the server never queues work per client.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/flagring/flagring/pkg/assets"
	"github.com/flagring/flagring/pkg/pipeline"
)

const (
	readTimeout     = 15 * time.Second
	writeTimeout    = 60 * time.Second
	shutdownTimeout = 10 * time.Second
)

// Config holds the server dependencies.
type Config struct {
	// Addr is the listen address (e.g., ":8080").
	Addr string

	// Manifest is the flag catalog served by GET /v1/flags.
	Manifest *assets.Manifest

	// Runner executes render requests.
	Runner *pipeline.Runner

	// Logger receives request logs. Defaults to log.Default().
	Logger *log.Logger
}

// Server is the flagring HTTP API.
type Server struct {
	addr     string
	manifest *assets.Manifest
	runner   *pipeline.Runner
	logger   *log.Logger
}

// New creates a server from cfg.
func New(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		addr:     cfg.Addr,
		manifest: cfg.Manifest,
		runner:   cfg.Runner,
		logger:   logger,
	}
}

// Router builds the chi route tree.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.requestLogger)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/flags", s.handleFlags)
		r.Get("/flags/{id}", s.handleFlag)
		r.Post("/render", s.handleRender)
	})

	return r
}

// ListenAndServe runs the server until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.addr,
		Handler:      s.Router(),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Infof("Listening on %s", s.addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return ctx.Err()
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

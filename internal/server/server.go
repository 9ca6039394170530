// Package server exposes the partition pipeline over HTTP.
//
// Routes:
//
//	POST /api/partition   run the pipeline on an inline scene
//	GET  /api/runs        list recent runs
//	GET  /api/runs/{id}   fetch a persisted run
//	GET  /healthz         liveness probe
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/planekit/regiontree/pkg/pipeline"
	"github.com/planekit/regiontree/pkg/store"
)

// Server wires the pipeline runner and run store behind an HTTP router.
type Server struct {
	runner  *pipeline.Runner
	store   store.RunStore
	logger  *log.Logger
	timeout time.Duration
}

// New creates a server. A nil store falls back to an in-memory store; a
// nil logger falls back to the default logger.
func New(runner *pipeline.Runner, runStore store.RunStore, logger *log.Logger, timeout time.Duration) *Server {
	if runStore == nil {
		runStore = store.NewMemoryStore()
	}
	if logger == nil {
		logger = log.Default()
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Server{
		runner:  runner,
		store:   runStore,
		logger:  logger,
		timeout: timeout,
	}
}

// Router builds the chi router with all routes and middleware.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.timeout))

	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Post("/partition", s.handlePartition)
		r.Get("/runs", s.handleListRuns)
		r.Get("/runs/{id}", s.handleGetRun)
	})
	return r
}

// ListenAndServe runs the server until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// logRequests logs one line per request through the structured logger.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start))
	})
}

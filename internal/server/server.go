// Package server provides orbital's HTTP API.
//
// Read endpoints evaluate orbitals synchronously through the shared
// [pipeline.Runner], so the CLI and the API produce the same bytes for the
// same request. Volumetric sweeps are accepted with POST /sweeps, run in the
// background on a bounded pool, and polled by ID.
//
//	GET  /healthz
//	GET  /orbitals/{n}/{l}/{m}
//	GET  /orbitals/{n}/{l}/{m}/density?r=&theta=&phi=&approximate=
//	GET  /radial/{n}/{l}?points=&max_r=&format=
//	GET  /levels?max=&format=&diagram=
//	POST /sweeps
//	GET  /sweeps/{id}
//	GET  /sweeps/{id}/cloud
//
// Errors are JSON objects {"error": CODE, "message": text}.
package server

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/orbital/pkg/buildinfo"
	"github.com/matzehuels/orbital/pkg/cache"
	"github.com/matzehuels/orbital/pkg/observability"
	"github.com/matzehuels/orbital/pkg/pipeline"
)

// DefaultMaxSweeps bounds the number of sweeps running at once.
const DefaultMaxSweeps = 4

// shutdownTimeout is how long ListenAndServe waits for in-flight requests.
const shutdownTimeout = 10 * time.Second

// Server serves the orbital API.
type Server struct {
	runner *pipeline.Runner
	store  cache.Cache
	keyer  cache.Keyer
	logger *log.Logger

	// Background sweeps run under ctx and are tracked by sweeps.
	ctx    context.Context
	cancel context.CancelFunc
	sweeps errgroup.Group

	closeOnce sync.Once
}

// Option configures a Server.
type Option func(*Server)

// WithMaxSweeps sets the number of sweeps that may run concurrently.
// Requests beyond it are rejected with 503.
func WithMaxSweeps(n int) Option {
	return func(s *Server) {
		if n > 0 {
			s.sweeps.SetLimit(n)
		}
	}
}

// New creates a server. Sweep records go to store; a nil store keeps them
// in memory. A nil runner uses an uncached one.
func New(runner *pipeline.Runner, store cache.Cache, logger *log.Logger, opts ...Option) *Server {
	if logger == nil {
		logger = log.Default()
	}
	if runner == nil {
		runner = pipeline.NewRunner(nil, nil, logger)
	}
	if store == nil {
		store = cache.NewMemoryCache()
	}
	ctx, cancel := context.WithCancel(context.Background())
	s := &Server{
		runner: runner,
		store:  store,
		keyer:  runner.Keyer,
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
	}
	s.sweeps.SetLimit(DefaultMaxSweeps)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the routed API.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(serverHeader)

	r.Group(func(r chi.Router) {
		r.Use(s.instrument)

		r.Get("/healthz", s.handleHealth)
		r.Get("/orbitals/{n}/{l}/{m}", s.handleOrbital)
		r.Get("/orbitals/{n}/{l}/{m}/density", s.handleDensity)
		r.Get("/radial/{n}/{l}", s.handleRadial)
		r.Get("/levels", s.handleLevels)
		r.Post("/sweeps", s.handleCreateSweep)
		r.Get("/sweeps/{id}", s.handleSweep)
		r.Get("/sweeps/{id}/cloud", s.handleSweepCloud)
	})
	return r
}

// ListenAndServe serves on addr until ctx ends, then shuts down gracefully
// and waits for running sweeps.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		s.Close()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	err := srv.Shutdown(shutdownCtx)
	s.Close()
	return err
}

// Close cancels running sweeps and waits for them to record their outcome.
func (s *Server) Close() error {
	s.closeOnce.Do(func() {
		s.cancel()
		_ = s.sweeps.Wait()
	})
	return nil
}

func serverHeader(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Server", buildinfo.UserAgent())
		next.ServeHTTP(w, r)
	})
}

// instrument reports each request to the HTTP hooks. It runs inside the
// route group so the chi pattern is already resolved.
func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				route = p
			}
		}
		hooks := observability.HTTP()
		hooks.OnRequest(r.Context(), r.Method, route)

		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		dur := time.Since(start)
		hooks.OnResponse(r.Context(), r.Method, route, status, dur)
		s.logger.Debug("request",
			"method", r.Method,
			"route", route,
			"status", status,
			"duration", dur,
			"request_id", middleware.GetReqID(r.Context()))
	})
}

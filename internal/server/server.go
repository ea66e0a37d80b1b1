// Package server exposes the estimator over HTTP: a single-page shell plus a
// JSON API for stateless estimates and step-by-step form sessions.
package server

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/billing-estimator/internal/estimate"
	"github.com/sells-group/billing-estimator/internal/store"
	"github.com/sells-group/billing-estimator/internal/wizard"
)

//go:embed web
var webFS embed.FS

// Options configures the HTTP surface.
type Options struct {
	CORSOrigins []string
	// RateLimitRPS and RateLimitBurst size the token bucket of each client IP.
	RateLimitRPS   float64
	RateLimitBurst int
	// SweepInterval controls how often idle sessions are evicted.
	SweepInterval   time.Duration
	ShutdownTimeout time.Duration
}

// Server wires the estimator, session manager and store to HTTP routes.
type Server struct {
	estimator *estimate.Estimator
	sessions  *wizard.Manager
	store     store.Store
	opts      Options
	router    chi.Router
}

// New creates a Server. st may be nil, in which case estimates are computed
// but not persisted and the history routes answer 503.
func New(est *estimate.Estimator, sessions *wizard.Manager, st store.Store, opts Options) *Server {
	s := &Server{
		estimator: est,
		sessions:  sessions,
		store:     st,
		opts:      opts,
	}
	s.router = s.routes()
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(accessLog)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.opts.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	static, _ := fs.Sub(webFS, "web")
	r.Get("/", serveIndex(static))
	r.Get("/healthz", handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		if s.opts.RateLimitRPS > 0 {
			r.Use(rateLimit(newClientLimiters(s.opts.RateLimitRPS, s.opts.RateLimitBurst)))
		}

		r.Get("/specialties", handleSpecialties)
		r.Get("/fields", handleFields)
		r.Post("/validate/zip", handleValidateZip)

		r.Route("/estimates", func(r chi.Router) {
			r.Post("/", s.handleCreateEstimate)
			r.Get("/", s.handleListEstimates)
			r.Get("/{id}", s.handleGetEstimate)
			r.Get("/{id}/export.xlsx", s.handleExportEstimate)
		})

		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", s.handleCreateSession)
			r.Get("/{id}", s.handleGetSession)
			r.Patch("/{id}", s.handleUpdateSession)
			r.Delete("/{id}", s.handleDeleteSession)
			r.Post("/{id}/next", s.handleSessionNext)
			r.Post("/{id}/back", s.handleSessionBack)
			r.Post("/{id}/reset", s.handleSessionReset)
			r.Post("/{id}/calculate", s.handleSessionCalculate)
		})
	})

	return r
}

// Run serves on port until ctx is cancelled, then shuts down gracefully.
// The session sweeper runs alongside the listener.
func (s *Server) Run(ctx context.Context, port int) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return eris.Wrap(err, "server listen")
		}
		return nil
	})

	g.Go(func() error {
		return s.sessions.Run(gctx, s.opts.SweepInterval)
	})

	g.Go(func() error {
		<-gctx.Done()
		zap.L().Info("shutting down server")
		timeout := s.opts.ShutdownTimeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return eris.Wrap(srv.Shutdown(shutdownCtx), "server shutdown")
	})

	return g.Wait()
}

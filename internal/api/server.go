// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/api are allowed to import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/taibuivan/anitoki/internal/catalog"
	"github.com/taibuivan/anitoki/internal/platform/config"
	"github.com/taibuivan/anitoki/internal/platform/constants"
	"github.com/taibuivan/anitoki/internal/platform/middleware"
	"github.com/taibuivan/anitoki/internal/theme"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// newDrain returns the context that is cancelled when shutdown begins.
func newDrain() (context.Context, context.CancelFunc) {
	return context.WithCancel(context.Background())
}

// untilShutdown cancels the request context once draining is done.
// [http.Server.Shutdown] leaves in-flight request contexts alone.
func untilShutdown(draining context.Context) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			ctx, cancel := context.WithCancel(request.Context())
			defer cancel()
			stop := context.AfterFunc(draining, cancel)
			defer stop()
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
type Handlers struct {
	// Liveness is the /health handler, 200 while the process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler, 200 when all deps are healthy.
	Readiness http.HandlerFunc

	// Catalog serves the season and airing schedules.
	Catalog *catalog.Handler

	// Theme manages per-visitor theme preferences.
	Theme *theme.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, tokens middleware.VisitorTokens, h Handlers) *Server {
	r := chi.NewRouter()
	draining, drain := newDrain()

	// # Middleware Chain
	// Visitor runs before the logger so every access line carries visitor_id.
	r.Use(middleware.RequestID())
	r.Use(middleware.Visitor(tokens, cfg.IsProduction()))
	r.Use(middleware.StructuredLogger(log))
	r.Use(middleware.RateLimit(context))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.CORS(cfg, cfg.ExtraOrigins))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Application API
	r.Route("/api/v1", func(api chi.Router) {

		// Event streams outlive the request timeout.
		api.With(middleware.RequireVisitor, untilShutdown(draining)).Get("/theme/events", h.Theme.Events())

		api.Group(func(bounded chi.Router) {
			bounded.Use(chimw.Timeout(constants.GlobalRequestTimeout))
			bounded.With(middleware.RequireVisitor).Mount("/theme", h.Theme.Routes())
			bounded.Mount("/", h.Catalog.Routes())
		})
	})

	httpServer := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           r,
		ReadTimeout:       constants.DefaultReadTimeout,
		WriteTimeout:      constants.DefaultWriteTimeout,
		IdleTimeout:       constants.DefaultIdleTimeout,
		ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
	}
	httpServer.RegisterOnShutdown(drain)

	return &Server{router: r, log: log, httpServer: httpServer}
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	listener, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return err
	}
	return s.Serve(listener)
}

// Serve accepts connections on listener until the server is shut down.
func (s *Server) Serve(listener net.Listener) error {
	s.log.Info("server_starting", slog.String("addr", listener.Addr().String()))
	return s.httpServer.Serve(listener)
}

// Shutdown gracefully stops the server. Event streams are cancelled at once;
// other in-flight requests are allowed to finish within timeout.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}

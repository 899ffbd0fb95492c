// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the AniToki HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
//  6. Wire schedule sources, catalog and theme services.
//  7. Start the background refresher.
//  8. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/taibuivan/anitoki/internal/api"
	"github.com/taibuivan/anitoki/internal/catalog"
	"github.com/taibuivan/anitoki/internal/platform/config"
	"github.com/taibuivan/anitoki/internal/platform/constants"
	"github.com/taibuivan/anitoki/internal/platform/migration"
	pgstore "github.com/taibuivan/anitoki/internal/platform/postgres"
	redisstore "github.com/taibuivan/anitoki/internal/platform/redis"
	"github.com/taibuivan/anitoki/internal/platform/sec"
	"github.com/taibuivan/anitoki/internal/theme"
	"github.com/taibuivan/anitoki/pkg/clock"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	log := rawLog.With(slog.String("app", constants.AppName))
	slog.SetDefault(log)

	log.Info("service_initializing", slog.String("version", constants.AppVersion))

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", constants.AppName))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.Duration("catalog_ttl", cfg.CatalogTTL),
		slog.Duration("refresh_interval", cfg.RefreshInterval),
	)

	defaults, err := catalog.DefaultsFrom(&cfg.Upstream, time.UTC)
	must(log, err, "resolve display defaults")

	// Root context for startup. A 30s deadline surfaces misconfiguration
	// instead of hanging.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("postgres_pool_closing")
		pool.Close()
	}()

	// ── 4. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("redis_client_closing")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis_close_failed", slog.Any("error", cerr))
		}
	}()

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 6. Visitor Tokens ─────────────────────────────────────────────────
	tokens, err := sec.NewTokenService(cfg.SessionSecret, constants.VisitorIssuer)
	must(log, err, "initialize visitor tokens")

	// ── 7. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		Checks: []api.Check{
			{Name: "database", Probe: func(ctx context.Context) error { return pgstore.Ping(ctx, pool) }},
			{Name: "cache", Probe: func(ctx context.Context) error { return redisstore.Ping(ctx, rdb) }},
		},
	}, log)

	// ── 8. Domain Wiring ──────────────────────────────────────────────────
	systemClock := clock.System{}

	season, airing := catalog.UpstreamSources(&cfg.Upstream, systemClock, log)
	catalogService := catalog.NewService(catalog.Options{
		Season: season,
		Airing: airing,
		Cache:  catalog.NewRedisCache(rdb),
		TTL:    cfg.CatalogTTL,
		Clock:  systemClock,
		Logger: log,
	})

	// A refresh walks every page of both sources.
	refreshTimeout := time.Duration(cfg.Upstream.JikanMaxPages+cfg.Upstream.AniListMaxPages) * cfg.Upstream.Timeout
	refresher := catalog.NewRefresher(catalogService, systemClock, refreshTimeout, log)
	refresher.Start(cfg.RefreshInterval)
	defer refresher.Stop()

	catalogHandler := catalog.NewHandler(catalogService, refresher, defaults)

	themeService := theme.NewService(theme.NewPostgresStore(pool), theme.NewRedisNotifier(rdb, log), systemClock, log)
	themeHandler := theme.NewHandler(themeService, systemClock)

	// ── 9. HTTP Server ────────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Catalog:   catalogHandler,
		Theme:     themeHandler,
	}

	// The rate limiter's janitor lives as long as the process.
	serverCtx, serverCancel := context.WithCancel(context.Background())
	defer serverCancel()

	server := api.NewServer(serverCtx, cfg, log, tokens, handlers)

	// ── 10. Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown_signal_received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server_startup_failed", slog.Any("error", err))
	}

	shutdownTimeout := constants.ShutdownTimeout
	log.Info("server_shutting_down", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("server_shutdown_failed", slog.Any("error", err))
	}

	log.Info("server_stopped")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is limited to startup wiring. After startup, all errors are returned
// and handled explicitly.
func must(log *slog.Logger, err error, step string) {
	if err != nil {
		log.Error("startup_failed",
			slog.String("step", step),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}

// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command server serves the configurable table views and their JSON API.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
//  6. Parse the HTML templates and register the tables.
//  7. Start HTTP server with graceful shutdown.
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

	"github.com/taibuivan/configurable-tables/internal/api"
	"github.com/taibuivan/configurable-tables/internal/auth"
	"github.com/taibuivan/configurable-tables/internal/customer"
	"github.com/taibuivan/configurable-tables/internal/platform/config"
	"github.com/taibuivan/configurable-tables/internal/platform/constants"
	"github.com/taibuivan/configurable-tables/internal/platform/migration"
	pgstore "github.com/taibuivan/configurable-tables/internal/platform/postgres"
	redisstore "github.com/taibuivan/configurable-tables/internal/platform/redis"
	"github.com/taibuivan/configurable-tables/internal/platform/render"
	"github.com/taibuivan/configurable-tables/internal/platform/sec"
	"github.com/taibuivan/configurable-tables/internal/table"
	"github.com/taibuivan/configurable-tables/internal/tableconfig"
	"github.com/taibuivan/configurable-tables/internal/tableview"
	"github.com/taibuivan/configurable-tables/migrations"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	log := newLogger(slog.LevelInfo)
	slog.SetDefault(log)

	log.Info("service_initializing", slog.String("version", constants.AppVersion))

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		log = newLogger(slog.LevelDebug)
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.Int("table_page_size", cfg.TablePageSize),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// Lives until shutdown; stops background workers such as the rate limiter sweep.
	appCtx, appCancel := context.WithCancel(context.Background())
	defer appCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, pgstore.Options{
		MaxConns:         cfg.DBMaxConns,
		MinConns:         cfg.DBMinConns,
		StatementTimeout: cfg.DBStatementTimeout,
	}, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	// ── 4. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, cfg.RedisPoolSize, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing redis client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis close error", slog.Any("error", cerr))
		}
	}()

	// ── 5. Migrations ─────────────────────────────────────────────────────
	// Embedded migrations unless MIGRATION_PATH points at a directory.
	migrationSource := migration.Source{Path: cfg.MigrationPath, FS: migrations.FS}
	must(log, migration.RunUp(cfg.DatabaseURL, migrationSource, log, cfg.Debug), "run migrations")

	// ── 6. Security ───────────────────────────────────────────────────────
	jwtSvc, err := sec.NewTokenService(cfg.JWTPrivKeyPath, cfg.JWTPubKeyPath, constants.AuthIssuer)
	must(log, err, "initialize jwt service")

	passwords, err := sec.NewPasswordHasher(cfg.PasswordCost)
	must(log, err, "initialize password hasher")

	// ── 7. Tables ─────────────────────────────────────────────────────────
	renderer, err := render.New(cfg.TemplateDir)
	must(log, err, "parse templates")

	registry := table.NewRegistry()
	must(log, customer.Register(registry), "register tables")

	configurations := tableconfig.NewCachedRepository(
		tableconfig.NewPostgresRepository(pool),
		rdb,
		cfg.TableConfigCacheTTL,
	)

	customerView := tableview.NewView(customer.CustomerTable, customer.Source(pool), configurations, renderer, tableview.Settings{
		Title:    "Customers",
		PageSize: cfg.TablePageSize,
		Filters:  customer.Filters(),
	})

	directory, err := tableview.NewDirectory(customerView)
	must(log, err, "build table directory")

	// ── 8. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func() error {
			return pgstore.Ping(context.Background(), pool)
		},
		CheckCache: func() error {
			return redisstore.Ping(context.Background(), rdb)
		},
	}, log)

	// ── 9. HTTP Server ────────────────────────────────────────────────────
	authService := auth.NewService(auth.NewUserRepository(pool), jwtSvc, passwords)

	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      auth.NewHandler(authService, cfg.CSRFSecureCookie),
		Tables:    directory,
		Catalog:   tableview.CatalogHandler(registry, api.TablesPrefix),
	}

	server := api.NewServer(appCtx, cfg, log, jwtSvc, handlers)

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
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

func newLogger(level slog.Level) *slog.Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With(slog.String("app", constants.AppName))
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is limited to startup wiring. After startup, all errors are returned
// and handled explicitly.
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}

// Custstats - Customer Statistics Aggregation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/custstats

package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/custstats/internal/api"
	"github.com/tomtom215/custstats/internal/config"
	"github.com/tomtom215/custstats/internal/database"
	"github.com/tomtom215/custstats/internal/logging"
	"github.com/tomtom215/custstats/internal/stats"
	"github.com/tomtom215/custstats/internal/supervisor"
	"github.com/tomtom215/custstats/internal/supervisor/services"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})

	if err := run(cfg); err != nil {
		logging.Fatal().Err(err).Msg("Server stopped with error")
	}
	logging.Info().Msg("Application stopped gracefully")
}

func run(cfg *config.Config) error {
	logging.Info().
		Str("version", version).
		Str("db_path", cfg.Database.Path).
		Str("summary_dedup", cfg.Stats.SummaryDedup).
		Bool("nats_enabled", cfg.NATS.Enabled).
		Msg("Starting custstats")

	db, err := database.New(&cfg.Database)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()

	breaker := database.NewBreakerSource(db, cfg.Breaker)
	engine := stats.NewEngine(breaker,
		stats.WithScatterLimit(cfg.Stats.ScatterLimit),
		stats.WithPageSizes(cfg.API.DefaultPageSize, cfg.API.MaxPageSize),
	)

	handler, err := api.NewHandler(engine, cfg, api.HandlerOptions{
		Store:   db,
		Breaker: breaker,
		Version: version,
	})
	if err != nil {
		return err
	}
	defer handler.Close()

	router := api.NewRouter(handler, api.NewChiMiddleware(api.NewChiMiddlewareConfig(cfg.Security)))
	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.SetupChi(),
		ReadTimeout:       cfg.Server.Timeout,
		ReadHeaderTimeout: cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		FailureThreshold: 5,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		return err
	}

	stopEvents, err := initEvents(cfg.NATS, handler, tree)
	if err != nil {
		return err
	}
	defer stopEvents()

	if cfg.Database.CheckpointInterval > 0 {
		tree.AddBackgroundService(services.NewPeriodicService("duckdb-checkpoint", cfg.Database.CheckpointInterval, db.Checkpoint))
	}
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := tree.ServeBackground(ctx)
	// Services get ShutdownTimeout each; the extra second covers the tree itself.
	err = supervisor.Wait(ctx, errCh, cfg.Server.ShutdownTimeout+time.Second)
	stop()
	switch {
	case errors.Is(err, supervisor.ErrShutdownTimeout):
		logging.Warn().Dur("timeout", cfg.Server.ShutdownTimeout).Msg("Supervisor tree did not stop in time")
	case err != nil:
		logging.Error().Err(err).Msg("Supervisor tree error")
	default:
		logging.Info().Msg("Supervisor tree stopped")
	}

	if unstopped, _ := tree.UnstoppedServiceReport(); len(unstopped) > 0 {
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
		}
	}
	return nil
}

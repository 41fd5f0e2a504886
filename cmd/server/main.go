// Nexus - Community Group Recommendations
// Copyright 2026 Nexus contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jasperfordesq-ai/nexus-v1-sub002

// Package main is the entry point for the Nexus recommendation server.
//
// Startup order:
//
//  1. Configuration: defaults, optional config.yaml, environment (koanf v2)
//  2. Logging: zerolog with the configured level and format
//  3. Database: DuckDB (default) or PostgreSQL via pgx, schema migrations
//  4. Engine: fused collaborative, content, location and activity signals
//  5. Interaction sink: database, NATS JetStream, Redis stream or log
//  6. Supervisor tree: interaction recorder and HTTP API under suture
//
// SIGINT and SIGTERM stop the HTTP server, drain the interaction queue and
// close the sink and database.
//
// Example:
//
//	export DATABASE_DSN=/data/nexus.duckdb
//	export INTERACTIONS_SINK=nats
//	export NATS_URL=nats://nats:4222
//	./nexus
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jasperfordesq-ai/nexus-v1-sub002/internal/api"
	"github.com/jasperfordesq-ai/nexus-v1-sub002/internal/config"
	"github.com/jasperfordesq-ai/nexus-v1-sub002/internal/database"
	"github.com/jasperfordesq-ai/nexus-v1-sub002/internal/logging"
	"github.com/jasperfordesq-ai/nexus-v1-sub002/internal/recommend/interactions"
	"github.com/jasperfordesq-ai/nexus-v1-sub002/internal/supervisor"
	"github.com/jasperfordesq-ai/nexus-v1-sub002/internal/supervisor/services"
)

func main() {
	if err := run(); err != nil {
		logging.Fatal().Err(err).Msg("server exited with error")
	}
}

//nolint:gocyclo // sequential startup steps
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	logCfg := cfg.Logging.LoggerConfig()
	logCfg.Environment = cfg.Server.Environment
	logging.Init(logCfg)
	logger := logging.Logger()
	logger.Info().
		Str("environment", cfg.Server.Environment).
		Str("db_driver", cfg.Database.Driver).
		Str("interaction_sink", cfg.Interactions.Sink).
		Msg("starting nexus")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := database.Open(ctx, database.Options{
		Driver:         cfg.Database.Driver,
		DSN:            cfg.Database.DSN,
		MaxOpenConns:   cfg.Database.MaxOpenConns,
		QueryTimeout:   cfg.Database.QueryTimeout,
		BreakerTimeout: cfg.Database.BreakerTimeout,
	}, logger)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error().Err(err).Msg("error closing database")
		}
	}()

	if cfg.Database.Migrate {
		applied, err := store.Migrate(ctx)
		if err != nil {
			return fmt.Errorf("migrate database: %w", err)
		}
		logger.Info().Int("applied", applied).Msg("database schema up to date")
	}

	engine, err := initRecommend(cfg, store, logger)
	if err != nil {
		return err
	}

	sink, closeSink, err := initSink(ctx, cfg, store, logger)
	if err != nil {
		return fmt.Errorf("initialize %s sink: %w", cfg.Interactions.Sink, err)
	}
	defer closeSink()

	recorder, err := interactions.NewRecorder(cfg.Interactions.RecorderConfig(), sink, logger)
	if err != nil {
		return err
	}

	handler, err := api.NewHandler(engine, recorder, store)
	if err != nil {
		return err
	}
	router := api.NewRouter(handler, api.NewMiddleware(&api.MiddlewareConfig{
		CORSAllowedOrigins: cfg.Security.CORSOrigins,
		CORSMaxAge:         86400,
		RateLimitRequests:  cfg.Security.RateLimitReqs,
		RateLimitWindow:    cfg.Security.RateLimitWindow,
		RateLimitDisabled:  cfg.Security.RateLimitDisabled,
	}))
	if cfg.Security.RateLimitDisabled {
		logger.Warn().Msg("rate limiting is disabled (DISABLE_RATE_LIMIT=true)")
	}

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router,
		ReadHeaderTimeout: cfg.Server.Timeout,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       2 * cfg.Server.Timeout,
	}

	tree := supervisor.NewTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	tree.AddWorker(services.NewRecorderService(recorder, sink.Name(), logger))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout, logger))

	logger.Info().Str("addr", server.Addr).Strs("signals", engine.Signals()).Msg("serving")

	err = tree.Serve(ctx)
	if report, reportErr := tree.UnstoppedServiceReport(); reportErr == nil && len(report) > 0 {
		for _, svc := range report {
			logger.Warn().Str("service", svc.Name).Msg("service did not stop within shutdown timeout")
		}
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("supervisor: %w", err)
	}

	logger.Info().Msg("shutdown complete")
	return nil
}

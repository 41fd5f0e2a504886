// Nexus - Community Group Recommendations
// Copyright 2026 Nexus contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jasperfordesq-ai/nexus-v1-sub002

package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jasperfordesq-ai/nexus-v1-sub002/internal/config"
	"github.com/jasperfordesq-ai/nexus-v1-sub002/internal/eventprocessor"
	"github.com/jasperfordesq-ai/nexus-v1-sub002/internal/queue"
	"github.com/jasperfordesq-ai/nexus-v1-sub002/internal/recommend/interactions"
)

// Interaction sink names accepted in INTERACTIONS_SINK.
const (
	sinkDatabase = "database"
	sinkNATS     = "nats"
	sinkRedis    = "redis"
	sinkLog      = "log"
)

// initSink builds the interaction sink selected in configuration. The
// returned close func releases the sink's connections and is never nil.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func initSink(ctx context.Context, cfg *config.Config, db interactions.Sink, logger zerolog.Logger) (interactions.Sink, func(), error) {
	noop := func() {}

	switch cfg.Interactions.Sink {
	case sinkDatabase:
		return db, noop, nil

	case sinkLog:
		return interactions.NewLogSink(logger.With().Str("component", "interactions").Logger()), noop, nil

	case sinkNATS:
		return initNATSSink(ctx, cfg, logger)

	case sinkRedis:
		sink, client, err := queue.Connect(ctx, queue.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Stream:   cfg.Redis.Stream,
			MaxLen:   cfg.Redis.MaxLen,
		})
		if err != nil {
			return nil, noop, err
		}
		logger.Info().Str("addr", cfg.Redis.Addr).Str("stream", cfg.Redis.Stream).Msg("redis interaction stream connected")
		return sink, func() {
			if err := client.Close(); err != nil {
				logger.Warn().Err(err).Msg("error closing redis client")
			}
		}, nil

	default:
		return nil, noop, fmt.Errorf("unknown interaction sink %q", cfg.Interactions.Sink)
	}
}

//nolint:gocritic // logger passed by value is acceptable for zerolog
func initNATSSink(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (interactions.Sink, func(), error) {
	noop := func() {}

	streamCfg := eventprocessor.DefaultStreamConfig()
	if err := eventprocessor.EnsureInteractionStream(ctx, cfg.NATS.URL, streamCfg); err != nil {
		return nil, noop, err
	}

	pubCfg := eventprocessor.DefaultPublisherConfig(cfg.NATS.URL)
	pubCfg.MaxReconnects = cfg.NATS.MaxReconnects
	if cfg.NATS.ReconnectWait > 0 {
		pubCfg.ReconnectWait = cfg.NATS.ReconnectWait
	}
	pubCfg.EnableTrackMsgID = cfg.NATS.TrackMsgID

	pub, err := eventprocessor.NewPublisher(pubCfg, eventprocessor.NewWatermillLogger(logger))
	if err != nil {
		return nil, noop, err
	}

	cbCfg := eventprocessor.DefaultCircuitBreakerConfig("nats-publisher")
	if cfg.NATS.BreakerFailures > 0 {
		cbCfg.FailureThreshold = cfg.NATS.BreakerFailures
	}
	if cfg.NATS.BreakerTimeout > 0 {
		cbCfg.Timeout = cfg.NATS.BreakerTimeout
	}
	pub.SetCircuitBreaker(eventprocessor.NewCircuitBreaker(cbCfg))

	logger.Info().
		Str("url", cfg.NATS.URL).
		Str("stream", streamCfg.Name).
		Uint32("breaker_failures", cbCfg.FailureThreshold).
		Msg("nats interaction publisher ready")

	return eventprocessor.NewInteractionSink(pub), func() {
		if err := pub.Close(); err != nil {
			logger.Warn().Err(err).Msg("error closing nats publisher")
		}
	}, nil
}

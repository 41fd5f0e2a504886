// Nexus - Community Group Recommendations
// Copyright 2026 Nexus contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jasperfordesq-ai/nexus-v1-sub002

package main

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jasperfordesq-ai/nexus-v1-sub002/internal/config"
	"github.com/jasperfordesq-ai/nexus-v1-sub002/internal/metrics"
	"github.com/jasperfordesq-ai/nexus-v1-sub002/internal/recommend"
	"github.com/jasperfordesq-ai/nexus-v1-sub002/internal/recommend/signals"
)

// initRecommend builds the engine over source and registers every signal
// that has a non-zero weight.
//
//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func initRecommend(cfg *config.Config, source recommend.DataSource, logger zerolog.Logger) (*recommend.Engine, error) {
	engineCfg := cfg.Recommend.EngineConfig()

	engine, err := recommend.NewEngine(engineCfg, source, logger)
	if err != nil {
		return nil, fmt.Errorf("create recommendation engine: %w", err)
	}
	engine.SetObserver(metrics.RecommendObserver{})

	generators := []recommend.Generator{
		signals.NewCollaborative(source, engineCfg.Collaborative),
		signals.NewContent(),
		signals.NewLocation(engineCfg.Location),
		signals.NewActivity(engineCfg.Activity),
	}
	weights := engineCfg.Weights.ToMap()
	for _, g := range generators {
		if weights[g.Name()] == 0 {
			logger.Info().Str("signal", g.Name()).Msg("signal disabled by zero weight")
			continue
		}
		engine.RegisterGenerator(g)
	}

	logger.Info().
		Strs("signals", engine.Signals()).
		Float64("radius_km", engineCfg.Location.RadiusKm).
		Int("default_limit", engineCfg.Limits.DefaultLimit).
		Int("max_limit", engineCfg.Limits.MaxLimit).
		Msg("recommendation engine ready")

	return engine, nil
}

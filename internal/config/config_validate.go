// Nexus - Community Group Recommendations
// Copyright 2026 Nexus contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jasperfordesq-ai/nexus-v1-sub002

package config

import (
	"fmt"
	"time"

	"github.com/jasperfordesq-ai/nexus-v1-sub002/internal/logging"
	"github.com/jasperfordesq-ai/nexus-v1-sub002/internal/validation"
)

// Validate checks the whole configuration. Any error must stop startup.
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(c); err != nil {
		return err
	}

	if !logging.ValidLevel(c.Logging.Level) {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error, fatal, panic, disabled")
	}

	if err := c.validateRateLimits(); err != nil {
		return err
	}

	if err := c.validateDatabase(); err != nil {
		return err
	}

	if err := c.validateSink(); err != nil {
		return err
	}

	if err := c.Recommend.EngineConfig().Validate(); err != nil {
		return fmt.Errorf("recommend: %w", err)
	}
	return nil
}

const (
	minRateLimitRequests = 1
	maxRateLimitRequests = 100000
	minRateLimitWindow   = time.Second
	maxRateLimitWindow   = time.Hour
)

func (c *Config) validateRateLimits() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < minRateLimitRequests || c.Security.RateLimitReqs > maxRateLimitRequests {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be between %d and %d", minRateLimitRequests, maxRateLimitRequests)
	}
	if c.Security.RateLimitWindow < minRateLimitWindow || c.Security.RateLimitWindow > maxRateLimitWindow {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be between %v and %v", minRateLimitWindow, maxRateLimitWindow)
	}
	return nil
}

func (c *Config) validateDatabase() error {
	if c.Database.Driver != "pgx" {
		return nil
	}
	if c.Database.DSN == "" {
		return fmt.Errorf("DATABASE_DSN is required when DATABASE_DRIVER=pgx")
	}
	return validatePostgresURL(c.Database.DSN)
}

func (c *Config) validateSink() error {
	switch c.Interactions.Sink {
	case "nats":
		if err := validateNATSURL(c.NATS.URL); err != nil {
			return fmt.Errorf("NATS_URL: %w", err)
		}
		if c.NATS.BreakerFailures == 0 {
			return fmt.Errorf("NATS_BREAKER_FAILURES must be positive")
		}
	case "redis":
		if err := validateRedisAddr(c.Redis.Addr); err != nil {
			return fmt.Errorf("REDIS_ADDR: %w", err)
		}
		if c.Redis.Stream == "" {
			return fmt.Errorf("REDIS_STREAM is required when INTERACTIONS_SINK=redis")
		}
	}
	return nil
}

// Nexus - Community Group Recommendations
// Copyright 2026 Nexus contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jasperfordesq-ai/nexus-v1-sub002

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths searched for a config file, in order.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/nexus/config.yaml",
	"/etc/nexus/config.yml",
}

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			Timeout:         30 * time.Second,
			ShutdownTimeout: 15 * time.Second,
			Environment:     "development",
		},
		Security: SecurityConfig{
			RateLimitReqs:   100,
			RateLimitWindow: time.Minute,
			CORSOrigins:     []string{"*"},
		},
		Database: DatabaseConfig{
			Driver:         "duckdb",
			DSN:            "/data/nexus.duckdb",
			MaxOpenConns:   10,
			QueryTimeout:   5 * time.Second,
			Migrate:        true,
			BreakerTimeout: 30 * time.Second,
		},
		Interactions: InteractionsConfig{
			Sink:         "database",
			QueueSize:    1024,
			WriteTimeout: 5 * time.Second,
			DrainTimeout: 10 * time.Second,
		},
		NATS: NATSConfig{
			URL:             "nats://127.0.0.1:4222",
			MaxReconnects:   -1,
			ReconnectWait:   2 * time.Second,
			TrackMsgID:      true,
			BreakerFailures: 5,
			BreakerTimeout:  10 * time.Second,
		},
		Redis: RedisConfig{
			Addr:   "127.0.0.1:6379",
			Stream: "nexus:interactions",
			MaxLen: 100000,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Recommend: RecommendConfig{
			Weights: WeightsConfig{
				Collaborative: 0.40,
				Content:       0.25,
				Location:      0.20,
				Activity:      0.15,
			},
			MinOverlap:       2,
			MaxNeighbors:     100,
			RadiusKm:         50,
			TopCategories:    5,
			DefaultLimit:     10,
			MaxLimit:         100,
			GeneratorTimeout: 2 * time.Second,
		},
	}
}

// LoadWithKoanf loads configuration using Koanf v2.
//
// Precedence: ENV > File > Defaults.
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// RECOMMEND_WEIGHT_CONTENT -> recommend.weights.content
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// sliceConfigPaths are parsed from comma-separated env values.
var sliceConfigPaths = []string{
	"security.cors_origins",
}

func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) == 0 {
			continue
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings maps environment variable names (lower-cased) to koanf paths.
var envMappings = map[string]string{
	"http_host":        "server.host",
	"http_port":        "server.port",
	"http_timeout":     "server.timeout",
	"shutdown_timeout": "server.shutdown_timeout",
	"environment":      "server.environment",

	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",
	"cors_origins":        "security.cors_origins",

	"database_driver":          "database.driver",
	"database_dsn":             "database.dsn",
	"database_max_open_conns":  "database.max_open_conns",
	"database_query_timeout":   "database.query_timeout",
	"database_migrate":         "database.migrate",
	"database_breaker_timeout": "database.breaker_timeout",

	"interactions_sink":          "interactions.sink",
	"interactions_queue_size":    "interactions.queue_size",
	"interactions_write_timeout": "interactions.write_timeout",
	"interactions_drain_timeout": "interactions.drain_timeout",

	"nats_url":              "nats.url",
	"nats_max_reconnects":   "nats.max_reconnects",
	"nats_reconnect_wait":   "nats.reconnect_wait",
	"nats_track_msg_id":     "nats.track_msg_id",
	"nats_breaker_failures": "nats.breaker_failures",
	"nats_breaker_timeout":  "nats.breaker_timeout",

	"redis_addr":     "redis.addr",
	"redis_password": "redis.password",
	"redis_db":       "redis.db",
	"redis_stream":   "redis.stream",
	"redis_max_len":  "redis.max_len",

	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",

	"recommend_weight_collaborative": "recommend.weights.collaborative",
	"recommend_weight_content":       "recommend.weights.content",
	"recommend_weight_location":      "recommend.weights.location",
	"recommend_weight_activity":      "recommend.weights.activity",
	"recommend_min_overlap":          "recommend.min_overlap",
	"recommend_max_neighbors":        "recommend.max_neighbors",
	"recommend_radius_km":            "recommend.radius_km",
	"recommend_top_categories":       "recommend.top_categories",
	"recommend_default_limit":        "recommend.default_limit",
	"recommend_max_limit":            "recommend.max_limit",
	"recommend_generator_timeout":    "recommend.generator_timeout",
}

// envTransformFunc maps an environment variable to its config path.
// Unmapped variables return "" and are skipped.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}

// Nexus - Community Group Recommendations
// Copyright 2026 Nexus contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jasperfordesq-ai/nexus-v1-sub002

package config

import (
	"fmt"
	"time"

	"github.com/jasperfordesq-ai/nexus-v1-sub002/internal/logging"
	"github.com/jasperfordesq-ai/nexus-v1-sub002/internal/recommend"
	"github.com/jasperfordesq-ai/nexus-v1-sub002/internal/recommend/interactions"
)

// Config holds all application configuration.
//
// Loading order (later layers win):
//  1. Built-in defaults
//  2. Optional YAML file (config.yaml, or the path in CONFIG_PATH)
//  3. Environment variables
//
// Config is immutable after Load and safe for concurrent reads.
type Config struct {
	Server       ServerConfig       `koanf:"server"`
	Security     SecurityConfig     `koanf:"security"`
	Database     DatabaseConfig     `koanf:"database"`
	Interactions InteractionsConfig `koanf:"interactions"`
	NATS         NATSConfig         `koanf:"nats"`
	Redis        RedisConfig        `koanf:"redis"`
	Logging      LoggingConfig      `koanf:"logging"`
	Recommend    RecommendConfig    `koanf:"recommend"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port" validate:"min=1,max=65535"`
	Timeout         time.Duration `koanf:"timeout" validate:"gt=0"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"gt=0"`
	Environment     string        `koanf:"environment" validate:"oneof=development staging production"`
}

// Addr returns host:port for net/http.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// SecurityConfig holds request throttling and CORS settings.
// Authentication is out of scope for this service.
type SecurityConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// DatabaseConfig selects and tunes the SQL data source.
type DatabaseConfig struct {
	// Driver is duckdb or pgx.
	Driver string `koanf:"driver" validate:"oneof=duckdb pgx"`

	// DSN is a DuckDB file path (empty for in-memory) or a PostgreSQL URL.
	DSN string `koanf:"dsn"`

	MaxOpenConns int           `koanf:"max_open_conns" validate:"gte=0"`
	QueryTimeout time.Duration `koanf:"query_timeout" validate:"gt=0"`

	// Migrate applies the schema at startup.
	Migrate bool `koanf:"migrate"`

	// BreakerTimeout is how long the read breaker stays open.
	BreakerTimeout time.Duration `koanf:"breaker_timeout" validate:"gt=0"`
}

// InteractionsConfig configures the interaction recorder.
type InteractionsConfig struct {
	// Sink is database, nats, redis or log.
	Sink         string        `koanf:"sink" validate:"oneof=database nats redis log"`
	QueueSize    int           `koanf:"queue_size" validate:"gt=0"`
	WriteTimeout time.Duration `koanf:"write_timeout" validate:"gt=0"`
	DrainTimeout time.Duration `koanf:"drain_timeout" validate:"gt=0"`
}

// RecorderConfig converts to the recorder's own settings.
func (c InteractionsConfig) RecorderConfig() interactions.Config {
	return interactions.Config{
		QueueSize:    c.QueueSize,
		WriteTimeout: c.WriteTimeout,
		DrainTimeout: c.DrainTimeout,
	}
}

// NATSConfig holds the JetStream publisher settings used by the nats sink.
type NATSConfig struct {
	URL             string        `koanf:"url"`
	MaxReconnects   int           `koanf:"max_reconnects"`
	ReconnectWait   time.Duration `koanf:"reconnect_wait"`
	TrackMsgID      bool          `koanf:"track_msg_id"` //nolint:revive // ID is correct per Go conventions
	BreakerFailures uint32        `koanf:"breaker_failures"`
	BreakerTimeout  time.Duration `koanf:"breaker_timeout"`
}

// RedisConfig holds the stream settings used by the redis sink.
type RedisConfig struct {
	Addr     string `koanf:"addr"`
	Password string `koanf:"password"`
	DB       int    `koanf:"db" validate:"gte=0"`
	Stream   string `koanf:"stream"`
	MaxLen   int64  `koanf:"max_len" validate:"gte=0"`
}

// LoggingConfig holds zerolog settings.
//
// Environment Variables:
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: json, console (default: json)
//   - LOG_CALLER: true/false (default: false)
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format" validate:"oneof=json console"`
	Caller bool   `koanf:"caller"`
}

// LoggerConfig converts to logging.Config.
func (c LoggingConfig) LoggerConfig() logging.Config {
	cfg := logging.DefaultConfig()
	cfg.Level = c.Level
	cfg.Format = c.Format
	cfg.Caller = c.Caller
	return cfg
}

// RecommendConfig holds engine tuning. Weights are fixed for the life of
// the process.
type RecommendConfig struct {
	Weights          WeightsConfig `koanf:"weights"`
	MinOverlap       int           `koanf:"min_overlap"`
	MaxNeighbors     int           `koanf:"max_neighbors"`
	RadiusKm         float64       `koanf:"radius_km"`
	TopCategories    int           `koanf:"top_categories"`
	DefaultLimit     int           `koanf:"default_limit"`
	MaxLimit         int           `koanf:"max_limit"`
	GeneratorTimeout time.Duration `koanf:"generator_timeout"`
}

// WeightsConfig holds the fusion weight per signal.
type WeightsConfig struct {
	Collaborative float64 `koanf:"collaborative"`
	Content       float64 `koanf:"content"`
	Location      float64 `koanf:"location"`
	Activity      float64 `koanf:"activity"`
}

// EngineConfig converts to recommend.Config. The result is not validated.
func (c RecommendConfig) EngineConfig() *recommend.Config {
	return &recommend.Config{
		Weights: recommend.Weights{
			Collaborative: c.Weights.Collaborative,
			Content:       c.Weights.Content,
			Location:      c.Weights.Location,
			Activity:      c.Weights.Activity,
		},
		Collaborative: recommend.CollaborativeConfig{
			MinOverlap:   c.MinOverlap,
			MaxNeighbors: c.MaxNeighbors,
		},
		Location: recommend.LocationConfig{RadiusKm: c.RadiusKm},
		Activity: recommend.ActivityConfig{TopCategories: c.TopCategories},
		Limits: recommend.LimitsConfig{
			DefaultLimit: c.DefaultLimit,
			MaxLimit:     c.MaxLimit,
		},
		GeneratorTimeout: c.GeneratorTimeout,
	}
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// Load reads configuration from defaults, an optional file and the
// environment, then validates it.
func Load() (*Config, error) {
	return LoadWithKoanf()
}

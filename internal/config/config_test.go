// Nexus - Community Group Recommendations
// Copyright 2026 Nexus contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jasperfordesq-ai/nexus-v1-sub002

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/knadh/koanf/v2"
)

func TestDefaultConfig_Valid(t *testing.T) {
	cfg := defaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate, got %v", err)
	}
	if cfg.Server.Addr() != "0.0.0.0:8080" {
		t.Errorf("Addr() = %q, want 0.0.0.0:8080", cfg.Server.Addr())
	}
	if cfg.IsProduction() {
		t.Error("default environment should not be production")
	}
}

func TestEngineConfig_MatchesEngineDefaults(t *testing.T) {
	got := defaultConfig().Recommend.EngineConfig()
	if err := got.Validate(); err != nil {
		t.Fatalf("EngineConfig() invalid: %v", err)
	}
	if got.Weights.Collaborative != 0.40 || got.Weights.Content != 0.25 ||
		got.Weights.Location != 0.20 || got.Weights.Activity != 0.15 {
		t.Errorf("weights = %+v", got.Weights)
	}
	if got.Collaborative.MinOverlap != 2 || got.Collaborative.MaxNeighbors != 100 {
		t.Errorf("collaborative = %+v", got.Collaborative)
	}
	if got.Limits.DefaultLimit != 10 || got.Limits.MaxLimit != 100 {
		t.Errorf("limits = %+v", got.Limits)
	}
	if got.GeneratorTimeout != 2*time.Second {
		t.Errorf("GeneratorTimeout = %v", got.GeneratorTimeout)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"bad port", func(c *Config) { c.Server.Port = 0 }, "port"},
		{"bad environment", func(c *Config) { c.Server.Environment = "qa" }, "environment"},
		{"unknown driver", func(c *Config) { c.Database.Driver = "sqlite" }, "driver"},
		{"pgx without dsn", func(c *Config) {
			c.Database.Driver = "pgx"
			c.Database.DSN = ""
		}, "DATABASE_DSN"},
		{"pgx with bad scheme", func(c *Config) {
			c.Database.Driver = "pgx"
			c.Database.DSN = "mysql://db/nexus"
		}, "scheme"},
		{"pgx valid", func(c *Config) {
			c.Database.Driver = "pgx"
			c.Database.DSN = "postgres://nexus:pw@db:5432/nexus"
		}, ""},
		{"unknown sink", func(c *Config) { c.Interactions.Sink = "kafka" }, "sink"},
		{"zero queue", func(c *Config) { c.Interactions.QueueSize = 0 }, "queue_size"},
		{"nats bad url", func(c *Config) {
			c.Interactions.Sink = "nats"
			c.NATS.URL = "http://localhost:4222"
		}, "NATS_URL"},
		{"nats valid", func(c *Config) { c.Interactions.Sink = "nats" }, ""},
		{"redis bad addr", func(c *Config) {
			c.Interactions.Sink = "redis"
			c.Redis.Addr = "localhost"
		}, "REDIS_ADDR"},
		{"redis no stream", func(c *Config) {
			c.Interactions.Sink = "redis"
			c.Redis.Stream = ""
		}, "REDIS_STREAM"},
		{"bad log level", func(c *Config) { c.Logging.Level = "loud" }, "LOG_LEVEL"},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }, "format"},
		{"rate limit too high", func(c *Config) { c.Security.RateLimitReqs = 1_000_000 }, "RATE_LIMIT_REQUESTS"},
		{"rate limit disabled skips bounds", func(c *Config) {
			c.Security.RateLimitDisabled = true
			c.Security.RateLimitReqs = 0
		}, ""},
		{"weights do not sum to one", func(c *Config) { c.Recommend.Weights.Content = 0.5 }, "sum to 1.0"},
		{"negative weight", func(c *Config) {
			c.Recommend.Weights.Content = -0.25
			c.Recommend.Weights.Collaborative = 0.90
		}, "non-negative"},
		{"zero radius", func(c *Config) { c.Recommend.RadiusKm = 0 }, "radius_km"},
		{"max below default", func(c *Config) { c.Recommend.MaxLimit = 5 }, "max_limit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() expected error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %q, want it to contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestLoadWithKoanf_Defaults(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, filepath.Join(t.TempDir(), "missing.yaml"))

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}
	if cfg.Database.Driver != "duckdb" {
		t.Errorf("Driver = %q, want duckdb", cfg.Database.Driver)
	}
	if cfg.Interactions.Sink != "database" {
		t.Errorf("Sink = %q, want database", cfg.Interactions.Sink)
	}
	if cfg.Recommend.GeneratorTimeout != 2*time.Second {
		t.Errorf("GeneratorTimeout = %v, want 2s", cfg.Recommend.GeneratorTimeout)
	}
}

func TestLoadWithKoanf_EnvOverrides(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("INTERACTIONS_SINK", "log")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("RECOMMEND_WEIGHT_COLLABORATIVE", "0.5")
	t.Setenv("RECOMMEND_WEIGHT_ACTIVITY", "0.05")
	t.Setenv("RECOMMEND_GENERATOR_TIMEOUT", "500ms")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Interactions.Sink != "log" {
		t.Errorf("Sink = %q, want log", cfg.Interactions.Sink)
	}
	if len(cfg.Security.CORSOrigins) != 2 || cfg.Security.CORSOrigins[1] != "https://b.example" {
		t.Errorf("CORSOrigins = %v", cfg.Security.CORSOrigins)
	}
	if cfg.Recommend.Weights.Collaborative != 0.5 || cfg.Recommend.Weights.Activity != 0.05 {
		t.Errorf("Weights = %+v", cfg.Recommend.Weights)
	}
	if cfg.Recommend.GeneratorTimeout != 500*time.Millisecond {
		t.Errorf("GeneratorTimeout = %v, want 500ms", cfg.Recommend.GeneratorTimeout)
	}
}

func TestLoadWithKoanf_InvalidWeightsFail(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("RECOMMEND_WEIGHT_CONTENT", "0.9")

	if _, err := LoadWithKoanf(); err == nil {
		t.Fatal("LoadWithKoanf() expected error for weights summing above 1.0")
	}
}

func TestLoadWithKoanf_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  port: 7070
database:
  driver: pgx
  dsn: postgres://nexus:pw@localhost:5432/nexus
interactions:
  sink: redis
redis:
  addr: cache:6379
  stream: events
recommend:
  radius_km: 25
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("HTTP_PORT", "7171")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}
	if cfg.Server.Port != 7171 {
		t.Errorf("Port = %d, env should win over file", cfg.Server.Port)
	}
	if cfg.Database.Driver != "pgx" || cfg.Redis.Addr != "cache:6379" || cfg.Redis.Stream != "events" {
		t.Errorf("file values not applied: %+v %+v", cfg.Database, cfg.Redis)
	}
	if cfg.Recommend.RadiusKm != 25 {
		t.Errorf("RadiusKm = %v, want 25", cfg.Recommend.RadiusKm)
	}
	if cfg.Recommend.MaxNeighbors != 100 {
		t.Errorf("MaxNeighbors = %d, default should survive partial file", cfg.Recommend.MaxNeighbors)
	}
}

func TestEnvTransformFunc(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"HTTP_PORT", "server.port"},
		{"RECOMMEND_WEIGHT_CONTENT", "recommend.weights.content"},
		{"redis_addr", "redis.addr"},
		{"PATH", ""},
		{"HOME", ""},
	}
	for _, tt := range tests {
		if got := envTransformFunc(tt.key); got != tt.want {
			t.Errorf("envTransformFunc(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestProcessSliceFields(t *testing.T) {
	k := koanf.New(".")
	if err := k.Set("security.cors_origins", " a , ,b "); err != nil {
		t.Fatal(err)
	}
	if err := processSliceFields(k); err != nil {
		t.Fatalf("processSliceFields() error = %v", err)
	}
	got := k.Strings("security.cors_origins")
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("cors_origins = %v, want [a b]", got)
	}
}

func TestValidateRedisAddr(t *testing.T) {
	for _, ok := range []string{"localhost:6379", "10.0.0.1:6380"} {
		if err := validateRedisAddr(ok); err != nil {
			t.Errorf("validateRedisAddr(%q) error = %v", ok, err)
		}
	}
	for _, bad := range []string{"", "localhost", ":6379"} {
		if err := validateRedisAddr(bad); err == nil {
			t.Errorf("validateRedisAddr(%q) expected error", bad)
		}
	}
}

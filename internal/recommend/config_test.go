// Nexus - Community Group Recommendations
// Copyright 2026 Nexus contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jasperfordesq-ai/nexus-v1-sub002

package recommend

import (
	"math"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() error = %v", err)
	}

	w := cfg.Weights
	if w.Collaborative != 0.40 || w.Content != 0.25 || w.Location != 0.20 || w.Activity != 0.15 {
		t.Errorf("unexpected default weights: %+v", w)
	}
	if cfg.Collaborative.MinOverlap != 2 {
		t.Errorf("MinOverlap = %d, want 2", cfg.Collaborative.MinOverlap)
	}
	if cfg.Collaborative.MaxNeighbors != 100 {
		t.Errorf("MaxNeighbors = %d, want 100", cfg.Collaborative.MaxNeighbors)
	}
	if cfg.Location.RadiusKm != 50 {
		t.Errorf("RadiusKm = %f, want 50", cfg.Location.RadiusKm)
	}
	if cfg.Activity.TopCategories != 5 {
		t.Errorf("TopCategories = %d, want 5", cfg.Activity.TopCategories)
	}
	if cfg.GeneratorTimeout != 2*time.Second {
		t.Errorf("GeneratorTimeout = %v, want 2s", cfg.GeneratorTimeout)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid default config",
			modify:  func(c *Config) {},
			wantErr: false,
		},
		{
			name: "weights summing below one",
			modify: func(c *Config) {
				c.Weights.Activity = 0.05
			},
			wantErr: true,
		},
		{
			name: "weights summing above one",
			modify: func(c *Config) {
				c.Weights.Collaborative = 0.5
			},
			wantErr: true,
		},
		{
			name: "negative weight",
			modify: func(c *Config) {
				c.Weights = Weights{Collaborative: 1.2, Content: -0.2}
			},
			wantErr: true,
		},
		{
			name: "NaN weight",
			modify: func(c *Config) {
				c.Weights.Location = math.NaN()
			},
			wantErr: true,
		},
		{
			name: "single signal carrying all weight",
			modify: func(c *Config) {
				c.Weights = Weights{Content: 1.0}
			},
			wantErr: false,
		},
		{
			name: "weights with float rounding still sum to one",
			modify: func(c *Config) {
				c.Weights = Weights{Collaborative: 0.1, Content: 0.2, Location: 0.3, Activity: 0.4}
			},
			wantErr: false,
		},
		{
			name: "zero min overlap",
			modify: func(c *Config) {
				c.Collaborative.MinOverlap = 0
			},
			wantErr: true,
		},
		{
			name: "zero max neighbors",
			modify: func(c *Config) {
				c.Collaborative.MaxNeighbors = 0
			},
			wantErr: true,
		},
		{
			name: "zero radius",
			modify: func(c *Config) {
				c.Location.RadiusKm = 0
			},
			wantErr: true,
		},
		{
			name: "zero top categories",
			modify: func(c *Config) {
				c.Activity.TopCategories = 0
			},
			wantErr: true,
		},
		{
			name: "zero default limit",
			modify: func(c *Config) {
				c.Limits.DefaultLimit = 0
			},
			wantErr: true,
		},
		{
			name: "max limit below default",
			modify: func(c *Config) {
				c.Limits.MaxLimit = 5
			},
			wantErr: true,
		},
		{
			name: "zero generator timeout",
			modify: func(c *Config) {
				c.GeneratorTimeout = 0
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestWeights_ToMap(t *testing.T) {
	m := DefaultConfig().Weights.ToMap()

	if len(m) != 4 {
		t.Fatalf("ToMap() has %d entries, want 4", len(m))
	}
	if m[SignalCollaborative] != 0.40 {
		t.Errorf("collaborative = %f, want 0.40", m[SignalCollaborative])
	}
	if m[SignalActivity] != 0.15 {
		t.Errorf("activity = %f, want 0.15", m[SignalActivity])
	}
}

func TestConfig_Clone(t *testing.T) {
	original := DefaultConfig()
	clone := original.Clone()

	clone.Weights.Content = 0.9
	clone.Limits.MaxLimit = 1

	if original.Weights.Content != 0.25 {
		t.Error("modifying clone changed original weights")
	}
	if original.Limits.MaxLimit != 100 {
		t.Error("modifying clone changed original limits")
	}
}

// Nexus - Community Group Recommendations
// Copyright 2026 Nexus contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jasperfordesq-ai/nexus-v1-sub002

package recommend

import (
	"fmt"
	"math"
	"time"
)

// Signal names. They double as fusion weight keys and metric labels.
const (
	SignalCollaborative = "collaborative"
	SignalContent       = "content"
	SignalLocation      = "location"
	SignalActivity      = "activity"
)

// weightTolerance absorbs float rounding when summing configured weights.
const weightTolerance = 1e-9

// Config contains all configuration for the recommendation engine.
type Config struct {
	// Weights defines the fixed contribution of each signal.
	// They must sum to exactly 1.0.
	Weights Weights `json:"weights"`

	// Collaborative contains neighbour selection parameters.
	Collaborative CollaborativeConfig `json:"collaborative"`

	// Location contains the distance cutoff.
	Location LocationConfig `json:"location"`

	// Activity contains activity tag selection parameters.
	Activity ActivityConfig `json:"activity"`

	// Limits contains result size limits.
	Limits LimitsConfig `json:"limits"`

	// GeneratorTimeout bounds each signal generator.
	// Default: 2s.
	GeneratorTimeout time.Duration `json:"generator_timeout"`
}

// Weights defines the contribution of each signal to the fused score.
type Weights struct {
	Collaborative float64 `json:"collaborative"`
	Content       float64 `json:"content"`
	Location      float64 `json:"location"`
	Activity      float64 `json:"activity"`
}

// Sum returns the total of all weights.
func (w Weights) Sum() float64 {
	return w.Collaborative + w.Content + w.Location + w.Activity
}

// ToMap returns the weights keyed by signal name.
func (w Weights) ToMap() map[string]float64 {
	return map[string]float64{
		SignalCollaborative: w.Collaborative,
		SignalContent:       w.Content,
		SignalLocation:      w.Location,
		SignalActivity:      w.Activity,
	}
}

// CollaborativeConfig contains parameters for the collaborative filter.
type CollaborativeConfig struct {
	// MinOverlap is the minimum number of shared active groups for a neighbour.
	// Default: 2.
	MinOverlap int `json:"min_overlap"`

	// MaxNeighbors caps the neighbours that contribute scores.
	// Default: 100.
	MaxNeighbors int `json:"max_neighbors"`
}

// LocationConfig contains parameters for the location scorer.
type LocationConfig struct {
	// RadiusKm is the cutoff distance. Groups at or beyond it get no score.
	// Default: 50.
	RadiusKm float64 `json:"radius_km"`
}

// ActivityConfig contains parameters for the activity scorer.
type ActivityConfig struct {
	// TopCategories is how many of the most frequent tags are used.
	// Default: 5.
	TopCategories int `json:"top_categories"`
}

// LimitsConfig contains result size limits.
type LimitsConfig struct {
	// DefaultLimit is used when a request does not set one.
	// Default: 10.
	DefaultLimit int `json:"default_limit"`

	// MaxLimit clamps request limits.
	// Default: 100.
	MaxLimit int `json:"max_limit"`
}

// DefaultConfig returns the production defaults.
func DefaultConfig() *Config {
	return &Config{
		Weights: Weights{
			Collaborative: 0.40,
			Content:       0.25,
			Location:      0.20,
			Activity:      0.15,
		},
		Collaborative: CollaborativeConfig{
			MinOverlap:   2,
			MaxNeighbors: 100,
		},
		Location: LocationConfig{
			RadiusKm: 50,
		},
		Activity: ActivityConfig{
			TopCategories: 5,
		},
		Limits: LimitsConfig{
			DefaultLimit: 10,
			MaxLimit:     100,
		},
		GeneratorTimeout: 2 * time.Second,
	}
}

// Validate checks the configuration for errors.
// It is meant to run once at startup; a failure must stop the process.
//
//nolint:gocyclo // validation needs to check many fields
func (c *Config) Validate() error {
	for name, w := range c.Weights.ToMap() {
		if w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
			return fmt.Errorf("weights.%s must be a non-negative number, got %f", name, w)
		}
	}
	if sum := c.Weights.Sum(); math.Abs(sum-1.0) > weightTolerance {
		return fmt.Errorf("weights must sum to 1.0, got %f", sum)
	}

	if c.Collaborative.MinOverlap < 1 {
		return fmt.Errorf("collaborative.min_overlap must be positive, got %d", c.Collaborative.MinOverlap)
	}
	if c.Collaborative.MaxNeighbors < 1 {
		return fmt.Errorf("collaborative.max_neighbors must be positive, got %d", c.Collaborative.MaxNeighbors)
	}

	if c.Location.RadiusKm <= 0 || math.IsInf(c.Location.RadiusKm, 0) || math.IsNaN(c.Location.RadiusKm) {
		return fmt.Errorf("location.radius_km must be positive, got %f", c.Location.RadiusKm)
	}

	if c.Activity.TopCategories < 1 {
		return fmt.Errorf("activity.top_categories must be positive, got %d", c.Activity.TopCategories)
	}

	if c.Limits.DefaultLimit < 1 {
		return fmt.Errorf("limits.default_limit must be positive, got %d", c.Limits.DefaultLimit)
	}
	if c.Limits.MaxLimit < c.Limits.DefaultLimit {
		return fmt.Errorf("limits.max_limit must be >= limits.default_limit, got %d < %d", c.Limits.MaxLimit, c.Limits.DefaultLimit)
	}

	if c.GeneratorTimeout <= 0 {
		return fmt.Errorf("generator_timeout must be positive, got %v", c.GeneratorTimeout)
	}

	return nil
}

// Clone returns a copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

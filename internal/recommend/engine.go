// Nexus - Community Group Recommendations
// Copyright 2026 Nexus contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jasperfordesq-ai/nexus-v1-sub002

package recommend

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Note: This package has no dependencies on other internal packages. The
// reader interfaces in types.go let the database package plug in without
// creating circular imports, and signal generators are registered from
// the outside.

// Engine fuses signal generators into ranked group recommendations.
// It holds no per-request state and is safe for concurrent use.
type Engine struct {
	config *Config
	logger zerolog.Logger
	source DataSource

	generators []Generator
	genMu      sync.RWMutex

	observer Observer
}

// NewEngine creates a new recommendation engine.
// The configuration is validated here so that bad weights fail at startup.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, source DataSource, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	if source == nil {
		return nil, ErrNoDataSource
	}

	return &Engine{
		config:     cfg.Clone(),
		logger:     logger.With().Str("component", "recommend").Logger(),
		source:     source,
		generators: make([]Generator, 0, 4),
		observer:   noopObserver{},
	}, nil
}

// SetObserver installs an observer for engine events.
func (e *Engine) SetObserver(o Observer) {
	if o == nil {
		o = noopObserver{}
	}
	e.observer = o
}

// RegisterGenerator adds a signal generator to the engine.
func (e *Engine) RegisterGenerator(g Generator) {
	e.genMu.Lock()
	defer e.genMu.Unlock()

	e.generators = append(e.generators, g)
	e.logger.Info().
		Str("signal", g.Name()).
		Float64("weight", e.config.Weights.ToMap()[g.Name()]).
		Msg("registered signal generator")
}

// Signals returns the names of the registered generators.
func (e *Engine) Signals() []string {
	e.genMu.RLock()
	defer e.genMu.RUnlock()

	names := make([]string, len(e.generators))
	for i, g := range e.generators {
		names[i] = g.Name()
	}
	return names
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() *Config {
	return e.config.Clone()
}

// Recommend produces a ranked list of groups for a user.
//
// Ordinary data gaps never surface as errors: a failed signal contributes
// nothing, a user without memberships gets the popularity fallback, and a
// failed group read yields an empty list. Only a negative limit is rejected.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) Recommend(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()

	if req.Limit < 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidLimit, req.Limit)
	}

	req = e.prepareRequest(req)
	logger := e.createRequestLogger(req)
	logger.Debug().Msg("processing recommendation request")

	groups, err := e.source.VisibleGroups(ctx, req.TenantID)
	if err != nil {
		e.observer.DataSourceFailed("groups")
		logger.Error().Err(err).Msg("failed to load visible groups")
		return e.finish(req, StrategyNone, []Result{}, nil, 0, start, logger), nil
	}

	eligible, byID := eligibleGroups(groups, req.Category)

	memberships, err := e.source.ActiveGroupIDs(ctx, req.TenantID, req.UserID)
	membershipsKnown := err == nil
	if err != nil {
		e.observer.DataSourceFailed("memberships")
		logger.Warn().Err(err).Msg("failed to load memberships, collaborative signal unavailable")
		memberships = nil
	}

	exclude := idSet(memberships, req.ExcludeIDs)

	if membershipsKnown && len(memberships) == 0 {
		return e.fallback(req, eligible, byID, exclude, FallbackNoMemberships, start, logger), nil
	}

	profile, err := e.source.UserProfile(ctx, req.TenantID, req.UserID)
	if err != nil {
		e.observer.DataSourceFailed("profile")
		logger.Warn().Err(err).Msg("failed to load user profile, profile signals unavailable")
		profile = nil
	}

	subject := Subject{
		TenantID:    req.TenantID,
		UserID:      req.UserID,
		Memberships: memberships,
		Profile:     profile,
		Groups:      groups,
	}

	maps := e.runGenerators(ctx, subject, logger)
	fused, breakdown := Fuse(maps, e.config.Weights)
	if len(fused) == 0 {
		return e.fallback(req, eligible, byID, exclude, FallbackNoSignal, start, logger), nil
	}

	ranked := Rank(fused, RankOptions{
		Exclude:  exclude,
		Eligible: eligible,
		Limit:    req.Limit,
	})

	items := Assemble(ranked, byID, breakdown)
	return e.finish(req, StrategyPersonalized, items, signalsUsed(maps), len(fused), start, logger), nil
}

// prepareRequest applies defaults and generates a request ID if needed.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) prepareRequest(req Request) Request {
	if req.RequestID == "" {
		req.RequestID = uuid.NewString()
	}

	if req.Limit == 0 {
		req.Limit = e.config.Limits.DefaultLimit
	}
	if req.Limit > e.config.Limits.MaxLimit {
		req.Limit = e.config.Limits.MaxLimit
	}

	return req
}

// createRequestLogger creates a logger with request context.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) createRequestLogger(req Request) zerolog.Logger {
	return e.logger.With().
		Str("request_id", req.RequestID).
		Int64("tenant_id", req.TenantID).
		Int64("user_id", req.UserID).
		Logger()
}

// eligibleGroups indexes the visible groups and returns the IDs that pass the
// optional category filter. An unknown category matches nothing.
func eligibleGroups(groups []Group, category string) (map[int64]struct{}, map[int64]Group) {
	eligible := make(map[int64]struct{}, len(groups))
	byID := make(map[int64]Group, len(groups))

	for i := range groups {
		g := groups[i]
		if g.Visibility == VisibilityPrivate {
			continue
		}
		byID[g.ID] = g
		if category != "" && g.Category != category {
			continue
		}
		eligible[g.ID] = struct{}{}
	}

	return eligible, byID
}

// genResult holds the result of a single generator run.
type genResult struct {
	name   string
	scores ScoreMap
	err    error
}

// runGenerators runs all generators concurrently, each under its own timeout.
// A failed generator is logged and contributes an empty map.
//
//nolint:gocritic // hugeParam: subject passed by value for immutability
func (e *Engine) runGenerators(ctx context.Context, subject Subject, logger zerolog.Logger) map[string]ScoreMap {
	e.genMu.RLock()
	generators := e.generators
	e.genMu.RUnlock()

	results := make([]genResult, len(generators))
	var g errgroup.Group

	for i, gen := range generators {
		g.Go(func() error {
			results[i] = e.runSingleGenerator(ctx, subject, gen)
			return nil
		})
	}
	_ = g.Wait() //nolint:errcheck // workers never return errors

	maps := make(map[string]ScoreMap, len(results))
	for _, r := range results {
		if r.err != nil {
			logger.Warn().
				Str("signal", r.name).
				Err(r.err).
				Msg("signal generator failed")
			maps[r.name] = ScoreMap{}
			continue
		}
		maps[r.name] = r.scores
	}
	return maps
}

// runSingleGenerator runs one generator with a timeout and panic guard.
//
//nolint:gocritic // hugeParam: subject passed by value for immutability
func (e *Engine) runSingleGenerator(ctx context.Context, subject Subject, gen Generator) (result genResult) {
	result.name = gen.Name()
	start := time.Now()

	genCtx, cancel := context.WithTimeout(ctx, e.config.GeneratorTimeout)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			result.scores = nil
			result.err = fmt.Errorf("panic: %v", r)
		}
		e.observer.SignalCompleted(result.name, len(result.scores), time.Since(start), result.err)
	}()

	scores, err := gen.Generate(genCtx, subject)
	if err == nil && genCtx.Err() != nil {
		err = fmt.Errorf("deadline: %w", genCtx.Err())
	}
	if err != nil {
		result.err = err
		return result
	}

	if scores == nil {
		scores = ScoreMap{}
	}
	result.scores = scores
	return result
}

// signalsUsed returns the names of signals that produced at least one entry,
// in name order.
func signalsUsed(maps map[string]ScoreMap) []string {
	used := make([]string, 0, len(maps))
	for name, m := range maps {
		if len(m) > 0 {
			used = append(used, name)
		}
	}
	sort.Strings(used)
	return used
}

// fallback serves the popularity ranking over the eligible groups.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) fallback(req Request, eligible map[int64]struct{}, byID map[int64]Group, exclude map[int64]struct{}, reason string, start time.Time, logger zerolog.Logger) *Response {
	e.observer.FallbackUsed(reason)
	logger.Debug().Str("reason", reason).Msg("using popularity fallback")

	candidates := make([]Group, 0, len(eligible))
	for id := range eligible {
		candidates = append(candidates, byID[id])
	}

	items := Popular(candidates, exclude, req.Limit)
	return e.finish(req, StrategyPopular, items, []string{}, len(candidates), start, logger)
}

// finish builds the response and reports it.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) finish(req Request, strategy Strategy, items []Result, used []string, candidates int, start time.Time, logger zerolog.Logger) *Response {
	if used == nil {
		used = []string{}
	}
	latency := time.Since(start)

	resp := &Response{
		Items: items,
		Metadata: ResponseMetadata{
			RequestID:       req.RequestID,
			TenantID:        req.TenantID,
			UserID:          req.UserID,
			Strategy:        strategy,
			SignalsUsed:     used,
			TotalCandidates: candidates,
			LatencyMS:       latency.Milliseconds(),
			Timestamp:       time.Now().UTC(),
		},
	}

	e.observer.RequestCompleted(strategy, len(items), latency)
	logger.Debug().
		Str("strategy", string(strategy)).
		Int("candidates", candidates).
		Int("returned", len(items)).
		Int64("latency_ms", resp.Metadata.LatencyMS).
		Msg("recommendation complete")

	return resp
}

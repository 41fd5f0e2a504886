// Nexus - Community Group Recommendations
// Copyright 2026 Nexus contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jasperfordesq-ai/nexus-v1-sub002

package api

import (
	"context"
	"errors"

	"github.com/jasperfordesq-ai/nexus-v1-sub002/internal/recommend"
	"github.com/jasperfordesq-ai/nexus-v1-sub002/internal/recommend/interactions"
	"github.com/jasperfordesq-ai/nexus-v1-sub002/internal/validation"
)

// Recommender produces recommendations. Satisfied by *recommend.Engine.
type Recommender interface {
	Recommend(ctx context.Context, req recommend.Request) (*recommend.Response, error)
}

// InteractionRecorder queues interaction events. Satisfied by
// *interactions.Recorder.
type InteractionRecorder interface {
	Record(ev interactions.Event) (interactions.Event, error)
}

// ReadinessChecker reports whether backing storage is reachable.
type ReadinessChecker interface {
	Ping(ctx context.Context) error
}

// Handler serves the API endpoints.
type Handler struct {
	engine   Recommender
	recorder InteractionRecorder
	ready    ReadinessChecker
}

// NewHandler creates a handler. ready may be nil, in which case the
// readiness check always succeeds.
func NewHandler(engine Recommender, recorder InteractionRecorder, ready ReadinessChecker) (*Handler, error) {
	if engine == nil {
		return nil, errors.New("api: recommender is required")
	}
	if recorder == nil {
		return nil, errors.New("api: interaction recorder is required")
	}
	return &Handler{
		engine:   engine,
		recorder: recorder,
		ready:    ready,
	}, nil
}

// validationDetails extracts field errors for the response body.
func validationDetails(err error) interface{} {
	var verrs *validation.Errors
	if errors.As(err, &verrs) {
		return verrs.Fields()
	}
	return nil
}

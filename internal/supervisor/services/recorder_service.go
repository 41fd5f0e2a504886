// Nexus - Community Group Recommendations
// Copyright 2026 Nexus contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jasperfordesq-ai/nexus-v1-sub002

package services

import (
	"context"

	"github.com/rs/zerolog"
)

// InteractionRunner drains queued interaction events into a sink.
// Satisfied by *interactions.Recorder.
type InteractionRunner interface {
	Run(ctx context.Context) error
	Pending() int
}

// RecorderService supervises the interaction writer.
type RecorderService struct {
	runner InteractionRunner
	sink   string
	logger zerolog.Logger
}

// NewRecorderService wraps runner. sink names the destination for logs.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewRecorderService(runner InteractionRunner, sink string, logger zerolog.Logger) *RecorderService {
	return &RecorderService{
		runner: runner,
		sink:   sink,
		logger: logger.With().Str("service", "interaction-recorder").Str("sink", sink).Logger(),
	}
}

// Serve implements suture.Service.
func (s *RecorderService) Serve(ctx context.Context) error {
	s.logger.Info().Msg("interaction recorder started")
	err := s.runner.Run(ctx)
	s.logger.Info().Int("pending", s.runner.Pending()).Msg("interaction recorder stopped")
	return err
}

// String implements fmt.Stringer for suture logs.
func (s *RecorderService) String() string {
	return "interaction-recorder(" + s.sink + ")"
}

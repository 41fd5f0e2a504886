// Nexus - Community Group Recommendations
// Copyright 2026 Nexus contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jasperfordesq-ai/nexus-v1-sub002

// Package interactions captures user feedback on recommendations.
//
// Events are validated, stamped and placed on a bounded in-memory queue by
// Record, which never blocks. A single worker (Run) drains the queue into a
// Sink. Sink failures are logged and counted, never returned to callers: the
// engine does not read these events back.
package interactions

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jasperfordesq-ai/nexus-v1-sub002/internal/metrics"
)

// Sink persists or forwards interaction events.
type Sink interface {
	// Name identifies the sink in logs and metrics.
	Name() string

	// Write stores one event.
	Write(ctx context.Context, ev Event) error
}

// Config contains recorder settings.
type Config struct {
	// QueueSize is the number of events buffered before Record drops.
	// Default: 1024.
	QueueSize int

	// WriteTimeout bounds each Sink.Write call.
	// Default: 5s.
	WriteTimeout time.Duration

	// DrainTimeout bounds how long Run keeps writing queued events after
	// its context is canceled.
	// Default: 10s.
	DrainTimeout time.Duration
}

// DefaultConfig returns the production defaults.
func DefaultConfig() Config {
	return Config{
		QueueSize:    1024,
		WriteTimeout: 5 * time.Second,
		DrainTimeout: 10 * time.Second,
	}
}

// Recorder is a fire-and-forget interaction recorder.
// Record is safe for concurrent use; Run must be called by one goroutine.
type Recorder struct {
	cfg    Config
	sink   Sink
	logger zerolog.Logger
	queue  chan Event
	now    func() time.Time
}

// NewRecorder creates a recorder that writes to sink.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewRecorder(cfg Config, sink Sink, logger zerolog.Logger) (*Recorder, error) {
	if sink == nil {
		return nil, fmt.Errorf("interactions: sink is required")
	}
	defaults := DefaultConfig()
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = defaults.QueueSize
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = defaults.WriteTimeout
	}
	if cfg.DrainTimeout <= 0 {
		cfg.DrainTimeout = defaults.DrainTimeout
	}

	return &Recorder{
		cfg:    cfg,
		sink:   sink,
		logger: logger.With().Str("component", "interactions").Str("sink", sink.Name()).Logger(),
		queue:  make(chan Event, cfg.QueueSize),
		now:    time.Now,
	}, nil
}

// Record validates the event and queues it for writing.
//
// Every event gets a fresh ID, so repeated events are stored as separate
// rows. The ID then keys delivery: a sink that sees it twice stores it once.
// A missing timestamp is filled in. Invalid events return an error
// wrapping ErrInvalidEvent. When the queue is full the event is dropped,
// counted, and ErrQueueFull is returned; callers may ignore it.
//
//nolint:gocritic // hugeParam: ev passed by value for immutability
func (r *Recorder) Record(ev Event) (Event, error) {
	if err := ev.Validate(); err != nil {
		return ev, err
	}
	ev.ID = uuid.NewString()
	if ev.Timestamp.IsZero() {
		ev.Timestamp = r.now().UTC()
	}

	select {
	case r.queue <- ev:
		metrics.UpdateInteractionQueueDepth(len(r.queue))
		return ev, nil
	default:
		metrics.RecordInteractionDropped("queue_full")
		r.logger.Warn().
			Str("event_id", ev.ID).
			Int64("user_id", ev.UserID).
			Int64("group_id", ev.GroupID).
			Str("action", ev.Action.String()).
			Msg("interaction queue full, dropping event")
		return ev, ErrQueueFull
	}
}

// Pending returns the number of queued events.
func (r *Recorder) Pending() int {
	return len(r.queue)
}

// Run writes queued events until ctx is canceled, then drains what is left
// within DrainTimeout. It returns ctx.Err().
func (r *Recorder) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			r.drain()
			return ctx.Err()
		case ev := <-r.queue:
			r.write(ctx, ev)
		}
	}
}

// drain writes remaining events with a fresh deadline.
func (r *Recorder) drain() {
	drainCtx, cancel := context.WithTimeout(context.Background(), r.cfg.DrainTimeout)
	defer cancel()

	written := 0
	for {
		select {
		case ev := <-r.queue:
			if drainCtx.Err() != nil {
				metrics.RecordInteractionDropped("shutdown")
				continue
			}
			r.write(drainCtx, ev)
			written++
		default:
			if written > 0 {
				r.logger.Info().Int("events", written).Msg("drained interaction queue")
			}
			return
		}
	}
}

//nolint:gocritic // hugeParam: ev passed by value for immutability
func (r *Recorder) write(ctx context.Context, ev Event) {
	writeCtx, cancel := context.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	metrics.UpdateInteractionQueueDepth(len(r.queue))

	if err := r.sink.Write(writeCtx, ev); err != nil {
		metrics.RecordInteractionDropped("sink_error")
		r.logger.Warn().
			Err(err).
			Str("event_id", ev.ID).
			Int64("user_id", ev.UserID).
			Int64("group_id", ev.GroupID).
			Str("action", ev.Action.String()).
			Msg("failed to write interaction")
		return
	}
	metrics.RecordInteraction(r.sink.Name(), ev.Action.String())
}

// LogSink writes events as structured log lines only.
type LogSink struct {
	logger zerolog.Logger
}

// NewLogSink creates a sink for local development.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewLogSink(logger zerolog.Logger) *LogSink {
	return &LogSink{logger: logger}
}

// Name implements Sink.
func (s *LogSink) Name() string {
	return "log"
}

// Write implements Sink.
//
//nolint:gocritic // hugeParam: ev passed by value for immutability
func (s *LogSink) Write(_ context.Context, ev Event) error {
	s.logger.Info().
		Str("event_id", ev.ID).
		Int64("tenant_id", ev.TenantID).
		Int64("user_id", ev.UserID).
		Int64("group_id", ev.GroupID).
		Str("action", ev.Action.String()).
		Time("timestamp", ev.Timestamp).
		Msg("interaction")
	return nil
}

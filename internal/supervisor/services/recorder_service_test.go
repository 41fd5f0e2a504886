// Nexus - Community Group Recommendations
// Copyright 2026 Nexus contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jasperfordesq-ai/nexus-v1-sub002

package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/thejerf/suture/v4"

	"github.com/jasperfordesq-ai/nexus-v1-sub002/internal/recommend/interactions"
)

type mockRunner struct {
	runs    atomic.Int32
	started chan struct{}
}

func (m *mockRunner) Run(ctx context.Context) error {
	m.runs.Add(1)
	select {
	case m.started <- struct{}{}:
	default:
	}
	<-ctx.Done()
	return ctx.Err()
}

func (m *mockRunner) Pending() int { return 0 }

// nopSink accepts every event.
type nopSink struct{ writes atomic.Int32 }

func (s *nopSink) Name() string { return "nop" }

//nolint:gocritic // hugeParam: matches interactions.Sink
func (s *nopSink) Write(context.Context, interactions.Event) error {
	s.writes.Add(1)
	return nil
}

func TestRecorderService_Interface(t *testing.T) {
	var _ suture.Service = (*RecorderService)(nil)
	var _ InteractionRunner = (*interactions.Recorder)(nil)
}

func TestRecorderService_String(t *testing.T) {
	svc := NewRecorderService(&mockRunner{}, "nats", zerolog.Nop())
	if got := svc.String(); got != "interaction-recorder(nats)" {
		t.Errorf("String() = %q", got)
	}
}

func TestRecorderService_StopsOnCancel(t *testing.T) {
	runner := &mockRunner{started: make(chan struct{}, 1)}
	svc := NewRecorderService(runner, "log", zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- svc.Serve(ctx) }()

	select {
	case <-runner.started:
	case <-time.After(time.Second):
		t.Fatal("runner did not start")
	}
	cancel()

	select {
	case err := <-errCh:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Serve() error = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Serve() did not return")
	}
}

func TestRecorderService_WithSupervisorDrainsRecorder(t *testing.T) {
	sink := &nopSink{}
	rec, err := interactions.NewRecorder(interactions.DefaultConfig(), sink, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewRecorder() error = %v", err)
	}
	for i := 0; i < 3; i++ {
		if _, err := rec.Record(interactions.Event{TenantID: 1, UserID: 2, GroupID: 3, Action: interactions.ActionView}); err != nil {
			t.Fatalf("Record() error = %v", err)
		}
	}

	sup := suture.New("test-sup", suture.Spec{
		FailureBackoff: 10 * time.Millisecond,
		Timeout:        2 * time.Second,
	})
	sup.Add(NewRecorderService(rec, sink.Name(), zerolog.Nop()))

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	<-sup.ServeBackground(ctx)

	if got := sink.writes.Load(); got != 3 {
		t.Errorf("sink writes = %d, want 3", got)
	}
}

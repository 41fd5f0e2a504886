// Nexus - Community Group Recommendations
// Copyright 2026 Nexus contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jasperfordesq-ai/nexus-v1-sub002

package logging

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestSlogLogger_Fields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewSlogLoggerFrom(zerolog.New(&buf))

	logger.Warn("service restarted",
		slog.String("service", "interaction-recorder(nats)"),
		slog.Int("attempt", 3),
		slog.Bool("backoff", true),
		slog.Duration("delay", time.Second),
		slog.Any("err", errors.New("sink down")),
		slog.Any("cause", errors.New("timeout")),
		slog.Attr{},
	)

	out := buf.String()
	for _, want := range []string{
		`"level":"warn"`,
		`"message":"service restarted"`,
		`"service":"interaction-recorder(nats)"`,
		`"attempt":3`,
		`"backoff":true`,
		`"error":"sink down"`,
		`"cause":"timeout"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %s: %s", want, out)
		}
	}
	if strings.Contains(out, `"":`) {
		t.Errorf("empty attr written: %s", out)
	}
}

func TestSlogLogger_ContextIDs(t *testing.T) {
	var buf bytes.Buffer
	logger := NewSlogLoggerFrom(zerolog.New(&buf))

	ctx := ContextWithTenantID(ContextWithRequestID(context.Background(), "req-9"), 42)
	logger.InfoContext(ctx, "served")

	out := buf.String()
	if !strings.Contains(out, `"request_id":"req-9"`) || !strings.Contains(out, `"tenant_id":42`) {
		t.Errorf("context ids missing: %s", out)
	}
}

func TestSlogLogger_Enabled(t *testing.T) {
	h := NewSlogLoggerFrom(zerolog.New(&bytes.Buffer{}).Level(zerolog.WarnLevel)).Handler()

	tests := []struct {
		level slog.Level
		want  bool
	}{
		{slog.LevelDebug, false},
		{slog.LevelInfo, false},
		{slog.LevelWarn, true},
		{slog.LevelError, true},
	}
	for _, tt := range tests {
		if got := h.Enabled(context.Background(), tt.level); got != tt.want {
			t.Errorf("Enabled(%v) = %v, want %v", tt.level, got, tt.want)
		}
	}
}

func TestSlogLogger_Groups(t *testing.T) {
	var buf bytes.Buffer
	h := NewSlogLoggerFrom(zerolog.New(&buf)).Handler()
	h = h.WithAttrs([]slog.Attr{slog.String("tree", "nexus")})
	h = h.WithGroup("supervisor")
	if h.WithGroup("") != h {
		t.Error("WithGroup(\"\") should return the same handler")
	}
	h = h.WithAttrs([]slog.Attr{slog.String("layer", "workers")})

	slog.New(h).Info("event", slog.Group("svc", slog.String("name", "api-server")))

	out := buf.String()
	for _, want := range []string{
		`"tree":"nexus"`,
		`"supervisor.layer":"workers"`,
		`"supervisor.svc.name":"api-server"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %s: %s", want, out)
		}
	}
}

func TestZerologLevel(t *testing.T) {
	tests := []struct {
		in   slog.Level
		want zerolog.Level
	}{
		{slog.LevelDebug - 4, zerolog.TraceLevel},
		{slog.LevelDebug, zerolog.DebugLevel},
		{slog.LevelInfo + 1, zerolog.InfoLevel},
		{slog.LevelWarn, zerolog.WarnLevel},
		{slog.LevelError, zerolog.ErrorLevel},
		{slog.LevelError + 4, zerolog.ErrorLevel},
	}
	for _, tt := range tests {
		if got := zerologLevel(tt.in); got != tt.want {
			t.Errorf("zerologLevel(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

// Nexus - Community Group Recommendations
// Copyright 2026 Nexus contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jasperfordesq-ai/nexus-v1-sub002

package logging

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  zerolog.Level
		valid bool
	}{
		{"trace", zerolog.TraceLevel, true},
		{"debug", zerolog.DebugLevel, true},
		{"INFO", zerolog.InfoLevel, true},
		{" warn ", zerolog.WarnLevel, true},
		{"warning", zerolog.WarnLevel, true},
		{"error", zerolog.ErrorLevel, true},
		{"fatal", zerolog.FatalLevel, true},
		{"panic", zerolog.PanicLevel, true},
		{"disabled", zerolog.Disabled, true},
		{"verbose", zerolog.InfoLevel, false},
		{"infos", zerolog.InfoLevel, false},
		{"", zerolog.InfoLevel, false},
	}

	for _, tt := range tests {
		if got := parseLevel(tt.input); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
		if got := ValidLevel(tt.input); got != tt.valid {
			t.Errorf("ValidLevel(%q) = %v, want %v", tt.input, got, tt.valid)
		}
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		want    []string
		notWant []string
	}{
		{
			name: "json with environment",
			cfg:  Config{Level: "info", Format: "json", Environment: "staging"},
			want: []string{`"service":"nexus"`, `"env":"staging"`, `"message":"shown"`},
		},
		{
			name:    "level filters lower events",
			cfg:     Config{Level: "error", Format: "json"},
			notWant: []string{"shown"},
		},
		{
			name:    "no env field when unset",
			cfg:     Config{Level: "debug", Format: "json"},
			want:    []string{`"service":"nexus"`},
			notWant: []string{`"env"`},
		},
		{
			name:    "console format",
			cfg:     Config{Level: "info", Format: "console"},
			want:    []string{"shown"},
			notWant: []string{`{"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.cfg.Output = &buf
			l := New(tt.cfg)
			l.Info().Msg("shown")

			out := buf.String()
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("output missing %s: %s", w, out)
				}
			}
			for _, w := range tt.notWant {
				if strings.Contains(out, w) {
					t.Errorf("output should not contain %s: %s", w, out)
				}
			}
		})
	}
}

func TestInit_ReplacesProcessLogger(t *testing.T) {
	original := Logger()
	defer func() {
		globalMu.Lock()
		global = original
		globalMu.Unlock()
	}()

	var buf bytes.Buffer
	Init(Config{Level: "warn", Format: "json", Output: &buf})

	l := Logger()
	l.Info().Msg("hidden")
	l.Warn().Str("component", "recorder").Msg("queue full")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info line written at warn level: %s", out)
	}
	if !strings.Contains(out, `"component":"recorder"`) {
		t.Errorf("warn line missing: %s", out)
	}
}

func TestCtx(t *testing.T) {
	var buf bytes.Buffer
	ctx := ContextWithLogger(context.Background(), zerolog.New(&buf))
	ctx = ContextWithRequestID(ctx, "req-1")
	ctx = ContextWithTenantID(ctx, 7)

	Ctx(ctx).Info().Msg("scoped")

	out := buf.String()
	if !strings.Contains(out, `"request_id":"req-1"`) {
		t.Errorf("request_id missing: %s", out)
	}
	if !strings.Contains(out, `"tenant_id":7`) {
		t.Errorf("tenant_id missing: %s", out)
	}
}

func TestContextAccessors(t *testing.T) {
	ctx := context.Background()
	if RequestIDFromContext(ctx) != "" {
		t.Error("RequestIDFromContext() on empty context should be empty")
	}
	if _, ok := TenantIDFromContext(ctx); ok {
		t.Error("TenantIDFromContext() on empty context should report false")
	}

	id := GenerateRequestID()
	if len(id) != 36 {
		t.Errorf("GenerateRequestID() = %q, want a UUID", id)
	}
	if got := RequestIDFromContext(ContextWithRequestID(ctx, id)); got != id {
		t.Errorf("RequestIDFromContext() = %q, want %q", got, id)
	}
}

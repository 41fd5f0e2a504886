// Nexus - Community Group Recommendations
// Copyright 2026 Nexus contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jasperfordesq-ai/nexus-v1-sub002

package eventprocessor

import (
	"context"
	"errors"
	"testing"

	"github.com/nats-io/nats.go/jetstream"
)

// mockJetStream records which stream calls were made.
type mockJetStream struct {
	streamErr error
	created   []jetstream.StreamConfig
	updated   []jetstream.StreamConfig
}

func (m *mockJetStream) Stream(_ context.Context, _ string) (jetstream.Stream, error) {
	return nil, m.streamErr
}

func (m *mockJetStream) CreateStream(_ context.Context, cfg jetstream.StreamConfig) (jetstream.Stream, error) {
	m.created = append(m.created, cfg)
	return nil, nil
}

func (m *mockJetStream) UpdateStream(_ context.Context, cfg jetstream.StreamConfig) (jetstream.Stream, error) {
	m.updated = append(m.updated, cfg)
	return nil, nil
}

func TestNewStreamInitializer(t *testing.T) {
	cfg := DefaultStreamConfig()
	if _, err := NewStreamInitializer(nil, &cfg); err == nil {
		t.Error("expected error for nil JetStream context")
	}
	if _, err := NewStreamInitializer(&mockJetStream{}, nil); err == nil {
		t.Error("expected error for nil config")
	}

	bad := DefaultStreamConfig()
	bad.Subjects = nil
	if _, err := NewStreamInitializer(&mockJetStream{}, &bad); err == nil {
		t.Error("expected error for stream without subjects")
	}
}

func TestEnsureStream(t *testing.T) {
	tests := []struct {
		name        string
		streamErr   error
		wantCreated int
		wantUpdated int
		wantErr     bool
	}{
		{"creates missing stream", jetstream.ErrStreamNotFound, 1, 0, false},
		{"updates existing stream", nil, 0, 1, false},
		{"lookup failure", errors.New("nats: timeout"), 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			js := &mockJetStream{streamErr: tt.streamErr}
			cfg := DefaultStreamConfig()
			si, err := NewStreamInitializer(js, &cfg)
			if err != nil {
				t.Fatalf("NewStreamInitializer() error = %v", err)
			}

			_, err = si.EnsureStream(context.Background())
			if (err != nil) != tt.wantErr {
				t.Fatalf("EnsureStream() error = %v, wantErr %v", err, tt.wantErr)
			}
			if len(js.created) != tt.wantCreated || len(js.updated) != tt.wantUpdated {
				t.Errorf("created=%d updated=%d, want %d/%d",
					len(js.created), len(js.updated), tt.wantCreated, tt.wantUpdated)
			}
		})
	}
}

func TestStreamSettings(t *testing.T) {
	cfg := DefaultStreamConfig()
	si, err := NewStreamInitializer(&mockJetStream{}, &cfg)
	if err != nil {
		t.Fatalf("NewStreamInitializer() error = %v", err)
	}

	got := si.StreamSettings()
	if got.Name != "INTERACTIONS" {
		t.Errorf("Name = %q, want INTERACTIONS", got.Name)
	}
	if len(got.Subjects) != 1 || got.Subjects[0] != "interactions.>" {
		t.Errorf("Subjects = %v, want [interactions.>]", got.Subjects)
	}
	if got.Duplicates != cfg.DuplicateWindow {
		t.Errorf("Duplicates = %v, want %v", got.Duplicates, cfg.DuplicateWindow)
	}
	if got.Storage != jetstream.FileStorage {
		t.Errorf("Storage = %v, want file", got.Storage)
	}
}

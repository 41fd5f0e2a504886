// Nexus - Community Group Recommendations
// Copyright 2026 Nexus contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jasperfordesq-ai/nexus-v1-sub002

package eventprocessor

import (
	"errors"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/jasperfordesq-ai/nexus-v1-sub002/internal/recommend/interactions"
)

// PayloadVersion is the envelope version written by Marshal.
const PayloadVersion = 1

// ErrUnsupportedVersion is returned by Unmarshal for unknown envelopes.
var ErrUnsupportedVersion = errors.New("unsupported payload version")

// envelope wraps an interaction on the wire so consumers can reject
// payloads they do not understand.
type envelope struct {
	Version int                 `json:"v"`
	Event   *interactions.Event `json:"event"`
}

// Serializer encodes interaction events for NATS messages.
// Both directions validate the event.
type Serializer struct{}

// NewSerializer creates a new serializer.
func NewSerializer() *Serializer {
	return &Serializer{}
}

// Marshal validates ev and encodes it in a versioned envelope.
func (s *Serializer) Marshal(ev *interactions.Event) ([]byte, error) {
	if ev == nil {
		return nil, fmt.Errorf("marshal event: %w", interactions.ErrInvalidEvent)
	}
	if err := ev.Validate(); err != nil {
		return nil, fmt.Errorf("validate event: %w", err)
	}

	data, err := json.Marshal(envelope{Version: PayloadVersion, Event: ev})
	if err != nil {
		return nil, fmt.Errorf("marshal event: %w", err)
	}
	return data, nil
}

// Unmarshal decodes an envelope written by Marshal.
func (s *Serializer) Unmarshal(data []byte) (*interactions.Event, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("unmarshal event: %w", err)
	}
	if env.Version != PayloadVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, env.Version)
	}
	if env.Event == nil {
		return nil, fmt.Errorf("unmarshal event: %w: empty envelope", interactions.ErrInvalidEvent)
	}
	if err := env.Event.Validate(); err != nil {
		return nil, fmt.Errorf("validate event: %w", err)
	}
	return env.Event, nil
}

// Nexus - Community Group Recommendations
// Copyright 2026 Nexus contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jasperfordesq-ai/nexus-v1-sub002

package eventprocessor

import (
	"context"
	"fmt"
	"strconv"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/jasperfordesq-ai/nexus-v1-sub002/internal/recommend/interactions"
)

// Metadata keys set on every interaction message.
const (
	MetadataTenantID = "tenant_id"
	MetadataAction   = "action"
)

// MessagePublisher is the publish side of Publisher.
type MessagePublisher interface {
	Publish(ctx context.Context, topic string, msg *message.Message) error
}

// InteractionSink publishes interaction events. It implements
// interactions.Sink.
type InteractionSink struct {
	publisher  MessagePublisher
	serializer *Serializer
}

// NewInteractionSink creates a sink that publishes through pub.
func NewInteractionSink(pub MessagePublisher) *InteractionSink {
	return &InteractionSink{
		publisher:  pub,
		serializer: NewSerializer(),
	}
}

// Name implements interactions.Sink.
func (s *InteractionSink) Name() string {
	return "nats"
}

// Write implements interactions.Sink.
//
//nolint:gocritic // hugeParam: ev passed by value for immutability
func (s *InteractionSink) Write(ctx context.Context, ev interactions.Event) error {
	msg, err := s.NewMessage(&ev)
	if err != nil {
		return err
	}
	if err := s.publisher.Publish(ctx, ev.Topic(), msg); err != nil {
		return fmt.Errorf("publish interaction %s: %w", ev.ID, err)
	}
	return nil
}

// NewMessage encodes ev as a Watermill message keyed by the event ID.
func (s *InteractionSink) NewMessage(ev *interactions.Event) (*message.Message, error) {
	if ev.ID == "" {
		return nil, fmt.Errorf("%w: id is required", interactions.ErrInvalidEvent)
	}
	data, err := s.serializer.Marshal(ev)
	if err != nil {
		return nil, fmt.Errorf("serialize event: %w", err)
	}

	msg := message.NewMessage(ev.ID, data)
	msg.Metadata.Set(MetadataTenantID, strconv.FormatInt(ev.TenantID, 10))
	msg.Metadata.Set(MetadataAction, ev.Action.String())
	return msg, nil
}

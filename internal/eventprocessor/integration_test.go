// Nexus - Community Group Recommendations
// Copyright 2026 Nexus contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jasperfordesq-ai/nexus-v1-sub002

//go:build integration

package eventprocessor

import (
	"context"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	natsgo "github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/jasperfordesq-ai/nexus-v1-sub002/internal/testinfra"
)

func TestInteractionSink_JetStream(t *testing.T) {
	testinfra.SkipIfNoDocker(t)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	svc, err := testinfra.NewNATSContainer(ctx)
	if err != nil {
		t.Fatalf("start nats: %v", err)
	}
	defer testinfra.CleanupContainer(t, ctx, svc.Container)

	url := "nats://" + svc.Endpoint
	streamCfg := DefaultStreamConfig()
	if err := EnsureInteractionStream(ctx, url, streamCfg); err != nil {
		t.Fatalf("EnsureInteractionStream() error = %v", err)
	}
	// Second call updates in place.
	if err := EnsureInteractionStream(ctx, url, streamCfg); err != nil {
		t.Fatalf("EnsureInteractionStream() second call error = %v", err)
	}

	pub, err := NewPublisher(DefaultPublisherConfig(url), watermill.NopLogger{})
	if err != nil {
		t.Fatalf("NewPublisher() error = %v", err)
	}
	defer pub.Close()

	sink := NewInteractionSink(pub)
	ev := testEvent()
	for i := 0; i < 2; i++ {
		if err := sink.Write(ctx, ev); err != nil {
			t.Fatalf("Write() %d error = %v", i, err)
		}
	}

	nc, err := natsgo.Connect(url)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer nc.Close()
	js, err := jetstream.New(nc)
	if err != nil {
		t.Fatalf("jetstream: %v", err)
	}
	stream, err := js.Stream(ctx, streamCfg.Name)
	if err != nil {
		t.Fatalf("Stream() error = %v", err)
	}
	info, err := stream.Info(ctx)
	if err != nil {
		t.Fatalf("Info() error = %v", err)
	}
	// Same event ID inside the duplicate window is stored once.
	if info.State.Msgs != 1 {
		t.Errorf("stream holds %d messages, want 1", info.State.Msgs)
	}
}

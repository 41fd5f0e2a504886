// Nexus - Community Group Recommendations
// Copyright 2026 Nexus contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jasperfordesq-ai/nexus-v1-sub002

/*
Package eventprocessor publishes interaction events to NATS JetStream through
Watermill.

InteractionSink implements interactions.Sink. Each event is encoded as JSON
and published on "interactions.<action>", with the event ID used as both the
Watermill message UUID and the Nats-Msg-Id header so JetStream drops
redeliveries inside the duplicate window.

Publishing runs behind a consecutive-failure circuit breaker. While the
breaker is open, writes fail fast with gobreaker.ErrOpenState and the recorder
counts the event as dropped.

The stream is created or updated by StreamInitializer before the publisher
starts; the Watermill publisher never auto-provisions it.

Usage:

	pub, err := eventprocessor.NewPublisher(pubCfg, eventprocessor.NewWatermillLogger(logger))
	if err != nil {
		return err
	}
	pub.SetCircuitBreaker(eventprocessor.NewCircuitBreaker(breakerCfg))
	sink := eventprocessor.NewInteractionSink(pub)
*/
package eventprocessor

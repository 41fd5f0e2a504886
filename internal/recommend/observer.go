// Nexus - Community Group Recommendations
// Copyright 2026 Nexus contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jasperfordesq-ai/nexus-v1-sub002

package recommend

import "time"

// Observer receives engine events for metrics collection.
// Implementations must be safe for concurrent use.
type Observer interface {
	// RequestCompleted is called once per successful Recommend call.
	RequestCompleted(strategy Strategy, results int, latency time.Duration)

	// SignalCompleted is called after each generator run. err is nil on success.
	SignalCompleted(signal string, entries int, latency time.Duration, err error)

	// FallbackUsed is called when the popularity fallback serves a request.
	FallbackUsed(reason string)

	// DataSourceFailed is called when a read the engine depends on fails.
	DataSourceFailed(reader string)
}

// Fallback reasons reported to the Observer.
const (
	FallbackNoMemberships = "no_memberships"
	FallbackNoSignal      = "no_signal"
)

type noopObserver struct{}

func (noopObserver) RequestCompleted(Strategy, int, time.Duration)     {}
func (noopObserver) SignalCompleted(string, int, time.Duration, error) {}
func (noopObserver) FallbackUsed(string)                               {}
func (noopObserver) DataSourceFailed(string)                           {}

// Nexus - Community Group Recommendations
// Copyright 2026 Nexus contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jasperfordesq-ai/nexus-v1-sub002

package metrics

import (
	"time"

	"github.com/jasperfordesq-ai/nexus-v1-sub002/internal/recommend"
)

// RecommendObserver reports engine events to Prometheus.
// It implements recommend.Observer.
type RecommendObserver struct{}

var _ recommend.Observer = RecommendObserver{}

// RequestCompleted records a finished recommendation request.
func (RecommendObserver) RequestCompleted(strategy recommend.Strategy, results int, latency time.Duration) {
	RecommendRequests.WithLabelValues(string(strategy)).Inc()
	RecommendDuration.Observe(latency.Seconds())
	RecommendResults.Observe(float64(results))
}

// SignalCompleted records a signal generator run.
func (RecommendObserver) SignalCompleted(signal string, entries int, latency time.Duration, err error) {
	SignalDuration.WithLabelValues(signal).Observe(latency.Seconds())
	if err != nil {
		SignalFailures.WithLabelValues(signal).Inc()
		return
	}
	SignalEntries.WithLabelValues(signal).Observe(float64(entries))
}

// FallbackUsed records a popularity fallback.
func (RecommendObserver) FallbackUsed(reason string) {
	RecommendFallbacks.WithLabelValues(reason).Inc()
}

// DataSourceFailed records a failed engine read.
func (RecommendObserver) DataSourceFailed(reader string) {
	DataSourceFailures.WithLabelValues(reader).Inc()
}

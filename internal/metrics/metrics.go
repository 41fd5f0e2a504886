// Nexus - Community Group Recommendations
// Copyright 2026 Nexus contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jasperfordesq-ai/nexus-v1-sub002

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus Metrics Integration for Production Observability
// This package provides instrumentation for:
// - Recommendation requests, signals and fallbacks
// - Interaction recording and sinks
// - Database query performance
// - API endpoint latency and throughput
// - Circuit breaker state

var (
	// Recommendation Metrics
	RecommendRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_requests_total",
			Help: "Total number of recommendation requests by strategy",
		},
		[]string{"strategy"}, // "personalized", "popular", "none"
	)

	RecommendDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommend_duration_seconds",
			Help:    "Duration of recommendation requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	RecommendResults = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommend_results",
			Help:    "Number of groups returned per recommendation request",
			Buckets: []float64{0, 1, 5, 10, 25, 50, 100},
		},
	)

	RecommendFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_fallback_total",
			Help: "Total number of requests served by the popularity fallback",
		},
		[]string{"reason"}, // "no_memberships", "no_signal"
	)

	SignalDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recommend_signal_duration_seconds",
			Help:    "Duration of signal generator runs in seconds",
			Buckets: []float64{.001, .005, .01, .05, .1, .25, .5, 1, 2, 5},
		},
		[]string{"signal"},
	)

	SignalEntries = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recommend_signal_entries",
			Help:    "Number of candidate groups scored by a signal generator",
			Buckets: []float64{0, 1, 5, 10, 50, 100, 500, 1000},
		},
		[]string{"signal"},
	)

	SignalFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_signal_failures_total",
			Help: "Total number of signal generator failures (errors, timeouts, panics)",
		},
		[]string{"signal"},
	)

	DataSourceFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_datasource_failures_total",
			Help: "Total number of failed engine reads by reader",
		},
		[]string{"reader"}, // "groups", "memberships", "profile"
	)

	// Interaction Metrics
	InteractionsRecorded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "interactions_recorded_total",
			Help: "Total number of interaction events written to a sink",
		},
		[]string{"sink", "action"},
	)

	InteractionsDropped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "interactions_dropped_total",
			Help: "Total number of interaction events dropped before reaching a sink",
		},
		[]string{"reason"}, // "queue_full", "sink_error", "shutdown"
	)

	InteractionQueueDepth = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "interactions_queue_depth",
			Help: "Current number of interaction events waiting to be written",
		},
	)

	// Database Metrics
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Duration of database queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "table"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "db_query_errors_total",
			Help: "Total number of database query errors",
		},
		[]string{"operation", "table", "error_type"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from", "to"},
	)

	// NATS Metrics
	NATSMessagesPublished = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "nats_messages_published_total",
			Help: "Total number of messages published to NATS",
		},
	)

	// API Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: []float64{.001, .005, .01, .05, .1, .5, 1, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Number of API requests currently being processed",
		},
	)

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)
)

// RecordDBQuery records a database query metric
func RecordDBQuery(operation, table string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
	if err != nil {
		errorType := err.Error()
		// Truncate long error messages
		if len(errorType) > 50 {
			errorType = errorType[:50]
		}
		DBQueryErrors.WithLabelValues(operation, table, errorType).Inc()
	}
}

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordInteraction records an interaction written to a sink.
func RecordInteraction(sink, action string) {
	InteractionsRecorded.WithLabelValues(sink, action).Inc()
}

// RecordInteractionDropped records an interaction that never reached a sink.
func RecordInteractionDropped(reason string) {
	InteractionsDropped.WithLabelValues(reason).Inc()
}

// UpdateInteractionQueueDepth sets the current recorder queue depth.
func UpdateInteractionQueueDepth(depth int) {
	InteractionQueueDepth.Set(float64(depth))
}

// RecordNATSPublish records a successful NATS publish.
func RecordNATSPublish() {
	NATSMessagesPublished.Inc()
}

// RecordCircuitBreakerTransition records a state change and updates the state gauge.
// States follow gobreaker naming: "closed", "half-open", "open".
func RecordCircuitBreakerTransition(name, from, to string) {
	CircuitBreakerTransitions.WithLabelValues(name, from, to).Inc()
	CircuitBreakerState.WithLabelValues(name).Set(breakerStateValue(to))
}

func breakerStateValue(state string) float64 {
	switch state {
	case "half-open":
		return 1
	case "open":
		return 2
	default:
		return 0
	}
}

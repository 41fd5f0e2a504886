// Nexus - Community Group Recommendations
// Copyright 2026 Nexus contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jasperfordesq-ai/nexus-v1-sub002

/*
Package metrics provides Prometheus metrics collection and export for observability.

All instruments are registered with the default registry through promauto and
exposed at /metrics in Prometheus text format:

	curl http://localhost:8080/metrics

# Available Metrics

Recommendation Metrics:
  - recommend_requests_total: Requests by strategy (counter)
  - recommend_duration_seconds: Request latency (histogram)
  - recommend_results: Groups returned per request (histogram)
  - recommend_fallback_total: Popularity fallbacks by reason (counter)
  - recommend_signal_duration_seconds: Generator latency by signal (histogram)
  - recommend_signal_entries: Groups scored by signal (histogram)
  - recommend_signal_failures_total: Generator errors and timeouts (counter)
  - recommend_datasource_failures_total: Failed engine reads (counter)

Interaction Metrics:
  - interactions_recorded_total: Events written, by sink and action (counter)
  - interactions_dropped_total: Events lost, by reason (counter)
  - interactions_queue_depth: Pending events (gauge)

Database Metrics:
  - db_query_duration_seconds: Query execution time (histogram)
  - db_query_errors_total: Query errors (counter)

HTTP Metrics:
  - api_requests_total, api_request_duration_seconds, api_active_requests

Circuit Breaker Metrics:
  - circuit_breaker_state: 0=closed, 1=half-open, 2=open (gauge)
  - circuit_breaker_transitions_total (counter)

# Engine Integration

RecommendObserver implements recommend.Observer and is installed on the
engine at startup:

	engine.SetObserver(metrics.RecommendObserver{})
*/
package metrics

// Nexus - Community Group Recommendations
// Copyright 2026 Nexus contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jasperfordesq-ai/nexus-v1-sub002

package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/jasperfordesq-ai/nexus-v1-sub002/internal/metrics"
)

// Read breaker trip rule: at least minBreakerRequests in the current
// interval and a failure ratio of breakerFailureRatio or more.
const (
	minBreakerRequests  = 10
	breakerFailureRatio = 0.6
)

//nolint:gocritic // logger passed by value is acceptable for zerolog
func newReadBreaker(name string, timeout time.Duration, logger zerolog.Logger) *gobreaker.CircuitBreaker[interface{}] {
	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)

	return gobreaker.NewCircuitBreaker[interface{}](gobreaker.Settings{
		Name:        name,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < minBreakerRequests {
				return false
			}
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			return ratio >= breakerFailureRatio
		},
		// A caller giving up is not a database fault.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("circuit breaker state change")
			metrics.RecordCircuitBreakerTransition(name, from.String(), to.String())
		},
	})
}

// read runs fn under the read breaker with the store's query timeout and
// records query metrics.
func read[T any](s *Store, op, table string, fn func() (T, error)) (T, error) {
	var zero T
	start := time.Now()

	result, err := s.breaker.Execute(func() (interface{}, error) {
		return fn()
	})
	metrics.RecordDBQuery(op, table, time.Since(start), err)
	if err != nil {
		return zero, fmt.Errorf("%s %s: %w", op, table, err)
	}

	typed, ok := result.(T)
	if !ok {
		return zero, fmt.Errorf("%s %s: unexpected result type %T", op, table, result)
	}
	return typed, nil
}

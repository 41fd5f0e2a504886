// Nexus - Community Group Recommendations
// Copyright 2026 Nexus contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jasperfordesq-ai/nexus-v1-sub002

package api

import (
	"context"
	"net/http"
	"time"
)

// readyTimeout bounds the readiness ping.
const readyTimeout = 2 * time.Second

// HealthStatus is the health endpoint body.
type HealthStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// HealthLive reports that the process is serving.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(HealthStatus{Status: "ok"})
}

// HealthReady reports whether storage answers a ping.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if h.ready == nil {
		rw.Success(HealthStatus{Status: "ok"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
	defer cancel()
	if err := h.ready.Ping(ctx); err != nil {
		rw.ErrorWithDetails(http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "storage unavailable",
			HealthStatus{Status: "unavailable", Error: err.Error()})
		return
	}
	rw.Success(HealthStatus{Status: "ok"})
}

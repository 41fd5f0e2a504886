// Nexus - Community Group Recommendations
// Copyright 2026 Nexus contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jasperfordesq-ai/nexus-v1-sub002

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/jasperfordesq-ai/nexus-v1-sub002/internal/logging"
	"github.com/jasperfordesq-ai/nexus-v1-sub002/internal/recommend/interactions"
	"github.com/jasperfordesq-ai/nexus-v1-sub002/internal/validation"
)

// maxInteractionBody caps POST /interactions bodies.
const maxInteractionBody = 16 << 10

// interactionRequest is the POST /interactions body. The event id is
// always assigned server-side.
type interactionRequest struct {
	UserID    int64      `json:"user_id" validate:"gt=0"`
	GroupID   int64      `json:"group_id" validate:"gt=0"`
	Action    string     `json:"action" validate:"required,oneof=view click join dismiss"`
	Timestamp *time.Time `json:"timestamp"`
}

// interactionAccepted is the 202 body.
type interactionAccepted struct {
	ID     string `json:"id"`
	Queued bool   `json:"queued"`
}

// RecordInteraction handles POST /api/v1/tenants/{tenantID}/interactions.
// A full queue still answers 202 with queued=false.
func (h *Handler) RecordInteraction(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var body interactionRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxInteractionBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&body); err != nil {
		rw.BadRequest("invalid JSON body")
		return
	}
	if err := validation.ValidateStruct(&body); err != nil {
		rw.ValidationError(err.Error(), validationDetails(err))
		return
	}

	tenantID, _ := logging.TenantIDFromContext(r.Context())
	ev := interactions.Event{
		TenantID: tenantID,
		UserID:   body.UserID,
		GroupID:  body.GroupID,
		Action:   interactions.Action(body.Action),
	}
	if body.Timestamp != nil {
		ev.Timestamp = body.Timestamp.UTC()
	}

	recorded, err := h.recorder.Record(ev)
	switch {
	case err == nil:
		rw.Accepted(interactionAccepted{ID: recorded.ID, Queued: true})
	case errors.Is(err, interactions.ErrQueueFull):
		rw.Accepted(interactionAccepted{ID: recorded.ID, Queued: false})
	case errors.Is(err, interactions.ErrInvalidEvent):
		rw.BadRequest(err.Error())
	default:
		rw.InternalError(err)
	}
}

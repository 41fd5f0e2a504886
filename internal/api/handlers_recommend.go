// Nexus - Community Group Recommendations
// Copyright 2026 Nexus contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jasperfordesq-ai/nexus-v1-sub002

package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/jasperfordesq-ai/nexus-v1-sub002/internal/logging"
	"github.com/jasperfordesq-ai/nexus-v1-sub002/internal/recommend"
	"github.com/jasperfordesq-ai/nexus-v1-sub002/internal/validation"
)

// recommendationParams are the validated request inputs.
type recommendationParams struct {
	TenantID int64  `json:"tenant_id" validate:"gt=0"`
	UserID   int64  `json:"user_id" validate:"gt=0"`
	Limit    int    `json:"limit" validate:"gte=0"`
	Category string `json:"category" validate:"max=100"`
	Exclude  string `json:"exclude" validate:"idlist"`
}

// GetRecommendations handles
// GET /api/v1/tenants/{tenantID}/users/{userID}/recommendations.
func (h *Handler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	params, ok := parseRecommendationParams(rw, r)
	if !ok {
		return
	}
	if err := validation.ValidateStruct(&params); err != nil {
		rw.ValidationError(err.Error(), validationDetails(err))
		return
	}

	exclude, err := validation.ParseIDList(params.Exclude)
	if err != nil {
		rw.BadRequest(err.Error())
		return
	}

	resp, err := h.engine.Recommend(r.Context(), recommend.Request{
		TenantID:   params.TenantID,
		UserID:     params.UserID,
		Limit:      params.Limit,
		Category:   params.Category,
		ExcludeIDs: exclude,
		RequestID:  logging.RequestIDFromContext(r.Context()),
	})
	if err != nil {
		if errors.Is(err, recommend.ErrInvalidLimit) {
			rw.BadRequest(err.Error())
			return
		}
		rw.InternalError(err)
		return
	}

	rw.Success(resp)
}

func parseRecommendationParams(rw *ResponseWriter, r *http.Request) (recommendationParams, bool) {
	var p recommendationParams
	var err error

	tenantID, _ := logging.TenantIDFromContext(r.Context())
	p.TenantID = tenantID

	if p.UserID, err = strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64); err != nil {
		rw.BadRequest("user id must be an integer")
		return p, false
	}

	q := r.URL.Query()
	if raw := strings.TrimSpace(q.Get("limit")); raw != "" {
		if p.Limit, err = strconv.Atoi(raw); err != nil {
			rw.BadRequest("limit must be an integer")
			return p, false
		}
	}
	p.Category = strings.TrimSpace(q.Get("category"))
	p.Exclude = q.Get("exclude")
	return p, true
}

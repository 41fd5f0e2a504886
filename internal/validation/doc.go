// Nexus - Community Group Recommendations
// Copyright 2026 Nexus contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jasperfordesq-ai/nexus-v1-sub002

// Package validation provides struct validation using go-playground/validator v10.
//
// A single validator instance is created lazily and shared; it caches struct
// metadata and is safe for concurrent use. Field names in errors are taken
// from json tags so messages match request payloads.
//
// Custom tags:
//
//   - idlist: a comma-separated list of positive integer IDs ("3,8,21")
//
// Example:
//
//	type interactionRequest struct {
//	    UserID  int64  `json:"user_id" validate:"gt=0"`
//	    GroupID int64  `json:"group_id" validate:"gt=0"`
//	    Action  string `json:"action" validate:"required,oneof=view click join dismiss"`
//	}
//
//	if err := validation.ValidateStruct(&req); err != nil {
//	    respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), err)
//	    return
//	}
package validation

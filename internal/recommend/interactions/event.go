// Nexus - Community Group Recommendations
// Copyright 2026 Nexus contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jasperfordesq-ai/nexus-v1-sub002

package interactions

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Action is what a user did with a recommended group.
type Action string

// Supported actions.
const (
	ActionView    Action = "view"
	ActionClick   Action = "click"
	ActionJoin    Action = "join"
	ActionDismiss Action = "dismiss"
)

var (
	// ErrUnknownAction is returned for an action outside the supported set.
	ErrUnknownAction = errors.New("interactions: unknown action")

	// ErrInvalidEvent is returned when an event fails validation.
	ErrInvalidEvent = errors.New("interactions: invalid event")

	// ErrQueueFull is returned when the recorder queue has no room.
	ErrQueueFull = errors.New("interactions: queue full")
)

// ParseAction parses an action name, case-insensitively.
func ParseAction(s string) (Action, error) {
	a := Action(strings.ToLower(strings.TrimSpace(s)))
	if !a.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownAction, s)
	}
	return a, nil
}

// Valid reports whether a is a supported action.
func (a Action) Valid() bool {
	switch a {
	case ActionView, ActionClick, ActionJoin, ActionDismiss:
		return true
	}
	return false
}

// String returns the action name.
func (a Action) String() string {
	return string(a)
}

// Event is one user interaction with a recommended group.
// Duplicates are allowed; events are append-only.
type Event struct {
	ID        string    `json:"id"`
	TenantID  int64     `json:"tenant_id"`
	UserID    int64     `json:"user_id"`
	GroupID   int64     `json:"group_id"`
	Action    Action    `json:"action"`
	Timestamp time.Time `json:"timestamp"`
}

// Validate checks the event for errors.
func (e *Event) Validate() error {
	if e.TenantID <= 0 {
		return fmt.Errorf("%w: tenant_id must be positive", ErrInvalidEvent)
	}
	if e.UserID <= 0 {
		return fmt.Errorf("%w: user_id must be positive", ErrInvalidEvent)
	}
	if e.GroupID <= 0 {
		return fmt.Errorf("%w: group_id must be positive", ErrInvalidEvent)
	}
	if !e.Action.Valid() {
		return fmt.Errorf("%w: %w %q", ErrInvalidEvent, ErrUnknownAction, e.Action)
	}
	return nil
}

// Topic returns the message topic for the event ("interactions.<action>").
func (e *Event) Topic() string {
	return "interactions." + string(e.Action)
}

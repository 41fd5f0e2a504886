// Nexus - Community Group Recommendations
// Copyright 2026 Nexus contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jasperfordesq-ai/nexus-v1-sub002

package recommend

import (
	"context"
	"time"
)

// GeoPoint is a WGS84 latitude/longitude pair in degrees.
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Visibility controls whether a group can be recommended.
type Visibility string

const (
	// VisibilityPublic groups are discoverable and recommendable.
	VisibilityPublic Visibility = "public"
	// VisibilityPrivate groups are never surfaced by the engine.
	VisibilityPrivate Visibility = "private"
)

// CategoryCount is one categorical activity tag with its occurrence count
// over the profile reader's trailing window.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// UserProfile holds the free text, location and recent activity of a user.
type UserProfile struct {
	// UserID is the user the profile belongs to.
	UserID int64 `json:"user_id"`

	// Bio is the free-text biography.
	Bio string `json:"bio,omitempty"`

	// Interests is the free-text interest list.
	Interests string `json:"interests,omitempty"`

	// Location is nil when the user has not shared coordinates.
	Location *GeoPoint `json:"location,omitempty"`

	// Activity is ordered most frequent first.
	Activity []CategoryCount `json:"activity,omitempty"`
}

// Group is a community group as seen by the engine.
type Group struct {
	ID          int64      `json:"id"`
	TenantID    int64      `json:"tenant_id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Category    string     `json:"category,omitempty"`
	Visibility  Visibility `json:"visibility"`
	Featured    bool       `json:"featured"`

	// MemberCount is the live number of active memberships.
	MemberCount int `json:"member_count"`

	// Location is nil when the group has no meeting point.
	Location *GeoPoint `json:"location,omitempty"`
}

// ScoreMap maps candidate group IDs to scores in [0, 1].
// A missing key means the signal had nothing to say about the group,
// which is distinct from a zero score.
type ScoreMap map[int64]float64

// Strategy names how a response was produced.
type Strategy string

const (
	// StrategyPersonalized means the signals were fused and ranked.
	StrategyPersonalized Strategy = "personalized"
	// StrategyPopular means the popularity fallback produced the list.
	StrategyPopular Strategy = "popular"
	// StrategyNone means there was nothing to recommend from.
	StrategyNone Strategy = "none"
)

// Result is one recommended group.
type Result struct {
	// Group is the hydrated group record.
	Group Group `json:"group"`

	// Score is the fused score, or the neutral fallback score.
	Score float64 `json:"score"`

	// Reason is a human-readable justification.
	Reason string `json:"reason"`

	// Signals is the per-signal raw score breakdown.
	Signals map[string]float64 `json:"signals,omitempty"`
}

// Request is a recommendation request.
type Request struct {
	// TenantID scopes every read.
	TenantID int64 `json:"tenant_id"`

	// UserID is the user to recommend groups to.
	UserID int64 `json:"user_id"`

	// Limit is the number of results. Zero means Config.DefaultLimit.
	Limit int `json:"limit,omitempty"`

	// Category restricts results to groups of this category when set.
	Category string `json:"category,omitempty"`

	// ExcludeIDs are group IDs that must not be returned.
	ExcludeIDs []int64 `json:"exclude_ids,omitempty"`

	// RequestID is used for tracing. Generated when empty.
	RequestID string `json:"request_id,omitempty"`
}

// Response is the ordered recommendation list plus diagnostics.
type Response struct {
	Items    []Result         `json:"items"`
	Metadata ResponseMetadata `json:"metadata"`
}

// ResponseMetadata contains timing and diagnostic information.
type ResponseMetadata struct {
	RequestID       string    `json:"request_id"`
	TenantID        int64     `json:"tenant_id"`
	UserID          int64     `json:"user_id"`
	Strategy        Strategy  `json:"strategy"`
	SignalsUsed     []string  `json:"signals_used"`
	TotalCandidates int       `json:"total_candidates"`
	LatencyMS       int64     `json:"latency_ms"`
	Timestamp       time.Time `json:"timestamp"`
}

// MembershipReader reads the membership graph.
type MembershipReader interface {
	// ActiveGroupIDs returns the groups the user is an active member of.
	ActiveGroupIDs(ctx context.Context, tenantID, userID int64) ([]int64, error)

	// MembersOfGroups returns users with an active membership in any of the groups.
	MembersOfGroups(ctx context.Context, tenantID int64, groupIDs []int64) ([]int64, error)

	// ActiveGroupsOfUsers returns each user's active group IDs.
	ActiveGroupsOfUsers(ctx context.Context, tenantID int64, userIDs []int64) (map[int64][]int64, error)
}

// ProfileReader reads user profiles.
type ProfileReader interface {
	// UserProfile returns the profile of a user.
	UserProfile(ctx context.Context, tenantID, userID int64) (*UserProfile, error)
}

// GroupReader reads groups.
type GroupReader interface {
	// VisibleGroups returns every public group in the tenant.
	VisibleGroups(ctx context.Context, tenantID int64) ([]Group, error)
}

// DataSource bundles the readers the engine consumes.
type DataSource interface {
	MembershipReader
	ProfileReader
	GroupReader
}

// Subject is everything a signal generator may need about the target user.
// Groups are the visible candidates; generators never fetch them again.
type Subject struct {
	TenantID int64
	UserID   int64

	// Memberships are the user's active group IDs.
	Memberships []int64

	// Profile is nil when the profile could not be loaded.
	Profile *UserProfile

	// Groups are the visible groups of the tenant.
	Groups []Group
}

// Generator produces one sparse signal for a subject.
type Generator interface {
	// Name returns the signal identifier (e.g., "collaborative", "content").
	Name() string

	// Generate returns scores in [0, 1] keyed by group ID.
	// An empty map means no signal.
	Generate(ctx context.Context, subject Subject) (ScoreMap, error)
}

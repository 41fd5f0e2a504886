// Nexus - Community Group Recommendations
// Copyright 2026 Nexus contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jasperfordesq-ai/nexus-v1-sub002

package recommend_test

import (
	"context"
	"math"
	"testing"

	"github.com/rs/zerolog"

	"github.com/jasperfordesq-ai/nexus-v1-sub002/internal/recommend"
	"github.com/jasperfordesq-ai/nexus-v1-sub002/internal/recommend/signals"
)

// memorySource is an in-memory DataSource for end-to-end engine tests.
type memorySource struct {
	groups   []recommend.Group
	groupsOf map[int64][]int64
	profiles map[int64]*recommend.UserProfile
}

func (m *memorySource) VisibleGroups(_ context.Context, _ int64) ([]recommend.Group, error) {
	out := make([]recommend.Group, 0, len(m.groups))
	for _, g := range m.groups {
		if g.Visibility == recommend.VisibilityPublic {
			out = append(out, g)
		}
	}
	return out, nil
}

func (m *memorySource) ActiveGroupIDs(_ context.Context, _, userID int64) ([]int64, error) {
	return m.groupsOf[userID], nil
}

func (m *memorySource) MembersOfGroups(_ context.Context, _ int64, groupIDs []int64) ([]int64, error) {
	want := make(map[int64]struct{}, len(groupIDs))
	for _, g := range groupIDs {
		want[g] = struct{}{}
	}
	var users []int64
	for uid, groups := range m.groupsOf {
		for _, g := range groups {
			if _, ok := want[g]; ok {
				users = append(users, uid)
				break
			}
		}
	}
	return users, nil
}

func (m *memorySource) ActiveGroupsOfUsers(_ context.Context, _ int64, userIDs []int64) (map[int64][]int64, error) {
	out := make(map[int64][]int64, len(userIDs))
	for _, uid := range userIDs {
		out[uid] = m.groupsOf[uid]
	}
	return out, nil
}

func (m *memorySource) UserProfile(_ context.Context, _, userID int64) (*recommend.UserProfile, error) {
	if p, ok := m.profiles[userID]; ok {
		return p, nil
	}
	return &recommend.UserProfile{UserID: userID}, nil
}

func newScenarioEngine(t *testing.T, source *memorySource) *recommend.Engine {
	t.Helper()
	cfg := recommend.DefaultConfig()
	e, err := recommend.NewEngine(cfg, source, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	e.RegisterGenerator(signals.NewCollaborative(source, cfg.Collaborative))
	e.RegisterGenerator(signals.NewContent())
	e.RegisterGenerator(signals.NewLocation(cfg.Location))
	e.RegisterGenerator(signals.NewActivity(cfg.Activity))
	return e
}

func TestScenario_CollaborativeOnly(t *testing.T) {
	source := &memorySource{
		groups: []recommend.Group{
			{ID: 1, Name: "G1", Visibility: recommend.VisibilityPublic, MemberCount: 2},
			{ID: 2, Name: "G2", Visibility: recommend.VisibilityPublic, MemberCount: 2},
			{ID: 3, Name: "G3", Visibility: recommend.VisibilityPublic, MemberCount: 1},
		},
		groupsOf: map[int64][]int64{
			10: {1, 2},
			20: {1, 2, 3},
		},
	}
	e := newScenarioEngine(t, source)

	resp, err := e.Recommend(context.Background(), recommend.Request{TenantID: 1, UserID: 10})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(resp.Items) != 1 {
		t.Fatalf("got %d items, want 1", len(resp.Items))
	}

	item := resp.Items[0]
	if item.Group.ID != 3 {
		t.Errorf("recommended group %d, want 3", item.Group.ID)
	}
	if item.Signals[recommend.SignalCollaborative] != 1.0 {
		t.Errorf("collaborative score = %f, want 1.0", item.Signals[recommend.SignalCollaborative])
	}
	if math.Abs(item.Score-0.40) > 1e-12 {
		t.Errorf("fused score = %f, want 0.40", item.Score)
	}
}

func TestScenario_EmptyProfileGetsPopularGroups(t *testing.T) {
	source := &memorySource{
		groups: []recommend.Group{
			{ID: 1, Name: "Quiet", Visibility: recommend.VisibilityPublic, MemberCount: 3},
			{ID: 2, Name: "Busy", Visibility: recommend.VisibilityPublic, MemberCount: 30},
			{ID: 3, Name: "Hidden", Visibility: recommend.VisibilityPrivate, MemberCount: 300},
		},
		groupsOf: map[int64][]int64{},
	}
	e := newScenarioEngine(t, source)

	resp, err := e.Recommend(context.Background(), recommend.Request{TenantID: 1, UserID: 99})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if resp.Metadata.Strategy != recommend.StrategyPopular {
		t.Errorf("Strategy = %q, want popular", resp.Metadata.Strategy)
	}
	if len(resp.Items) != 2 || resp.Items[0].Group.ID != 2 || resp.Items[1].Group.ID != 1 {
		t.Errorf("unexpected fallback list: %+v", resp.Items)
	}
}

func TestScenario_AllSignalsFuse(t *testing.T) {
	home := recommend.GeoPoint{Lat: 40.4168, Lon: -3.7038}
	source := &memorySource{
		groups: []recommend.Group{
			{ID: 1, Name: "Madrid Runners", Description: "Morning running club", Category: "running",
				Visibility: recommend.VisibilityPublic, Location: &home, MemberCount: 20},
			{ID: 2, Name: "Book Swap", Description: "Monthly novels exchange", Category: "books",
				Visibility: recommend.VisibilityPublic, MemberCount: 8},
			{ID: 3, Name: "Joined", Description: "Already a member", Category: "misc",
				Visibility: recommend.VisibilityPublic, MemberCount: 5},
		},
		groupsOf: map[int64][]int64{
			1: {3},
		},
		profiles: map[int64]*recommend.UserProfile{
			1: {
				UserID:   1,
				Bio:      "I love running in the morning",
				Location: &home,
				Activity: []recommend.CategoryCount{{Category: "running", Count: 4}},
			},
		},
	}
	e := newScenarioEngine(t, source)

	resp, err := e.Recommend(context.Background(), recommend.Request{TenantID: 1, UserID: 1})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if resp.Metadata.Strategy != recommend.StrategyPersonalized {
		t.Fatalf("Strategy = %q, want personalized", resp.Metadata.Strategy)
	}
	if len(resp.Items) != 1 || resp.Items[0].Group.ID != 1 {
		t.Fatalf("unexpected items: %+v", resp.Items)
	}

	got := resp.Items[0].Signals
	for _, name := range []string{recommend.SignalContent, recommend.SignalLocation, recommend.SignalActivity} {
		if _, ok := got[name]; !ok {
			t.Errorf("missing %s signal in breakdown %v", name, got)
		}
	}
	if got[recommend.SignalLocation] != 1.0 {
		t.Errorf("location score = %f, want 1.0", got[recommend.SignalLocation])
	}
	if got[recommend.SignalActivity] != 1.0 {
		t.Errorf("activity score = %f, want 1.0", got[recommend.SignalActivity])
	}
}

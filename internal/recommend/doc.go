// Nexus - Community Group Recommendations
// Copyright 2026 Nexus contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jasperfordesq-ai/nexus-v1-sub002

// Package recommend implements the community group recommendation engine.
//
// # Architecture
//
// Four independent signal generators each produce a sparse score map over
// the visible groups of a tenant:
//
//   - Collaborative: co-membership of users with overlapping groups
//   - Content: keyword overlap between the user profile and group text
//   - Location: linear distance decay inside a fixed radius
//   - Activity: overlap between recent activity tags and group text
//
// The engine runs the generators concurrently, fuses their maps with fixed
// weights, removes excluded and ineligible groups, ranks by fused score and
// hydrates the survivors with their group records and a reason string.
// Users without memberships, or without any signal at all, get the
// popularity fallback instead.
//
// # Design Principles
//
//   - Deterministic: identical data and configuration produce identical
//     ordered output; ties break by ascending group ID
//   - Stateless: every scoring structure lives inside one Recommend call
//   - Degrading: a failed or slow generator contributes nothing and the
//     request still succeeds
//   - Fail fast: invalid weights are rejected by NewEngine at startup
//
// # Usage
//
//	engine, err := recommend.NewEngine(cfg, store, logger)
//	if err != nil {
//	    return err
//	}
//	engine.RegisterGenerator(signals.NewCollaborative(store, cfg.Collaborative))
//	engine.RegisterGenerator(signals.NewContent())
//
//	resp, err := engine.Recommend(ctx, recommend.Request{
//	    TenantID: 1,
//	    UserID:   42,
//	    Limit:    10,
//	})
//
// # Thread Safety
//
// The engine is safe for concurrent use. Registering generators takes a
// write lock; requests only read the generator list.
package recommend

// Nexus - Community Group Recommendations
// Copyright 2026 Nexus contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jasperfordesq-ai/nexus-v1-sub002

/*
Package api exposes the recommendation engine and the interaction recorder
over HTTP using the chi router.

# Endpoints

	GET  /api/v1/tenants/{tenantID}/users/{userID}/recommendations?limit=&category=&exclude=1,2
	POST /api/v1/tenants/{tenantID}/interactions
	GET  /api/v1/health/live
	GET  /api/v1/health/ready
	GET  /metrics

Recommendation responses use the standard envelope:

	{"success": true, "data": {"items": [...], "metadata": {...}}, "meta": {...}}

Interaction posts are fire-and-forget and always answer 202 Accepted once the
body is valid, whether or not the event fit on the queue.

# Middleware

Every request gets an X-Request-ID (reused from the caller when present),
real-IP extraction, panic recovery, CORS and per-IP rate limiting from
go-chi/httprate. Tenant routes add the tenant ID to the logging context.
Request counts and latencies are recorded per route pattern.

The adapter performs no authentication and trusts the tenant ID in the path.
*/
package api

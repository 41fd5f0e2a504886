// Nexus - Community Group Recommendations
// Copyright 2026 Nexus contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jasperfordesq-ai/nexus-v1-sub002

/*
Package logging provides the process-wide zerolog logger.

Call Init once from main with the values from the logging config section.
Every line carries service=nexus and, when configured, env:

	logging.Init(logging.Config{Level: "info", Format: "json", Environment: "production"})

Components take the result of Logger by value and derive their own child:

	logger := logging.Logger().With().Str("component", "recommend").Logger()

Request-scoped code uses Ctx, which attaches request_id and tenant_id when
the HTTP middleware has stored them:

	logging.Ctx(r.Context()).Warn().Err(err).Msg("interaction rejected")

The suture supervisor logs through sutureslog, which needs an *slog.Logger;
NewSlogLogger provides one that writes through zerolog and picks up the same
context ids.

Always terminate event chains with Msg or Send; an unterminated chain is not
written.
*/
package logging

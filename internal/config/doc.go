// Nexus - Community Group Recommendations
// Copyright 2026 Nexus contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jasperfordesq-ai/nexus-v1-sub002

/*
Package config loads and validates the service configuration.

Configuration is layered with Koanf v2: built-in defaults, then an optional
YAML file, then environment variables. A minimal file:

	database:
	  driver: pgx
	  dsn: postgres://nexus:secret@db:5432/nexus
	interactions:
	  sink: nats
	recommend:
	  weights:
	    collaborative: 0.4
	    content: 0.25
	    location: 0.2
	    activity: 0.15

Environment variables use flat legacy names (HTTP_PORT, DATABASE_DRIVER,
INTERACTIONS_SINK, RECOMMEND_WEIGHT_CONTENT, LOG_LEVEL, ...). Unknown
variables are ignored.

Validation combines struct tags (go-playground/validator) with cross-field
rules: the sink's backend address must be valid, and the recommend section
must pass recommend.Config.Validate, so weights that do not sum to 1.0 stop
the process at startup.
*/
package config

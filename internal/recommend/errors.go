// Nexus - Community Group Recommendations
// Copyright 2026 Nexus contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jasperfordesq-ai/nexus-v1-sub002

package recommend

import "errors"

// ErrInvalidLimit is returned when a request asks for a negative number of results.
var ErrInvalidLimit = errors.New("recommend: limit must not be negative")

// ErrNoDataSource is returned by NewEngine when no data source is provided.
var ErrNoDataSource = errors.New("recommend: data source is required")

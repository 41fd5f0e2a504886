// Nexus - Community Group Recommendations
// Copyright 2026 Nexus contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jasperfordesq-ai/nexus-v1-sub002

/*
Package supervisor runs the service's long-lived components under a suture v4
supervisor tree.

	nexus
	├── workers
	│   └── interaction-recorder(<sink>)
	└── api
	    └── api-server

Crashed services are restarted with suture's backoff. Canceling the context
passed to Serve stops the api layer and the workers layer; the recorder drains
its queue before returning. Supervisor events are logged through sutureslog
using the zerolog-backed slog handler from the logging package:

	tree := supervisor.NewTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	tree.AddWorker(services.NewRecorderService(recorder, sink.Name(), logger))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout, logger))
	err := tree.Serve(ctx)
*/
package supervisor

// Crop Advisor - Crop Recommendation and Agronomic Prediction Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cropadvisor

/*
Package supervisor provides process supervision using suture v4.

Long-running services are organized into a two-layer tree:

	RootSupervisor ("cropadvisor")
	├── EngineSupervisor ("engine-layer")
	│   └── EngineStatsService
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Crashed services restart with suture's failure decay and backoff. A failure
in the engine layer never restarts the HTTP server.

# Usage

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(logger), supervisor.TreeConfig{
	    ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	tree.AddEngineService(services.NewEngineStatsService(engine, 5*time.Minute, logger))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout, logger))
	err = tree.Serve(ctx)

Supervisor events (start, stop, failure, backoff) are logged through
sutureslog; the slog handler comes from the logging package so events land in
the same zerolog stream as everything else.
*/
package supervisor

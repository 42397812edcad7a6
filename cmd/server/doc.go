// Crop Advisor - Crop Recommendation and Agronomic Prediction Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cropadvisor

/*
Package main is the entry point for the Crop Advisor server.

Crop Advisor ranks crops for a region and soil type, predicts nutrient and
water-quality targets for a chosen crop, and attaches a fertilizer
recommendation. It serves the engine over a JSON HTTP API.

# Startup

 1. Configuration: koanf v2 (defaults, config.yaml, environment)
 2. Logging: zerolog, configured from the logging section
 3. Artifacts: vocabulary, classifier, regressor and fertilizer rules are
    loaded from ARTIFACT_DIR; any failure is fatal
 4. Engine: built from the artifacts with a Prometheus observer
 5. Supervisor: suture v4 tree running the HTTP server and the engine stats
    reporter until SIGINT or SIGTERM

	RootSupervisor ("cropadvisor")
	├── EngineSupervisor ("engine-layer")
	│   └── EngineStatsService
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

# Example

	export ARTIFACT_DIR=/srv/cropadvisor/artifacts
	export HTTP_PORT=8080
	export LOG_FORMAT=console
	./cropadvisor

	curl -s -X POST localhost:8080/api/v1/crops/recommend \
	  -d '{"region":"Punjab","soil_type":"Alluvial","k":3}'

# Signals

SIGINT and SIGTERM cancel the supervisor context. The HTTP server drains
in-flight requests for up to HTTP_SHUTDOWN_TIMEOUT before exiting.
*/
package main

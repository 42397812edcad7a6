// Crop Advisor - Crop Recommendation and Agronomic Prediction Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cropadvisor

/*
Package services provides suture.Service wrappers for Crop Advisor components.

Each wrapper translates a component's lifecycle into suture's context-aware
Serve method:

	type Service interface {
	    Serve(ctx context.Context) error
	}

# Available Services

HTTP Server (HTTPServerService):
  - Wraps *http.Server and converts ListenAndServe to Serve
  - Drains connections with a bounded Shutdown on cancellation

Engine Stats (EngineStatsService):
  - Logs the engine's counters on an interval and once at shutdown
  - Lets operators follow error and fallback rates from logs alone

Returning ctx.Err() on cancellation tells the supervisor the stop was
requested; any other error triggers a restart with backoff.
*/
package services

// Crop Advisor - Crop Recommendation and Agronomic Prediction Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cropadvisor

// Package logging provides the process-wide zerolog logger for Crop Advisor.
//
// JSON output is the default and is what the server emits in production.
// Console output is available for local development.
//
//	logging.Init(logging.Config{Level: "info", Format: "json", Timestamp: true})
//	logging.Info().Str("artifact_dir", dir).Msg("Artifacts loaded")
//
// # Request Scoped Logging
//
// The HTTP layer stores a request ID in the request context. Ctx attaches it
// to every entry:
//
//	ctx = logging.ContextWithRequestID(ctx, logging.NewRequestID())
//	logging.Ctx(ctx).Warn().Err(err).Msg("candidate expansion failed")
//
// # Supervisor Integration
//
// The suture supervisor logs through log/slog via sutureslog. NewSlogLogger
// bridges those records into zerolog so that all output shares one format.
//
// # Thread Safety
//
// The global logger is guarded by a RWMutex. zerolog.Logger values are safe
// for concurrent use.
package logging

// Crop Advisor - Crop Recommendation and Agronomic Prediction Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cropadvisor

// Package middleware provides HTTP middleware shared by the API router.
//
//   - RequestID: assigns or propagates X-Request-ID and seeds the logging
//     context used by logging.Ctx
//   - PrometheusMetrics: records api_* metrics labelled by chi route pattern
//
// Both use the standard func(http.Handler) http.Handler shape so they mount
// directly with chi's Router.Use.
package middleware

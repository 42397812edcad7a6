// Crop Advisor - Crop Recommendation and Agronomic Prediction Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cropadvisor

// Package api exposes the recommendation engine over HTTP using the chi
// router.
//
// # Endpoints
//
//	POST /api/v1/crops/rank        {region, soil_type}
//	POST /api/v1/crops/predict     {region, soil_type, crop}
//	POST /api/v1/crops/recommend   {region, soil_type, k}
//	GET  /api/v1/vocabulary
//	GET  /api/v1/models/status
//	GET  /api/v1/health/live
//	GET  /api/v1/health/ready
//	GET  /metrics
//	GET  /
//
// # Response Envelope
//
// Every JSON response uses APIResponse:
//
//	{"success": true, "data": {...}, "meta": {"request_id": "...", ...}}
//	{"success": false, "error": {"code": "UNKNOWN_CATEGORY", "message": "...",
//	  "details": {"field": "region", "value": "Atlantis"}}, "meta": {...}}
//
// # Error Codes
//
//	VALIDATION_FAILED    400  malformed request shape (missing or blank fields)
//	BAD_REQUEST          400  body is not valid JSON
//	UNKNOWN_CATEGORY     400  value outside the trained vocabulary
//	TOO_MANY_REQUESTS    429  rate limit exceeded
//	MODEL_UNAVAILABLE    503  artifacts not loaded
//	TIMEOUT              504  request deadline exceeded
//
// # Middleware
//
// Global: request ID with logging context, chi RealIP and Recoverer,
// go-chi/cors. The /api/v1 group adds go-chi/httprate limiting and
// Prometheus request metrics. Health probes skip rate limiting.
package api

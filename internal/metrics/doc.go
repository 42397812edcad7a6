// Crop Advisor - Crop Recommendation and Agronomic Prediction Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cropadvisor

// Package metrics defines the Prometheus collectors exported at /metrics.
//
// Collectors are registered with the default registry through promauto at
// package init. Two groups exist:
//
// API metrics, recorded by middleware.PrometheusMetrics:
//   - api_requests_total{method, endpoint, status_code}
//   - api_request_duration_seconds{method, endpoint}
//   - api_active_requests
//   - api_rate_limit_hits_total
//
// Recommendation metrics, recorded through RecommendObserver which the
// engine calls after each operation:
//   - cropadvisor_requests_total{operation, outcome}
//   - cropadvisor_request_duration_seconds{operation}
//   - cropadvisor_inference_duration_seconds{model}
//   - cropadvisor_candidate_failures_total{stage}
//   - cropadvisor_fertilizer_fallbacks_total
//   - cropadvisor_display_confidence
//   - cropadvisor_artifacts_loaded and cropadvisor_artifact_info
//
// The endpoint label is the chi route pattern, never the raw path, so label
// cardinality stays bounded.
package metrics

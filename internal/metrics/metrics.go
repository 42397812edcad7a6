// Crop Advisor - Crop Recommendation and Agronomic Prediction Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cropadvisor

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Number of API requests currently being processed",
		},
	)

	APIRateLimitHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of requests rejected by the rate limiter",
		},
	)

	// Recommendation Metrics
	RecommendRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cropadvisor_requests_total",
			Help: "Engine calls by operation (rank, predict, recommend) and outcome",
		},
		[]string{"operation", "outcome"},
	)

	RecommendRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cropadvisor_request_duration_seconds",
			Help:    "Engine call duration in seconds",
			Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 1},
		},
		[]string{"operation"},
	)

	InferenceDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cropadvisor_inference_duration_seconds",
			Help:    "Single model evaluation duration in seconds",
			Buckets: []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05},
		},
		[]string{"model"},
	)

	CandidateFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cropadvisor_candidate_failures_total",
			Help: "Top-K candidates dropped from a recommendation, by failing stage",
		},
		[]string{"stage"},
	)

	FertilizerFallbacksTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cropadvisor_fertilizer_fallbacks_total",
			Help: "Predictions served with the default fertilizer because no rule matched",
		},
	)

	DisplayConfidence = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "cropadvisor_display_confidence",
			Help:    "Distribution of reshaped display confidence values",
			Buckets: prometheus.LinearBuckets(40, 5, 11), // 40, 45, ... 90
		},
	)

	ArtifactsLoaded = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cropadvisor_artifacts_loaded",
			Help: "1 when a complete model artifact bundle is loaded, 0 otherwise",
		},
	)

	ArtifactInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cropadvisor_artifact_info",
			Help: "Loaded artifact metadata; the value is always 1",
		},
		[]string{"model_version", "rules_source"},
	)
)

// RecordAPIRequest records an API request metric.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks in-flight API requests.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRateLimitHit counts a rate-limited request.
func RecordRateLimitHit() {
	APIRateLimitHits.Inc()
}

// SetArtifactsLoaded publishes the loaded artifact bundle. An empty
// modelVersion marks the artifacts as unavailable.
func SetArtifactsLoaded(modelVersion, rulesSource string) {
	ArtifactInfo.Reset()
	if modelVersion == "" {
		ArtifactsLoaded.Set(0)
		return
	}
	ArtifactsLoaded.Set(1)
	ArtifactInfo.WithLabelValues(modelVersion, rulesSource).Set(1)
}

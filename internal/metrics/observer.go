// Crop Advisor - Crop Recommendation and Agronomic Prediction Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cropadvisor

package metrics

import "time"

// RecommendObserver forwards recommendation engine events to the
// package-level Prometheus collectors. It satisfies recommend.Observer.
type RecommendObserver struct{}

// NewRecommendObserver returns an observer backed by the default registry.
func NewRecommendObserver() RecommendObserver {
	return RecommendObserver{}
}

// ObserveRequest records one engine call.
func (RecommendObserver) ObserveRequest(operation, outcome string, duration time.Duration) {
	RecommendRequestsTotal.WithLabelValues(operation, outcome).Inc()
	RecommendRequestDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// ObserveInference records one model evaluation.
func (RecommendObserver) ObserveInference(model string, duration time.Duration) {
	InferenceDuration.WithLabelValues(model).Observe(duration.Seconds())
}

// ObserveCandidateFailure counts a dropped top-K candidate.
func (RecommendObserver) ObserveCandidateFailure(stage string) {
	CandidateFailuresTotal.WithLabelValues(stage).Inc()
}

// ObserveFertilizerFallback counts a default fertilizer fallback.
func (RecommendObserver) ObserveFertilizerFallback() {
	FertilizerFallbacksTotal.Inc()
}

// ObserveConfidence records a display confidence value.
func (RecommendObserver) ObserveConfidence(displayConfidence float64) {
	DisplayConfidence.Observe(displayConfidence)
}

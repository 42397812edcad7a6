// Crop Advisor - Crop Recommendation and Agronomic Prediction Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cropadvisor

package api

import (
	"context"
	"time"

	"github.com/tomtom215/cropadvisor/internal/recommend"
	"github.com/tomtom215/cropadvisor/internal/recommend/artifact"
)

// CropEngine is the recommendation engine as seen by the HTTP layer.
// *recommend.Engine implements it.
type CropEngine interface {
	RankCrops(ctx context.Context, region, soilType string) (*recommend.RankResponse, error)
	PredictForCrop(ctx context.Context, region, soilType, crop string) (*recommend.Prediction, error)
	Recommend(ctx context.Context, req recommend.Request) (*recommend.Recommendation, error)
}

// engineMetrics is implemented by engines that expose counters.
type engineMetrics interface {
	GetMetrics() recommend.Metrics
}

// Handler serves the API endpoints.
//
// Handler methods are split across files:
//   - handlers_crops.go: rank, predict and recommend
//   - handlers_catalog.go: index, vocabulary and model status
//   - handlers_health.go: liveness and readiness probes
type Handler struct {
	engine         CropEngine
	bundle         *artifact.Bundle
	requestTimeout time.Duration
	startTime      time.Time
}

// NewHandler creates a handler. engine and bundle may be nil, in which case
// the crop endpoints answer 503 and readiness fails. requestTimeout bounds
// each engine call; zero disables the bound.
func NewHandler(engine CropEngine, bundle *artifact.Bundle, requestTimeout time.Duration) *Handler {
	return &Handler{
		engine:         engine,
		bundle:         bundle,
		requestTimeout: requestTimeout,
		startTime:      time.Now(),
	}
}

// ready reports whether both the engine and its artifacts are present.
func (h *Handler) ready() bool {
	return h.engine != nil && h.bundle != nil
}

func (h *Handler) engineContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if h.requestTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, h.requestTimeout)
}

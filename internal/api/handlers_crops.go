// Crop Advisor - Crop Recommendation and Agronomic Prediction Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cropadvisor

package api

import (
	"net/http"

	"github.com/tomtom215/cropadvisor/internal/logging"
	"github.com/tomtom215/cropadvisor/internal/recommend"
)

// RankCrops handles POST /api/v1/crops/rank.
// Returns every crop ranked by suitability with its display confidence.
func (h *Handler) RankCrops(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if !h.ready() {
		writeEngineError(rw, ErrArtifactsNotLoaded)
		return
	}

	var req RankRequest
	if !decodeAndValidate(rw, r, &req) {
		return
	}

	ctx, cancel := h.engineContext(r.Context())
	defer cancel()

	resp, err := h.engine.RankCrops(ctx, req.Region, req.SoilType)
	if err != nil {
		writeEngineError(rw, err)
		return
	}
	rw.Success(resp)
}

// PredictForCrop handles POST /api/v1/crops/predict.
// Returns nutrient and water quality predictions and fertilizer advice.
func (h *Handler) PredictForCrop(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if !h.ready() {
		writeEngineError(rw, ErrArtifactsNotLoaded)
		return
	}

	var req PredictRequest
	if !decodeAndValidate(rw, r, &req) {
		return
	}

	ctx, cancel := h.engineContext(r.Context())
	defer cancel()

	resp, err := h.engine.PredictForCrop(ctx, req.Region, req.SoilType, req.Crop)
	if err != nil {
		writeEngineError(rw, err)
		return
	}
	rw.Success(resp)
}

// Recommend handles POST /api/v1/crops/recommend.
// Ranks crops and expands the top K with predictions. Candidates that fail
// are listed under diagnostics while the rest are still returned.
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if !h.ready() {
		writeEngineError(rw, ErrArtifactsNotLoaded)
		return
	}

	var req RecommendRequest
	if !decodeAndValidate(rw, r, &req) {
		return
	}

	ctx, cancel := h.engineContext(r.Context())
	defer cancel()

	resp, err := h.engine.Recommend(ctx, recommend.Request{
		Region:    req.Region,
		SoilType:  req.SoilType,
		K:         req.K,
		RequestID: logging.RequestIDFromContext(r.Context()),
	})
	if err != nil {
		writeEngineError(rw, err)
		return
	}
	if len(resp.Diagnostics) > 0 {
		logging.Ctx(r.Context()).Warn().
			Int("failed_candidates", len(resp.Diagnostics)).
			Int("k", resp.Metadata.K).
			Msg("Recommendation served with dropped candidates")
	}
	rw.Success(resp)
}

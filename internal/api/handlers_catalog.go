// Crop Advisor - Crop Recommendation and Agronomic Prediction Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cropadvisor

package api

import (
	"net/http"

	"github.com/tomtom215/cropadvisor/internal/recommend"
	"github.com/tomtom215/cropadvisor/internal/recommend/artifact"
)

// VocabularyResponse lists the accepted category values, for populating
// client dropdowns.
type VocabularyResponse struct {
	Regions      []string `json:"regions"`
	SoilTypes    []string `json:"soil_types"`
	Crops        []string `json:"crops"`
	ClimateZones []string `json:"climate_zones"`
}

// ModelStatusResponse reports the loaded artifacts and engine counters.
type ModelStatusResponse struct {
	Ready     bool               `json:"ready"`
	Artifacts artifact.Status    `json:"artifacts"`
	Engine    *recommend.Metrics `json:"engine,omitempty"`
}

// Endpoint describes one API route for the index.
type Endpoint struct {
	Method      string `json:"method"`
	Path        string `json:"path"`
	Description string `json:"description"`
}

// IndexResponse is the body of GET /.
type IndexResponse struct {
	Service      string     `json:"service"`
	ModelVersion string     `json:"model_version,omitempty"`
	Endpoints    []Endpoint `json:"endpoints"`
}

var endpoints = []Endpoint{
	{http.MethodPost, "/api/v1/crops/rank", "Rank all crops for a region and soil type"},
	{http.MethodPost, "/api/v1/crops/predict", "Predict nutrients, water quality and fertilizer for one crop"},
	{http.MethodPost, "/api/v1/crops/recommend", "Rank crops and expand the top K with predictions"},
	{http.MethodGet, "/api/v1/vocabulary", "Accepted regions, soil types and crops"},
	{http.MethodGet, "/api/v1/models/status", "Loaded model artifacts"},
	{http.MethodGet, "/api/v1/health/live", "Liveness probe"},
	{http.MethodGet, "/api/v1/health/ready", "Readiness probe"},
	{http.MethodGet, "/metrics", "Prometheus metrics"},
}

// Index handles GET /.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	resp := IndexResponse{
		Service:   "cropadvisor",
		Endpoints: endpoints,
	}
	if h.bundle != nil {
		resp.ModelVersion = h.bundle.Meta.ModelVersion
	}
	NewResponseWriter(w, r).Success(resp)
}

// Vocabulary handles GET /api/v1/vocabulary.
func (h *Handler) Vocabulary(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if h.bundle == nil || h.bundle.Vocabulary == nil {
		writeEngineError(rw, ErrArtifactsNotLoaded)
		return
	}

	v := h.bundle.Vocabulary
	rw.Success(VocabularyResponse{
		Regions:      v.Regions(),
		SoilTypes:    v.SoilTypes(),
		Crops:        v.Crops(),
		ClimateZones: v.ClimateZones(),
	})
}

// ModelStatus handles GET /api/v1/models/status. It answers 200 even when
// nothing is loaded so operators can see what is missing.
func (h *Handler) ModelStatus(w http.ResponseWriter, r *http.Request) {
	resp := ModelStatusResponse{
		Ready:     h.ready(),
		Artifacts: h.bundle.Status(),
	}
	if em, ok := h.engine.(engineMetrics); ok {
		m := em.GetMetrics()
		resp.Engine = &m
	}
	NewResponseWriter(w, r).Success(resp)
}

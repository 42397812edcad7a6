// Crop Advisor - Crop Recommendation and Agronomic Prediction Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cropadvisor

package api

import (
	"net/http"
	"time"
)

// HealthLive handles GET /api/v1/health/live.
// Returns 200 while the process is serving, regardless of model state.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(map[string]interface{}{
		"alive":  true,
		"uptime": time.Since(h.startTime).Seconds(),
	})
}

// HealthReady handles GET /api/v1/health/ready.
// Returns 200 once the model artifacts are loaded and the engine is built,
// 503 otherwise.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if !h.ready() {
		rw.ServiceUnavailable(ErrCodeServiceUnavailable, "Model artifacts are not loaded")
		return
	}
	rw.Success(map[string]interface{}{
		"ready":         true,
		"model_version": h.bundle.Meta.ModelVersion,
	})
}

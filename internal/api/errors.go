// Crop Advisor - Crop Recommendation and Agronomic Prediction Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cropadvisor

package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/tomtom215/cropadvisor/internal/recommend"
)

// ErrArtifactsNotLoaded is reported when the server runs without a model
// bundle.
var ErrArtifactsNotLoaded = errors.New("model artifacts not loaded")

// unknownCategoryDetails is the details payload of UNKNOWN_CATEGORY.
type unknownCategoryDetails struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

// writeEngineError maps an engine error to its HTTP response:
//
//	ErrUnknownCategory         400 UNKNOWN_CATEGORY (details.field)
//	ErrModelUnavailable        503 MODEL_UNAVAILABLE
//	context.DeadlineExceeded   504 TIMEOUT
//	context.Canceled           503 SERVICE_UNAVAILABLE
//	anything else              500 INTERNAL_ERROR
func writeEngineError(rw *ResponseWriter, err error) {
	var unknown *recommend.UnknownCategoryError
	switch {
	case errors.As(err, &unknown):
		rw.ErrorWithDetails(http.StatusBadRequest, ErrCodeUnknownCategory, err.Error(),
			unknownCategoryDetails{Field: unknown.Field, Value: unknown.Value})
	case errors.Is(err, recommend.ErrUnknownCategory):
		rw.Error(http.StatusBadRequest, ErrCodeUnknownCategory, err.Error())
	case errors.Is(err, recommend.ErrModelUnavailable), errors.Is(err, ErrArtifactsNotLoaded):
		rw.ServiceUnavailable(ErrCodeModelUnavailable, "Prediction models are not available")
	case errors.Is(err, context.DeadlineExceeded):
		rw.Error(http.StatusGatewayTimeout, ErrCodeTimeout, "The request took too long to process")
	case errors.Is(err, context.Canceled):
		rw.ServiceUnavailable(ErrCodeServiceUnavailable, "The request was canceled")
	default:
		rw.InternalError(err)
	}
}

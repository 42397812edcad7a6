// Crop Advisor - Crop Recommendation and Agronomic Prediction Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cropadvisor

package api

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/tomtom215/cropadvisor/internal/validation"
)

// maxBodyBytes bounds request bodies. Valid requests are a few hundred bytes.
const maxBodyBytes = 64 << 10

// RankRequest is the body of POST /api/v1/crops/rank.
type RankRequest struct {
	Region   string `json:"region" validate:"required,notblank,max=64"`
	SoilType string `json:"soil_type" validate:"required,notblank,max=64"`
}

// PredictRequest is the body of POST /api/v1/crops/predict.
type PredictRequest struct {
	Region   string `json:"region" validate:"required,notblank,max=64"`
	SoilType string `json:"soil_type" validate:"required,notblank,max=64"`
	Crop     string `json:"crop" validate:"required,notblank,max=64"`
}

// RecommendRequest is the body of POST /api/v1/crops/recommend. K of zero
// selects the configured default; values above the configured maximum are
// clamped by the engine.
type RecommendRequest struct {
	Region   string `json:"region" validate:"required,notblank,max=64"`
	SoilType string `json:"soil_type" validate:"required,notblank,max=64"`
	K        int    `json:"k" validate:"gte=0,lte=100"`
}

var errEmptyBody = errors.New("request body is empty")

// decodeAndValidate decodes a JSON body into dst and validates it. On
// failure it writes the error response and returns false.
func decodeAndValidate(rw *ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := decodeJSON(rw.w, r, dst); err != nil {
		rw.BadRequest(err.Error())
		return false
	}
	if verr := validation.ValidateStruct(dst); verr != nil {
		apiErr := verr.ToAPIError()
		rw.ValidationError(apiErr.Message, apiErr.Details)
		return false
	}
	return true
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return fmt.Errorf("request body exceeds %d bytes", maxErr.Limit)
		}
		return fmt.Errorf("read request body: %w", err)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return errEmptyBody
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	if dec.More() {
		return errors.New("invalid JSON body: unexpected data after the JSON object")
	}
	return nil
}

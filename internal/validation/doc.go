// Crop Advisor - Crop Recommendation and Agronomic Prediction Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cropadvisor

// Package validation validates API request DTOs with go-playground/validator.
//
// A single validator instance is shared process-wide; it caches struct
// metadata and is safe for concurrent use. Errors report JSON field names
// and convert to the VALIDATION_FAILED API error:
//
//	type rankRequest struct {
//	    Region   string `json:"region" validate:"required,notblank,max=64"`
//	    SoilType string `json:"soil_type" validate:"required,notblank,max=64"`
//	}
//
// Validation only checks request shape. Whether a region or soil type is
// known is decided by the recommendation engine, which answers with
// UNKNOWN_CATEGORY.
package validation

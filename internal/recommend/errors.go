// Crop Advisor - Crop Recommendation and Agronomic Prediction Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cropadvisor

package recommend

import (
	"errors"

	"github.com/tomtom215/cropadvisor/internal/recommend/features"
	"github.com/tomtom215/cropadvisor/internal/recommend/fertilizer"
)

// Sentinel errors returned by the engine. Match them with errors.Is.
var (
	// ErrUnknownCategory is returned when region, soil type or crop is outside
	// the trained vocabulary. The wrapped *UnknownCategoryError names the field.
	ErrUnknownCategory = features.ErrUnknownCategory

	// ErrModelUnavailable is returned when a predictor was not loaded.
	ErrModelUnavailable = errors.New("model unavailable")

	// ErrNoRuleMatch is logged when no fertilizer rule applied and the
	// default recommendation was served. It never reaches callers.
	ErrNoRuleMatch = fertilizer.ErrNoRuleMatch
)

// UnknownCategoryError names the rejected field and value.
type UnknownCategoryError = features.UnknownCategoryError

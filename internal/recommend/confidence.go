// Crop Advisor - Crop Recommendation and Agronomic Prediction Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cropadvisor

package recommend

import "math"

// Display confidence bounds.
const (
	MinDisplayConfidence = 40.0
	MaxDisplayConfidence = 90.0
)

// ReshapeConfidence maps a raw classifier percentage onto the 40-90 display
// band. The first matching breakpoint from the top applies:
//
//	>= 25  min(90, 60 + (p-10)*1.5)
//	>= 20  min(85, 55 + (p-10)*2.0)
//	>= 15  min(75, 50 + (p-10)*2.5)
//	>= 10  min(65, 45 + (p-10)*3.0)
//	else   max(40, p*4)
//
// Inputs outside [0, 100] are clamped first. This is a display policy, not a
// calibrated probability.
func ReshapeConfidence(rawPercent float64) float64 {
	p := rawPercent
	switch {
	case math.IsNaN(p), p < 0:
		p = 0
	case p > 100:
		p = 100
	}

	switch {
	case p >= 25:
		return math.Min(90, 60+(p-10)*1.5)
	case p >= 20:
		return math.Min(85, 55+(p-10)*2.0)
	case p >= 15:
		return math.Min(75, 50+(p-10)*2.5)
	case p >= 10:
		return math.Min(65, 45+(p-10)*3.0)
	default:
		return math.Max(40, p*4)
	}
}

// DisplayConfidence reshapes a raw classifier probability and rounds it to
// one decimal place.
func DisplayConfidence(rawScore float64) float64 {
	return math.Round(ReshapeConfidence(rawScore*100)*10) / 10
}

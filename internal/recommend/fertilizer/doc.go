// Crop Advisor - Crop Recommendation and Agronomic Prediction Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cropadvisor

// Package fertilizer maps a soil type, crop and predicted nutrient profile to
// a fertilizer recommendation using a fixed rule table. No inference runs
// here; lookups are deterministic.
package fertilizer

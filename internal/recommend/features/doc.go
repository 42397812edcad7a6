// Crop Advisor - Crop Recommendation and Agronomic Prediction Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cropadvisor

// Package features holds the vocabulary table shared by every model and the
// encoder that turns categorical inputs into feature vectors.
//
// Crop classifier vectors are laid out as
//
//	[ region one-hot | soil one-hot | climate zone one-hot | soil fertility ]
//
// and agronomic regressor vectors as
//
//	[ region one-hot | soil one-hot | crop one-hot ]
//
// Columns within each one-hot block follow the sorted category order. Inputs
// outside the vocabulary are rejected with an UnknownCategoryError before a
// vector is produced.
package features

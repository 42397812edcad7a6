// Crop Advisor - Crop Recommendation and Agronomic Prediction Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cropadvisor

// Package artifact loads the files produced by the offline trainer.
//
// An artifact directory contains:
//
//	meta.json                 model version and regression target order
//	vocabulary.json           regions, soil types, crops, engineered tables
//	crop_classifier.json      classifier labels and dense layers
//	agronomic_regressor.json  regressor dense layers
//	fertilizer_rules.yaml     optional fertilizer rule table
//
// Load checks that all files agree on the vocabulary and on feature and
// output widths, then returns an immutable Bundle. Nothing is re-validated
// per request.
package artifact

// Crop Advisor - Crop Recommendation and Agronomic Prediction Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cropadvisor

// Package models evaluates the trained predictors.
//
// Both predictors are dense feed-forward networks exported by the offline
// trainer. The CropClassifier turns a crop feature vector into a ranked list
// of crop labels. The AgronomicRegressor turns an agronomic feature vector
// into a NutrientProfile and a WaterQualityProfile, split according to the
// Schema stored with the artifact.
//
// Networks, classifiers and regressors are immutable once constructed and
// are safe for concurrent use.
package models

// Crop Advisor - Crop Recommendation and Agronomic Prediction Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cropadvisor

// Package recommend implements the crop recommendation and agronomic
// prediction engine.
//
// # Architecture
//
// The engine turns two categorical inputs into ranked crop advice:
//
//   - Feature Encoder (package features): vocabulary check and one-hot encoding
//   - Crop Classifier (package models): one probability per crop label
//   - Agronomic Regressor (package models): nutrient and water quality outputs
//   - Fertilizer Rule Mapper (package fertilizer): table-driven advice
//
// Data flows one way: input, encoder, classifier, ranked list, then for each
// of the top K crops the encoder, regressor and fertilizer mapper.
//
// # Confidence
//
// Raw classifier probabilities cluster near 0.15-0.25 when many crops are
// known. ReshapeConfidence spreads them into a 40-90 display band with fixed
// breakpoints at 10, 15, 20 and 25 percent. The result is a display policy;
// it carries no probabilistic meaning.
//
// # Usage
//
//	bundle, err := artifact.Load(dir)
//	if err != nil {
//	    return err
//	}
//	engine, err := recommend.NewEngine(recommend.ModelsFromBundle(bundle), cfg, logger)
//
//	rec, err := engine.Recommend(ctx, recommend.Request{
//	    Region:   "Punjab",
//	    SoilType: "Alluvial",
//	})
//
// # Errors
//
// Inputs outside the vocabulary fail with ErrUnknownCategory before any model
// runs. A missing predictor fails NewEngine with ErrModelUnavailable. When no
// fertilizer rule applies the default recommendation is served and the miss
// is logged and counted. In Recommend, a candidate whose prediction fails is
// dropped and listed in Diagnostics.
//
// # Thread Safety
//
// The engine and the predictors it holds are immutable after construction.
// Requests share them without locking. Per-candidate work in Recommend fans
// out to at most K goroutines.
package recommend

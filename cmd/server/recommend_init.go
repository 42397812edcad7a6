// Crop Advisor - Crop Recommendation and Agronomic Prediction Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cropadvisor

package main

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tomtom215/cropadvisor/internal/config"
	"github.com/tomtom215/cropadvisor/internal/metrics"
	"github.com/tomtom215/cropadvisor/internal/recommend"
	"github.com/tomtom215/cropadvisor/internal/recommend/artifact"
)

// RecommendComponents holds the loaded artifacts and the engine built on them.
type RecommendComponents struct {
	Bundle *artifact.Bundle
	Engine *recommend.Engine
}

// initRecommend loads the artifacts and builds the engine. The server does
// not start without them.
//
//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func initRecommend(cfg *config.Config, logger zerolog.Logger) (*RecommendComponents, error) {
	logger.Info().Str("artifact_dir", cfg.Recommend.ArtifactDir).Msg("loading model artifacts")

	bundle, err := artifact.Load(cfg.Recommend.ArtifactDir)
	if err != nil {
		return nil, fmt.Errorf("load artifacts: %w", err)
	}
	metrics.SetArtifactsLoaded(bundle.Meta.ModelVersion, bundle.RulesSource)

	logger.Info().
		Str("model_version", bundle.Meta.ModelVersion).
		Str("rules_source", bundle.RulesSource).
		Int("regions", len(bundle.Vocabulary.Regions())).
		Int("soil_types", len(bundle.Vocabulary.SoilTypes())).
		Int("crops", len(bundle.Vocabulary.Crops())).
		Msg("model artifacts loaded")

	engine, err := recommend.NewEngine(recommend.ModelsFromBundle(bundle), buildEngineConfig(cfg), logger)
	if err != nil {
		return nil, fmt.Errorf("create engine: %w", err)
	}
	engine.SetObserver(metrics.NewRecommendObserver())

	return &RecommendComponents{Bundle: bundle, Engine: engine}, nil
}

// buildEngineConfig maps the application configuration onto the engine's.
func buildEngineConfig(cfg *config.Config) *recommend.Config {
	ec := recommend.DefaultConfig()
	ec.Limits.DefaultK = cfg.Recommend.DefaultK
	ec.Limits.MaxK = cfg.Recommend.MaxK
	ec.LogFertilizerFallbacks = cfg.Recommend.LogFertilizerFallbacks
	return ec
}

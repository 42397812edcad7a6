// Crop Advisor - Crop Recommendation and Agronomic Prediction Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cropadvisor

package artifact

import (
	"time"

	"github.com/tomtom215/cropadvisor/internal/recommend/models"
)

// Status summarizes what was loaded.
type Status struct {
	ModelVersion       string    `json:"model_version"`
	TrainedAt          time.Time `json:"trained_at"`
	LoadedAt           time.Time `json:"loaded_at"`
	ClassifierLoaded   bool      `json:"crop_classifier_loaded"`
	RegressorLoaded    bool      `json:"agronomic_regressor_loaded"`
	VocabularyLoaded   bool      `json:"vocabulary_loaded"`
	FertilizerRules    string    `json:"fertilizer_rules"`
	DefaultFertilizer  string    `json:"default_fertilizer,omitempty"`
	CropLabels         int       `json:"crop_labels"`
	CropFeatures       int       `json:"crop_features"`
	AgronomicFeatures  int       `json:"agronomic_features"`
	NutrientTargets    []string  `json:"nutrient_targets"`
	WaterQualityTarget []string  `json:"water_quality_targets"`
}

// Status reports the loaded artifacts. A nil bundle reports nothing loaded.
func (b *Bundle) Status() Status {
	if b == nil {
		return Status{}
	}

	s := Status{
		ModelVersion:     b.Meta.ModelVersion,
		TrainedAt:        b.Meta.TrainedAt,
		LoadedAt:         b.LoadedAt,
		ClassifierLoaded: b.Classifier != nil,
		RegressorLoaded:  b.Regressor != nil,
		VocabularyLoaded: b.Vocabulary != nil,
		FertilizerRules:  b.RulesSource,
	}
	if b.Vocabulary != nil {
		s.CropLabels = len(b.Vocabulary.Crops())
		s.CropFeatures = b.Vocabulary.CropFeatureWidth()
		s.AgronomicFeatures = b.Vocabulary.AgronomicFeatureWidth()
	}
	if b.Fertilizer != nil {
		s.DefaultFertilizer = b.Fertilizer.Default().Text
	}
	if b.Regressor != nil {
		schema := b.Regressor.Schema()
		s.NutrientTargets = schema.Names(models.GroupNutrient)
		s.WaterQualityTarget = schema.Names(models.GroupWater)
	}
	return s
}

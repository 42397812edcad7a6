// Crop Advisor - Crop Recommendation and Agronomic Prediction Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cropadvisor

package fertilizer

import (
	"errors"
	"fmt"
)

// ErrInvalidRules is returned when a rule set cannot be used.
var ErrInvalidRules = errors.New("invalid fertilizer rules")

// SoilCropRule advises fertilizers for one soil type and crop.
type SoilCropRule struct {
	Soil        string   `koanf:"soil" json:"soil"`
	Crop        string   `koanf:"crop" json:"crop"`
	Fertilizers []string `koanf:"fertilizers" json:"fertilizers"`
}

// SoilRule advises fertilizers for a soil type regardless of crop.
type SoilRule struct {
	Soil        string   `koanf:"soil" json:"soil"`
	Fertilizers []string `koanf:"fertilizers" json:"fertilizers"`
}

// ThresholdRule adds Fertilizer when the named nutrient is predicted below
// Below. Nutrient matches either the full output name ("P₂O₅ (kg/ha)") or
// its symbol ("P₂O₅").
type ThresholdRule struct {
	Nutrient   string  `koanf:"nutrient" json:"nutrient"`
	Below      float64 `koanf:"below" json:"below"`
	Fertilizer string  `koanf:"fertilizer" json:"fertilizer"`
}

// RuleSet is the complete fertilizer table.
type RuleSet struct {
	Default    []string        `koanf:"default" json:"default"`
	SoilCrop   []SoilCropRule  `koanf:"soil_crop" json:"soil_crop"`
	Soil       []SoilRule      `koanf:"soil" json:"soil"`
	Thresholds []ThresholdRule `koanf:"thresholds" json:"thresholds"`
}

// DefaultRuleSet returns the built-in table used when the artifact directory
// carries no rule file.
func DefaultRuleSet() *RuleSet {
	return &RuleSet{
		Default: []string{"Balanced NPK (10-26-26)", "Farmyard Manure"},
		SoilCrop: []SoilCropRule{
			{Soil: "Alluvial", Crop: "Wheat", Fertilizers: []string{"Urea", "DAP"}},
			{Soil: "Alluvial", Crop: "Rice", Fertilizers: []string{"Urea", "DAP", "Zinc Sulphate"}},
			{Soil: "Alluvial", Crop: "Sugarcane", Fertilizers: []string{"Urea", "Muriate of Potash"}},
			{Soil: "Black", Crop: "Cotton", Fertilizers: []string{"Urea", "Single Superphosphate", "Muriate of Potash"}},
			{Soil: "Black", Crop: "Soybean", Fertilizers: []string{"Single Superphosphate", "Gypsum"}},
			{Soil: "Red", Crop: "Groundnut", Fertilizers: []string{"Gypsum", "Single Superphosphate"}},
			{Soil: "Loamy", Crop: "Maize", Fertilizers: []string{"Urea", "DAP"}},
			{Soil: "Laterite", Crop: "Tea", Fertilizers: []string{"Ammonium Sulphate", "Muriate of Potash"}},
			{Soil: "Sandy", Crop: "Millet", Fertilizers: []string{"Farmyard Manure", "Urea"}},
		},
		Soil: []SoilRule{
			{Soil: "Alluvial", Fertilizers: []string{"NPK (12-32-16)"}},
			{Soil: "Black", Fertilizers: []string{"Single Superphosphate"}},
			{Soil: "Red", Fertilizers: []string{"NPK (17-17-17)", "Lime"}},
			{Soil: "Laterite", Fertilizers: []string{"Rock Phosphate", "Lime"}},
			{Soil: "Sandy", Fertilizers: []string{"Farmyard Manure", "NPK (19-19-19)"}},
			{Soil: "Saline", Fertilizers: []string{"Gypsum"}},
			{Soil: "Peaty", Fertilizers: []string{"Lime", "Muriate of Potash"}},
		},
		Thresholds: []ThresholdRule{
			{Nutrient: "N", Below: 80, Fertilizer: "Urea"},
			{Nutrient: "P₂O₅", Below: 40, Fertilizer: "Superphosphate"},
			{Nutrient: "K₂O", Below: 40, Fertilizer: "Muriate of Potash"},
			{Nutrient: "Zn", Below: 5, Fertilizer: "Zinc Sulphate"},
			{Nutrient: "S", Below: 20, Fertilizer: "Gypsum"},
		},
	}
}

// Validate checks that every rule names what it applies to and advises at
// least one fertilizer.
func (r *RuleSet) Validate() error {
	if len(r.Default) == 0 {
		return fmt.Errorf("%w: default recommendation is empty", ErrInvalidRules)
	}
	for i, rule := range r.SoilCrop {
		if rule.Soil == "" || rule.Crop == "" {
			return fmt.Errorf("%w: soil_crop[%d] needs soil and crop", ErrInvalidRules, i)
		}
		if len(rule.Fertilizers) == 0 {
			return fmt.Errorf("%w: soil_crop[%d] has no fertilizers", ErrInvalidRules, i)
		}
	}
	for i, rule := range r.Soil {
		if rule.Soil == "" {
			return fmt.Errorf("%w: soil[%d] needs soil", ErrInvalidRules, i)
		}
		if len(rule.Fertilizers) == 0 {
			return fmt.Errorf("%w: soil[%d] has no fertilizers", ErrInvalidRules, i)
		}
	}
	for i, rule := range r.Thresholds {
		if rule.Nutrient == "" || rule.Fertilizer == "" {
			return fmt.Errorf("%w: thresholds[%d] needs nutrient and fertilizer", ErrInvalidRules, i)
		}
	}
	return nil
}

// Crop Advisor - Crop Recommendation and Agronomic Prediction Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cropadvisor

package fertilizer

import (
	"fmt"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// LoadRules reads a rule set from a YAML file:
//
//	default: [Balanced NPK (10-26-26)]
//	soil_crop:
//	  - {soil: Alluvial, crop: Wheat, fertilizers: [Urea, DAP]}
//	soil:
//	  - {soil: Black, fertilizers: [Single Superphosphate]}
//	thresholds:
//	  - {nutrient: P₂O₅, below: 40, fertilizer: Superphosphate}
//
// A file that omits the default list inherits the built-in default.
func LoadRules(path string) (*RuleSet, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("failed to load fertilizer rules %s: %w", path, err)
	}

	rules := &RuleSet{}
	if err := k.Unmarshal("", rules); err != nil {
		return nil, fmt.Errorf("failed to unmarshal fertilizer rules: %w", err)
	}
	if len(rules.Default) == 0 {
		rules.Default = DefaultRuleSet().Default
	}
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	return rules, nil
}

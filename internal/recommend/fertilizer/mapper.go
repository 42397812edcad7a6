// Crop Advisor - Crop Recommendation and Agronomic Prediction Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cropadvisor

package fertilizer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tomtom215/cropadvisor/internal/recommend/models"
)

// ErrNoRuleMatch is returned alongside the default recommendation when no
// rule applies.
var ErrNoRuleMatch = errors.New("no fertilizer rule matched")

// Rule kinds reported in Recommendation.Rule.
const (
	RuleSoilCrop  = "soil_crop"
	RuleSoil      = "soil"
	RuleThreshold = "threshold"
	RuleDefault   = "default"
)

// Recommendation is the advised fertilizer list for one crop.
type Recommendation struct {
	Fertilizers []string `json:"fertilizers"`
	Text        string   `json:"text"`
	Matched     bool     `json:"matched"`
	Rule        string   `json:"rule"`
}

type soilCropKey struct {
	soil string
	crop string
}

// Mapper applies a RuleSet. It is immutable and safe for concurrent use.
type Mapper struct {
	defaults   []string
	soilCrop   map[soilCropKey][]string
	soil       map[string][]string
	thresholds []ThresholdRule
}

// NewMapper indexes rules for lookup. Later entries for the same soil (and
// crop) replace earlier ones.
func NewMapper(rules *RuleSet) (*Mapper, error) {
	if rules == nil {
		rules = DefaultRuleSet()
	}
	if err := rules.Validate(); err != nil {
		return nil, err
	}

	m := &Mapper{
		defaults:   append([]string(nil), rules.Default...),
		soilCrop:   make(map[soilCropKey][]string, len(rules.SoilCrop)),
		soil:       make(map[string][]string, len(rules.Soil)),
		thresholds: append([]ThresholdRule(nil), rules.Thresholds...),
	}
	for _, r := range rules.SoilCrop {
		m.soilCrop[soilCropKey{r.Soil, r.Crop}] = append([]string(nil), r.Fertilizers...)
	}
	for _, r := range rules.Soil {
		m.soil[r.Soil] = append([]string(nil), r.Fertilizers...)
	}
	return m, nil
}

// Map returns the fertilizers advised for soilType and crop given the
// predicted nutrients. The soil and crop entry is preferred, then the
// soil-only entry; threshold rules then append supplements for nutrients
// predicted below their limit. If nothing applies Map returns the default
// recommendation together with ErrNoRuleMatch.
func (m *Mapper) Map(soilType, crop string, nutrients models.NutrientProfile) (Recommendation, error) {
	var list []string
	rule := ""

	if base, ok := m.soilCrop[soilCropKey{soilType, crop}]; ok {
		list = append(list, base...)
		rule = RuleSoilCrop
	} else if base, ok := m.soil[soilType]; ok {
		list = append(list, base...)
		rule = RuleSoil
	}

	for _, t := range m.thresholds {
		value, ok := nutrientValue(nutrients, t.Nutrient)
		if !ok || value >= t.Below {
			continue
		}
		list = append(list, t.Fertilizer)
		if rule == "" {
			rule = RuleThreshold
		}
	}

	if len(list) == 0 {
		rec := newRecommendation(m.defaults, false, RuleDefault)
		return rec, fmt.Errorf("%w: soil %q crop %q", ErrNoRuleMatch, soilType, crop)
	}
	return newRecommendation(list, true, rule), nil
}

// Default returns the fallback recommendation.
func (m *Mapper) Default() Recommendation {
	return newRecommendation(m.defaults, false, RuleDefault)
}

func newRecommendation(list []string, matched bool, rule string) Recommendation {
	names := dedupe(list)
	return Recommendation{
		Fertilizers: names,
		Text:        strings.Join(names, ", "),
		Matched:     matched,
		Rule:        rule,
	}
}

func dedupe(list []string) []string {
	seen := make(map[string]struct{}, len(list))
	out := make([]string, 0, len(list))
	for _, name := range list {
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}

// nutrientValue finds a measurement by full name or by the symbol that
// precedes the unit, so "N" matches "N (kg/ha)".
func nutrientValue(p models.NutrientProfile, name string) (float64, bool) {
	if v, ok := p.Get(name); ok {
		return v, true
	}
	for _, m := range p {
		if symbol(m.Name) == name {
			return m.Value, true
		}
	}
	return 0, false
}

func symbol(name string) string {
	if i := strings.IndexByte(name, ' '); i > 0 {
		return name[:i]
	}
	return name
}

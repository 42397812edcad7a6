// Crop Advisor - Crop Recommendation and Agronomic Prediction Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cropadvisor

package features

import (
	"errors"
	"fmt"
	"sort"
)

// DefaultClimateZone is the climate zone assumed for a region without an
// explicit mapping.
const DefaultClimateZone = "Tropical"

// DefaultSoilFertility is the fertility score assumed for a soil type without
// an explicit mapping.
const DefaultSoilFertility = 3.0

// DefaultRegionClimate maps each known region to its climate zone. It is used
// when the vocabulary artifact does not carry its own table.
var DefaultRegionClimate = map[string]string{
	"Punjab":         "Semi-Arid",
	"Haryana":        "Semi-Arid",
	"Rajasthan":      "Arid",
	"Gujarat":        "Semi-Arid",
	"Maharashtra":    "Tropical",
	"Madhya Pradesh": "Tropical",
	"Bihar":          "Humid",
	"Uttar Pradesh":  "Humid",
	"Kerala":         "Tropical",
	"Tamil Nadu":     "Tropical",
}

// DefaultSoilFertilityScores maps each known soil type to a fertility score
// on a 1-5 scale.
var DefaultSoilFertilityScores = map[string]float64{
	"Alluvial": 5,
	"Black":    4,
	"Red":      3,
	"Loamy":    5,
	"Clay":     3,
	"Sandy":    2,
	"Laterite": 2,
	"Peaty":    4,
	"Chalky":   3,
	"Saline":   1,
}

// ErrInvalidVocabulary is returned when a vocabulary definition is unusable.
var ErrInvalidVocabulary = errors.New("invalid vocabulary")

// Definition is the serialized form of a vocabulary table as produced by the
// offline trainer.
type Definition struct {
	Regions   []string `json:"regions"`
	SoilTypes []string `json:"soil_types"`
	Crops     []string `json:"crops"`

	// RegionClimate and SoilFertility are optional; the defaults above
	// are used for any missing table.
	RegionClimate        map[string]string  `json:"climate_zones,omitempty"`
	SoilFertility        map[string]float64 `json:"soil_fertility,omitempty"`
	DefaultClimateZone   string             `json:"default_climate_zone,omitempty"`
	DefaultSoilFertility *float64           `json:"default_soil_fertility,omitempty"`
}

// Vocabulary is the fixed enumeration of categories the models were trained
// on. Category index is the position in the sorted list, matching the
// one-hot column order used at training time. A Vocabulary is immutable
// after construction and safe for concurrent use.
type Vocabulary struct {
	regions      []string
	soilTypes    []string
	crops        []string
	climateZones []string

	regionIndex  map[string]int
	soilIndex    map[string]int
	cropIndex    map[string]int
	climateIndex map[string]int

	regionClimate    map[string]string
	soilFertility    map[string]float64
	defaultClimate   string
	defaultFertility float64
}

// NewVocabulary builds a Vocabulary from its definition. Category lists are
// sorted and must be non-empty and free of duplicates.
//
//nolint:gocritic // hugeParam: def passed by value, it is copied into the vocabulary
func NewVocabulary(def Definition) (*Vocabulary, error) {
	regions, err := sortedCategories("regions", def.Regions)
	if err != nil {
		return nil, err
	}
	soils, err := sortedCategories("soil_types", def.SoilTypes)
	if err != nil {
		return nil, err
	}
	crops, err := sortedCategories("crops", def.Crops)
	if err != nil {
		return nil, err
	}

	v := &Vocabulary{
		regions:          regions,
		soilTypes:        soils,
		crops:            crops,
		regionIndex:      indexOf(regions),
		soilIndex:        indexOf(soils),
		cropIndex:        indexOf(crops),
		regionClimate:    make(map[string]string),
		soilFertility:    make(map[string]float64),
		defaultClimate:   DefaultClimateZone,
		defaultFertility: DefaultSoilFertility,
	}

	if def.DefaultClimateZone != "" {
		v.defaultClimate = def.DefaultClimateZone
	}
	if def.DefaultSoilFertility != nil {
		v.defaultFertility = *def.DefaultSoilFertility
	}

	climates := def.RegionClimate
	if len(climates) == 0 {
		climates = DefaultRegionClimate
	}
	for region, zone := range climates {
		if zone == "" {
			return nil, fmt.Errorf("%w: empty climate zone for region %q", ErrInvalidVocabulary, region)
		}
		v.regionClimate[region] = zone
	}

	fertility := def.SoilFertility
	if len(fertility) == 0 {
		fertility = DefaultSoilFertilityScores
	}
	for soil, score := range fertility {
		v.soilFertility[soil] = score
	}

	// Climate zone categories are the zones reachable from the known regions.
	zoneSet := make(map[string]struct{})
	for _, region := range regions {
		zoneSet[v.ClimateZone(region)] = struct{}{}
	}
	v.climateZones = make([]string, 0, len(zoneSet))
	for zone := range zoneSet {
		v.climateZones = append(v.climateZones, zone)
	}
	sort.Strings(v.climateZones)
	v.climateIndex = indexOf(v.climateZones)

	return v, nil
}

func sortedCategories(field string, values []string) ([]string, error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("%w: %s is empty", ErrInvalidVocabulary, field)
	}
	out := make([]string, len(values))
	copy(out, values)
	sort.Strings(out)
	for i, v := range out {
		if v == "" {
			return nil, fmt.Errorf("%w: %s contains an empty value", ErrInvalidVocabulary, field)
		}
		if i > 0 && out[i-1] == v {
			return nil, fmt.Errorf("%w: %s contains duplicate %q", ErrInvalidVocabulary, field, v)
		}
	}
	return out, nil
}

func indexOf(values []string) map[string]int {
	idx := make(map[string]int, len(values))
	for i, v := range values {
		idx[v] = i
	}
	return idx
}

// Regions returns the sorted region categories.
func (v *Vocabulary) Regions() []string { return cloneStrings(v.regions) }

// SoilTypes returns the sorted soil type categories.
func (v *Vocabulary) SoilTypes() []string { return cloneStrings(v.soilTypes) }

// Crops returns the sorted crop labels.
func (v *Vocabulary) Crops() []string { return cloneStrings(v.crops) }

// ClimateZones returns the sorted climate zone categories.
func (v *Vocabulary) ClimateZones() []string { return cloneStrings(v.climateZones) }

// HasRegion reports whether region is a known category.
func (v *Vocabulary) HasRegion(region string) bool {
	_, ok := v.regionIndex[region]
	return ok
}

// HasSoilType reports whether soilType is a known category.
func (v *Vocabulary) HasSoilType(soilType string) bool {
	_, ok := v.soilIndex[soilType]
	return ok
}

// HasCrop reports whether crop is a known label.
func (v *Vocabulary) HasCrop(crop string) bool {
	_, ok := v.cropIndex[crop]
	return ok
}

// CropIndex returns the position of crop in the label list.
func (v *Vocabulary) CropIndex(crop string) (int, bool) {
	i, ok := v.cropIndex[crop]
	return i, ok
}

// ClimateZone returns the engineered climate zone for region.
func (v *Vocabulary) ClimateZone(region string) string {
	if zone, ok := v.regionClimate[region]; ok {
		return zone
	}
	return v.defaultClimate
}

// SoilFertility returns the engineered fertility score for soilType.
func (v *Vocabulary) SoilFertility(soilType string) float64 {
	if score, ok := v.soilFertility[soilType]; ok {
		return score
	}
	return v.defaultFertility
}

// CropFeatureWidth is the length of vectors produced by Encoder.EncodeCrop.
func (v *Vocabulary) CropFeatureWidth() int {
	return len(v.regions) + len(v.soilTypes) + len(v.climateZones) + 1
}

// AgronomicFeatureWidth is the length of vectors produced by
// Encoder.EncodeAgronomic.
func (v *Vocabulary) AgronomicFeatureWidth() int {
	return len(v.regions) + len(v.soilTypes) + len(v.crops)
}

func cloneStrings(s []string) []string {
	out := make([]string, len(s))
	copy(out, s)
	return out
}

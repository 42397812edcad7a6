// Crop Advisor - Crop Recommendation and Agronomic Prediction Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cropadvisor

package features

import (
	"errors"
	"fmt"
)

// Field names reported by UnknownCategoryError.
const (
	FieldRegion   = "region"
	FieldSoilType = "soil_type"
	FieldCrop     = "crop"
)

// ErrUnknownCategory is matched by every UnknownCategoryError.
var ErrUnknownCategory = errors.New("unknown category")

// UnknownCategoryError reports an input value outside the trained vocabulary.
type UnknownCategoryError struct {
	Field string
	Value string
}

func (e *UnknownCategoryError) Error() string {
	return fmt.Sprintf("unknown %s %q", e.Field, e.Value)
}

// Unwrap allows errors.Is(err, ErrUnknownCategory).
func (e *UnknownCategoryError) Unwrap() error {
	return ErrUnknownCategory
}

// Input is the categorical pair every prediction starts from.
type Input struct {
	Region   string
	SoilType string
}

// Encoder turns categorical inputs into model feature vectors. It is a pure
// function of its input and the vocabulary.
type Encoder struct {
	vocab *Vocabulary
}

// NewEncoder creates an encoder over vocab.
func NewEncoder(vocab *Vocabulary) *Encoder {
	return &Encoder{vocab: vocab}
}

// Vocabulary returns the table the encoder reads from.
func (e *Encoder) Vocabulary() *Vocabulary {
	return e.vocab
}

// Validate checks region and soil type against the vocabulary.
func (e *Encoder) Validate(in Input) error {
	if !e.vocab.HasRegion(in.Region) {
		return &UnknownCategoryError{Field: FieldRegion, Value: in.Region}
	}
	if !e.vocab.HasSoilType(in.SoilType) {
		return &UnknownCategoryError{Field: FieldSoilType, Value: in.SoilType}
	}
	return nil
}

// EncodeCrop builds the classifier input: one-hot region, one-hot soil type,
// one-hot climate zone, then the numeric soil fertility score.
func (e *Encoder) EncodeCrop(in Input) ([]float64, error) {
	if err := e.Validate(in); err != nil {
		return nil, err
	}

	v := e.vocab
	out := make([]float64, v.CropFeatureWidth())
	offset := 0

	out[offset+v.regionIndex[in.Region]] = 1
	offset += len(v.regions)

	out[offset+v.soilIndex[in.SoilType]] = 1
	offset += len(v.soilTypes)

	// Zones are derived from the region table so the lookup always hits.
	out[offset+v.climateIndex[v.ClimateZone(in.Region)]] = 1
	offset += len(v.climateZones)

	out[offset] = v.SoilFertility(in.SoilType)
	return out, nil
}

// EncodeAgronomic builds the regressor input: one-hot region, soil type and
// crop name.
func (e *Encoder) EncodeAgronomic(in Input, crop string) ([]float64, error) {
	if err := e.Validate(in); err != nil {
		return nil, err
	}
	cropIdx, ok := e.vocab.CropIndex(crop)
	if !ok {
		return nil, &UnknownCategoryError{Field: FieldCrop, Value: crop}
	}

	v := e.vocab
	out := make([]float64, v.AgronomicFeatureWidth())
	out[v.regionIndex[in.Region]] = 1
	out[len(v.regions)+v.soilIndex[in.SoilType]] = 1
	out[len(v.regions)+len(v.soilTypes)+cropIdx] = 1
	return out, nil
}

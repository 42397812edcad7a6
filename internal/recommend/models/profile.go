// Crop Advisor - Crop Recommendation and Agronomic Prediction Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cropadvisor

package models

import (
	"bytes"

	"github.com/goccy/go-json"
)

// Measurement is a single named model output.
type Measurement struct {
	Name  string
	Value float64
}

// NutrientProfile holds nutrient quantities in kg/ha, in schema order.
type NutrientProfile []Measurement

// WaterQualityProfile holds water quality parameters in schema order.
type WaterQualityProfile []Measurement

// Get returns the value for name.
func (p NutrientProfile) Get(name string) (float64, bool) {
	return lookup(p, name)
}

// MarshalJSON encodes the profile as an object whose keys keep schema order.
func (p NutrientProfile) MarshalJSON() ([]byte, error) {
	return marshalOrdered(p)
}

// Get returns the value for name.
func (p WaterQualityProfile) Get(name string) (float64, bool) {
	return lookup(p, name)
}

// MarshalJSON encodes the profile as an object whose keys keep schema order.
func (p WaterQualityProfile) MarshalJSON() ([]byte, error) {
	return marshalOrdered(p)
}

func lookup(ms []Measurement, name string) (float64, bool) {
	for _, m := range ms {
		if m.Name == name {
			return m.Value, true
		}
	}
	return 0, false
}

func marshalOrdered(ms []Measurement) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, m := range ms {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(m.Name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(m.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

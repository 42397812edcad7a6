// Crop Advisor - Crop Recommendation and Agronomic Prediction Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cropadvisor

package models

import (
	"errors"
	"fmt"
)

// TargetGroup says which profile a regression output belongs to.
type TargetGroup string

const (
	GroupNutrient TargetGroup = "nutrient"
	GroupWater    TargetGroup = "water"
)

// ErrInvalidSchema is returned when an output schema cannot be used.
var ErrInvalidSchema = errors.New("invalid output schema")

// DisplayNames maps trained target names to the names shown to users.
// Targets absent from the map keep their trained name.
var DisplayNames = map[string]string{
	"Recommended pH":  "pH",
	"Water Temp (°C)": "Water Temperature (°C)",
}

// Target is one position in the regressor's output vector.
type Target struct {
	Name    string      `json:"name"`
	Display string      `json:"display"`
	Group   TargetGroup `json:"group"`
}

// Schema is the ordered list of regression outputs.
type Schema struct {
	Targets []Target `json:"targets"`
}

// NewSchema builds a schema from the trainer's metadata: the full target
// order plus the names belonging to the nutrient and water groups. Every
// target must belong to exactly one group.
func NewSchema(targets, nutrients, water []string) (Schema, error) {
	if len(targets) == 0 {
		return Schema{}, fmt.Errorf("%w: no targets", ErrInvalidSchema)
	}

	group := make(map[string]TargetGroup, len(targets))
	for _, n := range nutrients {
		group[n] = GroupNutrient
	}
	for _, w := range water {
		if _, dup := group[w]; dup {
			return Schema{}, fmt.Errorf("%w: target %q is in both groups", ErrInvalidSchema, w)
		}
		group[w] = GroupWater
	}

	s := Schema{Targets: make([]Target, 0, len(targets))}
	seen := make(map[string]struct{}, len(targets))
	for _, name := range targets {
		if _, dup := seen[name]; dup {
			return Schema{}, fmt.Errorf("%w: duplicate target %q", ErrInvalidSchema, name)
		}
		seen[name] = struct{}{}

		g, ok := group[name]
		if !ok {
			return Schema{}, fmt.Errorf("%w: target %q has no group", ErrInvalidSchema, name)
		}
		display := name
		if d, ok := DisplayNames[name]; ok {
			display = d
		}
		s.Targets = append(s.Targets, Target{Name: name, Display: display, Group: g})
	}
	if len(nutrients)+len(water) != len(targets) {
		return Schema{}, fmt.Errorf("%w: %d grouped names for %d targets", ErrInvalidSchema, len(nutrients)+len(water), len(targets))
	}
	return s, nil
}

// Names returns the display names of targets in group, in output order.
func (s Schema) Names(group TargetGroup) []string {
	var out []string
	for _, t := range s.Targets {
		if t.Group == group {
			out = append(out, t.Display)
		}
	}
	return out
}

// AgronomicRegressor predicts nutrient and water quality profiles for an
// encoded (region, soil type, crop) vector.
type AgronomicRegressor struct {
	schema Schema
	net    *Network
}

// NewAgronomicRegressor pairs a network with its output schema.
func NewAgronomicRegressor(schema Schema, net *Network) (*AgronomicRegressor, error) {
	if net == nil {
		return nil, fmt.Errorf("%w: regressor network is nil", ErrInvalidNetwork)
	}
	if err := net.Validate(); err != nil {
		return nil, fmt.Errorf("agronomic regressor: %w", err)
	}
	if got := net.OutputWidth(); got != len(schema.Targets) {
		return nil, fmt.Errorf("%w: regressor outputs %d values for %d targets", ErrInvalidSchema, got, len(schema.Targets))
	}
	return &AgronomicRegressor{schema: schema, net: net}, nil
}

// Schema returns the output schema.
func (r *AgronomicRegressor) Schema() Schema {
	return r.schema
}

// InputWidth returns the expected feature vector length.
func (r *AgronomicRegressor) InputWidth() int {
	return r.net.InputWidth()
}

// Predict runs one inference and splits the output by schema. Values are
// returned as produced by the model, without range clamping.
func (r *AgronomicRegressor) Predict(features []float64) (NutrientProfile, WaterQualityProfile, error) {
	out, err := r.net.Forward(features)
	if err != nil {
		return nil, nil, fmt.Errorf("agronomic regressor: %w", err)
	}

	var nutrients NutrientProfile
	var water WaterQualityProfile
	for i, t := range r.schema.Targets {
		m := Measurement{Name: t.Display, Value: out[i]}
		if t.Group == GroupNutrient {
			nutrients = append(nutrients, m)
		} else {
			water = append(water, m)
		}
	}
	return nutrients, water, nil
}

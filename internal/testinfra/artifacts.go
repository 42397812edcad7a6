// Crop Advisor - Crop Recommendation and Agronomic Prediction Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cropadvisor

package testinfra

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/cropadvisor/internal/recommend/artifact"
	"github.com/tomtom215/cropadvisor/internal/recommend/features"
	"github.com/tomtom215/cropadvisor/internal/recommend/models"
)

// Regression target names as written by the trainer.
var (
	NutrientTargets = []string{"N (kg/ha)", "P₂O₅ (kg/ha)", "K₂O (kg/ha)", "Zn (kg/ha)", "S (kg/ha)"}
	WaterTargets    = []string{"Recommended pH", "Turbidity (NTU)", "Water Temp (°C)"}
)

// ArtifactFixture describes a small but complete artifact directory. The
// classifier returns Probabilities for every input and the regressor returns
// Outputs for every input, so expected values can be computed by hand.
type ArtifactFixture struct {
	ModelVersion  string
	Regions       []string
	SoilTypes     []string
	Crops         []string
	Probabilities map[string]float64
	Outputs       map[string]float64

	// RulesYAML is written as fertilizer_rules.yaml when non-empty.
	RulesYAML string
}

// DefaultArtifactFixture returns a fixture whose top three crops for any
// input are Wheat (0.23), Rice (0.18) and Cotton (0.17).
func DefaultArtifactFixture() *ArtifactFixture {
	regions := make([]string, 0, len(features.DefaultRegionClimate))
	for r := range features.DefaultRegionClimate {
		regions = append(regions, r)
	}
	soils := make([]string, 0, len(features.DefaultSoilFertilityScores))
	for s := range features.DefaultSoilFertilityScores {
		soils = append(soils, s)
	}

	return &ArtifactFixture{
		ModelVersion: "fixture-1",
		Regions:      regions,
		SoilTypes:    soils,
		Crops:        []string{"Wheat", "Rice", "Cotton", "Maize", "Sugarcane", "Millet", "Groundnut", "Soybean", "Pulses"},
		Probabilities: map[string]float64{
			"Wheat":     0.23,
			"Rice":      0.18,
			"Cotton":    0.17,
			"Maize":     0.12,
			"Sugarcane": 0.10,
			"Millet":    0.08,
			"Groundnut": 0.06,
			"Soybean":   0.04,
			"Pulses":    0.02,
		},
		Outputs: map[string]float64{
			"N (kg/ha)":       120,
			"P₂O₅ (kg/ha)":    60,
			"K₂O (kg/ha)":     45,
			"Zn (kg/ha)":      6,
			"S (kg/ha)":       25,
			"Recommended pH":  6.8,
			"Turbidity (NTU)": 4.5,
			"Water Temp (°C)": 24,
		},
	}
}

// Write materializes the fixture into dir.
func (f *ArtifactFixture) Write(dir string) error {
	vocab, err := features.NewVocabulary(features.Definition{
		Regions:   f.Regions,
		SoilTypes: f.SoilTypes,
		Crops:     f.Crops,
	})
	if err != nil {
		return err
	}

	meta := artifact.Meta{
		ModelVersion:      f.ModelVersion,
		TrainedAt:         time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
		Targets:           append(append([]string(nil), NutrientTargets...), WaterTargets...),
		NutrientTargets:   NutrientTargets,
		AdditionalTargets: WaterTargets,
	}
	if err := writeJSON(filepath.Join(dir, artifact.MetaFile), meta); err != nil {
		return err
	}

	def := features.Definition{
		Regions:       f.Regions,
		SoilTypes:     f.SoilTypes,
		Crops:         f.Crops,
		RegionClimate: features.DefaultRegionClimate,
		SoilFertility: features.DefaultSoilFertilityScores,
	}
	if err := writeJSON(filepath.Join(dir, artifact.VocabularyFile), def); err != nil {
		return err
	}

	labels := vocab.Crops()
	probs := make([]float64, len(labels))
	for i, crop := range labels {
		p, ok := f.Probabilities[crop]
		if !ok || p <= 0 {
			return fmt.Errorf("fixture needs a positive probability for %q", crop)
		}
		probs[i] = p
	}
	clf := artifact.ClassifierFileFormat{
		Labels: labels,
		Layers: []models.Layer{ConstantLayer(vocab.CropFeatureWidth(), logs(probs), models.ActivationSoftmax)},
	}
	if err := writeJSON(filepath.Join(dir, artifact.ClassifierFile), clf); err != nil {
		return err
	}

	outputs := make([]float64, 0, len(meta.Targets))
	for _, name := range meta.Targets {
		outputs = append(outputs, f.Outputs[name])
	}
	reg := artifact.RegressorFileFormat{
		Layers: []models.Layer{ConstantLayer(vocab.AgronomicFeatureWidth(), outputs, models.ActivationIdentity)},
	}
	if err := writeJSON(filepath.Join(dir, artifact.RegressorFile), reg); err != nil {
		return err
	}

	if f.RulesYAML != "" {
		path := filepath.Join(dir, artifact.FertilizerRulesFile)
		if err := os.WriteFile(path, []byte(f.RulesYAML), 0o600); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
	}
	return nil
}

// WriteArtifacts writes f into a fresh temporary directory and returns it.
func WriteArtifacts(tb testing.TB, f *ArtifactFixture) string {
	tb.Helper()

	if f == nil {
		f = DefaultArtifactFixture()
	}
	dir := tb.TempDir()
	if err := f.Write(dir); err != nil {
		tb.Fatalf("failed to write artifact fixture: %v", err)
	}
	return dir
}

// ConstantLayer returns a dense layer that ignores its input and emits bias
// through activation.
func ConstantLayer(inputWidth int, bias []float64, activation models.Activation) models.Layer {
	layer := models.Layer{
		Weights:    make([][]float64, len(bias)),
		Bias:       append([]float64(nil), bias...),
		Activation: activation,
	}
	for i := range layer.Weights {
		layer.Weights[i] = make([]float64, inputWidth)
	}
	return layer
}

func logs(p []float64) []float64 {
	out := make([]float64, len(p))
	for i, v := range p {
		out[i] = math.Log(v)
	}
	return out
}

func writeJSON(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

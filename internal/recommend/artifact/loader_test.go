// Crop Advisor - Crop Recommendation and Agronomic Prediction Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cropadvisor

package artifact_test

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-json"

	"github.com/tomtom215/cropadvisor/internal/recommend/artifact"
	"github.com/tomtom215/cropadvisor/internal/recommend/features"
	"github.com/tomtom215/cropadvisor/internal/recommend/fertilizer"
	"github.com/tomtom215/cropadvisor/internal/recommend/models"
	"github.com/tomtom215/cropadvisor/internal/testinfra"
)

func TestLoad(t *testing.T) {
	t.Parallel()

	dir := testinfra.WriteArtifacts(t, nil)
	b, err := artifact.Load(dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if b.RulesSource != artifact.RulesFromBuiltin {
		t.Errorf("RulesSource = %q, want %q", b.RulesSource, artifact.RulesFromBuiltin)
	}

	x, err := b.Encoder.EncodeCrop(features.Input{Region: "Punjab", SoilType: "Alluvial"})
	if err != nil {
		t.Fatalf("EncodeCrop() error = %v", err)
	}
	ranked, err := b.Classifier.Classify(x)
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}
	want := []string{"Wheat", "Rice", "Cotton"}
	for i, crop := range want {
		if ranked[i].Crop != crop {
			t.Errorf("ranked[%d] = %q, want %q", i, ranked[i].Crop, crop)
		}
	}
	if math.Abs(ranked[0].RawScore-0.23) > 1e-9 {
		t.Errorf("Wheat RawScore = %v, want 0.23", ranked[0].RawScore)
	}

	xa, err := b.Encoder.EncodeAgronomic(features.Input{Region: "Punjab", SoilType: "Alluvial"}, "Wheat")
	if err != nil {
		t.Fatalf("EncodeAgronomic() error = %v", err)
	}
	nutrients, water, err := b.Regressor.Predict(xa)
	if err != nil {
		t.Fatalf("Predict() error = %v", err)
	}
	if len(nutrients) != 5 || len(water) != 3 {
		t.Fatalf("Predict() = %d nutrients, %d water, want 5 and 3", len(nutrients), len(water))
	}
	if v, ok := water.Get("Water Temperature (°C)"); !ok || v != 24 {
		t.Errorf("water temperature = %v (%v), want 24", v, ok)
	}

	status := b.Status()
	if !status.ClassifierLoaded || !status.RegressorLoaded || !status.VocabularyLoaded {
		t.Errorf("Status() = %+v, want everything loaded", status)
	}
	if status.CropLabels != 9 {
		t.Errorf("Status().CropLabels = %d, want 9", status.CropLabels)
	}
	if status.ModelVersion != "fixture-1" {
		t.Errorf("Status().ModelVersion = %q, want fixture-1", status.ModelVersion)
	}
	if want := "Balanced NPK (10-26-26), Farmyard Manure"; status.DefaultFertilizer != want {
		t.Errorf("Status().DefaultFertilizer = %q, want %q", status.DefaultFertilizer, want)
	}
}

func TestLoad_FertilizerRulesFile(t *testing.T) {
	t.Parallel()

	f := testinfra.DefaultArtifactFixture()
	f.RulesYAML = "default: [Compost]\nsoil:\n  - soil: Clay\n    fertilizers: [Lime]\n"
	dir := testinfra.WriteArtifacts(t, f)

	b, err := artifact.Load(dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if b.RulesSource != artifact.RulesFromFile {
		t.Errorf("RulesSource = %q, want %q", b.RulesSource, artifact.RulesFromFile)
	}

	rec, err := b.Fertilizer.Map("Clay", "Wheat", nil)
	if err != nil {
		t.Fatalf("Map() error = %v", err)
	}
	if rec.Text != "Lime" {
		t.Errorf("Map().Text = %q, want Lime", rec.Text)
	}
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(t *testing.T, dir string)
		wantErr error
	}{
		{
			name: "missing classifier",
			mutate: func(t *testing.T, dir string) {
				if err := os.Remove(filepath.Join(dir, artifact.ClassifierFile)); err != nil {
					t.Fatal(err)
				}
			},
			wantErr: os.ErrNotExist,
		},
		{
			name: "corrupt meta",
			mutate: func(t *testing.T, dir string) {
				writeFile(t, filepath.Join(dir, artifact.MetaFile), "{not json")
			},
			wantErr: artifact.ErrInvalidArtifact,
		},
		{
			name: "meta target without group",
			mutate: func(t *testing.T, dir string) {
				writeFile(t, filepath.Join(dir, artifact.MetaFile),
					`{"targets":["N (kg/ha)","Mystery"],"nutrient_targets":["N (kg/ha)"],"additional_targets":[]}`)
			},
			wantErr: models.ErrInvalidSchema,
		},
		{
			name: "classifier label outside vocabulary",
			mutate: func(t *testing.T, dir string) {
				writeFile(t, filepath.Join(dir, artifact.ClassifierFile),
					`{"labels":["Quinoa"],"layers":[{"weights":[[0]],"bias":[0],"activation":"softmax"}]}`)
			},
			wantErr: artifact.ErrInvalidArtifact,
		},
		{
			name: "regressor width disagrees with vocabulary",
			mutate: func(t *testing.T, dir string) {
				layer := testinfra.ConstantLayer(3, make([]float64, 8), models.ActivationIdentity)
				data := artifact.RegressorFileFormat{Layers: []models.Layer{layer}}
				writeJSONFile(t, filepath.Join(dir, artifact.RegressorFile), data)
			},
			wantErr: artifact.ErrInvalidArtifact,
		},
		{
			name: "regressor outputs disagree with schema",
			mutate: func(t *testing.T, dir string) {
				layer := testinfra.ConstantLayer(10+10+9, make([]float64, 4), models.ActivationIdentity)
				data := artifact.RegressorFileFormat{Layers: []models.Layer{layer}}
				writeJSONFile(t, filepath.Join(dir, artifact.RegressorFile), data)
			},
			wantErr: models.ErrInvalidSchema,
		},
		{
			name: "invalid fertilizer rules",
			mutate: func(t *testing.T, dir string) {
				writeFile(t, filepath.Join(dir, artifact.FertilizerRulesFile), "soil:\n  - soil: Red\n")
			},
			wantErr: fertilizer.ErrInvalidRules,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := testinfra.WriteArtifacts(t, nil)
			tt.mutate(t, dir)

			_, err := artifact.Load(dir)
			if err == nil {
				t.Fatal("Load() = nil error, want error")
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Load() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestBundle_StatusNil(t *testing.T) {
	t.Parallel()

	var b *artifact.Bundle
	if s := b.Status(); s.ClassifierLoaded || s.RegressorLoaded {
		t.Errorf("nil Status() = %+v, want nothing loaded", s)
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func writeJSONFile(t *testing.T, path string, v interface{}) {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("failed to encode %s: %v", path, err)
	}
	writeFile(t, path, string(data))
}

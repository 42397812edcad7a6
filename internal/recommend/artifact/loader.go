// Crop Advisor - Crop Recommendation and Agronomic Prediction Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cropadvisor

package artifact

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/cropadvisor/internal/recommend/features"
	"github.com/tomtom215/cropadvisor/internal/recommend/fertilizer"
	"github.com/tomtom215/cropadvisor/internal/recommend/models"
)

// Artifact file names inside the artifact directory.
const (
	MetaFile            = "meta.json"
	VocabularyFile      = "vocabulary.json"
	ClassifierFile      = "crop_classifier.json"
	RegressorFile       = "agronomic_regressor.json"
	FertilizerRulesFile = "fertilizer_rules.yaml"
)

// Sources reported for the fertilizer table.
const (
	RulesFromFile    = "file"
	RulesFromBuiltin = "builtin"
)

// ErrInvalidArtifact is returned when artifact files disagree with each other.
var ErrInvalidArtifact = errors.New("invalid artifact")

// Meta is the trainer's description of the regression outputs.
type Meta struct {
	ModelVersion      string    `json:"model_version"`
	TrainedAt         time.Time `json:"trained_at"`
	Targets           []string  `json:"targets"`
	NutrientTargets   []string  `json:"nutrient_targets"`
	AdditionalTargets []string  `json:"additional_targets"`
}

// ClassifierFileFormat is the on-disk form of the crop classifier.
type ClassifierFileFormat struct {
	Labels []string       `json:"labels"`
	Layers []models.Layer `json:"layers"`
}

// RegressorFileFormat is the on-disk form of the agronomic regressor.
type RegressorFileFormat struct {
	Layers []models.Layer `json:"layers"`
}

// Bundle holds every loaded predictor. It is immutable after Load returns
// and is shared read-only by all requests.
type Bundle struct {
	Dir         string
	Meta        Meta
	Vocabulary  *features.Vocabulary
	Encoder     *features.Encoder
	Classifier  *models.CropClassifier
	Regressor   *models.AgronomicRegressor
	Fertilizer  *fertilizer.Mapper
	RulesSource string
	LoadedAt    time.Time
}

// Load reads and cross-validates the artifact directory. Any failure means
// the models are unusable and the process should not serve traffic.
func Load(dir string) (*Bundle, error) {
	b := &Bundle{Dir: dir}

	if err := readJSON(filepath.Join(dir, MetaFile), &b.Meta); err != nil {
		return nil, err
	}
	schema, err := models.NewSchema(b.Meta.Targets, b.Meta.NutrientTargets, b.Meta.AdditionalTargets)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", MetaFile, err)
	}

	var def features.Definition
	if err := readJSON(filepath.Join(dir, VocabularyFile), &def); err != nil {
		return nil, err
	}
	b.Vocabulary, err = features.NewVocabulary(def)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", VocabularyFile, err)
	}
	b.Encoder = features.NewEncoder(b.Vocabulary)

	if b.Classifier, err = loadClassifier(dir, b.Vocabulary); err != nil {
		return nil, err
	}
	if b.Regressor, err = loadRegressor(dir, schema, b.Vocabulary); err != nil {
		return nil, err
	}
	if b.Fertilizer, b.RulesSource, err = loadFertilizer(dir); err != nil {
		return nil, err
	}

	b.LoadedAt = time.Now()
	return b, nil
}

func loadClassifier(dir string, vocab *features.Vocabulary) (*models.CropClassifier, error) {
	var f ClassifierFileFormat
	if err := readJSON(filepath.Join(dir, ClassifierFile), &f); err != nil {
		return nil, err
	}

	// Every label must round-trip through the shared vocabulary.
	crops := vocab.Crops()
	if len(f.Labels) != len(crops) {
		return nil, fmt.Errorf("%w: %s has %d labels, vocabulary has %d crops", ErrInvalidArtifact, ClassifierFile, len(f.Labels), len(crops))
	}
	seen := make(map[string]struct{}, len(f.Labels))
	for _, label := range f.Labels {
		if !vocab.HasCrop(label) {
			return nil, fmt.Errorf("%w: %s label %q is not in the vocabulary", ErrInvalidArtifact, ClassifierFile, label)
		}
		if _, dup := seen[label]; dup {
			return nil, fmt.Errorf("%w: %s repeats label %q", ErrInvalidArtifact, ClassifierFile, label)
		}
		seen[label] = struct{}{}
	}

	clf, err := models.NewCropClassifier(f.Labels, &models.Network{Layers: f.Layers})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ClassifierFile, err)
	}
	if got, want := clf.InputWidth(), vocab.CropFeatureWidth(); got != want {
		return nil, fmt.Errorf("%w: %s expects %d features, encoder produces %d", ErrInvalidArtifact, ClassifierFile, got, want)
	}
	return clf, nil
}

func loadRegressor(dir string, schema models.Schema, vocab *features.Vocabulary) (*models.AgronomicRegressor, error) {
	var f RegressorFileFormat
	if err := readJSON(filepath.Join(dir, RegressorFile), &f); err != nil {
		return nil, err
	}

	reg, err := models.NewAgronomicRegressor(schema, &models.Network{Layers: f.Layers})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", RegressorFile, err)
	}
	if got, want := reg.InputWidth(), vocab.AgronomicFeatureWidth(); got != want {
		return nil, fmt.Errorf("%w: %s expects %d features, encoder produces %d", ErrInvalidArtifact, RegressorFile, got, want)
	}
	return reg, nil
}

func loadFertilizer(dir string) (*fertilizer.Mapper, string, error) {
	path := filepath.Join(dir, FertilizerRulesFile)
	rules := fertilizer.DefaultRuleSet()
	source := RulesFromBuiltin

	if _, err := os.Stat(path); err == nil {
		rules, err = fertilizer.LoadRules(path)
		if err != nil {
			return nil, "", err
		}
		source = RulesFromFile
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, "", fmt.Errorf("failed to stat %s: %w", path, err)
	}

	mapper, err := fertilizer.NewMapper(rules)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", FertilizerRulesFile, err)
	}
	return mapper, source, nil
}

func readJSON(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: failed to decode %s: %v", ErrInvalidArtifact, path, err)
	}
	return nil
}

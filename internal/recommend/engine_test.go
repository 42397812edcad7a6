// Crop Advisor - Crop Recommendation and Agronomic Prediction Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cropadvisor

package recommend

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/cropadvisor/internal/recommend/artifact"
	"github.com/tomtom215/cropadvisor/internal/recommend/features"
	"github.com/tomtom215/cropadvisor/internal/recommend/fertilizer"
	"github.com/tomtom215/cropadvisor/internal/recommend/models"
	"github.com/tomtom215/cropadvisor/internal/testinfra"
)

// mockClassifier returns fixed scores in the given order and counts calls.
type mockClassifier struct {
	scores []CropCandidate
	err    error
	calls  atomic.Int32
}

func (m *mockClassifier) Classify(x []float64) ([]CropCandidate, error) {
	m.calls.Add(1)
	if m.err != nil {
		return nil, m.err
	}
	out := make([]CropCandidate, len(m.scores))
	copy(out, m.scores)
	return out, nil
}

// mockRegressor returns a fixed profile, failing for crops in failFor. The
// crop is recovered from the one-hot crop block of the feature vector.
type mockRegressor struct {
	vocab   *features.Vocabulary
	failFor map[string]error
	delay   time.Duration

	inFlight    atomic.Int32
	maxInFlight atomic.Int32
	calls       atomic.Int32
}

func (m *mockRegressor) Predict(x []float64) (models.NutrientProfile, models.WaterQualityProfile, error) {
	m.calls.Add(1)
	n := m.inFlight.Add(1)
	defer m.inFlight.Add(-1)
	for {
		cur := m.maxInFlight.Load()
		if n <= cur || m.maxInFlight.CompareAndSwap(cur, n) {
			break
		}
	}
	if m.delay > 0 {
		time.Sleep(m.delay)
	}

	crops := m.vocab.Crops()
	offset := len(x) - len(crops)
	for i, crop := range crops {
		if x[offset+i] == 1 {
			if err, ok := m.failFor[crop]; ok {
				return nil, nil, err
			}
		}
	}

	return models.NutrientProfile{
			{Name: "N (kg/ha)", Value: 120},
			{Name: "P₂O₅ (kg/ha)", Value: 60},
		}, models.WaterQualityProfile{
			{Name: "pH", Value: 6.8},
		}, nil
}

// fallbackMapper always falls back to the default recommendation.
type fallbackMapper struct{}

func (fallbackMapper) Map(soilType, crop string, _ models.NutrientProfile) (fertilizer.Recommendation, error) {
	return fertilizer.Recommendation{Fertilizers: []string{"Compost"}, Text: "Compost", Rule: fertilizer.RuleDefault},
		fertilizer.ErrNoRuleMatch
}

// recordingObserver captures observer events.
type recordingObserver struct {
	mu        sync.Mutex
	requests    []string
	failures    []string
	fallbacks   int
	confidences []float64
}

func (o *recordingObserver) ObserveRequest(operation, outcome string, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.requests = append(o.requests, operation+":"+outcome)
}

func (o *recordingObserver) ObserveInference(string, time.Duration) {}

func (o *recordingObserver) ObserveCandidateFailure(stage string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.failures = append(o.failures, stage)
}

func (o *recordingObserver) ObserveFertilizerFallback() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.fallbacks++
}

func (o *recordingObserver) ObserveConfidence(v float64) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.confidences = append(o.confidences, v)
}

// testLogger returns a zerolog logger for testing.
func testLogger() zerolog.Logger {
	return zerolog.Nop()
}

func testVocabulary(t *testing.T) *features.Vocabulary {
	t.Helper()
	v, err := features.NewVocabulary(features.Definition{
		Regions:   []string{"Punjab", "Kerala", "Bihar"},
		SoilTypes: []string{"Alluvial", "Black", "Clay"},
		Crops:     []string{"Wheat", "Rice", "Cotton", "Maize", "Millet"},
	})
	if err != nil {
		t.Fatalf("NewVocabulary() error = %v", err)
	}
	return v
}

// punjabScores is deliberately unsorted.
func punjabScores() []CropCandidate {
	return []CropCandidate{
		{Crop: "Maize", RawScore: 0.12},
		{Crop: "Rice", RawScore: 0.18},
		{Crop: "Millet", RawScore: 0.10},
		{Crop: "Wheat", RawScore: 0.23},
		{Crop: "Cotton", RawScore: 0.17},
	}
}

type fixture struct {
	vocab      *features.Vocabulary
	classifier *mockClassifier
	regressor  *mockRegressor
	mapper     FertilizerMapper
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	vocab := testVocabulary(t)
	mapper, err := fertilizer.NewMapper(nil)
	if err != nil {
		t.Fatalf("NewMapper() error = %v", err)
	}
	return &fixture{
		vocab:      vocab,
		classifier: &mockClassifier{scores: punjabScores()},
		regressor:  &mockRegressor{vocab: vocab},
		mapper:     mapper,
	}
}

func (f *fixture) models() Models {
	return Models{
		Encoder:    features.NewEncoder(f.vocab),
		Classifier: f.classifier,
		Regressor:  f.regressor,
		Fertilizer: f.mapper,
	}
}

func (f *fixture) engine(t *testing.T, cfg *Config) *Engine {
	t.Helper()
	e, err := NewEngine(f.models(), cfg, testLogger())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	return e
}

// --- Test: NewEngine ---

func TestNewEngine(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	full := f.models()

	tests := []struct {
		name    string
		models  Models
		cfg     *Config
		wantErr error
	}{
		{name: "nil config uses defaults", models: full},
		{name: "missing encoder", models: Models{Classifier: full.Classifier, Regressor: full.Regressor, Fertilizer: full.Fertilizer}, wantErr: ErrModelUnavailable},
		{name: "missing classifier", models: Models{Encoder: full.Encoder, Regressor: full.Regressor, Fertilizer: full.Fertilizer}, wantErr: ErrModelUnavailable},
		{name: "missing regressor", models: Models{Encoder: full.Encoder, Classifier: full.Classifier, Fertilizer: full.Fertilizer}, wantErr: ErrModelUnavailable},
		{name: "missing fertilizer", models: Models{Encoder: full.Encoder, Classifier: full.Classifier, Regressor: full.Regressor}, wantErr: ErrModelUnavailable},
		{name: "empty bundle", models: ModelsFromBundle(nil), wantErr: ErrModelUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			engine, err := NewEngine(tt.models, tt.cfg, testLogger())
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("NewEngine() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewEngine() error = %v, want nil", err)
			}
			if got := engine.GetConfig().Limits.DefaultK; got != 3 {
				t.Errorf("DefaultK = %d, want 3", got)
			}
		})
	}

	t.Run("invalid config", func(t *testing.T) {
		t.Parallel()
		cfg := DefaultConfig()
		cfg.Limits.DefaultK = 20
		if _, err := NewEngine(full, cfg, testLogger()); err == nil {
			t.Error("NewEngine() = nil error, want error")
		}
	})
}

// --- Test: RankCrops ---

func TestEngine_RankCrops_PunjabAlluvial(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	engine := f.engine(t, nil)

	resp, err := engine.RankCrops(context.Background(), "Punjab", "Alluvial")
	if err != nil {
		t.Fatalf("RankCrops() error = %v", err)
	}

	if resp.Recommended != "Wheat" {
		t.Errorf("Recommended = %q, want Wheat", resp.Recommended)
	}

	want := []struct {
		crop    string
		display float64
	}{
		{"Wheat", 81.0},
		{"Rice", 70.0},
		{"Cotton", 67.5},
		{"Maize", 51.0},
		{"Millet", 45.0},
	}
	if len(resp.Candidates) != len(want) {
		t.Fatalf("len(Candidates) = %d, want %d", len(resp.Candidates), len(want))
	}
	for i, w := range want {
		c := resp.Candidates[i]
		if c.Crop != w.crop || c.DisplayConfidence != w.display {
			t.Errorf("Candidates[%d] = %s/%v, want %s/%v", i, c.Crop, c.DisplayConfidence, w.crop, w.display)
		}
	}

	// Display order mirrors raw score order.
	for i := 1; i < len(resp.Candidates); i++ {
		a, b := resp.Candidates[i-1], resp.Candidates[i]
		if a.RawScore < b.RawScore {
			t.Errorf("candidate %d raw score %v below candidate %d raw score %v", i-1, a.RawScore, i, b.RawScore)
		}
		if a.RawScore > b.RawScore && a.DisplayConfidence < b.DisplayConfidence {
			t.Errorf("%s ranks above %s but shows lower confidence", a.Crop, b.Crop)
		}
	}
}

func TestEngine_RankCrops_TiesBrokenByName(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.classifier.scores = []CropCandidate{
		{Crop: "Wheat", RawScore: 0.2},
		{Crop: "Cotton", RawScore: 0.2},
		{Crop: "Rice", RawScore: 0.2},
	}
	engine := f.engine(t, nil)

	resp, err := engine.RankCrops(context.Background(), "Kerala", "Clay")
	if err != nil {
		t.Fatalf("RankCrops() error = %v", err)
	}
	want := []string{"Cotton", "Rice", "Wheat"}
	for i, crop := range want {
		if resp.Candidates[i].Crop != crop {
			t.Errorf("Candidates[%d] = %q, want %q", i, resp.Candidates[i].Crop, crop)
		}
	}
}

func TestEngine_RankCrops_UnknownCategory(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		region    string
		soilType  string
		wantField string
	}{
		{"unknown region", "Atlantis", "Alluvial", features.FieldRegion},
		{"unknown soil", "Punjab", "Basalt", features.FieldSoilType},
		{"empty region", "", "Alluvial", features.FieldRegion},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := newFixture(t)
			engine := f.engine(t, nil)

			_, err := engine.RankCrops(context.Background(), tt.region, tt.soilType)
			if !errors.Is(err, ErrUnknownCategory) {
				t.Fatalf("RankCrops() error = %v, want ErrUnknownCategory", err)
			}
			var uc *UnknownCategoryError
			if !errors.As(err, &uc) || uc.Field != tt.wantField {
				t.Errorf("RankCrops() error = %v, want field %q", err, tt.wantField)
			}
			if calls := f.classifier.calls.Load(); calls != 0 {
				t.Errorf("classifier called %d times, want 0", calls)
			}
			if m := engine.GetMetrics(); m.InvalidInputCount != 1 || m.ErrorCount != 0 {
				t.Errorf("metrics = %+v, want one invalid input and no errors", m)
			}
		})
	}
}

func TestEngine_RankCrops_ClassifierError(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	boom := errors.New("boom")
	f.classifier.err = boom
	engine := f.engine(t, nil)

	_, err := engine.RankCrops(context.Background(), "Punjab", "Alluvial")
	if !errors.Is(err, boom) {
		t.Fatalf("RankCrops() error = %v, want wrapped boom", err)
	}
	if m := engine.GetMetrics(); m.ErrorCount != 1 {
		t.Errorf("ErrorCount = %d, want 1", m.ErrorCount)
	}
}

// --- Test: PredictForCrop ---

func TestEngine_PredictForCrop(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	engine := f.engine(t, nil)

	p, err := engine.PredictForCrop(context.Background(), "Punjab", "Alluvial", "Wheat")
	if err != nil {
		t.Fatalf("PredictForCrop() error = %v", err)
	}
	if v, ok := p.Nutrients.Get("N (kg/ha)"); !ok || v != 120 {
		t.Errorf("N = %v (%v), want 120", v, ok)
	}
	if v, ok := p.Water.Get("pH"); !ok || v != 6.8 {
		t.Errorf("pH = %v (%v), want 6.8", v, ok)
	}
	if p.Fertilizer.Text != "Urea, DAP" {
		t.Errorf("Fertilizer = %q, want %q", p.Fertilizer.Text, "Urea, DAP")
	}
	if calls := f.classifier.calls.Load(); calls != 0 {
		t.Errorf("classifier called %d times, want 0", calls)
	}
}

func TestEngine_PredictForCrop_UnknownCrop(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	engine := f.engine(t, nil)

	_, err := engine.PredictForCrop(context.Background(), "Punjab", "Alluvial", "Quinoa")
	var uc *UnknownCategoryError
	if !errors.As(err, &uc) || uc.Field != features.FieldCrop {
		t.Fatalf("PredictForCrop() error = %v, want unknown crop", err)
	}
	if calls := f.regressor.calls.Load(); calls != 0 {
		t.Errorf("regressor called %d times, want 0", calls)
	}
}

func TestEngine_PredictForCrop_FertilizerFallback(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.mapper = fallbackMapper{}
	engine := f.engine(t, nil)
	obs := &recordingObserver{}
	engine.SetObserver(obs)

	p, err := engine.PredictForCrop(context.Background(), "Bihar", "Clay", "Maize")
	if err != nil {
		t.Fatalf("PredictForCrop() error = %v, want nil on fallback", err)
	}
	if p.Fertilizer.Text != "Compost" || p.Fertilizer.Matched {
		t.Errorf("Fertilizer = %+v, want unmatched default", p.Fertilizer)
	}
	if m := engine.GetMetrics(); m.FertilizerFallbacks != 1 {
		t.Errorf("FertilizerFallbacks = %d, want 1", m.FertilizerFallbacks)
	}
	if obs.fallbacks != 1 {
		t.Errorf("observer fallbacks = %d, want 1", obs.fallbacks)
	}
}

// --- Test: Recommend ---

func TestEngine_Recommend(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	engine := f.engine(t, nil)

	rec, err := engine.Recommend(context.Background(), Request{Region: "Punjab", SoilType: "Alluvial"})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}

	if rec.Recommended != "Wheat" {
		t.Errorf("Recommended = %q, want Wheat", rec.Recommended)
	}
	if rec.Metadata.K != 3 {
		t.Errorf("Metadata.K = %d, want 3", rec.Metadata.K)
	}
	if rec.Metadata.RequestID == "" {
		t.Error("Metadata.RequestID is empty")
	}
	if len(rec.Candidates) != 3 || len(rec.Details) != 3 {
		t.Fatalf("got %d candidates and %d details, want 3 and 3", len(rec.Candidates), len(rec.Details))
	}
	if len(rec.Diagnostics) != 0 {
		t.Errorf("Diagnostics = %+v, want none", rec.Diagnostics)
	}

	wantFert := []string{"Urea, DAP", "Urea, DAP, Zinc Sulphate", "NPK (12-32-16)"}
	for i, d := range rec.Details {
		if d.Rank != i+1 {
			t.Errorf("Details[%d].Rank = %d, want %d", i, d.Rank, i+1)
		}
		if d.Crop != rec.Candidates[i].Crop {
			t.Errorf("Details[%d].Crop = %q, want %q", i, d.Crop, rec.Candidates[i].Crop)
		}
		if d.DisplayConfidence != rec.Candidates[i].DisplayConfidence {
			t.Errorf("Details[%d].DisplayConfidence = %v, want %v", i, d.DisplayConfidence, rec.Candidates[i].DisplayConfidence)
		}
		if d.Fertilizer.Text != wantFert[i] {
			t.Errorf("Details[%d].Fertilizer = %q, want %q", i, d.Fertilizer.Text, wantFert[i])
		}
	}
}

func TestEngine_Recommend_PartialFailure(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.regressor.failFor = map[string]error{"Rice": errors.New("inference failed")}
	engine := f.engine(t, nil)
	obs := &recordingObserver{}
	engine.SetObserver(obs)

	rec, err := engine.Recommend(context.Background(), Request{Region: "Punjab", SoilType: "Alluvial", K: 3})
	if err != nil {
		t.Fatalf("Recommend() error = %v, want partial result", err)
	}

	if len(rec.Details) != 2 {
		t.Fatalf("len(Details) = %d, want 2", len(rec.Details))
	}
	if rec.Details[0].Crop != "Wheat" || rec.Details[1].Crop != "Cotton" {
		t.Errorf("Details = [%s %s], want [Wheat Cotton]", rec.Details[0].Crop, rec.Details[1].Crop)
	}
	if rec.Details[1].Rank != 3 {
		t.Errorf("Cotton rank = %d, want 3", rec.Details[1].Rank)
	}

	if len(rec.Diagnostics) != 1 {
		t.Fatalf("len(Diagnostics) = %d, want 1", len(rec.Diagnostics))
	}
	d := rec.Diagnostics[0]
	if d.Crop != "Rice" || d.Rank != 2 || d.Stage != StageRegress || d.Error == "" {
		t.Errorf("Diagnostics[0] = %+v, want Rice rank 2 at regress", d)
	}

	// The ranked list still carries the failed candidate.
	if rec.Candidates[1].Crop != "Rice" {
		t.Errorf("Candidates[1] = %q, want Rice", rec.Candidates[1].Crop)
	}

	if m := engine.GetMetrics(); m.CandidateFailures != 1 || m.ErrorCount != 0 {
		t.Errorf("metrics = %+v, want one candidate failure and no errors", m)
	}
	if len(obs.failures) != 1 || obs.failures[0] != StageRegress {
		t.Errorf("observer failures = %v, want [regress]", obs.failures)
	}
	if len(obs.requests) != 1 || obs.requests[0] != "recommend:success" {
		t.Errorf("observer requests = %v, want [recommend:success]", obs.requests)
	}
}

func TestEngine_Recommend_K(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		labels int
		k      int
		wantK  int
	}{
		{"default", 5, 0, 3},
		{"explicit", 5, 5, 5},
		{"negative uses default", 5, -1, 3},
		{"clamped to available labels", 2, 3, 2},
		{"clamped to max", 5, 50, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := newFixture(t)
			f.classifier.scores = punjabScores()[:tt.labels]
			engine := f.engine(t, nil)

			rec, err := engine.Recommend(context.Background(), Request{Region: "Punjab", SoilType: "Alluvial", K: tt.k})
			if err != nil {
				t.Fatalf("Recommend() error = %v", err)
			}
			if rec.Metadata.K != tt.wantK || len(rec.Details) != tt.wantK || len(rec.Candidates) != tt.wantK {
				t.Errorf("K = %d, details = %d, candidates = %d, want %d",
					rec.Metadata.K, len(rec.Details), len(rec.Candidates), tt.wantK)
			}
		})
	}
}

func TestEngine_Recommend_NoLabels(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.classifier.scores = nil
	engine := f.engine(t, nil)

	rec, err := engine.Recommend(context.Background(), Request{Region: "Punjab", SoilType: "Alluvial"})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if rec.Recommended != "" || len(rec.Details) != 0 {
		t.Errorf("Recommend() = %+v, want empty result", rec)
	}
}

func TestEngine_Recommend_BoundedFanOut(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.regressor.delay = 20 * time.Millisecond
	engine := f.engine(t, nil)

	rec, err := engine.Recommend(context.Background(), Request{Region: "Punjab", SoilType: "Alluvial", K: 2})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(rec.Details) != 2 {
		t.Fatalf("len(Details) = %d, want 2", len(rec.Details))
	}
	if got := f.regressor.maxInFlight.Load(); got > 2 {
		t.Errorf("max concurrent predictions = %d, want <= 2", got)
	}
	if got := f.regressor.calls.Load(); got != 2 {
		t.Errorf("regressor calls = %d, want 2", got)
	}
}

func TestEngine_Recommend_Canceled(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	engine := f.engine(t, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := engine.Recommend(ctx, Request{Region: "Punjab", SoilType: "Alluvial"})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Recommend() error = %v, want context.Canceled", err)
	}
	if calls := f.classifier.calls.Load(); calls != 0 {
		t.Errorf("classifier called %d times, want 0", calls)
	}
}

func TestEngine_Recommend_Concurrent(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	engine := f.engine(t, nil)

	var wg sync.WaitGroup
	errs := make(chan error, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rec, err := engine.Recommend(context.Background(), Request{Region: "Kerala", SoilType: "Black"})
			if err != nil {
				errs <- err
				return
			}
			if rec.Recommended != "Wheat" {
				errs <- errors.New("unexpected recommendation " + rec.Recommended)
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Error(err)
	}
	if got := engine.GetMetrics().RequestCount; got != 20 {
		t.Errorf("RequestCount = %d, want 20", got)
	}
}

// --- Test: loaded artifacts ---

func TestEngine_WithArtifactBundle(t *testing.T) {
	t.Parallel()

	bundle, err := artifact.Load(testinfra.WriteArtifacts(t, nil))
	if err != nil {
		t.Fatalf("artifact.Load() error = %v", err)
	}
	engine, err := NewEngine(ModelsFromBundle(bundle), nil, testLogger())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}

	rec, err := engine.Recommend(context.Background(), Request{Region: "Punjab", SoilType: "Alluvial"})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}

	wantCrops := []string{"Wheat", "Rice", "Cotton"}
	wantDisplay := []float64{81.0, 70.0, 67.5}
	for i := range wantCrops {
		if rec.Candidates[i].Crop != wantCrops[i] || rec.Candidates[i].DisplayConfidence != wantDisplay[i] {
			t.Errorf("Candidates[%d] = %s/%v, want %s/%v", i,
				rec.Candidates[i].Crop, rec.Candidates[i].DisplayConfidence, wantCrops[i], wantDisplay[i])
		}
	}
	if len(rec.Details) != 3 {
		t.Fatalf("len(Details) = %d, want 3", len(rec.Details))
	}
	if v, ok := rec.Details[0].Water.Get("Water Temperature (°C)"); !ok || v != 24 {
		t.Errorf("water temperature = %v (%v), want 24", v, ok)
	}

	_, err = engine.RankCrops(context.Background(), "Atlantis", "Alluvial")
	if !errors.Is(err, ErrUnknownCategory) {
		t.Errorf("RankCrops(Atlantis) error = %v, want ErrUnknownCategory", err)
	}
}

func TestEngine_ObservesShownConfidences(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	engine := f.engine(t, nil)
	obs := &recordingObserver{}
	engine.SetObserver(obs)

	if _, err := engine.Recommend(context.Background(), Request{Region: "Punjab", SoilType: "Alluvial", K: 2}); err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	want := []float64{81, 70}
	if len(obs.confidences) != len(want) || obs.confidences[0] != want[0] || obs.confidences[1] != want[1] {
		t.Errorf("Recommend observed %v, want %v", obs.confidences, want)
	}

	obs.confidences = nil
	resp, err := engine.RankCrops(context.Background(), "Punjab", "Alluvial")
	if err != nil {
		t.Fatalf("RankCrops() error = %v", err)
	}
	if len(obs.confidences) != len(resp.Candidates) {
		t.Errorf("RankCrops observed %d confidences, want %d", len(obs.confidences), len(resp.Candidates))
	}
}

// lockedBuffer serializes writes from candidate goroutines.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestEngine_Recommend_LogFieldsNotRepeated(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	var buf lockedBuffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel).With().Str("service", "cropadvisor").Logger()
	engine, err := NewEngine(f.models(), &Config{Limits: LimitsConfig{DefaultK: 3, MaxK: 10}}, logger)
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}

	// 50 clamps to MaxK 10, then to the 5 known crops.
	if _, err := engine.Recommend(context.Background(), Request{Region: "Punjab", SoilType: "Alluvial", K: 50}); err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) < 2 {
		t.Fatalf("expected request logs, got %q", buf.String())
	}
	for _, line := range lines {
		for _, key := range []string{`"component":`, `"k":`, `"request_id":`} {
			if n := strings.Count(line, key); n > 1 {
				t.Errorf("%s appears %d times in %s", key, n, line)
			}
		}
		if strings.Contains(line, "recommendation complete") && !strings.Contains(line, `"k":5`) {
			t.Errorf("completion log should carry the effective k: %s", line)
		}
	}
}

// Crop Advisor - Crop Recommendation and Agronomic Prediction Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cropadvisor

package recommend

import (
	"time"

	"github.com/tomtom215/cropadvisor/internal/recommend/features"
	"github.com/tomtom215/cropadvisor/internal/recommend/fertilizer"
	"github.com/tomtom215/cropadvisor/internal/recommend/models"
)

// CropCandidate is a crop label with its raw classifier probability.
type CropCandidate = models.Candidate

// Encoder validates categorical inputs and builds feature vectors.
type Encoder interface {
	EncodeCrop(in features.Input) ([]float64, error)
	EncodeAgronomic(in features.Input, crop string) ([]float64, error)
}

// Classifier ranks every known crop for a crop feature vector.
type Classifier interface {
	Classify(x []float64) ([]CropCandidate, error)
}

// Regressor predicts nutrient and water quality profiles.
type Regressor interface {
	Predict(x []float64) (models.NutrientProfile, models.WaterQualityProfile, error)
}

// FertilizerMapper maps a prediction to a fertilizer recommendation. It
// returns the default recommendation with ErrNoRuleMatch when nothing applies.
type FertilizerMapper interface {
	Map(soilType, crop string, nutrients models.NutrientProfile) (fertilizer.Recommendation, error)
}

// Models is the set of predictors the engine runs. All must be non-nil and
// must not be mutated after the engine is built.
type Models struct {
	Encoder    Encoder
	Classifier Classifier
	Regressor  Regressor
	Fertilizer FertilizerMapper
}

// Request represents a batch recommendation request.
type Request struct {
	// Region and SoilType must come from the trained vocabulary.
	Region   string `json:"region"`
	SoilType string `json:"soil_type"`

	// K is the number of top candidates to expand with predictions.
	// Defaults to Config.Limits.DefaultK if zero.
	K int `json:"k,omitempty"`

	// RequestID is a unique identifier for tracing.
	RequestID string `json:"request_id,omitempty"`
}

// RankedCandidate is a candidate with its display confidence.
type RankedCandidate struct {
	Crop              string  `json:"crop"`
	RawScore          float64 `json:"raw_score"`
	DisplayConfidence float64 `json:"display_confidence"`
}

// RankResponse is the result of RankCrops.
type RankResponse struct {
	Region      string            `json:"region"`
	SoilType    string            `json:"soil_type"`
	Recommended string            `json:"recommended"`
	Candidates  []RankedCandidate `json:"candidates"`
}

// Prediction is the result of PredictForCrop.
type Prediction struct {
	Region     string                     `json:"region"`
	SoilType   string                     `json:"soil_type"`
	Crop       string                     `json:"crop"`
	Nutrients  models.NutrientProfile     `json:"nutrients"`
	Water      models.WaterQualityProfile `json:"water_quality"`
	Fertilizer fertilizer.Recommendation  `json:"fertilizer"`
}

// CropDetail is the full guidance for one top-K candidate.
type CropDetail struct {
	Rank              int                        `json:"rank"`
	Crop              string                     `json:"crop"`
	RawScore          float64                    `json:"raw_score"`
	DisplayConfidence float64                    `json:"display_confidence"`
	Nutrients         models.NutrientProfile     `json:"nutrients"`
	Water             models.WaterQualityProfile `json:"water_quality"`
	Fertilizer        fertilizer.Recommendation  `json:"fertilizer"`
}

// Stages at which a candidate can fail.
const (
	StageEncode     = "encode"
	StageRegress    = "regress"
	StageFertilizer = "fertilizer"
	StageCanceled   = "canceled"
)

// CandidateFailure reports a top-K candidate dropped from the result.
type CandidateFailure struct {
	Rank  int    `json:"rank"`
	Crop  string `json:"crop"`
	Stage string `json:"stage"`
	Error string `json:"error"`
}

// Recommendation is the result of Recommend. It is built per request and
// never cached.
type Recommendation struct {
	Region      string             `json:"region"`
	SoilType    string             `json:"soil_type"`
	Recommended string             `json:"recommended"`
	Candidates  []RankedCandidate  `json:"candidates"`
	Details     []CropDetail       `json:"details"`
	Diagnostics []CandidateFailure `json:"diagnostics,omitempty"`
	Metadata    ResponseMetadata   `json:"metadata"`
}

// ResponseMetadata contains timing and diagnostic information.
type ResponseMetadata struct {
	// RequestID is the unique request identifier.
	RequestID string `json:"request_id"`

	// K is the number of candidates that were expanded.
	K int `json:"k"`

	// LatencyMS is the total latency in milliseconds.
	LatencyMS int64 `json:"latency_ms"`

	// Timestamp is when the response was generated.
	Timestamp time.Time `json:"timestamp"`
}

// Metrics contains engine counters for observability.
type Metrics struct {
	// RequestCount is the total number of engine calls.
	RequestCount int64 `json:"request_count"`

	// ErrorCount is the number of calls that returned an error.
	ErrorCount int64 `json:"error_count"`

	// InvalidInputCount is the number of calls rejected by the encoder.
	InvalidInputCount int64 `json:"invalid_input_count"`

	// CandidateFailures is the number of top-K candidates dropped.
	CandidateFailures int64 `json:"candidate_failures"`

	// FertilizerFallbacks is the number of default fertilizer
	// recommendations served.
	FertilizerFallbacks int64 `json:"fertilizer_fallbacks"`
}

// Observer receives engine events. The serving layer implements it on top
// of Prometheus; the engine never imports a metrics backend.
type Observer interface {
	ObserveRequest(operation, outcome string, duration time.Duration)
	ObserveInference(model string, duration time.Duration)
	ObserveCandidateFailure(stage string)
	ObserveFertilizerFallback()
	ObserveConfidence(displayConfidence float64)
}

// Operation, outcome and model labels passed to Observer.
const (
	OperationRank      = "rank"
	OperationPredict   = "predict"
	OperationRecommend = "recommend"

	OutcomeSuccess      = "success"
	OutcomeInvalidInput = "invalid_input"
	OutcomeCanceled     = "canceled"
	OutcomeError        = "error"

	ModelClassifier = "crop_classifier"
	ModelRegressor  = "agronomic_regressor"
)

type nopObserver struct{}

func (nopObserver) ObserveRequest(string, string, time.Duration) {}
func (nopObserver) ObserveInference(string, time.Duration)       {}
func (nopObserver) ObserveCandidateFailure(string)               {}
func (nopObserver) ObserveFertilizerFallback()                   {}
func (nopObserver) ObserveConfidence(float64)                    {}

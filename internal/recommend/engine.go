// Crop Advisor - Crop Recommendation and Agronomic Prediction Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cropadvisor

package recommend

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/cropadvisor/internal/recommend/artifact"
	"github.com/tomtom215/cropadvisor/internal/recommend/features"
	"github.com/tomtom215/cropadvisor/internal/recommend/fertilizer"
	"github.com/tomtom215/cropadvisor/internal/recommend/models"
)

// Engine sequences the predictors: validate, rank, then expand the top-K
// candidates with agronomic predictions and fertilizer advice. It holds only
// immutable state after construction and is safe for concurrent use.
type Engine struct {
	config   *Config
	logger   zerolog.Logger
	models   Models
	observer Observer

	// Metrics
	requestCount        atomic.Int64
	errorCount          atomic.Int64
	invalidInputCount   atomic.Int64
	candidateFailures   atomic.Int64
	fertilizerFallbacks atomic.Int64
}

// NewEngine creates a recommendation engine over m. Every model must be
// present; a missing one yields ErrModelUnavailable.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(m Models, cfg *Config, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	switch {
	case m.Encoder == nil:
		return nil, fmt.Errorf("%w: feature encoder not loaded", ErrModelUnavailable)
	case m.Classifier == nil:
		return nil, fmt.Errorf("%w: crop classifier not loaded", ErrModelUnavailable)
	case m.Regressor == nil:
		return nil, fmt.Errorf("%w: agronomic regressor not loaded", ErrModelUnavailable)
	case m.Fertilizer == nil:
		return nil, fmt.Errorf("%w: fertilizer rules not loaded", ErrModelUnavailable)
	}

	return &Engine{
		config:   cfg.Clone(),
		logger:   logger.With().Str("component", "recommend").Logger(),
		models:   m,
		observer: nopObserver{},
	}, nil
}

// ModelsFromBundle exposes the predictors of a loaded artifact bundle. Nil
// predictors stay nil interfaces so NewEngine can report them.
func ModelsFromBundle(b *artifact.Bundle) Models {
	var m Models
	if b == nil {
		return m
	}
	if b.Encoder != nil {
		m.Encoder = b.Encoder
	}
	if b.Classifier != nil {
		m.Classifier = b.Classifier
	}
	if b.Regressor != nil {
		m.Regressor = b.Regressor
	}
	if b.Fertilizer != nil {
		m.Fertilizer = b.Fertilizer
	}
	return m
}

// SetObserver installs the metrics observer. It must be called before the
// engine serves requests.
func (e *Engine) SetObserver(o Observer) {
	if o == nil {
		o = nopObserver{}
	}
	e.observer = o
}

// RankCrops returns every known crop ranked for (region, soilType) with its
// display confidence.
func (e *Engine) RankCrops(ctx context.Context, region, soilType string) (*RankResponse, error) {
	start := time.Now()
	e.requestCount.Add(1)
	in := features.Input{Region: region, SoilType: soilType}

	ranked, err := e.rank(ctx, in)
	if err != nil {
		return nil, e.fail(OperationRank, start, err)
	}

	resp := &RankResponse{
		Region:     region,
		SoilType:   soilType,
		Candidates: ranked,
	}
	if len(ranked) > 0 {
		resp.Recommended = ranked[0].Crop
	}

	e.observeConfidences(ranked)
	e.observer.ObserveRequest(OperationRank, OutcomeSuccess, time.Since(start))
	return resp, nil
}

// PredictForCrop returns the agronomic prediction and fertilizer advice for
// one crop.
func (e *Engine) PredictForCrop(ctx context.Context, region, soilType, crop string) (*Prediction, error) {
	start := time.Now()
	e.requestCount.Add(1)
	in := features.Input{Region: region, SoilType: soilType}

	if err := ctx.Err(); err != nil {
		return nil, e.fail(OperationPredict, start, err)
	}

	p, _, err := e.predict(in, crop, e.logger)
	if err != nil {
		return nil, e.fail(OperationPredict, start, err)
	}

	e.observer.ObserveRequest(OperationPredict, OutcomeSuccess, time.Since(start))
	return p, nil
}

// Recommend ranks the crops and expands the top K with predictions. A
// candidate whose prediction fails is dropped and reported in Diagnostics;
// only validation, classification and cancellation fail the whole call.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) Recommend(ctx context.Context, req Request) (*Recommendation, error) {
	start := time.Now()
	e.requestCount.Add(1)

	req = e.prepareRequest(req)
	logger := e.createRequestLogger(req)
	logger.Debug().Msg("processing recommendation request")

	in := features.Input{Region: req.Region, SoilType: req.SoilType}
	ranked, err := e.rank(ctx, in)
	if err != nil {
		return nil, e.fail(OperationRecommend, start, err)
	}

	k := req.K
	if k > len(ranked) {
		k = len(ranked)
	}
	top := ranked[:k]

	details, failures := e.expandCandidates(ctx, in, top, logger)
	if err := ctx.Err(); err != nil {
		return nil, e.fail(OperationRecommend, start, err)
	}

	resp := &Recommendation{
		Region:      req.Region,
		SoilType:    req.SoilType,
		Candidates:  top,
		Details:     details,
		Diagnostics: failures,
		Metadata: ResponseMetadata{
			RequestID: req.RequestID,
			K:         k,
			LatencyMS: time.Since(start).Milliseconds(),
			Timestamp: time.Now(),
		},
	}
	if len(ranked) > 0 {
		resp.Recommended = ranked[0].Crop
	}

	logger.Debug().
		Int("k", k).
		Int("details", len(details)).
		Int("failures", len(failures)).
		Int64("latency_ms", resp.Metadata.LatencyMS).
		Msg("recommendation complete")

	e.observeConfidences(top)
	e.observer.ObserveRequest(OperationRecommend, OutcomeSuccess, time.Since(start))
	return resp, nil
}

// prepareRequest applies defaults and generates request ID if needed.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) prepareRequest(req Request) Request {
	if req.RequestID == "" {
		req.RequestID = uuid.NewString()
	}

	if req.K <= 0 {
		req.K = e.config.Limits.DefaultK
	}
	if req.K > e.config.Limits.MaxK {
		req.K = e.config.Limits.MaxK
	}

	return req
}

// createRequestLogger creates a logger with request context.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) createRequestLogger(req Request) zerolog.Logger {
	return e.logger.With().
		Str("request_id", req.RequestID).
		Str("region", req.Region).
		Str("soil_type", req.SoilType).
		Logger()
}

// rank validates the input, runs the classifier once and reshapes scores.
func (e *Engine) rank(ctx context.Context, in features.Input) ([]RankedCandidate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Encoding validates the vocabulary before any model runs.
	x, err := e.models.Encoder.EncodeCrop(in)
	if err != nil {
		return nil, err
	}

	t := time.Now()
	candidates, err := e.models.Classifier.Classify(x)
	e.observer.ObserveInference(ModelClassifier, time.Since(t))
	if err != nil {
		return nil, fmt.Errorf("classify crops: %w", err)
	}

	sorted := make([]CropCandidate, len(candidates))
	copy(sorted, candidates)
	models.SortCandidates(sorted)

	ranked := make([]RankedCandidate, len(sorted))
	for i, c := range sorted {
		ranked[i] = RankedCandidate{
			Crop:              c.Crop,
			RawScore:          c.RawScore,
			DisplayConfidence: DisplayConfidence(c.RawScore),
		}
	}
	return ranked, nil
}

// observeConfidences records the confidences actually returned to callers.
func (e *Engine) observeConfidences(shown []RankedCandidate) {
	for _, c := range shown {
		e.observer.ObserveConfidence(c.DisplayConfidence)
	}
}

// predict runs the regressor and fertilizer mapper for one crop. On failure
// it also returns the stage that failed.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func (e *Engine) predict(in features.Input, crop string, logger zerolog.Logger) (*Prediction, string, error) {
	x, err := e.models.Encoder.EncodeAgronomic(in, crop)
	if err != nil {
		return nil, StageEncode, err
	}

	t := time.Now()
	nutrients, water, err := e.models.Regressor.Predict(x)
	e.observer.ObserveInference(ModelRegressor, time.Since(t))
	if err != nil {
		return nil, StageRegress, fmt.Errorf("predict %s: %w", crop, err)
	}

	rec, err := e.models.Fertilizer.Map(in.SoilType, crop, nutrients)
	switch {
	case errors.Is(err, fertilizer.ErrNoRuleMatch):
		e.fertilizerFallbacks.Add(1)
		e.observer.ObserveFertilizerFallback()
		ev := logger.Debug()
		if e.config.LogFertilizerFallbacks {
			ev = logger.Info()
		}
		ev.Str("crop", crop).
			Str("soil_type", in.SoilType).
			Str("fertilizer", rec.Text).
			Msg("no fertilizer rule matched, serving default")
	case err != nil:
		return nil, StageFertilizer, fmt.Errorf("map fertilizer for %s: %w", crop, err)
	}

	return &Prediction{
		Region:     in.Region,
		SoilType:   in.SoilType,
		Crop:       crop,
		Nutrients:  nutrients,
		Water:      water,
		Fertilizer: rec,
	}, "", nil
}

// expandCandidates fans out over the top-K candidates, at most K at a time.
// Results keep rank order; failures are collected rather than returned.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func (e *Engine) expandCandidates(ctx context.Context, in features.Input, top []RankedCandidate, logger zerolog.Logger) ([]CropDetail, []CandidateFailure) {
	if len(top) == 0 {
		return []CropDetail{}, nil
	}

	details := make([]*CropDetail, len(top))
	failures := make([]*CandidateFailure, len(top))

	var g errgroup.Group
	g.SetLimit(len(top))
	for i, c := range top {
		g.Go(func() error {
			rank := i + 1
			if err := ctx.Err(); err != nil {
				failures[i] = &CandidateFailure{Rank: rank, Crop: c.Crop, Stage: StageCanceled, Error: err.Error()}
				return nil
			}

			p, stage, err := e.predict(in, c.Crop, logger)
			if err != nil {
				e.candidateFailures.Add(1)
				e.observer.ObserveCandidateFailure(stage)
				logger.Warn().
					Err(err).
					Str("crop", c.Crop).
					Int("rank", rank).
					Str("stage", stage).
					Msg("candidate dropped")
				failures[i] = &CandidateFailure{Rank: rank, Crop: c.Crop, Stage: stage, Error: err.Error()}
				return nil
			}

			details[i] = &CropDetail{
				Rank:              rank,
				Crop:              c.Crop,
				RawScore:          c.RawScore,
				DisplayConfidence: c.DisplayConfidence,
				Nutrients:         p.Nutrients,
				Water:             p.Water,
				Fertilizer:        p.Fertilizer,
			}
			return nil
		})
	}
	_ = g.Wait() // workers never return errors

	outDetails := make([]CropDetail, 0, len(top))
	var outFailures []CandidateFailure
	for i := range top {
		if details[i] != nil {
			outDetails = append(outDetails, *details[i])
		}
		if failures[i] != nil {
			outFailures = append(outFailures, *failures[i])
		}
	}
	return outDetails, outFailures
}

// fail records a failed call and returns err unchanged.
func (e *Engine) fail(operation string, start time.Time, err error) error {
	outcome := OutcomeError
	switch {
	case errors.Is(err, ErrUnknownCategory):
		outcome = OutcomeInvalidInput
		e.invalidInputCount.Add(1)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		outcome = OutcomeCanceled
		e.errorCount.Add(1)
	default:
		e.errorCount.Add(1)
		e.logger.Error().Err(err).Str("operation", operation).Msg("recommendation failed")
	}
	e.observer.ObserveRequest(operation, outcome, time.Since(start))
	return err
}

// GetMetrics returns the current engine metrics.
func (e *Engine) GetMetrics() Metrics {
	return Metrics{
		RequestCount:        e.requestCount.Load(),
		ErrorCount:          e.errorCount.Load(),
		InvalidInputCount:   e.invalidInputCount.Load(),
		CandidateFailures:   e.candidateFailures.Load(),
		FertilizerFallbacks: e.fertilizerFallbacks.Load(),
	}
}

// GetConfig returns a copy of the current configuration.
func (e *Engine) GetConfig() *Config {
	return e.config.Clone()
}

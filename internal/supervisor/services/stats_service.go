// Crop Advisor - Crop Recommendation and Agronomic Prediction Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cropadvisor

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/cropadvisor/internal/recommend"
)

// DefaultStatsInterval is used when no interval is configured.
const DefaultStatsInterval = 5 * time.Minute

// StatsSource exposes engine counters.
type StatsSource interface {
	GetMetrics() recommend.Metrics
}

// EngineStatsService logs engine counters periodically. Intervals with no
// new requests are skipped.
type EngineStatsService struct {
	source   StatsSource
	interval time.Duration
	logger   zerolog.Logger
	last     recommend.Metrics
}

// NewEngineStatsService creates the service. A non-positive interval uses
// DefaultStatsInterval.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewEngineStatsService(source StatsSource, interval time.Duration, logger zerolog.Logger) *EngineStatsService {
	if interval <= 0 {
		interval = DefaultStatsInterval
	}
	return &EngineStatsService{
		source:   source,
		interval: interval,
		logger:   logger.With().Str("service", "engine-stats").Logger(),
	}
}

// Serve implements suture.Service.
func (s *EngineStatsService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.report(true)
			return ctx.Err()
		case <-ticker.C:
			s.report(false)
		}
	}
}

// report logs the counters and their change since the previous report.
func (s *EngineStatsService) report(final bool) {
	cur := s.source.GetMetrics()
	delta := cur.RequestCount - s.last.RequestCount
	if delta == 0 && !final {
		return
	}

	event := s.logger.Info()
	if cur.ErrorCount > s.last.ErrorCount || cur.CandidateFailures > s.last.CandidateFailures {
		event = s.logger.Warn()
	}
	event.
		Bool("final", final).
		Int64("requests", cur.RequestCount).
		Int64("requests_delta", delta).
		Int64("errors", cur.ErrorCount).
		Int64("invalid_input", cur.InvalidInputCount).
		Int64("candidate_failures", cur.CandidateFailures).
		Int64("fertilizer_fallbacks", cur.FertilizerFallbacks).
		Msg("engine stats")

	s.last = cur
}

// String names the service in supervisor events.
func (s *EngineStatsService) String() string {
	return "engine-stats"
}

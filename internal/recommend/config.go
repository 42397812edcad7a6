// Crop Advisor - Crop Recommendation and Agronomic Prediction Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cropadvisor

package recommend

import (
	"fmt"
)

// Config contains all configuration for the recommendation engine.
type Config struct {
	// Limits contains operational limits.
	Limits LimitsConfig `json:"limits"`

	// LogFertilizerFallbacks logs every request served the default
	// fertilizer recommendation at info level. When false they are logged
	// at debug level.
	LogFertilizerFallbacks bool `json:"log_fertilizer_fallbacks"`
}

// LimitsConfig contains operational limits.
type LimitsConfig struct {
	// DefaultK is the number of top candidates expanded by Recommend when
	// the request does not say.
	DefaultK int `json:"default_k"`

	// MaxK caps the per-request K. Larger requests are clamped.
	MaxK int `json:"max_k"`
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Limits: LimitsConfig{
			DefaultK: 3,
			MaxK:     10,
		},
		LogFertilizerFallbacks: true,
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Limits.DefaultK < 1 {
		return fmt.Errorf("limits.default_k must be positive, got %d", c.Limits.DefaultK)
	}
	if c.Limits.MaxK < 1 {
		return fmt.Errorf("limits.max_k must be positive, got %d", c.Limits.MaxK)
	}
	if c.Limits.DefaultK > c.Limits.MaxK {
		return fmt.Errorf("limits.default_k (%d) must not exceed limits.max_k (%d)", c.Limits.DefaultK, c.Limits.MaxK)
	}
	return nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

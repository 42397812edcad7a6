// Crop Advisor - Crop Recommendation and Agronomic Prediction Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cropadvisor

package config

import (
	"fmt"
	"net"
	"strconv"
	"time"
)

// Config holds all server configuration.
//
// Loading order (Koanf v2):
//  1. Defaults: built-in values from defaultConfig
//  2. Config file: optional YAML (CONFIG_PATH or DefaultConfigPaths)
//  3. Environment variables: see envMappings
//
// Config is immutable after Load and safe for concurrent reads.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
	Recommend RecommendConfig `koanf:"recommend"`
}

// ServerConfig holds HTTP server settings.
//
// Environment Variables:
//   - HTTP_HOST, HTTP_PORT: listen address (default: 0.0.0.0:8080)
//   - HTTP_READ_TIMEOUT, HTTP_WRITE_TIMEOUT, HTTP_IDLE_TIMEOUT
//   - HTTP_SHUTDOWN_TIMEOUT: graceful shutdown budget (default: 10s)
//   - ENVIRONMENT: development or production (default: development)
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	Environment     string        `koanf:"environment"`
}

// Addr returns the host:port listen address.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// SecurityConfig holds CORS and rate limiting settings.
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// LoggingConfig holds logging settings.
//
// Environment Variables:
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: json, console (default: json)
//   - LOG_CALLER: include caller file:line (default: false)
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// RecommendConfig holds recommendation engine settings.
//
// Environment Variables:
//   - ARTIFACT_DIR: directory holding the trained model artifacts
//   - RECOMMEND_DEFAULT_K: candidates expanded when a request omits k (default: 3)
//   - RECOMMEND_MAX_K: upper bound for k (default: 10)
//   - RECOMMEND_REQUEST_TIMEOUT: per-request deadline (default: 5s)
//   - RECOMMEND_LOG_FERTILIZER_FALLBACKS: log default fertilizer fallbacks at info (default: true)
type RecommendConfig struct {
	ArtifactDir            string        `koanf:"artifact_dir"`
	DefaultK               int           `koanf:"default_k"`
	MaxK                   int           `koanf:"max_k"`
	RequestTimeout         time.Duration `koanf:"request_timeout"`
	LogFertilizerFallbacks bool          `koanf:"log_fertilizer_fallbacks"`
	StatsInterval          time.Duration `koanf:"stats_interval"`
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == EnvironmentProduction
}

// Environments.
const (
	EnvironmentDevelopment = "development"
	EnvironmentProduction  = "production"
)

// Load reads configuration from defaults, an optional YAML file and the
// environment, then validates it.
func Load() (*Config, error) {
	cfg, err := LoadWithKoanf()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	return cfg, nil
}

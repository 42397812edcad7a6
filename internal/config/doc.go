// Crop Advisor - Crop Recommendation and Agronomic Prediction Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cropadvisor

// Package config loads Crop Advisor server configuration with Koanf v2.
//
// Sources are layered with later sources taking precedence:
//
//  1. Built-in defaults
//  2. YAML file from CONFIG_PATH, or the first of DefaultConfigPaths found
//  3. Environment variables listed in envMappings
//
// Example config.yaml:
//
//	server:
//	  port: 8080
//	  environment: production
//	security:
//	  cors_origins: ["https://advisor.example.org"]
//	logging:
//	  level: info
//	recommend:
//	  artifact_dir: /data/artifacts
//	  default_k: 3
//	  max_k: 10
//	  request_timeout: 5s
//
// Unknown environment variables are ignored. Validate runs after loading and
// rejects unusable values such as a max_k below default_k.
package config

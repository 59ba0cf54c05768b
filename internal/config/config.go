// Watchlens - Watch History Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/watchlens

// Package config loads Watchlens settings from defaults, an optional YAML
// file and environment variables, in that order of precedence.
package config

import (
	"strconv"
	"time"
)

// Config is the complete process configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Upload    UploadConfig    `koanf:"upload"`
	Analytics AnalyticsConfig `koanf:"analytics"`
	Entities  EntitiesConfig  `koanf:"entities"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	Environment     string        `koanf:"environment"` // development, staging, production
}

// UploadConfig bounds uploaded history documents.
type UploadConfig struct {
	MaxBytes  int64  `koanf:"max_bytes"`
	FormField string `koanf:"form_field"`
}

// AnalyticsConfig tunes the analytics engine.
type AnalyticsConfig struct {
	RetentionDays int      `koanf:"retention_days"`
	BatchSize     int      `koanf:"batch_size"`
	MemoSize      int      `koanf:"memo_size"`
	Stopwords     []string `koanf:"stopwords"`
}

// Retention returns RetentionDays as a duration.
func (a AnalyticsConfig) Retention() time.Duration {
	return time.Duration(a.RetentionDays) * 24 * time.Hour
}

// EntitiesConfig selects the named entity model.
type EntitiesConfig struct {
	// Model is "prose" or "none".
	Model string `koanf:"model"`

	// BreakerFailures consecutive extractor failures open the circuit for
	// BreakerTimeout.
	BreakerFailures int           `koanf:"breaker_failures"`
	BreakerTimeout  time.Duration `koanf:"breaker_timeout"`
}

// SecurityConfig holds CORS and rate limit settings.
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// LoggingConfig mirrors logging.Config.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	Level string `koanf:"level"`

	// Format is json or console.
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	Caller bool `koanf:"caller"`
}

// Addr returns host:port for the HTTP listener.
func (s ServerConfig) Addr() string {
	return s.Host + ":" + strconv.Itoa(s.Port)
}

// IsProduction reports whether the server runs in production mode.
func (s ServerConfig) IsProduction() bool {
	return s.Environment == "production"
}

// Load is the entry point used by the binaries.
func Load() (*Config, error) {
	return LoadWithKoanf()
}

// Watchlens - Watch History Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/watchlens

package config

import (
	"fmt"
	"strings"

	"github.com/tomtom215/watchlens/internal/logging"
)

// Validate checks ranges and enumerations.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateUpload(); err != nil {
		return err
	}
	if err := c.validateAnalytics(); err != nil {
		return err
	}
	if err := c.validateSecurity(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive, got %v", c.Server.Timeout)
	}
	switch c.Server.Environment {
	case "development", "staging", "production":
	default:
		return fmt.Errorf("ENVIRONMENT must be development, staging or production, got %q", c.Server.Environment)
	}
	return nil
}

func (c *Config) validateUpload() error {
	if c.Upload.MaxBytes <= 0 {
		return fmt.Errorf("UPLOAD_MAX_BYTES must be positive, got %d", c.Upload.MaxBytes)
	}
	if strings.TrimSpace(c.Upload.FormField) == "" {
		return fmt.Errorf("UPLOAD_FORM_FIELD must not be empty")
	}
	return nil
}

func (c *Config) validateAnalytics() error {
	if c.Analytics.RetentionDays < 1 {
		return fmt.Errorf("RETENTION_DAYS must be at least 1, got %d", c.Analytics.RetentionDays)
	}
	if c.Analytics.BatchSize < 1 {
		return fmt.Errorf("ENTITY_BATCH_SIZE must be at least 1, got %d", c.Analytics.BatchSize)
	}
	if c.Analytics.MemoSize < 0 {
		return fmt.Errorf("ENTITY_MEMO_SIZE must not be negative, got %d", c.Analytics.MemoSize)
	}
	switch c.Entities.Model {
	case "prose", "none":
	default:
		return fmt.Errorf("ENTITY_MODEL must be prose or none, got %q", c.Entities.Model)
	}
	if c.Entities.BreakerFailures < 1 {
		return fmt.Errorf("BREAKER_FAILURES must be at least 1, got %d", c.Entities.BreakerFailures)
	}
	if c.Entities.BreakerTimeout <= 0 {
		return fmt.Errorf("BREAKER_TIMEOUT must be positive, got %s", c.Entities.BreakerTimeout)
	}
	return nil
}

func (c *Config) validateSecurity() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < 1 {
		return fmt.Errorf("RATE_LIMIT_REQS must be at least 1, got %d", c.Security.RateLimitReqs)
	}
	if c.Security.RateLimitWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be positive, got %v", c.Security.RateLimitWindow)
	}
	return nil
}

func (c *Config) validateLogging() error {
	if !logging.ValidLevel(c.Logging.Level) {
		return fmt.Errorf("LOG_LEVEL %q is not a valid level", c.Logging.Level)
	}
	if c.Logging.Format != "json" && c.Logging.Format != "console" {
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.Logging.Format)
	}
	return nil
}

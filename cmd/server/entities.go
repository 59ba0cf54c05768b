// Watchlens - Watch History Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/watchlens

package main

import (
	"fmt"
	"time"

	"github.com/tomtom215/watchlens/internal/config"
	"github.com/tomtom215/watchlens/internal/entities"
	"github.com/tomtom215/watchlens/internal/logging"
)

// loadExtractor builds the entity extractor named by cfg.Model.
func loadExtractor(cfg config.EntitiesConfig) (entities.Extractor, error) {
	switch cfg.Model {
	case "none":
		logging.Warn().Msg("Entity model disabled (ENTITY_MODEL=none); proper noun reports will be empty")
		return entities.Noop{}, nil
	case "prose", "":
		start := time.Now()
		ext, err := entities.NewProseExtractor()
		if err != nil {
			return nil, err
		}
		logging.Info().Dur("duration", time.Since(start)).Msg("Entity model loaded")
		return entities.NewBreaker("entity-model", ext, entities.BreakerSettings{
			ConsecutiveFailures: uint32(cfg.BreakerFailures),
			OpenTimeout:         cfg.BreakerTimeout,
		}), nil
	default:
		return nil, fmt.Errorf("unknown entity model %q", cfg.Model)
	}
}

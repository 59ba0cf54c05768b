// Watchlens - Watch History Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/watchlens

// Package api serves the watch-history analytics over HTTP using the chi
// router. Every analytics endpoint accepts one Takeout document, either as
// a multipart upload or as the raw request body, and answers with the
// standard JSON envelope.
package api

import (
	"sync/atomic"
	"time"

	"github.com/tomtom215/watchlens/internal/analytics"
	"github.com/tomtom215/watchlens/internal/config"
	"github.com/tomtom215/watchlens/internal/entities"
	"github.com/tomtom215/watchlens/internal/logging"
)

// Handler holds the state shared by all endpoints.
type Handler struct {
	cfg       *config.Config
	extractor entities.Extractor
	clock     analytics.Clock
	startTime time.Time
	ready     atomic.Bool
}

// HandlerOption customises a Handler.
type HandlerOption func(*Handler)

// WithClock overrides the reference clock handed to every snapshot.
func WithClock(clock analytics.Clock) HandlerOption {
	return func(h *Handler) {
		h.clock = clock
	}
}

// NewHandler builds a handler around a loaded entity extractor. A nil
// extractor reports no proper nouns. The handler starts ready.
func NewHandler(cfg *config.Config, extractor entities.Extractor, opts ...HandlerOption) *Handler {
	if extractor == nil {
		extractor = entities.Noop{}
	}
	h := &Handler{
		cfg:       cfg,
		extractor: extractor,
		clock:     analytics.LocalClock,
		startTime: time.Now(),
	}
	for _, opt := range opts {
		opt(h)
	}
	h.ready.Store(true)
	return h
}

// SetReady flips the readiness check, e.g. while draining on shutdown.
func (h *Handler) SetReady(ready bool) {
	h.ready.Store(ready)
}

func (h *Handler) snapshotOptions() []analytics.Option {
	a := h.cfg.Analytics
	opts := []analytics.Option{
		analytics.WithClock(h.clock),
		analytics.WithRetention(a.Retention()),
		analytics.WithBatchSize(a.BatchSize),
		analytics.WithMemoSize(a.MemoSize),
		analytics.WithLogger(logging.WithComponent("analytics")),
	}
	if len(a.Stopwords) > 0 {
		opts = append(opts, analytics.WithStopwords(a.Stopwords))
	}
	return opts
}

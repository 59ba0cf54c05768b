// Watchlens - Watch History Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/watchlens

// Package analytics computes the watch-history reports over one canonical
// table.
//
// A Snapshot freezes "now" when it is built, so every report computed from
// it uses the same reference instant. Reports are pure: they never modify
// the table and always return a non-nil slice.
package analytics

import (
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/watchlens/internal/entities"
	"github.com/tomtom215/watchlens/internal/history"
	"github.com/tomtom215/watchlens/internal/logging"
	"github.com/tomtom215/watchlens/internal/models"
)

const (
	// DefaultRetention bounds the working set to recent events.
	DefaultRetention = 30 * 24 * time.Hour

	// DefaultBatchSize is the number of titles sent to the entity
	// extractor per call.
	DefaultBatchSize = 1000

	// DefaultMemoSize caps the per-snapshot title memo.
	DefaultMemoSize = 4096

	// DecayWindowDays is the age after which an event weighs nothing.
	DecayWindowDays = 90
)

// DefaultStopwords are entity texts never reported, compared case-insensitively.
var DefaultStopwords = []string{
	"shorts",
	"audio",
	"remix",
	"official music video",
	"official video",
	"video",
}

// Clock returns the reference instant. It must return a UTC-naive wall
// clock, like the canonical timestamps.
type Clock func() time.Time

// LocalClock reads the local wall clock and stores it as UTC-naive.
func LocalClock() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), now.Hour(), now.Minute(), now.Second(), now.Nanosecond(), time.UTC)
}

// Option configures a Snapshot.
type Option func(*Snapshot)

// WithClock overrides the reference clock.
func WithClock(clock Clock) Option {
	return func(s *Snapshot) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithRetention overrides the retention window. Non-positive keeps the default.
func WithRetention(d time.Duration) Option {
	return func(s *Snapshot) {
		if d > 0 {
			s.retention = d
		}
	}
}

// WithBatchSize overrides the entity batch size. Non-positive keeps the default.
func WithBatchSize(n int) Option {
	return func(s *Snapshot) {
		if n > 0 {
			s.batchSize = n
		}
	}
}

// WithStopwords replaces the entity stoplist.
func WithStopwords(words []string) Option {
	return func(s *Snapshot) {
		s.stopwords = stopwordSet(words)
	}
}

// WithMemoSize sets the title memo capacity; 0 disables the memo.
func WithMemoSize(n int) Option {
	return func(s *Snapshot) {
		s.memoSize = n
	}
}

// WithLogger sets the logger used for batch progress.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func WithLogger(l zerolog.Logger) Option {
	return func(s *Snapshot) {
		s.logger = l
	}
}

// Snapshot is an immutable analytics view over one table.
type Snapshot struct {
	clock     Clock
	now       time.Time
	retention time.Duration
	batchSize int
	memoSize  int
	stopwords map[string]struct{}
	extractor entities.Extractor
	logger    zerolog.Logger

	// retained rows, all with a timestamp, in table order
	events []models.WatchEvent
}

// NewSnapshot captures now, drops rows without a timestamp and keeps rows
// no older than the retention window. A nil extractor finds no entities.
func NewSnapshot(table *history.Table, extractor entities.Extractor, opts ...Option) *Snapshot {
	s := &Snapshot{
		clock:     LocalClock,
		retention: DefaultRetention,
		batchSize: DefaultBatchSize,
		memoSize:  DefaultMemoSize,
		stopwords: stopwordSet(DefaultStopwords),
		logger:    logging.WithComponent("analytics"),
	}
	for _, opt := range opts {
		opt(s)
	}

	if extractor == nil {
		extractor = entities.Noop{}
	}
	if s.memoSize > 0 {
		extractor = entities.NewMemoized(extractor, s.memoSize)
	}
	s.extractor = extractor

	s.now = s.clock()
	cutoff := s.now.Add(-s.retention)
	s.events = make([]models.WatchEvent, 0)
	if table != nil {
		table.Each(func(_ int, e models.WatchEvent) {
			if e.Timestamp == nil || e.Timestamp.Before(cutoff) {
				return
			}
			s.events = append(s.events, e)
		})
	}
	return s
}

// Now returns the frozen reference instant.
func (s *Snapshot) Now() time.Time {
	return s.now
}

// Len returns the size of the working set.
func (s *Snapshot) Len() int {
	return len(s.events)
}

func (s *Snapshot) since(cutoff time.Time) []models.WatchEvent {
	out := make([]models.WatchEvent, 0, len(s.events))
	for _, e := range s.events {
		if !e.Timestamp.Before(cutoff) {
			out = append(out, e)
		}
	}
	return out
}

func (s *Snapshot) isStopword(text string) bool {
	_, ok := s.stopwords[strings.ToLower(text)]
	return ok
}

func stopwordSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[strings.ToLower(w)] = struct{}{}
	}
	return set
}

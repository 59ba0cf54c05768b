// Watchlens - Watch History Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/watchlens

// Package entities finds named entities in video titles.
//
// The analytics engine only depends on the Extractor interface. The
// production implementation is backed by prose; its model is loaded once per
// process and shared by every request.
package entities

import (
	"context"
	"errors"

	"github.com/tomtom215/watchlens/internal/cache"
)

// ErrModelUnavailable is returned when the NLP model cannot be loaded.
var ErrModelUnavailable = errors.New("entity model unavailable")

// Entity is a labelled span of text.
type Entity struct {
	Text  string `json:"text"`
	Label string `json:"label"`
}

// Extractor returns the entities of each text, index-aligned with texts.
type Extractor interface {
	Extract(ctx context.Context, texts []string) ([][]Entity, error)
}

// Proper noun labels counted by the analytics engine.
const (
	LabelPerson  = "PERSON"
	LabelGPE     = "GPE"
	LabelOrg     = "ORG"
	LabelProduct = "PRODUCT"
	LabelEvent   = "EVENT"
)

var properNounLabels = map[string]struct{}{
	LabelPerson:  {},
	LabelGPE:     {},
	LabelOrg:     {},
	LabelProduct: {},
	LabelEvent:   {},
}

// IsProperNoun reports whether label is one of the counted entity kinds.
func IsProperNoun(label string) bool {
	_, ok := properNounLabels[label]
	return ok
}

// Noop finds nothing. It backs the "none" model setting.
type Noop struct{}

// Extract implements Extractor.
func (Noop) Extract(_ context.Context, texts []string) ([][]Entity, error) {
	return make([][]Entity, len(texts)), nil
}

// Memoized wraps an Extractor with a title-keyed LRU so repeated titles are
// analysed once.
type Memoized struct {
	next Extractor
	memo *cache.LRU[string, []Entity]
}

// NewMemoized returns next wrapped with a memo of the given capacity.
func NewMemoized(next Extractor, capacity int) *Memoized {
	return &Memoized{next: next, memo: cache.NewLRU[string, []Entity](capacity)}
}

// Extract implements Extractor. Only distinct titles missing from the memo
// reach the wrapped extractor, in one call.
func (m *Memoized) Extract(ctx context.Context, texts []string) ([][]Entity, error) {
	out := make([][]Entity, len(texts))

	var missing []string
	pending := make(map[string][]int)
	for i, text := range texts {
		if ents, ok := m.memo.Get(text); ok {
			out[i] = ents
			continue
		}
		if _, queued := pending[text]; !queued {
			missing = append(missing, text)
		}
		pending[text] = append(pending[text], i)
	}
	if len(missing) == 0 {
		return out, nil
	}

	found, err := m.next.Extract(ctx, missing)
	if err != nil {
		return nil, err
	}
	for j, text := range missing {
		var ents []Entity
		if j < len(found) {
			ents = found[j]
		}
		m.memo.Add(text, ents)
		for _, i := range pending[text] {
			out[i] = ents
		}
	}
	return out, nil
}

// Stats returns memo hits and misses.
func (m *Memoized) Stats() (hits, misses int64) {
	hits, misses, _ = m.memo.Stats()
	return hits, misses
}

// Watchlens - Watch History Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/watchlens

package entities

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jdkato/prose/v2"

	"github.com/tomtom215/watchlens/internal/logging"
)

// ProseExtractor runs prose's averaged-perceptron NER over titles.
// The bundled model only emits PERSON and GPE labels.
type ProseExtractor struct {
	// prose models are not documented as safe for concurrent use
	mu    sync.Mutex
	model *prose.Model
}

// NewProseExtractor loads the embedded prose model. Call it once at startup.
func NewProseExtractor() (ext *ProseExtractor, err error) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			ext, err = nil, fmt.Errorf("%w: %v", ErrModelUnavailable, r)
		}
	}()

	doc, err := prose.NewDocument("Warm up the model.", prose.WithSegmentation(false))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrModelUnavailable, err)
	}
	if doc.Model == nil {
		return nil, ErrModelUnavailable
	}

	logging.Info().Dur("duration", time.Since(start)).Msg("entity model loaded")
	return &ProseExtractor{model: doc.Model}, nil
}

// Extract implements Extractor. ctx is checked between titles.
func (p *ProseExtractor) Extract(ctx context.Context, texts []string) ([][]Entity, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([][]Entity, len(texts))
	for i, text := range texts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if text == "" {
			continue
		}

		doc, err := prose.NewDocument(text,
			prose.UsingModel(p.model),
			prose.WithSegmentation(false))
		if err != nil {
			return nil, fmt.Errorf("analyse title %d: %w", i, err)
		}
		for _, ent := range doc.Entities() {
			out[i] = append(out[i], Entity{Text: ent.Text, Label: ent.Label})
		}
	}
	return out, nil
}

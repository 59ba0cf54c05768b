// Watchlens - Watch History Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/watchlens

package entities

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
)

var (
	proseOnce sync.Once
	proseExt  *ProseExtractor
	proseErr  error
)

// loadProse shares one model across tests; loading takes seconds.
func loadProse(t *testing.T) *ProseExtractor {
	t.Helper()
	if testing.Short() {
		t.Skip("loads the prose model")
	}
	proseOnce.Do(func() { proseExt, proseErr = NewProseExtractor() })
	if proseErr != nil {
		t.Fatalf("NewProseExtractor: %v", proseErr)
	}
	return proseExt
}

func TestProseExtractorLabels(t *testing.T) {
	ext := loadProse(t)

	titles := []string{
		"Barack Obama visits Paris with Google engineers",
		"Apple iPhone 15 review",
		"Taylor Swift - Shake It Off (Official Video)",
		"World Cup 2022 highlights Argentina vs France",
		"",
	}
	out, err := ext.Extract(context.Background(), titles)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(out) != len(titles) {
		t.Fatalf("len(Extract) = %d, want %d", len(out), len(titles))
	}
	if out[4] != nil {
		t.Errorf("empty title entities = %v, want none", out[4])
	}

	// The bundled model only knows PERSON and GPE; organisations and
	// products come back as GPE.
	found := map[string]string{}
	for i, ents := range out {
		for _, e := range ents {
			if e.Label != LabelPerson && e.Label != LabelGPE {
				t.Errorf("title %d: entity %q has label %q, want PERSON or GPE", i, e.Text, e.Label)
			}
			if !strings.Contains(titles[i], e.Text) {
				t.Errorf("title %d: entity %q not in %q", i, e.Text, titles[i])
			}
			found[e.Text] = e.Label
		}
	}
	for _, name := range []string{"Google", "Apple"} {
		label, ok := found[name]
		if !ok {
			t.Errorf("entity %q not found in %v", name, found)
			continue
		}
		if !IsProperNoun(label) {
			t.Errorf("entity %q label %q is not counted as a proper noun", name, label)
		}
	}
}

func TestProseExtractorCancelled(t *testing.T) {
	ext := loadProse(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := ext.Extract(ctx, []string{"Barack Obama in Paris"}); !errors.Is(err, context.Canceled) {
		t.Errorf("Extract error = %v, want context.Canceled", err)
	}
}

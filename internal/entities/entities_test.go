// Watchlens - Watch History Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/watchlens

package entities

import (
	"context"
	"errors"
	"testing"
)

type countingExtractor struct {
	calls int
	seen  []string
	err   error
}

func (c *countingExtractor) Extract(_ context.Context, texts []string) ([][]Entity, error) {
	c.calls++
	c.seen = append(c.seen, texts...)
	if c.err != nil {
		return nil, c.err
	}
	out := make([][]Entity, len(texts))
	for i, t := range texts {
		out[i] = []Entity{{Text: t, Label: LabelOrg}}
	}
	return out, nil
}

func TestIsProperNoun(t *testing.T) {
	t.Parallel()

	for _, label := range []string{"PERSON", "GPE", "ORG", "PRODUCT", "EVENT"} {
		if !IsProperNoun(label) {
			t.Errorf("IsProperNoun(%s) = false, want true", label)
		}
	}
	for _, label := range []string{"DATE", "MONEY", "person", ""} {
		if IsProperNoun(label) {
			t.Errorf("IsProperNoun(%q) = true, want false", label)
		}
	}
}

func TestNoop(t *testing.T) {
	t.Parallel()

	out, err := Noop{}.Extract(context.Background(), []string{"a", "b"})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(out) != 2 || out[0] != nil {
		t.Errorf("Extract = %v, want two empty entries", out)
	}
}

func TestMemoized(t *testing.T) {
	t.Parallel()

	inner := &countingExtractor{}
	m := NewMemoized(inner, 10)
	ctx := context.Background()

	first, err := m.Extract(ctx, []string{"Paris", "Berlin", "Paris"})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(first) != 3 || first[2][0].Text != "Paris" {
		t.Errorf("Extract = %v", first)
	}

	second, err := m.Extract(ctx, []string{"Berlin", "Paris"})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if second[0][0].Text != "Berlin" || second[1][0].Text != "Paris" {
		t.Errorf("Extract = %v", second)
	}
	if inner.calls != 1 {
		t.Errorf("inner calls = %d, want 1", inner.calls)
	}
	if len(inner.seen) != 2 {
		t.Errorf("inner saw %v, want each title once", inner.seen)
	}
	hits, _ := m.Stats()
	if hits != 2 {
		t.Errorf("hits = %d, want 2", hits)
	}
}

func TestMemoizedError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	m := NewMemoized(&countingExtractor{err: boom}, 10)
	if _, err := m.Extract(context.Background(), []string{"x"}); !errors.Is(err, boom) {
		t.Errorf("Extract error = %v, want boom", err)
	}
}

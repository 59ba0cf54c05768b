// Watchlens - Watch History Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/watchlens

package entities

import (
	"context"
	"errors"
	"fmt"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/watchlens/internal/logging"
	"github.com/tomtom215/watchlens/internal/metrics"
)

// BreakerSettings tunes NewBreaker.
type BreakerSettings struct {
	// ConsecutiveFailures opens the circuit.
	ConsecutiveFailures uint32
	// OpenTimeout is how long the circuit stays open before a trial call.
	OpenTimeout time.Duration
}

// DefaultBreakerSettings opens after five straight failures for 30 seconds.
var DefaultBreakerSettings = BreakerSettings{
	ConsecutiveFailures: 5,
	OpenTimeout:         30 * time.Second,
}

// Breaker wraps an Extractor with a circuit breaker. While the circuit is
// open calls fail immediately with ErrModelUnavailable.
type Breaker struct {
	next Extractor
	cb   *gobreaker.CircuitBreaker[[][]Entity]
	name string
}

// NewBreaker returns next guarded by a circuit breaker named name.
func NewBreaker(name string, next Extractor, st BreakerSettings) *Breaker {
	if st.ConsecutiveFailures == 0 {
		st.ConsecutiveFailures = DefaultBreakerSettings.ConsecutiveFailures
	}
	if st.OpenTimeout <= 0 {
		st.OpenTimeout = DefaultBreakerSettings.OpenTimeout
	}

	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)

	cb := gobreaker.NewCircuitBreaker[[][]Entity](gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     st.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= st.ConsecutiveFailures
		},
		// A cancelled request says nothing about the model.
		IsExcluded: func(err error) bool {
			return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("circuit breaker state transition")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateValue(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, from.String(), to.String()).Inc()
		},
	})

	return &Breaker{next: next, cb: cb, name: name}
}

// Extract implements Extractor.
func (b *Breaker) Extract(ctx context.Context, texts []string) ([][]Entity, error) {
	out, err := b.cb.Execute(func() ([][]Entity, error) {
		return b.next.Extract(ctx, texts)
	})
	switch {
	case err == nil:
		metrics.CircuitBreakerRequests.WithLabelValues(b.name, "success").Inc()
		return out, nil
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		metrics.CircuitBreakerRequests.WithLabelValues(b.name, "rejected").Inc()
		return nil, fmt.Errorf("%w: %w", ErrModelUnavailable, err)
	default:
		metrics.CircuitBreakerRequests.WithLabelValues(b.name, "failure").Inc()
		return nil, err
	}
}

// State returns the current breaker state.
func (b *Breaker) State() gobreaker.State {
	return b.cb.State()
}

func stateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}

// Watchlens - Watch History Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/watchlens

// Package metrics holds the process Prometheus collectors:
// API traffic, history ingestion and analytics timings.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// History Ingest Metrics
	IngestDocuments = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "history_ingest_documents_total",
			Help: "Uploaded history documents by detected format and outcome",
		},
		[]string{"format", "outcome"},
	)

	IngestUploadBytes = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "history_ingest_upload_bytes",
			Help:    "Size of uploaded history documents",
			Buckets: prometheus.ExponentialBuckets(1024, 4, 10), // 1 KiB .. 256 MiB
		},
	)

	EventsExtracted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "history_events_extracted_total",
			Help: "Watch events extracted from uploads",
		},
		[]string{"format"},
	)

	EventsSkipped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "history_events_skipped_total",
			Help: "Entries dropped during extraction or normalisation",
		},
		[]string{"reason"}, // "no_link", "ad", "invalid_timestamp"
	)

	// Analytics Metrics
	AnalyticsDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "analytics_operation_duration_seconds",
			Help:    "Duration of analytics report computations",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	EntityBatches = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "analytics_entity_batches_total",
			Help: "Title batches sent to the entity extractor",
		},
	)

	// CircuitBreakerState is 0 closed, 1 half-open, 2 open.
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Calls through a circuit breaker by result",
		},
		[]string{"name", "result"}, // result: success, failure, rejected
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_transitions_total",
			Help: "Circuit breaker state transitions",
		},
		[]string{"name", "from", "to"},
	)
)

// Ingest outcomes.
const (
	OutcomeOK        = "ok"
	OutcomeMalformed = "malformed"
	OutcomeTooLarge  = "too_large"
)

// IngestSummary is the subset of extraction statistics the metrics care
// about.
type IngestSummary struct {
	Format            string
	Extracted         int
	SkippedNoLink     int
	SkippedAds        int
	InvalidTimestamps int
}

// RecordIngest records one successfully extracted upload.
func RecordIngest(s IngestSummary, size int) {
	IngestDocuments.WithLabelValues(s.Format, OutcomeOK).Inc()
	IngestUploadBytes.Observe(float64(size))
	EventsExtracted.WithLabelValues(s.Format).Add(float64(s.Extracted))
	EventsSkipped.WithLabelValues("no_link").Add(float64(s.SkippedNoLink))
	EventsSkipped.WithLabelValues("ad").Add(float64(s.SkippedAds))
	EventsSkipped.WithLabelValues("invalid_timestamp").Add(float64(s.InvalidTimestamps))
}

// RecordIngestFailure records an upload rejected before analytics ran.
func RecordIngestFailure(format, outcome string) {
	if format == "" {
		format = "unknown"
	}
	IngestDocuments.WithLabelValues(format, outcome).Inc()
}

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

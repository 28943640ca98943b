// FitRec - Adaptive Workout Recommendation Engine
// Copyright 2026 L. F. Braga (lfbraga)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/lfbraga/fitrec

// Package metrics registers the Prometheus instruments for the
// recommendation core: generation latency, cache efficiency, feedback
// ingestion, store operations, and the HTTP surface.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Generation metrics
	GenerationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "fitrec_generation_duration_seconds",
			Help:    "Duration of recommendation list generation in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	GenerationErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "fitrec_generation_errors_total",
			Help: "Total number of failed generation attempts",
		},
	)

	GenerationResults = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "fitrec_generation_results",
			Help:    "Number of results per generated list",
			Buckets: []float64{1, 2, 5, 10, 20, 50},
		},
	)

	// Cache metrics
	CacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "fitrec_cache_hits_total",
			Help: "Total number of recommendation cache hits",
		},
	)

	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "fitrec_cache_misses_total",
			Help: "Total number of recommendation cache misses",
		},
	)

	CacheInvalidations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fitrec_cache_invalidations_total",
			Help: "Total number of cache invalidations by cause",
		},
		[]string{"cause"}, // "feedback", "profile_update", "catalog_update", "learning", "reset"
	)

	// Feedback metrics
	FeedbackReceived = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fitrec_feedback_received_total",
			Help: "Total number of feedback events by outcome",
		},
		[]string{"outcome"}, // "accepted", "item_not_found", "recommendation_not_found"
	)

	FeedbackQuality = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "fitrec_feedback_quality",
			Help:    "Evaluated quality score of accepted feedback",
			Buckets: prometheus.LinearBuckets(0, 0.1, 11),
		},
	)

	// Pubsub metrics
	PublishDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "fitrec_publish_dropped_total",
			Help: "Total number of list publications dropped due to slow subscribers",
		},
	)

	// Store metrics
	StoreOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fitrec_store_operation_duration_seconds",
			Help:    "Duration of document store operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	StoreErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fitrec_store_errors_total",
			Help: "Total number of document store errors",
		},
		[]string{"operation"},
	)

	// API metrics
	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fitrec_api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)

// ObserveAPIRequest records one API request observation.
func ObserveAPIRequest(method, path string, status int, duration time.Duration) {
	APIRequestDuration.WithLabelValues(method, path, strconv.Itoa(status)).Observe(duration.Seconds())
}

// ObserveStoreOperation records one store operation, counting the error
// when err is non-nil.
func ObserveStoreOperation(operation string, duration time.Duration, err error) {
	StoreOperationDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if err != nil {
		StoreErrors.WithLabelValues(operation).Inc()
	}
}

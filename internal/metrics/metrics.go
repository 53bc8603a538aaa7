// Folio - Book Catalog Covers and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

// Package metrics holds the Prometheus instrumentation for Folio: cover
// quality, fallback lookups, recommendation assembly, the DuckDB store,
// the store circuit breaker and the HTTP API.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Cover Metrics
	CoverTiers = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "folio_cover_tier_total",
			Help: "Covers served by quality tier (0=unusable .. 5=best)",
		},
		[]string{"surface", "tier"}, // surface: "card", "list", "detail", "recommendation"
	)

	CoverFallbackLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "folio_cover_fallback_lookups_total",
			Help: "Books looked up in the image-links store, by outcome",
		},
		[]string{"result"}, // "found", "missing"
	)

	CoverFallbackErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "folio_cover_fallback_errors_total",
			Help: "Fallback cover fetches that failed and were degraded or surfaced",
		},
		[]string{"surface"},
	)

	// Recommendation Metrics
	RecommendationsMerged = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "folio_recommendations_merged_total",
			Help: "Recommendations included in merged lists, by source bucket",
		},
		[]string{"source"},
	)

	RecommendationResultSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "folio_recommendation_result_size",
			Help:    "Number of recommendations returned per request",
			Buckets: []float64{0, 1, 3, 6, 10, 15, 20, 30, 50},
		},
	)

	ClusterCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "folio_cluster_cache_hits_total",
			Help: "Work cluster lookups served from cache",
		},
	)

	ClusterCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "folio_cluster_cache_misses_total",
			Help: "Work cluster lookups that went to the store",
		},
	)

	ClusterCacheEvictions = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "folio_cluster_cache_expired_total",
			Help: "Expired work cluster entries removed by the janitor",
		},
	)

	// Database Metrics
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "duckdb_query_duration_seconds",
			Help:    "Duration of DuckDB queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "table"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "duckdb_query_errors_total",
			Help: "Total number of DuckDB query errors",
		},
		[]string{"operation", "table", "error_type"},
	)

	// Circuit Breaker Metrics
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
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// API Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of in-flight API requests",
		},
	)

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)
)

// RecordCoverTier counts a cover served on surface with the given tier.
func RecordCoverTier(surface string, tier int) {
	CoverTiers.WithLabelValues(surface, strconv.Itoa(tier)).Inc()
}

// RecordFallbackLookup records a batch fallback lookup for requested books
// of which found had an eligible image.
func RecordFallbackLookup(requested, found int) {
	if found > 0 {
		CoverFallbackLookups.WithLabelValues("found").Add(float64(found))
	}
	if missing := requested - found; missing > 0 {
		CoverFallbackLookups.WithLabelValues("missing").Add(float64(missing))
	}
}

// RecordFallbackError counts a failed fallback fetch on surface.
func RecordFallbackError(surface string) {
	CoverFallbackErrors.WithLabelValues(surface).Inc()
}

// RecordRecommendations records one merged recommendation list.
func RecordRecommendations(bySource map[string]int, total int) {
	for source, n := range bySource {
		RecommendationsMerged.WithLabelValues(source).Add(float64(n))
	}
	RecommendationResultSize.Observe(float64(total))
}

// RecordClusterCache records a work cluster cache lookup.
func RecordClusterCache(hit bool) {
	if hit {
		ClusterCacheHits.Inc()
	} else {
		ClusterCacheMisses.Inc()
	}
}

// RecordClusterCacheExpired counts entries removed by the cache janitor.
func RecordClusterCacheExpired(n int) {
	if n > 0 {
		ClusterCacheEvictions.Add(float64(n))
	}
}

// RecordDBQuery records a database query metric
func RecordDBQuery(operation, table string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
	if err != nil {
		errorType := err.Error()
		// Truncate long error messages
		if len(errorType) > 50 {
			errorType = errorType[:50]
		}
		DBQueryErrors.WithLabelValues(operation, table, errorType).Inc()
	}
}

// RecordBreakerResult counts a call through the named circuit breaker.
func RecordBreakerResult(name, result string) {
	CircuitBreakerRequests.WithLabelValues(name, result).Inc()
}

// RecordBreakerTransition records a state change and updates the state gauge.
func RecordBreakerTransition(name, from, to string) {
	CircuitBreakerTransitions.WithLabelValues(name, from, to).Inc()
	CircuitBreakerState.WithLabelValues(name).Set(breakerStateValue(to))
}

func breakerStateValue(state string) float64 {
	switch state {
	case "half-open":
		return 1
	case "open":
		return 2
	default:
		return 0
	}
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

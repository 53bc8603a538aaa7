// Folio - Book Catalog Covers and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package middleware

import (
	"cmp"
	"net/http"
	"slices"
	"sync"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/tomtom215/folio/internal/logging"
)

// DefaultSlowRequestThreshold is the latency above which a request is logged.
const DefaultSlowRequestThreshold = time.Second

// RequestMetrics is one observed request.
type RequestMetrics struct {
	Route      string
	Method     string
	Duration   time.Duration
	StatusCode int
	Timestamp  time.Time
}

// EndpointStats aggregates the requests in the window for one route.
type EndpointStats struct {
	Endpoint     string  `json:"endpoint"`
	RequestCount int64   `json:"request_count"`
	ErrorCount   int64   `json:"error_count"`
	AvgMS        float64 `json:"avg_ms"`
	P50MS        int64   `json:"p50_ms"`
	P95MS        int64   `json:"p95_ms"`
	P99MS        int64   `json:"p99_ms"`
	MaxMS        int64   `json:"max_ms"`
}

// PerformanceMonitor keeps a fixed-size window of recent requests.
type PerformanceMonitor struct {
	mu            sync.RWMutex
	window        []RequestMetrics
	next          int
	full          bool
	slowThreshold time.Duration
	now           func() time.Time
}

// NewPerformanceMonitor creates a monitor holding the last size requests.
// A non-positive slowThreshold uses DefaultSlowRequestThreshold.
func NewPerformanceMonitor(size int, slowThreshold time.Duration) *PerformanceMonitor {
	if size <= 0 {
		size = 1000
	}
	if slowThreshold <= 0 {
		slowThreshold = DefaultSlowRequestThreshold
	}
	return &PerformanceMonitor{
		window:        make([]RequestMetrics, size),
		slowThreshold: slowThreshold,
		now:           time.Now,
	}
}

// RecordRequest adds m to the window, overwriting the oldest entry when full.
func (pm *PerformanceMonitor) RecordRequest(m RequestMetrics) {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	pm.window[pm.next] = m
	pm.next = (pm.next + 1) % len(pm.window)
	if pm.next == 0 {
		pm.full = true
	}
}

// Len returns the number of requests currently in the window.
func (pm *PerformanceMonitor) Len() int {
	pm.mu.RLock()
	defer pm.mu.RUnlock()
	return pm.lenLocked()
}

func (pm *PerformanceMonitor) lenLocked() int {
	if pm.full {
		return len(pm.window)
	}
	return pm.next
}

// Stats returns per-endpoint statistics, busiest endpoint first.
func (pm *PerformanceMonitor) Stats() []EndpointStats {
	pm.mu.RLock()
	byEndpoint := make(map[string][]RequestMetrics)
	for i := 0; i < pm.lenLocked(); i++ {
		m := pm.window[i]
		key := m.Method + " " + m.Route
		byEndpoint[key] = append(byEndpoint[key], m)
	}
	pm.mu.RUnlock()

	stats := make([]EndpointStats, 0, len(byEndpoint))
	for endpoint, reqs := range byEndpoint {
		durations := make([]int64, len(reqs))
		var sum, errs int64
		for i, m := range reqs {
			durations[i] = m.Duration.Milliseconds()
			sum += durations[i]
			if m.StatusCode >= http.StatusInternalServerError {
				errs++
			}
		}
		slices.Sort(durations)

		stats = append(stats, EndpointStats{
			Endpoint:     endpoint,
			RequestCount: int64(len(durations)),
			ErrorCount:   errs,
			AvgMS:        float64(sum) / float64(len(durations)),
			P50MS:        percentile(durations, 0.50),
			P95MS:        percentile(durations, 0.95),
			P99MS:        percentile(durations, 0.99),
			MaxMS:        durations[len(durations)-1],
		})
	}

	slices.SortFunc(stats, func(a, b EndpointStats) int {
		if c := cmp.Compare(b.RequestCount, a.RequestCount); c != 0 {
			return c
		}
		return cmp.Compare(a.Endpoint, b.Endpoint)
	})
	return stats
}

// Middleware records every request and warns about slow ones.
func (pm *PerformanceMonitor) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := pm.now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		duration := pm.now().Sub(start)
		route := RoutePattern(r)
		pm.RecordRequest(RequestMetrics{
			Route:      route,
			Method:     r.Method,
			Duration:   duration,
			StatusCode: statusOf(ww),
			Timestamp:  start,
		})

		if duration > pm.slowThreshold {
			logging.Ctx(r.Context()).Warn().
				Str("method", r.Method).
				Str("route", route).
				Dur("duration", duration).
				Dur("threshold", pm.slowThreshold).
				Msg("Slow request detected")
		}
	})
}

// percentile picks the nearest-rank value from a sorted slice.
func percentile(sorted []int64, p float64) int64 {
	if len(sorted) == 0 {
		return 0
	}
	return sorted[int(float64(len(sorted)-1)*p)]
}

// Folio - Book Catalog Covers and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

/*
Package middleware provides HTTP middleware for the Folio API.

All middleware uses the chi signature func(http.Handler) http.Handler and
captures response status through chi's WrapResponseWriter.

Key Components:

  - RequestID: honors or generates X-Request-ID and seeds the logging context
  - PrometheusMetrics: api_requests_total, api_request_duration_seconds and
    api_active_requests labeled by chi route pattern
  - PerformanceMonitor: sliding window of request latencies with per-route
    percentiles and slow-request warnings

Typical stack:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.PrometheusMetrics)
	r.Use(perfMon.Middleware)

Route patterns are read after the handler runs, when chi has finished
routing, so /api/v1/books/{id} is one label value regardless of the ID.
*/
package middleware

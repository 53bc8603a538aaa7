// Folio - Book Catalog Covers and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package models

import (
	"time"
)

// APIResponse is the envelope used by every HTTP endpoint.
//
// Status is "success" with Data populated, or "error" with Error populated:
//
//	{
//	  "status": "success",
//	  "data": [{"id": "b1", "title": "Dune", "cover": {...}}],
//	  "metadata": {"timestamp": "2026-03-01T12:00:00Z", "query_time_ms": 12}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata carries response timing information.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
	Count       *int      `json:"count,omitempty"`
}

// APIError is a machine-readable error payload.
//
// Codes in use: VALIDATION_ERROR, NOT_FOUND, DATABASE_ERROR,
// SERVICE_UNAVAILABLE, RATE_LIMIT_EXCEEDED, INTERNAL_ERROR.
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// CoverResolveRequest is the body of POST /api/v1/covers/resolve.
type CoverResolveRequest struct {
	Primary             string `json:"primary" validate:"max=2048"`
	FallbackExternalURL string `json:"fallback_external_url" validate:"max=2048,cover_url"`
	Width               *int   `json:"width,omitempty" validate:"omitempty,min=1,max=20000"`
	Height              *int   `json:"height,omitempty" validate:"omitempty,min=1,max=20000"`
	HighResolution      *bool  `json:"high_resolution,omitempty"`
	Grayscale           *bool  `json:"grayscale,omitempty"`
}

// CoverResolveResponse is the result of POST /api/v1/covers/resolve.
type CoverResolveResponse struct {
	Cover         CoverFields `json:"cover"`
	NeedsFallback bool        `json:"needs_fallback"`
}

// HealthStatus is served by the readiness endpoint.
type HealthStatus struct {
	Status    string `json:"status"`
	Version   string `json:"version"`
	Database  bool   `json:"database_connected"`
	Breaker   string `json:"store_breaker_state"`
	UptimeSec int64  `json:"uptime_seconds"`
}

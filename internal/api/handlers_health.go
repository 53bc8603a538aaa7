// Folio - Book Catalog Covers and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/folio/internal/middleware"
	"github.com/tomtom215/folio/internal/models"
	"github.com/tomtom215/folio/internal/recommend"
)

// readinessTimeout bounds the database ping of the readiness probe.
const readinessTimeout = 2 * time.Second

// HealthLive handles liveness probe requests. It never touches the store.
func (h *Handler) HealthLive(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: map[string]interface{}{
			"alive":  true,
			"uptime": time.Since(h.startTime).Seconds(),
		},
		Metadata: models.Metadata{Timestamp: time.Now().UTC()},
	})
}

// HealthReady handles readiness probe requests. It returns 503 when the
// database does not answer a ping or the store breaker is open.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
	defer cancel()

	dbConnected := h.deps.Store != nil && h.deps.Store.Ping(ctx) == nil

	breaker := "closed"
	if h.deps.BreakerState != nil {
		breaker = h.deps.BreakerState()
	}

	health := models.HealthStatus{
		Status:    "ready",
		Version:   h.deps.Version,
		Database:  dbConnected,
		Breaker:   breaker,
		UptimeSec: int64(time.Since(h.startTime).Seconds()),
	}

	statusCode := http.StatusOK
	status := "success"
	if !dbConnected || breaker == "open" {
		statusCode = http.StatusServiceUnavailable
		status = "error"
		health.Status = "not_ready"
	}

	respondJSON(w, statusCode, &models.APIResponse{
		Status:   status,
		Data:     health,
		Metadata: models.Metadata{Timestamp: time.Now().UTC()},
	})
}

// StatsResponse is served by GET /api/v1/stats.
type StatsResponse struct {
	Recommendations recommend.Stats            `json:"recommendations"`
	Endpoints       []middleware.EndpointStats `json:"endpoints"`
}

// Stats returns recommendation counters and per-route latency statistics.
func (h *Handler) Stats(w http.ResponseWriter, _ *http.Request) {
	start := time.Now()
	resp := StatsResponse{Endpoints: []middleware.EndpointStats{}}
	if h.deps.Recommender != nil {
		resp.Recommendations = h.deps.Recommender.Stats()
	}
	if h.deps.PerfMon != nil {
		resp.Endpoints = h.deps.PerfMon.Stats()
	}
	respondSuccess(w, resp, nil, start)
}

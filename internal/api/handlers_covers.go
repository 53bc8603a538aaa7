// Folio - Book Catalog Covers and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/folio/internal/covers"
	"github.com/tomtom215/folio/internal/metrics"
	"github.com/tomtom215/folio/internal/models"
)

// ResolveCover handles POST /api/v1/covers/resolve. It resolves and scores
// a raw cover reference without touching the store.
func (h *Handler) ResolveCover(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.CoverResolveRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeValidation, err.Error(), nil)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		writeError(w, http.StatusBadRequest, apiErr)
		return
	}

	fields := h.deps.Scorer.Fields(covers.CoverReference{
		Primary:             req.Primary,
		FallbackExternalURL: req.FallbackExternalURL,
		Width:               req.Width,
		Height:              req.Height,
		HighResolution:      req.HighResolution,
		Grayscale:           req.Grayscale,
	})
	metrics.RecordCoverTier("resolve", fields.QualityTier)

	respondSuccess(w, models.CoverResolveResponse{
		Cover:         fields,
		NeedsFallback: h.deps.Scorer.Resolver().NeedsFallback(fields.URL),
	}, nil, start)
}

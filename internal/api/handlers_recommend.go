// Folio - Book Catalog Covers and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

// BookRecommendations handles GET /api/v1/books/{id}/recommendations.
// An empty section is a success with an empty list; store failures are
// errors so clients can tell "nothing to show" from "try again".
func (h *Handler) BookRecommendations(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	limit, err := getIntParam(r, "limit", 0)
	if err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeValidation, err.Error(), nil)
		return
	}

	req := RecommendationsRequest{BookID: chi.URLParam(r, "id"), Limit: limit}
	if apiErr := validateRequest(&req); apiErr != nil {
		writeError(w, http.StatusBadRequest, apiErr)
		return
	}

	recs, err := h.deps.Recommender.FetchRecommendations(r.Context(), req.BookID, req.Limit)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	count := len(recs)
	respondSuccess(w, recs, &count, start)
}

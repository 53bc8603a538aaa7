// Folio - Book Catalog Covers and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/folio/internal/covers"
)

// Books handles GET /api/v1/books?ids=a,b.
//
// view=card (default) returns BookCards, view=list returns BookListItems.
// sort=cover orders results by cover quality, best first.
func (h *Handler) Books(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	q := r.URL.Query()

	req := BooksRequest{
		IDs:  splitIDs(q.Get("ids")),
		View: strings.ToLower(strings.TrimSpace(q.Get("view"))),
		Sort: strings.ToLower(strings.TrimSpace(q.Get("sort"))),
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		writeError(w, http.StatusBadRequest, apiErr)
		return
	}
	sortByCover := req.Sort == "cover"

	if req.View == ViewList {
		items, err := h.deps.Catalog.List(r.Context(), req.IDs, sortByCover)
		if err != nil {
			respondServiceError(w, r, err)
			return
		}
		count := len(items)
		respondSuccess(w, items, &count, start)
		return
	}

	cards, err := h.deps.Catalog.Cards(r.Context(), req.IDs)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	if sortByCover {
		covers.SortByQuality(cards)
	}
	count := len(cards)
	respondSuccess(w, cards, &count, start)
}

// Book handles GET /api/v1/books/{id}.
func (h *Handler) Book(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	req := BookRequest{BookID: chi.URLParam(r, "id")}
	if apiErr := validateRequest(&req); apiErr != nil {
		writeError(w, http.StatusBadRequest, apiErr)
		return
	}

	detail, err := h.deps.Catalog.Detail(r.Context(), req.BookID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondSuccess(w, detail, nil, start)
}

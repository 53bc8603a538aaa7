// Folio - Book Catalog Covers and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/tomtom215/folio/internal/catalog"
	"github.com/tomtom215/folio/internal/database"
	"github.com/tomtom215/folio/internal/recommend"
)

// Error codes for API responses
const (
	ErrCodeValidation         = "VALIDATION_ERROR"
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeDatabase           = "DATABASE_ERROR"
	ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE"
	ErrCodeTimeout            = "TIMEOUT"
	ErrCodeRateLimited        = "RATE_LIMIT_EXCEEDED"
	ErrCodeInternal           = "INTERNAL_ERROR"
)

// retryAfterSeconds is advertised while the store breaker is open.
const retryAfterSeconds = "30"

// respondServiceError maps a service error to a status code and writes it.
func respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, catalog.ErrBookNotFound):
		respondError(w, http.StatusNotFound, ErrCodeNotFound, "Book not found", nil)
	case errors.Is(err, recommend.ErrInvalidBookID):
		respondError(w, http.StatusBadRequest, ErrCodeValidation, "Invalid book ID", nil)
	case errors.Is(err, database.ErrStoreUnavailable):
		w.Header().Set("Retry-After", retryAfterSeconds)
		respondErrorCtx(r, w, http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "Catalog store temporarily unavailable", err)
	case errors.Is(err, context.DeadlineExceeded):
		respondErrorCtx(r, w, http.StatusGatewayTimeout, ErrCodeTimeout, "Catalog query timed out", err)
	case errors.Is(err, context.Canceled):
		// Client went away; nothing useful can be written.
		return
	default:
		respondErrorCtx(r, w, http.StatusInternalServerError, ErrCodeDatabase, "A database error occurred", err)
	}
}

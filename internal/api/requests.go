// Folio - Book Catalog Covers and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package api

// MaxBatchIDs caps the ids parameter of the books endpoint.
const MaxBatchIDs = 100

// Book list views.
const (
	ViewCard = "card"
	ViewList = "list"
)

// BooksRequest holds the query parameters of GET /api/v1/books.
type BooksRequest struct {
	IDs  []string `validate:"min=1,max=100,dive,book_id,max=128"`
	View string   `validate:"omitempty,oneof=card list"`
	Sort string   `validate:"omitempty,oneof=cover"`
}

// BookRequest holds the path parameter of GET /api/v1/books/{id}.
type BookRequest struct {
	BookID string `validate:"required,book_id,max=128"`
}

// RecommendationsRequest holds the parameters of the recommendations endpoint.
// Limit 0 selects the configured default; larger values are capped by the engine.
type RecommendationsRequest struct {
	BookID string `validate:"required,book_id,max=128"`
	Limit  int    `validate:"gte=0,lte=1000"`
}

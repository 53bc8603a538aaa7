// Folio - Book Catalog Covers and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package api

import (
	"context"
	"time"

	"github.com/tomtom215/folio/internal/covers"
	"github.com/tomtom215/folio/internal/middleware"
	"github.com/tomtom215/folio/internal/models"
	"github.com/tomtom215/folio/internal/recommend"
)

// Catalog loads book records with resolved covers.
type Catalog interface {
	Cards(ctx context.Context, ids []string) ([]models.BookCard, error)
	List(ctx context.Context, ids []string, sortByCover bool) ([]models.BookListItem, error)
	Detail(ctx context.Context, id string) (models.BookDetail, error)
}

// Recommender produces the "similar books" section.
type Recommender interface {
	FetchRecommendations(ctx context.Context, bookID string, limit int) ([]recommend.Candidate, error)
	Stats() recommend.Stats
}

// Pinger reports datastore reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Dependencies are the collaborators of Handler. Store, BreakerState and
// PerfMon are optional.
type Dependencies struct {
	Catalog      Catalog
	Recommender  Recommender
	Scorer       *covers.Scorer
	Store        Pinger
	BreakerState func() string
	PerfMon      *middleware.PerformanceMonitor
	Version      string
}

// Handler contains dependencies for API handlers.
//
// Handler methods are split across files:
//   - handlers_health.go: liveness, readiness and stats
//   - handlers_books.go: card, list and detail loaders
//   - handlers_recommend.go: recommendations
//   - handlers_covers.go: cover resolution
type Handler struct {
	deps      Dependencies
	startTime time.Time
}

// NewHandler creates a handler over deps.
//
//nolint:gocritic // Dependencies is a one-time constructor argument
func NewHandler(deps Dependencies) *Handler {
	if deps.Version == "" {
		deps.Version = "dev"
	}
	return &Handler{
		deps:      deps,
		startTime: time.Now(),
	}
}

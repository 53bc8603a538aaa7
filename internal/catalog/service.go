// Folio - Book Catalog Covers and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/tomtom215/folio/internal/covers"
	"github.com/tomtom215/folio/internal/logging"
	"github.com/tomtom215/folio/internal/metrics"
	"github.com/tomtom215/folio/internal/models"
)

// ErrBookNotFound is returned by Detail when no row exists for the ID.
var ErrBookNotFound = errors.New("book not found")

// Surface labels used for metrics and logs.
const (
	SurfaceCard   = "card"
	SurfaceList   = "list"
	SurfaceDetail = "detail"
)

// BookRowStore is the batch base-row fetch. Rows come back in request
// order with unknown IDs omitted.
type BookRowStore interface {
	GetBookRows(ctx context.Context, ids []string) ([]models.BookRow, error)
}

// Service loads catalog records with resolved and normalized covers.
type Service struct {
	rows    BookRowStore
	scorer  *covers.Scorer
	fetcher *covers.FallbackFetcher
	logger  zerolog.Logger
}

// NewService creates a catalog service. The fetcher's scorer is used for
// mapping so that base covers and fallbacks are ranked the same way.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewService(rows BookRowStore, fetcher *covers.FallbackFetcher, logger zerolog.Logger) *Service {
	return &Service{
		rows:    rows,
		scorer:  fetcher.Scorer(),
		fetcher: fetcher,
		logger:  logger.With().Str("component", "catalog").Logger(),
	}
}

// Scorer returns the shared cover scorer.
func (s *Service) Scorer() *covers.Scorer {
	return s.scorer
}

// Cards returns book cards for ids in request order. Unknown IDs are
// omitted. A failed fallback lookup keeps the original covers.
func (s *Service) Cards(ctx context.Context, ids []string) ([]models.BookCard, error) {
	rows, err := s.fetchRows(ctx, ids)
	if err != nil {
		return nil, err
	}

	cards := make([]models.BookCard, 0, len(rows))
	for i := range rows {
		cards = append(cards, s.card(&rows[i]))
	}

	cards = normalizeOrKeep(ctx, s, SurfaceCard, cards)
	recordTiers(SurfaceCard, cards)
	return cards, nil
}

// List returns list items for ids. With sortByCover the items are stably
// ordered by cover quality, best first; otherwise request order is kept.
func (s *Service) List(ctx context.Context, ids []string, sortByCover bool) ([]models.BookListItem, error) {
	rows, err := s.fetchRows(ctx, ids)
	if err != nil {
		return nil, err
	}

	items := make([]models.BookListItem, 0, len(rows))
	for i := range rows {
		items = append(items, s.listItem(&rows[i]))
	}
	if sortByCover {
		covers.SortByQuality(items)
	}

	items = normalizeOrKeep(ctx, s, SurfaceList, items)
	recordTiers(SurfaceList, items)
	return items, nil
}

// Detail returns the detail page record for id. Fallback lookup failures
// are returned to the caller.
func (s *Service) Detail(ctx context.Context, id string) (models.BookDetail, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return models.BookDetail{}, ErrBookNotFound
	}

	rows, err := s.fetchRows(ctx, []string{id})
	if err != nil {
		return models.BookDetail{}, err
	}
	if len(rows) == 0 {
		return models.BookDetail{}, fmt.Errorf("%w: %s", ErrBookNotFound, id)
	}

	details, err := covers.Normalize(ctx, s.fetcher, []models.BookDetail{s.detail(&rows[0])})
	if err != nil {
		metrics.RecordFallbackError(SurfaceDetail)
		return models.BookDetail{}, fmt.Errorf("normalize detail cover: %w", err)
	}

	recordTiers(SurfaceDetail, details)
	return details[0], nil
}

func (s *Service) fetchRows(ctx context.Context, ids []string) ([]models.BookRow, error) {
	if len(ids) == 0 {
		return []models.BookRow{}, nil
	}
	rows, err := s.rows.GetBookRows(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("fetch book rows: %w", err)
	}
	return rows, nil
}

// normalizeOrKeep applies fallbacks to records, returning them unchanged
// when the lookup fails.
func normalizeOrKeep[R covers.Record[R]](ctx context.Context, s *Service, surface string, records []R) []R {
	out, err := covers.Normalize(ctx, s.fetcher, records)
	if err != nil {
		metrics.RecordFallbackError(surface)
		s.logger.Warn().
			Err(err).
			Str("request_id", logging.RequestIDFromContext(ctx)).
			Str("surface", surface).
			Int("records", len(records)).
			Msg("cover fallback lookup failed, serving original covers")
		return records
	}
	return out
}

func recordTiers[R covers.Record[R]](surface string, records []R) {
	for _, rec := range records {
		metrics.RecordCoverTier(surface, rec.CoverFields().QualityTier)
	}
}

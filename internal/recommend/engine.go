// Folio - Book Catalog Covers and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package recommend

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/folio/internal/cache"
	"github.com/tomtom215/folio/internal/metrics"
	"github.com/tomtom215/folio/internal/models"
)

// ErrInvalidBookID is returned for a blank book ID.
var ErrInvalidBookID = errors.New("book id is required")

// DataProvider fetches the rows the engine needs. It is implemented by
// the database package.
type DataProvider interface {
	ClusterStore

	// GetRecommendationRows returns rows for every source ID in one query.
	GetRecommendationRows(ctx context.Context, q models.RecommendationQuery) ([]models.RecommendationRow, error)
}

// CardLoader maps book IDs to cards with resolved covers in one batch.
// Missing books are omitted from the result.
type CardLoader interface {
	Cards(ctx context.Context, ids []string) ([]models.BookCard, error)
}

// Stats is a snapshot of engine counters.
type Stats struct {
	Requests int64 `json:"requests"`
	Errors   int64 `json:"errors"`
	Empty    int64 `json:"empty"`
}

// Engine serves merged recommendation lists. It is safe for concurrent use.
type Engine struct {
	config   *Config
	logger   zerolog.Logger
	data     DataProvider
	cards    CardLoader
	clusters *ClusterResolver
	now      func() time.Time

	requestCount atomic.Int64
	errorCount   atomic.Int64
	emptyCount   atomic.Int64
}

// NewEngine creates an engine. A nil cfg uses DefaultConfig.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, data DataProvider, cards CardLoader, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if data == nil || cards == nil {
		return nil, errors.New("recommend: data provider and card loader are required")
	}

	var lru *cache.LRU[[]string]
	if cfg.ClusterCacheSize > 0 {
		lru = cache.NewLRU[[]string](cfg.ClusterCacheSize, cfg.ClusterCacheTTL)
	}

	return &Engine{
		config:   cfg,
		logger:   logger.With().Str("component", "recommend").Logger(),
		data:     data,
		cards:    cards,
		clusters: NewClusterResolver(data, lru),
		now:      time.Now,
	}, nil
}

// Clusters returns the engine's cluster resolver.
func (e *Engine) Clusters() *ClusterResolver {
	return e.clusters
}

// FetchRecommendations returns up to limit recommendations for bookID.
// A non-positive limit uses the configured default. An empty list with a
// nil error means the lookups succeeded and found nothing; any store
// failure is returned as an error.
func (e *Engine) FetchRecommendations(ctx context.Context, bookID string, limit int) ([]Candidate, error) {
	e.requestCount.Add(1)
	start := e.now()

	bookID = strings.TrimSpace(bookID)
	if bookID == "" {
		e.errorCount.Add(1)
		return nil, ErrInvalidBookID
	}
	limit = e.config.clampLimit(limit)

	sourceIDs, err := e.clusters.ResolveSourceIDs(ctx, bookID)
	if err != nil {
		e.errorCount.Add(1)
		return nil, fmt.Errorf("resolve cluster: %w", err)
	}

	rows, err := e.data.GetRecommendationRows(ctx, models.RecommendationQuery{
		SourceIDs:     sourceIDs,
		ExactSourceID: bookID,
		Now:           start,
	})
	if err != nil {
		e.errorCount.Add(1)
		return nil, fmt.Errorf("fetch recommendation rows: %w", err)
	}
	OrderRows(rows, bookID, start)

	rows = excludeCluster(rows, sourceIDs)
	if len(rows) == 0 {
		e.emptyCount.Add(1)
		metrics.RecordRecommendations(nil, 0)
		return []Candidate{}, nil
	}

	cards, err := e.cards.Cards(ctx, targetIDs(rows))
	if err != nil {
		e.errorCount.Add(1)
		return nil, fmt.Errorf("load recommendation cards: %w", err)
	}

	merged := MergeWithCaps(buildCandidates(rows, cards, start), limit, e.config.Caps)
	recordMerged(merged)
	if len(merged) == 0 {
		e.emptyCount.Add(1)
	}

	e.logger.Debug().
		Str("book_id", bookID).
		Int("cluster_size", len(sourceIDs)).
		Int("rows", len(rows)).
		Int("returned", len(merged)).
		Dur("latency", e.now().Sub(start)).
		Msg("recommendations assembled")

	return merged, nil
}

// Stats returns a snapshot of the engine counters.
func (e *Engine) Stats() Stats {
	return Stats{
		Requests: e.requestCount.Load(),
		Errors:   e.errorCount.Load(),
		Empty:    e.emptyCount.Load(),
	}
}

// excludeCluster drops rows that point back at the source book or another
// edition of it.
func excludeCluster(rows []models.RecommendationRow, cluster []string) []models.RecommendationRow {
	exclude := make(map[string]struct{}, len(cluster))
	for _, id := range cluster {
		exclude[id] = struct{}{}
	}

	out := rows[:0]
	for i := range rows {
		if _, skip := exclude[strings.TrimSpace(rows[i].TargetBookID)]; skip {
			continue
		}
		out = append(out, rows[i])
	}
	return out
}

func targetIDs(rows []models.RecommendationRow) []string {
	seen := make(map[string]struct{}, len(rows))
	ids := make([]string, 0, len(rows))
	for i := range rows {
		id := strings.TrimSpace(rows[i].TargetBookID)
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}

// buildCandidates pairs rows with their cards. Rows whose card is missing
// yield a candidate with a blank card, which Merge drops.
func buildCandidates(rows []models.RecommendationRow, cards []models.BookCard, now time.Time) []Candidate {
	byID := make(map[string]models.BookCard, len(cards))
	for _, card := range cards {
		byID[card.ID] = card
	}

	out := make([]Candidate, 0, len(rows))
	for i := range rows {
		row := &rows[i]
		out = append(out, Candidate{
			Card:    byID[strings.TrimSpace(row.TargetBookID)],
			Score:   row.Score,
			Reason:  row.Reason,
			Source:  ParseSource(row.Source),
			Expired: isExpired(*row, now),
		})
	}
	return out
}

func recordMerged(merged []Candidate) {
	bySource := make(map[string]int, 4)
	for i := range merged {
		bySource[merged[i].Source.String()]++
		metrics.RecordCoverTier("recommendation", merged[i].Card.Cover.QualityTier)
	}
	metrics.RecordRecommendations(bySource, len(merged))
}

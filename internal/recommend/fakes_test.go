// Folio - Book Catalog Covers and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package recommend

import (
	"context"
	"slices"
	"sync"

	"github.com/tomtom215/folio/internal/models"
)

// fakeData is an in-memory DataProvider that counts calls.
type fakeData struct {
	mu sync.Mutex

	clusters   map[string]*models.WorkCluster
	clusterErr error
	rows       []models.RecommendationRow
	rowsErr    error

	clusterCalls int
	rowQueries   []models.RecommendationQuery
}

func (f *fakeData) GetWorkCluster(_ context.Context, bookID string) (*models.WorkCluster, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.clusterCalls++
	if f.clusterErr != nil {
		return nil, f.clusterErr
	}
	return f.clusters[bookID], nil
}

func (f *fakeData) GetRecommendationRows(_ context.Context, q models.RecommendationQuery) ([]models.RecommendationRow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	q.SourceIDs = slices.Clone(q.SourceIDs)
	f.rowQueries = append(f.rowQueries, q)
	if f.rowsErr != nil {
		return nil, f.rowsErr
	}

	var out []models.RecommendationRow
	for _, r := range f.rows {
		if slices.Contains(q.SourceIDs, r.SourceBookID) {
			out = append(out, r)
		}
	}
	return out, nil
}

// fakeCards returns a card for every known ID.
type fakeCards struct {
	known map[string]string
	err   error
	calls [][]string
}

func (f *fakeCards) Cards(_ context.Context, ids []string) ([]models.BookCard, error) {
	f.calls = append(f.calls, slices.Clone(ids))
	if f.err != nil {
		return nil, f.err
	}
	out := make([]models.BookCard, 0, len(ids))
	for _, id := range ids {
		if title, ok := f.known[id]; ok {
			out = append(out, models.BookCard{ID: id, Title: title, Cover: models.CoverFields{URL: "https://cdn.example.com/" + id + ".jpg", QualityTier: 3}})
		}
	}
	return out, nil
}

// Folio - Book Catalog Covers and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package recommend

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/tomtom215/folio/internal/cache"
	"github.com/tomtom215/folio/internal/metrics"
	"github.com/tomtom215/folio/internal/models"
)

// ClusterStore looks up the work cluster containing a book. It returns a
// nil cluster and nil error when the book belongs to no cluster.
type ClusterStore interface {
	GetWorkCluster(ctx context.Context, bookID string) (*models.WorkCluster, error)
}

// ClusterResolver expands a book ID to the IDs of every edition of the same work.
type ClusterResolver struct {
	store ClusterStore
	cache *cache.LRU[[]string]
}

// NewClusterResolver creates a resolver. A nil lru disables caching.
func NewClusterResolver(store ClusterStore, lru *cache.LRU[[]string]) *ClusterResolver {
	return &ClusterResolver{store: store, cache: lru}
}

// ResolveSourceIDs returns [canonical, bookID, other members...] without
// duplicates, or [bookID] when the book has no cluster. Store errors are
// returned so callers never mistake an outage for a narrow cluster. Only
// successful lookups are cached.
func (r *ClusterResolver) ResolveSourceIDs(ctx context.Context, bookID string) ([]string, error) {
	bookID = strings.TrimSpace(bookID)
	if bookID == "" {
		return nil, ErrInvalidBookID
	}

	if r.cache != nil {
		if ids, ok := r.cache.Get(bookID); ok {
			metrics.RecordClusterCache(true)
			return slices.Clone(ids), nil
		}
		metrics.RecordClusterCache(false)
	}

	cluster, err := r.store.GetWorkCluster(ctx, bookID)
	if err != nil {
		return nil, fmt.Errorf("look up work cluster for %s: %w", bookID, err)
	}

	ids := SourceIDs(cluster, bookID)
	if r.cache != nil {
		r.cache.Add(bookID, slices.Clone(ids))
	}
	return ids, nil
}

// CleanupExpired drops expired cache entries and returns how many were removed.
func (r *ClusterResolver) CleanupExpired() int {
	if r.cache == nil {
		return 0
	}
	return r.cache.CleanupExpired()
}

// SourceIDs orders a cluster's members for recommendation lookup:
// canonical member, then bookID, then the rest in stored order. Blank and
// repeated IDs are dropped. A nil cluster yields [bookID].
func SourceIDs(cluster *models.WorkCluster, bookID string) []string {
	if cluster == nil {
		return []string{bookID}
	}

	ids := make([]string, 0, len(cluster.MemberIDs)+2)
	seen := make(map[string]struct{}, len(cluster.MemberIDs)+2)
	add := func(id string) {
		id = strings.TrimSpace(id)
		if id == "" {
			return
		}
		if _, dup := seen[id]; dup {
			return
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	if cluster.CanonicalBookID != nil {
		add(*cluster.CanonicalBookID)
	}
	add(bookID)
	for _, id := range cluster.MemberIDs {
		add(id)
	}
	return ids
}

// Folio - Book Catalog Covers and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/folio/internal/metrics"
)

// DefaultJanitorInterval is used when no interval is configured.
const DefaultJanitorInterval = time.Minute

// ExpiredCleaner removes expired entries and reports how many were removed.
// Satisfied by *recommend.ClusterResolver.
type ExpiredCleaner interface {
	CleanupExpired() int
}

// CacheJanitorService periodically evicts expired work-cluster cache entries
// so memory held by stale clusters is released between lookups.
type CacheJanitorService struct {
	cleaner  ExpiredCleaner
	interval time.Duration
	logger   zerolog.Logger
	name     string
}

// NewCacheJanitorService creates a janitor running every interval.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewCacheJanitorService(cleaner ExpiredCleaner, interval time.Duration, logger zerolog.Logger) *CacheJanitorService {
	if interval <= 0 {
		interval = DefaultJanitorInterval
	}
	return &CacheJanitorService{
		cleaner:  cleaner,
		interval: interval,
		logger:   logger.With().Str("service", "cluster-cache-janitor").Logger(),
		name:     "cluster-cache-janitor",
	}
}

// Serve implements suture.Service.
func (s *CacheJanitorService) Serve(ctx context.Context) error {
	s.logger.Info().Dur("interval", s.interval).Msg("cache janitor starting")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("cache janitor shutting down")
			return ctx.Err()

		case <-ticker.C:
			s.sweep()
		}
	}
}

func (s *CacheJanitorService) sweep() {
	removed := s.cleaner.CleanupExpired()
	metrics.RecordClusterCacheExpired(removed)
	if removed > 0 {
		s.logger.Debug().Int("removed", removed).Msg("expired cluster cache entries evicted")
	}
}

// String implements fmt.Stringer for suture's logs.
func (s *CacheJanitorService) String() string {
	return s.name
}

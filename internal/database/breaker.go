// Folio - Book Catalog Covers and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package database

import (
	"context"
	"errors"
	"fmt"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/folio/internal/config"
	"github.com/tomtom215/folio/internal/logging"
	"github.com/tomtom215/folio/internal/metrics"
	"github.com/tomtom215/folio/internal/models"
)

// Store is the read surface of the catalog database.
type Store interface {
	GetBookRows(ctx context.Context, ids []string) ([]models.BookRow, error)
	FetchImageLinks(ctx context.Context, bookIDs []string, criteria models.ImageLinkCriteria) ([]models.ImageLinkRow, error)
	GetWorkCluster(ctx context.Context, bookID string) (*models.WorkCluster, error)
	GetRecommendationRows(ctx context.Context, q models.RecommendationQuery) ([]models.RecommendationRow, error)
}

var _ Store = (*DB)(nil)

// BreakerStore wraps a Store with a circuit breaker. While the circuit is
// open calls fail fast with an error wrapping ErrStoreUnavailable.
//
// Cancelled and timed-out requests on the caller's side do not count as
// store failures.
type BreakerStore struct {
	next Store
	cb   *gobreaker.CircuitBreaker[any]
	name string
}

var _ Store = (*BreakerStore)(nil)

// NewBreakerStore creates a breaker-guarded store named name.
func NewBreakerStore(next Store, name string, cfg config.BreakerConfig) *BreakerStore {
	threshold := cfg.FailureThreshold
	if threshold == 0 {
		threshold = 5
	}

	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)

	cb := gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("Circuit breaker state transition")
			metrics.RecordBreakerTransition(name, from.String(), to.String())
		},
	})

	return &BreakerStore{next: next, cb: cb, name: name}
}

// State returns the current breaker state.
func (b *BreakerStore) State() gobreaker.State {
	return b.cb.State()
}

// execute runs fn through the breaker and records the outcome.
func (b *BreakerStore) execute(fn func() (any, error)) (any, error) {
	result, err := b.cb.Execute(fn)
	switch {
	case err == nil:
		metrics.RecordBreakerResult(b.name, "success")
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		metrics.RecordBreakerResult(b.name, "rejected")
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	default:
		metrics.RecordBreakerResult(b.name, "failure")
	}
	return result, err
}

// castResult type-asserts a breaker result.
func castResult[T any](result any, err error) (T, error) {
	var zero T
	if err != nil {
		return zero, err
	}
	if result == nil {
		return zero, nil
	}
	typed, ok := result.(T)
	if !ok {
		return zero, fmt.Errorf("circuit breaker: unexpected result type %T", result)
	}
	return typed, nil
}

// GetBookRows implements Store.
func (b *BreakerStore) GetBookRows(ctx context.Context, ids []string) ([]models.BookRow, error) {
	return castResult[[]models.BookRow](b.execute(func() (any, error) {
		return b.next.GetBookRows(ctx, ids)
	}))
}

// FetchImageLinks implements Store.
func (b *BreakerStore) FetchImageLinks(ctx context.Context, bookIDs []string, criteria models.ImageLinkCriteria) ([]models.ImageLinkRow, error) {
	return castResult[[]models.ImageLinkRow](b.execute(func() (any, error) {
		return b.next.FetchImageLinks(ctx, bookIDs, criteria)
	}))
}

// GetWorkCluster implements Store.
func (b *BreakerStore) GetWorkCluster(ctx context.Context, bookID string) (*models.WorkCluster, error) {
	return castResult[*models.WorkCluster](b.execute(func() (any, error) {
		return b.next.GetWorkCluster(ctx, bookID)
	}))
}

// GetRecommendationRows implements Store.
func (b *BreakerStore) GetRecommendationRows(ctx context.Context, q models.RecommendationQuery) ([]models.RecommendationRow, error) {
	return castResult[[]models.RecommendationRow](b.execute(func() (any, error) {
		return b.next.GetRecommendationRows(ctx, q)
	}))
}

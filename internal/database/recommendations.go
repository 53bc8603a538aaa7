// Folio - Book Catalog Covers and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tomtom215/folio/internal/models"
)

// GetRecommendationRows returns recommendation rows for every source ID in
// one query, ordered: rows from q.ExactSourceID first, active before
// expired (relative to q.Now), score descending with unscored last, then
// newest first.
func (db *DB) GetRecommendationRows(ctx context.Context, q models.RecommendationQuery) (recs []models.RecommendationRow, err error) {
	ids := uniqueIDs(q.SourceIDs)
	if len(ids) == 0 {
		return []models.RecommendationRow{}, nil
	}
	if err := db.checkOpen(); err != nil {
		return nil, err
	}

	now := q.Now
	if now.IsZero() {
		now = time.Now()
	}

	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	start := time.Now()
	defer func() { db.observe("select", "book_recommendations", start, err) }()

	placeholders, args := buildInClause(ids)
	query := fmt.Sprintf(`
		SELECT source_book_id, target_book_id, score, reason, source, expires_at, created_at
		FROM book_recommendations
		WHERE source_book_id IN (%s)
		ORDER BY
			(source_book_id = ?) DESC,
			(expires_at IS NOT NULL AND expires_at <= ?) ASC,
			score DESC NULLS LAST,
			created_at DESC`, placeholders)
	args = append(args, strings.TrimSpace(q.ExactSourceID), now.UTC())

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query recommendations: %w", err)
	}
	defer closeWithLog(rows, "recommendation rows")

	for rows.Next() {
		var r models.RecommendationRow
		if err := rows.Scan(&r.SourceBookID, &r.TargetBookID, &r.Score, &r.Reason,
			&r.Source, &r.ExpiresAt, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan recommendation: %w", err)
		}
		recs = append(recs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate recommendations: %w", err)
	}
	if recs == nil {
		recs = []models.RecommendationRow{}
	}
	return recs, nil
}

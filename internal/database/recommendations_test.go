// Folio - Book Catalog Covers and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package database

import (
	"context"
	"testing"
	"time"

	"github.com/tomtom215/folio/internal/models"
)

func TestGetRecommendationRows(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	past := seedTime.Add(-time.Hour)
	future := seedTime.Add(time.Hour)

	checkNoError(t, db.InsertRecommendations(ctx, []models.RecommendationRow{
		{SourceBookID: "canon", TargetBookID: "t1", Source: "PIPELINE", Score: floatPtr(0.99), CreatedAt: seedTime},
		{SourceBookID: "book", TargetBookID: "t2", Source: "PIPELINE", Score: floatPtr(0.5), ExpiresAt: timePtr(past), CreatedAt: seedTime},
		{SourceBookID: "book", TargetBookID: "t3", Source: "SAME_AUTHOR", CreatedAt: seedTime},
		{SourceBookID: "book", TargetBookID: "t4", Source: "PIPELINE", Score: floatPtr(0.7), ExpiresAt: timePtr(future), CreatedAt: seedTime.Add(-time.Minute)},
		{SourceBookID: "book", TargetBookID: "t5", Source: "PIPELINE", Score: floatPtr(0.7), Reason: strPtr("Readers also finished"), CreatedAt: seedTime},
		{SourceBookID: "canon", TargetBookID: "t6", Source: "SAME_CATEGORY", ExpiresAt: timePtr(past), CreatedAt: seedTime},
		{SourceBookID: "unrelated", TargetBookID: "t7", Source: "PIPELINE", CreatedAt: seedTime},
	}))

	rows, err := db.GetRecommendationRows(ctx, models.RecommendationQuery{
		SourceIDs:     []string{"canon", "book", "canon"},
		ExactSourceID: "book",
		Now:           seedTime,
	})
	checkNoError(t, err)

	got := make([]string, len(rows))
	for i, r := range rows {
		got[i] = r.TargetBookID
	}
	checkIDs(t, "order", got, []string{"t5", "t4", "t3", "t2", "t1", "t6"})

	checkStringPtr(t, "t5 reason", rows[0].Reason, "Readers also finished")
	if rows[0].Score == nil || *rows[0].Score != 0.7 {
		t.Errorf("t5 score = %v", rows[0].Score)
	}
	if rows[1].ExpiresAt == nil || !rows[1].ExpiresAt.Equal(future) {
		t.Errorf("t4 ExpiresAt = %v, want %v", rows[1].ExpiresAt, future)
	}
	if rows[2].Score != nil || rows[2].ExpiresAt != nil {
		t.Errorf("t3 nullable columns should be nil: %+v", rows[2])
	}
	if !rows[2].CreatedAt.Equal(seedTime) {
		t.Errorf("t3 CreatedAt = %v, want %v", rows[2].CreatedAt, seedTime)
	}

	empty, err := db.GetRecommendationRows(ctx, models.RecommendationQuery{SourceIDs: []string{"nobody"}})
	checkNoError(t, err)
	if empty == nil || len(empty) != 0 {
		t.Errorf("expected empty non-nil slice, got %v", empty)
	}
}

// Folio - Book Catalog Covers and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package catalog

import (
	"bytes"
	"context"
	"sync"
	"time"

	"github.com/tomtom215/folio/internal/covers"
	"github.com/tomtom215/folio/internal/logging"
	"github.com/tomtom215/folio/internal/models"
)

const testCDN = "https://cdn.example.com/"

var fixtureTime = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type fakeRows struct {
	mu    sync.Mutex
	rows  map[string]models.BookRow
	err   error
	calls [][]string
}

func (f *fakeRows) GetBookRows(_ context.Context, ids []string) ([]models.BookRow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, append([]string(nil), ids...))
	if f.err != nil {
		return nil, f.err
	}
	out := make([]models.BookRow, 0, len(ids))
	for _, id := range ids {
		if row, ok := f.rows[id]; ok {
			out = append(out, row)
		}
	}
	return out, nil
}

type fakeLinks struct {
	mu    sync.Mutex
	rows  []models.ImageLinkRow
	err   error
	calls [][]string
}

func (f *fakeLinks) FetchImageLinks(_ context.Context, bookIDs []string, _ models.ImageLinkCriteria) ([]models.ImageLinkRow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, append([]string(nil), bookIDs...))
	if f.err != nil {
		return nil, f.err
	}
	return f.rows, nil
}

func strPtr(s string) *string { return &s }

func intPtr(n int) *int { return &n }

// fixtureRows covers each tier the mapper can produce:
// b1 CDN high-res (5), b2 external unknown size (2), b3 sentinel key (0),
// b4 external with known size (3).
func fixtureRows() map[string]models.BookRow {
	return map[string]models.BookRow{
		"b1": {
			ID: "b1", Title: "Dune", Author: strPtr("Frank Herbert"),
			CoverS3Key: strPtr("covers/b1.jpg"), CoverWidth: intPtr(600), CoverHeight: intPtr(900),
		},
		"b2": {
			ID: "b2", Title: "Solaris", Author: strPtr(" Stanislaw Lem "),
			CoverFallbackURL: strPtr("https://ext.example.com/b2.jpg"),
		},
		"b3": {
			ID: "b3", Title: "Hyperion", Category: strPtr("Science Fiction"),
			Publisher: strPtr("Doubleday"), PublishedYear: intPtr(1989), PageCount: intPtr(482),
			ISBN13: strPtr("9780385249492"), CoverS3Key: strPtr("null"),
		},
		"b4": {
			ID: "b4", Title: "Foundation",
			CoverFallbackURL: strPtr("https://ext.example.com/b4.jpg"), CoverWidth: intPtr(400), CoverHeight: intPtr(600),
		},
	}
}

func fixtureLinks() []models.ImageLinkRow {
	return []models.ImageLinkRow{
		{ID: 1, BookID: "b3", Type: "large", URL: "https://img.example.com/b3.jpg", Width: intPtr(400), Height: intPtr(600), CreatedAt: fixtureTime},
	}
}

type fixture struct {
	svc   *Service
	rows  *fakeRows
	links *fakeLinks
	logs  *bytes.Buffer
}

func newFixture() *fixture {
	rows := &fakeRows{rows: fixtureRows()}
	links := &fakeLinks{rows: fixtureLinks()}
	scorer := covers.NewScorer(covers.NewResolver(covers.Options{CDNBaseURL: testCDN}), nil)
	var buf bytes.Buffer
	svc := NewService(rows, covers.NewFallbackFetcher(links, scorer), logging.NewTestLogger(&buf))
	return &fixture{svc: svc, rows: rows, links: links, logs: &buf}
}

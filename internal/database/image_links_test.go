// Folio - Book Catalog Covers and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package database

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/tomtom215/folio/internal/covers"
	"github.com/tomtom215/folio/internal/models"
)

func seedImageLinks(t *testing.T, db *DB) {
	t.Helper()
	older := seedTime.Add(-24 * time.Hour)

	checkNoError(t, db.InsertImageLinks(context.Background(), []models.ImageLinkRow{
		// b1: canonical beats a newer large image.
		{BookID: "b1", Type: "large", URL: "https://img.example.com/b1-large.jpg", Width: intPtr(600), Height: intPtr(900), CreatedAt: seedTime},
		{BookID: "b1", Type: "canonical", URL: "https://img.example.com/b1-canonical.jpg", Width: intPtr(600), Height: intPtr(900), CreatedAt: older},

		// b2: newest wins among equal types; the failed download is skipped.
		{BookID: "b2", Type: "Medium", URL: "https://img.example.com/b2-old.jpg", CreatedAt: older},
		{BookID: "b2", Type: "medium", URL: "https://img.example.com/b2-new.jpg", CreatedAt: seedTime},
		{BookID: "b2", Type: "canonical", URL: "https://img.example.com/b2-broken.jpg", DownloadError: strPtr("404"), CreatedAt: seedTime},

		// b3: every row is ineligible.
		{BookID: "b3", Type: "canonical", URL: "https://img.example.com/placeholder-book-cover.svg", CreatedAt: seedTime},
		{BookID: "b3", Type: "extraLarge", URL: "https://img.example.com/b3.jpg", S3Key: strPtr("covers/PLACEHOLDER-BOOK-COVER.png"), CreatedAt: seedTime},
		{BookID: "b3", Type: "large", URL: "https://img.example.com/b3/Title-Page.jpg", CreatedAt: seedTime},
		{BookID: "b3", Type: "medium", URL: "https://img.example.com/b3-tiny.jpg", Width: intPtr(100), Height: intPtr(150), CreatedAt: seedTime},
		{BookID: "b3", Type: "small", URL: "https://img.example.com/b3-wide.jpg", Width: intPtr(900), Height: intPtr(600), CreatedAt: seedTime},
		{BookID: "b3", Type: "thumbnail", URL: "  ", CreatedAt: seedTime},

		// b4: unknown types rank after thumbnails.
		{BookID: "b4", Type: "poster", URL: "https://img.example.com/b4-poster.jpg", CreatedAt: seedTime},
		{BookID: "b4", Type: "smallThumbnail", URL: "https://img.example.com/b4-thumb.jpg", S3Key: strPtr("covers/b4.jpg"), IsGrayscale: boolPtr(true), CreatedAt: older},

		{BookID: "other", Type: "canonical", URL: "https://img.example.com/other.jpg", CreatedAt: seedTime},
	}))
}

// firstPerBook keeps the first, best ranked row of each book.
func firstPerBook(t *testing.T, links []models.ImageLinkRow) map[string]models.ImageLinkRow {
	t.Helper()
	byBook := make(map[string]models.ImageLinkRow, len(links))
	for i, l := range links {
		if i > 0 && links[i-1].BookID > l.BookID {
			t.Fatalf("rows not grouped by book: %s after %s", l.BookID, links[i-1].BookID)
		}
		if _, seen := byBook[l.BookID]; !seen {
			byBook[l.BookID] = l
		}
	}
	return byBook
}

func urlsFor(links []models.ImageLinkRow, bookID string) []string {
	var urls []string
	for _, l := range links {
		if l.BookID == bookID {
			urls = append(urls, l.URL)
		}
	}
	return urls
}

func TestFetchImageLinks(t *testing.T) {
	db := setupTestDB(t)
	seedImageLinks(t, db)

	links, err := db.FetchImageLinks(context.Background(), []string{"b1", "b2", "b3", "b4", "b1", "missing"}, covers.DefaultImageLinkCriteria())
	checkNoError(t, err)

	byBook := firstPerBook(t, links)
	if len(byBook) != 3 {
		t.Fatalf("got rows for %d books, want 3 (b1, b2, b4): %+v", len(byBook), links)
	}
	checkStringEqual(t, "b1 url", byBook["b1"].URL, "https://img.example.com/b1-canonical.jpg")
	checkStringEqual(t, "b2 url", byBook["b2"].URL, "https://img.example.com/b2-new.jpg")
	checkStringEqual(t, "b4 url", byBook["b4"].URL, "https://img.example.com/b4-thumb.jpg")

	if got := urlsFor(links, "b1"); !slices.Equal(got, []string{
		"https://img.example.com/b1-canonical.jpg",
		"https://img.example.com/b1-large.jpg",
	}) {
		t.Errorf("b1 ranking = %v", got)
	}
	if got := urlsFor(links, "b2"); !slices.Equal(got, []string{
		"https://img.example.com/b2-new.jpg",
		"https://img.example.com/b2-old.jpg",
	}) {
		t.Errorf("b2 ranking = %v, failed download must be excluded", got)
	}

	b4 := byBook["b4"]
	checkStringPtr(t, "b4 s3 key", b4.S3Key, "covers/b4.jpg")
	if b4.IsGrayscale == nil || !*b4.IsGrayscale {
		t.Errorf("b4 IsGrayscale = %v, want true", b4.IsGrayscale)
	}
	if b4.ID == 0 || b4.CreatedAt.IsZero() {
		t.Errorf("b4 id/created_at not scanned: %+v", b4)
	}
	if !byBook["b1"].CreatedAt.Equal(seedTime.Add(-24 * time.Hour)) {
		t.Errorf("b1 CreatedAt = %v", byBook["b1"].CreatedAt)
	}
}

func TestFetchImageLinks_EligibilityMatchesFetcher(t *testing.T) {
	db := setupTestDB(t)
	checkNoError(t, db.InsertImageLinks(context.Background(), []models.ImageLinkRow{
		// b9: the canonical row's storage key is an interior page.
		{BookID: "b9", Type: "canonical", URL: "https://img.example.com/b9.jpg", S3Key: strPtr("scans/copyright-page.jpg"), Width: intPtr(600), Height: intPtr(900), CreatedAt: seedTime},
		{BookID: "b9", Type: "large", URL: "https://img.example.com/b9-large.jpg", Width: intPtr(600), Height: intPtr(900), CreatedAt: seedTime},

		// b8 and b7: blank and sentinel download errors mean no error.
		{BookID: "b8", Type: "large", URL: "https://img.example.com/b8.jpg", DownloadError: strPtr(""), Width: intPtr(600), Height: intPtr(900), CreatedAt: seedTime},
		{BookID: "b7", Type: "large", URL: "https://img.example.com/b7.jpg", DownloadError: strPtr(" NULL "), Width: intPtr(600), Height: intPtr(900), CreatedAt: seedTime},

		// b6: a real download error still excludes the row.
		{BookID: "b6", Type: "large", URL: "https://img.example.com/b6.jpg", DownloadError: strPtr("timeout"), CreatedAt: seedTime},

		// b5: key-only row is kept for the CDN to resolve.
		{BookID: "b5", Type: "medium", URL: "", S3Key: strPtr("covers/b5.jpg"), Width: intPtr(600), Height: intPtr(900), CreatedAt: seedTime},
	}))

	ids := []string{"b5", "b6", "b7", "b8", "b9"}
	links, err := db.FetchImageLinks(context.Background(), ids, covers.DefaultImageLinkCriteria())
	checkNoError(t, err)

	byBook := firstPerBook(t, links)
	checkStringEqual(t, "b9 url", byBook["b9"].URL, "https://img.example.com/b9-large.jpg")
	checkStringEqual(t, "b8 url", byBook["b8"].URL, "https://img.example.com/b8.jpg")
	checkStringEqual(t, "b7 url", byBook["b7"].URL, "https://img.example.com/b7.jpg")
	checkStringPtr(t, "b5 key", byBook["b5"].S3Key, "covers/b5.jpg")
	if _, ok := byBook["b6"]; ok {
		t.Errorf("b6 has a failed download and must be excluded: %+v", byBook["b6"])
	}

	resolver := covers.NewResolver(covers.Options{CDNBaseURL: "https://cdn.example.com/"})
	fetcher := covers.NewFallbackFetcher(db, covers.NewScorer(resolver, covers.NewPatternValidator()))
	got, err := fetcher.Fetch(context.Background(), ids)
	checkNoError(t, err)

	want := map[string]string{
		"b5": "https://cdn.example.com/covers/b5.jpg",
		"b7": "https://img.example.com/b7.jpg",
		"b8": "https://img.example.com/b8.jpg",
		"b9": "https://img.example.com/b9-large.jpg",
	}
	if len(got) != len(want) {
		t.Fatalf("candidates = %+v, want books %v", got, want)
	}
	for id, url := range want {
		checkStringEqual(t, id+" candidate", got[id].Cover.URL, url)
	}
}

func TestFetchImageLinks_CapsRowsPerBook(t *testing.T) {
	db := setupTestDB(t)

	rows := make([]models.ImageLinkRow, 0, maxImageLinksPerBook+4)
	for i := 0; i < maxImageLinksPerBook+4; i++ {
		rows = append(rows, models.ImageLinkRow{
			BookID:    "many",
			Type:      "large",
			URL:       fmt.Sprintf("https://img.example.com/many-%02d.jpg", i),
			CreatedAt: seedTime.Add(time.Duration(i) * time.Minute),
		})
	}
	checkNoError(t, db.InsertImageLinks(context.Background(), rows))

	links, err := db.FetchImageLinks(context.Background(), []string{"many"}, covers.DefaultImageLinkCriteria())
	checkNoError(t, err)
	if len(links) != maxImageLinksPerBook {
		t.Fatalf("got %d rows, want %d", len(links), maxImageLinksPerBook)
	}
	checkStringEqual(t, "newest first", links[0].URL, fmt.Sprintf("https://img.example.com/many-%02d.jpg", maxImageLinksPerBook+3))
}

func TestFetchImageLinks_ZeroCriteriaDisablesFilters(t *testing.T) {
	db := setupTestDB(t)
	seedImageLinks(t, db)

	links, err := db.FetchImageLinks(context.Background(), []string{"b3"}, models.ImageLinkCriteria{})
	checkNoError(t, err)
	if len(links) != 5 {
		t.Fatalf("got %d rows, want 5 (all but the blank row): %+v", len(links), links)
	}
	if !strings.Contains(links[0].URL, "placeholder-book-cover") {
		t.Errorf("without filters the canonical row should rank first, got %s", links[0].URL)
	}
}

func TestFetchImageLinks_Empty(t *testing.T) {
	db := setupTestDB(t)

	links, err := db.FetchImageLinks(context.Background(), nil, covers.DefaultImageLinkCriteria())
	checkNoError(t, err)
	if links == nil || len(links) != 0 {
		t.Errorf("expected empty non-nil slice, got %v", links)
	}
}

func TestTypePriorityExpr(t *testing.T) {
	if !strings.HasPrefix(typePriorityExpr, "CASE lower(type) WHEN 'canonical' THEN 0") {
		t.Errorf("unexpected expression: %s", typePriorityExpr)
	}
	if !strings.Contains(typePriorityExpr, "WHEN 'smallthumbnail' THEN 6 ELSE 7 END") {
		t.Errorf("unexpected expression tail: %s", typePriorityExpr)
	}
}

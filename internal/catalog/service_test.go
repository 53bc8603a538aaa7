// Folio - Book Catalog Covers and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package catalog

import (
	"context"
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/tomtom215/folio/internal/covers"
	"github.com/tomtom215/folio/internal/logging"
	"github.com/tomtom215/folio/internal/metrics"
	"github.com/tomtom215/folio/internal/models"
)

var errDown = errors.New("store down")

func cardIDs(cards []models.BookCard) []string {
	ids := make([]string, len(cards))
	for i, c := range cards {
		ids[i] = c.ID
	}
	return ids
}

func listIDs(items []models.BookListItem) []string {
	ids := make([]string, len(items))
	for i, it := range items {
		ids[i] = it.ID
	}
	return ids
}

func TestCards(t *testing.T) {
	t.Parallel()

	f := newFixture()
	cards, err := f.svc.Cards(context.Background(), []string{"b1", "b2", "b3", "missing", "b4"})
	if err != nil {
		t.Fatalf("Cards() error = %v", err)
	}

	if got := cardIDs(cards); !slices.Equal(got, []string{"b1", "b2", "b3", "b4"}) {
		t.Fatalf("card IDs = %v", got)
	}
	if len(f.rows.calls) != 1 {
		t.Errorf("expected one row fetch, got %d", len(f.rows.calls))
	}
	if len(f.links.calls) != 1 || !slices.Equal(f.links.calls[0], []string{"b3"}) {
		t.Errorf("expected one fallback fetch for b3, got %v", f.links.calls)
	}

	tests := []struct {
		idx  int
		url  string
		tier covers.QualityTier
	}{
		{0, testCDN + "covers/b1.jpg", covers.TierBest},
		{1, "https://ext.example.com/b2.jpg", covers.TierBasic},
		{2, "https://img.example.com/b3.jpg", covers.TierStandard},
		{3, "https://ext.example.com/b4.jpg", covers.TierStandard},
	}
	for _, tt := range tests {
		c := cards[tt.idx].Cover
		if c.URL != tt.url {
			t.Errorf("%s cover URL = %q, want %q", cards[tt.idx].ID, c.URL, tt.url)
		}
		if c.QualityTier != int(tt.tier) {
			t.Errorf("%s tier = %d, want %d", cards[tt.idx].ID, c.QualityTier, tt.tier)
		}
	}

	if cards[0].Cover.StorageKey != "covers/b1.jpg" || !cards[0].Cover.FromStorage {
		t.Errorf("b1 storage fields = %+v", cards[0].Cover)
	}
	if cards[1].Author != "Stanislaw Lem" {
		t.Errorf("author not trimmed: %q", cards[1].Author)
	}
	if cards[2].Cover.FallbackURL != "https://img.example.com/b3.jpg" {
		t.Errorf("b3 fallback URL = %q", cards[2].Cover.FallbackURL)
	}
}

func TestCards_EmptyInputSkipsStore(t *testing.T) {
	t.Parallel()

	f := newFixture()
	cards, err := f.svc.Cards(context.Background(), nil)
	if err != nil {
		t.Fatalf("Cards() error = %v", err)
	}
	if cards == nil || len(cards) != 0 {
		t.Errorf("expected empty non-nil slice, got %v", cards)
	}
	if len(f.rows.calls) != 0 || len(f.links.calls) != 0 {
		t.Errorf("no store calls expected, got rows=%d links=%d", len(f.rows.calls), len(f.links.calls))
	}
}

func TestCards_RowErrorPropagates(t *testing.T) {
	t.Parallel()

	f := newFixture()
	f.rows.err = errDown

	if _, err := f.svc.Cards(context.Background(), []string{"b1"}); !errors.Is(err, errDown) {
		t.Fatalf("Cards() error = %v, want %v", err, errDown)
	}
	if len(f.links.calls) != 0 {
		t.Error("fallback fetch must not run after a row fetch failure")
	}
}

// Not parallel: asserts on a global counter.
func TestCards_FallbackErrorDegrades(t *testing.T) {
	f := newFixture()
	f.links.err = errDown
	ctx := logging.ContextWithRequestID(context.Background(), "req-42")

	before := testutil.ToFloat64(metrics.CoverFallbackErrors.WithLabelValues(SurfaceCard))

	cards, err := f.svc.Cards(ctx, []string{"b1", "b3"})
	if err != nil {
		t.Fatalf("Cards() must degrade, got error %v", err)
	}
	if cards[1].Cover.URL != covers.PlaceholderURL || cards[1].Cover.QualityTier != int(covers.TierUnusable) {
		t.Errorf("b3 should keep its original cover, got %+v", cards[1].Cover)
	}

	if got := testutil.ToFloat64(metrics.CoverFallbackErrors.WithLabelValues(SurfaceCard)) - before; got != 1 {
		t.Errorf("fallback error counter delta = %v, want 1", got)
	}

	logs := f.logs.String()
	for _, want := range []string{`"level":"warn"`, `"surface":"card"`, `"request_id":"req-42"`, `"component":"catalog"`} {
		if !strings.Contains(logs, want) {
			t.Errorf("log output missing %s: %s", want, logs)
		}
	}
}

func TestList(t *testing.T) {
	t.Parallel()

	ids := []string{"b2", "b3", "b1", "b4"}
	tests := []struct {
		name        string
		sortByCover bool
		want        []string
	}{
		{"request order", false, []string{"b2", "b3", "b1", "b4"}},
		{"by cover quality", true, []string{"b1", "b4", "b2", "b3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := newFixture()
			items, err := f.svc.List(context.Background(), ids, tt.sortByCover)
			if err != nil {
				t.Fatalf("List() error = %v", err)
			}
			if got := listIDs(items); !slices.Equal(got, tt.want) {
				t.Errorf("List() order = %v, want %v", got, tt.want)
			}
			for _, it := range items {
				if it.ID == "b3" && it.Cover.URL != "https://img.example.com/b3.jpg" {
					t.Errorf("b3 should be normalized, got %q", it.Cover.URL)
				}
				if it.ID == "b3" && it.Category != "Science Fiction" {
					t.Errorf("b3 category = %q", it.Category)
				}
			}
		})
	}
}

func TestList_FallbackErrorDegrades(t *testing.T) {
	f := newFixture()
	f.links.err = errDown

	items, err := f.svc.List(context.Background(), []string{"b3", "b1"}, true)
	if err != nil {
		t.Fatalf("List() must degrade, got error %v", err)
	}
	if got := listIDs(items); !slices.Equal(got, []string{"b1", "b3"}) {
		t.Errorf("List() order = %v", got)
	}
	if items[1].Cover.URL != covers.PlaceholderURL {
		t.Errorf("b3 should keep its original cover, got %q", items[1].Cover.URL)
	}
}

func TestDetail(t *testing.T) {
	t.Parallel()

	f := newFixture()
	d, err := f.svc.Detail(context.Background(), " b3 ")
	if err != nil {
		t.Fatalf("Detail() error = %v", err)
	}

	if d.ID != "b3" || d.Title != "Hyperion" || d.Publisher != "Doubleday" {
		t.Errorf("detail = %+v", d)
	}
	if d.PublishedYear != 1989 || d.PageCount != 482 || d.ISBN13 != "9780385249492" {
		t.Errorf("detail numbers = %d/%d/%s", d.PublishedYear, d.PageCount, d.ISBN13)
	}
	if d.Cover.URL != "https://img.example.com/b3.jpg" || d.Cover.QualityTier != int(covers.TierStandard) {
		t.Errorf("detail cover = %+v", d.Cover)
	}
	if !slices.Equal(f.rows.calls[0], []string{"b3"}) {
		t.Errorf("row fetch = %v", f.rows.calls)
	}
}

func TestDetail_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		id        string
		rowsErr   error
		linksErr  error
		wantErr   error
		wantCalls int
	}{
		{name: "blank id", id: "  ", wantErr: ErrBookNotFound, wantCalls: 0},
		{name: "unknown id", id: "zzz", wantErr: ErrBookNotFound, wantCalls: 1},
		{name: "row error", id: "b1", rowsErr: errDown, wantErr: errDown, wantCalls: 1},
		{name: "fallback error propagates", id: "b3", linksErr: errDown, wantErr: errDown, wantCalls: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := newFixture()
			f.rows.err = tt.rowsErr
			f.links.err = tt.linksErr

			_, err := f.svc.Detail(context.Background(), tt.id)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Detail() error = %v, want %v", err, tt.wantErr)
			}
			if len(f.rows.calls) != tt.wantCalls {
				t.Errorf("row fetches = %d, want %d", len(f.rows.calls), tt.wantCalls)
			}
		})
	}
}

func TestDetail_UsableCoverSkipsFallback(t *testing.T) {
	t.Parallel()

	f := newFixture()
	if _, err := f.svc.Detail(context.Background(), "b1"); err != nil {
		t.Fatalf("Detail() error = %v", err)
	}
	if len(f.links.calls) != 0 {
		t.Errorf("fallback store queried for a usable cover: %v", f.links.calls)
	}
}

// Folio - Book Catalog Covers and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"github.com/tomtom215/folio/internal/catalog"
	"github.com/tomtom215/folio/internal/covers"
	"github.com/tomtom215/folio/internal/models"
	"github.com/tomtom215/folio/internal/recommend"
)

var errStore = errors.New("connection refused")

type fakeCatalog struct {
	cards     map[string]models.BookCard
	err       error
	listCalls []bool
}

func (f *fakeCatalog) Cards(_ context.Context, ids []string) ([]models.BookCard, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]models.BookCard, 0, len(ids))
	for _, id := range ids {
		if c, ok := f.cards[id]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCatalog) List(ctx context.Context, ids []string, sortByCover bool) ([]models.BookListItem, error) {
	f.listCalls = append(f.listCalls, sortByCover)
	cards, err := f.Cards(ctx, ids)
	if err != nil {
		return nil, err
	}
	items := make([]models.BookListItem, len(cards))
	for i, c := range cards {
		items[i] = models.BookListItem{ID: c.ID, Title: c.Title, Cover: c.Cover}
	}
	if sortByCover {
		covers.SortByQuality(items)
	}
	return items, nil
}

func (f *fakeCatalog) Detail(_ context.Context, id string) (models.BookDetail, error) {
	if f.err != nil {
		return models.BookDetail{}, f.err
	}
	c, ok := f.cards[id]
	if !ok {
		return models.BookDetail{}, catalog.ErrBookNotFound
	}
	return models.BookDetail{ID: c.ID, Title: c.Title, Cover: c.Cover}, nil
}

type fakeRecommender struct {
	recs      []recommend.Candidate
	err       error
	lastLimit int
}

func (f *fakeRecommender) FetchRecommendations(_ context.Context, bookID string, limit int) ([]recommend.Candidate, error) {
	f.lastLimit = limit
	if strings.TrimSpace(bookID) == "" {
		return nil, recommend.ErrInvalidBookID
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.recs, nil
}

func (f *fakeRecommender) Stats() recommend.Stats {
	return recommend.Stats{Requests: 7, Errors: 1, Empty: 2}
}

type fakePinger struct{ err error }

func (f fakePinger) Ping(context.Context) error { return f.err }

type apiFixture struct {
	handler http.Handler
	catalog *fakeCatalog
	recs    *fakeRecommender
}

func newAPIFixture(t *testing.T, mutate func(*Dependencies)) *apiFixture {
	t.Helper()

	cat := &fakeCatalog{cards: map[string]models.BookCard{
		"b1": {ID: "b1", Title: "Solaris", Cover: models.CoverFields{URL: "https://ext.example.com/b1.jpg", QualityTier: 2}},
		"b2": {ID: "b2", Title: "Dune", Cover: models.CoverFields{URL: "https://cdn.example.com/b2.jpg", QualityTier: 5}},
		"b3": {ID: "b3", Title: "Hyperion", Cover: models.CoverFields{URL: "https://ext.example.com/b3.jpg", QualityTier: 3}},
	}}
	rec := &fakeRecommender{recs: []recommend.Candidate{
		{Card: cat.cards["b2"], Source: recommend.SourcePipeline},
		{Card: cat.cards["b3"], Source: recommend.SourceSameAuthor},
	}}

	deps := Dependencies{
		Catalog:     cat,
		Recommender: rec,
		Scorer:      covers.NewScorer(covers.NewResolver(covers.Options{CDNBaseURL: "https://cdn.example.com/"}), nil),
		Store:       fakePinger{},
		Version:     "test",
	}
	if mutate != nil {
		mutate(&deps)
	}

	cfg := DefaultChiMiddlewareConfig()
	cfg.CORSAllowedOrigins = []string{"https://folio.example.com"}
	cfg.RateLimitDisabled = true

	router := NewRouter(NewHandler(deps), NewChiMiddleware(cfg), 0)
	return &apiFixture{handler: router.Setup(), catalog: cat, recs: rec}
}

func (f *apiFixture) do(t *testing.T, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

// envelope mirrors models.APIResponse with a raw data field.
type envelope struct {
	Status   string           `json:"status"`
	Data     json.RawMessage  `json:"data"`
	Metadata models.Metadata  `json:"metadata"`
	Error    *models.APIError `json:"error"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return env
}

func decodeData(t *testing.T, env envelope, dst interface{}) {
	t.Helper()
	if err := json.Unmarshal(env.Data, dst); err != nil {
		t.Fatalf("decode data %s: %v", env.Data, err)
	}
}

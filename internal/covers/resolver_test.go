// Folio - Book Catalog Covers and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package covers

import (
	"testing"

	"github.com/tomtom215/folio/internal/models"
)

const testCDN = "https://cdn.example.com/"

func intPtr(v int) *int       { return &v }
func boolPtr(v bool) *bool    { return &v }
func strPtr(v string) *string { return &v }

func newTestResolver() *Resolver {
	return NewResolver(Options{CDNBaseURL: testCDN})
}

func TestNewResolver_NormalizesBase(t *testing.T) {
	t.Parallel()

	r := NewResolver(Options{CDNBaseURL: " https://cdn.example.com "})
	if r.CDNBase() != testCDN {
		t.Errorf("CDNBase() = %q, want %q", r.CDNBase(), testCDN)
	}
	if NewResolver(Options{}).CDNBase() != "" {
		t.Error("empty CDN base should stay empty")
	}
}

func TestResolve(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name            string
		resolver        *Resolver
		ref             CoverReference
		wantURL         string
		wantKey         string
		wantFromStorage bool
	}{
		{
			name:            "storage key via cdn",
			resolver:        newTestResolver(),
			ref:             CoverReference{Primary: "images/x.jpg"},
			wantURL:         "https://cdn.example.com/images/x.jpg",
			wantKey:         "images/x.jpg",
			wantFromStorage: true,
		},
		{
			name:            "leading slash stripped",
			resolver:        newTestResolver(),
			ref:             CoverReference{Primary: "/images/x.jpg"},
			wantURL:         "https://cdn.example.com/images/x.jpg",
			wantKey:         "images/x.jpg",
			wantFromStorage: true,
		},
		{
			name:     "placeholder primary beats fallback",
			resolver: newTestResolver(),
			ref:      CoverReference{Primary: "covers/placeholder-book-cover.png", FallbackExternalURL: "https://img.example.com/a.jpg"},
			wantURL:  PlaceholderURL,
		},
		{
			name:     "remote primary verbatim",
			resolver: newTestResolver(),
			ref:      CoverReference{Primary: "https://img.example.com/a.jpg?zoom=1", FallbackExternalURL: "https://img.example.com/b.jpg"},
			wantURL:  "https://img.example.com/a.jpg?zoom=1",
		},
		{
			name:     "data uri primary",
			resolver: newTestResolver(),
			ref:      CoverReference{Primary: "data:image/png;base64,AAAA"},
			wantURL:  "data:image/png;base64,AAAA",
		},
		{
			name:     "sentinel primary uses fallback",
			resolver: newTestResolver(),
			ref:      CoverReference{Primary: "null", FallbackExternalURL: "https://img.example.com/b.jpg"},
			wantURL:  "https://img.example.com/b.jpg",
		},
		{
			name:     "key without cdn uses fallback",
			resolver: NewResolver(Options{}),
			ref:      CoverReference{Primary: "images/x.jpg", FallbackExternalURL: "https://img.example.com/b.jpg"},
			wantURL:  "https://img.example.com/b.jpg",
		},
		{
			name:     "slash-only key is not resolvable",
			resolver: newTestResolver(),
			ref:      CoverReference{Primary: "/", FallbackExternalURL: "https://img.example.com/b.jpg"},
			wantURL:  "https://img.example.com/b.jpg",
		},
		{
			name:     "placeholder fallback",
			resolver: NewResolver(Options{}),
			ref:      CoverReference{Primary: "", FallbackExternalURL: "/images/placeholder-book-cover.svg"},
			wantURL:  PlaceholderURL,
		},
		{
			name:     "storage key in fallback is not resolved",
			resolver: newTestResolver(),
			ref:      CoverReference{Primary: "", FallbackExternalURL: "covers/b.jpg"},
			wantURL:  PlaceholderURL,
		},
		{
			name:     "nothing usable",
			resolver: newTestResolver(),
			ref:      CoverReference{Primary: "undefined", FallbackExternalURL: "  "},
			wantURL:  PlaceholderURL,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := tt.resolver.Resolve(tt.ref)
			if got.URL != tt.wantURL {
				t.Errorf("URL = %q, want %q", got.URL, tt.wantURL)
			}
			if got.StorageKey != tt.wantKey {
				t.Errorf("StorageKey = %q, want %q", got.StorageKey, tt.wantKey)
			}
			if got.FromStorage != tt.wantFromStorage {
				t.Errorf("FromStorage = %v, want %v", got.FromStorage, tt.wantFromStorage)
			}
		})
	}
}

func TestResolve_Totality(t *testing.T) {
	t.Parallel()

	inputs := []string{"", " ", "null", "NONE", "n/a", "/", "//", "placeholder-book-cover", "key.jpg", "http://", "data:image"}
	resolvers := []*Resolver{newTestResolver(), NewResolver(Options{})}

	for _, r := range resolvers {
		for _, primary := range inputs {
			for _, fallback := range inputs {
				got := r.Resolve(CoverReference{Primary: primary, FallbackExternalURL: fallback})
				if got.URL == "" {
					t.Fatalf("Resolve(%q, %q) returned empty URL", primary, fallback)
				}
				if got.Width <= 0 || got.Height <= 0 {
					t.Fatalf("Resolve(%q, %q) returned dimensions %dx%d", primary, fallback, got.Width, got.Height)
				}
			}
		}
	}
}

func TestResolve_Dimensions(t *testing.T) {
	t.Parallel()

	r := newTestResolver()

	t.Run("explicit beats zoom", func(t *testing.T) {
		got := r.Resolve(CoverReference{
			Primary: "https://books.google.com/books/content?id=x&zoom=4",
			Width:   intPtr(300),
			Height:  intPtr(450),
		})
		if got.Width != 300 || got.Height != 450 || got.DimensionsDefaulted {
			t.Errorf("got %dx%d defaulted=%v, want 300x450", got.Width, got.Height, got.DimensionsDefaulted)
		}
		if got.HighResolution {
			t.Error("300x450 should not be high resolution")
		}
	})

	t.Run("zoom 4 is high resolution", func(t *testing.T) {
		got := r.Resolve(CoverReference{Primary: "https://books.google.com/books/content?id=x&zoom=4"})
		if got.Width != 640 || got.Height != 960 || !got.HighResolution {
			t.Errorf("got %dx%d high=%v", got.Width, got.Height, got.HighResolution)
		}
	})

	t.Run("default dimensions are never high resolution", func(t *testing.T) {
		got := r.Resolve(CoverReference{Primary: "covers/a.jpg"})
		if !got.DimensionsDefaulted || got.HighResolution {
			t.Errorf("defaulted=%v high=%v, want true/false", got.DimensionsDefaulted, got.HighResolution)
		}
		if got.Width != DefaultWidth || got.Height != DefaultHeight {
			t.Errorf("got %dx%d, want default", got.Width, got.Height)
		}
	})

	t.Run("explicit flag forces high resolution", func(t *testing.T) {
		got := r.Resolve(CoverReference{Primary: "covers/a.jpg", HighResolution: boolPtr(true)})
		if !got.HighResolution {
			t.Error("explicit high resolution flag ignored")
		}
	})

	t.Run("explicit false does not hide large size", func(t *testing.T) {
		got := r.Resolve(CoverReference{Primary: "covers/a.jpg", Width: intPtr(800), Height: intPtr(1200), HighResolution: boolPtr(false)})
		if !got.HighResolution {
			t.Error("800x1200 should be high resolution")
		}
	})
}

func TestReferenceFromRow(t *testing.T) {
	t.Parallel()

	row := &models.BookRow{
		ID:                    "b1",
		CoverS3Key:            strPtr("covers/b1.jpg"),
		CoverFallbackURL:      strPtr("https://img.example.com/b1.jpg"),
		CoverWidth:            intPtr(400),
		CoverHeight:           intPtr(600),
		CoverIsHighResolution: boolPtr(false),
		CoverIsGrayscale:      boolPtr(true),
	}
	ref := ReferenceFromRow(row)
	if ref.Primary != "covers/b1.jpg" || ref.FallbackExternalURL != "https://img.example.com/b1.jpg" {
		t.Errorf("unexpected reference %+v", ref)
	}
	if ref.Grayscale == nil || !*ref.Grayscale {
		t.Error("grayscale flag not carried")
	}

	empty := ReferenceFromRow(&models.BookRow{ID: "b2"})
	if empty.Primary != "" || empty.Width != nil {
		t.Errorf("missing columns should map to absent, got %+v", empty)
	}
}

// Folio - Book Catalog Covers and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package covers

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"strings"
	"time"

	"github.com/tomtom215/folio/internal/metrics"
	"github.com/tomtom215/folio/internal/models"
)

// NeedsFallback reports whether a record whose cover URL is rawURL should
// be considered for a fallback lookup. It errs towards true: a false
// positive costs one lookup, a false negative ships a broken cover.
func (r *Resolver) NeedsFallback(rawURL string) bool {
	kind, v := Classify(rawURL)
	switch kind {
	case KindAbsent, KindPlaceholder:
		return true
	case KindStorageKey:
		if _, ok := r.storageKey(v); !ok {
			return true
		}
		return containsFold(v, r.internalPath)
	}

	if IsImageDataURI(v) {
		return false
	}
	if isLocalHost(v) {
		return true
	}
	return containsFold(v, r.internalPath) && !r.IsCDNURL(v)
}

func isLocalHost(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return true
	}
	host := strings.ToLower(u.Hostname())
	if host == "" || host == "localhost" || strings.HasSuffix(host, ".localhost") {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && (ip.IsLoopback() || ip.IsUnspecified())
}

func containsFold(s, substr string) bool {
	return substr != "" && strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// ImageLinkStore is the batch image-links fetch. Implementations return
// the rows that pass criteria, best first within each book; the fetcher
// re-applies the rules and keeps the first row per book that still passes.
type ImageLinkStore interface {
	FetchImageLinks(ctx context.Context, bookIDs []string, criteria models.ImageLinkCriteria) ([]models.ImageLinkRow, error)
}

// FallbackCandidate is the alternative cover chosen for one book.
type FallbackCandidate struct {
	BookID    string
	Cover     ResolvedCover
	Grayscale bool
	Type      string
	CreatedAt time.Time
}

// ImageTypeOrder lists image-link types from most to least preferred.
// Types not listed rank after all of them.
var ImageTypeOrder = []string{
	"canonical",
	"extraLarge",
	"large",
	"medium",
	"small",
	"thumbnail",
	"smallThumbnail",
}

var imageTypePriority = func() map[string]int {
	m := make(map[string]int, len(ImageTypeOrder))
	for i, t := range ImageTypeOrder {
		m[strings.ToLower(t)] = i
	}
	return m
}()

// TypePriority returns the selection rank of an image-link type label,
// lower is preferred.
func TypePriority(label string) int {
	if p, ok := imageTypePriority[strings.ToLower(strings.TrimSpace(label))]; ok {
		return p
	}
	return len(ImageTypeOrder)
}

// DefaultImageLinkCriteria returns the filters applied to fallback images.
func DefaultImageLinkCriteria() models.ImageLinkCriteria {
	return models.ImageLinkCriteria{
		MinWidth:          MinCoverWidth,
		MinHeight:         MinCoverHeight,
		MinAspectRatio:    MinAspectRatio,
		MaxAspectRatio:    MaxAspectRatio,
		PlaceholderMarker: PlaceholderMarker,
		ExcludePattern:    NonCoverPagePattern,
	}
}

// FallbackFetcher finds alternative covers for books whose cover is unusable.
type FallbackFetcher struct {
	store    ImageLinkStore
	scorer   *Scorer
	criteria models.ImageLinkCriteria
}

// NewFallbackFetcher creates a fetcher over store.
func NewFallbackFetcher(store ImageLinkStore, scorer *Scorer) *FallbackFetcher {
	return &FallbackFetcher{store: store, scorer: scorer, criteria: DefaultImageLinkCriteria()}
}

// Scorer returns the scorer used to resolve and rank candidates.
func (f *FallbackFetcher) Scorer() *Scorer {
	return f.scorer
}

// Fetch returns the best fallback candidate per book ID using a single
// batch query. Books without an eligible image are absent from the map.
// Store errors are returned, never folded into an empty result.
func (f *FallbackFetcher) Fetch(ctx context.Context, bookIDs []string) (map[string]FallbackCandidate, error) {
	ids := uniqueNonBlank(bookIDs)
	if len(ids) == 0 {
		return map[string]FallbackCandidate{}, nil
	}

	rows, err := f.store.FetchImageLinks(ctx, ids, f.criteria)
	if err != nil {
		return nil, fmt.Errorf("fetch fallback covers for %d books: %w", len(ids), err)
	}

	wanted := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}

	best := make(map[string]FallbackCandidate, len(ids))
	for i := range rows {
		row := &rows[i]
		if _, ok := wanted[row.BookID]; !ok {
			continue
		}
		cand, ok := f.candidate(row)
		if !ok {
			continue
		}
		if cur, exists := best[row.BookID]; exists && !preferCandidate(cand, cur) {
			continue
		}
		best[row.BookID] = cand
	}

	metrics.RecordFallbackLookup(len(ids), len(best))
	return best, nil
}

// candidate applies the eligibility rules to row and resolves it.
func (f *FallbackFetcher) candidate(row *models.ImageLinkRow) (FallbackCandidate, bool) {
	if _, failed := SanitizePtr(row.DownloadError); failed {
		return FallbackCandidate{}, false
	}

	key, hasKey := SanitizePtr(row.S3Key)
	link, hasLink := Sanitize(row.URL)
	if (hasKey && IsPlaceholder(key)) || (hasLink && IsPlaceholder(link)) {
		return FallbackCandidate{}, false
	}
	if hasLink && !f.scorer.validator.IsLikelyCover(link) {
		return FallbackCandidate{}, false
	}
	if row.Width != nil && row.Height != nil && *row.Width > 0 && *row.Height > 0 &&
		!passesGeometry(*row.Width, *row.Height) {
		return FallbackCandidate{}, false
	}

	rc := f.scorer.resolver.Resolve(CoverReference{
		Primary:             key,
		FallbackExternalURL: link,
		Width:               row.Width,
		Height:              row.Height,
	})
	if rc.URL == PlaceholderURL || !f.scorer.validator.IsLikelyCover(rc.URL) {
		return FallbackCandidate{}, false
	}

	return FallbackCandidate{
		BookID:    row.BookID,
		Cover:     rc,
		Grayscale: row.IsGrayscale != nil && *row.IsGrayscale,
		Type:      row.Type,
		CreatedAt: row.CreatedAt,
	}, true
}

// preferCandidate reports whether a beats b: lower type priority, then newer.
func preferCandidate(a, b FallbackCandidate) bool {
	pa, pb := TypePriority(a.Type), TypePriority(b.Type)
	if pa != pb {
		return pa < pb
	}
	return a.CreatedAt.After(b.CreatedAt)
}

func passesGeometry(width, height int) bool {
	if width < MinCoverWidth || height < MinCoverHeight {
		return false
	}
	ratio := float64(height) / float64(width)
	return ratio >= MinAspectRatio && ratio <= MaxAspectRatio
}

func uniqueNonBlank(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

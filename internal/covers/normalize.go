// Folio - Book Catalog Covers and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package covers

import (
	"context"

	"github.com/tomtom215/folio/internal/models"
)

// Record is any record shape carrying cover fields: cards, list items and
// detail pages all implement it.
type Record[R any] interface {
	RecordID() string
	CoverFields() models.CoverFields
	WithCoverFields(models.CoverFields) R
}

// Normalize patches every record whose cover needs a fallback with the
// best alternative image from the fetcher's store. Records with a usable
// cover are returned unchanged. At most one batch query is issued, and
// none when no record qualifies.
func Normalize[R Record[R]](ctx context.Context, f *FallbackFetcher, records []R) ([]R, error) {
	ids := IDsNeedingFallback(f.scorer.resolver, records)

	candidates := map[string]FallbackCandidate{}
	if len(ids) > 0 {
		var err error
		candidates, err = f.Fetch(ctx, ids)
		if err != nil {
			return nil, err
		}
	}
	return ApplyFallbacks(f.scorer, records, candidates), nil
}

// IDsNeedingFallback returns the distinct IDs of records whose cover URL
// fails NeedsFallback, in record order.
func IDsNeedingFallback[R Record[R]](resolver *Resolver, records []R) []string {
	ids := make([]string, 0)
	seen := make(map[string]struct{})
	for _, rec := range records {
		id := rec.RecordID()
		if id == "" || !resolver.NeedsFallback(rec.CoverFields().URL) {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}

// ApplyFallbacks returns a copy of records with unusable covers replaced
// by their candidates. An existing FallbackURL is kept; otherwise it is set
// to the substituted URL.
func ApplyFallbacks[R Record[R]](scorer *Scorer, records []R, candidates map[string]FallbackCandidate) []R {
	out := make([]R, len(records))
	for i, rec := range records {
		out[i] = rec

		current := rec.CoverFields()
		if !scorer.resolver.NeedsFallback(current.URL) {
			continue
		}
		cand, ok := candidates[rec.RecordID()]
		if !ok {
			continue
		}

		grayscale := cand.Grayscale
		tier := scorer.ScoreCover(cand.Cover, &grayscale)
		if tier == TierUnusable {
			continue
		}

		patched := FieldsFromResolved(cand.Cover, grayscale)
		patched.QualityTier = int(tier)
		patched.FallbackURL = current.FallbackURL
		if patched.FallbackURL == "" {
			patched.FallbackURL = cand.Cover.URL
		}
		out[i] = rec.WithCoverFields(patched)
	}
	return out
}

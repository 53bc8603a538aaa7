// Folio - Book Catalog Covers and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package recommend

import (
	"cmp"
	"slices"
	"time"

	"github.com/tomtom215/folio/internal/models"
)

// Caps bounds the capped recommendation buckets.
type Caps struct {
	SameAuthor   int `json:"same_author"`
	SameCategory int `json:"same_category"`
}

// DefaultCaps allows three same-author and three same-category books.
func DefaultCaps() Caps {
	return Caps{SameAuthor: 3, SameCategory: 3}
}

// uncapped marks a bucket limited only by the overall limit.
const uncapped = -1

// Merge combines candidates using DefaultCaps.
func Merge(candidates []Candidate, limit int) []Candidate {
	return MergeWithCaps(candidates, limit, DefaultCaps())
}

// MergeWithCaps partitions candidates by source, keeping incoming order
// within each bucket, and fills at most limit entries: every PIPELINE
// candidate, then up to caps.SameAuthor SAME_AUTHOR, up to
// caps.SameCategory SAME_CATEGORY, then OTHER. The first occurrence of a
// book wins. Candidates without a book ID are dropped.
func MergeWithCaps(candidates []Candidate, limit int, caps Caps) []Candidate {
	if limit <= 0 {
		return []Candidate{}
	}

	var buckets [4][]Candidate
	for i := range candidates {
		src := candidates[i].Source
		if src < SourceOther || src > SourceSameCategory {
			src = SourceOther
		}
		buckets[src] = append(buckets[src], candidates[i])
	}

	plan := []struct {
		source Source
		cap    int
	}{
		{SourcePipeline, uncapped},
		{SourceSameAuthor, caps.SameAuthor},
		{SourceSameCategory, caps.SameCategory},
		{SourceOther, uncapped},
	}

	out := make([]Candidate, 0, min(limit, len(candidates)))
	seen := make(map[string]struct{}, len(candidates))

	for _, step := range plan {
		taken := 0
		for i := range buckets[step.source] {
			if len(out) == limit {
				return out
			}
			if step.cap != uncapped && taken >= step.cap {
				break
			}
			c := buckets[step.source][i]
			id := c.TargetID()
			if id == "" {
				continue
			}
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			c.Source = step.source
			out = append(out, c)
			taken++
		}
	}
	return out
}

// OrderRows sorts rows in place into merge input order: rows whose source
// is exactSourceID first, then active before expired, score descending
// with missing scores last, then newest first. The sort is stable.
func OrderRows(rows []models.RecommendationRow, exactSourceID string, now time.Time) {
	slices.SortStableFunc(rows, func(a, b models.RecommendationRow) int {
		if c := cmp.Compare(exactRank(a, exactSourceID), exactRank(b, exactSourceID)); c != 0 {
			return c
		}
		if c := cmp.Compare(expiredRank(a, now), expiredRank(b, now)); c != 0 {
			return c
		}
		if c := compareScoreDesc(a.Score, b.Score); c != 0 {
			return c
		}
		return b.CreatedAt.Compare(a.CreatedAt)
	})
}

func exactRank(r models.RecommendationRow, exact string) int {
	if r.SourceBookID == exact {
		return 0
	}
	return 1
}

func expiredRank(r models.RecommendationRow, now time.Time) int {
	if isExpired(r, now) {
		return 1
	}
	return 0
}

func isExpired(r models.RecommendationRow, now time.Time) bool {
	return r.ExpiresAt != nil && !r.ExpiresAt.After(now)
}

func compareScoreDesc(a, b *float64) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	default:
		return cmp.Compare(*b, *a)
	}
}

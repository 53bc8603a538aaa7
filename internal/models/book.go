// Folio - Book Catalog Covers and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package models

import "time"

// BookRow is a book as returned by the batch row fetch. The cover columns
// are raw: CoverS3Key may be a storage key, a URL, a sentinel such as "null",
// or blank. Columns absent from the result set are left nil.
type BookRow struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	Subtitle      *string `json:"subtitle,omitempty"`
	Author        *string `json:"author,omitempty"`
	Category      *string `json:"category,omitempty"`
	Publisher     *string `json:"publisher,omitempty"`
	PublishedYear *int    `json:"published_year,omitempty"`
	ISBN13        *string `json:"isbn13,omitempty"`
	PageCount     *int    `json:"page_count,omitempty"`
	Description   *string `json:"description,omitempty"`

	CoverS3Key            *string `json:"cover_s3_key,omitempty"`
	CoverFallbackURL      *string `json:"cover_fallback_url,omitempty"`
	CoverWidth            *int    `json:"cover_width,omitempty"`
	CoverHeight           *int    `json:"cover_height,omitempty"`
	CoverIsHighResolution *bool   `json:"cover_is_high_resolution,omitempty"`
	CoverIsGrayscale      *bool   `json:"cover_is_grayscale,omitempty"`
}

// ImageLinkRow is one alternative image for a book from the image-links store.
type ImageLinkRow struct {
	ID            int64     `json:"id"`
	BookID        string    `json:"book_id"`
	Type          string    `json:"type"` // canonical, extraLarge, large, medium, small, thumbnail, smallThumbnail
	URL           string    `json:"url"`
	S3Key         *string   `json:"s3_key,omitempty"`
	Width         *int      `json:"width,omitempty"`
	Height        *int      `json:"height,omitempty"`
	IsGrayscale   *bool     `json:"is_grayscale,omitempty"`
	DownloadError *string   `json:"download_error,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// ImageLinkCriteria are the server-side filters applied by the image-links
// batch fetch. Zero values disable the corresponding filter.
type ImageLinkCriteria struct {
	MinWidth          int
	MinHeight         int
	MinAspectRatio    float64
	MaxAspectRatio    float64
	PlaceholderMarker string
	// ExcludePattern is an RE2 expression matched case-insensitively against the URL.
	ExcludePattern string
}

// WorkCluster groups book IDs believed to be editions of the same work.
type WorkCluster struct {
	ID              string   `json:"id"`
	CanonicalBookID *string  `json:"canonical_book_id,omitempty"`
	MemberIDs       []string `json:"member_ids"`
}

// RecommendationRow is a precomputed recommendation edge from SourceBookID
// to TargetBookID. Source is the producer label, e.g. PIPELINE or SAME_AUTHOR.
type RecommendationRow struct {
	SourceBookID string     `json:"source_book_id"`
	TargetBookID string     `json:"target_book_id"`
	Score        *float64   `json:"score,omitempty"`
	Reason       *string    `json:"reason,omitempty"`
	Source       string     `json:"source"`
	ExpiresAt    *time.Time `json:"expires_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// RecommendationQuery selects recommendation rows for a set of source books.
// Rows are returned ordered: ExactSourceID first, active before expired,
// score descending, then most recent.
type RecommendationQuery struct {
	SourceIDs     []string
	ExactSourceID string
	Now           time.Time
}

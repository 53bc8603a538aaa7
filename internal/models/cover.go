// Folio - Book Catalog Covers and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package models

// CoverFields is the resolved cover carried by every record shape.
//
// URL is never empty once a record has been mapped; the placeholder image
// path is used when nothing else resolves. FallbackURL is a secondary
// choice for clients whose primary load fails.
type CoverFields struct {
	URL            string `json:"url"`
	StorageKey     string `json:"storage_key,omitempty"`
	FromStorage    bool   `json:"from_storage"`
	FallbackURL    string `json:"fallback_url,omitempty"`
	Width          int    `json:"width"`
	Height         int    `json:"height"`
	HighResolution bool   `json:"high_resolution"`
	Grayscale      bool   `json:"grayscale"`
	QualityTier    int    `json:"quality_tier"`
}

// BookCard is the compact shape used on grids and recommendation strips.
type BookCard struct {
	ID     string      `json:"id"`
	Title  string      `json:"title"`
	Author string      `json:"author,omitempty"`
	Cover  CoverFields `json:"cover"`
}

// RecordID returns the book ID.
func (c BookCard) RecordID() string { return c.ID }

// CoverFields returns the card's cover.
func (c BookCard) CoverFields() CoverFields { return c.Cover }

// WithCoverFields returns a copy of the card with cover replaced.
func (c BookCard) WithCoverFields(cover CoverFields) BookCard {
	c.Cover = cover
	return c
}

// BookListItem is the row shape used by list and search views.
type BookListItem struct {
	ID            string      `json:"id"`
	Title         string      `json:"title"`
	Subtitle      string      `json:"subtitle,omitempty"`
	Author        string      `json:"author,omitempty"`
	Category      string      `json:"category,omitempty"`
	PublishedYear int         `json:"published_year,omitempty"`
	Cover         CoverFields `json:"cover"`
}

// RecordID returns the book ID.
func (l BookListItem) RecordID() string { return l.ID }

// CoverFields returns the list item's cover.
func (l BookListItem) CoverFields() CoverFields { return l.Cover }

// WithCoverFields returns a copy of the list item with cover replaced.
func (l BookListItem) WithCoverFields(cover CoverFields) BookListItem {
	l.Cover = cover
	return l
}

// BookDetail is the full shape served by the book page.
type BookDetail struct {
	ID            string      `json:"id"`
	Title         string      `json:"title"`
	Subtitle      string      `json:"subtitle,omitempty"`
	Author        string      `json:"author,omitempty"`
	Category      string      `json:"category,omitempty"`
	Publisher     string      `json:"publisher,omitempty"`
	PublishedYear int         `json:"published_year,omitempty"`
	ISBN13        string      `json:"isbn13,omitempty"`
	PageCount     int         `json:"page_count,omitempty"`
	Description   string      `json:"description,omitempty"`
	Cover         CoverFields `json:"cover"`
}

// RecordID returns the book ID.
func (d BookDetail) RecordID() string { return d.ID }

// CoverFields returns the detail's cover.
func (d BookDetail) CoverFields() CoverFields { return d.Cover }

// WithCoverFields returns a copy of the detail with cover replaced.
func (d BookDetail) WithCoverFields(cover CoverFields) BookDetail {
	d.Cover = cover
	return d
}

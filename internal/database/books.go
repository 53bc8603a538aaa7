// Folio - Book Catalog Covers and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/tomtom215/folio/internal/models"
)

// bookBindings maps books column names to the BookRow fields they fill.
func bookBindings(b *models.BookRow) map[string]any {
	return map[string]any{
		"id":                       &b.ID,
		"title":                    &b.Title,
		"subtitle":                 &b.Subtitle,
		"author":                   &b.Author,
		"category":                 &b.Category,
		"publisher":                &b.Publisher,
		"published_year":           &b.PublishedYear,
		"isbn13":                   &b.ISBN13,
		"page_count":               &b.PageCount,
		"description":              &b.Description,
		"cover_s3_key":             &b.CoverS3Key,
		"cover_fallback_url":       &b.CoverFallbackURL,
		"cover_width":              &b.CoverWidth,
		"cover_height":             &b.CoverHeight,
		"cover_is_high_resolution": &b.CoverIsHighResolution,
		"cover_is_grayscale":       &b.CoverIsGrayscale,
	}
}

// scanByName scans the current row into the bindings matching each result
// column. Unknown columns are discarded and missing ones keep their zero
// value, so the books table may carry extra columns or omit optional ones.
func scanByName(rows *sql.Rows, cols []string, bind map[string]any) error {
	dest := make([]any, len(cols))
	for i, c := range cols {
		if d, ok := bind[strings.ToLower(c)]; ok {
			dest[i] = d
			continue
		}
		dest[i] = new(any)
	}
	return rows.Scan(dest...)
}

// GetBookRows returns the books with the given IDs in one query, in the
// order the IDs were requested. Unknown IDs are omitted.
func (db *DB) GetBookRows(ctx context.Context, ids []string) (rows []models.BookRow, err error) {
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return []models.BookRow{}, nil
	}
	if err := db.checkOpen(); err != nil {
		return nil, err
	}

	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	start := time.Now()
	defer func() { db.observe("select", "books", start, err) }()

	placeholders, args := buildInClause(ids)
	query := fmt.Sprintf("SELECT * FROM books WHERE id IN (%s)", placeholders)

	result, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query books: %w", err)
	}
	defer closeWithLog(result, "books rows")

	cols, err := result.Columns()
	if err != nil {
		return nil, fmt.Errorf("read book columns: %w", err)
	}

	byID := make(map[string]models.BookRow, len(ids))
	for result.Next() {
		var b models.BookRow
		if err := scanByName(result, cols, bookBindings(&b)); err != nil {
			return nil, fmt.Errorf("scan book row: %w", err)
		}
		byID[b.ID] = b
	}
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("iterate book rows: %w", err)
	}

	rows = make([]models.BookRow, 0, len(byID))
	for _, id := range ids {
		if b, ok := byID[id]; ok {
			rows = append(rows, b)
		}
	}
	return rows, nil
}

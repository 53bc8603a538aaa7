// Folio - Book Catalog Covers and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tomtom215/folio/internal/covers"
	"github.com/tomtom215/folio/internal/models"
)

// typePriorityExpr ranks image_links.type in SQL with the same order the
// fallback fetcher uses client-side.
var typePriorityExpr = func() string {
	var b strings.Builder
	b.WriteString("CASE lower(type)")
	for i, t := range covers.ImageTypeOrder {
		fmt.Fprintf(&b, " WHEN %s THEN %d", sqlStringLiteral(strings.ToLower(t)), i)
	}
	fmt.Fprintf(&b, " ELSE %d END", len(covers.ImageTypeOrder))
	return b.String()
}()

// maxImageLinksPerBook bounds how many ranked rows one book contributes.
const maxImageLinksPerBook = 16

// noDownloadErrorExpr accepts NULL, blank and sentinel download errors, the
// same values covers.Sanitize treats as absent.
var noDownloadErrorExpr = func() string {
	tokens := covers.AbsentTokens()
	quoted := make([]string, 0, len(tokens)+1)
	quoted = append(quoted, "''")
	for _, t := range tokens {
		quoted = append(quoted, sqlStringLiteral(t))
	}
	return fmt.Sprintf("(download_error IS NULL OR lower(trim(download_error)) IN (%s))",
		strings.Join(quoted, ", "))
}()

// imageLinkConditions builds the WHERE conditions for criteria. Zero
// criteria fields add no condition.
func imageLinkConditions(c models.ImageLinkCriteria) ([]string, []any) {
	conds := []string{
		noDownloadErrorExpr,
		"(trim(url) <> '' OR trim(coalesce(s3_key, '')) <> '')",
	}
	var args []any

	if c.PlaceholderMarker != "" {
		marker := strings.ToLower(c.PlaceholderMarker)
		conds = append(conds,
			"strpos(lower(url), ?) = 0",
			"(s3_key IS NULL OR strpos(lower(s3_key), ?) = 0)")
		args = append(args, marker, marker)
	}

	// Rows without known geometry pass; the fetcher scores them later.
	var geom []string
	if c.MinWidth > 0 {
		geom = append(geom, "width >= ?")
		args = append(args, c.MinWidth)
	}
	if c.MinHeight > 0 {
		geom = append(geom, "height >= ?")
		args = append(args, c.MinHeight)
	}
	if c.MinAspectRatio > 0 {
		geom = append(geom, "CAST(height AS DOUBLE) / width >= ?")
		args = append(args, c.MinAspectRatio)
	}
	if c.MaxAspectRatio > 0 {
		geom = append(geom, "CAST(height AS DOUBLE) / width <= ?")
		args = append(args, c.MaxAspectRatio)
	}
	if len(geom) > 0 {
		conds = append(conds, fmt.Sprintf(
			"(width IS NULL OR height IS NULL OR width <= 0 OR height <= 0 OR (%s))",
			strings.Join(geom, " AND ")))
	}

	if c.ExcludePattern != "" {
		conds = append(conds,
			"NOT regexp_matches(url, ?, 'i')",
			"NOT regexp_matches(coalesce(s3_key, ''), ?, 'i')")
		args = append(args, c.ExcludePattern, c.ExcludePattern)
	}
	return conds, args
}

// FetchImageLinks returns the eligible images for all bookIDs in one query,
// grouped by book and ranked within each book: lowest type priority first,
// newest on ties. Each book contributes at most maxImageLinksPerBook rows.
func (db *DB) FetchImageLinks(ctx context.Context, bookIDs []string, criteria models.ImageLinkCriteria) (links []models.ImageLinkRow, err error) {
	ids := uniqueIDs(bookIDs)
	if len(ids) == 0 {
		return []models.ImageLinkRow{}, nil
	}
	if err := db.checkOpen(); err != nil {
		return nil, err
	}

	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	start := time.Now()
	defer func() { db.observe("select", "book_image_links", start, err) }()

	placeholders, args := buildInClause(ids)
	conds, condArgs := imageLinkConditions(criteria)
	args = append(args, condArgs...)

	query := fmt.Sprintf(`
		SELECT id, book_id, type, url, s3_key, width, height, is_grayscale, download_error, created_at
		FROM (
			SELECT *,
				ROW_NUMBER() OVER (
					PARTITION BY book_id
					ORDER BY %s, created_at DESC, id DESC
				) AS rn
			FROM book_image_links
			WHERE book_id IN (%s) AND %s
		)
		WHERE rn <= %d
		ORDER BY book_id, rn`,
		typePriorityExpr, placeholders, strings.Join(conds, " AND "), maxImageLinksPerBook)

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query image links: %w", err)
	}
	defer closeWithLog(rows, "image link rows")

	links = make([]models.ImageLinkRow, 0, len(ids))
	for rows.Next() {
		var l models.ImageLinkRow
		if err := rows.Scan(&l.ID, &l.BookID, &l.Type, &l.URL, &l.S3Key,
			&l.Width, &l.Height, &l.IsGrayscale, &l.DownloadError, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan image link: %w", err)
		}
		links = append(links, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate image links: %w", err)
	}
	return links, nil
}

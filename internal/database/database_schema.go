// Folio - Book Catalog Covers and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package database

import (
	"context"
	"fmt"
	"time"
)

// schemaContext returns a context with timeout for schema operations
func schemaContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 60*time.Second)
}

// initialize creates tables and indexes
func (db *DB) initialize() error {
	ctx, cancel := schemaContext()
	defer cancel()

	for _, query := range tableCreationQueries {
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to execute query: %s: %w", query, err)
		}
	}
	for _, query := range indexQueries {
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to execute index query: %s: %w", query, err)
		}
	}
	return nil
}

// Timestamps are stored as UTC TIMESTAMP values and written explicitly so
// the schema does not depend on the ICU extension.
var tableCreationQueries = []string{
	`CREATE TABLE IF NOT EXISTS books (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		subtitle TEXT,
		author TEXT,
		category TEXT,
		publisher TEXT,
		published_year INTEGER,
		isbn13 TEXT,
		page_count INTEGER,
		description TEXT,
		cover_s3_key TEXT,
		cover_fallback_url TEXT,
		cover_width INTEGER,
		cover_height INTEGER,
		cover_is_high_resolution BOOLEAN,
		cover_is_grayscale BOOLEAN
	)`,

	`CREATE SEQUENCE IF NOT EXISTS book_image_links_id_seq START 1`,

	`CREATE TABLE IF NOT EXISTS book_image_links (
		id BIGINT PRIMARY KEY DEFAULT nextval('book_image_links_id_seq'),
		book_id TEXT NOT NULL,
		type TEXT NOT NULL,
		url TEXT NOT NULL,
		s3_key TEXT,
		width INTEGER,
		height INTEGER,
		is_grayscale BOOLEAN,
		download_error TEXT,
		created_at TIMESTAMP NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS work_clusters (
		id TEXT PRIMARY KEY,
		canonical_book_id TEXT
	)`,

	`CREATE TABLE IF NOT EXISTS work_cluster_members (
		cluster_id TEXT NOT NULL,
		book_id TEXT NOT NULL,
		position INTEGER NOT NULL,
		PRIMARY KEY (cluster_id, book_id)
	)`,

	`CREATE TABLE IF NOT EXISTS book_recommendations (
		source_book_id TEXT NOT NULL,
		target_book_id TEXT NOT NULL,
		score DOUBLE,
		reason TEXT,
		source TEXT NOT NULL,
		expires_at TIMESTAMP,
		created_at TIMESTAMP NOT NULL
	)`,
}

var indexQueries = []string{
	`CREATE INDEX IF NOT EXISTS idx_image_links_book ON book_image_links(book_id)`,
	`CREATE INDEX IF NOT EXISTS idx_cluster_members_book ON work_cluster_members(book_id)`,
	`CREATE INDEX IF NOT EXISTS idx_clusters_canonical ON work_clusters(canonical_book_id)`,
	`CREATE INDEX IF NOT EXISTS idx_recommendations_source ON book_recommendations(source_book_id)`,
}

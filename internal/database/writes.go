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

// nullable converts an optional field to a bind argument: nil or the value.
func nullable[T any](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}

// inTx runs fn inside a transaction, committing on success.
func (db *DB) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	if err := db.checkOpen(); err != nil {
		return err
	}
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("%w (rollback failed: %v)", err, rbErr)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// UpsertBooks inserts or replaces books by ID.
func (db *DB) UpsertBooks(ctx context.Context, books []models.BookRow) (err error) {
	if len(books) == 0 {
		return nil
	}
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	start := time.Now()
	defer func() { db.observe("upsert", "books", start, err) }()

	return db.inTx(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
			INSERT OR REPLACE INTO books (
				id, title, subtitle, author, category, publisher, published_year,
				isbn13, page_count, description, cover_s3_key, cover_fallback_url,
				cover_width, cover_height, cover_is_high_resolution, cover_is_grayscale
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("prepare book upsert: %w", err)
		}
		defer closeWithLog(stmt, "book upsert statement")

		for i := range books {
			b := &books[i]
			if strings.TrimSpace(b.ID) == "" {
				return fmt.Errorf("book %d: id is required", i)
			}
			if _, err := stmt.ExecContext(ctx,
				strings.TrimSpace(b.ID), b.Title, nullable(b.Subtitle), nullable(b.Author),
				nullable(b.Category), nullable(b.Publisher), nullable(b.PublishedYear),
				nullable(b.ISBN13), nullable(b.PageCount), nullable(b.Description),
				nullable(b.CoverS3Key), nullable(b.CoverFallbackURL), nullable(b.CoverWidth),
				nullable(b.CoverHeight), nullable(b.CoverIsHighResolution), nullable(b.CoverIsGrayscale),
			); err != nil {
				return fmt.Errorf("upsert book %s: %w", b.ID, err)
			}
		}
		return nil
	})
}

// InsertImageLinks appends image links. IDs are assigned by the database;
// a zero CreatedAt is stamped with the current time.
func (db *DB) InsertImageLinks(ctx context.Context, links []models.ImageLinkRow) (err error) {
	if len(links) == 0 {
		return nil
	}
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	start := time.Now()
	defer func() { db.observe("insert", "book_image_links", start, err) }()

	now := time.Now().UTC()
	return db.inTx(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO book_image_links (
				book_id, type, url, s3_key, width, height, is_grayscale, download_error, created_at
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("prepare image link insert: %w", err)
		}
		defer closeWithLog(stmt, "image link insert statement")

		for i := range links {
			l := &links[i]
			created := l.CreatedAt
			if created.IsZero() {
				created = now
			}
			if _, err := stmt.ExecContext(ctx,
				strings.TrimSpace(l.BookID), l.Type, l.URL, nullable(l.S3Key), nullable(l.Width),
				nullable(l.Height), nullable(l.IsGrayscale), nullable(l.DownloadError), created.UTC(),
			); err != nil {
				return fmt.Errorf("insert image link for %s: %w", l.BookID, err)
			}
		}
		return nil
	})
}

// ReplaceWorkCluster stores a cluster, replacing any previous membership.
// Member order is preserved as the stored position.
func (db *DB) ReplaceWorkCluster(ctx context.Context, cluster models.WorkCluster) (err error) {
	if strings.TrimSpace(cluster.ID) == "" {
		return fmt.Errorf("work cluster id is required")
	}
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	start := time.Now()
	defer func() { db.observe("upsert", "work_clusters", start, err) }()

	return db.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`INSERT OR REPLACE INTO work_clusters (id, canonical_book_id) VALUES (?, ?)`,
			cluster.ID, nullable(cluster.CanonicalBookID)); err != nil {
			return fmt.Errorf("upsert work cluster %s: %w", cluster.ID, err)
		}
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM work_cluster_members WHERE cluster_id = ?`, cluster.ID); err != nil {
			return fmt.Errorf("clear members of %s: %w", cluster.ID, err)
		}
		for pos, member := range uniqueIDs(cluster.MemberIDs) {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO work_cluster_members (cluster_id, book_id, position) VALUES (?, ?, ?)`,
				cluster.ID, member, pos); err != nil {
				return fmt.Errorf("insert member %s of %s: %w", member, cluster.ID, err)
			}
		}
		return nil
	})
}

// InsertRecommendations appends recommendation rows. A zero CreatedAt is
// stamped with the current time.
func (db *DB) InsertRecommendations(ctx context.Context, recs []models.RecommendationRow) (err error) {
	if len(recs) == 0 {
		return nil
	}
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	start := time.Now()
	defer func() { db.observe("insert", "book_recommendations", start, err) }()

	now := time.Now().UTC()
	return db.inTx(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO book_recommendations (
				source_book_id, target_book_id, score, reason, source, expires_at, created_at
			) VALUES (?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("prepare recommendation insert: %w", err)
		}
		defer closeWithLog(stmt, "recommendation insert statement")

		for i := range recs {
			r := &recs[i]
			created := r.CreatedAt
			if created.IsZero() {
				created = now
			}
			var expires any
			if r.ExpiresAt != nil {
				expires = r.ExpiresAt.UTC()
			}
			if _, err := stmt.ExecContext(ctx,
				strings.TrimSpace(r.SourceBookID), strings.TrimSpace(r.TargetBookID),
				nullable(r.Score), nullable(r.Reason), r.Source, expires, created.UTC(),
			); err != nil {
				return fmt.Errorf("insert recommendation %s->%s: %w", r.SourceBookID, r.TargetBookID, err)
			}
		}
		return nil
	})
}

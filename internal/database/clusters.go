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

// GetWorkCluster returns the cluster that contains bookID as a member or as
// its canonical book, with members in stored position order. It returns
// nil, nil when the book belongs to no cluster. When a book appears in
// several clusters the one with the lowest ID wins.
func (db *DB) GetWorkCluster(ctx context.Context, bookID string) (cluster *models.WorkCluster, err error) {
	bookID = strings.TrimSpace(bookID)
	if bookID == "" {
		return nil, nil
	}
	if err := db.checkOpen(); err != nil {
		return nil, err
	}

	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	start := time.Now()
	defer func() { db.observe("select", "work_clusters", start, err) }()

	const query = `
		WITH target AS (
			SELECT id FROM (
				SELECT cluster_id AS id FROM work_cluster_members WHERE book_id = ?
				UNION
				SELECT id FROM work_clusters WHERE canonical_book_id = ?
			)
			ORDER BY id
			LIMIT 1
		)
		SELECT c.id, c.canonical_book_id, m.book_id
		FROM work_clusters c
		JOIN target t ON t.id = c.id
		LEFT JOIN work_cluster_members m ON m.cluster_id = c.id
		ORDER BY m.position, m.book_id`

	rows, err := db.conn.QueryContext(ctx, query, bookID, bookID)
	if err != nil {
		return nil, fmt.Errorf("query work cluster: %w", err)
	}
	defer closeWithLog(rows, "work cluster rows")

	for rows.Next() {
		var (
			id        string
			canonical *string
			member    sql.NullString
		)
		if err := rows.Scan(&id, &canonical, &member); err != nil {
			return nil, fmt.Errorf("scan work cluster: %w", err)
		}
		if cluster == nil {
			cluster = &models.WorkCluster{ID: id, CanonicalBookID: canonical}
		}
		if member.Valid {
			cluster.MemberIDs = append(cluster.MemberIDs, member.String)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate work cluster: %w", err)
	}
	return cluster, nil
}

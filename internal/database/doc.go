// Folio - Book Catalog Covers and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

/*
Package database provides the DuckDB-backed catalog store.

The store holds five tables:

  - books: catalog rows including the raw cover columns
  - book_image_links: alternative images per book (fallback covers)
  - work_clusters / work_cluster_members: editions grouped by work
  - book_recommendations: precomputed recommendation edges

Every read is a single batched query: callers pass all IDs at once and
receive all rows in one round trip. Reads never swallow errors; an empty
result always means the query succeeded.

BreakerStore wraps a DB with a sony/gobreaker circuit breaker so that a
failing database is rejected quickly with ErrStoreUnavailable instead of
stacking up timeouts.

Query durations and errors are recorded in internal/metrics.
*/
package database

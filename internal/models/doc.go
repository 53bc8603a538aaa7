// Folio - Book Catalog Covers and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

/*
Package models defines the data structures shared by the Folio services.

Row types mirror what the store returns for a batch query. Nullable columns
are pointers so that a missing or NULL column is distinguishable from a zero
value:

  - BookRow: one book with its raw cover_* columns
  - ImageLinkRow: one alternative cover image for a book
  - WorkCluster: the editions believed to be the same literary work
  - RecommendationRow: one precomputed "similar book" edge

Record types are what the API serves. Each of BookCard, BookListItem and
BookDetail embeds the same CoverFields value so that cover resolution,
scoring and fallback patching are written once for all three shapes.
*/
package models

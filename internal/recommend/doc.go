// Folio - Book Catalog Covers and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

// Package recommend assembles the "similar books" list for a book page.
//
// A request runs in four steps, each issuing at most one batch query:
//
//  1. ClusterResolver widens the book ID to every edition in its work
//     cluster, canonical member first.
//  2. The DataProvider returns precomputed recommendation rows for all of
//     those IDs, ordered exact-source first, active before expired, score
//     descending, newest first.
//  3. A CardLoader maps the target IDs to book cards with resolved and
//     normalized covers.
//  4. Merge buckets candidates by Source and fills the result: all of
//     PIPELINE, up to three SAME_AUTHOR, up to three SAME_CATEGORY, then
//     OTHER, never repeating a book.
//
// Expired rows stay eligible behind active ones so the section is not
// emptied when the refresh job lags.
package recommend

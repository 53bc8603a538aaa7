// Folio - Book Catalog Covers and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

/*
Package catalog loads books as cards, list items and detail pages.

Every loader follows the same pipeline:

 1. Fetch the base rows in one batch.
 2. Map each row to its record shape, resolving and scoring the cover
    with the shared covers.Scorer.
 3. Optionally sort by cover quality (list view only).
 4. Replace unusable covers with the best alternative image using one
    batch fallback lookup.

Fallback failures degrade card and list responses: the original covers are
kept, a warning is logged and folio_cover_fallback_errors_total is
incremented. The detail page propagates the error instead.
*/
package catalog

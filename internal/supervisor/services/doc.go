// Folio - Book Catalog Covers and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

// Package services adapts Folio components to suture.Service.
//
// Each wrapper implements Serve(ctx) error and String() string, returns
// ctx.Err() on cancellation, and returns a non-nil error only for failures
// suture should restart.
package services

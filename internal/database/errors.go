// Folio - Book Catalog Covers and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package database

import (
	"errors"
	"io"
	"strings"

	"github.com/tomtom215/folio/internal/logging"
)

// ErrStoreUnavailable is returned by BreakerStore while its circuit is open
// or saturated. The underlying gobreaker error is wrapped alongside it.
var ErrStoreUnavailable = errors.New("catalog store unavailable")

// ErrClosed is returned when a query is attempted on a closed DB.
var ErrClosed = errors.New("database is closed")

// closeWithLog closes a resource and logs any error at warn level.
// Use it where a Close error should be visible but must not fail the operation.
func closeWithLog(closer io.Closer, resourceType string) {
	if closer == nil {
		return
	}
	if err := closer.Close(); err != nil {
		logging.Warn().Str("type", resourceType).Err(err).Msg("Failed to close resource")
	}
}

// closeQuietly closes a resource on an error path where the Close error is
// not actionable.
func closeQuietly(closer io.Closer) {
	if closer != nil {
		_ = closer.Close()
	}
}

// isConnectionError reports whether err indicates the connection itself is
// gone, as opposed to a failed statement.
func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrClosed) {
		return true
	}
	msg := err.Error()
	for _, marker := range []string{
		"connection refused",
		"connection reset",
		"broken pipe",
		"bad connection",
		"database is closed",
	} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

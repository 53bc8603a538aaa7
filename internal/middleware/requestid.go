// Folio - Book Catalog Covers and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/tomtom215/folio/internal/logging"
)

// Header names used for request tracing.
const (
	RequestIDHeader     = "X-Request-ID"
	CorrelationIDHeader = "X-Correlation-ID"
)

// maxUpstreamIDLength bounds IDs accepted from upstream proxies.
const maxUpstreamIDLength = 128

// RequestID assigns each request an ID, honoring a well-formed upstream
// X-Request-ID, and echoes it in the response. The ID and a correlation ID
// are stored in the logging context.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := upstreamID(r.Header.Get(RequestIDHeader))
		if requestID == "" {
			requestID = uuid.New().String()
		}
		w.Header().Set(RequestIDHeader, requestID)

		ctx := logging.ContextWithRequestID(r.Context(), requestID)
		if correlationID := upstreamID(r.Header.Get(CorrelationIDHeader)); correlationID != "" {
			ctx = logging.ContextWithCorrelationID(ctx, correlationID)
		} else {
			ctx = logging.ContextWithNewCorrelationID(ctx)
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// upstreamID returns v trimmed, or "" when it is too long or contains
// characters that do not belong in a log field.
func upstreamID(v string) string {
	v = strings.TrimSpace(v)
	if v == "" || len(v) > maxUpstreamIDLength {
		return ""
	}
	for i := 0; i < len(v); i++ {
		if c := v[i]; c < 0x21 || c > 0x7e {
			return ""
		}
	}
	return v
}

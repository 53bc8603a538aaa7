// Folio - Book Catalog Covers and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

/*
Package api exposes the catalog, cover and recommendation operations over
HTTP using the chi router.

Routes:

	GET  /api/v1/health/live
	GET  /api/v1/health/ready
	GET  /api/v1/stats
	GET  /api/v1/books?ids=a,b[&view=card|list][&sort=cover]
	GET  /api/v1/books/{id}
	GET  /api/v1/books/{id}/recommendations[?limit=n]
	POST /api/v1/covers/resolve
	GET  /metrics

Every JSON response uses the models.APIResponse envelope:

	{"status": "success", "data": ..., "metadata": {"timestamp": ...}}
	{"status": "error", "data": null, "metadata": {...}, "error": {"code": "NOT_FOUND", "message": "..."}}

Store failures map to DATABASE_ERROR (500). An open store circuit breaker
maps to SERVICE_UNAVAILABLE (503) with a Retry-After header.
*/
package api

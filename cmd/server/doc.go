// Folio - Book Catalog Covers and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

// Package main is the entry point for the Folio catalog server.
//
// Folio serves book cards, list items and detail pages with resolved,
// quality-scored cover images, plus "similar books" recommendations merged
// from the pipeline, same-author and same-category sources.
//
// # Application Architecture
//
// The server initializes components in the following order:
//
//  1. Configuration: defaults, config.yaml and environment variables (Koanf v2)
//  2. Logging: zerolog with the configured level and format
//  3. Database: DuckDB catalog store behind a circuit breaker
//  4. Covers: resolver, scorer and image-link fallback fetcher
//  5. Catalog and recommendation services
//  6. HTTP Server: chi router with CORS, rate limiting and Prometheus metrics
//  7. Supervisor tree: cluster cache janitor and HTTP server
//
// # Signal Handling
//
// SIGINT and SIGTERM cancel the root context. The supervisor stops the HTTP
// server gracefully within the configured shutdown timeout and the database
// is closed on exit.
//
// # Example Usage
//
//	export DUCKDB_PATH=/data/folio.duckdb
//	export COVER_CDN_ENABLED=true
//	export COVER_CDN_BASE_URL=https://cdn.example.com/covers/
//	./folio
package main

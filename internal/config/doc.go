// Folio - Book Catalog Covers and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

/*
Package config provides layered configuration for Folio.

Configuration is loaded with Koanf v2 in three layers, each overriding the
previous one:

 1. Built-in defaults (defaultConfig)
 2. An optional YAML file (config.yaml, /etc/folio/config.yaml, or CONFIG_PATH)
 3. Environment variables mapped through envTransformFunc

The resulting Config is validated before it is returned and is read-only
afterwards.

# Sections

  - database: DuckDB path, memory limit, threads, per-query timeout
  - server: HTTP bind address, timeouts, environment
  - security: CORS origins and rate limits for the public API
  - logging: zerolog level, format, caller annotation
  - covers: CDN base URL and the internal image path
  - recommend: result limits, bucket caps, cluster cache
  - breaker: circuit breaker thresholds for the catalog store

# Environment Variables

Database:
  - DUCKDB_PATH, DUCKDB_MAX_MEMORY, DUCKDB_THREADS, DUCKDB_QUERY_TIMEOUT

Server:
  - HTTP_HOST, HTTP_PORT, HTTP_TIMEOUT, HTTP_SHUTDOWN_TIMEOUT, ENVIRONMENT

Security:
  - CORS_ORIGINS (comma separated), TRUSTED_PROXIES
  - RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW, DISABLE_RATE_LIMIT

Logging:
  - LOG_LEVEL, LOG_FORMAT, LOG_CALLER

Covers:
  - COVER_CDN_ENABLED, COVER_CDN_BASE_URL, COVER_INTERNAL_IMAGE_PATH

Recommendations:
  - RECOMMEND_DEFAULT_LIMIT, RECOMMEND_MAX_LIMIT
  - RECOMMEND_SAME_AUTHOR_CAP, RECOMMEND_SAME_CATEGORY_CAP
  - RECOMMEND_CLUSTER_CACHE_SIZE, RECOMMEND_CLUSTER_CACHE_TTL
  - RECOMMEND_JANITOR_INTERVAL

Circuit breaker:
  - BREAKER_MAX_REQUESTS, BREAKER_INTERVAL, BREAKER_TIMEOUT,
    BREAKER_FAILURE_THRESHOLD

# Usage

	cfg, err := config.Load()
	if err != nil {
	    logging.Fatal().Err(err).Msg("Failed to load configuration")
	}
	resolver := covers.NewResolver(covers.Options{
	    CDNBaseURL:        cfg.Covers.CDNBase(),
	    InternalImagePath: cfg.Covers.InternalImagePath,
	})
*/
package config

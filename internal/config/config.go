// Folio - Book Catalog Covers and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package config

import (
	"strings"
	"time"
)

// Config holds all application configuration loaded from defaults, an
// optional config file and environment variables.
//
// Config is immutable after Load() and safe for concurrent read access.
type Config struct {
	Database  DatabaseConfig  `koanf:"database"`
	Server    ServerConfig    `koanf:"server"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
	Covers    CoversConfig    `koanf:"covers"`
	Recommend RecommendConfig `koanf:"recommend"`
	Breaker   BreakerConfig   `koanf:"breaker"`
}

// DatabaseConfig holds DuckDB settings
type DatabaseConfig struct {
	Path                   string        `koanf:"path"`
	MaxMemory              string        `koanf:"max_memory"`
	Threads                int           `koanf:"threads"`                  // Number of DuckDB threads (0 = use NumCPU)
	PreserveInsertionOrder bool          `koanf:"preserve_insertion_order"` // Whether to preserve insertion order (default true)
	QueryTimeout           time.Duration `koanf:"query_timeout"`            // Upper bound for a single catalog query
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	Environment     string        `koanf:"environment"` // "development", "staging", "production"
}

// SecurityConfig holds the public API's CORS and rate limiting settings.
// Folio serves read-only catalog data and has no authentication of its own.
type SecurityConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
	TrustedProxies    []string      `koanf:"trusted_proxies"`
}

// LoggingConfig holds logging settings for zerolog.
//
// Environment Variables:
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: json, console (default: json)
//   - LOG_CALLER: true/false - include caller file:line (default: false)
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// CoversConfig controls how stored cover keys become public URLs.
//
// The CDN base is read once at startup and injected into the cover
// resolver. With CDNEnabled false there is no base, so storage keys are
// treated as unresolvable and trigger fallback lookups.
type CoversConfig struct {
	CDNEnabled        bool   `koanf:"cdn_enabled"`
	CDNBaseURL        string `koanf:"cdn_base_url"`
	InternalImagePath string `koanf:"internal_image_path"`
}

// CDNBase returns the configured CDN base URL, or "" when the CDN is disabled.
func (c CoversConfig) CDNBase() string {
	if !c.CDNEnabled {
		return ""
	}
	return strings.TrimSpace(c.CDNBaseURL)
}

// RecommendConfig holds recommendation limits and cluster cache settings
type RecommendConfig struct {
	DefaultLimit     int           `koanf:"default_limit"`
	MaxLimit         int           `koanf:"max_limit"`
	SameAuthorCap    int           `koanf:"same_author_cap"`
	SameCategoryCap  int           `koanf:"same_category_cap"`
	ClusterCacheSize int           `koanf:"cluster_cache_size"` // 0 disables the cache
	ClusterCacheTTL  time.Duration `koanf:"cluster_cache_ttl"`
	JanitorInterval  time.Duration `koanf:"janitor_interval"` // How often expired cluster entries are swept
}

// BreakerConfig holds circuit breaker settings for the catalog store.
type BreakerConfig struct {
	// MaxRequests is the number of trial requests allowed while half-open.
	MaxRequests uint32 `koanf:"max_requests"`

	// Interval is the closed-state window after which counts reset.
	Interval time.Duration `koanf:"interval"`

	// Timeout is how long the breaker stays open before trying again.
	Timeout time.Duration `koanf:"timeout"`

	// FailureThreshold is the number of consecutive failures that opens the breaker.
	FailureThreshold uint32 `koanf:"failure_threshold"`
}

// Load reads configuration with the following precedence (highest last):
//  1. Built-in defaults
//  2. Config file (config.yaml if exists, or path specified in CONFIG_PATH env var)
//  3. Environment variables
//
// See LoadWithKoanf() for the underlying implementation.
func Load() (*Config, error) {
	return LoadWithKoanf()
}

// IsProduction returns true if the application is running in production mode.
func (c *Config) IsProduction() bool {
	env := strings.ToLower(c.Server.Environment)
	return env == "production" || env == "prod"
}

// IsDevelopment returns true if the application is running in development mode.
func (c *Config) IsDevelopment() bool {
	env := strings.ToLower(c.Server.Environment)
	return env == "" || env == "development" || env == "dev"
}

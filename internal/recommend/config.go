// Folio - Book Catalog Covers and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package recommend

import (
	"fmt"
	"time"
)

// Config contains the recommendation engine settings.
type Config struct {
	// DefaultLimit is used when a request does not specify a limit.
	DefaultLimit int `json:"default_limit"`

	// MaxLimit caps the requested limit.
	MaxLimit int `json:"max_limit"`

	// Caps bounds the SAME_AUTHOR and SAME_CATEGORY buckets.
	Caps Caps `json:"caps"`

	// ClusterCacheSize is the number of work cluster lookups kept in memory.
	// Zero disables the cache.
	ClusterCacheSize int `json:"cluster_cache_size"`

	// ClusterCacheTTL is how long a cluster lookup stays cached.
	ClusterCacheTTL time.Duration `json:"cluster_cache_ttl"`
}

// DefaultConfig returns the production defaults.
func DefaultConfig() *Config {
	return &Config{
		DefaultLimit:     12,
		MaxLimit:         50,
		Caps:             DefaultCaps(),
		ClusterCacheSize: 5000,
		ClusterCacheTTL:  10 * time.Minute,
	}
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	if c.DefaultLimit < 1 {
		return fmt.Errorf("default_limit must be positive, got %d", c.DefaultLimit)
	}
	if c.MaxLimit < c.DefaultLimit {
		return fmt.Errorf("max_limit (%d) must be >= default_limit (%d)", c.MaxLimit, c.DefaultLimit)
	}
	if c.Caps.SameAuthor < 0 || c.Caps.SameCategory < 0 {
		return fmt.Errorf("bucket caps must be non-negative, got author=%d category=%d", c.Caps.SameAuthor, c.Caps.SameCategory)
	}
	if c.ClusterCacheSize < 0 {
		return fmt.Errorf("cluster_cache_size must be non-negative, got %d", c.ClusterCacheSize)
	}
	if c.ClusterCacheSize > 0 && c.ClusterCacheTTL <= 0 {
		return fmt.Errorf("cluster_cache_ttl must be positive when the cache is enabled, got %v", c.ClusterCacheTTL)
	}
	return nil
}

// clampLimit applies DefaultLimit to non-positive values and caps at MaxLimit.
func (c *Config) clampLimit(limit int) int {
	if limit <= 0 {
		return c.DefaultLimit
	}
	if limit > c.MaxLimit {
		return c.MaxLimit
	}
	return limit
}

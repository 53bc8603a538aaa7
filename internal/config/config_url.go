// Folio - Book Catalog Covers and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package config

import (
	"fmt"
	"net/url"
	"strings"
)

// validateCDNBaseURL validates that the CDN base is an absolute HTTP(S) URL.
// A path prefix is allowed (e.g. https://cdn.example.com/covers/) because
// storage keys are appended to it; query strings and fragments are not.
func validateCDNBaseURL(rawURL string) error {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("COVER_CDN_BASE_URL failed to parse URL: %w", err)
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("COVER_CDN_BASE_URL scheme must be http or https, got: %s", parsedURL.Scheme)
	}

	if parsedURL.Host == "" {
		return fmt.Errorf("COVER_CDN_BASE_URL host is required")
	}

	if parsedURL.RawQuery != "" || parsedURL.Fragment != "" {
		return fmt.Errorf("COVER_CDN_BASE_URL should not contain query parameters or fragments")
	}

	return nil
}

// validateImagePath validates the site-relative internal image path.
func validateImagePath(path string) error {
	if !strings.HasPrefix(path, "/") {
		return fmt.Errorf("COVER_INTERNAL_IMAGE_PATH must start with '/', got: %q", path)
	}
	if strings.Contains(path, "://") {
		return fmt.Errorf("COVER_INTERNAL_IMAGE_PATH must be a path, not a URL: %q", path)
	}
	return nil
}

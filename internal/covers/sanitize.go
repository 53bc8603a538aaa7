// Folio - Book Catalog Covers and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package covers

import (
	"slices"
	"strings"
)

const (
	// PlaceholderMarker identifies the stock "no cover" image in any URL or key.
	PlaceholderMarker = "placeholder-book-cover"

	// PlaceholderURL is served when no usable cover reference exists.
	PlaceholderURL = "/images/" + PlaceholderMarker + ".svg"
)

// Kind classifies a raw cover reference.
type Kind int

const (
	// KindAbsent is null, blank, or a sentinel string such as "n/a".
	KindAbsent Kind = iota
	// KindPlaceholder references the stock placeholder image.
	KindPlaceholder
	// KindRemote is an http(s) URL or an image data URI.
	KindRemote
	// KindStorageKey is anything else: a key resolvable against the CDN.
	KindStorageKey
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindAbsent:
		return "absent"
	case KindPlaceholder:
		return "placeholder"
	case KindRemote:
		return "remote"
	case KindStorageKey:
		return "storage_key"
	default:
		return "unknown"
	}
}

var absentTokens = map[string]struct{}{
	"null":      {},
	"none":      {},
	"n/a":       {},
	"na":        {},
	"nil":       {},
	"undefined": {},
}

// AbsentTokens returns the sentinel strings treated as absent, sorted.
func AbsentTokens() []string {
	tokens := make([]string, 0, len(absentTokens))
	for t := range absentTokens {
		tokens = append(tokens, t)
	}
	slices.Sort(tokens)
	return tokens
}

// Sanitize trims value and reports whether it carries anything. Blank
// strings and sentinel tokens (null, none, n/a, na, nil, undefined, any
// case) are absent.
func Sanitize(value string) (string, bool) {
	v := strings.TrimSpace(value)
	if v == "" {
		return "", false
	}
	if _, ok := absentTokens[strings.ToLower(v)]; ok {
		return "", false
	}
	return v, true
}

// SanitizePtr is Sanitize for nullable columns.
func SanitizePtr(value *string) (string, bool) {
	if value == nil {
		return "", false
	}
	return Sanitize(*value)
}

// Classify sanitizes value and returns its kind together with the trimmed value.
func Classify(value string) (Kind, string) {
	v, ok := Sanitize(value)
	if !ok {
		return KindAbsent, ""
	}
	if IsPlaceholder(v) {
		return KindPlaceholder, v
	}
	if isRemote(v) {
		return KindRemote, v
	}
	return KindStorageKey, v
}

// IsPlaceholder reports whether value references the placeholder image.
func IsPlaceholder(value string) bool {
	return strings.Contains(strings.ToLower(value), PlaceholderMarker)
}

// IsHTTPURL reports whether value starts with http:// or https://, ignoring case.
func IsHTTPURL(value string) bool {
	return hasPrefixFold(value, "http://") || hasPrefixFold(value, "https://")
}

// IsImageDataURI reports whether value is an inline image data URI.
func IsImageDataURI(value string) bool {
	return hasPrefixFold(value, "data:image")
}

func isRemote(value string) bool {
	return IsHTTPURL(value) || IsImageDataURI(value)
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}

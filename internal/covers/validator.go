// Folio - Book Catalog Covers and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package covers

import "regexp"

// NonCoverPagePattern matches URLs of scanned interior pages that image
// providers sometimes label as covers. It is RE2 syntax so the image-links
// query can apply the same filter server-side; match case-insensitively.
const NonCoverPagePattern = `(^|[^a-z0-9])(title(?:[-_ ]|%20)?page|copyright(?:[-_ ]|%20)?page|table(?:[-_ ]|%20)?of(?:[-_ ]|%20)?contents|toc|back(?:[-_ ]|%20)?cover|spine)([^a-z0-9]|$)`

// CoverImageValidator decides whether a URL plausibly points at a front cover.
type CoverImageValidator interface {
	IsLikelyCover(url string) bool
}

// ValidatorFunc adapts a function to CoverImageValidator.
type ValidatorFunc func(url string) bool

// IsLikelyCover calls f(url).
func (f ValidatorFunc) IsLikelyCover(url string) bool {
	return f(url)
}

// PatternValidator rejects absent and placeholder values, non-image data
// URIs, and URLs matching NonCoverPagePattern.
type PatternValidator struct {
	nonCover *regexp.Regexp
}

// NewPatternValidator returns the default validator.
func NewPatternValidator() *PatternValidator {
	return &PatternValidator{nonCover: regexp.MustCompile(`(?i)` + NonCoverPagePattern)}
}

// IsLikelyCover implements CoverImageValidator.
func (v *PatternValidator) IsLikelyCover(url string) bool {
	kind, value := Classify(url)
	switch kind {
	case KindAbsent, KindPlaceholder:
		return false
	case KindRemote:
		if IsImageDataURI(value) {
			return true
		}
	case KindStorageKey:
		if hasPrefixFold(value, "data:") {
			return false
		}
	}
	return !v.nonCover.MatchString(value)
}

// Folio - Book Catalog Covers and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package covers

import (
	"math"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

// Default dimensions assumed when nothing can be inferred.
const (
	DefaultWidth  = 512
	DefaultHeight = 768

	// w/h query parameters are clamped below and rejected above these bounds.
	minQueryDimension = 2
	maxQueryDimension = 100000

	openLibraryCoversHost = "covers.openlibrary.org"
)

// Dimensions is an estimated or explicit image size in pixels.
type Dimensions struct {
	Width  int
	Height int
	// Defaulted is true when no signal was found and the default size was used.
	Defaulted bool
}

// Pixels returns Width*Height.
func (d Dimensions) Pixels() int {
	return d.Width * d.Height
}

// zoomDimensions covers the zoom levels used by the Google Books content endpoint.
var zoomDimensions = map[string]Dimensions{
	"1": {Width: 200, Height: 300},
	"2": {Width: 320, Height: 480},
	"3": {Width: 512, Height: 768},
	"4": {Width: 640, Height: 960},
}

var openLibrarySizes = map[string]Dimensions{
	"L": {Width: 600, Height: 900},
	"M": {Width: 320, Height: 480},
	"S": {Width: 120, Height: 180},
}

var openLibrarySuffix = regexp.MustCompile(`-([SMLsml])\.[A-Za-z]+$`)

// EstimateDimensions infers the size of the image at rawURL. Precedence is
// zoom parameter, then w and h parameters, then the Open Library size
// suffix, then the default. Malformed values fall through to the next rule.
func EstimateDimensions(rawURL string) Dimensions {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || IsImageDataURI(rawURL) {
		return defaultDimensions()
	}
	query := u.Query()

	if d, ok := zoomDimensions[strings.TrimSpace(query.Get("zoom"))]; ok {
		return d
	}

	if w, ok := parseQueryDimension(query.Get("w")); ok {
		if h, ok := parseQueryDimension(query.Get("h")); ok {
			return Dimensions{Width: w, Height: h}
		}
	}

	if strings.EqualFold(u.Hostname(), openLibraryCoversHost) {
		if m := openLibrarySuffix.FindStringSubmatch(u.Path); m != nil {
			return openLibrarySizes[strings.ToUpper(m[1])]
		}
	}

	return defaultDimensions()
}

// ResolveDimensions returns the explicit size when both values are positive
// and otherwise the estimate for rawURL.
func ResolveDimensions(rawURL string, width, height *int) Dimensions {
	if width != nil && height != nil && *width > 0 && *height > 0 {
		return Dimensions{Width: *width, Height: *height}
	}
	return EstimateDimensions(rawURL)
}

func parseQueryDimension(raw string) (int, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) {
		return 0, false
	}
	// Clamp before converting; int() of an out-of-range float is undefined.
	f = math.Max(minQueryDimension, math.Min(f, maxQueryDimension))
	return int(f), true
}

func defaultDimensions() Dimensions {
	return Dimensions{Width: DefaultWidth, Height: DefaultHeight, Defaulted: true}
}

// Folio - Book Catalog Covers and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package covers

import (
	"strings"

	"github.com/tomtom215/folio/internal/models"
)

// HighResolutionPixels is the pixel count at which a cover counts as high resolution.
const HighResolutionPixels = 320000

// DefaultInternalImagePath is the path prefix of covers served by the app itself.
const DefaultInternalImagePath = "/images/book-covers/"

// CoverReference is the raw description of a book cover.
type CoverReference struct {
	// Primary is a storage key or URL, possibly blank or a sentinel.
	Primary             string
	FallbackExternalURL string
	Width               *int
	Height              *int
	HighResolution      *bool
	// Grayscale is nil when unknown, which scores as color.
	Grayscale *bool
}

// ResolvedCover is a renderable cover with trustworthy dimensions.
type ResolvedCover struct {
	URL            string `json:"url"`
	StorageKey     string `json:"storage_key,omitempty"`
	FromStorage    bool   `json:"from_storage"`
	Width          int    `json:"width"`
	Height         int    `json:"height"`
	HighResolution bool   `json:"high_resolution"`
	// DimensionsDefaulted marks Width and Height as the default guess.
	DimensionsDefaulted bool `json:"dimensions_defaulted"`
}

// Options configures a Resolver.
type Options struct {
	// CDNBaseURL is prepended to storage keys. Empty disables key resolution.
	CDNBaseURL string
	// InternalImagePath marks app-served images; defaults to DefaultInternalImagePath.
	InternalImagePath string
}

// Resolver turns raw cover references into ResolvedCovers. It holds the
// CDN base read at startup and is safe for concurrent use.
type Resolver struct {
	cdnBase      string
	internalPath string
}

// NewResolver creates a Resolver. A non-empty CDN base is normalized to end in "/".
func NewResolver(opts Options) *Resolver {
	base := strings.TrimSpace(opts.CDNBaseURL)
	if base != "" && !strings.HasSuffix(base, "/") {
		base += "/"
	}
	internal := opts.InternalImagePath
	if internal == "" {
		internal = DefaultInternalImagePath
	}
	return &Resolver{cdnBase: base, internalPath: internal}
}

// CDNBase returns the configured CDN base, or "" when the CDN is disabled.
func (r *Resolver) CDNBase() string {
	return r.cdnBase
}

// IsCDNURL reports whether rawURL is served from the configured CDN.
func (r *Resolver) IsCDNURL(rawURL string) bool {
	return r.cdnBase != "" && hasPrefixFold(strings.TrimSpace(rawURL), r.cdnBase)
}

// Resolve picks one renderable URL for ref. It never fails and never
// returns an empty URL.
func (r *Resolver) Resolve(ref CoverReference) ResolvedCover {
	rc, ok := r.resolvePrimary(ref.Primary)
	if !ok {
		rc, ok = resolveRemoteOrPlaceholder(ref.FallbackExternalURL)
	}
	if !ok {
		rc = ResolvedCover{URL: PlaceholderURL}
	}

	dims := ResolveDimensions(rc.URL, ref.Width, ref.Height)
	rc.Width = dims.Width
	rc.Height = dims.Height
	rc.DimensionsDefaulted = dims.Defaulted
	rc.HighResolution = (ref.HighResolution != nil && *ref.HighResolution) ||
		(!dims.Defaulted && dims.Pixels() >= HighResolutionPixels)
	return rc
}

func (r *Resolver) resolvePrimary(primary string) (ResolvedCover, bool) {
	kind, v := Classify(primary)
	if kind != KindStorageKey {
		return resolveClassified(kind, v)
	}
	key, ok := r.storageKey(v)
	if !ok {
		return ResolvedCover{}, false
	}
	return ResolvedCover{URL: r.cdnBase + key, StorageKey: key, FromStorage: true}, true
}

// storageKey strips leading slashes and reports whether the key is resolvable.
func (r *Resolver) storageKey(v string) (string, bool) {
	if r.cdnBase == "" {
		return "", false
	}
	key := strings.TrimLeft(v, "/")
	return key, key != ""
}

func resolveRemoteOrPlaceholder(value string) (ResolvedCover, bool) {
	return resolveClassified(Classify(value))
}

func resolveClassified(kind Kind, v string) (ResolvedCover, bool) {
	switch kind {
	case KindPlaceholder:
		return ResolvedCover{URL: PlaceholderURL}, true
	case KindRemote:
		return ResolvedCover{URL: v}, true
	default:
		return ResolvedCover{}, false
	}
}

// ReferenceFromRow builds a CoverReference from a book row's raw cover columns.
func ReferenceFromRow(row *models.BookRow) CoverReference {
	return CoverReference{
		Primary:             deref(row.CoverS3Key),
		FallbackExternalURL: deref(row.CoverFallbackURL),
		Width:               row.CoverWidth,
		Height:              row.CoverHeight,
		HighResolution:      row.CoverIsHighResolution,
		Grayscale:           row.CoverIsGrayscale,
	}
}

// FieldsFromResolved copies a ResolvedCover into record cover fields.
// QualityTier is left for the caller.
func FieldsFromResolved(rc ResolvedCover, grayscale bool) models.CoverFields {
	return models.CoverFields{
		URL:            rc.URL,
		StorageKey:     rc.StorageKey,
		FromStorage:    rc.FromStorage,
		Width:          rc.Width,
		Height:         rc.Height,
		HighResolution: rc.HighResolution,
		Grayscale:      grayscale,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

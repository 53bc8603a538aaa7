// Folio - Book Catalog Covers and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package covers

import (
	"cmp"
	"slices"

	"github.com/tomtom215/folio/internal/models"
)

// QualityTier ranks how renderable and visually good a cover is, 0 through 5.
type QualityTier int

// Quality tiers, worst to best.
const (
	TierUnusable  QualityTier = 0
	TierGrayscale QualityTier = 1
	TierBasic     QualityTier = 2
	TierStandard  QualityTier = 3
	TierHighRes   QualityTier = 4
	TierBest      QualityTier = 5
)

// String returns the tier name used in metrics labels.
func (t QualityTier) String() string {
	switch t {
	case TierUnusable:
		return "unusable"
	case TierGrayscale:
		return "grayscale"
	case TierBasic:
		return "basic"
	case TierStandard:
		return "standard"
	case TierHighRes:
		return "high_res"
	case TierBest:
		return "best"
	default:
		return "unknown"
	}
}

// Geometry limits a cover must meet.
const (
	MinCoverWidth  = 180
	MinCoverHeight = 280
	MinAspectRatio = 1.2
	MaxAspectRatio = 2.0
)

// ScoreOptions describes a cover to score. Set URL for an already chosen
// URL, or StorageKey and ExternalURL to score a raw reference, which is
// resolved first. Nil Width or Height means unknown.
type ScoreOptions struct {
	URL            string
	StorageKey     string
	ExternalURL    string
	FromStorage    bool
	Width          *int
	Height         *int
	HighResolution *bool
	Grayscale      *bool
}

// Scorer assigns quality tiers. It is the only comparator for "better
// cover" and is shared by every surface.
type Scorer struct {
	resolver  *Resolver
	validator CoverImageValidator
}

// NewScorer creates a Scorer. A nil validator uses NewPatternValidator.
func NewScorer(resolver *Resolver, validator CoverImageValidator) *Scorer {
	if validator == nil {
		validator = NewPatternValidator()
	}
	return &Scorer{resolver: resolver, validator: validator}
}

// Resolver returns the resolver the scorer checks CDN URLs against.
func (s *Scorer) Resolver() *Resolver {
	return s.resolver
}

// Validator returns the cover image validator.
func (s *Scorer) Validator() CoverImageValidator {
	return s.validator
}

// Score ranks the cover described by opts.
func (s *Scorer) Score(opts ScoreOptions) QualityTier {
	if opts.URL == "" && (opts.StorageKey != "" || opts.ExternalURL != "") {
		rc := s.resolver.Resolve(CoverReference{
			Primary:             opts.StorageKey,
			FallbackExternalURL: opts.ExternalURL,
			Width:               opts.Width,
			Height:              opts.Height,
			HighResolution:      opts.HighResolution,
		})
		return s.ScoreCover(rc, opts.Grayscale)
	}

	dims := ResolveDimensions(opts.URL, opts.Width, opts.Height)
	explicitHighRes := opts.HighResolution != nil && *opts.HighResolution
	return s.rank(opts.URL, opts.FromStorage, dims, explicitHighRes, opts.Grayscale)
}

// ScoreCover ranks a resolved cover. A nil grayscale scores as color.
func (s *Scorer) ScoreCover(rc ResolvedCover, grayscale *bool) QualityTier {
	dims := Dimensions{Width: rc.Width, Height: rc.Height, Defaulted: rc.DimensionsDefaulted}
	return s.rank(rc.URL, rc.FromStorage, dims, rc.HighResolution, grayscale)
}

func (s *Scorer) rank(url string, fromStorage bool, dims Dimensions, highRes bool, grayscale *bool) QualityTier {
	kind, v := Classify(url)
	if kind == KindAbsent || kind == KindPlaceholder || !s.validator.IsLikelyCover(v) {
		return TierUnusable
	}

	known := !dims.Defaulted && dims.Width > 0 && dims.Height > 0
	if known {
		ratio := float64(dims.Height) / float64(dims.Width)
		if ratio < MinAspectRatio || ratio > MaxAspectRatio {
			return TierUnusable
		}
	}

	if grayscale != nil && *grayscale {
		return TierGrayscale
	}

	hasCDN := fromStorage || s.resolver.IsCDNURL(v)
	isHighRes := highRes || (known && dims.Pixels() >= HighResolutionPixels)
	meetsMinSize := known && dims.Width >= MinCoverWidth && dims.Height >= MinCoverHeight

	switch {
	case hasCDN && isHighRes:
		return TierBest
	case isHighRes:
		return TierHighRes
	case hasCDN || meetsMinSize:
		return TierStandard
	default:
		return TierBasic
	}
}

// Fields resolves ref and scores the result, producing the cover fields
// stored on every record shape. The external fallback becomes FallbackURL
// when it differs from the chosen URL.
func (s *Scorer) Fields(ref CoverReference) models.CoverFields {
	rc := s.resolver.Resolve(ref)
	fields := FieldsFromResolved(rc, ref.Grayscale != nil && *ref.Grayscale)
	if kind, fb := Classify(ref.FallbackExternalURL); kind == KindRemote && fb != rc.URL {
		fields.FallbackURL = fb
	}
	fields.QualityTier = int(s.ScoreCover(rc, ref.Grayscale))
	return fields
}

// SortByQuality orders records by cover quality tier, best first. Records
// with equal tiers keep their relative order.
func SortByQuality[R Record[R]](records []R) {
	slices.SortStableFunc(records, func(a, b R) int {
		return cmp.Compare(b.CoverFields().QualityTier, a.CoverFields().QualityTier)
	})
}

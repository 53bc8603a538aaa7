// Folio - Book Catalog Covers and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package recommend

import (
	"strings"

	"github.com/tomtom215/folio/internal/models"
)

// Source identifies which producer emitted a recommendation row.
type Source int

const (
	// SourceOther is any label not recognized below.
	SourceOther Source = iota
	// SourcePipeline rows come from the offline similarity pipeline.
	SourcePipeline
	// SourceSameAuthor rows share an author with the source book.
	SourceSameAuthor
	// SourceSameCategory rows share a category with the source book.
	SourceSameCategory
)

// String returns the storage label for the source.
func (s Source) String() string {
	switch s {
	case SourcePipeline:
		return "PIPELINE"
	case SourceSameAuthor:
		return "SAME_AUTHOR"
	case SourceSameCategory:
		return "SAME_CATEGORY"
	default:
		return "OTHER"
	}
}

// ParseSource maps a storage label to a Source, ignoring case and
// surrounding space. Unknown labels are SourceOther.
func ParseSource(label string) Source {
	switch strings.ToUpper(strings.TrimSpace(label)) {
	case "PIPELINE":
		return SourcePipeline
	case "SAME_AUTHOR":
		return SourceSameAuthor
	case "SAME_CATEGORY":
		return SourceSameCategory
	default:
		return SourceOther
	}
}

// MarshalText encodes the source as its label.
func (s Source) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a label with ParseSource.
func (s *Source) UnmarshalText(text []byte) error {
	*s = ParseSource(string(text))
	return nil
}

// Candidate is one recommendation ready to be merged and served.
type Candidate struct {
	// Card is the recommended book. A blank Card.ID makes the candidate
	// unrenderable and Merge drops it.
	Card models.BookCard `json:"book"`

	// Score is the producer's relevance score, higher is better.
	Score *float64 `json:"score,omitempty"`

	// Reason is optional display text such as "Also by Ursula K. Le Guin".
	Reason *string `json:"reason,omitempty"`

	Source Source `json:"source"`

	// Expired marks rows past their refresh deadline, kept as fallback.
	Expired bool `json:"expired,omitempty"`
}

// TargetID returns the trimmed ID of the recommended book.
func (c *Candidate) TargetID() string {
	return strings.TrimSpace(c.Card.ID)
}

// Folio - Book Catalog Covers and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package catalog

import (
	"strings"

	"github.com/tomtom215/folio/internal/covers"
	"github.com/tomtom215/folio/internal/models"
)

func (s *Service) coverFields(row *models.BookRow) models.CoverFields {
	return s.scorer.Fields(covers.ReferenceFromRow(row))
}

func (s *Service) card(row *models.BookRow) models.BookCard {
	return models.BookCard{
		ID:     row.ID,
		Title:  row.Title,
		Author: str(row.Author),
		Cover:  s.coverFields(row),
	}
}

func (s *Service) listItem(row *models.BookRow) models.BookListItem {
	return models.BookListItem{
		ID:            row.ID,
		Title:         row.Title,
		Subtitle:      str(row.Subtitle),
		Author:        str(row.Author),
		Category:      str(row.Category),
		PublishedYear: num(row.PublishedYear),
		Cover:         s.coverFields(row),
	}
}

func (s *Service) detail(row *models.BookRow) models.BookDetail {
	return models.BookDetail{
		ID:            row.ID,
		Title:         row.Title,
		Subtitle:      str(row.Subtitle),
		Author:        str(row.Author),
		Category:      str(row.Category),
		Publisher:     str(row.Publisher),
		PublishedYear: num(row.PublishedYear),
		ISBN13:        str(row.ISBN13),
		PageCount:     num(row.PageCount),
		Description:   str(row.Description),
		Cover:         s.coverFields(row),
	}
}

func str(p *string) string {
	if p == nil {
		return ""
	}
	return strings.TrimSpace(*p)
}

func num(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

// Folio - Book Catalog Covers and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package recommend

import (
	"fmt"
	"testing"
	"time"

	"github.com/tomtom215/folio/internal/models"
)

func cand(id string, src Source) Candidate {
	return Candidate{Card: models.BookCard{ID: id, Title: "Book " + id}, Source: src}
}

func ids(cs []Candidate) []string {
	out := make([]string, len(cs))
	for i := range cs {
		out[i] = cs[i].Card.ID
	}
	return out
}

func checkIDs(t *testing.T, got []Candidate, want ...string) {
	t.Helper()
	g := ids(got)
	if len(g) != len(want) {
		t.Fatalf("got %v, want %v", g, want)
	}
	for i := range want {
		if g[i] != want[i] {
			t.Fatalf("got %v, want %v", g, want)
		}
	}
}

func TestMerge_CapAndDedup(t *testing.T) {
	t.Parallel()

	var in []Candidate
	for i := 1; i <= 5; i++ {
		in = append(in, cand(fmt.Sprintf("p%d", i), SourcePipeline))
	}
	// Author and category buckets overlap the pipeline bucket.
	for _, id := range []string{"p1", "p2", "a1", "a2", "a3"} {
		in = append(in, cand(id, SourceSameAuthor))
	}
	for _, id := range []string{"a1", "p3", "c1", "c2", "c3"} {
		in = append(in, cand(id, SourceSameCategory))
	}

	got := Merge(in, 6)
	checkIDs(t, got, "p1", "p2", "p3", "p4", "p5", "a1")
	if got[5].Source != SourceSameAuthor {
		t.Errorf("sixth entry source = %v, want SAME_AUTHOR", got[5].Source)
	}
}

func TestMerge_BucketOrderAndCaps(t *testing.T) {
	t.Parallel()

	in := []Candidate{
		cand("o1", SourceOther),
		cand("c1", SourceSameCategory),
		cand("a1", SourceSameAuthor),
		cand("a2", SourceSameAuthor),
		cand("a3", SourceSameAuthor),
		cand("a4", SourceSameAuthor),
		cand("c2", SourceSameCategory),
		cand("c3", SourceSameCategory),
		cand("c4", SourceSameCategory),
		cand("p1", SourcePipeline),
		cand("o2", SourceOther),
	}

	got := Merge(in, 20)
	checkIDs(t, got, "p1", "a1", "a2", "a3", "c1", "c2", "c3", "o1", "o2")
}

func TestMerge_DuplicatesDoNotConsumeCap(t *testing.T) {
	t.Parallel()

	in := []Candidate{
		cand("p1", SourcePipeline),
		cand("p1", SourceSameAuthor),
		cand("a1", SourceSameAuthor),
		cand("a2", SourceSameAuthor),
		cand("a3", SourceSameAuthor),
	}

	got := Merge(in, 10)
	checkIDs(t, got, "p1", "a1", "a2", "a3")
}

func TestMerge_SkipsBlankIdentity(t *testing.T) {
	t.Parallel()

	in := []Candidate{
		cand("", SourcePipeline),
		cand("  ", SourcePipeline),
		cand("p1", SourcePipeline),
		{Source: SourceOther},
	}

	checkIDs(t, Merge(in, 5), "p1")
}

func TestMerge_PipelineUncapped(t *testing.T) {
	t.Parallel()

	var in []Candidate
	for i := 0; i < 12; i++ {
		in = append(in, cand(fmt.Sprintf("p%02d", i), SourcePipeline))
	}
	in = append(in, cand("a1", SourceSameAuthor))

	got := Merge(in, 10)
	if len(got) != 10 {
		t.Fatalf("len = %d, want 10", len(got))
	}
	for _, c := range got {
		if c.Source != SourcePipeline {
			t.Errorf("unexpected %v entry %s", c.Source, c.Card.ID)
		}
	}
}

func TestMerge_EdgeCases(t *testing.T) {
	t.Parallel()

	if got := Merge(nil, 5); len(got) != 0 {
		t.Errorf("nil input = %v", ids(got))
	}
	if got := Merge([]Candidate{cand("p1", SourcePipeline)}, 0); len(got) != 0 {
		t.Errorf("zero limit = %v", ids(got))
	}

	custom := MergeWithCaps([]Candidate{
		cand("a1", SourceSameAuthor),
		cand("a2", SourceSameAuthor),
		cand("c1", SourceSameCategory),
	}, 10, Caps{SameAuthor: 1, SameCategory: 0})
	checkIDs(t, custom, "a1")

	outOfRange := Merge([]Candidate{cand("x", Source(99))}, 3)
	if len(outOfRange) != 1 || outOfRange[0].Source != SourceOther {
		t.Errorf("unknown source should merge as OTHER, got %+v", outOfRange)
	}
}

func TestOrderRows(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)
	score := func(v float64) *float64 { return &v }

	rows := []models.RecommendationRow{
		{SourceBookID: "canon", TargetBookID: "t1", Score: score(0.9), CreatedAt: now},
		{SourceBookID: "book", TargetBookID: "t2", Score: score(0.5), ExpiresAt: &past, CreatedAt: now},
		{SourceBookID: "book", TargetBookID: "t3", Score: nil, CreatedAt: now},
		{SourceBookID: "book", TargetBookID: "t4", Score: score(0.7), ExpiresAt: &future, CreatedAt: now},
		{SourceBookID: "book", TargetBookID: "t5", Score: score(0.7), CreatedAt: now.Add(time.Minute)},
		{SourceBookID: "canon", TargetBookID: "t6", Score: score(0.9), ExpiresAt: &past, CreatedAt: now},
	}

	OrderRows(rows, "book", now)

	want := []string{"t5", "t4", "t3", "t2", "t1", "t6"}
	for i, id := range want {
		if rows[i].TargetBookID != id {
			got := make([]string, len(rows))
			for j := range rows {
				got[j] = rows[j].TargetBookID
			}
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

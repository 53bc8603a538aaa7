// Folio - Book Catalog Covers and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tomtom215/folio/internal/catalog"
	"github.com/tomtom215/folio/internal/config"
	"github.com/tomtom215/folio/internal/covers"
	"github.com/tomtom215/folio/internal/database"
	"github.com/tomtom215/folio/internal/logging"
	"github.com/tomtom215/folio/internal/recommend"
)

type recommendFlags struct {
	dbPath  string
	limit   int
	cdnBase string
	verbose bool
}

func newRecommendCmd() *cobra.Command {
	var f recommendFlags
	cmd := &cobra.Command{
		Use:   "recommend <bookID>",
		Short: "Print merged recommendations for a book",
		Long: `Print merged recommendations for a book.

Pipeline results come first, then other editions of the same work, then
same-author and same-category books. Each book appears once.`,
		Example: `  folioctl recommend b-123 --db /data/folio.duckdb --limit 8`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRecommend(cmd, args[0], &f)
		},
	}
	cmd.Flags().StringVar(&f.dbPath, "db", "folio.duckdb", "catalog database file")
	cmd.Flags().IntVar(&f.limit, "limit", 0, "maximum results (0 uses the default)")
	cmd.Flags().StringVar(&f.cdnBase, "cdn-base", "", "CDN base URL for storage keys")
	cmd.Flags().BoolVarP(&f.verbose, "verbose", "v", false, "log database activity to stderr")
	return cmd
}

func runRecommend(cmd *cobra.Command, bookID string, f *recommendFlags) error {
	level := "warn"
	if f.verbose {
		level = "debug"
	}
	logging.Init(logging.Config{Level: level, Format: "console", Output: os.Stderr})

	if _, err := os.Stat(f.dbPath); err != nil {
		return fmt.Errorf("open catalog %s: %w", f.dbPath, err)
	}
	db, err := database.New(&config.DatabaseConfig{Path: f.dbPath, PreserveInsertionOrder: true})
	if err != nil {
		return err
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Warning: failed to close database: %v\n", cerr)
		}
	}()

	resolver := covers.NewResolver(covers.Options{CDNBaseURL: f.cdnBase})
	scorer := covers.NewScorer(resolver, covers.NewPatternValidator())
	books := catalog.NewService(db, covers.NewFallbackFetcher(db, scorer), logging.WithComponent("catalog"))

	cfg := recommend.DefaultConfig()
	cfg.ClusterCacheSize = 0
	engine, err := recommend.NewEngine(cfg, db, books, logging.Logger())
	if err != nil {
		return err
	}

	recs, err := engine.FetchRecommendations(cmd.Context(), bookID, f.limit)
	if err != nil {
		return fmt.Errorf("fetch recommendations: %w", err)
	}
	if recs == nil {
		recs = []recommend.Candidate{}
	}
	return writeJSON(cmd.OutOrStdout(), recs)
}

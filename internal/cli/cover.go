// Folio - Book Catalog Covers and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tomtom215/folio/internal/covers"
)

type coverFlags struct {
	primary   string
	fallback  string
	width     int
	height    int
	highRes   bool
	grayscale bool
	cdnBase   string
}

// reference builds a CoverReference, leaving unset flags as unknown.
func (f *coverFlags) reference(cmd *cobra.Command) covers.CoverReference {
	ref := covers.CoverReference{
		Primary:             f.primary,
		FallbackExternalURL: f.fallback,
	}
	if cmd.Flags().Changed("width") {
		ref.Width = &f.width
	}
	if cmd.Flags().Changed("height") {
		ref.Height = &f.height
	}
	if cmd.Flags().Changed("high-res") {
		ref.HighResolution = &f.highRes
	}
	if cmd.Flags().Changed("grayscale") {
		ref.Grayscale = &f.grayscale
	}
	return ref
}

func (f *coverFlags) scorer() *covers.Scorer {
	resolver := covers.NewResolver(covers.Options{CDNBaseURL: f.cdnBase})
	return covers.NewScorer(resolver, covers.NewPatternValidator())
}

func (f *coverFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.primary, "primary", "", "storage key or URL of the primary cover")
	cmd.Flags().StringVar(&f.fallback, "fallback", "", "external fallback cover URL")
	cmd.Flags().IntVar(&f.width, "width", 0, "stored cover width in pixels")
	cmd.Flags().IntVar(&f.height, "height", 0, "stored cover height in pixels")
	cmd.Flags().BoolVar(&f.highRes, "high-res", false, "cover is flagged high resolution")
	cmd.Flags().BoolVar(&f.grayscale, "grayscale", false, "cover is grayscale")
	cmd.Flags().StringVar(&f.cdnBase, "cdn-base", "", "CDN base URL for storage keys")
}

func newCoverCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cover",
		Short: "Resolve and score cover references",
	}
	cmd.AddCommand(newCoverResolveCmd(), newCoverScoreCmd(), newNeedsFallbackCmd())
	return cmd
}

func newCoverResolveCmd() *cobra.Command {
	var f coverFlags
	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve a cover reference to a renderable URL",
		Example: `  folioctl cover resolve --primary covers/dune.jpg --cdn-base https://cdn.example.com/
  folioctl cover resolve --primary null --fallback https://books.example.com/dune.jpg`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			resolver := f.scorer().Resolver()
			rc := resolver.Resolve(f.reference(cmd))
			return writeJSON(cmd.OutOrStdout(), struct {
				Cover         covers.ResolvedCover `json:"cover"`
				NeedsFallback bool                 `json:"needs_fallback"`
			}{
				Cover:         rc,
				NeedsFallback: resolver.NeedsFallback(rc.URL),
			})
		},
	}
	f.register(cmd)
	return cmd
}

func newCoverScoreCmd() *cobra.Command {
	var f coverFlags
	cmd := &cobra.Command{
		Use:   "score",
		Short: "Print the quality tier of a cover reference",
		Example: `  folioctl cover score --primary https://img.example.com/c.jpg?w=800&h=1200
  folioctl cover score --primary covers/x.jpg --cdn-base https://cdn.example.com/ --grayscale`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fields := f.scorer().Fields(f.reference(cmd))
			tier := covers.QualityTier(fields.QualityTier)
			return writeJSON(cmd.OutOrStdout(), struct {
				Tier  int    `json:"tier"`
				Label string `json:"label"`
				URL   string `json:"url"`
			}{Tier: int(tier), Label: tier.String(), URL: fields.URL})
		},
	}
	f.register(cmd)
	return cmd
}

func newNeedsFallbackCmd() *cobra.Command {
	var cdnBase string
	cmd := &cobra.Command{
		Use:   "needs-fallback <url>",
		Short: "Report whether a cover URL should be replaced by an image-link fallback",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resolver := covers.NewResolver(covers.Options{CDNBaseURL: cdnBase})
			_, err := fmt.Fprintln(cmd.OutOrStdout(), resolver.NeedsFallback(args[0]))
			return err
		},
	}
	cmd.Flags().StringVar(&cdnBase, "cdn-base", "", "CDN base URL")
	return cmd
}

// Folio - Book Catalog Covers and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

// Package cli implements folioctl, the offline companion to the Folio
// server. It resolves and scores cover references without a running server
// and queries recommendations directly from a catalog database file.
package cli

import (
	"io"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

// Version is set at build time.
var Version = "dev"

// NewRootCmd builds the folioctl command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "folioctl",
		Short: "Inspect Folio cover resolution and recommendations",
		Long: `folioctl runs Folio's cover and recommendation logic offline.

Cover commands work on the values given as flags. The recommend command
opens a catalog database file read-write and prints merged recommendations.`,
		Version:      Version,
		SilenceUsage: true,
	}

	root.AddCommand(newCoverCmd(), newRecommendCmd())
	return root
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

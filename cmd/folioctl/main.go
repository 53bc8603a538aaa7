// Folio - Book Catalog Covers and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

// Command folioctl resolves and scores covers and queries recommendations
// from a catalog database without running the server.
package main

import (
	"os"

	"github.com/tomtom215/folio/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

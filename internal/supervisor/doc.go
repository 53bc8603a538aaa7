// Folio - Book Catalog Covers and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

/*
Package supervisor runs Folio's long-lived services under a suture tree.

The tree has two layers:

	folio (root)
	├── data-layer
	│   └── cluster-cache-janitor
	└── api-layer
	    └── http-server

A crash in one layer restarts only that layer's services with suture's
backoff. Supervisor events are logged through sutureslog using the slog
adapter from the logging package.

Usage:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	tree.AddDataService(services.NewCacheJanitorService(engine.Clusters(), time.Minute, logger))
	tree.AddAPIService(services.NewHTTPServerService(server, 15*time.Second))
	err = tree.Serve(ctx)
*/
package supervisor

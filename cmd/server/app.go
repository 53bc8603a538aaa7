// Folio - Book Catalog Covers and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/tomtom215/folio/internal/api"
	"github.com/tomtom215/folio/internal/catalog"
	"github.com/tomtom215/folio/internal/config"
	"github.com/tomtom215/folio/internal/covers"
	"github.com/tomtom215/folio/internal/database"
	"github.com/tomtom215/folio/internal/logging"
	"github.com/tomtom215/folio/internal/middleware"
	"github.com/tomtom215/folio/internal/recommend"
	"github.com/tomtom215/folio/internal/supervisor"
	"github.com/tomtom215/folio/internal/supervisor/services"
)

const (
	perfMonitorSize   = 1000
	slowRequestCutoff = 500 * time.Millisecond
)

// app holds the wired components of a running server.
type app struct {
	cfg     *config.Config
	db      *database.DB
	store   *database.BreakerStore
	engine  *recommend.Engine
	handler http.Handler
	server  *http.Server
}

func newApp(cfg *config.Config, version string) (*app, error) {
	db, err := database.New(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	store := database.NewBreakerStore(db, "catalog", cfg.Breaker)

	resolver := covers.NewResolver(covers.Options{
		CDNBaseURL:        cfg.Covers.CDNBase(),
		InternalImagePath: cfg.Covers.InternalImagePath,
	})
	scorer := covers.NewScorer(resolver, covers.NewPatternValidator())
	fetcher := covers.NewFallbackFetcher(store, scorer)
	books := catalog.NewService(store, fetcher, logging.WithComponent("catalog"))

	engine, err := recommend.NewEngine(recommendConfig(cfg.Recommend), store, books, logging.Logger())
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create recommendation engine: %w", err)
	}

	handler := api.NewHandler(api.Dependencies{
		Catalog:      books,
		Recommender:  engine,
		Scorer:       scorer,
		Store:        db,
		BreakerState: func() string { return store.State().String() },
		PerfMon:      middleware.NewPerformanceMonitor(perfMonitorSize, slowRequestCutoff),
		Version:      version,
	})
	mw := api.NewChiMiddleware(api.ChiMiddlewareConfigFromSecurity(&cfg.Security))
	router := api.NewRouter(handler, mw, cfg.Server.Timeout).Setup()

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	return &app{
		cfg:     cfg,
		db:      db,
		store:   store,
		engine:  engine,
		handler: router,
		server:  server,
	}, nil
}

// register adds the data and API layer services to tree.
func (a *app) register(tree *supervisor.SupervisorTree) {
	if a.cfg.Recommend.ClusterCacheSize > 0 {
		tree.AddDataService(services.NewCacheJanitorService(
			a.engine.Clusters(),
			a.cfg.Recommend.JanitorInterval,
			logging.WithComponent("supervisor"),
		))
	}
	tree.AddAPIService(services.NewHTTPServerService(a.server, a.cfg.Server.ShutdownTimeout))
}

func (a *app) Close() error {
	return a.db.Close()
}

func recommendConfig(rc config.RecommendConfig) *recommend.Config {
	return &recommend.Config{
		DefaultLimit: rc.DefaultLimit,
		MaxLimit:     rc.MaxLimit,
		Caps: recommend.Caps{
			SameAuthor:   rc.SameAuthorCap,
			SameCategory: rc.SameCategoryCap,
		},
		ClusterCacheSize: rc.ClusterCacheSize,
		ClusterCacheTTL:  rc.ClusterCacheTTL,
	}
}

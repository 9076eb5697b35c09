// Custstats - Customer Statistics Aggregation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/custstats

package api

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/custstats/internal/cache"
	"github.com/tomtom215/custstats/internal/config"
	"github.com/tomtom215/custstats/internal/logging"
	"github.com/tomtom215/custstats/internal/metrics"
	"github.com/tomtom215/custstats/internal/stats"
)

// StoreProbe is the part of the store used by readiness checks.
type StoreProbe interface {
	Ping(ctx context.Context) error
	CountCustomers(ctx context.Context) (int64, error)
}

// BreakerState reports the store circuit breaker state ("closed", "open",
// "half-open").
type BreakerState interface {
	State() string
}

// HandlerOptions carries the optional collaborators of a Handler.
type HandlerOptions struct {
	Store   StoreProbe
	Breaker BreakerState
	Version string
}

// Handler serves the customer routes over a stats.Engine.
//
// Handler methods are split across files:
//   - handlers.go: Handler struct, constructor, cache control (this file)
//   - handlers_helpers.go: JSON response and parameter helpers
//   - handlers_customers.go: listing and report endpoints
//   - handlers_health.go: root, liveness and readiness endpoints
//   - report_executor.go: strategy resolution, caching and error mapping
type Handler struct {
	engine    *stats.Engine
	config    *config.Config
	cache     *cache.Cache
	store     StoreProbe
	breaker   BreakerState
	version   string
	startTime time.Time
	reports   []reportSpec
}

// NewHandler wires the report table from the configured default strategies.
// A zero stats.cache_ttl disables report caching.
func NewHandler(engine *stats.Engine, cfg *config.Config, opts HandlerOptions) (*Handler, error) {
	genderDefault, err := stats.ParseStrategy(cfg.Stats.GenderDedup)
	if err != nil {
		return nil, fmt.Errorf("gender default strategy: %w", err)
	}
	summaryDefault, err := stats.ParseStrategy(cfg.Stats.SummaryDedup)
	if err != nil {
		return nil, fmt.Errorf("summary default strategy: %w", err)
	}

	h := &Handler{
		engine:    engine,
		config:    cfg,
		store:     opts.Store,
		breaker:   opts.Breaker,
		version:   opts.Version,
		startTime: time.Now(),
	}
	if h.version == "" {
		h.version = "dev"
	}
	if cfg.Stats.CacheTTL > 0 {
		h.cache = cache.New(cfg.Stats.CacheTTL)
	}
	h.reports = h.buildReports(genderDefault, summaryDefault)
	return h, nil
}

// ClearCache drops every cached report. Safe for concurrent use.
func (h *Handler) ClearCache() {
	if h.cache == nil {
		return
	}
	h.cache.Clear()
	metrics.RecordCacheInvalidation()
	logging.Info().Msg("Report cache cleared")
}

// Close stops the cache cleanup goroutine.
func (h *Handler) Close() {
	if h.cache != nil {
		h.cache.Stop()
	}
}

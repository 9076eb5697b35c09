// Custstats - Customer Statistics Aggregation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/custstats

package api

import (
	"context"
	"net/http"

	"github.com/tomtom215/custstats/internal/stats"
)

var (
	dedupParam    = []string{"dedup"}
	summaryParams = []string{"dedup", "strategy"}
)

// buildReports lists the /statistics routes in registration order.
func (h *Handler) buildReports(genderDefault, summaryDefault stats.Strategy) []reportSpec {
	e := h.engine
	return []reportSpec{
		{
			name: stats.ReportGender, defaultStrategy: genderDefault, strategyParams: dedupParam,
			run: func(ctx context.Context, s stats.Strategy) (any, error) { return e.GenderStats(ctx, s) },
		},
		{
			name: stats.ReportAgeGroups, defaultStrategy: stats.StrategyNone, strategyParams: dedupParam,
			run: func(ctx context.Context, s stats.Strategy) (any, error) { return e.AgeGroupStats(ctx, s) },
		},
		{
			name: stats.ReportDigitalInterests, defaultStrategy: stats.StrategyNone, strategyParams: dedupParam,
			run: func(ctx context.Context, s stats.Strategy) (any, error) { return e.DigitalInterestStats(ctx, s) },
		},
		{
			name: stats.ReportDevices, defaultStrategy: stats.StrategyNone, strategyParams: dedupParam,
			run: func(ctx context.Context, s stats.Strategy) (any, error) { return e.DeviceStats(ctx, s) },
		},
		{
			name: stats.ReportLocations, defaultStrategy: stats.StrategyNone, strategyParams: dedupParam,
			run: func(ctx context.Context, s stats.Strategy) (any, error) { return e.LocationStats(ctx, s) },
		},
		{
			name: stats.ReportLoginHours, defaultStrategy: stats.StrategyNone, strategyParams: dedupParam,
			run: func(ctx context.Context, s stats.Strategy) (any, error) { return e.LoginHourStats(ctx, s) },
		},
		{
			name: stats.ReportCorrelation, defaultStrategy: stats.StrategyNone, strategyParams: dedupParam,
			run: func(ctx context.Context, s stats.Strategy) (any, error) { return e.CorrelationStats(ctx, s) },
		},
		{
			name: stats.ReportSummary, defaultStrategy: summaryDefault, strategyParams: summaryParams,
			run: func(ctx context.Context, s stats.Strategy) (any, error) { return e.SummaryStats(ctx, s) },
		},
	}
}

type listParams struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// ListCustomers serves one page of raw rows. Non-numeric page or limit
// values fall back to defaults and the engine clamps the rest.
func (h *Handler) ListCustomers(mode responseMode) http.HandlerFunc {
	e := h.executor(mode)
	return func(w http.ResponseWriter, r *http.Request) {
		params := listParams{
			Page:  getIntParam(r, "page", 1),
			Limit: getIntParam(r, "limit", h.config.API.DefaultPageSize),
		}
		e.execute(w, r, stats.ReportList, "", params, func(ctx context.Context) (any, error) {
			return h.engine.ListCustomers(ctx, params.Page, params.Limit)
		})
	}
}

type reportParams struct {
	Strategy string `json:"strategy"`
}

// Report serves one statistics report.
func (h *Handler) Report(mode responseMode, spec reportSpec) http.HandlerFunc {
	e := h.executor(mode)
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := e.resolveStrategy(w, r, &spec)
		if !ok {
			return
		}
		e.execute(w, r, spec.name, s.Name, reportParams{Strategy: s.Name}, func(ctx context.Context) (any, error) {
			return spec.run(ctx, s)
		})
	}
}

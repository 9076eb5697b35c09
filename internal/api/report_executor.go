// Custstats - Customer Statistics Aggregation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/custstats

package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/tomtom215/custstats/internal/cache"
	"github.com/tomtom215/custstats/internal/database"
	"github.com/tomtom215/custstats/internal/logging"
	"github.com/tomtom215/custstats/internal/metrics"
	"github.com/tomtom215/custstats/internal/models"
	"github.com/tomtom215/custstats/internal/stats"
)

// responseMode selects the body format for a route family.
type responseMode int

const (
	// modeLegacy writes raw report JSON and {"message": ...} errors.
	modeLegacy responseMode = iota
	// modeEnvelope writes models.APIResponse.
	modeEnvelope
)

const internalErrorMessage = "Internal server error"

// ReportFunc computes one report under a strategy.
type ReportFunc func(ctx context.Context, s stats.Strategy) (any, error)

// reportSpec describes one /statistics route.
type reportSpec struct {
	name            string
	defaultStrategy stats.Strategy
	// strategyParams are the query parameters that select a strategy, in
	// priority order.
	strategyParams []string
	run            ReportFunc
}

// queryFunc produces the data for a request after parameters are resolved.
type queryFunc func(ctx context.Context) (any, error)

// reportExecutor runs the cache-first flow shared by every customer route:
// look up the cache, compute on a miss, cache the result and respond in the
// route family's format.
type reportExecutor struct {
	handler *Handler
	mode    responseMode
}

func (h *Handler) executor(mode responseMode) *reportExecutor {
	return &reportExecutor{handler: h, mode: mode}
}

// resolveStrategy reads the first present strategy parameter. It reports
// false after answering 400 when the name is unknown.
func (e *reportExecutor) resolveStrategy(w http.ResponseWriter, r *http.Request, spec *reportSpec) (stats.Strategy, bool) {
	query := r.URL.Query()
	for _, param := range spec.strategyParams {
		name := query.Get(param)
		if name == "" {
			continue
		}
		s, err := stats.ParseStrategy(name)
		if err != nil {
			e.badRequest(w, err.Error(), map[string]any{
				"parameter": param,
				"value":     sanitizeLogValue(name),
				"valid":     strategyNames(),
			})
			return stats.Strategy{}, false
		}
		return s, true
	}
	return spec.defaultStrategy, true
}

func strategyNames() []string {
	all := stats.Strategies()
	names := make([]string, len(all))
	for i, s := range all {
		names[i] = s.Name
	}
	return names
}

// execute answers r with the cached or freshly computed result of query.
func (e *reportExecutor) execute(w http.ResponseWriter, r *http.Request, report, strategy string, params any, query queryFunc) {
	start := time.Now()
	cacheKey := cache.GenerateKey(report, params)

	if e.handler.cache != nil {
		if cached, found := e.handler.cache.Get(cacheKey); found {
			metrics.RecordCacheHit(report)
			e.success(w, cached, models.Metadata{
				Timestamp: time.Now(),
				Cached:    true,
				Strategy:  strategy,
			})
			return
		}
		metrics.RecordCacheMiss(report)
	}

	data, err := query(r.Context())
	if err != nil {
		e.failure(w, r, report, err)
		return
	}

	if e.handler.cache != nil {
		e.handler.cache.Set(cacheKey, data)
	}

	e.success(w, data, models.Metadata{
		Timestamp:   time.Now(),
		QueryTimeMS: time.Since(start).Milliseconds(),
		Strategy:    strategy,
	})
}

func (e *reportExecutor) success(w http.ResponseWriter, data any, meta models.Metadata) {
	if e.mode == modeLegacy {
		writeJSON(w, http.StatusOK, data)
		return
	}
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status:   "success",
		Data:     data,
		Metadata: meta,
	})
}

// failure logs the fault once and answers without exposing details.
func (e *reportExecutor) failure(w http.ResponseWriter, r *http.Request, report string, err error) {
	logging.Ctx(r.Context()).Error().
		Err(err).
		Str("report", report).
		Str("path", sanitizeLogValue(r.URL.Path)).
		Msg("Report failed")

	if e.mode == modeLegacy {
		respondLegacyError(w, http.StatusInternalServerError, internalErrorMessage)
		return
	}
	if errors.Is(err, database.ErrCircuitOpen) {
		respondError(w, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "Customer store temporarily unavailable", nil)
		return
	}
	respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", internalErrorMessage, nil)
}

func (e *reportExecutor) badRequest(w http.ResponseWriter, message string, details map[string]any) {
	if e.mode == modeLegacy {
		respondLegacyError(w, http.StatusBadRequest, message)
		return
	}
	respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", message, details)
}

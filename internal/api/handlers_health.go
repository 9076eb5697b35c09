// Custstats - Customer Statistics Aggregation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/custstats

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/custstats/internal/logging"
	"github.com/tomtom215/custstats/internal/models"
)

const readinessTimeout = 2 * time.Second

// Root answers the service greeting.
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": "custstats",
	})
}

// HealthLive reports that the process is serving requests. It never touches
// the store.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: models.HealthStatus{
			Status:  "healthy",
			Version: h.version,
			Uptime:  time.Since(h.startTime).Seconds(),
		},
		Metadata: models.Metadata{Timestamp: time.Now()},
	})
}

// HealthReady pings the store and reports the breaker state. It answers 503
// when the store is unreachable or the breaker is open.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
	defer cancel()

	health := models.HealthStatus{
		Status:       "healthy",
		Version:      h.version,
		StoreBreaker: "unknown",
		Uptime:       time.Since(h.startTime).Seconds(),
	}

	if h.breaker != nil {
		health.StoreBreaker = h.breaker.State()
	}

	if h.store != nil {
		if err := h.store.Ping(ctx); err != nil {
			logging.Ctx(r.Context()).Warn().Err(err).Msg("Readiness ping failed")
		} else {
			health.DatabaseConnected = true
			if total, err := h.store.CountCustomers(ctx); err == nil {
				health.TotalRecords = total
			}
		}
	}

	status := http.StatusOK
	if !health.DatabaseConnected || health.StoreBreaker == "open" {
		health.Status = "unavailable"
		status = http.StatusServiceUnavailable
	}

	respondJSON(w, status, &models.APIResponse{
		Status:   "success",
		Data:     health,
		Metadata: models.Metadata{Timestamp: time.Now()},
	})
}

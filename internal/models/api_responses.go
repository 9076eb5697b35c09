// Custstats - Customer Statistics Aggregation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/custstats

package models

import (
	"time"
)

// APIResponse represents a standardized API response wrapper used by the
// /api/v1 endpoints.
//
// Status field values:
//   - "success": Request completed successfully, see Data field
//   - "error": Request failed, see Error field for details
//
// Example successful response:
//
//	{
//	  "status": "success",
//	  "data": {"F": 512, "M": 488},
//	  "metadata": {
//	    "timestamp": "2026-03-01T12:00:00Z",
//	    "query_time_ms": 45,
//	    "strategy": "email"
//	  }
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata contains response metadata for observability and cache tracking.
// Cached responses report QueryTimeMS as 0. Strategy names the deduplication
// strategy the report was computed under, empty for raw listings.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
	Cached      bool      `json:"cached,omitempty"`
	Strategy    string    `json:"strategy,omitempty"`
}

// APIError represents an error response with structured error details.
//
// Common error codes:
//   - VALIDATION_ERROR: Invalid input parameters (unknown dedup strategy)
//   - INTERNAL_ERROR: Report computation failed; details are never exposed
//   - SERVICE_UNAVAILABLE: Store circuit breaker is open
//   - RATE_LIMIT_EXCEEDED: Too many requests
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// LegacyError is the error body returned on the legacy /customers routes.
type LegacyError struct {
	Message string `json:"message"`
}

// HealthStatus represents the health check response.
type HealthStatus struct {
	Status            string  `json:"status"`
	Version           string  `json:"version"`
	DatabaseConnected bool    `json:"database_connected"`
	StoreBreaker      string  `json:"store_breaker"`
	TotalRecords      int64   `json:"total_records"`
	Uptime            float64 `json:"uptime_seconds"`
}

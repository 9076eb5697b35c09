// Custstats - Customer Statistics Aggregation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/custstats

/*
Package metrics exposes Prometheus instrumentation for custstats.

All collectors are registered on the default registry through promauto and
served by the API at GET /metrics. Families:

  - custstats_report_*: report computations by report name and strategy
  - duckdb_query_*: record store calls
  - custstats_import_*: CSV import rows and batches
  - api_*: HTTP request counts and latency
  - report_cache_*: response cache efficiency
  - circuit_breaker_*: record store breaker state
  - nats_*: import event traffic

Callers use the Record* helpers rather than touching collectors directly so
label sets stay consistent.
*/
package metrics

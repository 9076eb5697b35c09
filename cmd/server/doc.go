// Custstats - Customer Statistics Aggregation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/custstats

/*
Package main is the entry point for the custstats HTTP server.

custstats serves deduplicated demographic statistics over customer
interaction rows stored in DuckDB. Rows are loaded with cmd/seed.

# Application Architecture

	RootSupervisor ("custstats")
	├── BackgroundSupervisor ("background-layer")
	│   ├── ImportListener (NATS_ENABLED=true)
	│   └── duckdb-checkpoint (DUCKDB_CHECKPOINT_INTERVAL > 0)
	└── APISupervisor ("api-layer")
	    └── HTTP Server

Component initialization order:

 1. Configuration: Koanf v2 (defaults, config.yaml, environment)
 2. Logging: zerolog with the configured level and format
 3. Database: DuckDB customers table
 4. Stats engine: reads through a gobreaker circuit breaker
 5. HTTP handler and chi router
 6. Events (optional): embedded or external NATS, import listener
 7. Supervisor tree, until SIGINT or SIGTERM

# Routes

	GET /                                   service greeting
	GET /health, /health/ready              liveness and readiness
	GET /metrics                            Prometheus metrics
	GET /customers                          paginated raw rows
	GET /customers/statistics/{report}      raw JSON reports
	GET /api/v1/customers/...               same reports in the APIResponse envelope

# Example Usage

	export DUCKDB_PATH=/data/custstats.duckdb
	export STATS_SUMMARY_DEDUP=nameEmail
	./custstats-server

With an embedded NATS server so cmd/seed can invalidate the report cache:

	export NATS_ENABLED=true
	export NATS_EMBEDDED=true
	./custstats-server
*/
package main

// Custstats - Customer Statistics Aggregation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/custstats

/*
Package config provides centralized configuration management for custstats.

Configuration is layered with Koanf v2: built-in defaults, then an optional
YAML file (CONFIG_PATH or config.yaml), then environment variables. Only
environment variables listed in envMappings are read.

# Environment Variables

Server:
  - HTTP_HOST, HTTP_PORT (or PORT): Listen address (default: 0.0.0.0:3000)
  - HTTP_TIMEOUT: Read/write timeout (default: 30s)

Database:
  - DUCKDB_PATH: Database file path (default: ./data/custstats.duckdb)
  - DUCKDB_MAX_MEMORY: DuckDB memory limit (default: 2GB)
  - DUCKDB_QUERY_TIMEOUT: Bound for store calls without a deadline (default: 30s)
  - DUCKDB_CHECKPOINT_INTERVAL: Periodic WAL checkpoint, 0 disables (default: 10m)

Statistics:
  - STATS_SUMMARY_DEDUP: Default summary strategy (default: email)
  - STATS_GENDER_DEDUP: Default gender report strategy (default: email)
  - STATS_CACHE_TTL: Report cache lifetime, 0 disables caching (default: 5m)

Import:
  - IMPORT_BATCH_SIZE: Rows per insert batch (default: 200)
  - IMPORT_PROGRESS_PATH: BadgerDB directory for resumable imports

Events:
  - NATS_ENABLED, NATS_URL, NATS_EMBEDDED, NATS_SUBJECT

# Example config.yaml

	server:
	  port: 3000
	database:
	  path: /data/custstats.duckdb
	stats:
	  summary_dedup: nameEmail
	  cache_ttl: 1m
	nats:
	  enabled: true
	  embedded: true
*/
package config

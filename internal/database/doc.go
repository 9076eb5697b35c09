// Custstats - Customer Statistics Aggregation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/custstats

/*
Package database provides the DuckDB-backed customer record store.

The store holds one table, customers, with a record_id drawn from a
sequence so that iteration order equals insertion order. Rows are
append-only: the importer inserts batches, the API reads them back.

Reads:
  - CountCustomers: total row count
  - ListCustomers: one page ordered by record_id
  - ScanCustomers: streams every row to a callback in record_id order

Writes:
  - InsertCustomers: one transaction per batch; when a batch fails the rows
    are retried one at a time so a single bad row only drops itself
  - TruncateCustomers: removes every row before a replacing import

BreakerSource wraps a DB in a sony/gobreaker circuit breaker and exposes
the Count/Find/Scan methods the stats engine consumes. When DuckDB keeps
failing the breaker opens and reports fail fast instead of piling up.

Every call without a deadline runs under DatabaseConfig.QueryTimeout.
*/
package database

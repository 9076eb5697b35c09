// Custstats - Customer Statistics Aggregation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/custstats

/*
Package services adapts custstats components to suture.Service.

Each wrapper turns a component's lifecycle into the context-aware
Serve(ctx) error form suture expects and names itself through String():

  - HTTPServerService: ListenAndServe/Shutdown with a drain timeout
  - PeriodicService: runs a function on a fixed interval (DuckDB checkpoints)

events.ImportListener already implements suture.Service and is added to
the tree directly.
*/
package services

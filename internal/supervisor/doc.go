// Custstats - Customer Statistics Aggregation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/custstats

/*
Package supervisor provides process supervision for custstats using suture v4.

The server's long-running parts run under a two-layer tree so a failing
event subscription never takes the HTTP API down with it:

	RootSupervisor ("custstats")
	├── BackgroundSupervisor ("background-layer")
	│   ├── ImportListener (if NATS_ENABLED)
	│   └── PeriodicService "duckdb-checkpoint" (if DUCKDB_CHECKPOINT_INTERVAL > 0)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Crashed services are restarted with suture's backoff. Canceling the
context passed to Serve stops every service, each bounded by
TreeConfig.ShutdownTimeout.

Supervisor events (start, failure, backoff) are logged through sutureslog
into the zerolog-backed slog logger:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	tree.AddAPIService(services.NewHTTPServerService(srv, 10*time.Second))
	err = tree.Serve(ctx)
*/
package supervisor

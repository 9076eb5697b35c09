// Custstats - Customer Statistics Aggregation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/custstats

/*
Package events carries import notifications between the seed command and
running servers over NATS, using Watermill for publishing and consuming.

When a CSV import finishes, cmd/seed publishes an ImportCompleted event on
the configured subject (default "customers.imported"). Every server runs an
ImportListener that clears its report cache on receipt, so dashboards see
fresh numbers without waiting for the cache TTL.

Core NATS (no JetStream) is used: an invalidation only matters to servers
that are up when it is sent, and a server that starts later has an empty
cache anyway. Each listener subscribes without a queue group so every
instance receives every event.

For single-node setups and tests, EmbeddedServer runs nats-server in
process:

	srv, _ := events.NewEmbeddedServer("127.0.0.1", -1)
	defer srv.Shutdown()
	pub, _ := events.NewPublisher(srv.ClientURL(), "customers.imported", events.NewLoggerAdapter())
*/
package events

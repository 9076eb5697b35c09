// Custstats - Customer Statistics Aggregation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/custstats

package main

import (
	"github.com/tomtom215/custstats/internal/config"
	"github.com/tomtom215/custstats/internal/events"
	"github.com/tomtom215/custstats/internal/logging"
	"github.com/tomtom215/custstats/internal/supervisor"
)

// initEvents starts the embedded NATS server when configured and adds the
// import listener to the tree. The returned func stops the embedded server
// and is safe to call when events are disabled.
func initEvents(cfg config.NATSConfig, invalidator events.CacheInvalidator, tree *supervisor.SupervisorTree) (func(), error) {
	if !cfg.Enabled {
		logging.Info().Msg("NATS disabled, report cache expires by TTL only")
		return func() {}, nil
	}

	url := cfg.URL
	stop := func() {}
	if cfg.Embedded {
		srv, err := events.NewEmbeddedServer(cfg.Host, cfg.Port)
		if err != nil {
			return nil, err
		}
		url = srv.ClientURL()
		stop = srv.Shutdown
		logging.Info().Str("url", url).Msg("Embedded NATS server started")
	}

	listener := events.NewImportListener(url, cfg.Subject, invalidator, events.NewLoggerAdapter())
	tree.AddBackgroundService(listener)
	logging.Info().Str("url", url).Str("subject", cfg.Subject).Msg("Import listener added to supervisor tree")
	return stop, nil
}

// Custstats - Customer Statistics Aggregation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/custstats

// Package cache provides the in-memory TTL cache used for computed report
// responses.
//
// Reports are pure functions of the stored records and the chosen strategy,
// so an entry stays valid until its TTL passes or the record set changes.
// The importer signals a change (directly or through the NATS import event)
// and the API clears the whole cache.
//
//	c := cache.New(5 * time.Minute)
//	defer c.Stop()
//	key := cache.GenerateKey("gender-stats", map[string]string{"dedup": "email"})
//	c.Set(key, stats)
package cache

// Custstats - Customer Statistics Aggregation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/custstats

// Package logging provides zerolog-based structured logging for custstats.
//
// A single global logger is configured once at startup with Init and read
// everywhere else through the level helpers:
//
//	logging.Init(logging.Config{Level: "info", Format: "json"})
//	logging.Info().Str("report", "gender").Dur("took", d).Msg("Report computed")
//
// Request-scoped logging picks up request and correlation IDs stored in the
// context by the API middleware:
//
//	logging.Ctx(ctx).Warn().Err(err).Msg("Report failed")
//
// NewSlogLogger bridges zerolog into log/slog for libraries that only accept
// an *slog.Logger, such as the suture supervisor event hook.
package logging

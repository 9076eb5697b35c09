// Custstats - Customer Statistics Aggregation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/custstats

/*
Package api is the HTTP surface of custstats.

Every customer route is served twice:

  - /customers/...: legacy paths. Bodies are the raw report JSON and
    failures return {"message":"Internal server error"}.
  - /api/v1/customers/...: the same reports wrapped in models.APIResponse
    with metadata (timestamp, query time, cached flag, strategy).

Routes:

	GET /                                        service greeting
	GET /health                                  liveness
	GET /health/ready                            store ping and breaker state
	GET /metrics                                 Prometheus
	GET {prefix}/                                paged raw rows (?page, ?limit)
	GET {prefix}/statistics/gender               ?dedup (default from config)
	GET {prefix}/statistics/age-groups           ?dedup (default none)
	GET {prefix}/statistics/digital-interests    ?dedup (default none)
	GET {prefix}/statistics/devices              ?dedup (default none)
	GET {prefix}/statistics/locations            ?dedup (default none)
	GET {prefix}/statistics/login-hours          ?dedup (default none)
	GET {prefix}/statistics/correlation          ?dedup (default none)
	GET {prefix}/statistics/summary              ?dedup or ?strategy (default from config)

An unknown strategy name is a 400 VALIDATION_ERROR. Report failures are
logged once here with the report name and request ID, and the client only
sees a generic 500 (503 on the v1 routes while the store breaker is open).

Report results are cached for stats.cache_ttl, keyed by report, strategy
and paging. The cache is shared between both route families and is cleared
by Handler.ClearCache when an import completes.

Middleware (chi): RequestID, RealIP, Recoverer, CORS (go-chi/cors),
per-IP rate limiting (go-chi/httprate), Prometheus metrics and gzip on the
customer routes.
*/
package api

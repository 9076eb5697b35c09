// Custstats - Customer Statistics Aggregation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/custstats

/*
Package models defines data structures for the custstats application.

Key Components:

  - Customer: one ingested customer interaction row (login/visit event)
  - CustomerPage: paginated listing of raw rows
  - Report types: GenderStats, AgeGroupStat, InterestStat, DeviceStat,
    LocationStat, LoginHourStat, CorrelationStats, SummaryStats
  - APIResponse: standardized API response wrapper

Report field names are camelCase because dashboards built against the
legacy /customers endpoints read them directly. The API envelope keeps
snake_case metadata.

Thread Safety:

Model types are plain values with no internal synchronization. Reports are
built once per request and never mutated after they are returned.
*/
package models

// Custstats - Customer Statistics Aggregation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/custstats

/*
Package stats is the deduplicating aggregation engine behind every
customer report.

A stored row is one login or visit, so the same person usually appears many
times. Each report first picks a Strategy that decides which rows describe
the same customer, collapses them keeping the first row in store order, and
then reduces the surviving population:

	records ──► Deduplicate(Strategy) ──► GroupCount / Summarize / AgeGroup ──► report

Building blocks:

  - Strategy, Deduplicate, CountDistinct: key selection and first-wins collapse
  - GroupCount, WithPercentages, GroupCountDistinct: label counting with
    optional empty filtering and stable ordering
  - Age, AgeGroup, Summarize: derived fields that skip rows without a birth year

Engine composes these over a RecordSource. Reports are read-only and safe
to call concurrently. A failure anywhere aborts the report: the caller gets
a *ReportError wrapping ErrReportFailed and no partial data.

	engine := stats.NewEngine(source, stats.WithScatterLimit(1000))
	summary, err := engine.SummaryStats(ctx, stats.StrategyNameEmail)
*/
package stats

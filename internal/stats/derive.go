// Custstats - Customer Statistics Aggregation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/custstats

package stats

import "github.com/tomtom215/custstats/internal/models"

// Age bucket labels in report order.
const (
	AgeGroup18to24 = "18-24"
	AgeGroup25to34 = "25-34"
	AgeGroup35to44 = "35-44"
	AgeGroup45to54 = "45-54"
	AgeGroup55to64 = "55-64"
	AgeGroup65Plus = "65+"
)

// AgeGroupOrder lists the buckets from youngest to oldest.
var AgeGroupOrder = []string{
	AgeGroup18to24, AgeGroup25to34, AgeGroup35to44,
	AgeGroup45to54, AgeGroup55to64, AgeGroup65Plus,
}

// Age returns currentYear minus the birth year. The second result is false
// when the row has no birth year.
func Age(c *models.Customer, currentYear int) (int, bool) {
	if c.BirthYear == nil {
		return 0, false
	}
	return currentYear - *c.BirthYear, true
}

// AgeGroup maps an age to its bucket. Ages under 18 fall into "18-24".
func AgeGroup(age int) string {
	switch {
	case age < 25:
		return AgeGroup18to24
	case age < 35:
		return AgeGroup25to34
	case age < 45:
		return AgeGroup35to44
	case age < 55:
		return AgeGroup45to54
	case age < 65:
		return AgeGroup55to64
	default:
		return AgeGroup65Plus
	}
}

// NumericSummary accumulates count, sum and bounds of integer values.
// The zero value is an empty summary.
type NumericSummary struct {
	Count int
	Sum   int64
	Min   *int
	Max   *int
}

// Add folds v into the summary.
func (s *NumericSummary) Add(v int) {
	s.Count++
	s.Sum += int64(v)
	if s.Min == nil || v < *s.Min {
		s.Min = intPtr(v)
	}
	if s.Max == nil || v > *s.Max {
		s.Max = intPtr(v)
	}
}

// Average returns Sum/Count, or 0 for an empty summary.
func (s NumericSummary) Average() float64 {
	if s.Count == 0 {
		return 0
	}
	return float64(s.Sum) / float64(s.Count)
}

// Stat converts the summary to its wire form with the average rounded to
// places decimals. Bounds are reported raw.
func (s NumericSummary) Stat(places int) models.NumericStat {
	return models.NumericStat{
		Average: Round(s.Average(), places),
		Min:     s.Min,
		Max:     s.Max,
	}
}

// Summarize folds values into a NumericSummary.
func Summarize(values []int) NumericSummary {
	var s NumericSummary
	for _, v := range values {
		s.Add(v)
	}
	return s
}

func intPtr(v int) *int {
	return &v
}

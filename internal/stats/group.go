// Custstats - Customer Statistics Aggregation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/custstats

package stats

import (
	"math"
	"sort"

	"github.com/tomtom215/custstats/internal/models"
)

// FieldFunc extracts the grouping label from a row.
type FieldFunc func(*models.Customer) string

// SortMode orders GroupCount output.
type SortMode int

const (
	// SortNone keeps first-seen label order.
	SortNone SortMode = iota
	// SortCountDesc orders by count descending; ties keep first-seen order.
	SortCountDesc
	// SortKeyAsc orders by label ascending.
	SortKeyAsc
)

// GroupOptions controls filtering and ordering for GroupCount.
type GroupOptions struct {
	// FilterEmpty drops rows whose label is "".
	FilterEmpty bool
	Sort        SortMode
}

// Group is one label and the number of rows carrying it.
type Group struct {
	Label string
	Count int
}

// PercentGroup adds the label's share of the grouped total.
type PercentGroup struct {
	Group
	Percentage float64
}

// DistinctGroup adds the number of distinct secondary values seen for the label.
type DistinctGroup struct {
	Group
	Distinct int
}

// Field extractors used by the reports.
var (
	FieldGender          FieldFunc = func(c *models.Customer) string { return c.Gender }
	FieldDigitalInterest FieldFunc = func(c *models.Customer) string { return c.DigitalInterest }
	FieldDevice          FieldFunc = func(c *models.Customer) string { return c.Device }
	FieldLocationType    FieldFunc = func(c *models.Customer) string { return c.LocationType }
	FieldLocationName    FieldFunc = func(c *models.Customer) string { return c.LocationName }
	FieldLoginHour       FieldFunc = func(c *models.Customer) string { return c.LoginHour }
)

// GroupCount counts rows per label. Counts sum to the number of rows that
// passed the empty filter.
func GroupCount(records []models.Customer, field FieldFunc, opts GroupOptions) []Group {
	index := make(map[string]int)
	groups := make([]Group, 0)

	for i := range records {
		label := field(&records[i])
		if opts.FilterEmpty && label == "" {
			continue
		}
		if pos, ok := index[label]; ok {
			groups[pos].Count++
			continue
		}
		index[label] = len(groups)
		groups = append(groups, Group{Label: label, Count: 1})
	}

	sortGroups(groups, opts.Sort, func(i int) Group { return groups[i] })
	return groups
}

// GroupCountDistinct counts rows per label and the distinct values of
// secondary within each label. Empty secondary values are counted like any
// other value.
func GroupCountDistinct(records []models.Customer, field, secondary FieldFunc, opts GroupOptions) []DistinctGroup {
	index := make(map[string]int)
	seen := make([]map[string]struct{}, 0)
	groups := make([]DistinctGroup, 0)

	for i := range records {
		label := field(&records[i])
		if opts.FilterEmpty && label == "" {
			continue
		}
		pos, ok := index[label]
		if !ok {
			pos = len(groups)
			index[label] = pos
			groups = append(groups, DistinctGroup{Group: Group{Label: label}})
			seen = append(seen, make(map[string]struct{}))
		}
		groups[pos].Count++
		seen[pos][secondary(&records[i])] = struct{}{}
	}
	for i := range groups {
		groups[i].Distinct = len(seen[i])
	}

	sortGroups(groups, opts.Sort, func(i int) Group { return groups[i].Group })
	return groups
}

func sortGroups[T any](groups []T, mode SortMode, at func(int) Group) {
	switch mode {
	case SortCountDesc:
		sort.SliceStable(groups, func(i, j int) bool { return at(i).Count > at(j).Count })
	case SortKeyAsc:
		sort.SliceStable(groups, func(i, j int) bool { return at(i).Label < at(j).Label })
	}
}

// WithPercentages attaches each group's share of the summed counts, rounded
// to two decimals. An empty input yields an empty result.
func WithPercentages(groups []Group) []PercentGroup {
	total := 0
	for _, g := range groups {
		total += g.Count
	}

	out := make([]PercentGroup, len(groups))
	for i, g := range groups {
		out[i] = PercentGroup{Group: g}
		if total > 0 {
			out[i].Percentage = Round(float64(g.Count)/float64(total)*100, 2)
		}
	}
	return out
}

// Round rounds v to the given number of decimal places, halves away from zero.
func Round(v float64, places int) float64 {
	p := math.Pow10(places)
	return math.Round(v*p) / p
}

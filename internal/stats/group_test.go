// Custstats - Customer Statistics Aggregation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/custstats

package stats

import (
	"math"
	"reflect"
	"testing"

	"github.com/tomtom215/custstats/internal/models"
)

func TestGroupCountSumsToPopulation(t *testing.T) {
	t.Parallel()

	fields := map[string]FieldFunc{
		"gender":   FieldGender,
		"device":   FieldDevice,
		"interest": FieldDigitalInterest,
		"hour":     FieldLoginHour,
	}

	for _, s := range Strategies() {
		for name, field := range fields {
			population := Deduplicate(visits(), s)
			total := 0
			for _, g := range GroupCount(population, field, GroupOptions{}) {
				total += g.Count
			}
			if total != len(population) {
				t.Errorf("%s/%s: sum of counts = %d, want %d", s.Name, name, total, len(population))
			}
		}
	}
}

func TestGroupCountFilterEmpty(t *testing.T) {
	t.Parallel()

	groups := GroupCount(visits(), FieldDigitalInterest, GroupOptions{FilterEmpty: true})
	for _, g := range groups {
		if g.Label == "" {
			t.Fatalf("empty label present: %+v", groups)
		}
	}

	unfiltered := GroupCount(visits(), FieldDigitalInterest, GroupOptions{})
	found := false
	for _, g := range unfiltered {
		if g.Label == "" {
			found = true
			if g.Count != 3 {
				t.Errorf("empty interest count = %d, want 3", g.Count)
			}
		}
	}
	if !found {
		t.Error("empty label missing without FilterEmpty")
	}
}

func TestGroupCountSorting(t *testing.T) {
	t.Parallel()

	records := []models.Customer{
		{Device: "Samsung"}, {Device: "Apple"}, {Device: "Huawei"},
		{Device: "Apple"}, {Device: "Huawei"}, {Device: "Nokia"},
	}

	tests := []struct {
		name string
		sort SortMode
		want []Group
	}{
		{"none keeps first seen", SortNone, []Group{{"Samsung", 1}, {"Apple", 2}, {"Huawei", 2}, {"Nokia", 1}}},
		{"count desc is stable", SortCountDesc, []Group{{"Apple", 2}, {"Huawei", 2}, {"Samsung", 1}, {"Nokia", 1}}},
		{"key asc", SortKeyAsc, []Group{{"Apple", 2}, {"Huawei", 2}, {"Nokia", 1}, {"Samsung", 1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := GroupCount(records, FieldDevice, GroupOptions{Sort: tt.sort})
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("GroupCount() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGroupCountDistinct(t *testing.T) {
	t.Parallel()

	got := GroupCountDistinct(visits(), FieldLocationType, FieldLocationName, GroupOptions{FilterEmpty: true, Sort: SortCountDesc})
	want := []DistinctGroup{
		{Group: Group{"urban", 3}, Distinct: 2},
		{Group: Group{"rural", 2}, Distinct: 2},
		{Group: Group{"suburban", 1}, Distinct: 1},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("GroupCountDistinct() = %+v, want %+v", got, want)
	}
}

func TestWithPercentages(t *testing.T) {
	t.Parallel()

	groups := []Group{{"a", 1}, {"b", 1}, {"c", 1}}
	got := WithPercentages(groups)

	sum := 0.0
	for _, g := range got {
		if g.Percentage != 33.33 {
			t.Errorf("%s percentage = %v, want 33.33", g.Label, g.Percentage)
		}
		sum += g.Percentage
	}
	if math.Abs(sum-100) > 0.01*float64(len(got)) {
		t.Errorf("percentages sum to %v, want 100 within tolerance", sum)
	}

	if out := WithPercentages(nil); len(out) != 0 {
		t.Errorf("WithPercentages(nil) = %v, want empty", out)
	}
}

func TestPercentagesSumAcrossStrategies(t *testing.T) {
	t.Parallel()

	for _, s := range Strategies() {
		groups := WithPercentages(GroupCount(Deduplicate(visits(), s), FieldDigitalInterest, GroupOptions{FilterEmpty: true}))
		sum := 0.0
		for _, g := range groups {
			sum += g.Percentage
		}
		if math.Abs(sum-100) > 0.01*float64(len(groups)) {
			t.Errorf("%s: percentages sum to %v", s.Name, sum)
		}
	}
}

func TestRound(t *testing.T) {
	t.Parallel()

	tests := []struct {
		v      float64
		places int
		want   float64
	}{
		{36.5, 0, 37},
		{-36.5, 0, -37},
		{33.3333, 2, 33.33},
		{1987.5, 0, 1988},
		{0, 2, 0},
	}

	for _, tt := range tests {
		if got := Round(tt.v, tt.places); got != tt.want {
			t.Errorf("Round(%v, %d) = %v, want %v", tt.v, tt.places, got, tt.want)
		}
	}
}

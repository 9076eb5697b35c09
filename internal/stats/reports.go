// Custstats - Customer Statistics Aggregation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/custstats

package stats

import (
	"context"

	"github.com/tomtom215/custstats/internal/models"
)

// GenderStats counts the population per gender. Rows without a gender are
// counted under "".
func (e *Engine) GenderStats(ctx context.Context, s Strategy) (models.GenderStats, error) {
	var result models.GenderStats
	err := e.run(ctx, ReportGender, s, func() (int, error) {
		records, scanned, err := e.population(ctx, s)
		if err != nil {
			return scanned, err
		}
		result = genderMap(records)
		return scanned, nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func genderMap(records []models.Customer) map[string]int {
	groups := GroupCount(records, FieldGender, GroupOptions{})
	out := make(map[string]int, len(groups))
	for _, g := range groups {
		out[g.Label] = g.Count
	}
	return out
}

type ageBucket struct {
	age       NumericSummary
	birthYear NumericSummary
}

// AgeGroupStats buckets rows that carry a birth year. Only non-empty buckets
// are returned, youngest first.
func (e *Engine) AgeGroupStats(ctx context.Context, s Strategy) ([]models.AgeGroupStat, error) {
	var result []models.AgeGroupStat
	err := e.run(ctx, ReportAgeGroups, s, func() (int, error) {
		records, scanned, err := e.population(ctx, s)
		if err != nil {
			return scanned, err
		}

		year := e.currentYear()
		buckets := make(map[string]*ageBucket, len(AgeGroupOrder))
		for i := range records {
			age, ok := Age(&records[i], year)
			if !ok {
				continue
			}
			label := AgeGroup(age)
			b := buckets[label]
			if b == nil {
				b = &ageBucket{}
				buckets[label] = b
			}
			b.age.Add(age)
			b.birthYear.Add(*records[i].BirthYear)
		}

		result = make([]models.AgeGroupStat, 0, len(buckets))
		for _, label := range AgeGroupOrder {
			b, ok := buckets[label]
			if !ok {
				continue
			}
			result = append(result, models.AgeGroupStat{
				AgeGroup:     label,
				Count:        b.age.Count,
				AvgAge:       Round(b.age.Average(), 1),
				AvgBirthYear: Round(b.birthYear.Average(), 0),
			})
		}
		return scanned, nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// DigitalInterestStats counts non-empty interests, most popular first, with
// each interest's share of the counted rows.
func (e *Engine) DigitalInterestStats(ctx context.Context, s Strategy) ([]models.InterestStat, error) {
	var result []models.InterestStat
	err := e.run(ctx, ReportDigitalInterests, s, func() (int, error) {
		records, scanned, err := e.population(ctx, s)
		if err != nil {
			return scanned, err
		}
		groups := WithPercentages(GroupCount(records, FieldDigitalInterest, GroupOptions{FilterEmpty: true, Sort: SortCountDesc}))
		result = make([]models.InterestStat, len(groups))
		for i, g := range groups {
			result[i] = models.InterestStat{Interest: g.Label, Count: g.Count, Percentage: g.Percentage}
		}
		return scanned, nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (e *Engine) DeviceStats(ctx context.Context, s Strategy) ([]models.DeviceStat, error) {
	var result []models.DeviceStat
	err := e.run(ctx, ReportDevices, s, func() (int, error) {
		records, scanned, err := e.population(ctx, s)
		if err != nil {
			return scanned, err
		}
		result = deviceCounts(records)
		return scanned, nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func deviceCounts(records []models.Customer) []models.DeviceStat {
	groups := GroupCount(records, FieldDevice, GroupOptions{FilterEmpty: true, Sort: SortCountDesc})
	out := make([]models.DeviceStat, len(groups))
	for i, g := range groups {
		out[i] = models.DeviceStat{Device: g.Label, Count: g.Count}
	}
	return out
}

// LocationStats counts rows per location type, most common first, with the
// number of distinct location names per type.
func (e *Engine) LocationStats(ctx context.Context, s Strategy) ([]models.LocationStat, error) {
	var result []models.LocationStat
	err := e.run(ctx, ReportLocations, s, func() (int, error) {
		records, scanned, err := e.population(ctx, s)
		if err != nil {
			return scanned, err
		}
		groups := GroupCountDistinct(records, FieldLocationType, FieldLocationName, GroupOptions{FilterEmpty: true, Sort: SortCountDesc})
		result = make([]models.LocationStat, len(groups))
		for i, g := range groups {
			result[i] = models.LocationStat{LocationType: g.Label, Count: g.Count, UniqueLocations: g.Distinct}
		}
		return scanned, nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// LoginHourStats counts rows per login hour label in ascending label order.
func (e *Engine) LoginHourStats(ctx context.Context, s Strategy) ([]models.LoginHourStat, error) {
	var result []models.LoginHourStat
	err := e.run(ctx, ReportLoginHours, s, func() (int, error) {
		records, scanned, err := e.population(ctx, s)
		if err != nil {
			return scanned, err
		}
		groups := GroupCount(records, FieldLoginHour, GroupOptions{FilterEmpty: true, Sort: SortKeyAsc})
		result = make([]models.LoginHourStat, len(groups))
		for i, g := range groups {
			result[i] = models.LoginHourStat{Hour: g.Label, Count: g.Count}
		}
		return scanned, nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// CorrelationStats relates age and gender over rows carrying both. The
// scatter payload holds the first analyzed rows up to the scatter limit.
func (e *Engine) CorrelationStats(ctx context.Context, s Strategy) (*models.CorrelationStats, error) {
	var result *models.CorrelationStats
	err := e.run(ctx, ReportCorrelation, s, func() (int, error) {
		records, scanned, err := e.population(ctx, s)
		if err != nil {
			return scanned, err
		}

		year := e.currentYear()
		var overall NumericSummary
		byGender := make(map[string]*NumericSummary)
		scatter := make([]models.ScatterPoint, 0, min(len(records), e.scatterLimit))

		for i := range records {
			c := &records[i]
			age, ok := Age(c, year)
			if !ok || c.Gender == "" {
				continue
			}
			overall.Add(age)
			g := byGender[c.Gender]
			if g == nil {
				g = &NumericSummary{}
				byGender[c.Gender] = g
			}
			g.Add(age)
			if len(scatter) < e.scatterLimit {
				scatter = append(scatter, models.ScatterPoint{
					Age:             age,
					Gender:          c.Gender,
					Device:          c.Device,
					DigitalInterest: c.DigitalInterest,
					LocationType:    c.LocationType,
				})
			}
		}

		ageByGender := make(map[string]float64, len(byGender))
		distribution := make(map[string]int, len(byGender))
		for gender, sum := range byGender {
			ageByGender[gender] = Round(sum.Average(), 1)
			distribution[gender] = sum.Count
		}

		result = &models.CorrelationStats{
			TotalAnalyzed: overall.Count,
			AgeByGender:   ageByGender,
			ScatterData:   scatter,
			Summary: models.CorrelationSummary{
				AvgAge:             Round(overall.Average(), 1),
				GenderDistribution: distribution,
			},
		}
		return scanned, nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// SummaryStats builds the combined report in one pass over the source.
// CustomerCounts always reports every strategy; the remaining figures use
// the population selected by s.
func (e *Engine) SummaryStats(ctx context.Context, s Strategy) (*models.SummaryStats, error) {
	var result *models.SummaryStats
	err := e.run(ctx, ReportSummary, s, func() (int, error) {
		byID := NewDeduper(StrategyCustomerID)
		byEmail := NewDeduper(StrategyEmail)
		byName := NewDeduper(StrategyFullName)
		byNameEmail := NewDeduper(StrategyNameEmail)
		chosen := NewDeduper(s)

		var counts models.CustomerCounts
		records := make([]models.Customer, 0)

		err := e.source.Scan(ctx, func(c *models.Customer) error {
			counts.TotalRecords++
			if byID.Keep(c) {
				counts.ByCustomerID++
			}
			if byEmail.Keep(c) {
				counts.ByEmail++
			}
			if byName.Keep(c) {
				counts.ByName++
			}
			if byNameEmail.Keep(c) {
				counts.ByNameEmail++
			}
			if chosen.Keep(c) {
				records = append(records, *c)
			}
			return nil
		})
		if err != nil {
			return counts.TotalRecords, err
		}

		year := e.currentYear()
		var ages, birthYears NumericSummary
		for i := range records {
			if age, ok := Age(&records[i], year); ok {
				ages.Add(age)
				birthYears.Add(*records[i].BirthYear)
			}
		}

		interests := GroupCount(records, FieldDigitalInterest, GroupOptions{FilterEmpty: true, Sort: SortCountDesc})
		interestCounts := make([]models.InterestCount, len(interests))
		for i, g := range interests {
			interestCounts[i] = models.InterestCount{Interest: g.Label, Count: g.Count}
		}

		locations := GroupCount(records, FieldLocationType, GroupOptions{FilterEmpty: true, Sort: SortCountDesc})
		locationCounts := make([]models.LocationTypeCount, len(locations))
		for i, g := range locations {
			locationCounts[i] = models.LocationTypeCount{LocationType: g.Label, Count: g.Count}
		}

		result = &models.SummaryStats{
			Strategy:       s.Name,
			CustomerCounts: counts,
			TotalCustomers: len(records),
			Demographics: models.Demographics{
				Age:       ages.Stat(1),
				BirthYear: birthYears.Stat(0),
				Gender:    genderMap(records),
			},
			DigitalInterests: interestCounts,
			Devices:          deviceCounts(records),
			LocationTypes:    locationCounts,
		}
		return counts.TotalRecords, nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

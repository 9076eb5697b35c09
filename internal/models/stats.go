// Custstats - Customer Statistics Aggregation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/custstats

package models

// GenderStats maps a gender label to its count. Rows without a gender are
// counted under the "" label.
type GenderStats map[string]int

// AgeGroupStat is one fixed age bucket. AvgAge is rounded to one decimal and
// AvgBirthYear to a whole year.
type AgeGroupStat struct {
	AgeGroup     string  `json:"ageGroup"`
	Count        int     `json:"count"`
	AvgAge       float64 `json:"avgAge"`
	AvgBirthYear float64 `json:"avgBirthYear"`
}

// InterestStat is a digital interest with its share of all non-empty interests.
type InterestStat struct {
	Interest   string  `json:"interest"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// InterestCount is the summary variant of InterestStat without the share.
type InterestCount struct {
	Interest string `json:"interest"`
	Count    int    `json:"count"`
}

// DeviceStat counts rows per device brand.
type DeviceStat struct {
	Device string `json:"device"`
	Count  int    `json:"count"`
}

// LocationStat counts rows per location type and the distinct location
// names seen for that type.
type LocationStat struct {
	LocationType    string `json:"locationType"`
	Count           int    `json:"count"`
	UniqueLocations int    `json:"uniqueLocations"`
}

// LocationTypeCount is the summary variant of LocationStat.
type LocationTypeCount struct {
	LocationType string `json:"locationType"`
	Count        int    `json:"count"`
}

// LoginHourStat counts rows per login hour label.
type LoginHourStat struct {
	Hour  string `json:"hour"`
	Count int    `json:"count"`
}

// ScatterPoint is one row of the correlation scatter payload.
type ScatterPoint struct {
	Age             int    `json:"age"`
	Gender          string `json:"gender"`
	Device          string `json:"device"`
	DigitalInterest string `json:"digitalInterest"`
	LocationType    string `json:"locationType"`
}

// CorrelationSummary aggregates the analyzed correlation rows.
type CorrelationSummary struct {
	AvgAge             float64        `json:"avgAge"`
	GenderDistribution map[string]int `json:"genderDistribution"`
}

// CorrelationStats relates age to gender over rows that carry both values.
// ScatterData is capped to bound the response size.
type CorrelationStats struct {
	TotalAnalyzed int                `json:"totalAnalyzed"`
	AgeByGender   map[string]float64 `json:"ageByGender"`
	ScatterData   []ScatterPoint     `json:"scatterData"`
	Summary       CorrelationSummary `json:"summary"`
}

// CustomerCounts reports the population size under every deduplication
// strategy side by side so consumers can audit the differences.
type CustomerCounts struct {
	TotalRecords int `json:"totalRecords"`
	ByCustomerID int `json:"byCustomerId"`
	ByEmail      int `json:"byEmail"`
	ByName       int `json:"byName"`
	ByNameEmail  int `json:"byNameEmail"`
}

// NumericStat is an average with nullable bounds. Min and Max are nil when
// no value contributed; Average is then 0 and callers should check the
// population size before displaying it.
type NumericStat struct {
	Average float64 `json:"average"`
	Min     *int    `json:"min"`
	Max     *int    `json:"max"`
}

// Demographics groups the summary's age, birth year and gender figures.
type Demographics struct {
	Age       NumericStat    `json:"age"`
	BirthYear NumericStat    `json:"birthYear"`
	Gender    map[string]int `json:"gender"`
}

// SummaryStats is the combined report. Every breakdown is computed over the
// population selected by Strategy, and TotalCustomers is that population's
// size.
type SummaryStats struct {
	Strategy         string              `json:"strategy"`
	CustomerCounts   CustomerCounts      `json:"customerCounts"`
	TotalCustomers   int                 `json:"totalCustomers"`
	Demographics     Demographics        `json:"demographics"`
	DigitalInterests []InterestCount     `json:"digitalInterests"`
	Devices          []DeviceStat        `json:"devices"`
	LocationTypes    []LocationTypeCount `json:"locationTypes"`
}

// Custstats - Customer Statistics Aggregation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/custstats

package stats

import (
	"context"
	"errors"
	"math"
	"reflect"
	"sync"
	"testing"

	"github.com/tomtom215/custstats/internal/models"
)

var errStoreDown = errors.New("store down")

// failingSource fails Scan after emitting a few rows.
type failingSource struct {
	SliceSource
	failAfter int
}

func (f failingSource) Scan(ctx context.Context, fn func(*models.Customer) error) error {
	for i := range f.SliceSource {
		if i == f.failAfter {
			return errStoreDown
		}
		if err := fn(&f.SliceSource[i]); err != nil {
			return err
		}
	}
	return nil
}

func (f failingSource) Count(context.Context) (int64, error) {
	return 0, errStoreDown
}

func newTestEngine(records []models.Customer, opts ...Option) *Engine {
	opts = append([]Option{WithClock(fixedClock(2024))}, opts...)
	return NewEngine(SliceSource(records), opts...)
}

func TestGenderStatsByEmail(t *testing.T) {
	t.Parallel()

	records := []models.Customer{
		{RecordID: 1, Email: "a@x.com", Gender: "F"},
		{RecordID: 2, Email: "a@x.com", Gender: "F"},
		{RecordID: 3, Email: "b@x.com", Gender: "M"},
	}
	engine := newTestEngine(records)

	if got := CountDistinct(records, StrategyEmail); got != 2 {
		t.Fatalf("CountDistinct(email) = %d, want 2", got)
	}

	got, err := engine.GenderStats(context.Background(), StrategyEmail)
	if err != nil {
		t.Fatalf("GenderStats() error = %v", err)
	}
	want := models.GenderStats{"F": 1, "M": 1}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("GenderStats() = %v, want %v", got, want)
	}
}

func TestGenderStatsCountsMissingGender(t *testing.T) {
	t.Parallel()

	got, err := newTestEngine(visits()).GenderStats(context.Background(), StrategyEmail)
	if err != nil {
		t.Fatalf("GenderStats() error = %v", err)
	}
	want := models.GenderStats{"F": 2, "M": 1, "": 1}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("GenderStats() = %v, want %v", got, want)
	}
}

func TestSummaryExcludesMissingBirthYear(t *testing.T) {
	t.Parallel()

	records := []models.Customer{
		{RecordID: 1, CustomerID: 1, Email: "a@x.com", BirthYear: birth(1990)},
		{RecordID: 2, CustomerID: 2, Email: "b@x.com"},
		{RecordID: 3, CustomerID: 3, Email: "c@x.com", BirthYear: birth(1985)},
	}

	got, err := newTestEngine(records).SummaryStats(context.Background(), StrategyNone)
	if err != nil {
		t.Fatalf("SummaryStats() error = %v", err)
	}

	age := got.Demographics.Age
	if age.Average != 36.5 {
		t.Errorf("age average = %v, want 36.5", age.Average)
	}
	if age.Min == nil || *age.Min != 34 {
		t.Errorf("age min = %v, want 34", age.Min)
	}
	if age.Max == nil || *age.Max != 39 {
		t.Errorf("age max = %v, want 39", age.Max)
	}
	if got.TotalCustomers != 3 {
		t.Errorf("TotalCustomers = %d, want 3", got.TotalCustomers)
	}
}

func TestAgeGroupStats(t *testing.T) {
	t.Parallel()

	got, err := newTestEngine(visits()).AgeGroupStats(context.Background(), StrategyNone)
	if err != nil {
		t.Fatalf("AgeGroupStats() error = %v", err)
	}
	want := []models.AgeGroupStat{
		{AgeGroup: "25-34", Count: 2, AvgAge: 34, AvgBirthYear: 1990},
		{AgeGroup: "45-54", Count: 2, AvgAge: 49, AvgBirthYear: 1975},
		{AgeGroup: "55-64", Count: 1, AvgAge: 64, AvgBirthYear: 1960},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("AgeGroupStats() = %+v, want %+v", got, want)
	}
}

func TestAgeGroupStatsRounding(t *testing.T) {
	t.Parallel()

	records := []models.Customer{
		{RecordID: 1, BirthYear: birth(1990)},
		{RecordID: 2, BirthYear: birth(1991)},
		{RecordID: 3, BirthYear: birth(1991)},
	}
	got, err := newTestEngine(records).AgeGroupStats(context.Background(), StrategyNone)
	if err != nil {
		t.Fatalf("AgeGroupStats() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	// ages 34, 33, 33
	if got[0].AvgAge != 33.3 {
		t.Errorf("AvgAge = %v, want 33.3", got[0].AvgAge)
	}
	if got[0].AvgBirthYear != 1991 {
		t.Errorf("AvgBirthYear = %v, want 1991", got[0].AvgBirthYear)
	}
}

func TestDigitalInterestStats(t *testing.T) {
	t.Parallel()

	got, err := newTestEngine(visits()).DigitalInterestStats(context.Background(), StrategyCustomerID)
	if err != nil {
		t.Fatalf("DigitalInterestStats() error = %v", err)
	}
	want := []models.InterestStat{
		{Interest: "Books", Count: 2, Percentage: 66.67},
		{Interest: "Music", Count: 1, Percentage: 33.33},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("DigitalInterestStats() = %+v, want %+v", got, want)
	}
}

func TestDeviceStats(t *testing.T) {
	t.Parallel()

	got, err := newTestEngine(visits()).DeviceStats(context.Background(), StrategyNone)
	if err != nil {
		t.Fatalf("DeviceStats() error = %v", err)
	}
	want := []models.DeviceStat{
		{Device: "Apple", Count: 4},
		{Device: "Samsung", Count: 1},
		{Device: "Huawei", Count: 1},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("DeviceStats() = %+v, want %+v", got, want)
	}
}

func TestLocationStats(t *testing.T) {
	t.Parallel()

	got, err := newTestEngine(visits()).LocationStats(context.Background(), StrategyNone)
	if err != nil {
		t.Fatalf("LocationStats() error = %v", err)
	}
	want := []models.LocationStat{
		{LocationType: "urban", Count: 3, UniqueLocations: 2},
		{LocationType: "rural", Count: 2, UniqueLocations: 2},
		{LocationType: "suburban", Count: 1, UniqueLocations: 1},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("LocationStats() = %+v, want %+v", got, want)
	}
}

func TestLoginHourStats(t *testing.T) {
	t.Parallel()

	got, err := newTestEngine(visits()).LoginHourStats(context.Background(), StrategyNone)
	if err != nil {
		t.Fatalf("LoginHourStats() error = %v", err)
	}
	want := []models.LoginHourStat{
		{Hour: "09:00", Count: 3},
		{Hour: "10:00", Count: 1},
		{Hour: "11:00", Count: 1},
		{Hour: "23:00", Count: 1},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("LoginHourStats() = %+v, want %+v", got, want)
	}
}

func TestCorrelationStats(t *testing.T) {
	t.Parallel()

	got, err := newTestEngine(visits(), WithScatterLimit(2)).CorrelationStats(context.Background(), StrategyNone)
	if err != nil {
		t.Fatalf("CorrelationStats() error = %v", err)
	}

	if got.TotalAnalyzed != 5 {
		t.Errorf("TotalAnalyzed = %d, want 5", got.TotalAnalyzed)
	}
	wantAges := map[string]float64{"F": 44, "M": 49}
	if !reflect.DeepEqual(got.AgeByGender, wantAges) {
		t.Errorf("AgeByGender = %v, want %v", got.AgeByGender, wantAges)
	}
	if got.Summary.AvgAge != 46 {
		t.Errorf("Summary.AvgAge = %v, want 46", got.Summary.AvgAge)
	}
	wantDist := map[string]int{"F": 3, "M": 2}
	if !reflect.DeepEqual(got.Summary.GenderDistribution, wantDist) {
		t.Errorf("GenderDistribution = %v, want %v", got.Summary.GenderDistribution, wantDist)
	}
	if len(got.ScatterData) != 2 {
		t.Fatalf("len(ScatterData) = %d, want 2", len(got.ScatterData))
	}
	first := models.ScatterPoint{Age: 34, Gender: "F", Device: "Apple", DigitalInterest: "Books", LocationType: "urban"}
	if got.ScatterData[0] != first {
		t.Errorf("ScatterData[0] = %+v, want %+v", got.ScatterData[0], first)
	}
}

func TestCorrelationStatsDefaultScatterCap(t *testing.T) {
	t.Parallel()

	rows := numbered(1500)
	for i := range rows {
		rows[i].BirthYear = birth(1950 + i%50)
		rows[i].Gender = []string{"F", "M"}[i%2]
	}

	got, err := newTestEngine(rows).CorrelationStats(context.Background(), StrategyNone)
	if err != nil {
		t.Fatalf("CorrelationStats() error = %v", err)
	}
	if got.TotalAnalyzed != 1500 {
		t.Errorf("TotalAnalyzed = %d, want 1500", got.TotalAnalyzed)
	}
	if len(got.ScatterData) != 1000 {
		t.Fatalf("len(ScatterData) = %d, want 1000", len(got.ScatterData))
	}
	if last := got.ScatterData[999]; last.Age != 2024-(1950+999%50) {
		t.Errorf("ScatterData[999].Age = %d, want %d (rows kept in store order)", last.Age, 2024-(1950+999%50))
	}
	if n := got.Summary.GenderDistribution["F"] + got.Summary.GenderDistribution["M"]; n != 1500 {
		t.Errorf("gender distribution total = %d, want 1500", n)
	}
}

func TestCorrelationStatsEmpty(t *testing.T) {
	t.Parallel()

	got, err := newTestEngine(nil).CorrelationStats(context.Background(), StrategyEmail)
	if err != nil {
		t.Fatalf("CorrelationStats() error = %v", err)
	}
	if got.TotalAnalyzed != 0 || got.Summary.AvgAge != 0 {
		t.Errorf("got %+v, want zero totals", got)
	}
	if got.ScatterData == nil || got.AgeByGender == nil || got.Summary.GenderDistribution == nil {
		t.Error("empty report should use empty collections, not nil")
	}
}

func TestSummaryStats(t *testing.T) {
	t.Parallel()

	got, err := newTestEngine(visits()).SummaryStats(context.Background(), StrategyEmail)
	if err != nil {
		t.Fatalf("SummaryStats() error = %v", err)
	}

	wantCounts := models.CustomerCounts{TotalRecords: 7, ByCustomerID: 5, ByEmail: 4, ByName: 5, ByNameEmail: 5}
	if got.CustomerCounts != wantCounts {
		t.Errorf("CustomerCounts = %+v, want %+v", got.CustomerCounts, wantCounts)
	}
	if got.Strategy != "email" {
		t.Errorf("Strategy = %q, want email", got.Strategy)
	}
	if got.TotalCustomers != 4 {
		t.Errorf("TotalCustomers = %d, want 4", got.TotalCustomers)
	}

	age := got.Demographics.Age
	if age.Average != 49 || *age.Min != 34 || *age.Max != 64 {
		t.Errorf("Age = {%v %d %d}, want {49 34 64}", age.Average, *age.Min, *age.Max)
	}
	by := got.Demographics.BirthYear
	if by.Average != 1975 || *by.Min != 1960 || *by.Max != 1990 {
		t.Errorf("BirthYear = {%v %d %d}, want {1975 1960 1990}", by.Average, *by.Min, *by.Max)
	}
	wantGender := map[string]int{"F": 2, "M": 1, "": 1}
	if !reflect.DeepEqual(got.Demographics.Gender, wantGender) {
		t.Errorf("Gender = %v, want %v", got.Demographics.Gender, wantGender)
	}
	wantInterests := []models.InterestCount{{Interest: "Books", Count: 2}, {Interest: "Music", Count: 1}}
	if !reflect.DeepEqual(got.DigitalInterests, wantInterests) {
		t.Errorf("DigitalInterests = %+v, want %+v", got.DigitalInterests, wantInterests)
	}
	wantDevices := []models.DeviceStat{{Device: "Apple", Count: 2}, {Device: "Huawei", Count: 1}}
	if !reflect.DeepEqual(got.Devices, wantDevices) {
		t.Errorf("Devices = %+v, want %+v", got.Devices, wantDevices)
	}
	wantLocations := []models.LocationTypeCount{{LocationType: "urban", Count: 2}, {LocationType: "rural", Count: 1}}
	if !reflect.DeepEqual(got.LocationTypes, wantLocations) {
		t.Errorf("LocationTypes = %+v, want %+v", got.LocationTypes, wantLocations)
	}
}

func TestSummaryCountsMatchDirectCounts(t *testing.T) {
	t.Parallel()

	records := visits()
	records = append(records, numbered(5)...)
	records = append(records, records[0], records[2])

	for _, s := range Strategies() {
		t.Run(s.Name, func(t *testing.T) {
			t.Parallel()
			got, err := newTestEngine(records).SummaryStats(context.Background(), s)
			if err != nil {
				t.Fatalf("SummaryStats() error = %v", err)
			}

			c := got.CustomerCounts
			direct := map[string][2]int{
				"customerId": {c.ByCustomerID, CountDistinct(records, StrategyCustomerID)},
				"email":      {c.ByEmail, CountDistinct(records, StrategyEmail)},
				"fullName":   {c.ByName, CountDistinct(records, StrategyFullName)},
				"nameEmail":  {c.ByNameEmail, CountDistinct(records, StrategyNameEmail)},
			}
			for name, pair := range direct {
				if pair[0] != pair[1] {
					t.Errorf("%s count = %d, want %d", name, pair[0], pair[1])
				}
				if c.TotalRecords < pair[0] {
					t.Errorf("TotalRecords %d < %s count %d", c.TotalRecords, name, pair[0])
				}
			}
			if c.TotalRecords != len(records) {
				t.Errorf("TotalRecords = %d, want %d", c.TotalRecords, len(records))
			}
			if got.TotalCustomers != CountDistinct(records, s) {
				t.Errorf("TotalCustomers = %d, want %d", got.TotalCustomers, CountDistinct(records, s))
			}
		})
	}
}

func TestSummaryStatsEmptyStore(t *testing.T) {
	t.Parallel()

	got, err := newTestEngine(nil).SummaryStats(context.Background(), StrategyEmail)
	if err != nil {
		t.Fatalf("SummaryStats() error = %v", err)
	}
	if got.TotalCustomers != 0 || got.CustomerCounts.TotalRecords != 0 {
		t.Errorf("got %+v, want zero counts", got)
	}
	if got.Demographics.Age.Min != nil || got.Demographics.Age.Average != 0 {
		t.Errorf("Age = %+v, want zero average and nil bounds", got.Demographics.Age)
	}
	if got.DigitalInterests == nil || got.Devices == nil || got.LocationTypes == nil {
		t.Error("empty report should use empty slices, not nil")
	}
}

func TestListCustomersPagination(t *testing.T) {
	t.Parallel()

	engine := newTestEngine(numbered(25))

	got, err := engine.ListCustomers(context.Background(), 2, 10)
	if err != nil {
		t.Fatalf("ListCustomers() error = %v", err)
	}
	if got.TotalPages != 3 || got.TotalItems != 25 {
		t.Errorf("TotalPages, TotalItems = %d, %d, want 3, 25", got.TotalPages, got.TotalItems)
	}
	if len(got.Data) != 10 {
		t.Fatalf("len(Data) = %d, want 10", len(got.Data))
	}
	for i, c := range got.Data {
		if want := int64(11 + i); c.RecordID != want {
			t.Errorf("Data[%d].RecordID = %d, want %d", i, c.RecordID, want)
		}
	}
}

func TestListCustomersClamping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		opts      []Option
		page      int
		limit     int
		wantPage  int
		wantLimit int
		wantLen   int
	}{
		{"page below one", nil, 0, 10, 1, 10, 10},
		{"default limit", nil, 1, 0, 1, 20, 20},
		{"negative limit", nil, 1, -5, 1, 20, 20},
		{"limit capped", []Option{WithPageSizes(20, 30)}, 1, 500, 1, 30, 30},
		{"page past end", nil, 9, 10, 9, 10, 0},
		{"last partial page", nil, 5, 10, 5, 10, 5},
		{"page offset would overflow", nil, math.MaxInt, 20, math.MaxInt, 20, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := newTestEngine(numbered(45), tt.opts...).ListCustomers(context.Background(), tt.page, tt.limit)
			if err != nil {
				t.Fatalf("ListCustomers() error = %v", err)
			}
			if got.Page != tt.wantPage || got.Limit != tt.wantLimit {
				t.Errorf("Page, Limit = %d, %d, want %d, %d", got.Page, got.Limit, tt.wantPage, tt.wantLimit)
			}
			if len(got.Data) != tt.wantLen {
				t.Errorf("len(Data) = %d, want %d", len(got.Data), tt.wantLen)
			}
			if want := int64((45 + tt.wantLimit - 1) / tt.wantLimit); got.TotalPages != want {
				t.Errorf("TotalPages = %d, want %d", got.TotalPages, want)
			}
			if got.Data == nil {
				t.Error("Data is nil, want empty slice")
			}
		})
	}
}

func TestReportErrors(t *testing.T) {
	t.Parallel()

	engine := NewEngine(failingSource{SliceSource: SliceSource(visits()), failAfter: 3})
	ctx := context.Background()

	calls := map[string]func() (any, error){
		ReportList:             func() (any, error) { return engine.ListCustomers(ctx, 1, 10) },
		ReportGender:           func() (any, error) { return engine.GenderStats(ctx, StrategyEmail) },
		ReportAgeGroups:        func() (any, error) { return engine.AgeGroupStats(ctx, StrategyNone) },
		ReportDigitalInterests: func() (any, error) { return engine.DigitalInterestStats(ctx, StrategyNone) },
		ReportDevices:          func() (any, error) { return engine.DeviceStats(ctx, StrategyNone) },
		ReportLocations:        func() (any, error) { return engine.LocationStats(ctx, StrategyNone) },
		ReportLoginHours:       func() (any, error) { return engine.LoginHourStats(ctx, StrategyNone) },
		ReportCorrelation:      func() (any, error) { return engine.CorrelationStats(ctx, StrategyNone) },
		ReportSummary:          func() (any, error) { return engine.SummaryStats(ctx, StrategyEmail) },
	}

	for report, call := range calls {
		t.Run(report, func(t *testing.T) {
			t.Parallel()
			result, err := call()
			if !errors.Is(err, ErrReportFailed) {
				t.Fatalf("error = %v, want ErrReportFailed", err)
			}
			if !errors.Is(err, errStoreDown) {
				t.Errorf("error = %v, want cause errStoreDown", err)
			}
			var reportErr *ReportError
			if !errors.As(err, &reportErr) || reportErr.Report != report {
				t.Errorf("ReportError.Report = %v, want %q", reportErr, report)
			}
			if !reflect.ValueOf(result).IsNil() {
				t.Errorf("result = %v, want nil on failure", result)
			}
		})
	}
}

func TestReportsHonorCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestEngine(visits()).SummaryStats(ctx, StrategyEmail)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestReportsConcurrentReads(t *testing.T) {
	t.Parallel()

	engine := newTestEngine(append(visits(), numbered(200)...))
	ctx := context.Background()

	want, err := engine.SummaryStats(ctx, StrategyNameEmail)
	if err != nil {
		t.Fatalf("SummaryStats() error = %v", err)
	}

	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := engine.SummaryStats(ctx, StrategyNameEmail)
			if err != nil {
				errs <- err
				return
			}
			if !reflect.DeepEqual(got, want) {
				errs <- errors.New("concurrent summary differs")
			}
			if _, err := engine.GenderStats(ctx, StrategyEmail); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Error(err)
	}
}

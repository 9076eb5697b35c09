// Custstats - Customer Statistics Aggregation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/custstats

package stats

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tomtom215/custstats/internal/logging"
	"github.com/tomtom215/custstats/internal/metrics"
	"github.com/tomtom215/custstats/internal/models"
)

// Report names, used for metrics labels, cache keys and error reporting.
const (
	ReportList             = "list"
	ReportGender           = "gender"
	ReportAgeGroups        = "age-groups"
	ReportDigitalInterests = "digital-interests"
	ReportDevices          = "devices"
	ReportLocations        = "locations"
	ReportLoginHours       = "login-hours"
	ReportCorrelation      = "correlation"
	ReportSummary          = "summary"
)

// ErrReportFailed is matched by every error an Engine report returns.
var ErrReportFailed = errors.New("report failed")

// ReportError carries the report name and the underlying cause.
type ReportError struct {
	Report string
	Err    error
}

func (e *ReportError) Error() string {
	return fmt.Sprintf("%s report failed: %v", e.Report, e.Err)
}

// Unwrap exposes both ErrReportFailed and the cause to errors.Is/As.
func (e *ReportError) Unwrap() []error {
	return []error{ErrReportFailed, e.Err}
}

const (
	defaultScatterLimit = 1000
	defaultPageSize     = 20
	defaultMaxPageSize  = 1000
)

// Option configures an Engine.
type Option func(*Engine)

// WithClock sets the time source used to derive ages.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// WithScatterLimit caps the correlation scatter payload.
func WithScatterLimit(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.scatterLimit = n
		}
	}
}

// WithPageSizes sets the default and maximum page size for ListCustomers.
func WithPageSizes(defaultSize, maxSize int) Option {
	return func(e *Engine) {
		if defaultSize > 0 {
			e.defaultPageSize = defaultSize
		}
		if maxSize >= e.defaultPageSize {
			e.maxPageSize = maxSize
		}
	}
}

// Engine computes reports over a RecordSource. It holds no mutable state
// and is safe for concurrent use.
type Engine struct {
	source          RecordSource
	now             func() time.Time
	scatterLimit    int
	defaultPageSize int
	maxPageSize     int
}

func NewEngine(source RecordSource, opts ...Option) *Engine {
	e := &Engine{
		source:          source,
		now:             time.Now,
		scatterLimit:    defaultScatterLimit,
		defaultPageSize: defaultPageSize,
		maxPageSize:     defaultMaxPageSize,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// currentYear is read once per report so every row sees the same year.
func (e *Engine) currentYear() int {
	return e.now().Year()
}

// run times fn, records metrics and wraps any error in a *ReportError.
func (e *Engine) run(ctx context.Context, report string, s Strategy, fn func() (int, error)) error {
	start := time.Now()
	scanned, err := fn()
	duration := time.Since(start)
	metrics.RecordReport(report, s.Name, duration, scanned, err)

	if err != nil {
		return &ReportError{Report: report, Err: err}
	}
	logging.Ctx(ctx).Debug().
		Str("report", report).
		Str("strategy", s.Name).
		Int("records", scanned).
		Dur("duration", duration).
		Msg("Report computed")
	return nil
}

// population scans the source and returns the rows kept by s in store
// order, along with the number of rows scanned.
func (e *Engine) population(ctx context.Context, s Strategy) ([]models.Customer, int, error) {
	d := NewDeduper(s)
	records := make([]models.Customer, 0)
	scanned := 0

	err := e.source.Scan(ctx, func(c *models.Customer) error {
		scanned++
		if d.Keep(c) {
			records = append(records, *c)
		}
		return nil
	})
	if err != nil {
		return nil, scanned, err
	}
	return records, scanned, nil
}

// ListCustomers returns one page of raw rows. page below 1 is treated as 1,
// limit below 1 takes the default and limit above the maximum is capped.
func (e *Engine) ListCustomers(ctx context.Context, page, limit int) (*models.CustomerPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = e.defaultPageSize
	}
	if limit > e.maxPageSize {
		limit = e.maxPageSize
	}

	var result *models.CustomerPage
	err := e.run(ctx, ReportList, StrategyNone, func() (int, error) {
		total, err := e.source.Count(ctx)
		if err != nil {
			return 0, fmt.Errorf("count customers: %w", err)
		}
		data := []models.Customer{}
		// Pages past the end are empty; this also keeps the offset from overflowing.
		if int64(page-1) < (total+int64(limit)-1)/int64(limit) {
			found, err := e.source.Find(ctx, (page-1)*limit, limit)
			if err != nil {
				return 0, fmt.Errorf("find customers: %w", err)
			}
			if found != nil {
				data = found
			}
		}
		result = &models.CustomerPage{
			Page:       page,
			Limit:      limit,
			TotalItems: total,
			TotalPages: (total + int64(limit) - 1) / int64(limit),
			Data:       data,
		}
		return len(data), nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

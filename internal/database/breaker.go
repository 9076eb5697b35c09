// Custstats - Customer Statistics Aggregation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/custstats

package database

import (
	"context"
	"errors"
	"fmt"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/custstats/internal/config"
	"github.com/tomtom215/custstats/internal/logging"
	"github.com/tomtom215/custstats/internal/metrics"
	"github.com/tomtom215/custstats/internal/models"
)

// ErrCircuitOpen is returned while the breaker rejects store calls.
var ErrCircuitOpen = errors.New("customer store unavailable: circuit open")

// CustomerStore is the read side of DB.
type CustomerStore interface {
	CountCustomers(ctx context.Context) (int64, error)
	ListCustomers(ctx context.Context, offset, limit int) ([]models.Customer, error)
	ScanCustomers(ctx context.Context, fn func(*models.Customer) error) error
}

// BreakerSource guards a CustomerStore with a circuit breaker. It never
// retries: a failed call fails once and counts toward opening the circuit.
type BreakerSource struct {
	store CustomerStore
	cb    *gobreaker.CircuitBreaker[any]
	name  string
}

// callbackError marks a failure raised by the scan consumer rather than the
// store, so it does not count against the breaker.
type callbackError struct{ err error }

func (e *callbackError) Error() string { return e.err.Error() }
func (e *callbackError) Unwrap() error { return e.err }

// NewBreakerSource wraps store using the thresholds in cfg.
func NewBreakerSource(store CustomerStore, cfg config.BreakerConfig) *BreakerSource {
	name := "customer-store"
	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)

	minRequests := cfg.MinRequests
	ratio := cfg.FailureRatio

	cb := gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < minRequests {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			if failureRatio >= ratio {
				logging.Warn().Uint32("failures", counts.TotalFailures).Float64("failure_rate", failureRatio*100).Msg("Opening customer store circuit")
				return true
			}
			return false
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr, toStr := stateToString(from), stateToString(to)
			logging.Info().Str("breaker", name).Str("from", fromStr).Str("to", toStr).Msg("Circuit breaker state transition")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()
		},
		IsSuccessful: func(err error) bool {
			var cbErr *callbackError
			return err == nil || errors.As(err, &cbErr) || errors.Is(err, context.Canceled)
		},
	})

	return &BreakerSource{store: store, cb: cb, name: name}
}

func (b *BreakerSource) execute(fn func() (any, error)) (any, error) {
	result, err := b.cb.Execute(fn)
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(b.name, "rejected").Inc()
			return nil, fmt.Errorf("%w: %w", ErrCircuitOpen, err)
		}
		metrics.CircuitBreakerRequests.WithLabelValues(b.name, "failure").Inc()
		return nil, err
	}
	metrics.CircuitBreakerRequests.WithLabelValues(b.name, "success").Inc()
	return result, nil
}

// Count returns the number of stored rows.
func (b *BreakerSource) Count(ctx context.Context) (int64, error) {
	result, err := b.execute(func() (any, error) {
		return b.store.CountCustomers(ctx)
	})
	if err != nil {
		return 0, err
	}
	n, ok := result.(int64)
	if !ok {
		return 0, fmt.Errorf("circuit breaker: unexpected result type %T", result)
	}
	return n, nil
}

// Find returns one page of rows in record_id order.
func (b *BreakerSource) Find(ctx context.Context, offset, limit int) ([]models.Customer, error) {
	result, err := b.execute(func() (any, error) {
		return b.store.ListCustomers(ctx, offset, limit)
	})
	if err != nil {
		return nil, err
	}
	rows, ok := result.([]models.Customer)
	if !ok {
		return nil, fmt.Errorf("circuit breaker: unexpected result type %T", result)
	}
	return rows, nil
}

// Scan streams every row to fn in record_id order.
func (b *BreakerSource) Scan(ctx context.Context, fn func(*models.Customer) error) error {
	_, err := b.execute(func() (any, error) {
		return nil, b.store.ScanCustomers(ctx, func(c *models.Customer) error {
			if err := fn(c); err != nil {
				return &callbackError{err: err}
			}
			return nil
		})
	})
	var cbErr *callbackError
	if errors.As(err, &cbErr) {
		return cbErr.err
	}
	return err
}

// State reports the breaker state as closed, half-open or open.
func (b *BreakerSource) State() string {
	return stateToString(b.cb.State())
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}

// Custstats - Customer Statistics Aggregation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/custstats

package stats

import (
	"context"

	"github.com/tomtom215/custstats/internal/models"
)

// RecordSource is the read side of the customer store.
type RecordSource interface {
	Count(ctx context.Context) (int64, error)
	// Find returns up to limit rows starting at offset, in store order.
	Find(ctx context.Context, offset, limit int) ([]models.Customer, error)
	// Scan calls fn for every row in store order and stops at the first
	// error, returning it.
	Scan(ctx context.Context, fn func(*models.Customer) error) error
}

// SliceSource serves rows from memory in slice order.
type SliceSource []models.Customer

func (s SliceSource) Count(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return int64(len(s)), nil
}

func (s SliceSource) Find(ctx context.Context, offset, limit int) ([]models.Customer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if offset < 0 {
		offset = 0
	}
	if offset >= len(s) || limit <= 0 {
		return []models.Customer{}, nil
	}
	end := min(offset+limit, len(s))
	out := make([]models.Customer, end-offset)
	copy(out, s[offset:end])
	return out, nil
}

func (s SliceSource) Scan(ctx context.Context, fn func(*models.Customer) error) error {
	for i := range s {
		if err := ctx.Err(); err != nil {
			return err
		}
		c := s[i]
		if err := fn(&c); err != nil {
			return err
		}
	}
	return nil
}

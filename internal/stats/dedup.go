// Custstats - Customer Statistics Aggregation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/custstats

package stats

import "github.com/tomtom215/custstats/internal/models"

// Deduper tracks keys already seen under one strategy. It is not safe for
// concurrent use.
type Deduper struct {
	key  KeyFunc
	seen map[any]struct{}
}

func NewDeduper(s Strategy) *Deduper {
	d := &Deduper{key: s.Key}
	if s.Key != nil {
		d.seen = make(map[any]struct{})
	}
	return d
}

// Keep reports whether c is the first row with its key. Empty keys are
// ordinary values, so all rows missing the key collapse into one.
func (d *Deduper) Keep(c *models.Customer) bool {
	if d.key == nil {
		return true
	}
	k := d.key(c)
	if _, dup := d.seen[k]; dup {
		return false
	}
	d.seen[k] = struct{}{}
	return true
}

// Deduplicate returns one row per key, the first in input order. With the
// none strategy it returns records unchanged.
func Deduplicate(records []models.Customer, s Strategy) []models.Customer {
	if s.IsNone() {
		return records
	}
	d := NewDeduper(s)
	out := make([]models.Customer, 0, len(records))
	for i := range records {
		if d.Keep(&records[i]) {
			out = append(out, records[i])
		}
	}
	return out
}

// CountDistinct returns len(Deduplicate(records, s)) without building the slice.
func CountDistinct(records []models.Customer, s Strategy) int {
	if s.IsNone() {
		return len(records)
	}
	d := NewDeduper(s)
	n := 0
	for i := range records {
		if d.Keep(&records[i]) {
			n++
		}
	}
	return n
}

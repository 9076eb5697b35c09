// Custstats - Customer Statistics Aggregation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/custstats

package customerimport

import (
	"time"
)

// ImportStats holds statistics about an import operation.
type ImportStats struct {
	// RunID identifies one invocation; it is carried in the completion event.
	RunID string `json:"run_id"`

	// Source is the file being imported.
	Source string `json:"source"`

	// TotalRows is the number of data rows in the source, when known.
	TotalRows int64 `json:"total_rows"`

	// Processed counts rows read in this run and any resumed run, skipped
	// rows included.
	Processed int64 `json:"processed"`

	// Imported counts rows written to the store.
	Imported int64 `json:"imported"`

	// Skipped counts rows rejected by validation or parsing.
	Skipped int64 `json:"skipped"`

	// Failed counts rows the store refused.
	Failed int64 `json:"failed"`

	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`

	// LastRow is the 1-based data row number of the last committed batch.
	LastRow int64 `json:"last_row"`

	DryRun   bool `json:"dry_run"`
	Replaced bool `json:"replaced"`
}

// Duration returns the duration of the import operation.
func (s *ImportStats) Duration() time.Duration {
	if s.EndTime.IsZero() {
		return time.Since(s.StartTime)
	}
	return s.EndTime.Sub(s.StartTime)
}

// Progress returns the import progress as a percentage (0-100).
func (s *ImportStats) Progress() float64 {
	if s.TotalRows == 0 {
		return 0
	}
	return float64(s.Processed) / float64(s.TotalRows) * 100
}

// RowsPerSecond returns the import rate.
func (s *ImportStats) RowsPerSecond() float64 {
	duration := s.Duration().Seconds()
	if duration == 0 {
		return 0
	}
	return float64(s.Processed) / duration
}

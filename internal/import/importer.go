// Custstats - Customer Statistics Aggregation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/custstats

package customerimport

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tomtom215/custstats/internal/database"
	"github.com/tomtom215/custstats/internal/events"
	"github.com/tomtom215/custstats/internal/logging"
	"github.com/tomtom215/custstats/internal/metrics"
	"github.com/tomtom215/custstats/internal/models"
	"github.com/tomtom215/custstats/internal/validation"
)

// DefaultBatchSize is used when Options.BatchSize is not positive.
const DefaultBatchSize = 200

var (
	// ErrImportRunning is returned when Import is called during another run.
	ErrImportRunning = errors.New("import already in progress")

	// ErrReplaceWithResume rejects a resumed run that would truncate the
	// rows its earlier attempt committed.
	ErrReplaceWithResume = errors.New("replace and resume cannot be combined")
)

// Store is the write side of the customer store.
type Store interface {
	InsertCustomers(ctx context.Context, batch []models.Customer) (database.InsertResult, error)
	TruncateCustomers(ctx context.Context) (int64, error)
}

// EventPublisher announces finished imports.
type EventPublisher interface {
	PublishImportCompleted(ctx context.Context, evt *events.ImportCompleted) error
}

// Options controls one import run.
type Options struct {
	BatchSize int

	// DryRun parses and validates without writing or saving progress.
	DryRun bool

	// Replace deletes all stored rows before importing.
	Replace bool

	// Resume skips rows committed by an earlier interrupted run of the
	// same source.
	Resume bool

	// TotalRows is reported in ImportStats; 0 when unknown.
	TotalRows int64

	// OnProgress is called after every batch with a snapshot of the stats.
	OnProgress func(ImportStats)
}

// Importer loads CSV rows into the store in batches.
type Importer struct {
	store     Store
	opts      Options
	progress  ProgressTracker
	publisher EventPublisher
	mapper    *Mapper

	mu      sync.RWMutex
	running bool
	stats   *ImportStats
}

// NewImporter creates an importer. progress and publisher may be nil.
func NewImporter(store Store, opts Options, progress ProgressTracker, publisher EventPublisher) *Importer {
	if opts.BatchSize <= 0 {
		opts.BatchSize = DefaultBatchSize
	}
	return &Importer{
		store:     store,
		opts:      opts,
		progress:  progress,
		publisher: publisher,
		mapper:    NewMapper(),
	}
}

// ImportFile opens path and imports it.
func (i *Importer) ImportFile(ctx context.Context, path string) (*ImportStats, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from the operator
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			logging.Warn().Err(closeErr).Str("file", path).Msg("Error closing import file")
		}
	}()

	source, absErr := filepath.Abs(path)
	if absErr != nil {
		source = path
	}
	return i.Import(ctx, source, f)
}

// Import reads every row from r. source identifies the input for resume
// and for the completion event. Row-level problems are counted, not
// returned; the error is non-nil only when the run could not finish.
func (i *Importer) Import(ctx context.Context, source string, r io.Reader) (*ImportStats, error) {
	if i.opts.Replace && i.opts.Resume {
		return nil, ErrReplaceWithResume
	}

	i.mu.Lock()
	if i.running {
		i.mu.Unlock()
		return nil, ErrImportRunning
	}
	i.running = true
	i.stats = &ImportStats{
		RunID:     uuid.New().String(),
		Source:    source,
		TotalRows: i.opts.TotalRows,
		StartTime: time.Now(),
		DryRun:    i.opts.DryRun,
	}
	i.mu.Unlock()

	defer func() {
		i.mu.Lock()
		i.running = false
		i.mu.Unlock()
	}()

	reader, err := NewReader(r)
	if err != nil {
		return i.GetStats(), err
	}

	resumeAfter, err := i.prepare(ctx, source)
	if err != nil {
		return i.GetStats(), err
	}

	logging.Info().
		Str("run_id", i.stats.RunID).
		Str("source", source).
		Int64("total_rows", i.opts.TotalRows).
		Int64("resume_after", resumeAfter).
		Bool("dry_run", i.opts.DryRun).
		Msg("Starting import")

	if err := i.processAll(ctx, reader, resumeAfter); err != nil {
		return i.GetStats(), err
	}

	i.mu.Lock()
	i.stats.EndTime = time.Now()
	stats := *i.stats
	i.mu.Unlock()

	i.finish(ctx, &stats)
	return &stats, nil
}

// prepare applies Replace and Resume and returns the row number to skip
// up to.
func (i *Importer) prepare(ctx context.Context, source string) (int64, error) {
	if i.opts.Resume && i.progress != nil {
		prev, err := i.progress.Load(ctx)
		if err != nil {
			return 0, err
		}
		if prev != nil && prev.Source == source {
			i.mu.Lock()
			i.stats.Processed = prev.Processed
			i.stats.Imported = prev.Imported
			i.stats.Skipped = prev.Skipped
			i.stats.Failed = prev.Failed
			i.stats.LastRow = prev.LastRow
			i.stats.Replaced = prev.Replaced
			i.mu.Unlock()
			logging.Info().Int64("last_row", prev.LastRow).Msg("Resuming import")
			return prev.LastRow, nil
		}
		if prev != nil {
			logging.Warn().Str("saved_source", prev.Source).Msg("Saved progress is for another file, starting over")
		}
	}

	if i.progress != nil && !i.opts.DryRun {
		if err := i.progress.Clear(ctx); err != nil {
			return 0, fmt.Errorf("clear progress: %w", err)
		}
	}

	if i.opts.Replace && !i.opts.DryRun {
		removed, err := i.store.TruncateCustomers(ctx)
		if err != nil {
			return 0, err
		}
		i.mu.Lock()
		i.stats.Replaced = true
		i.mu.Unlock()
		logging.Info().Int64("removed", removed).Msg("Cleared existing customers")
	}
	return 0, nil
}

// batchState accumulates rows between commits.
type batchState struct {
	customers []models.Customer
	processed int64
	skipped   int64
	lastRow   int64
}

func (i *Importer) processAll(ctx context.Context, reader *Reader, resumeAfter int64) error {
	batch := batchState{customers: make([]models.Customer, 0, i.opts.BatchSize)}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		rec, err := reader.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if rec.Row <= resumeAfter {
			continue
		}
		batch.processed++
		batch.lastRow = rec.Row

		if err != nil {
			var parseErr *csv.ParseError
			if !errors.As(err, &parseErr) {
				return fmt.Errorf("read row %d: %w", rec.Row, err)
			}
			batch.skipped++
			logging.Debug().Err(err).Int64("row", rec.Row).Msg("Skipping malformed row")
			continue
		}

		customer, err := i.mapper.ToCustomer(rec)
		if err != nil {
			batch.skipped++
			var verr *validation.RequestValidationError
			if errors.As(err, &verr) {
				logging.Debug().Int64("row", rec.Row).Strs("fields", verr.Fields()).Msg("Skipping invalid row")
			}
			continue
		}

		batch.customers = append(batch.customers, customer)
		if len(batch.customers) >= i.opts.BatchSize {
			if err := i.commit(ctx, &batch); err != nil {
				return err
			}
		}
	}

	if batch.processed > 0 {
		return i.commit(ctx, &batch)
	}
	return nil
}

// commit writes the pending rows, folds the batch into the run stats and
// saves progress. Store-level row failures are counted; only a canceled
// context stops the run.
func (i *Importer) commit(ctx context.Context, batch *batchState) error {
	var imported, failed int

	if i.opts.DryRun {
		imported = len(batch.customers)
	} else if len(batch.customers) > 0 {
		start := time.Now()
		res, err := i.store.InsertCustomers(ctx, batch.customers)
		if err != nil {
			return fmt.Errorf("insert batch ending at row %d: %w", batch.lastRow, err)
		}
		imported, failed = res.Inserted, res.Failed
		metrics.RecordImportBatch(time.Since(start), imported, failed)
		for idx, rowErr := range res.Errors {
			logging.Warn().Err(rowErr).Int("batch_index", idx).Int64("last_row", batch.lastRow).Msg("Row rejected by store")
		}
	}
	if batch.skipped > 0 {
		metrics.RecordImportSkipped(int(batch.skipped))
	}

	i.mu.Lock()
	i.stats.Processed += batch.processed
	i.stats.Imported += int64(imported)
	i.stats.Skipped += batch.skipped
	i.stats.Failed += int64(failed)
	i.stats.LastRow = batch.lastRow
	stats := *i.stats
	i.mu.Unlock()

	batch.customers = batch.customers[:0]
	batch.processed = 0
	batch.skipped = 0

	if i.progress != nil && !i.opts.DryRun {
		if err := i.progress.Save(ctx, &stats); err != nil {
			logging.Warn().Err(err).Msg("Failed to save import progress")
		}
	}
	if i.opts.OnProgress != nil {
		i.opts.OnProgress(stats)
	}

	logging.Debug().
		Int64("processed", stats.Processed).
		Int64("imported", stats.Imported).
		Int64("skipped", stats.Skipped).
		Int64("failed", stats.Failed).
		Float64("rows_per_second", stats.RowsPerSecond()).
		Msg("Import progress")
	return nil
}

// finish clears saved progress and announces the run.
func (i *Importer) finish(ctx context.Context, stats *ImportStats) {
	logging.Info().
		Str("run_id", stats.RunID).
		Int64("imported", stats.Imported).
		Int64("skipped", stats.Skipped).
		Int64("failed", stats.Failed).
		Dur("duration", stats.Duration()).
		Msg("Import completed")

	if stats.DryRun {
		return
	}
	metrics.RecordImportCompleted()

	if i.progress != nil {
		if err := i.progress.Clear(ctx); err != nil {
			logging.Warn().Err(err).Msg("Failed to clear import progress")
		}
	}

	if i.publisher == nil {
		return
	}
	evt := events.NewImportCompleted(stats.RunID, stats.Source)
	evt.Imported = int(stats.Imported)
	evt.Skipped = int(stats.Skipped)
	evt.Failed = int(stats.Failed)
	evt.Replaced = stats.Replaced
	evt.DurationMS = stats.Duration().Milliseconds()
	if err := i.publisher.PublishImportCompleted(ctx, evt); err != nil {
		logging.Warn().Err(err).Msg("Failed to publish import event")
	}
}

// GetStats returns a copy of the current or last run's statistics.
func (i *Importer) GetStats() *ImportStats {
	i.mu.RLock()
	defer i.mu.RUnlock()

	if i.stats == nil {
		return &ImportStats{}
	}
	stats := *i.stats
	return &stats
}

// IsRunning returns whether an import is currently in progress.
func (i *Importer) IsRunning() bool {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.running
}

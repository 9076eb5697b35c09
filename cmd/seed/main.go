// Custstats - Customer Statistics Aggregation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/custstats

// Command seed loads a customer CSV export into the custstats DuckDB store.
//
// Usage:
//
//	seed --file Dataset.csv [--replace] [--dry-run] [--resume] [--no-progress]
//
// Database, batch size, progress store and NATS settings come from the same
// configuration as the server (config.yaml and environment variables). When
// NATS is enabled a completion event is published so running servers clear
// their report cache.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/tomtom215/custstats/internal/config"
	"github.com/tomtom215/custstats/internal/database"
	"github.com/tomtom215/custstats/internal/events"
	customerimport "github.com/tomtom215/custstats/internal/import"
	"github.com/tomtom215/custstats/internal/logging"
)

type flags struct {
	file       string
	replace    bool
	dryRun     bool
	resume     bool
	noProgress bool
}

func parseFlags(args []string) (flags, error) {
	var f flags
	fs := flag.NewFlagSet("seed", flag.ContinueOnError)
	fs.StringVar(&f.file, "file", "Dataset.csv", "CSV file to import")
	fs.BoolVar(&f.replace, "replace", false, "delete all stored customers before importing")
	fs.BoolVar(&f.dryRun, "dry-run", false, "parse and validate without writing")
	fs.BoolVar(&f.resume, "resume", false, "continue an interrupted import of the same file")
	fs.BoolVar(&f.noProgress, "no-progress", false, "disable the terminal progress bar")
	if err := fs.Parse(args); err != nil {
		return f, err
	}
	if f.file == "" {
		return f, errors.New("--file is required")
	}
	if f.replace && f.resume {
		return f, customerimport.ErrReplaceWithResume
	}
	return f, nil
}

func main() {
	f, err := parseFlags(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}
	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    "console",
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	stats, err := run(ctx, cfg, f)
	if err != nil {
		if errors.Is(err, context.Canceled) && stats != nil {
			logging.Warn().Int64("last_row", stats.LastRow).Msg("Import interrupted, rerun with --resume to continue")
			os.Exit(130)
		}
		logging.Fatal().Err(err).Msg("Import failed")
	}

	fmt.Printf("Imported %d rows (%d skipped, %d failed) in %s\n",
		stats.Imported, stats.Skipped, stats.Failed, stats.Duration().Round(time.Millisecond))
}

func run(ctx context.Context, cfg *config.Config, f flags) (*customerimport.ImportStats, error) {
	dryRun := f.dryRun || cfg.Import.DryRun

	db, err := database.New(&cfg.Database)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()

	progress, closeProgress, err := openProgress(cfg.Import.ProgressPath)
	if err != nil {
		return nil, err
	}
	defer closeProgress()

	var publisher customerimport.EventPublisher
	if cfg.NATS.Enabled && !dryRun {
		pub, err := openPublisher(cfg.NATS)
		if err != nil {
			logging.Warn().Err(err).Msg("NATS unavailable, servers will not be notified")
		} else {
			defer func() { _ = pub.Close() }()
			publisher = pub
		}
	}

	opts := customerimport.Options{
		BatchSize: cfg.Import.BatchSize,
		DryRun:    dryRun,
		Replace:   f.replace,
		Resume:    f.resume,
	}

	if !f.noProgress {
		total, err := customerimport.CountRows(f.file)
		if err != nil {
			return nil, err
		}
		bar := progressbar.Default(total, "importing")
		defer func() { _ = bar.Finish() }()
		opts.TotalRows = total
		opts.OnProgress = func(s customerimport.ImportStats) {
			_ = bar.Set64(s.Processed)
		}
	}

	importer := customerimport.NewImporter(db, opts, progress, publisher)
	return importer.ImportFile(ctx, f.file)
}

// openProgress uses BadgerDB when path is set so --resume survives a
// restart; otherwise progress lives in memory.
func openProgress(path string) (customerimport.ProgressTracker, func(), error) {
	if path == "" {
		return customerimport.NewInMemoryProgress(), func() {}, nil
	}
	tracker, bdb, err := customerimport.OpenBadgerProgress(path)
	if err != nil {
		return nil, nil, err
	}
	return tracker, func() {
		if err := bdb.Close(); err != nil {
			logging.Warn().Err(err).Msg("Error closing progress store")
		}
	}, nil
}

// openPublisher connects to the configured broker. With an embedded broker
// the server owns it, so the seed dials its host and port.
func openPublisher(cfg config.NATSConfig) (*events.Publisher, error) {
	url := cfg.URL
	if cfg.Embedded {
		if cfg.Port <= 0 {
			return nil, fmt.Errorf("embedded NATS port %d is not reachable from another process", cfg.Port)
		}
		url = fmt.Sprintf("nats://%s:%d", cfg.Host, cfg.Port)
	}
	return events.NewPublisher(url, cfg.Subject, events.NewLoggerAdapter())
}

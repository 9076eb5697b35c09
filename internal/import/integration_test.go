// Custstats - Customer Statistics Aggregation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/custstats

package customerimport

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/tomtom215/custstats/internal/config"
	"github.com/tomtom215/custstats/internal/database"
)

func TestImportFileIntoDuckDB(t *testing.T) {
	db, err := database.New(&config.DatabaseConfig{
		Path:         ":memory:",
		MaxMemory:    "512MB",
		QueryTimeout: 30 * time.Second,
	})
	if err != nil {
		t.Fatalf("database.New() error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	path := filepath.Join(t.TempDir(), "Dataset.csv")
	if err := os.WriteFile(path, []byte("\xEF\xBB\xBF"+buildCSV(30, 7)), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	total, err := CountRows(path)
	if err != nil {
		t.Fatalf("CountRows() error = %v", err)
	}

	ctx := context.Background()
	imp := NewImporter(db, Options{BatchSize: 8, TotalRows: total}, NewBadgerProgress(openTestBadger(t)), nil)
	stats, err := imp.ImportFile(ctx, path)
	if err != nil {
		t.Fatalf("ImportFile() error = %v", err)
	}
	if stats.Imported != 29 || stats.Skipped != 1 {
		t.Errorf("imported/skipped = %d/%d, want 29/1", stats.Imported, stats.Skipped)
	}
	if stats.Progress() != 100 {
		t.Errorf("Progress() = %v, want 100", stats.Progress())
	}

	count, err := db.CountCustomers(ctx)
	if err != nil {
		t.Fatalf("CountCustomers() error = %v", err)
	}
	if count != 29 {
		t.Errorf("CountCustomers() = %d, want 29", count)
	}

	rows, err := db.ListCustomers(ctx, 0, 1)
	if err != nil {
		t.Fatalf("ListCustomers() error = %v", err)
	}
	if len(rows) != 1 || rows[0].BirthYear == nil || *rows[0].BirthYear != 1990 {
		t.Errorf("first row = %+v, want birth year 1990", rows)
	}
	if rows[0].SequenceIndex == nil || *rows[0].SequenceIndex != 0 {
		t.Errorf("SequenceIndex = %v, want 0 (BOM stripped from the first header)", rows[0].SequenceIndex)
	}

	// A second run with replace leaves exactly one copy.
	again := NewImporter(db, Options{Replace: true}, nil, nil)
	if _, err := again.ImportFile(ctx, path); err != nil {
		t.Fatalf("replace ImportFile() error = %v", err)
	}
	if count, _ := db.CountCustomers(ctx); count != 29 {
		t.Errorf("CountCustomers() after replace = %d, want 29", count)
	}
}

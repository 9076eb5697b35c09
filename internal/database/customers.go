// Custstats - Customer Statistics Aggregation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/custstats

package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/tomtom215/custstats/internal/logging"
	"github.com/tomtom215/custstats/internal/metrics"
	"github.com/tomtom215/custstats/internal/models"
)

const customerColumns = `record_id, sequence_index, customer_id, location_name, visit_date, login_hour,
	full_name, birth_year, gender, email, phone, device, digital_interest, location_type,
	created_at, updated_at`

const insertCustomerSQL = `INSERT INTO customers (
	sequence_index, customer_id, location_name, visit_date, login_hour, full_name,
	birth_year, gender, email, phone, device, digital_interest, location_type
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

// InsertResult reports the outcome of one InsertCustomers call.
type InsertResult struct {
	Inserted int
	Failed   int
	// Errors holds one entry per failed row, keyed by the row's position in the batch.
	Errors map[int]error
}

// InsertCustomers stores a batch of rows. The batch is written in a single
// transaction; if that fails it is rolled back and every row is retried on
// its own so only the offending rows are dropped. Rows that fail are
// reported in the result, not as an error. The returned error is non-nil
// only when the context ends.
func (db *DB) InsertCustomers(ctx context.Context, batch []models.Customer) (InsertResult, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	if len(batch) == 0 {
		return InsertResult{}, nil
	}

	err := db.insertBatchTx(ctx, batch)
	metrics.RecordDBQuery("insert_batch", customersTable, time.Since(start), err)
	if err == nil {
		return InsertResult{Inserted: len(batch)}, nil
	}
	if ctx.Err() != nil {
		return InsertResult{}, ctx.Err()
	}

	logging.Warn().Err(err).Int("rows", len(batch)).Msg("Batch insert failed, retrying rows individually")
	return db.insertRowByRow(ctx, batch)
}

func (db *DB) insertBatchTx(ctx context.Context, batch []models.Customer) (err error) {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				logging.Warn().Err(rbErr).Msg("Failed to roll back customer batch")
			}
		}
	}()

	stmt, err := tx.PrepareContext(ctx, insertCustomerSQL)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer func() {
		if cerr := stmt.Close(); cerr != nil {
			logging.Debug().Err(cerr).Msg("Failed to close insert statement")
		}
	}()

	for i := range batch {
		if _, err = stmt.ExecContext(ctx, insertArgs(&batch[i])...); err != nil {
			return fmt.Errorf("failed to insert row %d: %w", i, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit batch: %w", err)
	}
	return nil
}

func (db *DB) insertRowByRow(ctx context.Context, batch []models.Customer) (InsertResult, error) {
	result := InsertResult{Errors: make(map[int]error)}
	for i := range batch {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if _, err := db.conn.ExecContext(ctx, insertCustomerSQL, insertArgs(&batch[i])...); err != nil {
			result.Failed++
			result.Errors[i] = err
			continue
		}
		result.Inserted++
	}
	return result, nil
}

func insertArgs(c *models.Customer) []any {
	var seq, birthYear any
	if c.SequenceIndex != nil {
		seq = *c.SequenceIndex
	}
	if c.BirthYear != nil {
		birthYear = int32(*c.BirthYear)
	}
	return []any{
		seq, c.CustomerID, c.LocationName, c.Date, c.LoginHour, c.FullName,
		birthYear, c.Gender, c.Email, c.Phone, c.Device, c.DigitalInterest, c.LocationType,
	}
}

// CountCustomers returns the total number of stored rows.
func (db *DB) CountCustomers(ctx context.Context) (int64, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	var total int64
	err := db.conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM customers").Scan(&total)
	metrics.RecordDBQuery("count", customersTable, time.Since(start), err)
	if err != nil {
		return 0, fmt.Errorf("failed to count customers: %w", err)
	}
	return total, nil
}

// ListCustomers returns up to limit rows starting at offset, in record_id order.
func (db *DB) ListCustomers(ctx context.Context, offset, limit int) ([]models.Customer, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	if offset < 0 {
		offset = 0
	}
	if limit < 0 {
		limit = 0
	}

	start := time.Now()
	query := "SELECT " + customerColumns + " FROM customers ORDER BY record_id LIMIT ? OFFSET ?"
	results, err := queryAndScan(ctx, db.conn, query, []any{limit, offset}, scanCustomer)
	metrics.RecordDBQuery("list", customersTable, time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	if results == nil {
		results = []models.Customer{}
	}
	return results, nil
}

// ScanCustomers calls fn for every row in record_id order. An error from fn
// stops the scan and is returned unwrapped.
func (db *DB) ScanCustomers(ctx context.Context, fn func(*models.Customer) error) error {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	err := db.scanAll(ctx, fn)
	metrics.RecordDBQuery("scan", customersTable, time.Since(start), err)
	return err
}

func (db *DB) scanAll(ctx context.Context, fn func(*models.Customer) error) error {
	rows, err := db.conn.QueryContext(ctx, "SELECT "+customerColumns+" FROM customers ORDER BY record_id")
	if err != nil {
		return fmt.Errorf("failed to scan customers: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return fmt.Errorf("failed to scan customers: %w", err)
		}
		if err := fn(&c); err != nil {
			return err
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to scan customers: %w", err)
	}
	return nil
}

// TruncateCustomers deletes every row. The record_id sequence keeps counting.
func (db *DB) TruncateCustomers(ctx context.Context) (int64, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	res, err := db.conn.ExecContext(ctx, "DELETE FROM customers")
	metrics.RecordDBQuery("truncate", customersTable, time.Since(start), err)
	if err != nil {
		return 0, fmt.Errorf("failed to truncate customers: %w", err)
	}
	// The row count is informational only.
	n, _ := res.RowsAffected()
	return n, nil
}

func scanCustomer(rows *sql.Rows) (models.Customer, error) {
	var (
		c         models.Customer
		seq       sql.NullInt64
		birthYear sql.NullInt64
	)
	err := rows.Scan(
		&c.RecordID, &seq, &c.CustomerID, &c.LocationName, &c.Date, &c.LoginHour,
		&c.FullName, &birthYear, &c.Gender, &c.Email, &c.Phone, &c.Device,
		&c.DigitalInterest, &c.LocationType, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return models.Customer{}, err
	}
	if seq.Valid {
		v := seq.Int64
		c.SequenceIndex = &v
	}
	if birthYear.Valid {
		v := int(birthYear.Int64)
		c.BirthYear = &v
	}
	return c, nil
}

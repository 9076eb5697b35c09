// Custstats - Customer Statistics Aggregation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/custstats

package database

import (
	"context"
	"fmt"
	"time"
)

const customersTable = "customers"

// schemaQueries create the customers table. record_id comes from a sequence
// so it increases with insertion order, which is the store's iteration order.
var schemaQueries = []string{
	`CREATE SEQUENCE IF NOT EXISTS customers_record_id_seq START 1`,
	`CREATE TABLE IF NOT EXISTS customers (
		record_id        BIGINT PRIMARY KEY DEFAULT nextval('customers_record_id_seq'),
		sequence_index   BIGINT,
		customer_id      BIGINT NOT NULL,
		location_name    VARCHAR NOT NULL,
		visit_date       VARCHAR NOT NULL,
		login_hour       VARCHAR NOT NULL,
		full_name        VARCHAR NOT NULL,
		birth_year       INTEGER,
		gender           VARCHAR NOT NULL DEFAULT '',
		email            VARCHAR NOT NULL,
		phone            VARCHAR NOT NULL DEFAULT '',
		device           VARCHAR NOT NULL DEFAULT '',
		digital_interest VARCHAR NOT NULL DEFAULT '',
		location_type    VARCHAR NOT NULL DEFAULT '',
		created_at       TIMESTAMP NOT NULL DEFAULT current_timestamp,
		updated_at       TIMESTAMP NOT NULL DEFAULT current_timestamp
	)`,
	`CREATE INDEX IF NOT EXISTS idx_customers_customer_id ON customers(customer_id)`,
	`CREATE INDEX IF NOT EXISTS idx_customers_email ON customers(email)`,
}

func (db *DB) createSchema() error {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	for _, q := range schemaQueries {
		if _, err := db.conn.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return nil
}

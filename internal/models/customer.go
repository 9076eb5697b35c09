// Custstats - Customer Statistics Aggregation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/custstats

package models

import (
	"time"
)

// Customer is one ingested customer interaction row. A real-world customer
// usually appears many times (one row per login), and CustomerID is not
// unique across rows. Rows are immutable once stored.
//
// Optional string fields use "" for absent values. BirthYear is nil when the
// source value was missing or non-numeric, so age aggregates can exclude it.
type Customer struct {
	RecordID        int64     `json:"recordId"`
	SequenceIndex   *int64    `json:"sequenceIndex,omitempty"`
	CustomerID      int64     `json:"customerId" validate:"required"`
	LocationName    string    `json:"locationName" validate:"required"`
	Date            string    `json:"date" validate:"required"`
	LoginHour       string    `json:"loginHour" validate:"required"`
	FullName        string    `json:"fullName" validate:"required"`
	BirthYear       *int      `json:"birthYear"`
	Gender          string    `json:"gender"`
	Email           string    `json:"email" validate:"required"`
	Phone           string    `json:"phone"`
	Device          string    `json:"device"`
	DigitalInterest string    `json:"digitalInterest"`
	LocationType    string    `json:"locationType"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// CustomerPage is a 1-indexed page of raw customer rows.
type CustomerPage struct {
	Page       int        `json:"page"`
	Limit      int        `json:"limit"`
	TotalItems int64      `json:"totalItems"`
	TotalPages int64      `json:"totalPages"`
	Data       []Customer `json:"data"`
}

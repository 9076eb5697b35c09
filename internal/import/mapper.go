// Custstats - Customer Statistics Aggregation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/custstats

package customerimport

import (
	"math"
	"strconv"
	"strings"

	"github.com/tomtom215/custstats/internal/models"
	"github.com/tomtom215/custstats/internal/validation"
)

// Source column names in the dataset export.
const (
	ColumnSequence        = ""
	ColumnNumber          = "Number"
	ColumnLocationName    = "Name of Location"
	ColumnDate            = "Date"
	ColumnLoginHour       = "Login Hour"
	ColumnName            = "Name"
	ColumnAge             = "Age"
	ColumnGender          = "gender"
	ColumnEmail           = "Email"
	ColumnPhone           = "No Telp"
	ColumnBrandDevice     = "Brand Device"
	ColumnDigitalInterest = "Digital Interest"
	ColumnLocationType    = "Location Type"
)

// Mapper converts CSV records to customers.
type Mapper struct{}

// NewMapper creates a new mapper.
func NewMapper() *Mapper {
	return &Mapper{}
}

// ToCustomer maps rec and checks required fields. The returned error, when
// non-nil, is a *validation.RequestValidationError naming every missing
// field. The "Age" column holds a birth year despite its name.
func (m *Mapper) ToCustomer(rec Record) (models.Customer, error) {
	c := models.Customer{
		LocationName:    rec.Get(ColumnLocationName),
		Date:            rec.Get(ColumnDate),
		LoginHour:       rec.Get(ColumnLoginHour),
		FullName:        rec.Get(ColumnName),
		Gender:          rec.Get(ColumnGender),
		Email:           rec.Get(ColumnEmail),
		Phone:           rec.Get(ColumnPhone),
		Device:          rec.Get(ColumnBrandDevice),
		DigitalInterest: rec.Get(ColumnDigitalInterest),
		LocationType:    rec.Get(ColumnLocationType),
	}

	if v, ok := parseLeadingInt(rec.Get(ColumnSequence)); ok {
		c.SequenceIndex = &v
	}
	// A non-numeric customer number stays 0 and fails the required check.
	if v, ok := parseLeadingInt(rec.Get(ColumnNumber)); ok {
		c.CustomerID = v
	}
	// birth_year is a 32-bit column; larger values are treated as non-numeric.
	if v, ok := parseLeadingInt(rec.Get(ColumnAge)); ok && v >= math.MinInt32 && v <= math.MaxInt32 {
		year := int(v)
		c.BirthYear = &year
	}

	if verr := validation.ValidateStruct(&c); verr != nil {
		return c, verr
	}
	return c, nil
}

// parseLeadingInt reads the integer prefix of s after leading whitespace,
// so "1990" and "1990.0" both give 1990. It reports false when s has no
// leading digits or the value overflows int64.
func parseLeadingInt(s string) (int64, bool) {
	s = strings.TrimLeft(s, " \t\r\n")
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	v, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

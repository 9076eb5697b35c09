// Custstats - Customer Statistics Aggregation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/custstats

// Package validation wraps go-playground/validator v10 with a process-wide
// validator instance and readable error messages.
//
// Field names in messages use the JSON tag of the struct field, so a
// customer row missing its email reports "email is required" rather than
// the Go field name:
//
//	if verr := validation.ValidateStruct(&row); verr != nil {
//	    logging.Warn().Strs("fields", verr.Fields()).Msg("Skipping invalid row")
//	}
package validation

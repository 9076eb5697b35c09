// Custstats - Customer Statistics Aggregation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/custstats

// Package customerimport loads customer interaction rows from a CSV export
// into the DuckDB store.
//
// # Pipeline
//
//	CSV file
//	   ↓
//	Reader (BOM strip, trimmed headers)
//	   ↓
//	Mapper (header mapping, numeric parsing, required-field validation)
//	   ↓
//	Importer (batches of import.batch_size)
//	   ↓
//	database.InsertCustomers (row-by-row fallback on batch failure)
//
// Rows that fail validation are skipped and counted. A failed batch does
// not stop the import: only the rows DuckDB rejects are dropped.
//
// # Column Mapping
//
//	""                 -> sequenceIndex
//	"Number"           -> customerId
//	"Name of Location" -> locationName
//	"Date"             -> date
//	"Login Hour"       -> loginHour
//	"Name"             -> fullName
//	"Age"              -> birthYear (the column holds a year; non-numeric becomes NULL)
//	"gender"           -> gender
//	"Email"            -> email
//	"No Telp"          -> phone
//	"Brand Device"     -> device
//	"Digital Interest" -> digitalInterest
//	"Location Type"    -> locationType
//
// # Progress Tracking
//
// After each committed batch the importer saves ImportStats through a
// ProgressTracker. BadgerProgress persists it so an interrupted import can
// be resumed with Options.Resume; rows up to Stats.LastRow are then skipped
// without being re-inserted.
//
// # Example Usage
//
//	imp := customerimport.NewImporter(db, customerimport.Options{BatchSize: 200},
//	    customerimport.NewInMemoryProgress(), publisher)
//	stats, err := imp.ImportFile(ctx, "Dataset.csv")
//	if err != nil {
//	    return err
//	}
//	logging.Info().Int64("imported", stats.Imported).Msg("Done")
package customerimport

// Custstats - Customer Statistics Aggregation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/custstats

package customerimport

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ErrNoHeader is returned when the source has no header line.
var ErrNoHeader = errors.New("csv has no header row")

// Record is one data row keyed by trimmed header name.
type Record struct {
	// Row is the 1-based data row number; the header is row 0.
	Row    int64
	Fields map[string]string
}

// Get returns the value of column, or "" when the row has no such column.
func (r Record) Get(column string) string {
	return r.Fields[column]
}

// Reader streams Records from CSV input.
type Reader struct {
	csv    *csv.Reader
	header []string
	row    int64
}

// NewReader consumes the header line. Header names are trimmed and a
// leading UTF-8 byte order mark is dropped.
func NewReader(r io.Reader) (*Reader, error) {
	cr := csv.NewReader(stripBOM(r))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.ReuseRecord = false

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrNoHeader
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	return &Reader{csv: cr, header: header}, nil
}

// Header returns the trimmed column names.
func (r *Reader) Header() []string {
	return r.header
}

// Next returns the next row, or io.EOF after the last one. A malformed row
// yields a *csv.ParseError; reading may continue after it.
func (r *Reader) Next() (Record, error) {
	fields, err := r.csv.Read()
	if errors.Is(err, io.EOF) {
		return Record{}, io.EOF
	}
	r.row++
	if err != nil {
		return Record{Row: r.row}, err
	}

	rec := Record{Row: r.row, Fields: make(map[string]string, len(r.header))}
	for i, name := range r.header {
		if i < len(fields) {
			rec.Fields[name] = fields[i]
		}
	}
	return rec, nil
}

// CountRows returns the number of data rows in the file at path. Malformed
// rows are counted too, since the importer reports them as skipped.
func CountRows(path string) (int64, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from the operator
	if err != nil {
		return 0, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	r, err := NewReader(f)
	if err != nil {
		return 0, err
	}

	var n int64
	for {
		_, err := r.Next()
		if errors.Is(err, io.EOF) {
			return n, nil
		}
		var parseErr *csv.ParseError
		if err != nil && !errors.As(err, &parseErr) {
			return n, fmt.Errorf("count rows: %w", err)
		}
		n++
	}
}

func stripBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	if prefix, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(prefix, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}
	return br
}

// Custstats - Customer Statistics Aggregation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/custstats

package events

import (
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

// EventTypeImportCompleted is set in the message metadata.
const EventTypeImportCompleted = "customers.import_completed"

// ErrInvalidEvent is returned by DecodeImportCompleted for payloads that
// parse but are not usable.
var ErrInvalidEvent = errors.New("invalid import event")

// ImportCompleted summarizes one finished CSV import.
type ImportCompleted struct {
	EventID     string    `json:"event_id"`
	RunID       string    `json:"run_id"`
	Source      string    `json:"source"`
	Imported    int       `json:"imported"`
	Skipped     int       `json:"skipped"`
	Failed      int       `json:"failed"`
	Replaced    bool      `json:"replaced"`
	DurationMS  int64     `json:"duration_ms"`
	CompletedAt time.Time `json:"completed_at"`
}

// NewImportCompleted stamps a fresh event ID and completion time.
func NewImportCompleted(runID, source string) *ImportCompleted {
	return &ImportCompleted{
		EventID:     uuid.New().String(),
		RunID:       runID,
		Source:      source,
		CompletedAt: time.Now().UTC(),
	}
}

// Encode serializes the event payload.
func (e *ImportCompleted) Encode() ([]byte, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("marshal import event: %w", err)
	}
	return data, nil
}

// DecodeImportCompleted parses a payload produced by Encode.
func DecodeImportCompleted(data []byte) (*ImportCompleted, error) {
	var e ImportCompleted
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, fmt.Errorf("unmarshal import event: %w", err)
	}
	if e.EventID == "" {
		return nil, fmt.Errorf("%w: missing event_id", ErrInvalidEvent)
	}
	return &e, nil
}

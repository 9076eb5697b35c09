// Custstats - Customer Statistics Aggregation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/custstats

package events

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/rs/zerolog"
)

func TestLoggerAdapter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	adapter := NewLoggerAdapterFrom(zerolog.New(&buf).Level(zerolog.TraceLevel))

	adapter.Info("subscribed", watermill.LogFields{"subject": "customers.imported"})
	adapter.Error("publish failed", errors.New("no responders"), nil)
	adapter.With(watermill.LogFields{"run_id": "r1"}).Debug("batch", nil)
	adapter.Trace("tick", nil)

	out := buf.String()
	for _, want := range []string{
		`"level":"info"`,
		`"subject":"customers.imported"`,
		`"error":"no responders"`,
		`"run_id":"r1"`,
		`"message":"tick"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %s\n%s", want, out)
		}
	}
}

func TestLoggerAdapterLevelFilter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	adapter := NewLoggerAdapterFrom(zerolog.New(&buf).Level(zerolog.InfoLevel))
	adapter.Debug("hidden", nil)
	adapter.Trace("hidden", nil)

	if buf.Len() != 0 {
		t.Errorf("expected no output below info level, got %q", buf.String())
	}
}

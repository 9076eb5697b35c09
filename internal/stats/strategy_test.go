// Custstats - Customer Statistics Aggregation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/custstats

package stats

import (
	"errors"
	"testing"
)

func TestParseStrategy(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"none", "none", false},
		{"customerId", "customerId", false},
		{"CUSTOMERID", "customerId", false},
		{"customer_id", "customerId", false},
		{"email", "email", false},
		{" Email ", "email", false},
		{"fullName", "fullName", false},
		{"name", "fullName", false},
		{"nameEmail", "nameEmail", false},
		{"name_email", "nameEmail", false},
		{"phone", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			got, err := ParseStrategy(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownStrategy) {
					t.Fatalf("ParseStrategy(%q) error = %v, want ErrUnknownStrategy", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseStrategy(%q) unexpected error: %v", tt.input, err)
			}
			if got.Name != tt.want {
				t.Errorf("ParseStrategy(%q).Name = %q, want %q", tt.input, got.Name, tt.want)
			}
		})
	}
}

func TestStrategiesAreNamedAndDistinct(t *testing.T) {
	t.Parallel()

	seen := make(map[string]bool)
	for _, s := range Strategies() {
		if s.Name == "" {
			t.Fatal("strategy with empty name")
		}
		if seen[s.Name] {
			t.Errorf("duplicate strategy %q", s.Name)
		}
		seen[s.Name] = true
		if s.IsNone() != (s.Name == "none") {
			t.Errorf("%s.IsNone() = %v", s.Name, s.IsNone())
		}
	}
}

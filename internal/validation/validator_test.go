// Custstats - Customer Statistics Aggregation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/custstats

package validation

import (
	"reflect"
	"strings"
	"testing"

	"github.com/tomtom215/custstats/internal/models"
)

func validCustomer() models.Customer {
	return models.Customer{
		CustomerID:   7,
		LocationName: "Mall Central",
		Date:         "2024-01-15",
		LoginHour:    "09:00",
		FullName:     "Jane Doe",
		Email:        "jane@example.com",
	}
}

func TestGetValidatorSingleton(t *testing.T) {
	t.Parallel()

	if GetValidator() != GetValidator() {
		t.Error("GetValidator() should return the same instance")
	}
}

func TestValidateCustomer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		mutate     func(c *models.Customer)
		wantFields []string
	}{
		{"valid row", func(c *models.Customer) {}, nil},
		{"optional fields may be empty", func(c *models.Customer) {
			c.Gender = ""
			c.Device = ""
			c.BirthYear = nil
		}, nil},
		{"missing email", func(c *models.Customer) { c.Email = "" }, []string{"email"}},
		{"zero customer id", func(c *models.Customer) { c.CustomerID = 0 }, []string{"customerId"}},
		{"several missing", func(c *models.Customer) {
			c.FullName = ""
			c.LoginHour = ""
			c.Date = ""
		}, []string{"date", "loginHour", "fullName"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := validCustomer()
			tt.mutate(&c)

			verr := ValidateStruct(&c)
			if tt.wantFields == nil {
				if verr != nil {
					t.Fatalf("ValidateStruct() = %v, want nil", verr)
				}
				return
			}
			if verr == nil {
				t.Fatal("ValidateStruct() = nil, want error")
			}
			if got := verr.Fields(); !reflect.DeepEqual(got, tt.wantFields) {
				t.Errorf("Fields() = %v, want %v", got, tt.wantFields)
			}
		})
	}
}

func TestValidationMessages(t *testing.T) {
	t.Parallel()

	c := validCustomer()
	c.Email = ""
	verr := ValidateStruct(&c)
	if verr == nil {
		t.Fatal("expected error")
	}
	if got := verr.Error(); got != "email is required" {
		t.Errorf("Error() = %q, want %q", got, "email is required")
	}
	if verr.Errors()[0].Tag != "required" {
		t.Errorf("Tag = %q, want required", verr.Errors()[0].Tag)
	}
}

func TestTranslateErrorWithParam(t *testing.T) {
	t.Parallel()

	type request struct {
		Limit int    `json:"limit" validate:"min=1,max=1000"`
		Sort  string `json:"sort" validate:"oneof=asc desc"`
	}

	verr := ValidateStruct(&request{Limit: 5000, Sort: "up"})
	if verr == nil {
		t.Fatal("expected error")
	}
	msg := verr.Error()
	for _, want := range []string{"limit must be at most 1000", "sort must be one of: asc desc"} {
		if !strings.Contains(msg, want) {
			t.Errorf("Error() = %q, want it to contain %q", msg, want)
		}
	}
}

func TestJSONFieldNameFallback(t *testing.T) {
	t.Parallel()

	type untagged struct {
		Name string `validate:"required"`
	}
	verr := ValidateStruct(&untagged{})
	if verr == nil || verr.Fields()[0] != "Name" {
		t.Errorf("untagged field should report Go name, got %v", verr)
	}
}

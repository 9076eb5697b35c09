// Custstats - Customer Statistics Aggregation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/custstats

package stats

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tomtom215/custstats/internal/models"
)

// ErrUnknownStrategy is returned by ParseStrategy for names it does not know.
var ErrUnknownStrategy = errors.New("unknown deduplication strategy")

// KeyFunc maps a row to its deduplication key. Keys must be comparable.
type KeyFunc func(*models.Customer) any

// Strategy decides which rows represent the same customer. A nil Key keeps
// every row.
type Strategy struct {
	Name string
	Key  KeyFunc
}

// IsNone reports whether the strategy keeps every row.
func (s Strategy) IsNone() bool {
	return s.Key == nil
}

var (
	StrategyNone = Strategy{Name: "none"}

	StrategyCustomerID = Strategy{
		Name: "customerId",
		Key:  func(c *models.Customer) any { return c.CustomerID },
	}

	StrategyEmail = Strategy{
		Name: "email",
		Key:  func(c *models.Customer) any { return c.Email },
	}

	StrategyFullName = Strategy{
		Name: "fullName",
		Key:  func(c *models.Customer) any { return c.FullName },
	}

	// StrategyNameEmail treats rows as the same customer only when both the
	// full name and the email match.
	StrategyNameEmail = Strategy{
		Name: "nameEmail",
		Key:  func(c *models.Customer) any { return [2]string{c.FullName, c.Email} },
	}
)

// Strategies lists every named strategy.
func Strategies() []Strategy {
	return []Strategy{StrategyNone, StrategyCustomerID, StrategyEmail, StrategyFullName, StrategyNameEmail}
}

var strategyAliases = map[string]Strategy{
	"none":        StrategyNone,
	"customerid":  StrategyCustomerID,
	"customer_id": StrategyCustomerID,
	"email":       StrategyEmail,
	"fullname":    StrategyFullName,
	"name":        StrategyFullName,
	"nameemail":   StrategyNameEmail,
	"name_email":  StrategyNameEmail,
}

// ParseStrategy resolves a strategy name case-insensitively.
func ParseStrategy(name string) (Strategy, error) {
	if s, ok := strategyAliases[strings.ToLower(strings.TrimSpace(name))]; ok {
		return s, nil
	}
	return Strategy{}, fmt.Errorf("%w: %q (valid: none, customerId, email, fullName, nameEmail)", ErrUnknownStrategy, name)
}

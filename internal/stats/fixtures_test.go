// Custstats - Customer Statistics Aggregation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/custstats

package stats

import (
	"fmt"
	"time"

	"github.com/tomtom215/custstats/internal/models"
)

// fixedClock returns a clock pinned to the middle of the given year.
func fixedClock(year int) func() time.Time {
	return func() time.Time { return time.Date(year, time.June, 15, 12, 0, 0, 0, time.UTC) }
}

func birth(y int) *int { return &y }

// visits builds a realistic population: 4 customers with repeated logins,
// a shared email between two different names and one row missing most
// optional fields.
func visits() []models.Customer {
	rows := []models.Customer{
		{CustomerID: 1, FullName: "Ada Lovelace", Email: "ada@example.com", Gender: "F", BirthYear: birth(1990), Device: "Apple", DigitalInterest: "Books", LocationType: "urban", LocationName: "Paris", LoginHour: "09:00"},
		{CustomerID: 1, FullName: "Ada Lovelace", Email: "ada@example.com", Gender: "F", BirthYear: birth(1990), Device: "Samsung", DigitalInterest: "Travel", LocationType: "urban", LocationName: "Lyon", LoginHour: "10:00"},
		{CustomerID: 2, FullName: "Alan Turing", Email: "alan@example.com", Gender: "M", BirthYear: birth(1975), Device: "Apple", DigitalInterest: "Books", LocationType: "rural", LocationName: "Wilmslow", LoginHour: "09:00"},
		{CustomerID: 3, FullName: "Grace Hopper", Email: "shared@example.com", Gender: "F", BirthYear: birth(1960), Device: "Huawei", DigitalInterest: "Music", LocationType: "urban", LocationName: "Paris", LoginHour: "23:00"},
		{CustomerID: 4, FullName: "Linus Torvalds", Email: "shared@example.com", Gender: "M", Device: "Apple", LocationType: "suburban", LocationName: "Portland", LoginHour: "09:00"},
		{CustomerID: 2, FullName: "Alan Turing", Email: "alan@example.com", Gender: "M", BirthYear: birth(1975), Device: "Apple", DigitalInterest: "", LocationType: "rural", LocationName: "Manchester", LoginHour: "11:00"},
		{CustomerID: 5, FullName: "Nobody", Email: "nobody@example.com"},
	}
	for i := range rows {
		rows[i].RecordID = int64(i + 1)
		rows[i].Date = "2024-01-01"
	}
	return rows
}

// numbered builds n distinct rows with RecordID 1..n.
func numbered(n int) []models.Customer {
	rows := make([]models.Customer, n)
	for i := range rows {
		rows[i] = models.Customer{
			RecordID:   int64(i + 1),
			CustomerID: int64(1000 + i),
			FullName:   fmt.Sprintf("Customer %d", i+1),
			Email:      fmt.Sprintf("c%d@example.com", i+1),
		}
	}
	return rows
}

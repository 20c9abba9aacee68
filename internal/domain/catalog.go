package domain

import "time"

// Category is a ticket category. Tickets snapshot the name and price at mint
// time, so renames and price changes never touch issued tickets.
type Category struct {
	ID          string
	Name        string
	RequiresNIM bool
	Description *string
	CreatedAt   time.Time
}

// Price is the single active price for a category.
type Price struct {
	ID           string
	CategoryID   string
	CategoryName string
	Price        float64
	UpdatedAt    time.Time
	UpdatedBy    string
}

// Session is an operating time window.
type Session struct {
	ID          string
	Name        string
	StartTime   string
	EndTime     string
	Days        []string
	IsRecurring bool
	CreatedAt   time.Time
}

// Package is a swim package grouping (depth range based).
type Package struct {
	ID          string
	Name        string
	DepthRange  string
	Description *string
	CreatedAt   time.Time
}

// Location is a pool location record.
type Location struct {
	ID        string
	Name      string
	Capacity  *int
	CreatedAt time.Time
}

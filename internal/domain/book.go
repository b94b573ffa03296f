package domain

import "time"

// Book is the domain model for catalog entries.
type Book struct {
	ID            string
	Title         string
	Description   string
	Author        string
	Genres        []string
	Image         string
	PublishedYear int
	CreatedAt     time.Time
}

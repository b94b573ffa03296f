package dto

import (
	"time"

	"github.com/spec-kit/library-catalog/internal/domain"
)

// CreateBookRequest payload for new catalog entries.
type CreateBookRequest struct {
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Author        string   `json:"author"`
	Genres        []string `json:"genres"`
	Image         string   `json:"image"`
	PublishedYear int      `json:"published_year"`
}

// UpdateBookRequest carries a partial book change; absent fields are left
// untouched.
type UpdateBookRequest struct {
	Title         *string   `json:"title"`
	Description   *string   `json:"description"`
	Author        *string   `json:"author"`
	Genres        *[]string `json:"genres"`
	Image         *string   `json:"image"`
	PublishedYear *int      `json:"published_year"`
}

// BookResponse is the API shape for a catalog entry.
type BookResponse struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Author        string    `json:"author"`
	Genres        []string  `json:"genres"`
	Image         string    `json:"image"`
	PublishedYear int       `json:"published_year"`
	CreatedAt     time.Time `json:"created_at"`
}

// FromBook maps a domain book to its response shape.
func FromBook(book *domain.Book) BookResponse {
	return BookResponse{
		ID:            book.ID,
		Title:         book.Title,
		Description:   book.Description,
		Author:        book.Author,
		Genres:        book.Genres,
		Image:         book.Image,
		PublishedYear: book.PublishedYear,
		CreatedAt:     book.CreatedAt,
	}
}

// FromBooks maps a list of books.
func FromBooks(books []*domain.Book) []BookResponse {
	out := make([]BookResponse, 0, len(books))
	for _, book := range books {
		out = append(out, FromBook(book))
	}
	return out
}

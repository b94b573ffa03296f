package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/library-catalog/internal/domain"
	"github.com/spec-kit/library-catalog/internal/repository"
	apperrors "github.com/spec-kit/library-catalog/pkg/util"
)

// BookUpdate carries optional catalog changes; nil fields are left untouched.
type BookUpdate struct {
	Title         *string
	Description   *string
	Author        *string
	Genres        *[]string
	Image         *string
	PublishedYear *int
}

// CatalogService exposes CRUD over books.
type CatalogService struct {
	books repository.BookRepository
}

// NewCatalogService builds the service.
func NewCatalogService(books repository.BookRepository) *CatalogService {
	return &CatalogService{books: books}
}

// List returns every catalog entry.
func (s *CatalogService) List(ctx context.Context) ([]*domain.Book, error) {
	books, err := s.books.List(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return books, nil
}

// Get returns one book by id.
func (s *CatalogService) Get(ctx context.Context, id string) (*domain.Book, error) {
	book, err := s.books.GetByID(ctx, id)
	if err != nil {
		return nil, mapBookErr(err)
	}
	return book, nil
}

// Create adds a book to the catalog.
func (s *CatalogService) Create(ctx context.Context, book *domain.Book) (*domain.Book, error) {
	if err := s.books.Create(ctx, book); err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return book, nil
}

// Update applies a partial change to a book.
func (s *CatalogService) Update(ctx context.Context, id string, update BookUpdate) (*domain.Book, error) {
	book, err := s.books.GetByID(ctx, id)
	if err != nil {
		return nil, mapBookErr(err)
	}

	if update.Title != nil {
		book.Title = *update.Title
	}
	if update.Description != nil {
		book.Description = *update.Description
	}
	if update.Author != nil {
		book.Author = *update.Author
	}
	if update.Genres != nil {
		book.Genres = *update.Genres
	}
	if update.Image != nil {
		book.Image = *update.Image
	}
	if update.PublishedYear != nil {
		book.PublishedYear = *update.PublishedYear
	}

	if err := s.books.Update(ctx, book); err != nil {
		return nil, mapBookErr(err)
	}
	return book, nil
}

// Delete removes a book.
func (s *CatalogService) Delete(ctx context.Context, id string) error {
	if err := s.books.Delete(ctx, id); err != nil {
		return mapBookErr(err)
	}
	return nil
}

func mapBookErr(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewNotFound("book", nil)
	}
	return apperrors.NewInternalError(err)
}

package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/library-catalog/internal/domain"
)

// BookRepository defines persistence access for catalog entries.
type BookRepository interface {
	Create(ctx context.Context, book *domain.Book) error
	Update(ctx context.Context, book *domain.Book) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Book, error)
	List(ctx context.Context) ([]*domain.Book, error)
}

type bookRepository struct {
	pool *pgxpool.Pool
}

// NewBookRepository returns a Postgres-backed implementation.
func NewBookRepository(pool *pgxpool.Pool) BookRepository {
	return &bookRepository{pool: pool}
}

func (r *bookRepository) Create(ctx context.Context, book *domain.Book) error {
	const query = `
        INSERT INTO books (title, description, author, genres, image, published_year)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query,
		book.Title,
		book.Description,
		book.Author,
		book.Genres,
		book.Image,
		book.PublishedYear,
	).Scan(&book.ID, &book.CreatedAt)
}

func (r *bookRepository) Update(ctx context.Context, book *domain.Book) error {
	const query = `
        UPDATE books SET title=$1, description=$2, author=$3, genres=$4, image=$5, published_year=$6
        WHERE id=$7`

	cmd, err := r.pool.Exec(ctx, query,
		book.Title,
		book.Description,
		book.Author,
		book.Genres,
		book.Image,
		book.PublishedYear,
		book.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *bookRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM books WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *bookRepository) GetByID(ctx context.Context, id string) (*domain.Book, error) {
	const query = `
        SELECT id, title, description, author, genres, image, published_year, created_at
        FROM books WHERE id=$1`

	var book domain.Book
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&book.ID,
		&book.Title,
		&book.Description,
		&book.Author,
		&book.Genres,
		&book.Image,
		&book.PublishedYear,
		&book.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &book, nil
}

func (r *bookRepository) List(ctx context.Context) ([]*domain.Book, error) {
	const query = `
        SELECT id, title, description, author, genres, image, published_year, created_at
        FROM books ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	books := make([]*domain.Book, 0)
	for rows.Next() {
		var book domain.Book
		if err := rows.Scan(
			&book.ID,
			&book.Title,
			&book.Description,
			&book.Author,
			&book.Genres,
			&book.Image,
			&book.PublishedYear,
			&book.CreatedAt,
		); err != nil {
			return nil, err
		}
		books = append(books, &book)
	}
	return books, rows.Err()
}

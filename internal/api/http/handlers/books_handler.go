package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/library-catalog/internal/api/dto"
	"github.com/spec-kit/library-catalog/internal/domain"
	"github.com/spec-kit/library-catalog/internal/service"
)

// BooksHandler exposes catalog CRUD.
type BooksHandler struct {
	catalog *service.CatalogService
}

// NewBooksHandler constructs handler.
func NewBooksHandler(catalog *service.CatalogService) *BooksHandler {
	return &BooksHandler{catalog: catalog}
}

// List handles GET /books.
func (h *BooksHandler) List(c *fiber.Ctx) error {
	books, err := h.catalog.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.FromBooks(books))
}

// Get handles GET /books/:id.
func (h *BooksHandler) Get(c *fiber.Ctx) error {
	book, err := h.catalog.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.FromBook(book))
}

// Create handles POST /books.
func (h *BooksHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateBookRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Title == "" {
		return fiber.NewError(http.StatusBadRequest, "title is required")
	}

	book, err := h.catalog.Create(c.UserContext(), &domain.Book{
		Title:         req.Title,
		Description:   req.Description,
		Author:        req.Author,
		Genres:        req.Genres,
		Image:         req.Image,
		PublishedYear: req.PublishedYear,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.FromBook(book))
}

// Update handles PATCH /books/:id.
func (h *BooksHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateBookRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	book, err := h.catalog.Update(c.UserContext(), c.Params("id"), service.BookUpdate{
		Title:         req.Title,
		Description:   req.Description,
		Author:        req.Author,
		Genres:        req.Genres,
		Image:         req.Image,
		PublishedYear: req.PublishedYear,
	})
	if err != nil {
		return err
	}
	return c.JSON(dto.FromBook(book))
}

// Delete handles DELETE /books/:id.
func (h *BooksHandler) Delete(c *fiber.Ctx) error {
	if err := h.catalog.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "book deleted"})
}

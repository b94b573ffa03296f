package util

import (
	"errors"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
)

func TestToDomainError_PassThrough(t *testing.T) {
	t.Parallel()

	original := NewConflict("username already taken", nil)
	mapped := ToDomainError(original)
	if mapped.HTTPStatus != http.StatusConflict || mapped.Code != "CONFLICT" {
		t.Fatalf("unexpected mapping: %+v", mapped)
	}
}

func TestToDomainError_NoRowsBecomesNotFound(t *testing.T) {
	t.Parallel()

	mapped := ToDomainError(pgx.ErrNoRows)
	if mapped.HTTPStatus != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", mapped.HTTPStatus)
	}
}

func TestToDomainError_SanitizesUnknownErrors(t *testing.T) {
	t.Parallel()

	driverErr := errors.New("pq: connection refused at 10.0.0.7:5432")
	mapped := ToDomainError(driverErr)

	if mapped.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", mapped.HTTPStatus)
	}
	// Client-facing message must not leak driver text; the cause stays
	// wrapped for logs.
	if mapped.Message != "internal server error" {
		t.Fatalf("leaked message: %q", mapped.Message)
	}
	if !errors.Is(mapped, driverErr) {
		t.Fatal("expected the cause to remain wrapped")
	}
}

func TestDomainError_Unwrap(t *testing.T) {
	t.Parallel()

	cause := errors.New("boom")
	wrapped := NewInternalError(cause)
	if !errors.Is(wrapped, cause) {
		t.Fatal("Unwrap chain broken")
	}
}

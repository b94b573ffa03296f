package auth

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashAndComparePassword(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("pw123", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if hash == "" || hash == "pw123" {
		t.Fatalf("expected salted hash, got %q", hash)
	}

	if err := ComparePassword(hash, "pw123"); err != nil {
		t.Fatalf("expected match, got %v", err)
	}
	if err := ComparePassword(hash, "pw124"); err == nil {
		t.Fatal("expected mismatch for wrong password")
	}
}

func TestHashPassword_EmptyInput(t *testing.T) {
	t.Parallel()

	_, err := HashPassword("", bcrypt.MinCost)
	if err != ErrEmptyPassword {
		t.Fatalf("expected ErrEmptyPassword, got %v", err)
	}
}

func TestHashPassword_SaltedOutputDiffers(t *testing.T) {
	t.Parallel()

	h1, err := HashPassword("pw123", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	h2, err := HashPassword("pw123", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if h1 == h2 {
		t.Fatal("expected different salts to produce different hashes")
	}
}

func TestComparePassword_MalformedHashFailsClosed(t *testing.T) {
	t.Parallel()

	if err := ComparePassword("not-a-bcrypt-hash", "pw123"); err == nil {
		t.Fatal("expected error for malformed stored hash")
	}
}

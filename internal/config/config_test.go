package config

import (
	"errors"
	"testing"
	"time"
)

func TestLoad_MissingSecretIsFatal(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "")

	_, err := Load()
	if !errors.Is(err, ErrMissingJWTSecret) {
		t.Fatalf("expected ErrMissingJWTSecret, got %v", err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "test-secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.App.Port != "3000" {
		t.Errorf("default port: got %q", cfg.App.Port)
	}
	if cfg.Auth.AccessTokenTTL() != 15*time.Minute {
		t.Errorf("default token TTL: got %v", cfg.Auth.AccessTokenTTL())
	}
	if cfg.Auth.BcryptCost != 10 {
		t.Errorf("default bcrypt cost: got %d", cfg.Auth.BcryptCost)
	}
	if cfg.Postgres.DSN != "" {
		t.Errorf("expected empty DSN without env, got %q", cfg.Postgres.DSN)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "test-secret")
	t.Setenv("AUTH_ACCESS_TOKEN_TTL_MINUTES", "5")
	t.Setenv("APP_PORT", "8081")
	t.Setenv("POSTGRES_DSN", "postgres://localhost/catalog")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Auth.AccessTokenTTL() != 5*time.Minute {
		t.Errorf("token TTL override: got %v", cfg.Auth.AccessTokenTTL())
	}
	if cfg.App.Addr() != "0.0.0.0:8081" {
		t.Errorf("addr: got %q", cfg.App.Addr())
	}
	if cfg.Postgres.DSN != "postgres://localhost/catalog" {
		t.Errorf("dsn: got %q", cfg.Postgres.DSN)
	}
}

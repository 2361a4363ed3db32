package config

import (
	"strings"
	"testing"
)

func TestLoad_defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Errorf("unexpected HTTPAddr: %q", cfg.HTTPAddr)
	}
	if cfg.StoreBackend != StoreMemory {
		t.Errorf("expected memory backend by default, got %q", cfg.StoreBackend)
	}
	if !cfg.SeedData {
		t.Error("expected SeedData enabled by default")
	}
	if !cfg.RealtimeEnabled {
		t.Error("expected RealtimeEnabled by default")
	}
	if cfg.Environment != EnvDevelopment {
		t.Errorf("expected development environment, got %q", cfg.Environment)
	}
}

func TestLoad_readsEnvironment(t *testing.T) {
	t.Setenv("STORE_BACKEND", "postgres")
	t.Setenv("SEED_DATA", "false")
	t.Setenv("HTTP_ADDR", ":9999")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.StoreBackend != StorePostgres {
		t.Errorf("expected postgres backend, got %q", cfg.StoreBackend)
	}
	if cfg.SeedData {
		t.Error("expected SeedData disabled")
	}
	if cfg.HTTPAddr != ":9999" {
		t.Errorf("unexpected HTTPAddr: %q", cfg.HTTPAddr)
	}
}

func TestValidateForProduction(t *testing.T) {
	t.Run("non-production is never validated", func(t *testing.T) {
		cfg := &Config{Environment: EnvDevelopment, CORSAllowedOrigins: "*", LogLevel: "debug"}
		if err := ValidateForProduction(cfg); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("wildcard CORS is rejected", func(t *testing.T) {
		cfg := &Config{Environment: EnvProduction, CORSAllowedOrigins: "*", LogLevel: "info"}
		err := ValidateForProduction(cfg)
		if err == nil || !strings.Contains(err.Error(), "CORS_ALLOWED_ORIGINS") {
			t.Fatalf("expected CORS error, got %v", err)
		}
	})

	t.Run("debug logging is rejected", func(t *testing.T) {
		cfg := &Config{Environment: EnvProduction, CORSAllowedOrigins: "https://app.example.com", LogLevel: "debug"}
		err := ValidateForProduction(cfg)
		if err == nil || !strings.Contains(err.Error(), "LOG_LEVEL") {
			t.Fatalf("expected log level error, got %v", err)
		}
	})

	t.Run("postgres backend needs a database url", func(t *testing.T) {
		cfg := &Config{
			Environment:        EnvProduction,
			CORSAllowedOrigins: "https://app.example.com",
			LogLevel:           "info",
			StoreBackend:       StorePostgres,
		}
		err := ValidateForProduction(cfg)
		if err == nil || !strings.Contains(err.Error(), "DATABASE_URL") {
			t.Fatalf("expected database url error, got %v", err)
		}
	})

	t.Run("valid production config passes", func(t *testing.T) {
		cfg := &Config{
			Environment:        EnvProduction,
			CORSAllowedOrigins: "https://app.example.com",
			LogLevel:           "info",
			StoreBackend:       StorePostgres,
			DatabaseURL:        "postgres://u:p@db:5432/liveboard",
		}
		if err := ValidateForProduction(cfg); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

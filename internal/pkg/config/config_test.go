package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		t.Setenv("POSTGRES_URL", "postgres://localhost/registry")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if cfg.ServerAddr != ":8080" {
			t.Errorf("unexpected server addr: %q", cfg.ServerAddr)
		}
		if cfg.AdminServerAddr != ":9091" {
			t.Errorf("unexpected admin server addr: %q", cfg.AdminServerAddr)
		}
		if cfg.RetailerCacheTTL != 5*time.Minute {
			t.Errorf("unexpected cache TTL: %s", cfg.RetailerCacheTTL)
		}
		if cfg.RedisURL != "" {
			t.Errorf("expected the cache to be disabled by default, got %q", cfg.RedisURL)
		}
	})

	t.Run("Redis URL", func(t *testing.T) {
		t.Setenv("POSTGRES_URL", "postgres://localhost/registry")
		t.Setenv("REDIS_URL", "redis://localhost:6379/0")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if cfg.RedisURL != "redis://localhost:6379/0" {
			t.Errorf("unexpected redis url: %q", cfg.RedisURL)
		}
	})

	t.Run("Missing Postgres URL", func(t *testing.T) {
		// t.Setenv registers the restore; the variable must be genuinely
		// unset for the required check to trip.
		t.Setenv("POSTGRES_URL", "")
		os.Unsetenv("POSTGRES_URL")

		if _, err := Load(); err == nil {
			t.Error("expected an error when POSTGRES_URL is unset")
		}
	})
}

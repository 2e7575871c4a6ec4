package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/gotill/internal/infrastructure/config"
)

// noDotenv points Load at a file that does not exist.
func noDotenv(t *testing.T) string {
	return filepath.Join(t.TempDir(), ".env")
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET", "")

	cfg, err := config.Load(noDotenv(t))
	if err != nil {
		t.Fatalf("unexpected error loading config: %v", err)
	}

	if cfg.DatabaseURL == "" {
		t.Fatalf("expected default database URL to be set")
	}

	if cfg.JWTSecret != "" {
		t.Fatalf("expected JWT secret default to be empty, got %q", cfg.JWTSecret)
	}

	if cfg.HTTPPort != "8080" {
		t.Fatalf("expected default HTTP port 8080, got %s", cfg.HTTPPort)
	}

	if cfg.StorageDriver != config.StoragePostgres || cfg.ConflictRetries != 1 {
		t.Fatalf("unexpected storage defaults: driver=%s retries=%d", cfg.StorageDriver, cfg.ConflictRetries)
	}

	policy, err := cfg.DiscrepancyPolicy()
	if err != nil {
		t.Fatalf("DiscrepancyPolicy() error: %v", err)
	}
	if !policy.TolerancePct.Equal(decimal.NewFromInt(1)) || !policy.WarningPct.Equal(decimal.NewFromInt(5)) {
		t.Fatalf("unexpected default policy: %+v", policy)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://example")
	t.Setenv("REDIS_URL", "redis://example")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("DATABASE_TIMEOUT", "45s")
	t.Setenv("JWT_SECRET", "top-secret")
	t.Setenv("AUTH_ENABLED", "true")
	t.Setenv("STORAGE_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", "/tmp/till.db")
	t.Setenv("CONFLICT_RETRIES", "3")

	cfg, err := config.Load(noDotenv(t))
	if err != nil {
		t.Fatalf("unexpected error loading config: %v", err)
	}

	if cfg.DatabaseURL != "postgres://example" {
		t.Fatalf("expected custom database URL, got %s", cfg.DatabaseURL)
	}

	if cfg.RedisURL != "redis://example" {
		t.Fatalf("expected custom redis URL, got %s", cfg.RedisURL)
	}

	if cfg.HTTPPort != "9090" {
		t.Fatalf("expected HTTP port override, got %s", cfg.HTTPPort)
	}

	if cfg.DatabaseTimeout != 45*time.Second {
		t.Fatalf("expected database timeout override, got %s", cfg.DatabaseTimeout)
	}

	if cfg.JWTSecret != "top-secret" || !cfg.AuthEnabled {
		t.Fatalf("expected auth settings to be set, got secret=%s enabled=%v", cfg.JWTSecret, cfg.AuthEnabled)
	}

	if cfg.StorageDriver != config.StorageSQLite || cfg.SQLitePath != "/tmp/till.db" || cfg.ConflictRetries != 3 {
		t.Fatalf("unexpected storage settings: %+v", cfg)
	}
}

func TestLoadDotenv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("HTTP_PORT=7070\nLOG_FORMAT=console\n"), 0o600); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	t.Setenv("LOG_FORMAT", "json")
	// godotenv does not override variables that are already set; make sure
	// HTTP_PORT is unset for the duration of the test.
	t.Setenv("HTTP_PORT", "")
	os.Unsetenv("HTTP_PORT")

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("unexpected error loading config: %v", err)
	}

	if cfg.HTTPPort != "7070" {
		t.Fatalf("expected port from .env, got %s", cfg.HTTPPort)
	}
	if cfg.LogFormat != "json" {
		t.Fatalf("environment should win over .env, got %s", cfg.LogFormat)
	}
}

func TestLoadInvalidDuration(t *testing.T) {
	t.Setenv("HTTP_READ_TIMEOUT", "not-a-duration")

	if _, err := config.Load(noDotenv(t)); err == nil {
		t.Fatalf("expected error for invalid duration")
	}
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"unknown driver", map[string]string{"STORAGE_DRIVER": "mysql"}},
		{"auth without secret", map[string]string{"AUTH_ENABLED": "true", "JWT_SECRET": ""}},
		{"negative retries", map[string]string{"CONFLICT_RETRIES": "-1"}},
		{"bad threshold", map[string]string{"DISCREPANCY_WARNING_PCT": "lots"}},
		{"inverted thresholds", map[string]string{"DISCREPANCY_TOLERANCE_PCT": "10", "DISCREPANCY_WARNING_PCT": "2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := config.Load(noDotenv(t)); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}

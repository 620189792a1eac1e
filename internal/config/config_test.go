package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"TRUSTGUARD_CONFIG", "PORT", "DATABASE_URL", "REDIS_URL", "LOG_LEVEL",
		"ENVIRONMENT", "CORS_ORIGINS", "STORE_BACKEND", "SEED_FILE",
		"CATALOG_REFRESH_INTERVAL", "REQUEST_TIMEOUT",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.StoreBackend != BackendMemory {
		t.Errorf("StoreBackend = %q, want %q", cfg.StoreBackend, BackendMemory)
	}
	if cfg.RequestTimeout != 5*time.Second {
		t.Errorf("RequestTimeout = %v, want 5s", cfg.RequestTimeout)
	}
	if cfg.RedisURL != "" {
		t.Errorf("RedisURL = %q, want empty", cfg.RedisURL)
	}
}

func TestLoadFileThenEnv(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "trustguard.yaml")
	body := []byte("port: \"9090\"\nstore_backend: postgres\nrequest_timeout: 2s\nlog_level: debug\n")
	if err := os.WriteFile(path, body, 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("TRUSTGUARD_CONFIG", path)
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "9090" {
		t.Errorf("Port = %q, want 9090 from file", cfg.Port)
	}
	if cfg.StoreBackend != BackendPostgres {
		t.Errorf("StoreBackend = %q, want postgres from file", cfg.StoreBackend)
	}
	if cfg.RequestTimeout != 2*time.Second {
		t.Errorf("RequestTimeout = %v, want 2s", cfg.RequestTimeout)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel = %q, want env override warn", cfg.LogLevel)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"unknown backend", "STORE_BACKEND", "sqlite"},
		{"bad duration", "REQUEST_TIMEOUT", "soon"},
		{"negative timeout", "REQUEST_TIMEOUT", "-1s"},
		{"bad refresh", "CATALOG_REFRESH_INTERVAL", "10"},
		{"zero refresh", "CATALOG_REFRESH_INTERVAL", "0s"},
		{"negative refresh", "CATALOG_REFRESH_INTERVAL", "-5m"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.val)
			if _, err := Load(); err == nil {
				t.Errorf("Load with %s=%q: expected error", tt.key, tt.val)
			}
		})
	}
}

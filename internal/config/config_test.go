package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.App.Port != "8080" {
		t.Errorf("default port = %q, want 8080", cfg.App.Port)
	}
	if cfg.App.Addr() != "0.0.0.0:8080" {
		t.Errorf("Addr() = %q", cfg.App.Addr())
	}
	if cfg.App.RequestTimeout() != 30*time.Second {
		t.Errorf("RequestTimeout() = %v, want 30s", cfg.App.RequestTimeout())
	}
	if cfg.Auth.AccessTokenTTLMinutes != 1440 {
		t.Errorf("token ttl = %d, want 1440", cfg.Auth.AccessTokenTTLMinutes)
	}
	if cfg.Redis.ReportCacheTTL != 30*time.Second {
		t.Errorf("report cache ttl = %v, want 30s", cfg.Redis.ReportCacheTTL)
	}
	if !cfg.Postgres.RunMigrations {
		t.Error("migrations should default to enabled")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "9999")
	t.Setenv("HTTP_REQUEST_TIMEOUT_SECONDS", "5")
	t.Setenv("SEED_ON_STARTUP", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.App.Port != "9999" {
		t.Errorf("port = %q, want 9999", cfg.App.Port)
	}
	if cfg.App.RequestTimeout() != 5*time.Second {
		t.Errorf("RequestTimeout() = %v, want 5s", cfg.App.RequestTimeout())
	}
	if cfg.Seed.Enabled {
		t.Error("seed should be disabled by env override")
	}
}

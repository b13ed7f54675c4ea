package config

import (
	"testing"
	"time"
)

func validConfig() Config {
	return Config{
		Addr:               ":8080",
		DatabaseURL:        "postgres://localhost/perfeval",
		JWTSecret:          "secret",
		Environment:        "development",
		SeedAdminUsername:  "admin",
		SeedAdminPassword:  "pw",
		RunSeed:            true,
		MaxBodyBytes:       1 << 20,
		RateLimitPerMinute: 60,
		SessionTTL:         24 * time.Hour,
	}
}

func TestValidateOK(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
}

func TestValidateRequiresDatabaseURL(t *testing.T) {
	cfg := validConfig()
	cfg.DatabaseURL = "  "
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing DATABASE_URL")
	}
}

func TestValidateProductionRequiresSecret(t *testing.T) {
	cfg := validConfig()
	cfg.Environment = "production"
	cfg.JWTSecret = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for empty JWT secret in production")
	}
}

func TestValidateProductionRequiresSeedPassword(t *testing.T) {
	cfg := validConfig()
	cfg.Environment = "production"
	cfg.SeedAdminPassword = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for default seed password in production")
	}

	cfg.RunSeed = false
	if err := cfg.Validate(); err != nil {
		t.Fatalf("disabling seeding should satisfy the check, got %v", err)
	}
}

func TestValidateBounds(t *testing.T) {
	cfg := validConfig()
	cfg.MaxBodyBytes = 100
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for tiny body limit")
	}

	cfg = validConfig()
	cfg.RateLimitPerMinute = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for zero rate limit")
	}

	cfg = validConfig()
	cfg.SessionTTL = time.Second
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for sub-minute session TTL")
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.Addr == "" {
		t.Fatal("expected default address")
	}
	if cfg.SessionTTL != 24*time.Hour {
		t.Fatalf("expected 24h default session TTL, got %v", cfg.SessionTTL)
	}
	if !cfg.RunMigrations {
		t.Fatal("migrations should default to enabled")
	}
}

package config

import "testing"

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "DB_HOST", "DEFAULT_CURRENCY", "MIGRATIONS_PATH", "CORS_ALLOWED_ORIGIN"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("expected default port 8080, got %s", cfg.Port)
	}
	if cfg.DBHost != "localhost" {
		t.Errorf("expected default db host, got %s", cfg.DBHost)
	}
	if cfg.DefaultCurrency != "USD" {
		t.Errorf("expected USD default currency, got %s", cfg.DefaultCurrency)
	}
	if cfg.MigrationsPath != "migrations" {
		t.Errorf("expected migrations path, got %s", cfg.MigrationsPath)
	}
	if cfg.CORSAllowedOrigin != "*" {
		t.Errorf("expected wildcard CORS origin, got %s", cfg.CORSAllowedOrigin)
	}
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DEFAULT_CURRENCY", "eur")
	t.Setenv("DB_NAME", "season")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "9090" {
		t.Errorf("expected port 9090, got %s", cfg.Port)
	}
	if cfg.DefaultCurrency != "EUR" {
		t.Errorf("expected currency upper-cased, got %s", cfg.DefaultCurrency)
	}
	if cfg.DBName != "season" {
		t.Errorf("expected db name season, got %s", cfg.DBName)
	}
	if Get() != cfg {
		t.Error("Get should return the last loaded config")
	}
}

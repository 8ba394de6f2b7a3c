// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cliparse

import (
	"testing"
)

func TestParseFlagsFromArgs(t *testing.T) {
	cfg, err := ParseFlags([]string{
		"-p", "8080",
		"-d", "diddle.db",
		"-t", "sqlite",
		"-b", "https://diddle.example.com",
	})
	if err != nil {
		t.Fatalf("ParseFlags failed: %v", err)
	}

	if cfg.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Port)
	}
	if cfg.DatabaseURL != "diddle.db" {
		t.Errorf("DatabaseURL = %q", cfg.DatabaseURL)
	}
	if cfg.DatabaseType != "sqlite" {
		t.Errorf("DatabaseType = %q", cfg.DatabaseType)
	}
	if cfg.BaseURL != "https://diddle.example.com" {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.Email.Enabled {
		t.Error("email enabled without any EMAIL_ variable")
	}
}

func TestParseFlagsEnvFallback(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DATABASE_URL", "postgres://localhost/diddle")
	t.Setenv("DATABASE_TYPE", "postgres")
	t.Setenv("BASE_URL", "https://diddle.example.com")

	cfg, err := ParseFlags(nil)
	if err != nil {
		t.Fatalf("ParseFlags failed: %v", err)
	}
	if cfg.Port != 9090 || cfg.DatabaseType != "postgres" {
		t.Errorf("env fallback not applied: %+v", cfg)
	}
}

func TestParseFlagsDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DATABASE_TYPE", "")

	cfg, err := ParseFlags([]string{"-d", "diddle.db", "-b", "https://diddle.example.com"})
	if err != nil {
		t.Fatalf("ParseFlags failed: %v", err)
	}
	if cfg.Port != 3324 {
		t.Errorf("default port = %d, want 3324", cfg.Port)
	}
	if cfg.DatabaseType != "sqlite" {
		t.Errorf("default database type = %q, want sqlite", cfg.DatabaseType)
	}
}

func TestParseFlagsRequiredSettings(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("BASE_URL", "")

	if _, err := ParseFlags([]string{"-b", "https://x"}); err == nil {
		t.Error("missing database URL accepted")
	}
	if _, err := ParseFlags([]string{"-d", "diddle.db"}); err == nil {
		t.Error("missing base URL accepted")
	}
	if _, err := ParseFlags([]string{"-d", "x", "-b", "https://x", "-t", "oracle"}); err == nil {
		t.Error("unsupported database type accepted")
	}
}

func TestParseFlagsEmailAllOrNothing(t *testing.T) {
	t.Setenv("DATABASE_URL", "diddle.db")
	t.Setenv("BASE_URL", "https://diddle.example.com")
	t.Setenv("EMAIL_HOST", "smtp.example.com")

	// Only one EMAIL_ variable set: hard error, not a partial setup.
	if _, err := ParseFlags(nil); err == nil {
		t.Fatal("partial EMAIL_ configuration accepted")
	}

	t.Setenv("EMAIL_PORT", "587")
	t.Setenv("EMAIL_HOST_USER", "diddle@example.com")
	t.Setenv("EMAIL_HOST_PASSWORD", "hunter2")
	t.Setenv("EMAIL_USE_TLS", "true")
	t.Setenv("EMAIL_MESSAGE_FROM", "diddle@example.com")

	cfg, err := ParseFlags(nil)
	if err != nil {
		t.Fatalf("ParseFlags failed: %v", err)
	}
	if !cfg.Email.Enabled {
		t.Error("email not enabled with full EMAIL_ configuration")
	}
	if cfg.Email.Port != 587 || !cfg.Email.UseTLS {
		t.Errorf("email config = %+v", cfg.Email)
	}
}

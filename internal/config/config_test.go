package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing test config: %v", err)
	}
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	path := writeConfig(t, `
site_name: "OnboardHQ"
base_url: "http://localhost:8080/"
onboarding_api:
  base_url: "http://localhost:3000/api/"
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Port != 8080 {
		t.Errorf("Port = %d, want default 8080", cfg.Port)
	}
	if cfg.BaseURL != "http://localhost:8080" {
		t.Errorf("BaseURL = %q, want trailing slash trimmed", cfg.BaseURL)
	}
	if cfg.API.BaseURL != "http://localhost:3000/api" {
		t.Errorf("API.BaseURL = %q, want trailing slash trimmed", cfg.API.BaseURL)
	}
	if cfg.API.RequestTimeoutSeconds != 15 {
		t.Errorf("RequestTimeoutSeconds = %d, want default 15", cfg.API.RequestTimeoutSeconds)
	}
	if cfg.LoginRateLimit.RPS != 1 || cfg.LoginRateLimit.Burst != 5 {
		t.Errorf("LoginRateLimit = %+v, want defaults 1/5", cfg.LoginRateLimit)
	}
	if cfg.CurrentYear == 0 {
		t.Error("CurrentYear not defaulted")
	}
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("PORT", "9999")
	t.Setenv("ONBOARDING_API_URL", "http://api.internal/v1")

	path := writeConfig(t, `
base_url: "http://localhost:8080"
port: 8080
onboarding_api:
  base_url: "http://localhost:3000/api"
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Port != 9999 {
		t.Errorf("Port = %d, want env override 9999", cfg.Port)
	}
	if cfg.API.BaseURL != "http://api.internal/v1" {
		t.Errorf("API.BaseURL = %q, want env override", cfg.API.BaseURL)
	}
}

func TestLoadConfigProductionRequirements(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("CSRF_AUTH_KEY", "0123456789abcdef0123456789abcdef")

	path := writeConfig(t, `
base_url: "http://insecure.example.com"
onboarding_api:
  base_url: "https://api.example.com"
`)
	if _, err := LoadConfig(path); err == nil {
		t.Error("expected error for non-https BASE_URL in production")
	}

	t.Setenv("CSRF_AUTH_KEY", "")
	path = writeConfig(t, `
base_url: "https://portal.example.com"
onboarding_api:
  base_url: "https://api.example.com"
`)
	if _, err := LoadConfig(path); err == nil {
		t.Error("expected error for missing CSRF_AUTH_KEY in production")
	}
}

func TestLoadConfigMissingAPIBaseURL(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("ONBOARDING_API_URL", "")
	path := writeConfig(t, `
base_url: "http://localhost:8080"
`)
	if _, err := LoadConfig(path); err == nil {
		t.Error("expected error when the onboarding API URL is missing")
	}
}

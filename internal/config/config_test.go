package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadUsesDefaultsAndYAMLOverrides(t *testing.T) {
	clearConfigEnv(t)

	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.yaml")
	yaml := `
api:
  base_url: https://candid.example.org/api/v1
  access_token: yaml-token
redis:
  addr: localhost:6380
queue:
  claim_ttl: 45m
`
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatalf("write temp config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.API.BaseURL != "https://candid.example.org/api/v1" {
		t.Fatalf("unexpected api base url: %s", cfg.API.BaseURL)
	}
	if cfg.API.AccessToken != "yaml-token" {
		t.Fatalf("unexpected api token: %s", cfg.API.AccessToken)
	}
	if cfg.Redis.Addr != "localhost:6380" {
		t.Fatalf("unexpected redis addr: %s", cfg.Redis.Addr)
	}
	if cfg.Queue.ClaimTTL != 45*time.Minute {
		t.Fatalf("unexpected claim ttl: %s", cfg.Queue.ClaimTTL)
	}

	if cfg.API.Timeout != 8*time.Second {
		t.Fatalf("api timeout default should stay 8s, got %s", cfg.API.Timeout)
	}
	if !cfg.Queue.LoadOnStart {
		t.Fatalf("load_on_start default should stay true")
	}
	if cfg.HTTP.Addr != "127.0.0.1:8087" {
		t.Fatalf("http addr default should stay, got %s", cfg.HTTP.Addr)
	}
}

func TestLoadMissingFileFallsBackToDefaults(t *testing.T) {
	clearConfigEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Queue.ClaimTTL != 30*time.Minute {
		t.Fatalf("unexpected default claim ttl: %s", cfg.Queue.ClaimTTL)
	}
	if cfg.Log.Level != "info" {
		t.Fatalf("unexpected default log level: %s", cfg.Log.Level)
	}
}

func TestLoadAppliesEnvOverrides(t *testing.T) {
	clearConfigEnv(t)

	t.Setenv("API_BASE_URL", "https://env.example.org")
	t.Setenv("API_ACCESS_TOKEN", "env-token")
	t.Setenv("API_TIMEOUT", "3s")
	t.Setenv("REDIS_DB", "4")
	t.Setenv("QUEUE_LOAD_ON_START", "false")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.API.BaseURL != "https://env.example.org" || cfg.API.AccessToken != "env-token" {
		t.Fatalf("unexpected api config: %+v", cfg.API)
	}
	if cfg.API.Timeout != 3*time.Second {
		t.Fatalf("unexpected api timeout: %s", cfg.API.Timeout)
	}
	if cfg.Redis.DB != 4 {
		t.Fatalf("unexpected redis db: %d", cfg.Redis.DB)
	}
	if cfg.Queue.LoadOnStart {
		t.Fatalf("expected load_on_start override to false")
	}
	if cfg.Log.Level != "debug" {
		t.Fatalf("unexpected log level: %s", cfg.Log.Level)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestLoadRejectsInvalidEnvValues(t *testing.T) {
	testCases := []struct {
		key   string
		value string
	}{
		{key: "API_TIMEOUT", value: "soon"},
		{key: "REDIS_DB", value: "one"},
		{key: "QUEUE_LOAD_ON_START", value: "maybe"},
	}

	for _, tc := range testCases {
		t.Run(tc.key, func(t *testing.T) {
			clearConfigEnv(t)
			t.Setenv(tc.key, tc.value)

			if _, err := Load(""); err == nil {
				t.Fatalf("expected error for %s=%s", tc.key, tc.value)
			}
		})
	}
}

func TestValidateRequiresToken(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error without access token")
	}

	cfg.API.AccessToken = "token"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}
}

func clearConfigEnv(t *testing.T) {
	t.Helper()

	keys := []string{
		"APP_ENV",
		"HTTP_ADDR",
		"HTTP_READ_TIMEOUT",
		"HTTP_WRITE_TIMEOUT",
		"HTTP_IDLE_TIMEOUT",
		"HTTP_SHUTDOWN_TIMEOUT",
		"LOG_LEVEL",
		"API_BASE_URL",
		"API_ACCESS_TOKEN",
		"API_TIMEOUT",
		"POSTGRES_DSN",
		"REDIS_ADDR",
		"REDIS_PASSWORD",
		"REDIS_DB",
		"QUEUE_CLAIM_TTL",
		"QUEUE_LOAD_ON_START",
		"QUEUE_AUDIT_RECENT_SIZE",
	}
	for _, key := range keys {
		t.Setenv(key, "")
	}
}

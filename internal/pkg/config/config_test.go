package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{}))
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.API.BaseURL != "http://127.0.0.1:8080" {
		t.Fatalf("unexpected base url %q", cfg.API.BaseURL)
	}
	if cfg.API.Timeout != 10*time.Second {
		t.Fatalf("expected 10s timeout, got %v", cfg.API.Timeout)
	}
	if cfg.Session.TTL != 24*time.Hour || cfg.Session.CheckInterval != 5*time.Minute {
		t.Fatalf("unexpected session windows: %+v", cfg.Session)
	}
	if cfg.Session.ExpiryPolicy != PolicyDowngrade {
		t.Fatalf("expected downgrade policy, got %q", cfg.Session.ExpiryPolicy)
	}
	if cfg.Credentials.Store != StoreFile {
		t.Fatalf("expected file store, got %q", cfg.Credentials.Store)
	}
}

func TestLoadFrom_PrefixedOverrides(t *testing.T) {
	cfg, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"SCOUT_API_BASE_URL":          "https://startup-scout.example/api",
		"SCOUT_SESSION_TTL":           "1h",
		"SCOUT_SESSION_EXPIRY_POLICY": "require-login",
		"SCOUT_CREDENTIAL_STORE":      "redis",
		"SCOUT_REDIS_DB":              "3",
		"SCOUT_REDIS_USERNAME":        "scout",
		"SCOUT_REDIS_PASSWORD":        "hunter2",
		"API_BASE_URL":                "http://ignored",
	}))
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.API.BaseURL != "https://startup-scout.example/api" {
		t.Fatalf("prefix not applied: %q", cfg.API.BaseURL)
	}
	if cfg.Session.TTL != time.Hour {
		t.Fatalf("expected 1h ttl, got %v", cfg.Session.TTL)
	}
	if cfg.Session.ExpiryPolicy != PolicyRequireLogin {
		t.Fatalf("unexpected policy %q", cfg.Session.ExpiryPolicy)
	}
	if cfg.Redis.DB != 3 {
		t.Fatalf("expected redis db 3, got %d", cfg.Redis.DB)
	}
	if cfg.Redis.Username != "scout" || cfg.Redis.Password != "hunter2" {
		t.Fatalf("unexpected redis auth %q/%q", cfg.Redis.Username, cfg.Redis.Password)
	}
	if cfg.Redis.DialTimeout != 3*time.Second {
		t.Fatalf("expected default dial timeout, got %v", cfg.Redis.DialTimeout)
	}
}

func TestLoadFrom_RejectsUnknownPolicy(t *testing.T) {
	_, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"SCOUT_SESSION_EXPIRY_POLICY": "redirect-twice",
	}))
	if err == nil {
		t.Fatalf("expected error for unknown policy")
	}
}

func TestLoadFrom_RejectsUnknownStore(t *testing.T) {
	_, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"SCOUT_CREDENTIAL_STORE": "localstorage",
	}))
	if err == nil {
		t.Fatalf("expected error for unknown store")
	}
}

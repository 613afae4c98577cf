package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config file: %v", err)
	}
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("default port = %q, want 8080", cfg.Server.Port)
	}
	if cfg.Routing.Workers != 4 {
		t.Errorf("default routing workers = %d, want 4", cfg.Routing.Workers)
	}
	if !cfg.Match.RevertItemOnReject {
		t.Error("reject reversion should default to enabled")
	}
}

func TestLoadConfigFileAndEnvOverride(t *testing.T) {
	path := writeConfigFile(t, `
server:
  port: "9090"
jwt:
  secret: file-secret
routing:
  base_url: http://osrm.internal:5000
  workers: 2
match:
  revert_item_on_reject: false
`)
	t.Setenv("SERVER_PORT", "7070")
	t.Setenv("ROUTING_WORKERS", "8")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Server.Port != "7070" {
		t.Errorf("env must override file: port = %q, want 7070", cfg.Server.Port)
	}
	if cfg.Routing.Workers != 8 {
		t.Errorf("env must override file: workers = %d, want 8", cfg.Routing.Workers)
	}
	if cfg.Routing.BaseURL != "http://osrm.internal:5000" {
		t.Errorf("routing base URL = %q", cfg.Routing.BaseURL)
	}
	if cfg.Match.RevertItemOnReject {
		t.Error("file should disable reject reversion")
	}
}

func TestLoadConfigRequiresJWTSecret(t *testing.T) {
	path := writeConfigFile(t, "server:\n  port: \"9090\"\n")
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("LoadConfig() must fail without a JWT secret")
	}
}

func TestLoadConfigRejectsBadDurations(t *testing.T) {
	path := writeConfigFile(t, `
jwt:
  secret: s
  access_token_expiration: soon
`)
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("LoadConfig() must reject unparseable durations")
	}
}

func TestPostgresConnectionString(t *testing.T) {
	cfg := &Config{}
	setDefaults(cfg)
	cfg.Database.User = "dona"
	cfg.Database.Password = "pw"
	cfg.Database.DBName = "escuelas"

	got := cfg.GetPostgresConnectionString()
	want := "postgres://dona:pw@localhost:5432/escuelas?sslmode=disable"
	if got != want {
		t.Errorf("GetPostgresConnectionString() = %q, want %q", got, want)
	}
}

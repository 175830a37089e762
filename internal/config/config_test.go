// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package config

import (
	"strings"
	"testing"
)

// clearEnv blanks every variable Load reads so tests see pure defaults.
// envOrDefault treats empty the same as unset.
func clearEnv(t *testing.T) {
	t.Helper()
	envVars := []string{
		"APP_HOST", "APP_PORT", "APP_ENV",
		"POSTGRES_HOST", "POSTGRES_PORT", "POSTGRES_USER", "POSTGRES_PASSWORD", "POSTGRES_DB",
		"VALKEY_HOST", "VALKEY_PORT", "VALKEY_PASSWORD",
		"AI_PROVIDER",
		"OPENAI_API_KEY", "OPENAI_MODEL", "OPENAI_BASE_URL",
		"STABILITY_API_KEY", "STABILITY_MODEL", "STABILITY_BASE_URL",
		"TOGETHER_API_KEY", "TOGETHER_MODEL", "TOGETHER_BASE_URL",
		"CLAUDE_API_KEY", "CLAUDE_MODEL", "CLAUDE_BASE_URL",
		"S3_ENDPOINT", "S3_REGION", "S3_ACCESS_KEY", "S3_SECRET_KEY",
		"S3_BUCKET_PUBLIC", "S3_BUCKET_PRIVATE", "S3_PUBLIC_URL",
		"POD_PROVIDER", "PRINTFUL_API_KEY", "PRINTFUL_BASE_URL",
		"PRINTIFY_API_KEY", "PRINTIFY_BASE_URL", "PRINTIFY_SHOP_ID",
	}
	for _, key := range envVars {
		t.Setenv(key, "")
	}
}

// TestLoad_Defaults verifies that Load returns sensible development defaults
// when no environment variables are set.
func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	checks := []struct {
		name string
		got  string
		want string
	}{
		{"Host", cfg.Host, "0.0.0.0"},
		{"Port", cfg.Port, "8080"},
		{"Env", cfg.Env, "development"},
		{"DBHost", cfg.DBHost, "localhost"},
		{"DBPort", cfg.DBPort, "5432"},
		{"DBUser", cfg.DBUser, "flowbotz"},
		{"DBPassword", cfg.DBPassword, "changeme"},
		{"DBName", cfg.DBName, "flowbotz"},
		{"ValkeyHost", cfg.ValkeyHost, "localhost"},
		{"ValkeyPort", cfg.ValkeyPort, "6379"},
		{"AIProvider", cfg.AIProvider, "openai"},
		// OPENAI_MODEL drives the chat completions used for prompt
		// enhancement; the DALL-E image model is fixed in the provider.
		// A non-chat default here breaks every enhancement call.
		{"OpenAIModel", cfg.OpenAIModel, "gpt-4o-mini"},
		{"PODProvider", cfg.PODProvider, "printful"},
		{"S3Region", cfg.S3Region, "us-east-1"},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %q, want %q", c.name, c.got, c.want)
		}
	}

	if !cfg.IsDev() {
		t.Error("IsDev() = false, want true for defaults")
	}
	if cfg.HasStorage() {
		t.Error("HasStorage() = true with no S3 credentials")
	}
}

// TestLoad_ProductionRequiresPassword: the changeme default must be
// rejected in production.
func TestLoad_ProductionRequiresPassword(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_ENV", "production")

	if _, err := Load(); err == nil {
		t.Fatal("Load() = nil error in production with default password")
	}

	t.Setenv("POSTGRES_PASSWORD", "s3cret")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}
	if cfg.IsDev() {
		t.Error("IsDev() = true in production")
	}
}

// TestDSN verifies the PostgreSQL connection string format.
func TestDSN(t *testing.T) {
	cfg := &Config{
		DBUser: "u", DBPassword: "p", DBHost: "db", DBPort: "5433", DBName: "gallery",
	}
	want := "postgres://u:p@db:5433/gallery?sslmode=disable"
	if got := cfg.DSN(); got != want {
		t.Errorf("DSN() = %q, want %q", got, want)
	}
}

// TestAddr verifies host:port joining.
func TestAddr(t *testing.T) {
	cfg := &Config{Host: "127.0.0.1", Port: "9090"}
	if got := cfg.Addr(); got != "127.0.0.1:9090" {
		t.Errorf("Addr() = %q, want 127.0.0.1:9090", got)
	}
}

// TestHasStorage requires endpoint and both credentials.
func TestHasStorage(t *testing.T) {
	cfg := &Config{S3Endpoint: "https://s3.example.com", S3AccessKey: "ak"}
	if cfg.HasStorage() {
		t.Error("HasStorage() = true without secret key")
	}
	cfg.S3SecretKey = "sk"
	if !cfg.HasStorage() {
		t.Error("HasStorage() = false with full credentials")
	}
	if strings.Contains(cfg.S3Endpoint, " ") {
		t.Error("endpoint sanity")
	}
}

// Package config handles application configuration loading from environment
// variables. It provides a centralized Config struct used across the application.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config holds all application configuration values loaded from the environment.
type Config struct {
	// Server settings
	Host string
	Port string
	Env  string // "development", "production", "testing"

	// PostgreSQL connection
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Valkey (Redis-compatible cache + sessions)
	ValkeyHost     string
	ValkeyPort     string
	ValkeyPassword string

	// AI provider settings. Image generation uses the active provider;
	// the Claude text provider enhances prompts before generation.
	AIProvider string // "openai", "stability", "together"

	OpenAIKey     string
	OpenAIModel   string
	OpenAIBaseURL string

	StabilityKey     string
	StabilityModel   string
	StabilityBaseURL string

	TogetherKey     string
	TogetherModel   string
	TogetherBaseURL string

	ClaudeKey     string
	ClaudeModel   string
	ClaudeBaseURL string

	// S3-compatible object storage for generated images
	S3Endpoint      string
	S3Region        string
	S3AccessKey     string
	S3SecretKey     string
	S3BucketPublic  string
	S3BucketPrivate string
	S3PublicURL     string

	// Print-on-demand fulfillment
	PODProvider    string // "printful" or "printify"
	PrintfulKey    string
	PrintfulBase   string
	PrintifyKey    string
	PrintifyBase   string
	PrintifyShopID string
}

// Load reads configuration from environment variables, applying defaults
// for development where appropriate. A .env file in the working directory
// is loaded first if present. Returns an error if critical values are
// missing in production mode.
func Load() (*Config, error) {
	// Best-effort .env loading; deployed environments set variables directly.
	_ = godotenv.Load()

	cfg := &Config{
		Host: envOrDefault("APP_HOST", "0.0.0.0"),
		Port: envOrDefault("APP_PORT", "8080"),
		Env:  envOrDefault("APP_ENV", "development"),

		DBHost:     envOrDefault("POSTGRES_HOST", "localhost"),
		DBPort:     envOrDefault("POSTGRES_PORT", "5432"),
		DBUser:     envOrDefault("POSTGRES_USER", "flowbotz"),
		DBPassword: envOrDefault("POSTGRES_PASSWORD", "changeme"),
		DBName:     envOrDefault("POSTGRES_DB", "flowbotz"),

		ValkeyHost:     envOrDefault("VALKEY_HOST", "localhost"),
		ValkeyPort:     envOrDefault("VALKEY_PORT", "6379"),
		ValkeyPassword: os.Getenv("VALKEY_PASSWORD"),

		AIProvider: envOrDefault("AI_PROVIDER", "openai"),

		OpenAIKey:     os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:   envOrDefault("OPENAI_MODEL", "gpt-4o-mini"),
		OpenAIBaseURL: os.Getenv("OPENAI_BASE_URL"),

		StabilityKey:     os.Getenv("STABILITY_API_KEY"),
		StabilityModel:   envOrDefault("STABILITY_MODEL", "sd3.5-large"),
		StabilityBaseURL: os.Getenv("STABILITY_BASE_URL"),

		TogetherKey:     os.Getenv("TOGETHER_API_KEY"),
		TogetherModel:   envOrDefault("TOGETHER_MODEL", "black-forest-labs/FLUX.1-schnell"),
		TogetherBaseURL: os.Getenv("TOGETHER_BASE_URL"),

		ClaudeKey:     os.Getenv("CLAUDE_API_KEY"),
		ClaudeModel:   envOrDefault("CLAUDE_MODEL", "claude-sonnet-4-20250514"),
		ClaudeBaseURL: os.Getenv("CLAUDE_BASE_URL"),

		S3Endpoint:      os.Getenv("S3_ENDPOINT"),
		S3Region:        envOrDefault("S3_REGION", "us-east-1"),
		S3AccessKey:     os.Getenv("S3_ACCESS_KEY"),
		S3SecretKey:     os.Getenv("S3_SECRET_KEY"),
		S3BucketPublic:  envOrDefault("S3_BUCKET_PUBLIC", "flowbotz-public"),
		S3BucketPrivate: envOrDefault("S3_BUCKET_PRIVATE", "flowbotz-private"),
		S3PublicURL:     os.Getenv("S3_PUBLIC_URL"),

		PODProvider:    envOrDefault("POD_PROVIDER", "printful"),
		PrintfulKey:    os.Getenv("PRINTFUL_API_KEY"),
		PrintfulBase:   os.Getenv("PRINTFUL_BASE_URL"),
		PrintifyKey:    os.Getenv("PRINTIFY_API_KEY"),
		PrintifyBase:   os.Getenv("PRINTIFY_BASE_URL"),
		PrintifyShopID: os.Getenv("PRINTIFY_SHOP_ID"),
	}

	if cfg.Env == "production" {
		if cfg.DBPassword == "changeme" {
			return nil, fmt.Errorf("POSTGRES_PASSWORD must be set in production")
		}
	}

	return cfg, nil
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName,
	)
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// HasStorage reports whether object storage is configured. Without it the
// service still serves the gallery, but image generation is disabled.
func (c *Config) HasStorage() bool {
	return c.S3Endpoint != "" && c.S3AccessKey != "" && c.S3SecretKey != ""
}

// envOrDefault reads an environment variable, returning a fallback if unset or empty.
func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Package config loads application configuration from the environment.
// A local .env file is honored in development; real deployments set the
// variables directly.
package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config holds the application-level settings. Database pool tuning lives in
// the database package; security limits live in the security package.
type Config struct {
	Port        string // HTTP listen port
	DatabaseURL string // PostgreSQL connection string
	Env         string // "development" or "production"
	TLSCertFile string // Path to TLS certificate (production)
	TLSKeyFile  string // Path to TLS key (production)
}

// Load reads configuration from the environment, first merging in a .env
// file when one exists. Missing optional values fall back to development
// defaults.
func Load() *Config {
	if err := godotenv.Load(); err == nil {
		log.Println("loaded configuration from .env")
	}

	return &Config{
		Port:        envOr("PORT", "8080"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		Env:         envOr("ENV", "development"),
		TLSCertFile: envOr("TLS_CERT_FILE", "./cert.pem"),
		TLSKeyFile:  envOr("TLS_KEY_FILE", "./key.pem"),
	}
}

// IsProduction reports whether the app runs with production settings.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

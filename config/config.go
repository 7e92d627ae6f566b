// Package config loads runtime configuration from the environment, with an
// optional .env file for development. Missing keys fall back to defaults
// that run the server standalone with a local SQLite file.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	// Port the HTTP server listens on.
	Port int
	// DBPath is the SQLite database file. Empty selects the in-memory store.
	DBPath string
	// LogLevel is one of debug, info, warn, error.
	LogLevel string
	// StrictAudit rejects confirm/reject on already-verified records
	// instead of overwriting the prior verification.
	StrictAudit bool
	// Seed loads the starter roster and category configs into empty stores.
	Seed bool
}

// Load reads .env if present, then the environment.
func Load() (*Config, error) {
	// A missing .env is fine; explicit environment always wins.
	_ = godotenv.Load()

	port, err := strconv.Atoi(getEnv("PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid PORT: %w", err)
	}

	strict, err := strconv.ParseBool(getEnv("STRICT_AUDIT", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid STRICT_AUDIT: %w", err)
	}

	seed, err := strconv.ParseBool(getEnv("SEED", "true"))
	if err != nil {
		return nil, fmt.Errorf("invalid SEED: %w", err)
	}

	return &Config{
		Port:        port,
		DBPath:      getEnv("DB_PATH", "payroll.db"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		StrictAudit: strict,
		Seed:        seed,
	}, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Port string

	// Store configuration. DBType "memory" selects the in-memory backend;
	// mysql, postgres, sqlite and sqlserver select the persistent backend.
	DBType            string
	DBHost            string
	DBPort            string
	DBDatabase        string
	DBUser            string
	DBPassword        string
	DBConnectionLimit int

	// Asset configuration for image URL resolution.
	AssetBaseURL string
}

// Load loads configuration from environment variables. A .env file in the
// working directory is applied first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:              getEnv("PORT", "3000"),
		DBType:            getEnv("DB_TYPE", "memory"),
		DBHost:            getEnv("DB_HOST", "localhost"),
		DBPort:            getEnv("DB_PORT", "3306"),
		DBDatabase:        getEnv("DB_DATABASE", ""),
		DBUser:            getEnv("DB_USER", ""),
		DBPassword:        getEnv("DB_PASSWORD", ""),
		DBConnectionLimit: getEnvAsInt("DB_CONNECTION_LIMIT", 5),
		AssetBaseURL:      getEnv("ASSET_BASE_URL", ""),
	}

	// Validate required fields per backend
	switch cfg.DBType {
	case "memory":
		// No database settings required.
	case "sqlite":
		if cfg.DBDatabase == "" {
			return nil, fmt.Errorf("DB_DATABASE is required for sqlite (file path)")
		}
	default:
		if cfg.DBDatabase == "" {
			return nil, fmt.Errorf("DB_DATABASE is required")
		}
		if cfg.DBUser == "" {
			return nil, fmt.Errorf("DB_USER is required")
		}
	}

	return cfg, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

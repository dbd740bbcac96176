// Package config provides application configuration management.
// It loads configuration from environment variables with sensible defaults.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	LocalStore LocalStoreConfig
	Session    SessionConfig
	AI         AIConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	Environment  string
}

// DatabaseConfig holds PostgreSQL configuration. An empty URL disables the
// remote store entirely.
type DatabaseConfig struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// LocalStoreConfig holds the on-device document store configuration.
type LocalStoreConfig struct {
	Path string
}

// SessionConfig holds session token configuration.
type SessionConfig struct {
	Secret      string
	TokenPath   string
	StartupWait time.Duration
	RateLimit   int
	RateWindow  time.Duration
}

// AIConfig holds the category suggestion service configuration.
type AIConfig struct {
	GeminiAPIKey string
}

// Load loads configuration from environment variables.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Host:         getEnv("SERVER_HOST", "0.0.0.0"),
			Port:         getEnvAsInt("SERVER_PORT", 8080),
			ReadTimeout:  getEnvAsDuration("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout: getEnvAsDuration("SERVER_WRITE_TIMEOUT", 15*time.Second),
			Environment:  getEnv("ENV", "development"),
		},
		Database: DatabaseConfig{
			URL:             getEnv("DATABASE_URL", ""),
			MaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
		},
		LocalStore: LocalStoreConfig{
			Path: getEnv("LOCAL_STORE_PATH", "data/pocketwatch.json"),
		},
		Session: SessionConfig{
			Secret:      getEnv("SESSION_SECRET", "change-me-in-production"),
			TokenPath:   getEnv("SESSION_TOKEN_PATH", "data/session.token"),
			StartupWait: getEnvAsDuration("SESSION_STARTUP_WAIT", 3*time.Second),
			RateLimit:   getEnvAsInt("SIGNIN_RATE_LIMIT", 5),
			RateWindow:  getEnvAsDuration("SIGNIN_RATE_WINDOW", time.Minute),
		},
		AI: AIConfig{
			GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		},
	}
}

// Helper functions for environment variable parsing

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

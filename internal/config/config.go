// Package config provides application configuration loaded from
// environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Database DatabaseConfig
	Auth     AuthConfig
	App      AppConfig
}

// DatabaseConfig holds connection settings. Driver selects between the
// sqlite file database (default, dev) and PostgreSQL.
type DatabaseConfig struct {
	Driver   string // "sqlite" or "postgres"
	Path     string // sqlite file path
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// AuthConfig holds session token and PII encryption settings.
type AuthConfig struct {
	JWTSecret string
	JWTTTL    time.Duration
	// EncryptionKey is the base64-encoded 32-byte key for the PII
	// codec. Empty means a throwaway key is generated at startup,
	// which is only acceptable for non-persistent dev databases.
	EncryptionKey string
	// TokenFile is where the CLI stores the issued session token.
	TokenFile string
}

// AppConfig holds application-level settings.
type AppConfig struct {
	Dev      bool
	LogLevel string
}

// DSN returns the PostgreSQL connection string in key=value format.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// Load reads configuration from environment variables.
// It uses sensible defaults for local development.
func Load() *Config {
	return &Config{
		Database: DatabaseConfig{
			Driver:   getEnv("DB_DRIVER", "sqlite"),
			Path:     getEnv("DB_PATH", "crm.db"),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "crm"),
			Password: getEnv("DB_PASSWORD", "crm123"),
			DBName:   getEnv("DB_NAME", "crm"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Auth: AuthConfig{
			JWTSecret:     getEnv("CRM_JWT_SECRET", "change-me-in-prod"),
			JWTTTL:        time.Duration(getEnvInt("CRM_JWT_TTL_MINUTES", 60)) * time.Minute,
			EncryptionKey: getEnv("CRM_ENCRYPTION_KEY", ""),
			TokenFile:     getEnv("CRM_TOKEN_FILE", defaultTokenFile()),
		},
		App: AppConfig{
			Dev:      getEnvBool("DEV", true),
			LogLevel: getEnv("LOG_LEVEL", "info"),
		},
	}
}

// defaultTokenFile places the session token in the user's home
// directory, falling back to the working directory.
func defaultTokenFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".crm_token"
	}
	return filepath.Join(home, ".crm_token")
}

// getEnv returns the value of an environment variable or a default.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt returns the integer value of an environment variable or a default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

// getEnvBool returns the boolean value of an environment variable or a default.
// Accepts "1", "true", "yes" as true; everything else is false.
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "1" || value == "true" || value == "yes"
}

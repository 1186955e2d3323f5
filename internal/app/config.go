package app

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application-wide configuration.
type Config struct {
	// Debug enables debug logging and additional diagnostics
	Debug bool

	// LogPath overrides the default log file location
	LogPath string

	// APIVersion is the CRM REST API version for new logins. A value
	// saved in preferences takes priority over this.
	APIVersion string
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Debug:      false,
		LogPath:    "",
		APIVersion: "", // Client falls back to its default version
	}
}

// ConfigFromEnv creates a configuration from environment variables,
// reading a .env file from the working directory first when one exists.
// Reads ROWBOAT_DEBUG to enable debug mode.
func ConfigFromEnv() *Config {
	_ = godotenv.Load()

	cfg := DefaultConfig()

	// Check ROWBOAT_DEBUG environment variable
	if debugStr := os.Getenv("ROWBOAT_DEBUG"); debugStr != "" {
		if debug, err := strconv.ParseBool(debugStr); err == nil {
			cfg.Debug = debug
		}
	}

	// Check ROWBOAT_LOG_PATH environment variable
	if logPath := os.Getenv("ROWBOAT_LOG_PATH"); logPath != "" {
		cfg.LogPath = logPath
	}

	// Check ROWBOAT_API_VERSION environment variable
	if apiVersion := os.Getenv("ROWBOAT_API_VERSION"); apiVersion != "" {
		cfg.APIVersion = apiVersion
	}

	return cfg
}

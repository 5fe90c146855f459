// Package twelvedata provides a client for the Twelve Data time-series API.
package twelvedata

import (
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/joho/godotenv"
)

// DefaultBaseURL is the fixed production endpoint.
const DefaultBaseURL = "https://api.twelvedata.com"

// Environment variables consulted by LoadConfig.
const (
	envAPIKey  = "TWELVE_DATA_API_KEY"
	envBaseURL = "TWELVE_DATA_BASE_URL"
	envKeyFile = "TWELVE_DATA_KEY_FILE"
)

// Config holds configuration for the Twelve Data API client.
type Config struct {
	APIKey  string        // API key for authentication
	BaseURL string        // Base URL for the API
	Timeout time.Duration // HTTP request timeout
}

var (
	loadOnce  sync.Once
	cachedCfg Config
)

// LoadConfig resolves the client configuration once per process and caches
// it. The key is resolved in a fixed order: a key file (path from
// TWELVE_DATA_KEY_FILE, else <user config dir>/tdseries/credentials, in
// dotenv format) takes precedence over environment variables, and a
// per-request APIKey override takes precedence over both. The cached value
// is read-only after the first call.
func LoadConfig() Config {
	loadOnce.Do(func() {
		cachedCfg = resolveConfig()
	})
	return cachedCfg
}

// resolveConfig performs one resolution pass. Separate from the sync.Once
// wrapper so the resolution order is testable.
func resolveConfig() Config {
	// Overload so the key file wins over a stale environment value.
	if path := keyFilePath(); path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Overload(path); err != nil {
				slog.Warn("failed to load key file", "path", path, "error", err)
			}
		}
	}
	cfg := Config{
		APIKey:  os.Getenv(envAPIKey),
		BaseURL: os.Getenv(envBaseURL),
		Timeout: 10 * time.Second,
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	return cfg
}

func keyFilePath() string {
	if path := os.Getenv(envKeyFile); path != "" {
		return path
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "tdseries", "credentials")
}

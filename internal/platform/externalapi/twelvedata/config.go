// Package twelvedata provides a client for the Twelve Data stock market API.
package twelvedata

import (
	"os"
	"time"
)

const defaultBaseURL = "https://api.twelvedata.com"

// Config holds configuration for the Twelve Data API client.
type Config struct {
	TwelveDataAPIKey string        // API key for authentication
	BaseURL          string        // Base URL for the API (e.g., "https://api.twelvedata.com")
	Timeout          time.Duration // HTTP request timeout
}

// LoadConfig loads Twelve Data configuration from environment variables.
func LoadConfig() Config {
	cfg := Config{
		TwelveDataAPIKey: os.Getenv("TWELVE_DATA_API_KEY"),
		BaseURL:          os.Getenv("TWELVE_DATA_BASE_URL"),
		Timeout:          10 * time.Second,
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if d, err := time.ParseDuration(os.Getenv("MARKET_HTTP_TIMEOUT")); err == nil && d > 0 {
		cfg.Timeout = d
	}
	return cfg
}

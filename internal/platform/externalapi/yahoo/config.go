// Package yahoo provides a client for the Yahoo Finance chart API.
package yahoo

import (
	"os"
	"time"
)

const (
	defaultBaseURL = "https://query1.finance.yahoo.com"
	defaultTimeout = 10 * time.Second
)

// Config holds configuration for the Yahoo Finance client.
type Config struct {
	BaseURL string        // Base URL for the API (e.g., "https://query1.finance.yahoo.com")
	Timeout time.Duration // HTTP request timeout
}

// LoadConfig loads Yahoo Finance configuration from environment variables.
func LoadConfig() Config {
	cfg := Config{
		BaseURL: os.Getenv("YAHOO_BASE_URL"),
		Timeout: defaultTimeout,
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if d, err := time.ParseDuration(os.Getenv("MARKET_HTTP_TIMEOUT")); err == nil && d > 0 {
		cfg.Timeout = d
	}
	return cfg
}

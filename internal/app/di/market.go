// Package di provides dependency injection factories for creating application components.
package di

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"price_updater/internal/feature/prices/usecase"
	"price_updater/internal/platform/externalapi/twelvedata"
	"price_updater/internal/platform/externalapi/yahoo"
	infrahttp "price_updater/internal/platform/http"
)

// Supported MARKET_PROVIDER values.
const (
	ProviderYahoo      = "yahoo"
	ProviderTwelveData = "twelvedata"
)

// ErrMissingTwelveDataKey is returned when the Twelve Data provider is selected without an API key.
var ErrMissingTwelveDataKey = errors.New("TWELVE_DATA_API_KEY is not set")

// ProviderFromEnv returns the configured market-data provider, defaulting to Yahoo Finance.
func ProviderFromEnv() string {
	p := strings.ToLower(strings.TrimSpace(os.Getenv("MARKET_PROVIDER")))
	if p == "" {
		return ProviderYahoo
	}
	return p
}

// NewMarket creates a fully configured market-data provider with its HTTP client.
func NewMarket(provider string) (usecase.MarketRepository, error) {
	switch provider {
	case ProviderYahoo:
		cfg := yahoo.LoadConfig()
		return yahoo.NewYahooMarket(cfg, infrahttp.NewHTTPClient(cfg.Timeout, "")), nil
	case ProviderTwelveData:
		cfg := twelvedata.LoadConfig()
		if cfg.TwelveDataAPIKey == "" {
			return nil, ErrMissingTwelveDataKey
		}
		return twelvedata.NewTwelveDataMarket(cfg, infrahttp.NewHTTPClient(cfg.Timeout, "")), nil
	default:
		return nil, fmt.Errorf("unknown MARKET_PROVIDER %q", provider)
	}
}

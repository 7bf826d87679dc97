package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"price_updater/internal/feature/prices/domain/entity"
	"price_updater/internal/feature/prices/usecase"
	"price_updater/internal/platform/externalapi/yahoo/dto"
)

// maxBodyBytes caps how much of a response body is read.
const maxBodyBytes = 4 << 20

// YahooMarket is a MarketRepository backed by the Yahoo Finance chart endpoint.
type YahooMarket struct {
	cfg    Config
	client *http.Client
}

var _ usecase.MarketRepository = (*YahooMarket)(nil)

// NewYahooMarket creates a YahooMarket with the given configuration and HTTP client.
func NewYahooMarket(cfg Config, client *http.Client) *YahooMarket {
	return &YahooMarket{cfg: cfg, client: client}
}

// GetDailyBars returns the daily bars of the last days calendar days, oldest first.
// Bar dates are calendar dates in the exchange timezone.
func (y *YahooMarket) GetDailyBars(ctx context.Context, symbol string, days int) ([]entity.DailyBar, error) {
	q := url.Values{}
	q.Set("range", fmt.Sprintf("%dd", days))
	q.Set("interval", "1d")
	q.Set("includePrePost", "false")

	u := fmt.Sprintf("%s/v8/finance/chart/%s?%s", y.cfg.BaseURL, url.PathEscape(symbol), q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	res, err := y.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	raw, err := io.ReadAll(io.LimitReader(res.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("yahoo read body: %w", err)
	}

	var body dto.ChartResponse
	decodeErr := json.Unmarshal(raw, &body)

	if res.StatusCode >= 400 {
		if decodeErr == nil && body.Chart.Error != nil {
			return nil, fmt.Errorf("yahoo http %d: %s: %s", res.StatusCode, body.Chart.Error.Code, body.Chart.Error.Description)
		}
		return nil, fmt.Errorf("yahoo http %d", res.StatusCode)
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("yahoo decode: %w", decodeErr)
	}
	if body.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo: %s: %s", body.Chart.Error.Code, body.Chart.Error.Description)
	}
	if len(body.Chart.Result) == 0 {
		return nil, nil
	}

	return toBars(body.Chart.Result[0])
}

// toBars pairs timestamps with closes, skipping bars whose close is null.
func toBars(r dto.ChartResult) ([]entity.DailyBar, error) {
	if len(r.Timestamp) == 0 || len(r.Indicators.Quote) == 0 {
		return nil, nil
	}
	closes := r.Indicators.Quote[0].Close
	if len(closes) != len(r.Timestamp) {
		return nil, fmt.Errorf("yahoo: %d timestamps but %d closes", len(r.Timestamp), len(closes))
	}

	loc := exchangeLocation(r.Meta.ExchangeTimezoneName, r.Meta.GMTOffset)
	bars := make([]entity.DailyBar, 0, len(closes))
	for i, ts := range r.Timestamp {
		if closes[i] == nil {
			continue
		}
		bars = append(bars, entity.DailyBar{
			Date:  entity.CloseDate(time.Unix(ts, 0).In(loc)),
			Close: *closes[i],
		})
	}
	return bars, nil
}

// exchangeLocation resolves the exchange timezone, falling back to the fixed GMT offset.
func exchangeLocation(name string, gmtOffset int) *time.Location {
	if name != "" {
		if loc, err := time.LoadLocation(name); err == nil {
			return loc
		}
	}
	return time.FixedZone("", gmtOffset)
}

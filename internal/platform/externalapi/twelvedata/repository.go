package twelvedata

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"price_updater/internal/feature/prices/domain/entity"
	"price_updater/internal/feature/prices/usecase"
	"price_updater/internal/platform/externalapi/twelvedata/dto"
)

// TwelveDataMarket is a MarketRepository backed by the Twelve Data API.
type TwelveDataMarket struct {
	cfg    Config
	client *http.Client
}

var _ usecase.MarketRepository = (*TwelveDataMarket)(nil)

// NewTwelveDataMarket creates a TwelveDataMarket with the given configuration and HTTP client.
func NewTwelveDataMarket(cfg Config, client *http.Client) *TwelveDataMarket {
	return &TwelveDataMarket{cfg: cfg, client: client}
}

// GetDailyBars returns up to days daily bars, newest first as Twelve Data orders them.
// Datetimes are already exchange-local calendar dates.
func (t *TwelveDataMarket) GetDailyBars(ctx context.Context, symbol string, days int) ([]entity.DailyBar, error) {
	q := url.Values{}
	q.Set("symbol", symbol)
	q.Set("interval", "1day")
	q.Set("outputsize", strconv.Itoa(days))
	q.Set("apikey", t.cfg.TwelveDataAPIKey)

	u := fmt.Sprintf("%s/time_series?%s", t.cfg.BaseURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	res, err := t.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("twelvedata http %d", res.StatusCode)
	}

	var body dto.TimeSeriesResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, err
	}
	if body.Status == "error" {
		return nil, fmt.Errorf("twelvedata: %s (code %d)", body.Message, body.Code)
	}

	bars := make([]entity.DailyBar, 0, len(body.Values))
	for _, v := range body.Values {
		d, err := parseDate(v.Datetime)
		if err != nil {
			return nil, fmt.Errorf("parse time %q: %w", v.Datetime, err)
		}
		c, err := strconv.ParseFloat(v.Close, 64)
		if err != nil {
			return nil, fmt.Errorf("parse close %q: %w", v.Close, err)
		}
		bars = append(bars, entity.DailyBar{Date: d, Close: c})
	}
	return bars, nil
}

func parseDate(s string) (time.Time, error) {
	tm, err := time.Parse("2006-01-02 15:04:05", s)
	if err != nil {
		tm, err = time.Parse(entity.DateLayout, s)
		if err != nil {
			return time.Time{}, err
		}
	}
	return entity.CloseDate(tm), nil
}

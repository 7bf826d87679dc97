package usecase

import (
	"context"
	"sort"

	"price_updater/internal/feature/prices/domain/entity"
)

// fetchWindowDays is how many calendar days of daily bars are requested per symbol.
const fetchWindowDays = 5

// MarketRepository fetches daily bars from an external market-data provider.
// Interfaces are defined by the consumer (usecase), not the provider (adapters).
type MarketRepository interface {
	GetDailyBars(ctx context.Context, symbol string, days int) ([]entity.DailyBar, error)
}

// PriceFetcher resolves the latest daily close for a symbol.
// Provider faults never escape it; they come back as a failed FetchResult.
type PriceFetcher struct {
	market MarketRepository
}

// NewPriceFetcher creates a PriceFetcher over the given provider.
func NewPriceFetcher(market MarketRepository) *PriceFetcher {
	return &PriceFetcher{market: market}
}

// FetchLatest requests the last few days of daily bars and returns the chronologically last one.
func (f *PriceFetcher) FetchLatest(ctx context.Context, symbol string) (res entity.FetchResult) {
	defer func() {
		if r := recover(); r != nil {
			res = entity.FetchFailure(entity.ReasonProvider, panicError{value: r})
		}
	}()

	bars, err := f.market.GetDailyBars(ctx, symbol, fetchWindowDays)
	if err != nil {
		return entity.FetchFailure(entity.ReasonProvider, err)
	}
	if len(bars) == 0 {
		return entity.FetchFailure(entity.ReasonNoData, entity.ErrNoData)
	}

	sorted := make([]entity.DailyBar, len(bars))
	copy(sorted, bars)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})
	last := sorted[len(sorted)-1]
	last.Date = entity.CloseDate(last.Date)
	return entity.FetchSuccess(last)
}

package usecase

import (
	"context"
	"errors"
	"time"

	"price_updater/internal/feature/prices/domain/entity"
)

var (
	ErrMarketAPI = errors.New("market API error")
	ErrDB        = errors.New("database error")
)

// mockMarketRepository is a mock implementation of the MarketRepository interface.
type mockMarketRepository struct {
	GetDailyBarsFunc  func(ctx context.Context, symbol string, days int) ([]entity.DailyBar, error)
	GetDailyBarsCalls []string
}

func (m *mockMarketRepository) GetDailyBars(ctx context.Context, symbol string, days int) ([]entity.DailyBar, error) {
	m.GetDailyBarsCalls = append(m.GetDailyBarsCalls, symbol)
	if m.GetDailyBarsFunc != nil {
		return m.GetDailyBarsFunc(ctx, symbol, days)
	}
	return nil, errors.New("GetDailyBarsFunc is not implemented")
}

// mockInstrumentRepository is a mock implementation of the InstrumentRepository interface.
type mockInstrumentRepository struct {
	ListTrackedFunc func(ctx context.Context) ([]entity.Instrument, error)
}

func (m *mockInstrumentRepository) ListTracked(ctx context.Context) ([]entity.Instrument, error) {
	if m.ListTrackedFunc != nil {
		return m.ListTrackedFunc(ctx)
	}
	return nil, nil
}

type upsertCall struct {
	InstrumentID uint
	Bar          entity.DailyBar
}

// mockPriceRepository is a mock implementation of the PriceRepository interface.
type mockPriceRepository struct {
	UpsertFunc  func(ctx context.Context, instrumentID uint, bar entity.DailyBar) (entity.UpsertAction, error)
	UpsertCalls []upsertCall
}

func (m *mockPriceRepository) Upsert(ctx context.Context, instrumentID uint, bar entity.DailyBar) (entity.UpsertAction, error) {
	m.UpsertCalls = append(m.UpsertCalls, upsertCall{InstrumentID: instrumentID, Bar: bar})
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, instrumentID, bar)
	}
	return entity.ActionInsert, nil
}

type touchCall struct {
	At          time.Time
	MarketHours bool
}

// mockStatusRepository is a mock implementation of the StatusRepository interface.
type mockStatusRepository struct {
	TouchFunc  func(ctx context.Context, at time.Time, marketHours bool) error
	TouchCalls []touchCall
}

func (m *mockStatusRepository) Touch(ctx context.Context, at time.Time, marketHours bool) error {
	m.TouchCalls = append(m.TouchCalls, touchCall{At: at, MarketHours: marketHours})
	if m.TouchFunc != nil {
		return m.TouchFunc(ctx, at, marketHours)
	}
	return nil
}

func strPtr(s string) *string {
	return &s
}

func day(s string) time.Time {
	d, err := entity.ParseCloseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

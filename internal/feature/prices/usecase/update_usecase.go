// Package usecase implements the daily close update job.
package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"price_updater/internal/feature/prices/domain/entity"
)

// statusWriteTimeout bounds the heartbeat write when the run context is already done.
const statusWriteTimeout = 10 * time.Second

// InstrumentRepository lists the instruments whose prices are tracked.
type InstrumentRepository interface {
	ListTracked(ctx context.Context) ([]entity.Instrument, error)
}

// PriceRepository persists daily closes keyed by (instrument, date).
type PriceRepository interface {
	Upsert(ctx context.Context, instrumentID uint, bar entity.DailyBar) (entity.UpsertAction, error)
}

// StatusRepository records the run heartbeat in the singleton status row.
type StatusRepository interface {
	Touch(ctx context.Context, at time.Time, marketHours bool) error
}

// UpdateUsecase runs one pass of the price update job.
type UpdateUsecase struct {
	instruments InstrumentRepository
	fetcher     *PriceFetcher
	prices      PriceRepository
	status      StatusRepository
	now         func() time.Time
}

// NewUpdateUsecase creates an UpdateUsecase. A nil now defaults to time.Now.
func NewUpdateUsecase(instruments InstrumentRepository, market MarketRepository, prices PriceRepository, status StatusRepository, now func() time.Time) *UpdateUsecase {
	if now == nil {
		now = time.Now
	}
	return &UpdateUsecase{
		instruments: instruments,
		fetcher:     NewPriceFetcher(market),
		prices:      prices,
		status:      status,
		now:         now,
	}
}

// RunOnce classifies the current time, updates the close of every tracked instrument
// and records the heartbeat. Per-instrument failures are logged and skipped; the
// returned report carries the counts.
func (uc *UpdateUsecase) RunOnce(ctx context.Context) entity.RunReport {
	now := uc.now().In(Jakarta)
	report := entity.RunReport{
		RunID:       uuid.NewString(),
		StartedAt:   now,
		MarketHours: IsMarketHours(now),
	}
	log := slog.With("run_id", report.RunID)
	log.Info("price update started",
		"jakarta_time", now.Format(time.RFC3339),
		"jakarta_date", now.Format(entity.DateLayout),
		"market_hours", report.MarketHours)

	instruments, err := uc.loadTracked(ctx)
	if err != nil {
		report.LoadErr = err
		log.Error("failed to load tracked instruments", "error", err)
	}
	report.Tracked = len(instruments)
	log.Info("fetching latest closes", "count", len(instruments))

	for i, ins := range instruments {
		if ctx.Err() != nil {
			report.Skipped = len(instruments) - i
			log.Warn("run cancelled, skipping remaining instruments", "skipped", report.Skipped, "error", ctx.Err())
			break
		}
		uc.updateOne(ctx, log, ins, &report)
	}

	statusCtx := ctx
	if ctx.Err() != nil {
		var cancel context.CancelFunc
		statusCtx, cancel = context.WithTimeout(context.WithoutCancel(ctx), statusWriteTimeout)
		defer cancel()
	}
	if err := uc.status.Touch(statusCtx, now, report.MarketHours); err != nil {
		report.StatusErr = err
		log.Warn("failed to update system status", "error", err)
	}

	log.Info("price update finished",
		"tracked", report.Tracked,
		"inserted", report.Inserted,
		"updated", report.Updated,
		"fetch_failures", report.FetchFailures,
		"save_failures", report.SaveFailures,
		"skipped", report.Skipped,
		"elapsed", uc.now().Sub(now).String())
	return report
}

// loadTracked returns tracked instruments, dropping any row without a usable symbol
// even if the store query already filtered them.
func (uc *UpdateUsecase) loadTracked(ctx context.Context) ([]entity.Instrument, error) {
	rows, err := uc.instruments.ListTracked(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]entity.Instrument, 0, len(rows))
	for _, r := range rows {
		if !r.IsTracked || !r.HasExternalSymbol() {
			slog.Debug("skipping instrument without external symbol", "code", r.Code)
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (uc *UpdateUsecase) updateOne(ctx context.Context, log *slog.Logger, ins entity.Instrument, report *entity.RunReport) {
	symbol := ins.Symbol()

	res := uc.fetcher.FetchLatest(ctx, symbol)
	if !res.OK() {
		report.FetchFailures++
		log.Warn("failed to fetch latest close",
			"code", ins.Code, "symbol", symbol, "reason", string(res.Reason), "error", res.Err)
		return
	}

	action, err := uc.prices.Upsert(ctx, ins.ID, res.Bar)
	if err != nil {
		report.SaveFailures++
		log.Warn("failed to save close", "code", ins.Code, "symbol", symbol, "error", err)
		return
	}
	switch action {
	case entity.ActionInsert:
		report.Inserted++
	case entity.ActionUpdate:
		report.Updated++
	}
	log.Info("close saved",
		"code", ins.Code,
		"symbol", symbol,
		"date", res.Bar.DateString(),
		"close", res.Bar.Close,
		"action", string(action))
}

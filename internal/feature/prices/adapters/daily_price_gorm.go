package adapters

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"price_updater/internal/feature/prices/domain/entity"
	"price_updater/internal/feature/prices/usecase"
)

type dailyPriceGorm struct {
	db *gorm.DB
}

var _ usecase.PriceRepository = (*dailyPriceGorm)(nil)

// NewDailyPriceRepository creates the daily close writer.
func NewDailyPriceRepository(db *gorm.DB) *dailyPriceGorm {
	return &dailyPriceGorm{db: db}
}

// Upsert stores the close of bar for the instrument. The write is a single
// INSERT ... ON CONFLICT on (instrument_id, close_date); the preceding lookup
// only decides which action is reported.
func (r *dailyPriceGorm) Upsert(ctx context.Context, instrumentID uint, bar entity.DailyBar) (entity.UpsertAction, error) {
	m := DailyPriceModel{
		InstrumentID: instrumentID,
		CloseDate:    entity.CloseDate(bar.Date),
		ClosePrice:   decimal.NewFromFloat(bar.Close),
	}

	action := entity.ActionInsert
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing DailyPriceModel
		err := tx.Select("id").
			Where("instrument_id = ? AND close_date = ?", m.InstrumentID, m.CloseDate).
			Limit(1).
			Take(&existing).Error
		switch {
		case err == nil:
			action = entity.ActionUpdate
		case errors.Is(err, gorm.ErrRecordNotFound):
		default:
			return fmt.Errorf("lookup close: %w", err)
		}

		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "instrument_id"}, {Name: "close_date"}},
			DoUpdates: clause.AssignmentColumns([]string{"close_price"}),
		}).Create(&m).Error
	})
	if err != nil {
		return "", err
	}
	return action, nil
}

// Find returns the stored close for the instrument on date.
func (r *dailyPriceGorm) Find(ctx context.Context, instrumentID uint, date string) (entity.DailyPrice, error) {
	d, err := entity.ParseCloseDate(date)
	if err != nil {
		return entity.DailyPrice{}, fmt.Errorf("parse close date %q: %w", date, err)
	}
	var m DailyPriceModel
	if err := r.db.WithContext(ctx).
		Where("instrument_id = ? AND close_date = ?", instrumentID, d).
		Take(&m).Error; err != nil {
		return entity.DailyPrice{}, err
	}
	return entity.DailyPrice{
		ID:           m.ID,
		InstrumentID: m.InstrumentID,
		CloseDate:    m.CloseDate,
		ClosePrice:   m.ClosePrice,
	}, nil
}

// Package adapters provides the gorm-backed repositories of the prices feature.
package adapters

import (
	"time"

	"github.com/shopspring/decimal"
)

// InstrumentModel maps the tracked_instruments table. The job never writes it.
type InstrumentModel struct {
	ID             uint    `gorm:"primaryKey"`
	Code           string  `gorm:"size:32;not null"`
	ExternalSymbol *string `gorm:"size:64"`
	IsTracked      bool    `gorm:"not null;default:false;index"`
}

func (InstrumentModel) TableName() string {
	return "tracked_instruments"
}

// DailyPriceModel maps the daily_price_records table.
type DailyPriceModel struct {
	ID           uint            `gorm:"primaryKey"`
	InstrumentID uint            `gorm:"not null;uniqueIndex:daily_price_instrument_date,priority:1"`
	CloseDate    time.Time       `gorm:"type:date;not null;uniqueIndex:daily_price_instrument_date,priority:2"`
	ClosePrice   decimal.Decimal `gorm:"type:numeric(18,4);not null"`
}

func (DailyPriceModel) TableName() string {
	return "daily_price_records"
}

// Status column names; exactly one is written per run.
const (
	colMarketHoursUpdate = "last_market_hours_update_timestamp"
	colOffHoursUpdate    = "last_off_hours_update_timestamp"
)

// SystemStatusModel maps the singleton status_record row.
type SystemStatusModel struct {
	ID                      int16      `gorm:"primaryKey;autoIncrement:false"`
	LastMarketHoursUpdateAt *time.Time `gorm:"column:last_market_hours_update_timestamp"`
	LastOffHoursUpdateAt    *time.Time `gorm:"column:last_off_hours_update_timestamp"`
}

func (SystemStatusModel) TableName() string {
	return "status_record"
}

// Models lists every table the job touches, for AutoMigrate in development and tests.
func Models() []any {
	return []any{&InstrumentModel{}, &DailyPriceModel{}, &SystemStatusModel{}}
}

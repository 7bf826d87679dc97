package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the ISO calendar date format used for close dates.
const DateLayout = "2006-01-02"

// DailyBar is the most recent daily bar reported by a market-data provider.
type DailyBar struct {
	Date  time.Time // Calendar date of the bar, normalized with CloseDate
	Close float64   // Closing price
}

// DateString returns the bar date in ISO form.
func (b DailyBar) DateString() string {
	return b.Date.Format(DateLayout)
}

// DailyPrice is the stored closing price of one instrument on one date.
// At most one DailyPrice exists per (InstrumentID, CloseDate).
type DailyPrice struct {
	ID           uint
	InstrumentID uint
	CloseDate    time.Time
	ClosePrice   decimal.Decimal
}

// CloseDate normalizes t to midnight UTC of its calendar date in t's own location,
// so a bar stamped 2024-03-01 in Jakarta is stored as 2024-03-01.
func CloseDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseCloseDate parses an ISO calendar date.
func ParseCloseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// UpsertAction tells which write an upsert performed.
type UpsertAction string

const (
	ActionInsert UpsertAction = "insert"
	ActionUpdate UpsertAction = "update"
)

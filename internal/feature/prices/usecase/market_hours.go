package usecase

import "time"

const jakartaOffset = 7 * 60 * 60

// Trading session bounds, inclusive, in Jakarta local time.
var (
	sessionOpen  = clockTime{hour: 9, minute: 0}
	sessionClose = clockTime{hour: 15, minute: 30}
)

// Jakarta is the exchange timezone used to classify runs.
var Jakarta = loadJakarta()

func loadJakarta() *time.Location {
	loc, err := time.LoadLocation("Asia/Jakarta")
	if err != nil {
		// WIB has no daylight saving, so a fixed offset is exact.
		return time.FixedZone("WIB", jakartaOffset)
	}
	return loc
}

type clockTime struct {
	hour, minute int
}

func (c clockTime) seconds() int {
	return c.hour*3600 + c.minute*60
}

// IsMarketHours reports whether t falls inside the IDX trading session:
// Monday to Friday, 09:00 to 15:30 Jakarta time, both bounds inclusive.
// Holidays and half days are not modelled.
func IsMarketHours(t time.Time) bool {
	local := t.In(Jakarta)
	switch local.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	}
	h, m, s := local.Clock()
	sec := h*3600 + m*60 + s
	return sec >= sessionOpen.seconds() && sec <= sessionClose.seconds()
}

// NextMarketOpen returns the next session open strictly after t.
func NextMarketOpen(t time.Time) time.Time {
	local := t.In(Jakarta)
	next := time.Date(local.Year(), local.Month(), local.Day(), sessionOpen.hour, sessionOpen.minute, 0, 0, Jakarta)
	if !next.After(local) {
		next = next.AddDate(0, 0, 1)
	}
	for next.Weekday() == time.Saturday || next.Weekday() == time.Sunday {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

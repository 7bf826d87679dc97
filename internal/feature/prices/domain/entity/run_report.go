package entity

import "time"

// RunReport summarises one updater run.
type RunReport struct {
	RunID         string
	StartedAt     time.Time
	MarketHours   bool
	Tracked       int
	Inserted      int
	Updated       int
	FetchFailures int
	SaveFailures  int
	Skipped       int // Not attempted because the run was cancelled
	LoadErr       error
	StatusErr     error
}

// Failures returns the number of instruments that produced no stored price.
func (r RunReport) Failures() int {
	return r.FetchFailures + r.SaveFailures + r.Skipped
}

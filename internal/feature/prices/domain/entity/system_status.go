package entity

import "time"

// SystemStatusID is the fixed identifier of the singleton status row.
const SystemStatusID int16 = 1

// SystemStatus is the heartbeat row written at the end of every run.
// Either timestamp may be nil until a run of that kind has happened.
type SystemStatus struct {
	ID                      int16
	LastMarketHoursUpdateAt *time.Time
	LastOffHoursUpdateAt    *time.Time
}

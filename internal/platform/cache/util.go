package cache

import (
	"time"

	"price_updater/internal/feature/prices/usecase"
)

// TimeUntilNextMarketOpen returns the duration from now until the next IDX session open.
func TimeUntilNextMarketOpen(now time.Time) time.Duration {
	return usecase.NextMarketOpen(now).Sub(now)
}

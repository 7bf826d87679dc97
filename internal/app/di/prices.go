package di

import (
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	priceadapters "price_updater/internal/feature/prices/adapters"
	"price_updater/internal/feature/prices/usecase"
	"price_updater/internal/platform/cache"
)

// NewPriceRepository creates the PriceRepository used by the updater.
// If Redis is available, stored closes are also published to the latest-price cache.
func NewPriceRepository(rdb *redis.Client, db *gorm.DB) usecase.PriceRepository {
	repo := priceadapters.NewDailyPriceRepository(db)
	if rdb != nil {
		return cache.NewCachingPriceRepository(rdb, repo, "prices")
	}
	return repo
}

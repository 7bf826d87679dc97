// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"price_updater/internal/feature/prices/domain/entity"
	"price_updater/internal/feature/prices/usecase"
)

// LatestPrice is the cached value of the most recent close of an instrument.
type LatestPrice struct {
	Date  string  `json:"date"`
	Close float64 `json:"close"`
}

// CachingPriceRepository decorates a PriceRepository, publishing every stored close
// to Redis so readers can fetch the latest price without hitting the database.
type CachingPriceRepository struct {
	inner     usecase.PriceRepository
	rdb       *redis.Client
	namespace string
	now       func() time.Time
}

var _ usecase.PriceRepository = (*CachingPriceRepository)(nil)

// NewCachingPriceRepository wraps inner. A nil rdb disables caching.
// If namespace is empty, it uses "prices".
func NewCachingPriceRepository(rdb *redis.Client, inner usecase.PriceRepository, namespace string) *CachingPriceRepository {
	if namespace == "" {
		namespace = "prices"
	}
	return &CachingPriceRepository{
		inner:     inner,
		rdb:       rdb,
		namespace: namespace,
		now:       time.Now,
	}
}

// Upsert stores the close in the underlying repository, then refreshes the latest-price key.
// The entry expires at the next session open, when the close becomes stale.
func (c *CachingPriceRepository) Upsert(ctx context.Context, instrumentID uint, bar entity.DailyBar) (entity.UpsertAction, error) {
	action, err := c.inner.Upsert(ctx, instrumentID, bar)
	if err != nil {
		return action, err
	}
	if c.rdb == nil {
		return action, nil
	}

	b, err := json.Marshal(LatestPrice{Date: bar.DateString(), Close: bar.Close})
	if err != nil {
		return action, nil
	}
	key := c.latestKey(instrumentID)
	// Best effort: the database write already succeeded.
	if err := c.rdb.Set(ctx, key, b, TimeUntilNextMarketOpen(c.now())).Err(); err != nil {
		slog.Warn("failed to cache latest price", "key", key, "error", err)
	}
	return action, nil
}

// Latest returns the cached latest close, or redis.Nil when absent.
func (c *CachingPriceRepository) Latest(ctx context.Context, instrumentID uint) (LatestPrice, error) {
	var out LatestPrice
	if c.rdb == nil {
		return out, redis.Nil
	}
	b, err := c.rdb.Get(ctx, c.latestKey(instrumentID)).Bytes()
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(b, &out); err != nil {
		return out, fmt.Errorf("decode latest price: %w", err)
	}
	return out, nil
}

func (c *CachingPriceRepository) latestKey(instrumentID uint) string {
	return fmt.Sprintf("%s:latest:%d", c.namespace, instrumentID)
}

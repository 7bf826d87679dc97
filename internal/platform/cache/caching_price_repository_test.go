package cache

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"

	"price_updater/internal/feature/prices/domain/entity"
)

var wib = time.FixedZone("WIB", 7*60*60)

// mockPriceRepository is a test PriceRepository.
type mockPriceRepository struct {
	upsertFn func(ctx context.Context, instrumentID uint, bar entity.DailyBar) (entity.UpsertAction, error)
	calls    int
}

func (m *mockPriceRepository) Upsert(ctx context.Context, instrumentID uint, bar entity.DailyBar) (entity.UpsertAction, error) {
	m.calls++
	if m.upsertFn != nil {
		return m.upsertFn(ctx, instrumentID, bar)
	}
	return entity.ActionInsert, nil
}

func testBar() entity.DailyBar {
	return entity.DailyBar{Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), Close: 9500}
}

func TestNewCachingPriceRepository_Defaults(t *testing.T) {
	t.Parallel()

	repo := NewCachingPriceRepository(nil, &mockPriceRepository{}, "")
	if repo.namespace != "prices" {
		t.Errorf("expected namespace prices, got %q", repo.namespace)
	}

	repo = NewCachingPriceRepository(nil, &mockPriceRepository{}, "custom")
	if repo.namespace != "custom" {
		t.Errorf("expected namespace custom, got %q", repo.namespace)
	}
}

func TestCachingPriceRepository_Upsert_NilRedis(t *testing.T) {
	t.Parallel()

	inner := &mockPriceRepository{}
	repo := NewCachingPriceRepository(nil, inner, "prices")

	action, err := repo.Upsert(context.Background(), 1, testBar())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if action != entity.ActionInsert {
		t.Errorf("expected insert, got %s", action)
	}
	if inner.calls != 1 {
		t.Errorf("expected inner to be called once, got %d", inner.calls)
	}
}

func TestCachingPriceRepository_Upsert_SetsLatest(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	inner := &mockPriceRepository{
		upsertFn: func(ctx context.Context, instrumentID uint, bar entity.DailyBar) (entity.UpsertAction, error) {
			return entity.ActionUpdate, nil
		},
	}
	repo := NewCachingPriceRepository(rdb, inner, "prices")
	// Friday 16:00 WIB; the next open is Monday 09:00 WIB.
	repo.now = func() time.Time { return time.Date(2024, 3, 1, 16, 0, 0, 0, wib) }

	want, _ := json.Marshal(LatestPrice{Date: "2024-03-01", Close: 9500})
	mock.ExpectSet("prices:latest:7", want, 65*time.Hour).SetVal("OK")

	action, err := repo.Upsert(context.Background(), 7, testBar())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if action != entity.ActionUpdate {
		t.Errorf("expected update, got %s", action)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}

func TestCachingPriceRepository_Upsert_InnerError(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	expectedErr := errors.New("database error")
	inner := &mockPriceRepository{
		upsertFn: func(ctx context.Context, instrumentID uint, bar entity.DailyBar) (entity.UpsertAction, error) {
			return "", expectedErr
		},
	}
	repo := NewCachingPriceRepository(rdb, inner, "prices")

	_, err := repo.Upsert(context.Background(), 1, testBar())
	if !errors.Is(err, expectedErr) {
		t.Errorf("expected %v, got %v", expectedErr, err)
	}
	// No Redis command is expected when the database write fails.
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}

func TestCachingPriceRepository_Upsert_CacheErrorIgnored(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	repo := NewCachingPriceRepository(rdb, &mockPriceRepository{}, "prices")
	repo.now = func() time.Time { return time.Date(2024, 3, 1, 16, 0, 0, 0, wib) }

	want, _ := json.Marshal(LatestPrice{Date: "2024-03-01", Close: 9500})
	mock.ExpectSet("prices:latest:1", want, 65*time.Hour).SetErr(errors.New("redis down"))

	action, err := repo.Upsert(context.Background(), 1, testBar())
	if err != nil {
		t.Fatalf("cache failure must not fail the upsert: %v", err)
	}
	if action != entity.ActionInsert {
		t.Errorf("expected insert, got %s", action)
	}
}

func TestCachingPriceRepository_Latest(t *testing.T) {
	t.Parallel()

	t.Run("hit", func(t *testing.T) {
		t.Parallel()

		rdb, mock := redismock.NewClientMock()
		defer func() { _ = rdb.Close() }()
		mock.ExpectGet("prices:latest:1").SetVal(`{"date":"2024-03-01","close":9550}`)

		got, err := NewCachingPriceRepository(rdb, &mockPriceRepository{}, "").Latest(context.Background(), 1)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Date != "2024-03-01" || got.Close != 9550 {
			t.Errorf("unexpected latest price %+v", got)
		}
	})

	t.Run("miss", func(t *testing.T) {
		t.Parallel()

		rdb, mock := redismock.NewClientMock()
		defer func() { _ = rdb.Close() }()
		mock.ExpectGet("prices:latest:1").RedisNil()

		_, err := NewCachingPriceRepository(rdb, &mockPriceRepository{}, "").Latest(context.Background(), 1)
		if !errors.Is(err, redis.Nil) {
			t.Errorf("expected redis.Nil, got %v", err)
		}
	})

	t.Run("corrupted", func(t *testing.T) {
		t.Parallel()

		rdb, mock := redismock.NewClientMock()
		defer func() { _ = rdb.Close() }()
		mock.ExpectGet("prices:latest:1").SetVal(`not json`)

		_, err := NewCachingPriceRepository(rdb, &mockPriceRepository{}, "").Latest(context.Background(), 1)
		if err == nil {
			t.Error("expected decode error, got nil")
		}
	})

	t.Run("disabled", func(t *testing.T) {
		t.Parallel()

		_, err := NewCachingPriceRepository(nil, &mockPriceRepository{}, "").Latest(context.Background(), 1)
		if !errors.Is(err, redis.Nil) {
			t.Errorf("expected redis.Nil, got %v", err)
		}
	})
}

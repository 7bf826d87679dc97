// Command updater fetches the latest daily close of every tracked instrument,
// upserts it into the store and records the run heartbeat. It runs once and exits;
// scheduling is left to cron or a similar external trigger.
package main

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"

	"price_updater/internal/app/di"
	priceadapters "price_updater/internal/feature/prices/adapters"
	"price_updater/internal/feature/prices/usecase"
	infradb "price_updater/internal/platform/db"
	infraredis "price_updater/internal/platform/redis"
)

const defaultRunTimeout = 5 * time.Minute

func main() {
	// .env is optional; the process environment wins.
	if err := godotenv.Load(".env"); err != nil {
		slog.Info(".env not found; using system environment variables")
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel(os.Getenv("LOG_LEVEL"))})))

	// Configuration is checked before anything touches the network.
	dbCfg := infradb.LoadConfigFromEnv()
	if err := dbCfg.Validate(); err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	market, err := di.NewMarket(di.ProviderFromEnv())
	if err != nil {
		slog.Error("invalid market provider configuration", "error", err)
		os.Exit(1)
	}

	// db
	db, err := infradb.OpenDB(dbCfg)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	if sqlDB, err := db.DB(); err == nil {
		defer func() { _ = sqlDB.Close() }()
	}

	ctx, cancel := context.WithTimeout(context.Background(), runTimeout(os.Getenv("RUN_TIMEOUT")))
	defer cancel()

	// Redis
	var rdb *redisv9.Client
	if redisCfg := infraredis.LoadConfig(); redisCfg.Enabled() {
		if tmp, err := infraredis.NewRedisClient(ctx, redisCfg); err != nil {
			slog.Warn("Redis unavailable. Running without cache.")
		} else {
			rdb = tmp
			defer func() {
				if err := rdb.Close(); err != nil {
					slog.Error("failed to close Redis client", "error", err)
				}
			}()
		}
	}

	// Repository
	instrumentRepo := priceadapters.NewInstrumentRepository(db)
	priceRepo := di.NewPriceRepository(rdb, db)
	statusRepo := priceadapters.NewSystemStatusRepository(db)

	// Usecase
	uc := usecase.NewUpdateUsecase(instrumentRepo, market, priceRepo, statusRepo, time.Now)

	report := uc.RunOnce(ctx)
	if report.Failures() > 0 || report.LoadErr != nil || report.StatusErr != nil {
		slog.Warn("price update completed with problems", "run_id", report.RunID, "failures", report.Failures())
		return
	}
	slog.Info("price update ok", "run_id", report.RunID)
}

func logLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func runTimeout(s string) time.Duration {
	if d, err := time.ParseDuration(s); err == nil && d > 0 {
		return d
	}
	return defaultRunTimeout
}

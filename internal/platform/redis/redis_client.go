// Package redis opens the optional Redis connection used for the latest-price cache.
package redis

import (
	"context"
	"log/slog"
	"os"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// Config holds Redis connection settings.
type Config struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// LoadConfig reads Redis settings from environment variables.
func LoadConfig() Config {
	cfg := Config{
		Host:     os.Getenv("REDIS_HOST"),
		Port:     os.Getenv("REDIS_PORT"),
		Password: os.Getenv("REDIS_PASSWORD"),
	}
	if cfg.Port == "" {
		cfg.Port = "6379"
	}
	if n, err := strconv.Atoi(os.Getenv("REDIS_DB")); err == nil {
		cfg.DB = n
	}
	return cfg
}

// Enabled reports whether a Redis host is configured.
func (c Config) Enabled() bool {
	return c.Host != ""
}

// Addr returns host:port.
func (c Config) Addr() string {
	return c.Host + ":" + c.Port
}

// NewRedisClient connects to Redis and verifies the connection.
func NewRedisClient(ctx context.Context, cfg Config) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := checkConnection(ctx, rdb, cfg.Addr()); err != nil {
		_ = rdb.Close()
		return nil, err
	}
	return rdb, nil
}

func checkConnection(ctx context.Context, rdb *redis.Client, addr string) error {
	if err := rdb.Ping(ctx).Err(); err != nil {
		slog.Error("Redis connection failed", "address", addr, "error", err)
		return err
	}
	slog.Info("Redis connection successful", "address", addr)
	return nil
}

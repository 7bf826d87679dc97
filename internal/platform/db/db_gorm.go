// Package db opens the Postgres store used by the updater.
package db

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	priceadapters "price_updater/internal/feature/prices/adapters"
)

const (
	connectTimeout = 60 * time.Second
	retryInterval  = 3 * time.Second
)

var (
	// ErrMissingURL is returned when DB_URL is not set.
	ErrMissingURL = errors.New("DB_URL is not set")
	// ErrMissingPassword is returned when DB_PASSWORD is not set.
	ErrMissingPassword = errors.New("DB_PASSWORD is not set")
)

// Config holds the store endpoint and credential.
type Config struct {
	URL           string // postgres://user@host:port/dbname?sslmode=require
	Password      string // Store credential; overrides any password in URL
	RunMigrations bool
}

// LoadConfigFromEnv reads the store configuration from environment variables.
func LoadConfigFromEnv() Config {
	return Config{
		URL:           os.Getenv("DB_URL"),
		Password:      os.Getenv("DB_PASSWORD"),
		RunMigrations: os.Getenv("RUN_MIGRATIONS") == "true",
	}
}

// Validate reports the first missing required value.
func (c Config) Validate() error {
	if c.URL == "" {
		return ErrMissingURL
	}
	if c.Password == "" {
		return ErrMissingPassword
	}
	return nil
}

// ParseConnConfig parses the endpoint URL and applies the credential.
func ParseConnConfig(cfg Config) (*pgx.ConnConfig, error) {
	cc, err := pgx.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse DB_URL: %w", err)
	}
	cc.Password = cfg.Password
	return cc, nil
}

// Opener opens a gorm connection; swapped out in tests.
type Opener func(cc *pgx.ConnConfig) (*gorm.DB, error)

// OpenPostgres opens gorm over a pgx stdlib connection pool.
func OpenPostgres(cc *pgx.ConnConfig) (*gorm.DB, error) {
	sqlDB := stdlib.OpenDB(*cc)
	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return db, nil
}

// ConnectWithRetry calls open until it succeeds or timeout elapses, waiting retryInterval between attempts.
func ConnectWithRetry(cc *pgx.ConnConfig, timeout time.Duration, open Opener) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		db, err := open(cc)
		if err == nil {
			return db, nil
		}
		if time.Now().Add(retryInterval).After(deadline) {
			return nil, fmt.Errorf("DB connect failed after %v: %w", timeout, err)
		}
		slog.Warn("DB connect failed, retrying", "host", cc.Host, "error", err)
		time.Sleep(retryInterval)
	}
}

// OpenDB validates cfg, connects with retry and optionally migrates the job's tables.
func OpenDB(cfg Config) (*gorm.DB, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cc, err := ParseConnConfig(cfg)
	if err != nil {
		return nil, err
	}
	db, err := ConnectWithRetry(cc, connectTimeout, OpenPostgres)
	if err != nil {
		return nil, err
	}
	slog.Info("DB connected", "host", cc.Host, "database", cc.Database)

	if cfg.RunMigrations {
		if err := db.AutoMigrate(priceadapters.Models()...); err != nil {
			return nil, fmt.Errorf("migrate: %w", err)
		}
	}
	return db, nil
}

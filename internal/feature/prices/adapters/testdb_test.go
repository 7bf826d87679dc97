package adapters

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB prepares an in-memory SQLite database with every table migrated.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err, "failed to initialize test database")

	// Each new connection to :memory: is a separate database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(Models()...), "failed to migrate tables")
	return db
}

func strPtr(s string) *string {
	return &s
}

// seedInstrument creates a tracked_instruments row.
func seedInstrument(t *testing.T, db *gorm.DB, id uint, code string, symbol *string, tracked bool) {
	t.Helper()

	m := &InstrumentModel{ID: id, Code: code, ExternalSymbol: symbol, IsTracked: tracked}
	require.NoError(t, db.Create(m).Error, "failed to seed instrument")
}

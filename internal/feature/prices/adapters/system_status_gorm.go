package adapters

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"price_updater/internal/feature/prices/domain/entity"
	"price_updater/internal/feature/prices/usecase"
)

type systemStatusGorm struct {
	db *gorm.DB
}

var _ usecase.StatusRepository = (*systemStatusGorm)(nil)

// NewSystemStatusRepository creates the heartbeat writer.
func NewSystemStatusRepository(db *gorm.DB) *systemStatusGorm {
	return &systemStatusGorm{db: db}
}

// Touch writes at into the market-hours or off-hours column of the singleton row,
// creating the row when absent. The other column is left as it is, so a freshly
// created row has it NULL.
func (r *systemStatusGorm) Touch(ctx context.Context, at time.Time, marketHours bool) error {
	col := colOffHoursUpdate
	if marketHours {
		col = colMarketHoursUpdate
	}
	return r.db.WithContext(ctx).
		Model(&SystemStatusModel{}).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{col}),
		}).
		Create(map[string]any{
			"id": entity.SystemStatusID,
			col:  at,
		}).Error
}

// Get returns the singleton status row.
func (r *systemStatusGorm) Get(ctx context.Context) (entity.SystemStatus, error) {
	var m SystemStatusModel
	if err := r.db.WithContext(ctx).Where("id = ?", entity.SystemStatusID).Take(&m).Error; err != nil {
		return entity.SystemStatus{}, err
	}
	return entity.SystemStatus{
		ID:                      m.ID,
		LastMarketHoursUpdateAt: m.LastMarketHoursUpdateAt,
		LastOffHoursUpdateAt:    m.LastOffHoursUpdateAt,
	}, nil
}

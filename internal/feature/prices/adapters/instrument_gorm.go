package adapters

import (
	"context"

	"gorm.io/gorm"

	"price_updater/internal/feature/prices/domain/entity"
	"price_updater/internal/feature/prices/usecase"
)

type instrumentGorm struct {
	db *gorm.DB
}

var _ usecase.InstrumentRepository = (*instrumentGorm)(nil)

// NewInstrumentRepository creates the tracked-instrument reader.
func NewInstrumentRepository(db *gorm.DB) *instrumentGorm {
	return &instrumentGorm{db: db}
}

// ListTracked returns tracked instruments that have a usable external symbol, ordered by id.
func (r *instrumentGorm) ListTracked(ctx context.Context) ([]entity.Instrument, error) {
	var rows []InstrumentModel
	if err := r.db.WithContext(ctx).
		Where("is_tracked = ?", true).
		Where("external_symbol IS NOT NULL").
		Where("external_symbol <> ?", "").
		Where("LOWER(external_symbol) <> ?", "null").
		Order("id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]entity.Instrument, 0, len(rows))
	for _, m := range rows {
		out = append(out, entity.Instrument{
			ID:             m.ID,
			Code:           m.Code,
			ExternalSymbol: m.ExternalSymbol,
			IsTracked:      m.IsTracked,
		})
	}
	return out, nil
}

package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jovinkendrico/pos-mandor-jaya-sub002/internal/domain/costing"
)

// GormStockMovementRepository implements costing.StockMovementRepository using GORM
type GormStockMovementRepository struct {
	db *gorm.DB
}

// NewGormStockMovementRepository creates a new GormStockMovementRepository
func NewGormStockMovementRepository(db *gorm.DB) *GormStockMovementRepository {
	return &GormStockMovementRepository{db: db}
}

// FindByItem returns an item's stock movements in chronological order
func (r *GormStockMovementRepository) FindByItem(ctx context.Context, itemID uuid.UUID) ([]costing.StockMovement, error) {
	var movements []costing.StockMovement
	if err := r.db.WithContext(ctx).
		Where("item_id = ?", itemID).
		Order("movement_date ASC, created_at ASC").
		Find(&movements).Error; err != nil {
		return nil, err
	}
	return movements, nil
}

// SaveAll persists multiple stock movements
func (r *GormStockMovementRepository) SaveAll(ctx context.Context, movements []costing.StockMovement) error {
	if len(movements) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Save(&movements).Error
}

// DeleteByReference deletes all movements recorded for one document
func (r *GormStockMovementRepository) DeleteByReference(ctx context.Context, refType costing.ReferenceType, refID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("reference_type = ? AND reference_id = ?", refType, refID).
		Delete(&costing.StockMovement{}).Error
}

// Ensure GormStockMovementRepository implements costing.StockMovementRepository
var _ costing.StockMovementRepository = (*GormStockMovementRepository)(nil)

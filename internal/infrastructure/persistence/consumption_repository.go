package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jovinkendrico/pos-mandor-jaya-sub002/internal/domain/costing"
)

// GormConsumptionRepository implements costing.ConsumptionRepository using GORM
type GormConsumptionRepository struct {
	db *gorm.DB
}

// NewGormConsumptionRepository creates a new GormConsumptionRepository
func NewGormConsumptionRepository(db *gorm.DB) *GormConsumptionRepository {
	return &GormConsumptionRepository{db: db}
}

// FindByDocument returns a document's consumption records in replay order
func (r *GormConsumptionRepository) FindByDocument(ctx context.Context, documentID uuid.UUID) ([]costing.ConsumptionRecord, error) {
	var records []costing.ConsumptionRecord
	if err := r.db.WithContext(ctx).
		Where("document_id = ?", documentID).
		Order("sequence ASC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// FindByDetail returns one document line's consumption records in replay order
func (r *GormConsumptionRepository) FindByDetail(ctx context.Context, detailID uuid.UUID) ([]costing.ConsumptionRecord, error) {
	var records []costing.ConsumptionRecord
	if err := r.db.WithContext(ctx).
		Where("detail_id = ?", detailID).
		Order("sequence ASC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// SaveAll persists multiple consumption records
func (r *GormConsumptionRepository) SaveAll(ctx context.Context, records []costing.ConsumptionRecord) error {
	if len(records) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Save(&records).Error
}

// DeleteByDocument deletes all of a document's consumption records
func (r *GormConsumptionRepository) DeleteByDocument(ctx context.Context, documentID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("document_id = ?", documentID).
		Delete(&costing.ConsumptionRecord{}).Error
}

// Ensure GormConsumptionRepository implements costing.ConsumptionRepository
var _ costing.ConsumptionRepository = (*GormConsumptionRepository)(nil)

package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jovinkendrico/pos-mandor-jaya-sub002/internal/domain/costing"
)

// GormCostLayerRepository implements costing.CostLayerRepository using GORM
type GormCostLayerRepository struct {
	db *gorm.DB
}

// NewGormCostLayerRepository creates a new GormCostLayerRepository
func NewGormCostLayerRepository(db *gorm.DB) *GormCostLayerRepository {
	return &GormCostLayerRepository{db: db}
}

// FindByItemFIFO returns all of an item's layers in creation order, including
// exhausted ones. Creation time plus ID gives a stable FIFO order even when
// two layers share a timestamp.
func (r *GormCostLayerRepository) FindByItemFIFO(ctx context.Context, itemID uuid.UUID) ([]*costing.CostLayer, error) {
	var layers []*costing.CostLayer
	if err := r.db.WithContext(ctx).
		Where("item_id = ?", itemID).
		Order("created_at ASC, id ASC").
		Find(&layers).Error; err != nil {
		return nil, err
	}
	return layers, nil
}

// FindByItemFIFOForUpdate is FindByItemFIFO with row-level locks
func (r *GormCostLayerRepository) FindByItemFIFOForUpdate(ctx context.Context, itemID uuid.UUID) ([]*costing.CostLayer, error) {
	var layers []*costing.CostLayer
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("item_id = ?", itemID).
		Order("created_at ASC, id ASC").
		Find(&layers).Error; err != nil {
		return nil, err
	}
	return layers, nil
}

// FindBySource returns the layers created by one source document
func (r *GormCostLayerRepository) FindBySource(ctx context.Context, sourceType costing.ReferenceType, sourceID uuid.UUID) ([]*costing.CostLayer, error) {
	var layers []*costing.CostLayer
	if err := r.db.WithContext(ctx).
		Where("source_type = ? AND source_id = ?", sourceType, sourceID).
		Order("created_at ASC, id ASC").
		Find(&layers).Error; err != nil {
		return nil, err
	}
	return layers, nil
}

// FindBySourceDetail returns the layers created by one document line
func (r *GormCostLayerRepository) FindBySourceDetail(ctx context.Context, sourceDetailID uuid.UUID) ([]*costing.CostLayer, error) {
	var layers []*costing.CostLayer
	if err := r.db.WithContext(ctx).
		Where("source_detail_id = ?", sourceDetailID).
		Order("created_at ASC, id ASC").
		Find(&layers).Error; err != nil {
		return nil, err
	}
	return layers, nil
}

// Save creates or updates a cost layer
func (r *GormCostLayerRepository) Save(ctx context.Context, layer *costing.CostLayer) error {
	return r.db.WithContext(ctx).Save(layer).Error
}

// SaveAll creates or updates multiple cost layers
func (r *GormCostLayerRepository) SaveAll(ctx context.Context, layers []*costing.CostLayer) error {
	if len(layers) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Save(layers).Error
}

// DeleteBySource deletes all layers created by one source document
func (r *GormCostLayerRepository) DeleteBySource(ctx context.Context, sourceType costing.ReferenceType, sourceID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("source_type = ? AND source_id = ?", sourceType, sourceID).
		Delete(&costing.CostLayer{}).Error
}

// Ensure GormCostLayerRepository implements costing.CostLayerRepository
var _ costing.CostLayerRepository = (*GormCostLayerRepository)(nil)

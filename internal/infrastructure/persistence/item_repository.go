package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jovinkendrico/pos-mandor-jaya-sub002/internal/domain/item"
	"github.com/jovinkendrico/pos-mandor-jaya-sub002/internal/domain/shared"
)

var itemSortFields = []string{"code", "name", "stock", "created_at", "updated_at"}

// GormItemRepository implements item.Repository using GORM
type GormItemRepository struct {
	db *gorm.DB
}

// NewGormItemRepository creates a new GormItemRepository
func NewGormItemRepository(db *gorm.DB) *GormItemRepository {
	return &GormItemRepository{db: db}
}

// FindByID finds an item by its ID including its UOMs
func (r *GormItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*item.Item, error) {
	var it item.Item
	if err := r.db.WithContext(ctx).Preload("UOMs").First(&it, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &it, nil
}

// FindByIDForUpdate finds an item by ID with a row-level lock
func (r *GormItemRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*item.Item, error) {
	var it item.Item
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Preload("UOMs").
		First(&it, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &it, nil
}

// FindByCode finds an item by its unique code
func (r *GormItemRepository) FindByCode(ctx context.Context, code string) (*item.Item, error) {
	var it item.Item
	if err := r.db.WithContext(ctx).Preload("UOMs").First(&it, "code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &it, nil
}

// FindAll finds all items matching the filter
func (r *GormItemRepository) FindAll(ctx context.Context, filter shared.Filter) ([]item.Item, error) {
	filter = normalizeFilter(filter)

	query := r.db.WithContext(ctx).Model(&item.Item{}).Preload("UOMs")
	query = applySearch(query, filter.Search, []string{"code", "name"})
	query = applyOrdering(query, filter, itemSortFields, "code ASC")
	query = applyPagination(query, filter)

	var items []item.Item
	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Count counts items matching the filter
func (r *GormItemRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	query := r.db.WithContext(ctx).Model(&item.Item{})
	query = applySearch(query, filter.Search, []string{"code", "name"})

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates an item together with its UOMs. UOMs removed from
// the aggregate are deleted.
func (r *GormItemRepository) Save(ctx context.Context, it *item.Item) error {
	if err := r.db.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Save(it).Error; err != nil {
		return err
	}

	keep := make([]uuid.UUID, 0, len(it.UOMs))
	for _, u := range it.UOMs {
		keep = append(keep, u.ID)
	}
	return r.db.WithContext(ctx).
		Where("item_id = ? AND id NOT IN ?", it.ID, keep).
		Delete(&item.ItemUOM{}).Error
}

// Delete deletes an item and its UOMs
func (r *GormItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("item_id = ?", id).Delete(&item.ItemUOM{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&item.Item{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Ensure GormItemRepository implements item.Repository
var _ item.Repository = (*GormItemRepository)(nil)

package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jovinkendrico/pos-mandor-jaya-sub002/internal/domain/shared"
	"github.com/jovinkendrico/pos-mandor-jaya-sub002/internal/domain/trade"
)

var returnSortFields = []string{"number", "date", "grand_total", "status", "created_at"}

// GormPurchaseReturnRepository implements trade.PurchaseReturnRepository using GORM
type GormPurchaseReturnRepository struct {
	db *gorm.DB
}

// NewGormPurchaseReturnRepository creates a new GormPurchaseReturnRepository
func NewGormPurchaseReturnRepository(db *gorm.DB) *GormPurchaseReturnRepository {
	return &GormPurchaseReturnRepository{db: db}
}

// FindByID finds a purchase return by its ID including its details
func (r *GormPurchaseReturnRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.PurchaseReturn, error) {
	var ret trade.PurchaseReturn
	if err := r.db.WithContext(ctx).Preload("Details").First(&ret, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &ret, nil
}

// FindByIDForUpdate finds a purchase return by ID with a row-level lock
func (r *GormPurchaseReturnRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*trade.PurchaseReturn, error) {
	var ret trade.PurchaseReturn
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Preload("Details").
		First(&ret, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &ret, nil
}

// FindByNumber finds a purchase return by its document number
func (r *GormPurchaseReturnRepository) FindByNumber(ctx context.Context, number string) (*trade.PurchaseReturn, error) {
	var ret trade.PurchaseReturn
	if err := r.db.WithContext(ctx).Preload("Details").First(&ret, "number = ?", number).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &ret, nil
}

// FindByPurchase returns all returns raised against one purchase
func (r *GormPurchaseReturnRepository) FindByPurchase(ctx context.Context, purchaseID uuid.UUID) ([]*trade.PurchaseReturn, error) {
	var returns []*trade.PurchaseReturn
	if err := r.db.WithContext(ctx).
		Preload("Details").
		Where("purchase_id = ?", purchaseID).
		Order("date ASC, number ASC").
		Find(&returns).Error; err != nil {
		return nil, err
	}
	return returns, nil
}

// FindAll finds purchase returns matching the filter
func (r *GormPurchaseReturnRepository) FindAll(ctx context.Context, filter shared.Filter) (shared.Paginated[*trade.PurchaseReturn], error) {
	filter = normalizeFilter(filter)

	countQuery := r.db.WithContext(ctx).Model(&trade.PurchaseReturn{})
	countQuery = applySearch(countQuery, filter.Search, []string{"number", "supplier_name"})
	countQuery = applyDocumentFilters(countQuery, filter)

	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return shared.Paginated[*trade.PurchaseReturn]{}, err
	}

	query := r.db.WithContext(ctx).Model(&trade.PurchaseReturn{}).Preload("Details")
	query = applySearch(query, filter.Search, []string{"number", "supplier_name"})
	query = applyDocumentFilters(query, filter)
	query = applyOrdering(query, filter, returnSortFields, "date DESC, number DESC")
	query = applyPagination(query, filter)

	var returns []*trade.PurchaseReturn
	if err := query.Find(&returns).Error; err != nil {
		return shared.Paginated[*trade.PurchaseReturn]{}, err
	}
	return shared.NewPaginated(returns, total, filter.Page, filter.PageSize), nil
}

// Save creates or updates a purchase return together with its details.
// Details removed from the aggregate are deleted.
func (r *GormPurchaseReturnRepository) Save(ctx context.Context, ret *trade.PurchaseReturn) error {
	if err := r.db.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Save(ret).Error; err != nil {
		return err
	}

	keep := make([]uuid.UUID, 0, len(ret.Details))
	for _, d := range ret.Details {
		keep = append(keep, d.ID)
	}
	return deleteOrphanDetails(r.db.WithContext(ctx), &trade.PurchaseReturnDetail{}, "purchase_return_id", ret.ID, keep)
}

// Delete deletes a purchase return and its details
func (r *GormPurchaseReturnRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("purchase_return_id = ?", id).Delete(&trade.PurchaseReturnDetail{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&trade.PurchaseReturn{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Ensure GormPurchaseReturnRepository implements trade.PurchaseReturnRepository
var _ trade.PurchaseReturnRepository = (*GormPurchaseReturnRepository)(nil)

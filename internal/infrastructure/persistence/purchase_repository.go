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

var purchaseSortFields = []string{"number", "date", "grand_total", "status", "created_at"}

// GormPurchaseRepository implements trade.PurchaseRepository using GORM
type GormPurchaseRepository struct {
	db *gorm.DB
}

// NewGormPurchaseRepository creates a new GormPurchaseRepository
func NewGormPurchaseRepository(db *gorm.DB) *GormPurchaseRepository {
	return &GormPurchaseRepository{db: db}
}

// FindByID finds a purchase by its ID including its details
func (r *GormPurchaseRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.Purchase, error) {
	var purchase trade.Purchase
	if err := r.db.WithContext(ctx).Preload("Details").First(&purchase, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &purchase, nil
}

// FindByIDForUpdate finds a purchase by ID with a row-level lock
func (r *GormPurchaseRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*trade.Purchase, error) {
	var purchase trade.Purchase
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Preload("Details").
		First(&purchase, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &purchase, nil
}

// FindByNumber finds a purchase by its document number
func (r *GormPurchaseRepository) FindByNumber(ctx context.Context, number string) (*trade.Purchase, error) {
	var purchase trade.Purchase
	if err := r.db.WithContext(ctx).Preload("Details").First(&purchase, "number = ?", number).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &purchase, nil
}

// FindAll finds purchases matching the filter
func (r *GormPurchaseRepository) FindAll(ctx context.Context, filter shared.Filter) (shared.Paginated[*trade.Purchase], error) {
	filter = normalizeFilter(filter)

	countQuery := r.db.WithContext(ctx).Model(&trade.Purchase{})
	countQuery = applySearch(countQuery, filter.Search, []string{"number", "supplier_name"})
	countQuery = applyDocumentFilters(countQuery, filter)

	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return shared.Paginated[*trade.Purchase]{}, err
	}

	query := r.db.WithContext(ctx).Model(&trade.Purchase{}).Preload("Details")
	query = applySearch(query, filter.Search, []string{"number", "supplier_name"})
	query = applyDocumentFilters(query, filter)
	query = applyOrdering(query, filter, purchaseSortFields, "date DESC, number DESC")
	query = applyPagination(query, filter)

	var purchases []*trade.Purchase
	if err := query.Find(&purchases).Error; err != nil {
		return shared.Paginated[*trade.Purchase]{}, err
	}
	return shared.NewPaginated(purchases, total, filter.Page, filter.PageSize), nil
}

// Save creates or updates a purchase together with its details. Details
// removed from the aggregate are deleted.
func (r *GormPurchaseRepository) Save(ctx context.Context, purchase *trade.Purchase) error {
	if err := r.db.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Save(purchase).Error; err != nil {
		return err
	}
	return deleteOrphanDetails(r.db.WithContext(ctx), &trade.PurchaseDetail{}, "purchase_id", purchase.ID, purchaseDetailIDs(purchase.Details))
}

// Delete deletes a purchase and its details
func (r *GormPurchaseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("purchase_id = ?", id).Delete(&trade.PurchaseDetail{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&trade.Purchase{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

func purchaseDetailIDs(details []trade.PurchaseDetail) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(details))
	for _, d := range details {
		ids = append(ids, d.ID)
	}
	return ids
}

// Ensure GormPurchaseRepository implements trade.PurchaseRepository
var _ trade.PurchaseRepository = (*GormPurchaseRepository)(nil)

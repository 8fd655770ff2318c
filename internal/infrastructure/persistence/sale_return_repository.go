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

// GormSaleReturnRepository implements trade.SaleReturnRepository using GORM
type GormSaleReturnRepository struct {
	db *gorm.DB
}

// NewGormSaleReturnRepository creates a new GormSaleReturnRepository
func NewGormSaleReturnRepository(db *gorm.DB) *GormSaleReturnRepository {
	return &GormSaleReturnRepository{db: db}
}

// FindByID finds a sale return by its ID including its details
func (r *GormSaleReturnRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.SaleReturn, error) {
	var ret trade.SaleReturn
	if err := r.db.WithContext(ctx).Preload("Details").First(&ret, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &ret, nil
}

// FindByIDForUpdate finds a sale return by ID with a row-level lock
func (r *GormSaleReturnRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*trade.SaleReturn, error) {
	var ret trade.SaleReturn
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

// FindByNumber finds a sale return by its document number
func (r *GormSaleReturnRepository) FindByNumber(ctx context.Context, number string) (*trade.SaleReturn, error) {
	var ret trade.SaleReturn
	if err := r.db.WithContext(ctx).Preload("Details").First(&ret, "number = ?", number).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &ret, nil
}

// FindBySale returns all returns raised against one sale
func (r *GormSaleReturnRepository) FindBySale(ctx context.Context, saleID uuid.UUID) ([]*trade.SaleReturn, error) {
	var returns []*trade.SaleReturn
	if err := r.db.WithContext(ctx).
		Preload("Details").
		Where("sale_id = ?", saleID).
		Order("date ASC, number ASC").
		Find(&returns).Error; err != nil {
		return nil, err
	}
	return returns, nil
}

// FindAll finds sale returns matching the filter
func (r *GormSaleReturnRepository) FindAll(ctx context.Context, filter shared.Filter) (shared.Paginated[*trade.SaleReturn], error) {
	filter = normalizeFilter(filter)

	countQuery := r.db.WithContext(ctx).Model(&trade.SaleReturn{})
	countQuery = applySearch(countQuery, filter.Search, []string{"number", "customer_name"})
	countQuery = applyDocumentFilters(countQuery, filter)

	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return shared.Paginated[*trade.SaleReturn]{}, err
	}

	query := r.db.WithContext(ctx).Model(&trade.SaleReturn{}).Preload("Details")
	query = applySearch(query, filter.Search, []string{"number", "customer_name"})
	query = applyDocumentFilters(query, filter)
	query = applyOrdering(query, filter, returnSortFields, "date DESC, number DESC")
	query = applyPagination(query, filter)

	var returns []*trade.SaleReturn
	if err := query.Find(&returns).Error; err != nil {
		return shared.Paginated[*trade.SaleReturn]{}, err
	}
	return shared.NewPaginated(returns, total, filter.Page, filter.PageSize), nil
}

// Save creates or updates a sale return together with its details. Details
// removed from the aggregate are deleted.
func (r *GormSaleReturnRepository) Save(ctx context.Context, ret *trade.SaleReturn) error {
	if err := r.db.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Save(ret).Error; err != nil {
		return err
	}

	keep := make([]uuid.UUID, 0, len(ret.Details))
	for _, d := range ret.Details {
		keep = append(keep, d.ID)
	}
	return deleteOrphanDetails(r.db.WithContext(ctx), &trade.SaleReturnDetail{}, "sale_return_id", ret.ID, keep)
}

// Delete deletes a sale return and its details
func (r *GormSaleReturnRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("sale_return_id = ?", id).Delete(&trade.SaleReturnDetail{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&trade.SaleReturn{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Ensure GormSaleReturnRepository implements trade.SaleReturnRepository
var _ trade.SaleReturnRepository = (*GormSaleReturnRepository)(nil)

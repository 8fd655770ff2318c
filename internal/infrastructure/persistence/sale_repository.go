package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jovinkendrico/pos-mandor-jaya-sub002/internal/domain/shared"
	"github.com/jovinkendrico/pos-mandor-jaya-sub002/internal/domain/trade"
)

var saleSortFields = []string{"number", "date", "grand_total", "total_profit", "status", "created_at"}

// GormSaleRepository implements trade.SaleRepository using GORM
type GormSaleRepository struct {
	db *gorm.DB
}

// NewGormSaleRepository creates a new GormSaleRepository
func NewGormSaleRepository(db *gorm.DB) *GormSaleRepository {
	return &GormSaleRepository{db: db}
}

// FindByID finds a sale by its ID including its details
func (r *GormSaleRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.Sale, error) {
	var sale trade.Sale
	if err := r.db.WithContext(ctx).Preload("Details").First(&sale, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &sale, nil
}

// FindByIDForUpdate finds a sale by ID with a row-level lock
func (r *GormSaleRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*trade.Sale, error) {
	var sale trade.Sale
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Preload("Details").
		First(&sale, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &sale, nil
}

// FindByNumber finds a sale by its document number
func (r *GormSaleRepository) FindByNumber(ctx context.Context, number string) (*trade.Sale, error) {
	var sale trade.Sale
	if err := r.db.WithContext(ctx).Preload("Details").First(&sale, "number = ?", number).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &sale, nil
}

// FindAll finds sales matching the filter
func (r *GormSaleRepository) FindAll(ctx context.Context, filter shared.Filter) (shared.Paginated[*trade.Sale], error) {
	filter = normalizeFilter(filter)

	countQuery := r.db.WithContext(ctx).Model(&trade.Sale{})
	countQuery = applySearch(countQuery, filter.Search, []string{"number", "customer_name"})
	countQuery = applyDocumentFilters(countQuery, filter)

	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return shared.Paginated[*trade.Sale]{}, err
	}

	query := r.db.WithContext(ctx).Model(&trade.Sale{}).Preload("Details")
	query = applySearch(query, filter.Search, []string{"number", "customer_name"})
	query = applyDocumentFilters(query, filter)
	query = applyOrdering(query, filter, saleSortFields, "date DESC, number DESC")
	query = applyPagination(query, filter)

	var sales []*trade.Sale
	if err := query.Find(&sales).Error; err != nil {
		return shared.Paginated[*trade.Sale]{}, err
	}
	return shared.NewPaginated(sales, total, filter.Page, filter.PageSize), nil
}

// FindConfirmedBetween returns confirmed sales with a date inside the range
func (r *GormSaleRepository) FindConfirmedBetween(ctx context.Context, from, to time.Time) ([]*trade.Sale, error) {
	var sales []*trade.Sale
	if err := r.db.WithContext(ctx).
		Preload("Details").
		Where("status = ? AND date >= ? AND date <= ?", trade.DocumentStatusConfirmed, from, to).
		Order("date ASC, number ASC").
		Find(&sales).Error; err != nil {
		return nil, err
	}
	return sales, nil
}

// Save creates or updates a sale together with its details. Details removed
// from the aggregate are deleted.
func (r *GormSaleRepository) Save(ctx context.Context, sale *trade.Sale) error {
	if err := r.db.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Save(sale).Error; err != nil {
		return err
	}

	keep := make([]uuid.UUID, 0, len(sale.Details))
	for _, d := range sale.Details {
		keep = append(keep, d.ID)
	}
	return deleteOrphanDetails(r.db.WithContext(ctx), &trade.SaleDetail{}, "sale_id", sale.ID, keep)
}

// Delete deletes a sale and its details
func (r *GormSaleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("sale_id = ?", id).Delete(&trade.SaleDetail{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&trade.Sale{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Ensure GormSaleRepository implements trade.SaleRepository
var _ trade.SaleRepository = (*GormSaleRepository)(nil)

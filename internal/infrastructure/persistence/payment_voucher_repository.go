package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jovinkendrico/pos-mandor-jaya-sub002/internal/domain/finance"
	"github.com/jovinkendrico/pos-mandor-jaya-sub002/internal/domain/shared"
)

var voucherSortFields = []string{"number", "date", "total_amount", "status", "created_at"}

// GormPaymentVoucherRepository implements finance.PaymentVoucherRepository using GORM
type GormPaymentVoucherRepository struct {
	db *gorm.DB
}

// NewGormPaymentVoucherRepository creates a new GormPaymentVoucherRepository
func NewGormPaymentVoucherRepository(db *gorm.DB) *GormPaymentVoucherRepository {
	return &GormPaymentVoucherRepository{db: db}
}

// FindByID finds a voucher by its ID including its allocations
func (r *GormPaymentVoucherRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.PaymentVoucher, error) {
	var voucher finance.PaymentVoucher
	if err := r.db.WithContext(ctx).Preload("Allocations").First(&voucher, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &voucher, nil
}

// FindByIDForUpdate finds a voucher by ID with a row-level lock
func (r *GormPaymentVoucherRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*finance.PaymentVoucher, error) {
	var voucher finance.PaymentVoucher
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Preload("Allocations").
		First(&voucher, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &voucher, nil
}

// FindByNumber finds a voucher by its number
func (r *GormPaymentVoucherRepository) FindByNumber(ctx context.Context, number string) (*finance.PaymentVoucher, error) {
	var voucher finance.PaymentVoucher
	if err := r.db.WithContext(ctx).Preload("Allocations").First(&voucher, "number = ?", number).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &voucher, nil
}

// FindAll finds vouchers matching the filter
func (r *GormPaymentVoucherRepository) FindAll(ctx context.Context, filter shared.Filter) (shared.Paginated[*finance.PaymentVoucher], error) {
	filter = normalizeFilter(filter)

	countQuery := r.db.WithContext(ctx).Model(&finance.PaymentVoucher{})
	countQuery = applySearch(countQuery, filter.Search, []string{"number", "party_name"})
	countQuery = applyVoucherFilters(countQuery, filter)

	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return shared.Paginated[*finance.PaymentVoucher]{}, err
	}

	query := r.db.WithContext(ctx).Model(&finance.PaymentVoucher{}).Preload("Allocations")
	query = applySearch(query, filter.Search, []string{"number", "party_name"})
	query = applyVoucherFilters(query, filter)
	query = applyOrdering(query, filter, voucherSortFields, "date DESC, number DESC")
	query = applyPagination(query, filter)

	var vouchers []*finance.PaymentVoucher
	if err := query.Find(&vouchers).Error; err != nil {
		return shared.Paginated[*finance.PaymentVoucher]{}, err
	}
	return shared.NewPaginated(vouchers, total, filter.Page, filter.PageSize), nil
}

// FindConfirmedBetween returns confirmed vouchers dated inside the range
func (r *GormPaymentVoucherRepository) FindConfirmedBetween(ctx context.Context, from, to time.Time) ([]*finance.PaymentVoucher, error) {
	var vouchers []*finance.PaymentVoucher
	if err := r.db.WithContext(ctx).
		Preload("Allocations").
		Where("status = ? AND date >= ? AND date <= ?", finance.VoucherStatusConfirmed, from, to).
		Order("date ASC, number ASC").
		Find(&vouchers).Error; err != nil {
		return nil, err
	}
	return vouchers, nil
}

// Save creates or updates a voucher together with its allocations.
// Allocations removed from the aggregate are deleted.
func (r *GormPaymentVoucherRepository) Save(ctx context.Context, voucher *finance.PaymentVoucher) error {
	if err := r.db.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Save(voucher).Error; err != nil {
		return err
	}

	keep := make([]uuid.UUID, 0, len(voucher.Allocations))
	for _, a := range voucher.Allocations {
		keep = append(keep, a.ID)
	}
	return deleteOrphanDetails(r.db.WithContext(ctx), &finance.PaymentAllocation{}, "voucher_id", voucher.ID, keep)
}

// Delete deletes a voucher and its allocations
func (r *GormPaymentVoucherRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("voucher_id = ?", id).Delete(&finance.PaymentAllocation{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&finance.PaymentVoucher{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// applyVoucherFilters applies the voucher-specific filter keys
func applyVoucherFilters(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "direction":
			query = query.Where("direction = ?", value)
		case "status":
			query = query.Where("status = ?", value)
		case "party_id":
			query = query.Where("party_id = ?", value)
		case "method":
			query = query.Where("method = ?", value)
		case "date_from":
			query = query.Where("date >= ?", value)
		case "date_to":
			query = query.Where("date <= ?", value)
		}
	}
	return query
}

// Ensure GormPaymentVoucherRepository implements finance.PaymentVoucherRepository
var _ finance.PaymentVoucherRepository = (*GormPaymentVoucherRepository)(nil)

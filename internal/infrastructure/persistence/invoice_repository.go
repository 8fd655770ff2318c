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

var invoiceSortFields = []string{"number", "date", "due_date", "total_amount", "paid_amount", "status", "created_at"}

// GormInvoiceRepository implements finance.InvoiceRepository using GORM
type GormInvoiceRepository struct {
	db *gorm.DB
}

// NewGormInvoiceRepository creates a new GormInvoiceRepository
func NewGormInvoiceRepository(db *gorm.DB) *GormInvoiceRepository {
	return &GormInvoiceRepository{db: db}
}

// FindByID finds an invoice by its ID
func (r *GormInvoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.Invoice, error) {
	var invoice finance.Invoice
	if err := r.db.WithContext(ctx).First(&invoice, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &invoice, nil
}

// FindByIDForUpdate finds an invoice by ID with a row-level lock
func (r *GormInvoiceRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*finance.Invoice, error) {
	var invoice finance.Invoice
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&invoice, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &invoice, nil
}

// FindBySource finds the invoice backing one source document
func (r *GormInvoiceRepository) FindBySource(ctx context.Context, sourceID uuid.UUID) (*finance.Invoice, error) {
	var invoice finance.Invoice
	if err := r.db.WithContext(ctx).First(&invoice, "source_id = ?", sourceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &invoice, nil
}

// FindAll finds invoices matching the filter
func (r *GormInvoiceRepository) FindAll(ctx context.Context, filter shared.Filter) (shared.Paginated[*finance.Invoice], error) {
	filter = normalizeFilter(filter)

	countQuery := r.db.WithContext(ctx).Model(&finance.Invoice{})
	countQuery = applySearch(countQuery, filter.Search, []string{"number", "party_name"})
	countQuery = applyInvoiceFilters(countQuery, filter)

	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return shared.Paginated[*finance.Invoice]{}, err
	}

	query := r.db.WithContext(ctx).Model(&finance.Invoice{})
	query = applySearch(query, filter.Search, []string{"number", "party_name"})
	query = applyInvoiceFilters(query, filter)
	query = applyOrdering(query, filter, invoiceSortFields, "date DESC, number DESC")
	query = applyPagination(query, filter)

	var invoices []*finance.Invoice
	if err := query.Find(&invoices).Error; err != nil {
		return shared.Paginated[*finance.Invoice]{}, err
	}
	return shared.NewPaginated(invoices, total, filter.Page, filter.PageSize), nil
}

// FindOutstanding returns unpaid and partially paid invoices for one
// direction, dated no later than asOf
func (r *GormInvoiceRepository) FindOutstanding(ctx context.Context, direction finance.InvoiceDirection, asOf time.Time) ([]*finance.Invoice, error) {
	var invoices []*finance.Invoice
	if err := r.db.WithContext(ctx).
		Where("direction = ? AND status IN ? AND date <= ?",
			direction,
			[]finance.InvoiceStatus{finance.InvoiceStatusUnpaid, finance.InvoiceStatusPartial},
			asOf).
		Order("due_date ASC, number ASC").
		Find(&invoices).Error; err != nil {
		return nil, err
	}
	return invoices, nil
}

// FindOutstandingByParty returns one party's unpaid and partially paid
// invoices for one direction
func (r *GormInvoiceRepository) FindOutstandingByParty(ctx context.Context, direction finance.InvoiceDirection, partyID uuid.UUID) ([]*finance.Invoice, error) {
	var invoices []*finance.Invoice
	if err := r.db.WithContext(ctx).
		Where("direction = ? AND party_id = ? AND status IN ?",
			direction,
			partyID,
			[]finance.InvoiceStatus{finance.InvoiceStatusUnpaid, finance.InvoiceStatusPartial}).
		Order("due_date ASC, number ASC").
		Find(&invoices).Error; err != nil {
		return nil, err
	}
	return invoices, nil
}

// Save creates or updates an invoice
func (r *GormInvoiceRepository) Save(ctx context.Context, invoice *finance.Invoice) error {
	return r.db.WithContext(ctx).Save(invoice).Error
}

// Delete deletes an invoice
func (r *GormInvoiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&finance.Invoice{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// applyInvoiceFilters applies the invoice-specific filter keys
func applyInvoiceFilters(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "direction":
			query = query.Where("direction = ?", value)
		case "status":
			query = query.Where("status = ?", value)
		case "party_id":
			query = query.Where("party_id = ?", value)
		case "date_from":
			query = query.Where("date >= ?", value)
		case "date_to":
			query = query.Where("date <= ?", value)
		}
	}
	return query
}

// Ensure GormInvoiceRepository implements finance.InvoiceRepository
var _ finance.InvoiceRepository = (*GormInvoiceRepository)(nil)

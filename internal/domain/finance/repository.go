package finance

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jovinkendrico/pos-mandor-jaya-sub002/internal/domain/shared"
)

// InvoiceRepository defines persistence operations for invoices
type InvoiceRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Invoice, error)
	// FindByIDForUpdate locks the invoice row so concurrent voucher
	// confirms against the same invoice serialize.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Invoice, error)
	FindBySource(ctx context.Context, sourceID uuid.UUID) (*Invoice, error)
	FindAll(ctx context.Context, filter shared.Filter) (shared.Paginated[*Invoice], error)
	// FindOutstanding returns unpaid and partially paid invoices for one
	// direction, used by the aging report.
	FindOutstanding(ctx context.Context, direction InvoiceDirection, asOf time.Time) ([]*Invoice, error)
	FindOutstandingByParty(ctx context.Context, direction InvoiceDirection, partyID uuid.UUID) ([]*Invoice, error)
	Save(ctx context.Context, invoice *Invoice) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// PaymentVoucherRepository defines persistence operations for payment
// vouchers
type PaymentVoucherRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*PaymentVoucher, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*PaymentVoucher, error)
	FindByNumber(ctx context.Context, number string) (*PaymentVoucher, error)
	FindAll(ctx context.Context, filter shared.Filter) (shared.Paginated[*PaymentVoucher], error)
	// FindConfirmedBetween returns confirmed vouchers dated inside the
	// range, used by the cash flow report.
	FindConfirmedBetween(ctx context.Context, from, to time.Time) ([]*PaymentVoucher, error)
	Save(ctx context.Context, voucher *PaymentVoucher) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// AdvanceRepository defines persistence operations for advances
type AdvanceRepository interface {
	FindByParty(ctx context.Context, direction VoucherDirection, partyID uuid.UUID) ([]*Advance, error)
	FindByVoucher(ctx context.Context, voucherID uuid.UUID) (*Advance, error)
	Save(ctx context.Context, advance *Advance) error
	DeleteByVoucher(ctx context.Context, voucherID uuid.UUID) error
}

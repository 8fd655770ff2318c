package finance

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jovinkendrico/pos-mandor-jaya-sub002/internal/domain/finance"
	"github.com/jovinkendrico/pos-mandor-jaya-sub002/internal/domain/shared"
)

// SurplusHandler decides what happens to the unallocated remainder of a
// confirmed voucher. The default books it as an advance for the party.
type SurplusHandler func(ctx context.Context, repos TransactionalRepositories, voucher *finance.PaymentVoucher) error

// AdvanceSurplusHandler books the voucher surplus as an advance
func AdvanceSurplusHandler(ctx context.Context, repos TransactionalRepositories, voucher *finance.PaymentVoucher) error {
	advance, err := finance.NewAdvance(
		voucher.Direction, voucher.PartyID, voucher.PartyName,
		voucher.ID, voucher.Date, voucher.SurplusAmount(),
		"Surplus from voucher "+voucher.Number,
	)
	if err != nil {
		return err
	}
	return repos.Advances().Save(ctx, advance)
}

// PaymentService handles payment voucher operations
type PaymentService struct {
	scope   TransactionScope
	surplus SurplusHandler
	logger  *zap.Logger
}

// NewPaymentService creates a new PaymentService with the default surplus
// handling
func NewPaymentService(scope TransactionScope, logger *zap.Logger) *PaymentService {
	return &PaymentService{scope: scope, surplus: AdvanceSurplusHandler, logger: logger}
}

// WithSurplusHandler overrides how voucher surpluses are booked
func (s *PaymentService) WithSurplusHandler(handler SurplusHandler) *PaymentService {
	s.surplus = handler
	return s
}

// Create creates a new pending voucher. Each allocation is checked against
// the invoice's direction and remaining balance, but nothing is applied
// until the voucher is confirmed.
func (s *PaymentService) Create(ctx context.Context, input CreateVoucherInput) (*finance.PaymentVoucher, error) {
	var voucher *finance.PaymentVoucher

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		if existing, err := repos.Vouchers().FindByNumber(ctx, input.Number); err == nil && existing != nil {
			return shared.ErrAlreadyExists
		}

		v, err := finance.NewPaymentVoucher(input.Number, input.Direction, input.PartyID, input.PartyName, input.Date, input.Method, input.TotalAmount)
		if err != nil {
			return err
		}
		if err := s.addAllocations(ctx, repos, v, input.Allocations); err != nil {
			return err
		}
		if input.Remark != "" {
			v.SetRemark(input.Remark)
		}

		voucher = v
		return repos.Vouchers().Save(ctx, v)
	})
	if err != nil {
		return nil, err
	}

	return voucher, nil
}

// Update replaces the editable parts of a pending voucher
func (s *PaymentService) Update(ctx context.Context, id uuid.UUID, input UpdateVoucherInput) (*finance.PaymentVoucher, error) {
	var voucher *finance.PaymentVoucher

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		v, err := repos.Vouchers().FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if !v.IsPending() {
			return shared.NewDomainError("INVALID_STATE", "Cannot modify a confirmed voucher")
		}

		for _, allocation := range append([]finance.PaymentAllocation(nil), v.Allocations...) {
			if err := v.RemoveAllocation(allocation.ID); err != nil {
				return err
			}
		}
		if err := v.SetTotalAmount(input.TotalAmount); err != nil {
			return err
		}
		if err := s.addAllocations(ctx, repos, v, input.Allocations); err != nil {
			return err
		}
		if !input.Date.IsZero() {
			v.Date = input.Date
		}
		if input.Method != "" {
			v.Method = input.Method
		}
		v.SetRemark(input.Remark)

		voucher = v
		return repos.Vouchers().Save(ctx, v)
	})
	if err != nil {
		return nil, err
	}

	return voucher, nil
}

// Delete removes a pending voucher
func (s *PaymentService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		v, err := repos.Vouchers().FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if !v.IsPending() {
			return shared.NewDomainError("INVALID_STATE", "Cannot delete a confirmed voucher")
		}
		return repos.Vouchers().Delete(ctx, id)
	})
}

// Confirm applies every allocation to its invoice and books any surplus.
// Each allocation is re-validated against the invoice's remaining balance at
// confirm time under a row lock, so a stale voucher cannot overpay an
// invoice that was settled elsewhere in the meantime.
func (s *PaymentService) Confirm(ctx context.Context, id uuid.UUID) (*finance.PaymentVoucher, error) {
	var voucher *finance.PaymentVoucher

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		v, err := repos.Vouchers().FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := v.Confirm(); err != nil {
			return err
		}

		for _, allocation := range v.Allocations {
			invoice, err := repos.Invoices().FindByIDForUpdate(ctx, allocation.InvoiceID)
			if err != nil {
				return err
			}
			if invoice.Direction != v.Direction.InvoiceDirection() {
				return shared.NewDomainError("INVALID_DIRECTION", "Allocation direction does not match the invoice")
			}
			if err := invoice.ApplyPayment(allocation.Amount); err != nil {
				return err
			}
			if err := repos.Invoices().Save(ctx, invoice); err != nil {
				return err
			}
		}

		if v.SurplusAmount().IsPositive() {
			if err := s.surplus(ctx, repos, v); err != nil {
				return err
			}
		}

		voucher = v
		return repos.Vouchers().Save(ctx, v)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("payment voucher confirmed",
		zap.String("number", voucher.Number),
		zap.String("total", voucher.TotalAmount.String()),
		zap.String("surplus", voucher.SurplusAmount().String()))

	return voucher, nil
}

// Unconfirm reverses every applied allocation, removes the advance the
// voucher created and transitions it back to PENDING
func (s *PaymentService) Unconfirm(ctx context.Context, id uuid.UUID) (*finance.PaymentVoucher, error) {
	var voucher *finance.PaymentVoucher

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		v, err := repos.Vouchers().FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if !v.IsConfirmed() {
			return shared.NewDomainError("INVALID_STATE", "Voucher is not confirmed")
		}

		for _, allocation := range v.Allocations {
			invoice, err := repos.Invoices().FindByIDForUpdate(ctx, allocation.InvoiceID)
			if err != nil {
				return err
			}
			if err := invoice.ReversePayment(allocation.Amount); err != nil {
				return err
			}
			if err := repos.Invoices().Save(ctx, invoice); err != nil {
				return err
			}
		}

		if err := repos.Advances().DeleteByVoucher(ctx, v.ID); err != nil {
			return err
		}
		if err := v.Unconfirm(); err != nil {
			return err
		}

		voucher = v
		return repos.Vouchers().Save(ctx, v)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("payment voucher unconfirmed", zap.String("number", voucher.Number))

	return voucher, nil
}

// GetByID retrieves a voucher by ID
func (s *PaymentService) GetByID(ctx context.Context, id uuid.UUID) (*finance.PaymentVoucher, error) {
	var voucher *finance.PaymentVoucher
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		v, err := repos.Vouchers().FindByID(ctx, id)
		if err != nil {
			return err
		}
		voucher = v
		return nil
	})
	if err != nil {
		return nil, err
	}
	return voucher, nil
}

// List retrieves vouchers with filtering and pagination
func (s *PaymentService) List(ctx context.Context, filter shared.Filter) (shared.Paginated[*finance.PaymentVoucher], error) {
	var page shared.Paginated[*finance.PaymentVoucher]
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		result, err := repos.Vouchers().FindAll(ctx, filter)
		if err != nil {
			return err
		}
		page = result
		return nil
	})
	return page, err
}

// ListInvoices retrieves invoices with filtering and pagination
func (s *PaymentService) ListInvoices(ctx context.Context, filter shared.Filter) (shared.Paginated[*finance.Invoice], error) {
	var page shared.Paginated[*finance.Invoice]
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		result, err := repos.Invoices().FindAll(ctx, filter)
		if err != nil {
			return err
		}
		page = result
		return nil
	})
	return page, err
}

// GetInvoice retrieves an invoice by ID
func (s *PaymentService) GetInvoice(ctx context.Context, id uuid.UUID) (*finance.Invoice, error) {
	var invoice *finance.Invoice
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		inv, err := repos.Invoices().FindByID(ctx, id)
		if err != nil {
			return err
		}
		invoice = inv
		return nil
	})
	if err != nil {
		return nil, err
	}
	return invoice, nil
}

// addAllocations validates each allocation against its invoice and appends
// it to the voucher. Amounts past the invoice's current remaining balance
// are rejected early; the check repeats at confirm time.
func (s *PaymentService) addAllocations(ctx context.Context, repos TransactionalRepositories, v *finance.PaymentVoucher, allocations []AllocationInput) error {
	for _, a := range allocations {
		invoice, err := repos.Invoices().FindByID(ctx, a.InvoiceID)
		if err != nil {
			return err
		}
		if invoice.Direction != v.Direction.InvoiceDirection() {
			return shared.NewDomainError("INVALID_DIRECTION", "Allocation direction does not match the invoice")
		}
		if a.Amount.GreaterThan(invoice.RemainingAmount()) {
			return shared.ErrOverAllocation
		}
		if _, err := v.AddAllocation(a.InvoiceID, a.Amount); err != nil {
			return err
		}
	}
	return nil
}

package finance

import (
	"context"

	"github.com/jovinkendrico/pos-mandor-jaya-sub002/internal/domain/finance"
)

// TransactionScope provides transactional access to the repositories a
// voucher confirmation touches. Applying a voucher mutates the voucher, its
// invoices and possibly an advance, so all of it runs inside one Execute
// call.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to all repositories scoped to
// the current transaction
type TransactionalRepositories interface {
	Invoices() finance.InvoiceRepository
	Vouchers() finance.PaymentVoucherRepository
	Advances() finance.AdvanceRepository
}

// NoOpTransactionScope runs the function without a real transaction, used in
// tests with in-memory repositories.
type NoOpTransactionScope struct {
	InvoiceRepo finance.InvoiceRepository
	VoucherRepo finance.PaymentVoucherRepository
	AdvanceRepo finance.AdvanceRepository
}

// Execute runs the function without transactional guarantees
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// Invoices returns the invoice repository
func (s *NoOpTransactionScope) Invoices() finance.InvoiceRepository { return s.InvoiceRepo }

// Vouchers returns the payment voucher repository
func (s *NoOpTransactionScope) Vouchers() finance.PaymentVoucherRepository { return s.VoucherRepo }

// Advances returns the advance repository
func (s *NoOpTransactionScope) Advances() finance.AdvanceRepository { return s.AdvanceRepo }

var (
	_ TransactionScope          = (*NoOpTransactionScope)(nil)
	_ TransactionalRepositories = (*NoOpTransactionScope)(nil)
)

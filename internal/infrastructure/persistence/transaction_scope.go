package persistence

import (
	"context"

	"gorm.io/gorm"

	appfinance "github.com/jovinkendrico/pos-mandor-jaya-sub002/internal/application/finance"
	apptrade "github.com/jovinkendrico/pos-mandor-jaya-sub002/internal/application/trade"
	"github.com/jovinkendrico/pos-mandor-jaya-sub002/internal/domain/costing"
	"github.com/jovinkendrico/pos-mandor-jaya-sub002/internal/domain/finance"
	"github.com/jovinkendrico/pos-mandor-jaya-sub002/internal/domain/item"
	"github.com/jovinkendrico/pos-mandor-jaya-sub002/internal/domain/trade"
)

// GormTradeTransactionScope implements the trade TransactionScope using GORM
// transactions. Document confirms mutate the document, the cost ledger, the
// item stock and the invoice in one transaction.
type GormTradeTransactionScope struct {
	db *gorm.DB
}

// NewGormTradeTransactionScope creates a new GormTradeTransactionScope
func NewGormTradeTransactionScope(db *gorm.DB) *GormTradeTransactionScope {
	return &GormTradeTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
func (s *GormTradeTransactionScope) Execute(ctx context.Context, fn func(repos apptrade.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTransactionalRepositories{tx: tx})
	})
}

// GormFinanceTransactionScope implements the finance TransactionScope using
// GORM transactions. Voucher confirms mutate the voucher, its invoices and
// possibly an advance in one transaction.
type GormFinanceTransactionScope struct {
	db *gorm.DB
}

// NewGormFinanceTransactionScope creates a new GormFinanceTransactionScope
func NewGormFinanceTransactionScope(db *gorm.DB) *GormFinanceTransactionScope {
	return &GormFinanceTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
func (s *GormFinanceTransactionScope) Execute(ctx context.Context, fn func(repos appfinance.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTransactionalRepositories{tx: tx})
	})
}

// gormTransactionalRepositories provides access to all repositories within a
// transaction. One struct serves both scope interfaces.
type gormTransactionalRepositories struct {
	tx *gorm.DB
}

// Items returns the item repository scoped to the current transaction
func (r *gormTransactionalRepositories) Items() item.Repository {
	return NewGormItemRepository(r.tx)
}

// Purchases returns the purchase repository scoped to the current transaction
func (r *gormTransactionalRepositories) Purchases() trade.PurchaseRepository {
	return NewGormPurchaseRepository(r.tx)
}

// Sales returns the sale repository scoped to the current transaction
func (r *gormTransactionalRepositories) Sales() trade.SaleRepository {
	return NewGormSaleRepository(r.tx)
}

// PurchaseReturns returns the purchase return repository scoped to the current transaction
func (r *gormTransactionalRepositories) PurchaseReturns() trade.PurchaseReturnRepository {
	return NewGormPurchaseReturnRepository(r.tx)
}

// SaleReturns returns the sale return repository scoped to the current transaction
func (r *gormTransactionalRepositories) SaleReturns() trade.SaleReturnRepository {
	return NewGormSaleReturnRepository(r.tx)
}

// Layers returns the cost layer repository scoped to the current transaction
func (r *gormTransactionalRepositories) Layers() costing.CostLayerRepository {
	return NewGormCostLayerRepository(r.tx)
}

// Consumptions returns the consumption record repository scoped to the current transaction
func (r *gormTransactionalRepositories) Consumptions() costing.ConsumptionRepository {
	return NewGormConsumptionRepository(r.tx)
}

// Movements returns the stock movement repository scoped to the current transaction
func (r *gormTransactionalRepositories) Movements() costing.StockMovementRepository {
	return NewGormStockMovementRepository(r.tx)
}

// Invoices returns the invoice repository scoped to the current transaction
func (r *gormTransactionalRepositories) Invoices() finance.InvoiceRepository {
	return NewGormInvoiceRepository(r.tx)
}

// Vouchers returns the payment voucher repository scoped to the current transaction
func (r *gormTransactionalRepositories) Vouchers() finance.PaymentVoucherRepository {
	return NewGormPaymentVoucherRepository(r.tx)
}

// Advances returns the advance repository scoped to the current transaction
func (r *gormTransactionalRepositories) Advances() finance.AdvanceRepository {
	return NewGormAdvanceRepository(r.tx)
}

var (
	_ apptrade.TransactionScope            = (*GormTradeTransactionScope)(nil)
	_ appfinance.TransactionScope          = (*GormFinanceTransactionScope)(nil)
	_ apptrade.TransactionalRepositories   = (*gormTransactionalRepositories)(nil)
	_ appfinance.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
)

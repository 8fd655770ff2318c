package trade

import (
	"context"

	"github.com/jovinkendrico/pos-mandor-jaya-sub002/internal/domain/costing"
	"github.com/jovinkendrico/pos-mandor-jaya-sub002/internal/domain/finance"
	"github.com/jovinkendrico/pos-mandor-jaya-sub002/internal/domain/item"
	"github.com/jovinkendrico/pos-mandor-jaya-sub002/internal/domain/trade"
)

// TransactionScope provides transactional access to the repositories a
// document confirmation touches. Every confirm and unconfirm runs inside one
// Execute call so the document, its ledger effects and its invoice commit or
// roll back atomically.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to all repositories scoped to
// the current transaction
type TransactionalRepositories interface {
	Items() item.Repository
	Purchases() trade.PurchaseRepository
	Sales() trade.SaleRepository
	PurchaseReturns() trade.PurchaseReturnRepository
	SaleReturns() trade.SaleReturnRepository
	Layers() costing.CostLayerRepository
	Consumptions() costing.ConsumptionRepository
	Movements() costing.StockMovementRepository
	Invoices() finance.InvoiceRepository
}

// NoOpTransactionScope runs the function without a real transaction, used in
// tests with in-memory repositories.
type NoOpTransactionScope struct {
	ItemRepo           item.Repository
	PurchaseRepo       trade.PurchaseRepository
	SaleRepo           trade.SaleRepository
	PurchaseReturnRepo trade.PurchaseReturnRepository
	SaleReturnRepo     trade.SaleReturnRepository
	LayerRepo          costing.CostLayerRepository
	ConsumptionRepo    costing.ConsumptionRepository
	MovementRepo       costing.StockMovementRepository
	InvoiceRepo        finance.InvoiceRepository
}

// Execute runs the function without transactional guarantees
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// Items returns the item repository
func (s *NoOpTransactionScope) Items() item.Repository { return s.ItemRepo }

// Purchases returns the purchase repository
func (s *NoOpTransactionScope) Purchases() trade.PurchaseRepository { return s.PurchaseRepo }

// Sales returns the sale repository
func (s *NoOpTransactionScope) Sales() trade.SaleRepository { return s.SaleRepo }

// PurchaseReturns returns the purchase return repository
func (s *NoOpTransactionScope) PurchaseReturns() trade.PurchaseReturnRepository {
	return s.PurchaseReturnRepo
}

// SaleReturns returns the sale return repository
func (s *NoOpTransactionScope) SaleReturns() trade.SaleReturnRepository { return s.SaleReturnRepo }

// Layers returns the cost layer repository
func (s *NoOpTransactionScope) Layers() costing.CostLayerRepository { return s.LayerRepo }

// Consumptions returns the consumption record repository
func (s *NoOpTransactionScope) Consumptions() costing.ConsumptionRepository {
	return s.ConsumptionRepo
}

// Movements returns the stock movement repository
func (s *NoOpTransactionScope) Movements() costing.StockMovementRepository { return s.MovementRepo }

// Invoices returns the invoice repository
func (s *NoOpTransactionScope) Invoices() finance.InvoiceRepository { return s.InvoiceRepo }

var (
	_ TransactionScope          = (*NoOpTransactionScope)(nil)
	_ TransactionalRepositories = (*NoOpTransactionScope)(nil)
)

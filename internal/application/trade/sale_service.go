package trade

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jovinkendrico/pos-mandor-jaya-sub002/internal/domain/shared"
	"github.com/jovinkendrico/pos-mandor-jaya-sub002/internal/domain/trade"
)

// SaleService handles sale document operations
type SaleService struct {
	scope   TransactionScope
	logger  *zap.Logger
	dueDays int
}

// NewSaleService creates a new SaleService
func NewSaleService(scope TransactionScope, logger *zap.Logger) *SaleService {
	return &SaleService{scope: scope, logger: logger, dueDays: defaultInvoiceDueDays}
}

// WithPaymentTermDays overrides the payment term applied to invoices opened
// by confirmation
func (s *SaleService) WithPaymentTermDays(days int) *SaleService {
	if days > 0 {
		s.dueDays = days
	}
	return s
}

// Create creates a new pending sale. Stock is not checked here; availability
// is enforced at confirm time against the ledger.
func (s *SaleService) Create(ctx context.Context, input CreateSaleInput) (*trade.Sale, error) {
	var sale *trade.Sale

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		if existing, err := repos.Sales().FindByNumber(ctx, input.Number); err == nil && existing != nil {
			return shared.ErrAlreadyExists
		}

		sl, err := trade.NewSale(input.Number, input.CustomerID, input.CustomerName, input.Date)
		if err != nil {
			return err
		}

		if err := addSaleDetails(ctx, repos, sl, input.Details); err != nil {
			return err
		}
		if err := sl.SetPPN(input.PPNPercent); err != nil {
			return err
		}
		if input.Remark != "" {
			sl.SetRemark(input.Remark)
		}

		sale = sl
		return repos.Sales().Save(ctx, sl)
	})
	if err != nil {
		return nil, err
	}

	return sale, nil
}

// Update replaces the editable parts of a pending sale
func (s *SaleService) Update(ctx context.Context, id uuid.UUID, input UpdateSaleInput) (*trade.Sale, error) {
	var sale *trade.Sale

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		sl, err := repos.Sales().FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if !sl.IsPending() {
			return shared.NewDomainError("INVALID_STATE", "Cannot modify a confirmed document")
		}

		for _, detail := range append([]trade.SaleDetail(nil), sl.Details...) {
			if err := sl.RemoveDetail(detail.ID); err != nil {
				return err
			}
		}
		if err := addSaleDetails(ctx, repos, sl, input.Details); err != nil {
			return err
		}
		if !input.Date.IsZero() {
			sl.Date = input.Date
		}
		if err := sl.SetPPN(input.PPNPercent); err != nil {
			return err
		}
		sl.SetRemark(input.Remark)

		sale = sl
		return repos.Sales().Save(ctx, sl)
	})
	if err != nil {
		return nil, err
	}

	return sale, nil
}

// Delete removes a pending sale
func (s *SaleService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		sl, err := repos.Sales().FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if !sl.IsPending() {
			return shared.NewDomainError("INVALID_STATE", "Cannot delete a confirmed document")
		}
		return repos.Sales().Delete(ctx, id)
	})
}

// Confirm consumes stock FIFO, opens the receivable invoice and transitions
// the sale to CONFIRMED. The whole operation is all-or-nothing: insufficient
// stock on any line rolls everything back.
func (s *SaleService) Confirm(ctx context.Context, id uuid.UUID) (*trade.Sale, error) {
	var sale *trade.Sale

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		sl, err := repos.Sales().FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := sl.Confirm(); err != nil {
			return err
		}

		effect := &saleEffect{doc: sl, dueDays: s.dueDays}
		if err := effect.apply(ctx, repos); err != nil {
			return err
		}

		sale = sl
		return repos.Sales().Save(ctx, sl)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("sale confirmed",
		zap.String("number", sale.Number),
		zap.String("grand_total", sale.GrandTotal.String()),
		zap.String("total_cost", sale.TotalCost.String()))

	return sale, nil
}

// Unconfirm replays the sale's consumption trail in reverse, restores the
// layers exactly and transitions the sale back to PENDING
func (s *SaleService) Unconfirm(ctx context.Context, id uuid.UUID) (*trade.Sale, error) {
	var sale *trade.Sale

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		sl, err := repos.Sales().FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if !sl.IsConfirmed() {
			return shared.NewDomainError("INVALID_STATE", "Document is not confirmed")
		}

		effect := &saleEffect{doc: sl}
		if err := effect.reverse(ctx, repos); err != nil {
			return err
		}
		if err := sl.Unconfirm(); err != nil {
			return err
		}

		sale = sl
		return repos.Sales().Save(ctx, sl)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("sale unconfirmed", zap.String("number", sale.Number))

	return sale, nil
}

// GetByID retrieves a sale by ID
func (s *SaleService) GetByID(ctx context.Context, id uuid.UUID) (*trade.Sale, error) {
	var sale *trade.Sale
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		sl, err := repos.Sales().FindByID(ctx, id)
		if err != nil {
			return err
		}
		sale = sl
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sale, nil
}

// List retrieves sales with filtering and pagination
func (s *SaleService) List(ctx context.Context, filter shared.Filter) (shared.Paginated[*trade.Sale], error) {
	var page shared.Paginated[*trade.Sale]
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		result, err := repos.Sales().FindAll(ctx, filter)
		if err != nil {
			return err
		}
		page = result
		return nil
	})
	return page, err
}

func addSaleDetails(ctx context.Context, repos TransactionalRepositories, sl *trade.Sale, details []DetailInput) error {
	for _, d := range details {
		it, err := repos.Items().FindByID(ctx, d.ItemID)
		if err != nil {
			return err
		}
		if err := it.Validate(); err != nil {
			return err
		}
		uom := it.GetUOM(d.UOMID)
		if uom == nil {
			return shared.NewDomainError("UOM_NOT_FOUND", "UOM does not belong to the item")
		}

		if _, err := sl.AddDetail(it.ID, it.Code, it.Name, uom.ID, uom.Name, uom.ConversionValue,
			d.Quantity, d.UnitPrice, d.Discount1Percent, d.Discount2Percent); err != nil {
			return err
		}
	}
	return nil
}

package trade

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jovinkendrico/pos-mandor-jaya-sub002/internal/domain/shared"
	"github.com/jovinkendrico/pos-mandor-jaya-sub002/internal/domain/trade"
)

// PurchaseService handles purchase document operations
type PurchaseService struct {
	scope   TransactionScope
	logger  *zap.Logger
	dueDays int
}

// NewPurchaseService creates a new PurchaseService
func NewPurchaseService(scope TransactionScope, logger *zap.Logger) *PurchaseService {
	return &PurchaseService{scope: scope, logger: logger, dueDays: defaultInvoiceDueDays}
}

// WithPaymentTermDays overrides the payment term applied to invoices opened
// by confirmation
func (s *PurchaseService) WithPaymentTermDays(days int) *PurchaseService {
	if days > 0 {
		s.dueDays = days
	}
	return s
}

// Create creates a new pending purchase
func (s *PurchaseService) Create(ctx context.Context, input CreatePurchaseInput) (*trade.Purchase, error) {
	var purchase *trade.Purchase

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		if existing, err := repos.Purchases().FindByNumber(ctx, input.Number); err == nil && existing != nil {
			return shared.ErrAlreadyExists
		}

		p, err := trade.NewPurchase(input.Number, input.SupplierID, input.SupplierName, input.Date)
		if err != nil {
			return err
		}

		if err := addPurchaseDetails(ctx, repos, p, input.Details); err != nil {
			return err
		}
		if err := p.SetPPN(input.PPNPercent); err != nil {
			return err
		}
		if input.Remark != "" {
			p.SetRemark(input.Remark)
		}

		purchase = p
		return repos.Purchases().Save(ctx, p)
	})
	if err != nil {
		return nil, err
	}

	return purchase, nil
}

// Update replaces the editable parts of a pending purchase
func (s *PurchaseService) Update(ctx context.Context, id uuid.UUID, input UpdatePurchaseInput) (*trade.Purchase, error) {
	var purchase *trade.Purchase

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		p, err := repos.Purchases().FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if !p.IsPending() {
			return shared.NewDomainError("INVALID_STATE", "Cannot modify a confirmed document")
		}

		for _, detail := range append([]trade.PurchaseDetail(nil), p.Details...) {
			if err := p.RemoveDetail(detail.ID); err != nil {
				return err
			}
		}
		if err := addPurchaseDetails(ctx, repos, p, input.Details); err != nil {
			return err
		}
		if !input.Date.IsZero() {
			p.Date = input.Date
		}
		if err := p.SetPPN(input.PPNPercent); err != nil {
			return err
		}
		p.SetRemark(input.Remark)

		purchase = p
		return repos.Purchases().Save(ctx, p)
	})
	if err != nil {
		return nil, err
	}

	return purchase, nil
}

// Delete removes a pending purchase
func (s *PurchaseService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		p, err := repos.Purchases().FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if !p.IsPending() {
			return shared.NewDomainError("INVALID_STATE", "Cannot delete a confirmed document")
		}
		return repos.Purchases().Delete(ctx, id)
	})
}

// Confirm applies the purchase's inventory and settlement effects and
// transitions it to CONFIRMED, all in one transaction
func (s *PurchaseService) Confirm(ctx context.Context, id uuid.UUID) (*trade.Purchase, error) {
	var purchase *trade.Purchase

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		p, err := repos.Purchases().FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := p.Confirm(); err != nil {
			return err
		}

		effect := &purchaseEffect{doc: p, dueDays: s.dueDays}
		if err := effect.apply(ctx, repos); err != nil {
			return err
		}

		purchase = p
		return repos.Purchases().Save(ctx, p)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("purchase confirmed",
		zap.String("number", purchase.Number),
		zap.String("grand_total", purchase.GrandTotal.String()))

	return purchase, nil
}

// Unconfirm reverses the purchase's effects and transitions it back to
// PENDING. Rejected while any of its cost layers has been consumed or its
// invoice has confirmed payments.
func (s *PurchaseService) Unconfirm(ctx context.Context, id uuid.UUID) (*trade.Purchase, error) {
	var purchase *trade.Purchase

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		p, err := repos.Purchases().FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if !p.IsConfirmed() {
			return shared.NewDomainError("INVALID_STATE", "Document is not confirmed")
		}

		effect := &purchaseEffect{doc: p}
		if err := effect.reverse(ctx, repos); err != nil {
			return err
		}
		if err := p.Unconfirm(); err != nil {
			return err
		}

		purchase = p
		return repos.Purchases().Save(ctx, p)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("purchase unconfirmed", zap.String("number", purchase.Number))

	return purchase, nil
}

// GetByID retrieves a purchase by ID
func (s *PurchaseService) GetByID(ctx context.Context, id uuid.UUID) (*trade.Purchase, error) {
	var purchase *trade.Purchase
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		p, err := repos.Purchases().FindByID(ctx, id)
		if err != nil {
			return err
		}
		purchase = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return purchase, nil
}

// List retrieves purchases with filtering and pagination
func (s *PurchaseService) List(ctx context.Context, filter shared.Filter) (shared.Paginated[*trade.Purchase], error) {
	var page shared.Paginated[*trade.Purchase]
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		result, err := repos.Purchases().FindAll(ctx, filter)
		if err != nil {
			return err
		}
		page = result
		return nil
	})
	return page, err
}

// addPurchaseDetails resolves each input line against the item's UOMs and
// appends it with conversion snapshots
func addPurchaseDetails(ctx context.Context, repos TransactionalRepositories, p *trade.Purchase, details []DetailInput) error {
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

		if _, err := p.AddDetail(it.ID, it.Code, it.Name, uom.ID, uom.Name, uom.ConversionValue,
			d.Quantity, d.UnitPrice, d.Discount1Percent, d.Discount2Percent); err != nil {
			return err
		}
	}
	return nil
}

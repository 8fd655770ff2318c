package trade

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jovinkendrico/pos-mandor-jaya-sub002/internal/domain/shared"
	"github.com/jovinkendrico/pos-mandor-jaya-sub002/internal/domain/trade"
)

// PurchaseReturnService handles purchase return operations
type PurchaseReturnService struct {
	scope  TransactionScope
	logger *zap.Logger
}

// NewPurchaseReturnService creates a new PurchaseReturnService
func NewPurchaseReturnService(scope TransactionScope, logger *zap.Logger) *PurchaseReturnService {
	return &PurchaseReturnService{scope: scope, logger: logger}
}

// Create creates a new pending purchase return against a confirmed purchase.
// Line prices and discounts are copied from the referenced purchase details.
func (s *PurchaseReturnService) Create(ctx context.Context, input CreatePurchaseReturnInput) (*trade.PurchaseReturn, error) {
	var ret *trade.PurchaseReturn

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		if existing, err := repos.PurchaseReturns().FindByNumber(ctx, input.Number); err == nil && existing != nil {
			return shared.ErrAlreadyExists
		}

		source, err := repos.Purchases().FindByID(ctx, input.PurchaseID)
		if err != nil {
			return err
		}
		if !source.IsConfirmed() {
			return shared.NewDomainError("INVALID_STATE", "Source purchase is not confirmed")
		}

		r, err := trade.NewPurchaseReturn(input.Number, source.ID, source.SupplierID, source.SupplierName, input.Date)
		if err != nil {
			return err
		}
		if err := r.SetPPN(source.PPNPercent); err != nil {
			return err
		}

		for _, d := range input.Details {
			sourceDetail := source.GetDetail(d.SourceDetailID)
			if sourceDetail == nil {
				return shared.NewDomainError("DETAIL_NOT_FOUND", "Source purchase detail not found")
			}
			if _, err := r.AddDetail(
				sourceDetail.ID, sourceDetail.ItemID, sourceDetail.ItemCode, sourceDetail.ItemName,
				sourceDetail.UOMID, sourceDetail.UOMName, sourceDetail.ConversionValue,
				d.Quantity, sourceDetail.UnitPrice,
				sourceDetail.Discount1Percent, sourceDetail.Discount2Percent,
			); err != nil {
				return err
			}
		}
		if input.Remark != "" {
			r.SetRemark(input.Remark)
		}

		ret = r
		return repos.PurchaseReturns().Save(ctx, r)
	})
	if err != nil {
		return nil, err
	}

	return ret, nil
}

// Delete removes a pending purchase return
func (s *PurchaseReturnService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		r, err := repos.PurchaseReturns().FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if !r.IsPending() {
			return shared.NewDomainError("INVALID_STATE", "Cannot delete a confirmed document")
		}
		return repos.PurchaseReturns().Delete(ctx, id)
	})
}

// Confirm permanently shrinks the source purchase's cost layers and
// transitions the return to CONFIRMED
func (s *PurchaseReturnService) Confirm(ctx context.Context, id uuid.UUID) (*trade.PurchaseReturn, error) {
	var ret *trade.PurchaseReturn

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		r, err := repos.PurchaseReturns().FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := r.Confirm(); err != nil {
			return err
		}

		effect := &purchaseReturnEffect{doc: r}
		if err := effect.apply(ctx, repos); err != nil {
			return err
		}

		ret = r
		return repos.PurchaseReturns().Save(ctx, r)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("purchase return confirmed", zap.String("number", ret.Number))

	return ret, nil
}

// Unconfirm grows the reduced layers back and transitions the return to
// PENDING
func (s *PurchaseReturnService) Unconfirm(ctx context.Context, id uuid.UUID) (*trade.PurchaseReturn, error) {
	var ret *trade.PurchaseReturn

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		r, err := repos.PurchaseReturns().FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if !r.IsConfirmed() {
			return shared.NewDomainError("INVALID_STATE", "Document is not confirmed")
		}

		effect := &purchaseReturnEffect{doc: r}
		if err := effect.reverse(ctx, repos); err != nil {
			return err
		}
		if err := r.Unconfirm(); err != nil {
			return err
		}

		ret = r
		return repos.PurchaseReturns().Save(ctx, r)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("purchase return unconfirmed", zap.String("number", ret.Number))

	return ret, nil
}

// GetByID retrieves a purchase return by ID
func (s *PurchaseReturnService) GetByID(ctx context.Context, id uuid.UUID) (*trade.PurchaseReturn, error) {
	var ret *trade.PurchaseReturn
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		r, err := repos.PurchaseReturns().FindByID(ctx, id)
		if err != nil {
			return err
		}
		ret = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ret, nil
}

// List retrieves purchase returns with filtering and pagination
func (s *PurchaseReturnService) List(ctx context.Context, filter shared.Filter) (shared.Paginated[*trade.PurchaseReturn], error) {
	var page shared.Paginated[*trade.PurchaseReturn]
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		result, err := repos.PurchaseReturns().FindAll(ctx, filter)
		if err != nil {
			return err
		}
		page = result
		return nil
	})
	return page, err
}

package trade

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jovinkendrico/pos-mandor-jaya-sub002/internal/domain/shared"
	"github.com/jovinkendrico/pos-mandor-jaya-sub002/internal/domain/trade"
)

// SaleReturnService handles sale return operations
type SaleReturnService struct {
	scope  TransactionScope
	logger *zap.Logger
}

// NewSaleReturnService creates a new SaleReturnService
func NewSaleReturnService(scope TransactionScope, logger *zap.Logger) *SaleReturnService {
	return &SaleReturnService{scope: scope, logger: logger}
}

// Create creates a new pending sale return against a confirmed sale. Line
// prices and discounts are copied from the referenced sale details so the
// refund matches what the customer paid.
func (s *SaleReturnService) Create(ctx context.Context, input CreateSaleReturnInput) (*trade.SaleReturn, error) {
	var ret *trade.SaleReturn

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		if existing, err := repos.SaleReturns().FindByNumber(ctx, input.Number); err == nil && existing != nil {
			return shared.ErrAlreadyExists
		}

		source, err := repos.Sales().FindByID(ctx, input.SaleID)
		if err != nil {
			return err
		}
		if !source.IsConfirmed() {
			return shared.NewDomainError("INVALID_STATE", "Source sale is not confirmed")
		}

		r, err := trade.NewSaleReturn(input.Number, source.ID, source.CustomerID, source.CustomerName, input.Date)
		if err != nil {
			return err
		}
		if err := r.SetPPN(source.PPNPercent); err != nil {
			return err
		}

		for _, d := range input.Details {
			sourceDetail := source.GetDetail(d.SourceDetailID)
			if sourceDetail == nil {
				return shared.NewDomainError("DETAIL_NOT_FOUND", "Source sale detail not found")
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
		return repos.SaleReturns().Save(ctx, r)
	})
	if err != nil {
		return nil, err
	}

	return ret, nil
}

// Delete removes a pending sale return
func (s *SaleReturnService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		r, err := repos.SaleReturns().FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if !r.IsPending() {
			return shared.NewDomainError("INVALID_STATE", "Cannot delete a confirmed document")
		}
		return repos.SaleReturns().Delete(ctx, id)
	})
}

// Confirm reinstates stock at the historical consumed costs and transitions
// the return to CONFIRMED
func (s *SaleReturnService) Confirm(ctx context.Context, id uuid.UUID) (*trade.SaleReturn, error) {
	var ret *trade.SaleReturn

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		r, err := repos.SaleReturns().FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := r.Confirm(); err != nil {
			return err
		}

		effect := &saleReturnEffect{doc: r}
		if err := effect.apply(ctx, repos); err != nil {
			return err
		}

		ret = r
		return repos.SaleReturns().Save(ctx, r)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("sale return confirmed",
		zap.String("number", ret.Number),
		zap.String("restored_cost", ret.RestoredCost.String()))

	return ret, nil
}

// Unconfirm removes the reinstated layers and transitions the return back
// to PENDING. Rejected when any reinstated layer was already consumed by a
// later sale.
func (s *SaleReturnService) Unconfirm(ctx context.Context, id uuid.UUID) (*trade.SaleReturn, error) {
	var ret *trade.SaleReturn

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		r, err := repos.SaleReturns().FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if !r.IsConfirmed() {
			return shared.NewDomainError("INVALID_STATE", "Document is not confirmed")
		}

		effect := &saleReturnEffect{doc: r}
		if err := effect.reverse(ctx, repos); err != nil {
			return err
		}
		if err := r.Unconfirm(); err != nil {
			return err
		}

		ret = r
		return repos.SaleReturns().Save(ctx, r)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("sale return unconfirmed", zap.String("number", ret.Number))

	return ret, nil
}

// GetByID retrieves a sale return by ID
func (s *SaleReturnService) GetByID(ctx context.Context, id uuid.UUID) (*trade.SaleReturn, error) {
	var ret *trade.SaleReturn
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		r, err := repos.SaleReturns().FindByID(ctx, id)
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

// List retrieves sale returns with filtering and pagination
func (s *SaleReturnService) List(ctx context.Context, filter shared.Filter) (shared.Paginated[*trade.SaleReturn], error) {
	var page shared.Paginated[*trade.SaleReturn]
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		result, err := repos.SaleReturns().FindAll(ctx, filter)
		if err != nil {
			return err
		}
		page = result
		return nil
	})
	return page, err
}

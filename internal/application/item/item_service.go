package item

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	apptrade "github.com/jovinkendrico/pos-mandor-jaya-sub002/internal/application/trade"
	"github.com/jovinkendrico/pos-mandor-jaya-sub002/internal/domain/costing"
	"github.com/jovinkendrico/pos-mandor-jaya-sub002/internal/domain/item"
	"github.com/jovinkendrico/pos-mandor-jaya-sub002/internal/domain/shared"
)

// ItemService handles item master data and the ledger entries that exist
// outside trade documents: opening balances and stock adjustments.
type ItemService struct {
	scope  apptrade.TransactionScope
	logger *zap.Logger
}

// NewItemService creates a new ItemService
func NewItemService(scope apptrade.TransactionScope, logger *zap.Logger) *ItemService {
	return &ItemService{scope: scope, logger: logger}
}

// Create creates a new item with its base UOM
func (s *ItemService) Create(ctx context.Context, input CreateItemInput) (*item.Item, error) {
	var created *item.Item

	err := s.scope.Execute(ctx, func(repos apptrade.TransactionalRepositories) error {
		if existing, err := repos.Items().FindByCode(ctx, input.Code); err == nil && existing != nil {
			return shared.ErrAlreadyExists
		}

		it, err := item.NewItem(input.Code, input.Name, input.Description, input.BaseUOMName, input.BasePrice)
		if err != nil {
			return err
		}

		created = it
		return repos.Items().Save(ctx, it)
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

// Update updates an item's basic information
func (s *ItemService) Update(ctx context.Context, id uuid.UUID, input UpdateItemInput) (*item.Item, error) {
	var updated *item.Item

	err := s.scope.Execute(ctx, func(repos apptrade.TransactionalRepositories) error {
		it, err := repos.Items().FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := it.Update(input.Name, input.Description); err != nil {
			return err
		}

		updated = it
		return repos.Items().Save(ctx, it)
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// Delete removes an item. Rejected while the item still has cost layers; the
// ledger history must be unwound through the documents that created it.
func (s *ItemService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.scope.Execute(ctx, func(repos apptrade.TransactionalRepositories) error {
		if _, err := repos.Items().FindByIDForUpdate(ctx, id); err != nil {
			return err
		}
		layers, err := repos.Layers().FindByItemFIFO(ctx, id)
		if err != nil {
			return err
		}
		if len(layers) > 0 {
			return shared.NewDomainError("ITEM_HAS_LEDGER", "Cannot delete an item with cost layers")
		}
		return repos.Items().Delete(ctx, id)
	})
}

// AddUOM adds an alternate UOM to an item
func (s *ItemService) AddUOM(ctx context.Context, itemID uuid.UUID, input UOMInput) (*item.Item, error) {
	var updated *item.Item

	err := s.scope.Execute(ctx, func(repos apptrade.TransactionalRepositories) error {
		it, err := repos.Items().FindByIDForUpdate(ctx, itemID)
		if err != nil {
			return err
		}
		if _, err := it.AddUOM(input.Name, input.ConversionValue, input.Price); err != nil {
			return err
		}

		updated = it
		return repos.Items().Save(ctx, it)
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// UpdateUOM updates an item's UOM
func (s *ItemService) UpdateUOM(ctx context.Context, itemID, uomID uuid.UUID, input UOMInput) (*item.Item, error) {
	var updated *item.Item

	err := s.scope.Execute(ctx, func(repos apptrade.TransactionalRepositories) error {
		it, err := repos.Items().FindByIDForUpdate(ctx, itemID)
		if err != nil {
			return err
		}
		if err := it.UpdateUOM(uomID, input.Name, input.ConversionValue, input.Price); err != nil {
			return err
		}
		if err := it.Validate(); err != nil {
			return err
		}

		updated = it
		return repos.Items().Save(ctx, it)
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// RemoveUOM removes a non-base UOM from an item
func (s *ItemService) RemoveUOM(ctx context.Context, itemID, uomID uuid.UUID) (*item.Item, error) {
	var updated *item.Item

	err := s.scope.Execute(ctx, func(repos apptrade.TransactionalRepositories) error {
		it, err := repos.Items().FindByIDForUpdate(ctx, itemID)
		if err != nil {
			return err
		}
		if err := it.RemoveUOM(uomID); err != nil {
			return err
		}

		updated = it
		return repos.Items().Save(ctx, it)
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// SetBaseUOM re-bases an item onto another of its UOMs
func (s *ItemService) SetBaseUOM(ctx context.Context, itemID, uomID uuid.UUID) (*item.Item, error) {
	var updated *item.Item

	err := s.scope.Execute(ctx, func(repos apptrade.TransactionalRepositories) error {
		it, err := repos.Items().FindByIDForUpdate(ctx, itemID)
		if err != nil {
			return err
		}
		if err := it.SetBaseUOM(uomID); err != nil {
			return err
		}
		if err := it.Validate(); err != nil {
			return err
		}

		updated = it
		return repos.Items().Save(ctx, it)
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// SetOpeningBalance seeds an item's ledger with one opening layer. Only
// allowed while the item has no ledger at all.
func (s *ItemService) SetOpeningBalance(ctx context.Context, input OpeningBalanceInput) (*item.Item, error) {
	var updated *item.Item

	err := s.scope.Execute(ctx, func(repos apptrade.TransactionalRepositories) error {
		it, err := repos.Items().FindByIDForUpdate(ctx, input.ItemID)
		if err != nil {
			return err
		}
		existing, err := repos.Layers().FindByItemFIFO(ctx, input.ItemID)
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			return shared.NewDomainError("INVALID_STATE", "Item already has ledger entries")
		}

		entryID := uuid.New()
		layer, err := costing.NewCostLayer(it.ID, costing.ReferenceTypeOpeningBalance, entryID, entryID, input.UnitCost, input.Quantity)
		if err != nil {
			return err
		}
		if err := repos.Layers().Save(ctx, layer); err != nil {
			return err
		}

		movement, err := costing.NewStockMovement(it.ID, costing.ReferenceTypeOpeningBalance, entryID, costing.MovementIn, input.Quantity, input.UnitCost, input.Quantity, input.Date)
		if err != nil {
			return err
		}
		if err := repos.Movements().SaveAll(ctx, []costing.StockMovement{*movement}); err != nil {
			return err
		}
		if err := it.RecalculateStock(input.Quantity); err != nil {
			return err
		}

		updated = it
		return repos.Items().Save(ctx, it)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("opening balance set",
		zap.String("item", updated.Code),
		zap.String("quantity", input.Quantity.String()))

	return updated, nil
}

// AdjustStock corrects an item's ledger to a counted quantity. A surplus
// becomes a new adjustment layer at the given unit cost; a shortage consumes
// existing layers FIFO and leaves a consumption trail under the adjustment's
// reference.
func (s *ItemService) AdjustStock(ctx context.Context, input AdjustStockInput) (*item.Item, error) {
	var updated *item.Item

	err := s.scope.Execute(ctx, func(repos apptrade.TransactionalRepositories) error {
		it, err := repos.Items().FindByIDForUpdate(ctx, input.ItemID)
		if err != nil {
			return err
		}
		if input.Quantity.IsNegative() {
			return shared.NewDomainError("INVALID_QUANTITY", "Counted quantity cannot be negative")
		}

		layers, err := repos.Layers().FindByItemFIFOForUpdate(ctx, input.ItemID)
		if err != nil {
			return err
		}
		current := costing.TotalRemaining(layers)
		delta := input.Quantity.Sub(current)
		if delta.IsZero() {
			updated = it
			return nil
		}

		entryID := uuid.New()
		if delta.IsPositive() {
			if input.UnitCost.LessThanOrEqual(decimal.Zero) {
				return shared.NewDomainError("INVALID_COST", "Unit cost is required when adding stock")
			}
			layer, err := costing.NewCostLayer(it.ID, costing.ReferenceTypeStockAdjustment, entryID, entryID, input.UnitCost, delta)
			if err != nil {
				return err
			}
			if err := repos.Layers().Save(ctx, layer); err != nil {
				return err
			}
			movement, err := costing.NewStockMovement(it.ID, costing.ReferenceTypeStockAdjustment, entryID, costing.MovementIn, delta, input.UnitCost, input.Quantity, input.Date)
			if err != nil {
				return err
			}
			if err := repos.Movements().SaveAll(ctx, []costing.StockMovement{*movement}); err != nil {
				return err
			}
		} else {
			shortage := delta.Abs()
			result, err := costing.ConsumeFIFO(shortage, layers)
			if err != nil {
				return err
			}
			if err := repos.Layers().SaveAll(ctx, layers); err != nil {
				return err
			}

			records := make([]costing.ConsumptionRecord, 0, len(result.Consumptions))
			for _, c := range result.Consumptions {
				rec, err := costing.NewConsumptionRecord(entryID, entryID, c.CostLayerID, c.Quantity, c.UnitCost)
				if err != nil {
					return err
				}
				records = append(records, *rec)
			}
			if err := repos.Consumptions().SaveAll(ctx, records); err != nil {
				return err
			}

			unitCost := decimal.Zero
			if !shortage.IsZero() {
				unitCost = result.TotalCost.Div(shortage).Round(6)
			}
			movement, err := costing.NewStockMovement(it.ID, costing.ReferenceTypeStockAdjustment, entryID, costing.MovementOut, shortage, unitCost, input.Quantity, input.Date)
			if err != nil {
				return err
			}
			if err := repos.Movements().SaveAll(ctx, []costing.StockMovement{*movement}); err != nil {
				return err
			}
		}

		if err := it.RecalculateStock(input.Quantity); err != nil {
			return err
		}

		updated = it
		return repos.Items().Save(ctx, it)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("stock adjusted",
		zap.String("item", updated.Code),
		zap.String("quantity", input.Quantity.String()))

	return updated, nil
}

// GetByID retrieves an item by ID
func (s *ItemService) GetByID(ctx context.Context, id uuid.UUID) (*item.Item, error) {
	var found *item.Item
	err := s.scope.Execute(ctx, func(repos apptrade.TransactionalRepositories) error {
		it, err := repos.Items().FindByID(ctx, id)
		if err != nil {
			return err
		}
		found = it
		return nil
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

// List retrieves items with filtering and pagination
func (s *ItemService) List(ctx context.Context, filter shared.Filter) ([]item.Item, int64, error) {
	var (
		items []item.Item
		total int64
	)
	err := s.scope.Execute(ctx, func(repos apptrade.TransactionalRepositories) error {
		found, err := repos.Items().FindAll(ctx, filter)
		if err != nil {
			return err
		}
		count, err := repos.Items().Count(ctx, filter)
		if err != nil {
			return err
		}
		items = found
		total = count
		return nil
	})
	return items, total, err
}

package costing

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jovinkendrico/pos-mandor-jaya-sub002/internal/domain/shared"
)

// Consumption describes one (layer, quantity) draw produced by a FIFO
// consume operation
type Consumption struct {
	CostLayerID uuid.UUID
	Quantity    decimal.Decimal
	UnitCost    decimal.Decimal
}

// TotalCost returns the cost of this draw
func (c Consumption) TotalCost() decimal.Decimal {
	return c.Quantity.Mul(c.UnitCost)
}

// ConsumeResult is the outcome of a FIFO consume operation over an item's
// layers
type ConsumeResult struct {
	Consumptions []Consumption
	TotalCost    decimal.Decimal
}

// TotalRemaining sums the remaining quantity across layers. This is the
// ledger-derived stock of the item.
func TotalRemaining(layers []*CostLayer) decimal.Decimal {
	total := decimal.Zero
	for _, l := range layers {
		total = total.Add(l.RemainingQuantity)
	}
	return total
}

// ConsumeFIFO draws the needed base-unit quantity from the given layers in
// order (callers pass layers oldest-first). The operation is all-or-nothing:
// if the layers cannot cover the full quantity, no layer is mutated and
// ErrInsufficientStock is returned.
func ConsumeFIFO(need decimal.Decimal, layers []*CostLayer) (*ConsumeResult, error) {
	if need.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Requested quantity must be positive")
	}
	if TotalRemaining(layers).LessThan(need) {
		return nil, shared.ErrInsufficientStock
	}

	result := &ConsumeResult{
		Consumptions: make([]Consumption, 0, 1),
		TotalCost:    decimal.Zero,
	}

	remaining := need
	for _, layer := range layers {
		if remaining.IsZero() {
			break
		}
		if layer.IsExhausted() {
			continue
		}

		draw := decimal.Min(remaining, layer.RemainingQuantity)
		layer.Consume(draw)

		result.Consumptions = append(result.Consumptions, Consumption{
			CostLayerID: layer.ID,
			Quantity:    draw,
			UnitCost:    layer.UnitCost,
		})
		result.TotalCost = result.TotalCost.Add(draw.Mul(layer.UnitCost))
		remaining = remaining.Sub(draw)
	}

	return result, nil
}

// RestoreConsumptions folds over a sale's consumption records in reverse,
// adding each drawn quantity back to its layer. Every referenced layer must
// be present in the given set.
func RestoreConsumptions(records []ConsumptionRecord, layers []*CostLayer) error {
	byID := make(map[uuid.UUID]*CostLayer, len(layers))
	for _, l := range layers {
		byID[l.ID] = l
	}

	for i := len(records) - 1; i >= 0; i-- {
		rec := records[i]
		layer, ok := byID[rec.CostLayerID]
		if !ok {
			return shared.NewDomainError("LAYER_NOT_FOUND", "Cost layer referenced by consumption record not found")
		}
		if err := layer.Restore(rec.Quantity); err != nil {
			return err
		}
	}

	return nil
}

// ReduceForReturn removes the returned base-unit quantity from the layers
// created by one purchase detail, oldest-first. The reduction is permanent
// (both initial and remaining shrink) and all-or-nothing: if downstream
// sales already consumed too much of the layers, ErrInsufficientStock is
// returned and nothing is mutated. The per-layer draws are returned so the
// reduction can be reversed exactly on unconfirm.
func ReduceForReturn(need decimal.Decimal, layers []*CostLayer) (*ConsumeResult, error) {
	if need.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Return quantity must be positive")
	}
	if TotalRemaining(layers).LessThan(need) {
		return nil, shared.ErrInsufficientStock
	}

	result := &ConsumeResult{
		Consumptions: make([]Consumption, 0, 1),
		TotalCost:    decimal.Zero,
	}

	remaining := need
	for _, layer := range layers {
		if remaining.IsZero() {
			break
		}
		if layer.IsExhausted() {
			continue
		}

		take := decimal.Min(remaining, layer.RemainingQuantity)
		if err := layer.ReduceInitial(take); err != nil {
			return nil, err
		}

		result.Consumptions = append(result.Consumptions, Consumption{
			CostLayerID: layer.ID,
			Quantity:    take,
			UnitCost:    layer.UnitCost,
		})
		result.TotalCost = result.TotalCost.Add(take.Mul(layer.UnitCost))
		remaining = remaining.Sub(take)
	}

	return result, nil
}

// ReverseReduction folds over a purchase return's reduction records in
// reverse, growing each layer back by the quantity the return removed
func ReverseReduction(records []ConsumptionRecord, layers []*CostLayer) error {
	byID := make(map[uuid.UUID]*CostLayer, len(layers))
	for _, l := range layers {
		byID[l.ID] = l
	}

	for i := len(records) - 1; i >= 0; i-- {
		rec := records[i]
		layer, ok := byID[rec.CostLayerID]
		if !ok {
			return shared.NewDomainError("LAYER_NOT_FOUND", "Cost layer referenced by reduction record not found")
		}
		if err := layer.ExpandInitial(rec.Quantity); err != nil {
			return err
		}
	}

	return nil
}

// SkipConsumptions returns the tail of a detail's consumption records after
// skipping the given base-unit quantity. Earlier sale returns against the
// same detail consumed the head of the log, so later returns reinstate cost
// from where they left off.
func SkipConsumptions(records []ConsumptionRecord, skip decimal.Decimal) []ConsumptionRecord {
	if skip.LessThanOrEqual(decimal.Zero) {
		return records
	}

	tail := make([]ConsumptionRecord, 0, len(records))
	remaining := skip
	for _, rec := range records {
		if remaining.IsZero() {
			tail = append(tail, rec)
			continue
		}
		if rec.Quantity.LessThanOrEqual(remaining) {
			remaining = remaining.Sub(rec.Quantity)
			continue
		}

		partial := rec
		partial.Quantity = rec.Quantity.Sub(remaining)
		remaining = decimal.Zero
		tail = append(tail, partial)
	}

	return tail
}

// ReinstateFromConsumptions creates new cost layers for stock returned by a
// customer, drawing unit costs from the original sale detail's consumption
// records so the stock re-enters FIFO at its true historical cost. One layer
// is created per drawn record; the total restored cost is returned alongside.
func ReinstateFromConsumptions(
	itemID uuid.UUID,
	returnID, returnDetailID uuid.UUID,
	need decimal.Decimal,
	records []ConsumptionRecord,
) ([]*CostLayer, decimal.Decimal, error) {
	if need.LessThanOrEqual(decimal.Zero) {
		return nil, decimal.Zero, shared.NewDomainError("INVALID_QUANTITY", "Return quantity must be positive")
	}

	available := decimal.Zero
	for _, rec := range records {
		available = available.Add(rec.Quantity)
	}
	if available.LessThan(need) {
		return nil, decimal.Zero, shared.NewDomainError("INVALID_RETURN_QUANTITY", "Return quantity exceeds the quantity originally sold")
	}

	layers := make([]*CostLayer, 0, 1)
	restoredCost := decimal.Zero
	remaining := need
	for _, rec := range records {
		if remaining.IsZero() {
			break
		}

		take := decimal.Min(remaining, rec.Quantity)
		layer, err := NewCostLayer(itemID, ReferenceTypeSaleReturn, returnID, returnDetailID, rec.UnitCost, take)
		if err != nil {
			return nil, decimal.Zero, err
		}
		layers = append(layers, layer)
		restoredCost = restoredCost.Add(take.Mul(rec.UnitCost))
		remaining = remaining.Sub(take)
	}

	return layers, restoredCost, nil
}

// AllUntouched returns true if none of the layers has been consumed. A
// purchase can only be unconfirmed while all the layers it created are
// untouched.
func AllUntouched(layers []*CostLayer) bool {
	for _, l := range layers {
		if !l.IsUntouched() {
			return false
		}
	}
	return true
}

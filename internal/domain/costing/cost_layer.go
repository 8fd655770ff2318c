package costing

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jovinkendrico/pos-mandor-jaya-sub002/internal/domain/shared"
)

// CostLayer represents a FIFO-ordered batch of stock with its own unit cost,
// created when a purchase (or sale return) line is confirmed. Layers are
// consumed in insertion order and retained at zero remaining quantity for
// traceability; a layer is only deleted when the document that created it is
// unconfirmed, which requires the layer to be untouched.
type CostLayer struct {
	shared.BaseEntity
	ItemID            uuid.UUID       `gorm:"type:uuid;not null;index:idx_cost_layers_item_seq,priority:1"`
	SourceType        ReferenceType   `gorm:"type:varchar(20);not null;index:idx_cost_layers_source"`
	SourceID          uuid.UUID       `gorm:"type:uuid;not null;index:idx_cost_layers_source"`
	SourceDetailID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	UnitCost          decimal.Decimal `gorm:"type:decimal(18,6);not null"` // Cost per base unit
	InitialQuantity   decimal.Decimal `gorm:"type:decimal(18,4);not null"` // Base units at creation
	RemainingQuantity decimal.Decimal `gorm:"type:decimal(18,4);not null;index:idx_cost_layers_item_seq,priority:2"`
}

// TableName returns the table name for GORM
func (CostLayer) TableName() string {
	return "cost_layers"
}

// NewCostLayer creates a new cost layer
func NewCostLayer(itemID uuid.UUID, sourceType ReferenceType, sourceID, sourceDetailID uuid.UUID, unitCost, quantity decimal.Decimal) (*CostLayer, error) {
	if itemID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ITEM", "Item ID cannot be empty")
	}
	if sourceID == uuid.Nil || sourceDetailID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SOURCE", "Source document reference cannot be empty")
	}
	if unitCost.IsNegative() {
		return nil, shared.NewDomainError("INVALID_COST", "Unit cost cannot be negative")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}

	return &CostLayer{
		BaseEntity:        shared.NewBaseEntity(),
		ItemID:            itemID,
		SourceType:        sourceType,
		SourceID:          sourceID,
		SourceDetailID:    sourceDetailID,
		UnitCost:          unitCost,
		InitialQuantity:   quantity,
		RemainingQuantity: quantity,
	}, nil
}

// Consume reduces the remaining quantity.
// Returns the actual quantity consumed (may be less than requested).
func (l *CostLayer) Consume(quantity decimal.Decimal) decimal.Decimal {
	if quantity.GreaterThan(l.RemainingQuantity) {
		consumed := l.RemainingQuantity
		l.RemainingQuantity = decimal.Zero
		l.Touch()
		return consumed
	}

	l.RemainingQuantity = l.RemainingQuantity.Sub(quantity)
	l.Touch()
	return quantity
}

// Restore adds back previously consumed quantity. Remaining quantity can
// never exceed the layer's initial quantity.
func (l *CostLayer) Restore(quantity decimal.Decimal) error {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_QUANTITY", "Restore quantity must be positive")
	}
	restored := l.RemainingQuantity.Add(quantity)
	if restored.GreaterThan(l.InitialQuantity) {
		return shared.NewDomainError("INVALID_RESTORE", "Restore would exceed the layer's initial quantity")
	}
	l.RemainingQuantity = restored
	l.Touch()
	return nil
}

// ReduceInitial permanently removes quantity from both the initial and
// remaining quantities, used when a purchase return sends stock back to the
// supplier. Fails if the layer no longer holds the requested quantity.
func (l *CostLayer) ReduceInitial(quantity decimal.Decimal) error {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_QUANTITY", "Reduce quantity must be positive")
	}
	if quantity.GreaterThan(l.RemainingQuantity) {
		return shared.ErrInsufficientStock
	}
	l.InitialQuantity = l.InitialQuantity.Sub(quantity)
	l.RemainingQuantity = l.RemainingQuantity.Sub(quantity)
	l.Touch()
	return nil
}

// ExpandInitial adds quantity back to both the initial and remaining
// quantities, reversing a prior ReduceInitial when a purchase return is
// unconfirmed.
func (l *CostLayer) ExpandInitial(quantity decimal.Decimal) error {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_QUANTITY", "Expand quantity must be positive")
	}
	l.InitialQuantity = l.InitialQuantity.Add(quantity)
	l.RemainingQuantity = l.RemainingQuantity.Add(quantity)
	l.Touch()
	return nil
}

// IsUntouched returns true if nothing has been consumed from the layer
func (l *CostLayer) IsUntouched() bool {
	return l.RemainingQuantity.Equal(l.InitialQuantity)
}

// IsExhausted returns true if the layer has no remaining quantity
func (l *CostLayer) IsExhausted() bool {
	return l.RemainingQuantity.IsZero()
}

// RemainingValue returns the value of the remaining quantity at the layer's
// unit cost
func (l *CostLayer) RemainingValue() decimal.Decimal {
	return l.RemainingQuantity.Mul(l.UnitCost)
}

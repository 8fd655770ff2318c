package costing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jovinkendrico/pos-mandor-jaya-sub002/internal/domain/shared"
)

// ReferenceType identifies the document type behind a stock movement or
// cost layer
type ReferenceType string

const (
	ReferenceTypePurchase        ReferenceType = "PURCHASE"
	ReferenceTypeSale            ReferenceType = "SALE"
	ReferenceTypePurchaseReturn  ReferenceType = "PURCHASE_RETURN"
	ReferenceTypeSaleReturn      ReferenceType = "SALE_RETURN"
	ReferenceTypeStockAdjustment ReferenceType = "STOCK_ADJUSTMENT"
	ReferenceTypeOpeningBalance  ReferenceType = "OPENING_BALANCE"
)

// String returns the string representation of ReferenceType
func (t ReferenceType) String() string {
	return string(t)
}

// IsValid returns true if the reference type is valid
func (t ReferenceType) IsValid() bool {
	switch t {
	case ReferenceTypePurchase,
		ReferenceTypeSale,
		ReferenceTypePurchaseReturn,
		ReferenceTypeSaleReturn,
		ReferenceTypeStockAdjustment,
		ReferenceTypeOpeningBalance:
		return true
	}
	return false
}

// MovementDirection represents whether a movement adds or removes stock
type MovementDirection string

const (
	MovementIn  MovementDirection = "IN"
	MovementOut MovementDirection = "OUT"
)

// IsValid returns true if the direction is valid
func (d MovementDirection) IsValid() bool {
	return d == MovementIn || d == MovementOut
}

// StockMovement is one row of an item's stock card: a signed base-unit
// movement tagged with its source document and the balance after it.
// Movements reflect confirmed documents only; unconfirming a document
// deletes its movements so the card stays consistent with the ledger.
type StockMovement struct {
	shared.BaseEntity
	ItemID        uuid.UUID         `gorm:"type:uuid;not null;index:idx_stock_movements_item_time,priority:1"`
	ReferenceType ReferenceType     `gorm:"type:varchar(20);not null;index:idx_stock_movements_ref"`
	ReferenceID   uuid.UUID         `gorm:"type:uuid;not null;index:idx_stock_movements_ref"`
	Direction     MovementDirection `gorm:"type:varchar(3);not null"`
	Quantity      decimal.Decimal   `gorm:"type:decimal(18,4);not null"` // Always positive, base units
	UnitCost      decimal.Decimal   `gorm:"type:decimal(18,6);not null"`
	BalanceAfter  decimal.Decimal   `gorm:"type:decimal(18,4);not null"` // Item stock after this movement
	MovementDate  time.Time         `gorm:"type:timestamptz;not null;index:idx_stock_movements_item_time,priority:2"`
}

// TableName returns the table name for GORM
func (StockMovement) TableName() string {
	return "stock_movements"
}

// NewStockMovement creates a new stock movement record
func NewStockMovement(
	itemID uuid.UUID,
	refType ReferenceType,
	refID uuid.UUID,
	direction MovementDirection,
	quantity, unitCost, balanceAfter decimal.Decimal,
	movementDate time.Time,
) (*StockMovement, error) {
	if itemID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ITEM", "Item ID cannot be empty")
	}
	if !refType.IsValid() {
		return nil, shared.NewDomainError("INVALID_REFERENCE_TYPE", "Invalid reference type")
	}
	if refID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_REFERENCE", "Reference ID cannot be empty")
	}
	if !direction.IsValid() {
		return nil, shared.NewDomainError("INVALID_DIRECTION", "Invalid movement direction")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitCost.IsNegative() {
		return nil, shared.NewDomainError("INVALID_COST", "Unit cost cannot be negative")
	}
	if balanceAfter.IsNegative() {
		return nil, shared.ErrInsufficientStock
	}
	if movementDate.IsZero() {
		movementDate = time.Now()
	}

	return &StockMovement{
		BaseEntity:    shared.NewBaseEntity(),
		ItemID:        itemID,
		ReferenceType: refType,
		ReferenceID:   refID,
		Direction:     direction,
		Quantity:      quantity,
		UnitCost:      unitCost,
		BalanceAfter:  balanceAfter,
		MovementDate:  movementDate,
	}, nil
}

// SignedQuantity returns the quantity with direction applied
func (m *StockMovement) SignedQuantity() decimal.Decimal {
	if m.Direction == MovementOut {
		return m.Quantity.Neg()
	}
	return m.Quantity
}

package item

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateItemInput carries a new item with its base UOM
type CreateItemInput struct {
	Code        string          `json:"code" binding:"required,max=30"`
	Name        string          `json:"name" binding:"required,max=100"`
	Description string          `json:"description" binding:"max=255"`
	BaseUOMName string          `json:"base_uom_name" binding:"required,max=20"`
	BasePrice   decimal.Decimal `json:"base_price"`
}

// UpdateItemInput updates an item's basic information
type UpdateItemInput struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description" binding:"max=255"`
}

// UOMInput carries a UOM definition for an item
type UOMInput struct {
	Name            string          `json:"name" binding:"required,max=20"`
	ConversionValue decimal.Decimal `json:"conversion_value" binding:"required"`
	Price           decimal.Decimal `json:"price"`
}

// OpeningBalanceInput seeds an item's ledger before trading starts
type OpeningBalanceInput struct {
	ItemID   uuid.UUID       `json:"item_id" binding:"required"`
	Quantity decimal.Decimal `json:"quantity" binding:"required"`
	UnitCost decimal.Decimal `json:"unit_cost" binding:"required"`
	Date     time.Time       `json:"date"`
}

// AdjustStockInput corrects an item's ledger to a counted quantity. UnitCost
// prices the added layer when the count exceeds the ledger; shrinking
// consumes existing layers FIFO and ignores it.
type AdjustStockInput struct {
	ItemID   uuid.UUID       `json:"item_id" binding:"required"`
	Quantity decimal.Decimal `json:"quantity" binding:"required"`
	UnitCost decimal.Decimal `json:"unit_cost"`
	Date     time.Time       `json:"date"`
}

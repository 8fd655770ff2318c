package item

import (
	"github.com/shopspring/decimal"

	"github.com/jovinkendrico/pos-mandor-jaya-sub002/internal/domain/shared"
)

// Event types for the item aggregate
const (
	EventTypeItemCreated      = "item.created"
	EventTypeItemStockChanged = "item.stock_changed"
)

// ItemCreatedEvent is raised when a new item is created
type ItemCreatedEvent struct {
	shared.BaseDomainEvent
	Code string `json:"code"`
	Name string `json:"name"`
}

// NewItemCreatedEvent creates a new ItemCreatedEvent
func NewItemCreatedEvent(it *Item) *ItemCreatedEvent {
	return &ItemCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeItemCreated, "Item", it.ID),
		Code:            it.Code,
		Name:            it.Name,
	}
}

// ItemStockChangedEvent is raised when an item's ledger-derived stock changes
type ItemStockChangedEvent struct {
	shared.BaseDomainEvent
	PreviousStock decimal.Decimal `json:"previous_stock"`
	CurrentStock  decimal.Decimal `json:"current_stock"`
}

// NewItemStockChangedEvent creates a new ItemStockChangedEvent
func NewItemStockChangedEvent(it *Item, previous decimal.Decimal) *ItemStockChangedEvent {
	return &ItemStockChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeItemStockChanged, "Item", it.ID),
		PreviousStock:   previous,
		CurrentStock:    it.Stock,
	}
}

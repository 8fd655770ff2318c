package item

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jovinkendrico/pos-mandor-jaya-sub002/internal/domain/shared"
)

// Item represents a stocked product aggregate root. Stock is held in base
// units and is always derived from the cost ledger: it is recalculated from
// the sum of remaining layer quantities inside the same transaction that
// mutates the layers, never incremented independently.
type Item struct {
	shared.BaseAggregateRoot
	Code        string          `gorm:"type:varchar(30);not null;uniqueIndex"`
	Name        string          `gorm:"type:varchar(100);not null"`
	Description string          `gorm:"type:varchar(255)"`
	Stock       decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"` // Base units, ledger-derived
	UOMs        []ItemUOM       `gorm:"foreignKey:ItemID"`
}

// TableName returns the table name for GORM
func (Item) TableName() string {
	return "items"
}

// NewItem creates a new item with a base UOM
func NewItem(code, name, description, baseUOMName string, basePrice decimal.Decimal) (*Item, error) {
	if code == "" {
		return nil, shared.NewDomainError("INVALID_CODE", "Item code cannot be empty")
	}
	if len(code) > 30 {
		return nil, shared.NewDomainError("INVALID_CODE", "Item code cannot exceed 30 characters")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Item name cannot be empty")
	}

	it := &Item{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              code,
		Name:              name,
		Description:       description,
		Stock:             decimal.Zero,
		UOMs:              make([]ItemUOM, 0, 1),
	}

	base, err := NewItemUOM(it.ID, baseUOMName, decimal.NewFromInt(1), basePrice)
	if err != nil {
		return nil, err
	}
	base.markBase()
	it.UOMs = append(it.UOMs, *base)

	it.AddDomainEvent(NewItemCreatedEvent(it))

	return it, nil
}

// Update updates the item's basic information
func (it *Item) Update(name, description string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Item name cannot be empty")
	}
	it.Name = name
	it.Description = description
	it.UpdatedAt = time.Now()
	return nil
}

// AddUOM adds an alternate UOM to the item
func (it *Item) AddUOM(name string, conversionValue, price decimal.Decimal) (*ItemUOM, error) {
	for _, u := range it.UOMs {
		if u.Name == name {
			return nil, shared.NewDomainError("DUPLICATE_UOM", "UOM with this name already exists for the item")
		}
	}

	uom, err := NewItemUOM(it.ID, name, conversionValue, price)
	if err != nil {
		return nil, err
	}
	it.UOMs = append(it.UOMs, *uom)
	it.UpdatedAt = time.Now()

	return uom, nil
}

// UpdateUOM updates an existing UOM on the item
func (it *Item) UpdateUOM(uomID uuid.UUID, name string, conversionValue, price decimal.Decimal) error {
	for idx := range it.UOMs {
		if it.UOMs[idx].ID != uomID && it.UOMs[idx].Name == name {
			return shared.NewDomainError("DUPLICATE_UOM", "UOM with this name already exists for the item")
		}
	}
	for idx := range it.UOMs {
		if it.UOMs[idx].ID == uomID {
			if err := it.UOMs[idx].Update(name, conversionValue, price); err != nil {
				return err
			}
			it.UpdatedAt = time.Now()
			return nil
		}
	}
	return shared.NewDomainError("UOM_NOT_FOUND", "Item UOM not found")
}

// RemoveUOM removes a non-base UOM from the item
func (it *Item) RemoveUOM(uomID uuid.UUID) error {
	for idx, u := range it.UOMs {
		if u.ID == uomID {
			if u.IsBase {
				return shared.NewDomainError("INVALID_STATE", "Cannot remove the base UOM")
			}
			it.UOMs = append(it.UOMs[:idx], it.UOMs[idx+1:]...)
			it.UpdatedAt = time.Now()
			return nil
		}
	}
	return shared.NewDomainError("UOM_NOT_FOUND", "Item UOM not found")
}

// SetBaseUOM marks the given UOM as the base unit. All sibling UOMs are
// un-based and the new base's conversion is forced to exactly 1.
func (it *Item) SetBaseUOM(uomID uuid.UUID) error {
	var target *ItemUOM
	for idx := range it.UOMs {
		if it.UOMs[idx].ID == uomID {
			target = &it.UOMs[idx]
			break
		}
	}
	if target == nil {
		return shared.NewDomainError("UOM_NOT_FOUND", "Item UOM not found")
	}

	for idx := range it.UOMs {
		it.UOMs[idx].unmarkBase()
	}
	target.markBase()
	it.UpdatedAt = time.Now()

	return nil
}

// BaseUOM returns the item's base UOM, or nil if none is set
func (it *Item) BaseUOM() *ItemUOM {
	for idx := range it.UOMs {
		if it.UOMs[idx].IsBase {
			return &it.UOMs[idx]
		}
	}
	return nil
}

// GetUOM returns a UOM by its ID
func (it *Item) GetUOM(uomID uuid.UUID) *ItemUOM {
	for idx := range it.UOMs {
		if it.UOMs[idx].ID == uomID {
			return &it.UOMs[idx]
		}
	}
	return nil
}

// ToBaseQuantity converts a quantity in the given UOM to base units
func (it *Item) ToBaseQuantity(uomID uuid.UUID, quantity decimal.Decimal) (decimal.Decimal, error) {
	uom := it.GetUOM(uomID)
	if uom == nil {
		return decimal.Zero, shared.NewDomainError("UOM_NOT_FOUND", "Item UOM not found")
	}
	return uom.ToBase(quantity), nil
}

// Validate checks the item's UOM invariants: exactly one base UOM with a
// conversion of exactly 1, all others with conversion >= 1.
func (it *Item) Validate() error {
	baseCount := 0
	for _, u := range it.UOMs {
		if u.IsBase {
			baseCount++
			if !u.ConversionValue.Equal(decimal.NewFromInt(1)) {
				return shared.NewDomainError("INVALID_CONVERSION", "Base UOM conversion must be exactly 1")
			}
		}
		if err := validateConversionValue(u.ConversionValue); err != nil {
			return err
		}
	}
	if baseCount != 1 {
		return shared.NewDomainError("INVALID_BASE_UOM", "Item must have exactly one base UOM")
	}
	return nil
}

// RecalculateStock sets the cached stock from the ledger-derived total.
// A negative total indicates ledger corruption and is rejected.
func (it *Item) RecalculateStock(totalRemaining decimal.Decimal) error {
	if totalRemaining.IsNegative() {
		return shared.ErrInsufficientStock
	}
	it.Stock = totalRemaining
	it.UpdatedAt = time.Now()
	return nil
}

// HasStock returns true if the item has available stock
func (it *Item) HasStock() bool {
	return it.Stock.GreaterThan(decimal.Zero)
}

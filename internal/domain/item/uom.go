package item

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jovinkendrico/pos-mandor-jaya-sub002/internal/domain/shared"
)

// ItemUOM represents a unit of measure for an item with a conversion factor
// to the item's base unit (e.g. 1 Kotak = 100 PCS). Prices are stored per
// UOM and are independent of the base unit price.
type ItemUOM struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ItemID          uuid.UUID       `gorm:"type:uuid;not null;index;uniqueIndex:idx_item_uom_name,priority:1"`
	Name            string          `gorm:"type:varchar(20);not null;uniqueIndex:idx_item_uom_name,priority:2"`
	ConversionValue decimal.Decimal `gorm:"type:decimal(18,6);not null"` // Base units per 1 of this UOM
	Price           decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	IsBase          bool            `gorm:"not null;default:false"`
	CreatedAt       time.Time       `gorm:"not null;autoCreateTime"`
	UpdatedAt       time.Time       `gorm:"not null;autoUpdateTime"`
}

// TableName returns the table name for GORM
func (ItemUOM) TableName() string {
	return "item_uoms"
}

// NewItemUOM creates a new item UOM
func NewItemUOM(itemID uuid.UUID, name string, conversionValue, price decimal.Decimal) (*ItemUOM, error) {
	if err := validateUOMName(name); err != nil {
		return nil, err
	}
	if err := validateConversionValue(conversionValue); err != nil {
		return nil, err
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}

	now := time.Now()
	return &ItemUOM{
		ID:              uuid.New(),
		ItemID:          itemID,
		Name:            name,
		ConversionValue: conversionValue,
		Price:           price,
		IsBase:          false,
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

// Update updates the UOM's name, conversion and price.
// The base UOM's conversion is pinned to 1 regardless of the given value.
func (u *ItemUOM) Update(name string, conversionValue, price decimal.Decimal) error {
	if err := validateUOMName(name); err != nil {
		return err
	}
	if err := validateConversionValue(conversionValue); err != nil {
		return err
	}
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}

	u.Name = name
	u.ConversionValue = conversionValue
	if u.IsBase {
		u.ConversionValue = decimal.NewFromInt(1)
	}
	u.Price = price
	u.UpdatedAt = time.Now()

	return nil
}

// ToBase converts a quantity in this UOM to base units.
// Formula: baseQuantity = quantity * conversionValue
func (u *ItemUOM) ToBase(quantity decimal.Decimal) decimal.Decimal {
	return quantity.Mul(u.ConversionValue)
}

// markBase marks this UOM as the base unit and pins its conversion to 1
func (u *ItemUOM) markBase() {
	u.IsBase = true
	u.ConversionValue = decimal.NewFromInt(1)
	u.UpdatedAt = time.Now()
}

// unmarkBase clears the base flag
func (u *ItemUOM) unmarkBase() {
	if u.IsBase {
		u.IsBase = false
		u.UpdatedAt = time.Now()
	}
}

func validateUOMName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_UOM_NAME", "UOM name cannot be empty")
	}
	if len(name) > 20 {
		return shared.NewDomainError("INVALID_UOM_NAME", "UOM name cannot exceed 20 characters")
	}
	return nil
}

func validateConversionValue(value decimal.Decimal) error {
	if value.LessThan(decimal.NewFromInt(1)) {
		return shared.NewDomainError("INVALID_CONVERSION", "Conversion value must be at least 1")
	}
	return nil
}

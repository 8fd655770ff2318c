package trade

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jovinkendrico/pos-mandor-jaya-sub002/internal/domain/shared"
)

// PurchaseDetail represents a line item in a purchase
type PurchaseDetail struct {
	ID               uuid.UUID       `gorm:"type:uuid;primary_key"`
	PurchaseID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	ItemID           uuid.UUID       `gorm:"type:uuid;not null"`
	ItemCode         string          `gorm:"type:varchar(50);not null"`
	ItemName         string          `gorm:"type:varchar(200);not null"`
	UOMID            uuid.UUID       `gorm:"type:uuid;not null"`
	UOMName          string          `gorm:"type:varchar(20);not null"`
	ConversionValue  decimal.Decimal `gorm:"type:decimal(18,6);not null;default:1"` // Snapshot at entry time
	Quantity         decimal.Decimal `gorm:"type:decimal(18,4);not null"`           // In the entered UOM
	BaseQuantity     decimal.Decimal `gorm:"type:decimal(18,4);not null"`           // Quantity * ConversionValue
	UnitPrice        decimal.Decimal `gorm:"type:decimal(18,4);not null"`           // Price per entered UOM
	Discount1Percent decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Discount2Percent decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Discount1Amount  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Discount2Amount  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Total            decimal.Decimal `gorm:"type:decimal(18,4);not null"` // Net of both discounts
	CreatedAt        time.Time       `gorm:"not null"`
	UpdatedAt        time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (PurchaseDetail) TableName() string {
	return "purchase_details"
}

// NewPurchaseDetail creates a new purchase detail line. The UOM fields are a
// snapshot: later conversion changes on the item never rewrite this line.
func NewPurchaseDetail(purchaseID, itemID uuid.UUID, itemCode, itemName string, uomID uuid.UUID, uomName string, conversionValue, quantity, unitPrice, discount1Percent, discount2Percent decimal.Decimal) (*PurchaseDetail, error) {
	if itemID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ITEM", "Item ID cannot be empty")
	}
	if uomID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_UOM", "UOM ID cannot be empty")
	}
	if conversionValue.LessThan(decimal.NewFromInt(1)) {
		return nil, shared.NewDomainError("INVALID_CONVERSION", "Conversion value must be at least 1")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}
	if !validPercent(discount1Percent) || !validPercent(discount2Percent) {
		return nil, shared.NewDomainError("INVALID_DISCOUNT", "Discount percentage must be between 0 and 100")
	}

	now := time.Now()
	detail := &PurchaseDetail{
		ID:               uuid.New(),
		PurchaseID:       purchaseID,
		ItemID:           itemID,
		ItemCode:         itemCode,
		ItemName:         itemName,
		UOMID:            uomID,
		UOMName:          uomName,
		ConversionValue:  conversionValue,
		Quantity:         quantity,
		UnitPrice:        unitPrice,
		Discount1Percent: discount1Percent,
		Discount2Percent: discount2Percent,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	detail.recalculate()

	return detail, nil
}

func (d *PurchaseDetail) recalculate() {
	amounts := calculateLineAmounts(d.Quantity, d.UnitPrice, d.Discount1Percent, d.Discount2Percent)
	d.Discount1Amount = amounts.Discount1Amount
	d.Discount2Amount = amounts.Discount2Amount
	d.Total = amounts.Total
	d.BaseQuantity = d.Quantity.Mul(d.ConversionValue).Round(4)
	d.UpdatedAt = time.Now()
}

func (d *PurchaseDetail) amounts() lineAmounts {
	return calculateLineAmounts(d.Quantity, d.UnitPrice, d.Discount1Percent, d.Discount2Percent)
}

// BaseUnitCost returns the effective cost per base unit after discounts.
// This is the unit cost recorded on the cost layer when the purchase is
// confirmed.
func (d *PurchaseDetail) BaseUnitCost() decimal.Decimal {
	if d.BaseQuantity.IsZero() {
		return decimal.Zero
	}
	return d.Total.Div(d.BaseQuantity).Round(6)
}

// Purchase represents a supplier purchase aggregate root. A pending purchase
// is an editable draft with no ledger footprint; confirming it creates one
// cost layer per line, inbound stock movements and a payable invoice, and
// unconfirming reverses all of that.
type Purchase struct {
	shared.BaseAggregateRoot
	Number         string           `gorm:"type:varchar(50);not null;uniqueIndex"`
	SupplierID     uuid.UUID        `gorm:"type:uuid;not null;index"`
	SupplierName   string           `gorm:"type:varchar(200);not null"`
	Date           time.Time        `gorm:"type:date;not null;index"`
	Details        []PurchaseDetail `gorm:"foreignKey:PurchaseID;references:ID"`
	Subtotal       decimal.Decimal  `gorm:"type:decimal(18,4);not null;default:0"`
	TotalDiscount1 decimal.Decimal  `gorm:"type:decimal(18,4);not null;default:0"`
	TotalDiscount2 decimal.Decimal  `gorm:"type:decimal(18,4);not null;default:0"`
	PPNPercent     decimal.Decimal  `gorm:"type:decimal(18,4);not null;default:0"`
	PPNAmount      decimal.Decimal  `gorm:"type:decimal(18,4);not null;default:0"`
	GrandTotal     decimal.Decimal  `gorm:"type:decimal(18,4);not null;default:0"`
	Status         DocumentStatus   `gorm:"type:varchar(20);not null;default:'PENDING'"`
	Remark         string           `gorm:"type:text"`
	ConfirmedAt    *time.Time       `gorm:"index"`
}

// TableName returns the table name for GORM
func (Purchase) TableName() string {
	return "purchases"
}

// NewPurchase creates a new pending purchase
func NewPurchase(number string, supplierID uuid.UUID, supplierName string, date time.Time) (*Purchase, error) {
	if number == "" {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Document number cannot be empty")
	}
	if len(number) > 50 {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Document number cannot exceed 50 characters")
	}
	if supplierID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SUPPLIER", "Supplier ID cannot be empty")
	}
	if supplierName == "" {
		return nil, shared.NewDomainError("INVALID_SUPPLIER_NAME", "Supplier name cannot be empty")
	}
	if date.IsZero() {
		date = time.Now()
	}

	purchase := &Purchase{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Number:            number,
		SupplierID:        supplierID,
		SupplierName:      supplierName,
		Date:              date,
		Details:           make([]PurchaseDetail, 0),
		Subtotal:          decimal.Zero,
		TotalDiscount1:    decimal.Zero,
		TotalDiscount2:    decimal.Zero,
		PPNPercent:        decimal.Zero,
		PPNAmount:         decimal.Zero,
		GrandTotal:        decimal.Zero,
		Status:            DocumentStatusPending,
	}

	purchase.AddDomainEvent(NewPurchaseCreatedEvent(purchase))

	return purchase, nil
}

// AddDetail adds a new line to the purchase. Only allowed while pending.
func (p *Purchase) AddDetail(itemID uuid.UUID, itemCode, itemName string, uomID uuid.UUID, uomName string, conversionValue, quantity, unitPrice, discount1Percent, discount2Percent decimal.Decimal) (*PurchaseDetail, error) {
	if p.Status != DocumentStatusPending {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot modify a confirmed document")
	}

	detail, err := NewPurchaseDetail(p.ID, itemID, itemCode, itemName, uomID, uomName, conversionValue, quantity, unitPrice, discount1Percent, discount2Percent)
	if err != nil {
		return nil, err
	}

	p.Details = append(p.Details, *detail)
	p.recalculateTotals()
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return detail, nil
}

// UpdateDetail replaces the editable fields of an existing line.
// Only allowed while pending.
func (p *Purchase) UpdateDetail(detailID uuid.UUID, quantity, unitPrice, discount1Percent, discount2Percent decimal.Decimal) error {
	if p.Status != DocumentStatusPending {
		return shared.NewDomainError("INVALID_STATE", "Cannot modify a confirmed document")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}
	if !validPercent(discount1Percent) || !validPercent(discount2Percent) {
		return shared.NewDomainError("INVALID_DISCOUNT", "Discount percentage must be between 0 and 100")
	}

	for idx := range p.Details {
		if p.Details[idx].ID == detailID {
			p.Details[idx].Quantity = quantity
			p.Details[idx].UnitPrice = unitPrice
			p.Details[idx].Discount1Percent = discount1Percent
			p.Details[idx].Discount2Percent = discount2Percent
			p.Details[idx].recalculate()
			p.recalculateTotals()
			p.UpdatedAt = time.Now()
			p.IncrementVersion()
			return nil
		}
	}

	return shared.NewDomainError("DETAIL_NOT_FOUND", "Document detail not found")
}

// RemoveDetail removes a line from the purchase. Only allowed while pending.
func (p *Purchase) RemoveDetail(detailID uuid.UUID) error {
	if p.Status != DocumentStatusPending {
		return shared.NewDomainError("INVALID_STATE", "Cannot modify a confirmed document")
	}

	for idx, detail := range p.Details {
		if detail.ID == detailID {
			p.Details = append(p.Details[:idx], p.Details[idx+1:]...)
			p.recalculateTotals()
			p.UpdatedAt = time.Now()
			p.IncrementVersion()
			return nil
		}
	}

	return shared.NewDomainError("DETAIL_NOT_FOUND", "Document detail not found")
}

// SetPPN sets the document-level PPN percentage. Only allowed while pending.
func (p *Purchase) SetPPN(ppnPercent decimal.Decimal) error {
	if p.Status != DocumentStatusPending {
		return shared.NewDomainError("INVALID_STATE", "Cannot modify a confirmed document")
	}
	if !validPercent(ppnPercent) {
		return shared.NewDomainError("INVALID_PPN", "PPN percentage must be between 0 and 100")
	}

	p.PPNPercent = ppnPercent
	p.recalculateTotals()
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// SetRemark sets the document remark
func (p *Purchase) SetRemark(remark string) {
	p.Remark = remark
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// Confirm transitions the purchase from PENDING to CONFIRMED. The caller is
// responsible for applying the inventory and financial effects in the same
// transaction.
func (p *Purchase) Confirm() error {
	if !p.Status.CanTransitionTo(DocumentStatusConfirmed) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot confirm document in %s status", p.Status))
	}
	if len(p.Details) == 0 {
		return shared.NewDomainError("NO_DETAILS", "Cannot confirm document without details")
	}

	now := time.Now()
	p.Status = DocumentStatusConfirmed
	p.ConfirmedAt = &now
	p.UpdatedAt = now
	p.IncrementVersion()

	p.AddDomainEvent(NewPurchaseConfirmedEvent(p))

	return nil
}

// Unconfirm transitions the purchase from CONFIRMED back to PENDING. The
// caller must first verify that the effects are reversible (untouched cost
// layers, no confirmed payments on the invoice).
func (p *Purchase) Unconfirm() error {
	if !p.Status.CanTransitionTo(DocumentStatusPending) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot unconfirm document in %s status", p.Status))
	}

	p.Status = DocumentStatusPending
	p.ConfirmedAt = nil
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewPurchaseUnconfirmedEvent(p))

	return nil
}

func (p *Purchase) recalculateTotals() {
	lines := make([]lineAmounts, 0, len(p.Details))
	for idx := range p.Details {
		lines = append(lines, p.Details[idx].amounts())
	}

	totals := calculateDocumentTotals(lines, p.PPNPercent)
	p.Subtotal = totals.Subtotal
	p.TotalDiscount1 = totals.TotalDiscount1
	p.TotalDiscount2 = totals.TotalDiscount2
	p.PPNAmount = totals.PPNAmount
	p.GrandTotal = totals.GrandTotal
}

// IsPending returns true if the purchase is pending
func (p *Purchase) IsPending() bool {
	return p.Status == DocumentStatusPending
}

// IsConfirmed returns true if the purchase is confirmed
func (p *Purchase) IsConfirmed() bool {
	return p.Status == DocumentStatusConfirmed
}

// GetDetail returns a detail by its ID
func (p *Purchase) GetDetail(detailID uuid.UUID) *PurchaseDetail {
	for idx := range p.Details {
		if p.Details[idx].ID == detailID {
			return &p.Details[idx]
		}
	}
	return nil
}

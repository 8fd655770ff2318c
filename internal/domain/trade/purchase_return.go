package trade

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jovinkendrico/pos-mandor-jaya-sub002/internal/domain/shared"
)

// PurchaseReturnDetail represents a line item in a purchase return. Each line
// points back at the purchase detail whose stock is being sent back, so the
// confirm operation can shrink exactly the cost layers that line created.
type PurchaseReturnDetail struct {
	ID               uuid.UUID       `gorm:"type:uuid;primary_key"`
	PurchaseReturnID uuid.UUID       `gorm:"type:uuid;not null;index"`
	PurchaseDetailID uuid.UUID       `gorm:"type:uuid;not null;index"`
	ItemID           uuid.UUID       `gorm:"type:uuid;not null"`
	ItemCode         string          `gorm:"type:varchar(50);not null"`
	ItemName         string          `gorm:"type:varchar(200);not null"`
	UOMID            uuid.UUID       `gorm:"type:uuid;not null"`
	UOMName          string          `gorm:"type:varchar(20);not null"`
	ConversionValue  decimal.Decimal `gorm:"type:decimal(18,6);not null;default:1"`
	Quantity         decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	BaseQuantity     decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UnitPrice        decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Discount1Percent decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Discount2Percent decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Discount1Amount  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Discount2Amount  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Total            decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	CreatedAt        time.Time       `gorm:"not null"`
	UpdatedAt        time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (PurchaseReturnDetail) TableName() string {
	return "purchase_return_details"
}

// NewPurchaseReturnDetail creates a new purchase return detail line. The
// price and discount fields are snapshots of the source purchase line so the
// refund matches what was originally paid.
func NewPurchaseReturnDetail(returnID, purchaseDetailID, itemID uuid.UUID, itemCode, itemName string, uomID uuid.UUID, uomName string, conversionValue, quantity, unitPrice, discount1Percent, discount2Percent decimal.Decimal) (*PurchaseReturnDetail, error) {
	if purchaseDetailID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SOURCE_DETAIL", "Source purchase detail cannot be empty")
	}
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
	detail := &PurchaseReturnDetail{
		ID:               uuid.New(),
		PurchaseReturnID: returnID,
		PurchaseDetailID: purchaseDetailID,
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

func (d *PurchaseReturnDetail) recalculate() {
	amounts := calculateLineAmounts(d.Quantity, d.UnitPrice, d.Discount1Percent, d.Discount2Percent)
	d.Discount1Amount = amounts.Discount1Amount
	d.Discount2Amount = amounts.Discount2Amount
	d.Total = amounts.Total
	d.BaseQuantity = d.Quantity.Mul(d.ConversionValue).Round(4)
	d.UpdatedAt = time.Now()
}

func (d *PurchaseReturnDetail) amounts() lineAmounts {
	return calculateLineAmounts(d.Quantity, d.UnitPrice, d.Discount1Percent, d.Discount2Percent)
}

// PurchaseReturn represents goods sent back to a supplier. Confirming it
// permanently shrinks the cost layers created by the source purchase and
// writes outbound stock movements; the layers never come back at a different
// cost.
type PurchaseReturn struct {
	shared.BaseAggregateRoot
	Number         string                 `gorm:"type:varchar(50);not null;uniqueIndex"`
	PurchaseID     uuid.UUID              `gorm:"type:uuid;not null;index"`
	SupplierID     uuid.UUID              `gorm:"type:uuid;not null;index"`
	SupplierName   string                 `gorm:"type:varchar(200);not null"`
	Date           time.Time              `gorm:"type:date;not null;index"`
	Details        []PurchaseReturnDetail `gorm:"foreignKey:PurchaseReturnID;references:ID"`
	Subtotal       decimal.Decimal        `gorm:"type:decimal(18,4);not null;default:0"`
	TotalDiscount1 decimal.Decimal        `gorm:"type:decimal(18,4);not null;default:0"`
	TotalDiscount2 decimal.Decimal        `gorm:"type:decimal(18,4);not null;default:0"`
	PPNPercent     decimal.Decimal        `gorm:"type:decimal(18,4);not null;default:0"`
	PPNAmount      decimal.Decimal        `gorm:"type:decimal(18,4);not null;default:0"`
	GrandTotal     decimal.Decimal        `gorm:"type:decimal(18,4);not null;default:0"`
	Status         DocumentStatus         `gorm:"type:varchar(20);not null;default:'PENDING'"`
	Remark         string                 `gorm:"type:text"`
	ConfirmedAt    *time.Time             `gorm:"index"`
}

// TableName returns the table name for GORM
func (PurchaseReturn) TableName() string {
	return "purchase_returns"
}

// NewPurchaseReturn creates a new pending purchase return against a purchase
func NewPurchaseReturn(number string, purchaseID, supplierID uuid.UUID, supplierName string, date time.Time) (*PurchaseReturn, error) {
	if number == "" {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Document number cannot be empty")
	}
	if len(number) > 50 {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Document number cannot exceed 50 characters")
	}
	if purchaseID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PURCHASE", "Purchase ID cannot be empty")
	}
	if supplierID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SUPPLIER", "Supplier ID cannot be empty")
	}
	if date.IsZero() {
		date = time.Now()
	}

	ret := &PurchaseReturn{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Number:            number,
		PurchaseID:        purchaseID,
		SupplierID:        supplierID,
		SupplierName:      supplierName,
		Date:              date,
		Details:           make([]PurchaseReturnDetail, 0),
		Subtotal:          decimal.Zero,
		TotalDiscount1:    decimal.Zero,
		TotalDiscount2:    decimal.Zero,
		PPNPercent:        decimal.Zero,
		PPNAmount:         decimal.Zero,
		GrandTotal:        decimal.Zero,
		Status:            DocumentStatusPending,
	}

	ret.AddDomainEvent(NewPurchaseReturnCreatedEvent(ret))

	return ret, nil
}

// AddDetail adds a new line to the return. Only allowed while pending.
func (r *PurchaseReturn) AddDetail(purchaseDetailID, itemID uuid.UUID, itemCode, itemName string, uomID uuid.UUID, uomName string, conversionValue, quantity, unitPrice, discount1Percent, discount2Percent decimal.Decimal) (*PurchaseReturnDetail, error) {
	if r.Status != DocumentStatusPending {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot modify a confirmed document")
	}

	for _, d := range r.Details {
		if d.PurchaseDetailID == purchaseDetailID {
			return nil, shared.NewDomainError("DUPLICATE_DETAIL", "Purchase detail already referenced by this return")
		}
	}

	detail, err := NewPurchaseReturnDetail(r.ID, purchaseDetailID, itemID, itemCode, itemName, uomID, uomName, conversionValue, quantity, unitPrice, discount1Percent, discount2Percent)
	if err != nil {
		return nil, err
	}

	r.Details = append(r.Details, *detail)
	r.recalculateTotals()
	r.UpdatedAt = time.Now()
	r.IncrementVersion()

	return detail, nil
}

// UpdateDetailQuantity changes the returned quantity of an existing line.
// Only allowed while pending.
func (r *PurchaseReturn) UpdateDetailQuantity(detailID uuid.UUID, quantity decimal.Decimal) error {
	if r.Status != DocumentStatusPending {
		return shared.NewDomainError("INVALID_STATE", "Cannot modify a confirmed document")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}

	for idx := range r.Details {
		if r.Details[idx].ID == detailID {
			r.Details[idx].Quantity = quantity
			r.Details[idx].recalculate()
			r.recalculateTotals()
			r.UpdatedAt = time.Now()
			r.IncrementVersion()
			return nil
		}
	}

	return shared.NewDomainError("DETAIL_NOT_FOUND", "Document detail not found")
}

// RemoveDetail removes a line from the return. Only allowed while pending.
func (r *PurchaseReturn) RemoveDetail(detailID uuid.UUID) error {
	if r.Status != DocumentStatusPending {
		return shared.NewDomainError("INVALID_STATE", "Cannot modify a confirmed document")
	}

	for idx, detail := range r.Details {
		if detail.ID == detailID {
			r.Details = append(r.Details[:idx], r.Details[idx+1:]...)
			r.recalculateTotals()
			r.UpdatedAt = time.Now()
			r.IncrementVersion()
			return nil
		}
	}

	return shared.NewDomainError("DETAIL_NOT_FOUND", "Document detail not found")
}

// SetPPN sets the document-level PPN percentage. Only allowed while pending.
func (r *PurchaseReturn) SetPPN(ppnPercent decimal.Decimal) error {
	if r.Status != DocumentStatusPending {
		return shared.NewDomainError("INVALID_STATE", "Cannot modify a confirmed document")
	}
	if !validPercent(ppnPercent) {
		return shared.NewDomainError("INVALID_PPN", "PPN percentage must be between 0 and 100")
	}

	r.PPNPercent = ppnPercent
	r.recalculateTotals()
	r.UpdatedAt = time.Now()
	r.IncrementVersion()

	return nil
}

// SetRemark sets the document remark
func (r *PurchaseReturn) SetRemark(remark string) {
	r.Remark = remark
	r.UpdatedAt = time.Now()
	r.IncrementVersion()
}

// Confirm transitions the return from PENDING to CONFIRMED
func (r *PurchaseReturn) Confirm() error {
	if !r.Status.CanTransitionTo(DocumentStatusConfirmed) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot confirm document in %s status", r.Status))
	}
	if len(r.Details) == 0 {
		return shared.NewDomainError("NO_DETAILS", "Cannot confirm document without details")
	}

	now := time.Now()
	r.Status = DocumentStatusConfirmed
	r.ConfirmedAt = &now
	r.UpdatedAt = now
	r.IncrementVersion()

	r.AddDomainEvent(NewPurchaseReturnConfirmedEvent(r))

	return nil
}

// Unconfirm transitions the return from CONFIRMED back to PENDING
func (r *PurchaseReturn) Unconfirm() error {
	if !r.Status.CanTransitionTo(DocumentStatusPending) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot unconfirm document in %s status", r.Status))
	}

	r.Status = DocumentStatusPending
	r.ConfirmedAt = nil
	r.UpdatedAt = time.Now()
	r.IncrementVersion()

	r.AddDomainEvent(NewPurchaseReturnUnconfirmedEvent(r))

	return nil
}

func (r *PurchaseReturn) recalculateTotals() {
	lines := make([]lineAmounts, 0, len(r.Details))
	for idx := range r.Details {
		lines = append(lines, r.Details[idx].amounts())
	}

	totals := calculateDocumentTotals(lines, r.PPNPercent)
	r.Subtotal = totals.Subtotal
	r.TotalDiscount1 = totals.TotalDiscount1
	r.TotalDiscount2 = totals.TotalDiscount2
	r.PPNAmount = totals.PPNAmount
	r.GrandTotal = totals.GrandTotal
}

// IsPending returns true if the return is pending
func (r *PurchaseReturn) IsPending() bool {
	return r.Status == DocumentStatusPending
}

// IsConfirmed returns true if the return is confirmed
func (r *PurchaseReturn) IsConfirmed() bool {
	return r.Status == DocumentStatusConfirmed
}

// GetDetail returns a detail by its ID
func (r *PurchaseReturn) GetDetail(detailID uuid.UUID) *PurchaseReturnDetail {
	for idx := range r.Details {
		if r.Details[idx].ID == detailID {
			return &r.Details[idx]
		}
	}
	return nil
}

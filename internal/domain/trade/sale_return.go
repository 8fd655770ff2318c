package trade

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jovinkendrico/pos-mandor-jaya-sub002/internal/domain/shared"
)

// SaleReturnDetail represents a line item in a sale return. Each line points
// back at the sale detail whose goods are coming back, so the confirm
// operation can reinstate stock at the exact historical costs that line
// consumed.
type SaleReturnDetail struct {
	ID               uuid.UUID       `gorm:"type:uuid;primary_key"`
	SaleReturnID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	SaleDetailID     uuid.UUID       `gorm:"type:uuid;not null;index"`
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
	RestoredCost     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"` // Historical cost reinstated at confirm
	CreatedAt        time.Time       `gorm:"not null"`
	UpdatedAt        time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (SaleReturnDetail) TableName() string {
	return "sale_return_details"
}

// NewSaleReturnDetail creates a new sale return detail line. The price and
// discount fields are snapshots of the source sale line so the refund matches
// what the customer originally paid.
func NewSaleReturnDetail(returnID, saleDetailID, itemID uuid.UUID, itemCode, itemName string, uomID uuid.UUID, uomName string, conversionValue, quantity, unitPrice, discount1Percent, discount2Percent decimal.Decimal) (*SaleReturnDetail, error) {
	if saleDetailID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SOURCE_DETAIL", "Source sale detail cannot be empty")
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
	detail := &SaleReturnDetail{
		ID:               uuid.New(),
		SaleReturnID:     returnID,
		SaleDetailID:     saleDetailID,
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
		RestoredCost:     decimal.Zero,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	detail.recalculate()

	return detail, nil
}

func (d *SaleReturnDetail) recalculate() {
	amounts := calculateLineAmounts(d.Quantity, d.UnitPrice, d.Discount1Percent, d.Discount2Percent)
	d.Discount1Amount = amounts.Discount1Amount
	d.Discount2Amount = amounts.Discount2Amount
	d.Total = amounts.Total
	d.BaseQuantity = d.Quantity.Mul(d.ConversionValue).Round(4)
	d.UpdatedAt = time.Now()
}

func (d *SaleReturnDetail) amounts() lineAmounts {
	return calculateLineAmounts(d.Quantity, d.UnitPrice, d.Discount1Percent, d.Discount2Percent)
}

// SaleReturn represents goods coming back from a customer. Confirming it
// creates fresh cost layers at the historical costs the source sale consumed
// and records a profit adjustment: the refund reduces revenue, the reinstated
// stock gives cost back.
type SaleReturn struct {
	shared.BaseAggregateRoot
	Number           string             `gorm:"type:varchar(50);not null;uniqueIndex"`
	SaleID           uuid.UUID          `gorm:"type:uuid;not null;index"`
	CustomerID       uuid.UUID          `gorm:"type:uuid;not null;index"`
	CustomerName     string             `gorm:"type:varchar(200);not null"`
	Date             time.Time          `gorm:"type:date;not null;index"`
	Details          []SaleReturnDetail `gorm:"foreignKey:SaleReturnID;references:ID"`
	Subtotal         decimal.Decimal    `gorm:"type:decimal(18,4);not null;default:0"`
	TotalDiscount1   decimal.Decimal    `gorm:"type:decimal(18,4);not null;default:0"`
	TotalDiscount2   decimal.Decimal    `gorm:"type:decimal(18,4);not null;default:0"`
	PPNPercent       decimal.Decimal    `gorm:"type:decimal(18,4);not null;default:0"`
	PPNAmount        decimal.Decimal    `gorm:"type:decimal(18,4);not null;default:0"`
	GrandTotal       decimal.Decimal    `gorm:"type:decimal(18,4);not null;default:0"`
	RestoredCost     decimal.Decimal    `gorm:"type:decimal(18,4);not null;default:0"` // Sum of detail restored costs
	ProfitAdjustment decimal.Decimal    `gorm:"type:decimal(18,4);not null;default:0"` // RestoredCost - net refund
	Status           DocumentStatus     `gorm:"type:varchar(20);not null;default:'PENDING'"`
	Remark           string             `gorm:"type:text"`
	ConfirmedAt      *time.Time         `gorm:"index"`
}

// TableName returns the table name for GORM
func (SaleReturn) TableName() string {
	return "sale_returns"
}

// NewSaleReturn creates a new pending sale return against a sale
func NewSaleReturn(number string, saleID, customerID uuid.UUID, customerName string, date time.Time) (*SaleReturn, error) {
	if number == "" {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Document number cannot be empty")
	}
	if len(number) > 50 {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Document number cannot exceed 50 characters")
	}
	if saleID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SALE", "Sale ID cannot be empty")
	}
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	if date.IsZero() {
		date = time.Now()
	}

	ret := &SaleReturn{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Number:            number,
		SaleID:            saleID,
		CustomerID:        customerID,
		CustomerName:      customerName,
		Date:              date,
		Details:           make([]SaleReturnDetail, 0),
		Subtotal:          decimal.Zero,
		TotalDiscount1:    decimal.Zero,
		TotalDiscount2:    decimal.Zero,
		PPNPercent:        decimal.Zero,
		PPNAmount:         decimal.Zero,
		GrandTotal:        decimal.Zero,
		RestoredCost:      decimal.Zero,
		ProfitAdjustment:  decimal.Zero,
		Status:            DocumentStatusPending,
	}

	ret.AddDomainEvent(NewSaleReturnCreatedEvent(ret))

	return ret, nil
}

// AddDetail adds a new line to the return. Only allowed while pending.
func (r *SaleReturn) AddDetail(saleDetailID, itemID uuid.UUID, itemCode, itemName string, uomID uuid.UUID, uomName string, conversionValue, quantity, unitPrice, discount1Percent, discount2Percent decimal.Decimal) (*SaleReturnDetail, error) {
	if r.Status != DocumentStatusPending {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot modify a confirmed document")
	}

	for _, d := range r.Details {
		if d.SaleDetailID == saleDetailID {
			return nil, shared.NewDomainError("DUPLICATE_DETAIL", "Sale detail already referenced by this return")
		}
	}

	detail, err := NewSaleReturnDetail(r.ID, saleDetailID, itemID, itemCode, itemName, uomID, uomName, conversionValue, quantity, unitPrice, discount1Percent, discount2Percent)
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
func (r *SaleReturn) UpdateDetailQuantity(detailID uuid.UUID, quantity decimal.Decimal) error {
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
func (r *SaleReturn) RemoveDetail(detailID uuid.UUID) error {
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
func (r *SaleReturn) SetPPN(ppnPercent decimal.Decimal) error {
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
func (r *SaleReturn) SetRemark(remark string) {
	r.Remark = remark
	r.UpdatedAt = time.Now()
	r.IncrementVersion()
}

// Confirm transitions the return from PENDING to CONFIRMED
func (r *SaleReturn) Confirm() error {
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

	r.AddDomainEvent(NewSaleReturnConfirmedEvent(r))

	return nil
}

// Unconfirm transitions the return from CONFIRMED back to PENDING
func (r *SaleReturn) Unconfirm() error {
	if !r.Status.CanTransitionTo(DocumentStatusPending) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot unconfirm document in %s status", r.Status))
	}

	r.Status = DocumentStatusPending
	r.ConfirmedAt = nil
	r.UpdatedAt = time.Now()
	r.IncrementVersion()

	r.AddDomainEvent(NewSaleReturnUnconfirmedEvent(r))

	return nil
}

// SetDetailRestoredCost records the historical cost reinstated for one
// detail at confirm time
func (r *SaleReturn) SetDetailRestoredCost(detailID uuid.UUID, cost decimal.Decimal) error {
	for idx := range r.Details {
		if r.Details[idx].ID == detailID {
			r.Details[idx].RestoredCost = cost
			r.Details[idx].UpdatedAt = time.Now()
			return nil
		}
	}
	return shared.NewDomainError("DETAIL_NOT_FOUND", "Document detail not found")
}

// FinalizeRestoredCosts rolls detail restored costs up into RestoredCost and
// ProfitAdjustment. The adjustment is the cost recovered minus the net refund
// (excluding PPN), so a return at the original sale price yields exactly the
// negated profit of the returned quantity.
func (r *SaleReturn) FinalizeRestoredCosts() {
	total := decimal.Zero
	for idx := range r.Details {
		total = total.Add(r.Details[idx].RestoredCost)
	}
	r.RestoredCost = total

	netRefund := r.Subtotal.Sub(r.TotalDiscount1).Sub(r.TotalDiscount2)
	r.ProfitAdjustment = total.Sub(netRefund)
	r.UpdatedAt = time.Now()
}

// ClearRestoredCosts resets all restored cost figures, used when the return
// is unconfirmed
func (r *SaleReturn) ClearRestoredCosts() {
	for idx := range r.Details {
		r.Details[idx].RestoredCost = decimal.Zero
	}
	r.RestoredCost = decimal.Zero
	r.ProfitAdjustment = decimal.Zero
	r.UpdatedAt = time.Now()
}

func (r *SaleReturn) recalculateTotals() {
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
func (r *SaleReturn) IsPending() bool {
	return r.Status == DocumentStatusPending
}

// IsConfirmed returns true if the return is confirmed
func (r *SaleReturn) IsConfirmed() bool {
	return r.Status == DocumentStatusConfirmed
}

// GetDetail returns a detail by its ID
func (r *SaleReturn) GetDetail(detailID uuid.UUID) *SaleReturnDetail {
	for idx := range r.Details {
		if r.Details[idx].ID == detailID {
			return &r.Details[idx]
		}
	}
	return nil
}

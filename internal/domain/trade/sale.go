package trade

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jovinkendrico/pos-mandor-jaya-sub002/internal/domain/shared"
)

// SaleDetail represents a line item in a sale
type SaleDetail struct {
	ID               uuid.UUID       `gorm:"type:uuid;primary_key"`
	SaleID           uuid.UUID       `gorm:"type:uuid;not null;index"`
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
	Cost             decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"` // FIFO cost drawn at confirm
	CreatedAt        time.Time       `gorm:"not null"`
	UpdatedAt        time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (SaleDetail) TableName() string {
	return "sale_details"
}

// NewSaleDetail creates a new sale detail line
func NewSaleDetail(saleID, itemID uuid.UUID, itemCode, itemName string, uomID uuid.UUID, uomName string, conversionValue, quantity, unitPrice, discount1Percent, discount2Percent decimal.Decimal) (*SaleDetail, error) {
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
	detail := &SaleDetail{
		ID:               uuid.New(),
		SaleID:           saleID,
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
		Cost:             decimal.Zero,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	detail.recalculate()

	return detail, nil
}

func (d *SaleDetail) recalculate() {
	amounts := calculateLineAmounts(d.Quantity, d.UnitPrice, d.Discount1Percent, d.Discount2Percent)
	d.Discount1Amount = amounts.Discount1Amount
	d.Discount2Amount = amounts.Discount2Amount
	d.Total = amounts.Total
	d.BaseQuantity = d.Quantity.Mul(d.ConversionValue).Round(4)
	d.UpdatedAt = time.Now()
}

func (d *SaleDetail) amounts() lineAmounts {
	return calculateLineAmounts(d.Quantity, d.UnitPrice, d.Discount1Percent, d.Discount2Percent)
}

// Profit returns the line's net revenue minus its FIFO cost. Meaningful only
// on confirmed sales, where Cost has been set.
func (d *SaleDetail) Profit() decimal.Decimal {
	return d.Total.Sub(d.Cost)
}

// Sale represents a customer sale aggregate root. Confirming a sale consumes
// cost layers FIFO, records the consumption trail, writes outbound stock
// movements and opens a receivable invoice; unconfirming replays the trail in
// reverse.
type Sale struct {
	shared.BaseAggregateRoot
	Number         string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	CustomerID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	CustomerName   string          `gorm:"type:varchar(200);not null"`
	Date           time.Time       `gorm:"type:date;not null;index"`
	Details        []SaleDetail    `gorm:"foreignKey:SaleID;references:ID"`
	Subtotal       decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	TotalDiscount1 decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	TotalDiscount2 decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	PPNPercent     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	PPNAmount      decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	GrandTotal     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	TotalCost      decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"` // Sum of detail FIFO costs
	TotalProfit    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"` // Net revenue - TotalCost
	Status         DocumentStatus  `gorm:"type:varchar(20);not null;default:'PENDING'"`
	Remark         string          `gorm:"type:text"`
	ConfirmedAt    *time.Time      `gorm:"index"`
}

// TableName returns the table name for GORM
func (Sale) TableName() string {
	return "sales"
}

// NewSale creates a new pending sale
func NewSale(number string, customerID uuid.UUID, customerName string, date time.Time) (*Sale, error) {
	if number == "" {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Document number cannot be empty")
	}
	if len(number) > 50 {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Document number cannot exceed 50 characters")
	}
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	if customerName == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER_NAME", "Customer name cannot be empty")
	}
	if date.IsZero() {
		date = time.Now()
	}

	sale := &Sale{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Number:            number,
		CustomerID:        customerID,
		CustomerName:      customerName,
		Date:              date,
		Details:           make([]SaleDetail, 0),
		Subtotal:          decimal.Zero,
		TotalDiscount1:    decimal.Zero,
		TotalDiscount2:    decimal.Zero,
		PPNPercent:        decimal.Zero,
		PPNAmount:         decimal.Zero,
		GrandTotal:        decimal.Zero,
		TotalCost:         decimal.Zero,
		TotalProfit:       decimal.Zero,
		Status:            DocumentStatusPending,
	}

	sale.AddDomainEvent(NewSaleCreatedEvent(sale))

	return sale, nil
}

// AddDetail adds a new line to the sale. Only allowed while pending.
func (s *Sale) AddDetail(itemID uuid.UUID, itemCode, itemName string, uomID uuid.UUID, uomName string, conversionValue, quantity, unitPrice, discount1Percent, discount2Percent decimal.Decimal) (*SaleDetail, error) {
	if s.Status != DocumentStatusPending {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot modify a confirmed document")
	}

	detail, err := NewSaleDetail(s.ID, itemID, itemCode, itemName, uomID, uomName, conversionValue, quantity, unitPrice, discount1Percent, discount2Percent)
	if err != nil {
		return nil, err
	}

	s.Details = append(s.Details, *detail)
	s.recalculateTotals()
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return detail, nil
}

// UpdateDetail replaces the editable fields of an existing line.
// Only allowed while pending.
func (s *Sale) UpdateDetail(detailID uuid.UUID, quantity, unitPrice, discount1Percent, discount2Percent decimal.Decimal) error {
	if s.Status != DocumentStatusPending {
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

	for idx := range s.Details {
		if s.Details[idx].ID == detailID {
			s.Details[idx].Quantity = quantity
			s.Details[idx].UnitPrice = unitPrice
			s.Details[idx].Discount1Percent = discount1Percent
			s.Details[idx].Discount2Percent = discount2Percent
			s.Details[idx].recalculate()
			s.recalculateTotals()
			s.UpdatedAt = time.Now()
			s.IncrementVersion()
			return nil
		}
	}

	return shared.NewDomainError("DETAIL_NOT_FOUND", "Document detail not found")
}

// RemoveDetail removes a line from the sale. Only allowed while pending.
func (s *Sale) RemoveDetail(detailID uuid.UUID) error {
	if s.Status != DocumentStatusPending {
		return shared.NewDomainError("INVALID_STATE", "Cannot modify a confirmed document")
	}

	for idx, detail := range s.Details {
		if detail.ID == detailID {
			s.Details = append(s.Details[:idx], s.Details[idx+1:]...)
			s.recalculateTotals()
			s.UpdatedAt = time.Now()
			s.IncrementVersion()
			return nil
		}
	}

	return shared.NewDomainError("DETAIL_NOT_FOUND", "Document detail not found")
}

// SetPPN sets the document-level PPN percentage. Only allowed while pending.
func (s *Sale) SetPPN(ppnPercent decimal.Decimal) error {
	if s.Status != DocumentStatusPending {
		return shared.NewDomainError("INVALID_STATE", "Cannot modify a confirmed document")
	}
	if !validPercent(ppnPercent) {
		return shared.NewDomainError("INVALID_PPN", "PPN percentage must be between 0 and 100")
	}

	s.PPNPercent = ppnPercent
	s.recalculateTotals()
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return nil
}

// SetRemark sets the document remark
func (s *Sale) SetRemark(remark string) {
	s.Remark = remark
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
}

// Confirm transitions the sale from PENDING to CONFIRMED. Stock availability
// and FIFO consumption are handled by the caller in the same transaction.
func (s *Sale) Confirm() error {
	if !s.Status.CanTransitionTo(DocumentStatusConfirmed) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot confirm document in %s status", s.Status))
	}
	if len(s.Details) == 0 {
		return shared.NewDomainError("NO_DETAILS", "Cannot confirm document without details")
	}

	now := time.Now()
	s.Status = DocumentStatusConfirmed
	s.ConfirmedAt = &now
	s.UpdatedAt = now
	s.IncrementVersion()

	s.AddDomainEvent(NewSaleConfirmedEvent(s))

	return nil
}

// Unconfirm transitions the sale from CONFIRMED back to PENDING
func (s *Sale) Unconfirm() error {
	if !s.Status.CanTransitionTo(DocumentStatusPending) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot unconfirm document in %s status", s.Status))
	}

	s.Status = DocumentStatusPending
	s.ConfirmedAt = nil
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	s.AddDomainEvent(NewSaleUnconfirmedEvent(s))

	return nil
}

// SetDetailCost records the FIFO cost drawn for one detail at confirm time
func (s *Sale) SetDetailCost(detailID uuid.UUID, cost decimal.Decimal) error {
	for idx := range s.Details {
		if s.Details[idx].ID == detailID {
			s.Details[idx].Cost = cost
			s.Details[idx].UpdatedAt = time.Now()
			return nil
		}
	}
	return shared.NewDomainError("DETAIL_NOT_FOUND", "Document detail not found")
}

// FinalizeCosts rolls detail costs up into TotalCost and TotalProfit. PPN is
// excluded from profit: profit compares net revenue with FIFO cost.
func (s *Sale) FinalizeCosts() {
	total := decimal.Zero
	for idx := range s.Details {
		total = total.Add(s.Details[idx].Cost)
	}
	s.TotalCost = total

	net := s.Subtotal.Sub(s.TotalDiscount1).Sub(s.TotalDiscount2)
	s.TotalProfit = net.Sub(total)
	s.UpdatedAt = time.Now()
}

// ClearCosts resets all cost figures, used when the sale is unconfirmed
func (s *Sale) ClearCosts() {
	for idx := range s.Details {
		s.Details[idx].Cost = decimal.Zero
	}
	s.TotalCost = decimal.Zero
	s.TotalProfit = decimal.Zero
	s.UpdatedAt = time.Now()
}

func (s *Sale) recalculateTotals() {
	lines := make([]lineAmounts, 0, len(s.Details))
	for idx := range s.Details {
		lines = append(lines, s.Details[idx].amounts())
	}

	totals := calculateDocumentTotals(lines, s.PPNPercent)
	s.Subtotal = totals.Subtotal
	s.TotalDiscount1 = totals.TotalDiscount1
	s.TotalDiscount2 = totals.TotalDiscount2
	s.PPNAmount = totals.PPNAmount
	s.GrandTotal = totals.GrandTotal
}

// IsPending returns true if the sale is pending
func (s *Sale) IsPending() bool {
	return s.Status == DocumentStatusPending
}

// IsConfirmed returns true if the sale is confirmed
func (s *Sale) IsConfirmed() bool {
	return s.Status == DocumentStatusConfirmed
}

// GetDetail returns a detail by its ID
func (s *Sale) GetDetail(detailID uuid.UUID) *SaleDetail {
	for idx := range s.Details {
		if s.Details[idx].ID == detailID {
			return &s.Details[idx]
		}
	}
	return nil
}

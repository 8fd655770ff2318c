package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DetailInput is one document line as entered by the user. Quantity is in
// the chosen UOM; the service snapshots the conversion at entry time.
type DetailInput struct {
	ItemID           uuid.UUID       `json:"item_id" binding:"required"`
	UOMID            uuid.UUID       `json:"uom_id" binding:"required"`
	Quantity         decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice        decimal.Decimal `json:"unit_price"`
	Discount1Percent decimal.Decimal `json:"discount1_percent"`
	Discount2Percent decimal.Decimal `json:"discount2_percent"`
}

// CreatePurchaseInput carries a new purchase document
type CreatePurchaseInput struct {
	Number       string          `json:"number" binding:"required,max=50"`
	SupplierID   uuid.UUID       `json:"supplier_id" binding:"required"`
	SupplierName string          `json:"supplier_name" binding:"required,max=200"`
	Date         time.Time       `json:"date"`
	PPNPercent   decimal.Decimal `json:"ppn_percent"`
	Remark       string          `json:"remark"`
	Details      []DetailInput   `json:"details" binding:"required,min=1,dive"`
}

// UpdatePurchaseInput replaces the editable parts of a pending purchase
type UpdatePurchaseInput struct {
	Date       time.Time       `json:"date"`
	PPNPercent decimal.Decimal `json:"ppn_percent"`
	Remark     string          `json:"remark"`
	Details    []DetailInput   `json:"details" binding:"required,min=1,dive"`
}

// CreateSaleInput carries a new sale document
type CreateSaleInput struct {
	Number       string          `json:"number" binding:"required,max=50"`
	CustomerID   uuid.UUID       `json:"customer_id" binding:"required"`
	CustomerName string          `json:"customer_name" binding:"required,max=200"`
	Date         time.Time       `json:"date"`
	PPNPercent   decimal.Decimal `json:"ppn_percent"`
	Remark       string          `json:"remark"`
	Details      []DetailInput   `json:"details" binding:"required,min=1,dive"`
}

// UpdateSaleInput replaces the editable parts of a pending sale
type UpdateSaleInput struct {
	Date       time.Time       `json:"date"`
	PPNPercent decimal.Decimal `json:"ppn_percent"`
	Remark     string          `json:"remark"`
	Details    []DetailInput   `json:"details" binding:"required,min=1,dive"`
}

// ReturnDetailInput references a source document line and the quantity
// coming back, in the source line's UOM. Prices and discounts are copied
// from the source line.
type ReturnDetailInput struct {
	SourceDetailID uuid.UUID       `json:"source_detail_id" binding:"required"`
	Quantity       decimal.Decimal `json:"quantity" binding:"required"`
}

// CreatePurchaseReturnInput carries a new purchase return
type CreatePurchaseReturnInput struct {
	Number     string              `json:"number" binding:"required,max=50"`
	PurchaseID uuid.UUID           `json:"purchase_id" binding:"required"`
	Date       time.Time           `json:"date"`
	Remark     string              `json:"remark"`
	Details    []ReturnDetailInput `json:"details" binding:"required,min=1,dive"`
}

// CreateSaleReturnInput carries a new sale return
type CreateSaleReturnInput struct {
	Number  string              `json:"number" binding:"required,max=50"`
	SaleID  uuid.UUID           `json:"sale_id" binding:"required"`
	Date    time.Time           `json:"date"`
	Remark  string              `json:"remark"`
	Details []ReturnDetailInput `json:"details" binding:"required,min=1,dive"`
}

package finance

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jovinkendrico/pos-mandor-jaya-sub002/internal/domain/finance"
)

// AllocationInput assigns part of a voucher to one invoice
type AllocationInput struct {
	InvoiceID uuid.UUID       `json:"invoice_id" binding:"required"`
	Amount    decimal.Decimal `json:"amount" binding:"required"`
}

// CreateVoucherInput carries a new payment voucher. Allocations may sum to
// less than the total; the difference becomes an advance at confirm time.
type CreateVoucherInput struct {
	Number      string                   `json:"number" binding:"required,max=50"`
	Direction   finance.VoucherDirection `json:"direction" binding:"required,oneof=IN OUT"`
	PartyID     uuid.UUID                `json:"party_id" binding:"required"`
	PartyName   string                   `json:"party_name" binding:"required,max=200"`
	Date        time.Time                `json:"date"`
	Method      finance.PaymentMethod    `json:"method" binding:"required,oneof=CASH TRANSFER GIRO"`
	TotalAmount decimal.Decimal          `json:"total_amount" binding:"required"`
	Remark      string                   `json:"remark"`
	Allocations []AllocationInput        `json:"allocations" binding:"dive"`
}

// UpdateVoucherInput replaces the editable parts of a pending voucher
type UpdateVoucherInput struct {
	Date        time.Time             `json:"date"`
	Method      finance.PaymentMethod `json:"method" binding:"omitempty,oneof=CASH TRANSFER GIRO"`
	TotalAmount decimal.Decimal       `json:"total_amount" binding:"required"`
	Remark      string                `json:"remark"`
	Allocations []AllocationInput     `json:"allocations" binding:"dive"`
}

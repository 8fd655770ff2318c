package finance

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jovinkendrico/pos-mandor-jaya-sub002/internal/domain/shared"
)

// Event types for finance aggregates
const (
	EventTypeInvoiceCreated = "invoice.created"
	EventTypeInvoiceSettled = "invoice.settled"

	EventTypePaymentVoucherCreated     = "payment_voucher.created"
	EventTypePaymentVoucherConfirmed   = "payment_voucher.confirmed"
	EventTypePaymentVoucherUnconfirmed = "payment_voucher.unconfirmed"
)

// InvoiceCreatedEvent is raised when an invoice is opened for a confirmed
// document
type InvoiceCreatedEvent struct {
	shared.BaseDomainEvent
	Number      string           `json:"number"`
	Direction   InvoiceDirection `json:"direction"`
	TotalAmount decimal.Decimal  `json:"total_amount"`
}

// NewInvoiceCreatedEvent creates a new InvoiceCreatedEvent
func NewInvoiceCreatedEvent(i *Invoice) *InvoiceCreatedEvent {
	return &InvoiceCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvoiceCreated, "Invoice", i.ID),
		Number:          i.Number,
		Direction:       i.Direction,
		TotalAmount:     i.TotalAmount,
	}
}

// InvoiceSettledEvent is raised when an invoice becomes fully paid
type InvoiceSettledEvent struct {
	shared.BaseDomainEvent
	Number string `json:"number"`
}

// NewInvoiceSettledEvent creates a new InvoiceSettledEvent
func NewInvoiceSettledEvent(i *Invoice) *InvoiceSettledEvent {
	return &InvoiceSettledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvoiceSettled, "Invoice", i.ID),
		Number:          i.Number,
	}
}

// PaymentVoucherCreatedEvent is raised when a voucher is created
type PaymentVoucherCreatedEvent struct {
	shared.BaseDomainEvent
	Number      string           `json:"number"`
	Direction   VoucherDirection `json:"direction"`
	PartyID     uuid.UUID        `json:"party_id"`
	TotalAmount decimal.Decimal  `json:"total_amount"`
}

// NewPaymentVoucherCreatedEvent creates a new PaymentVoucherCreatedEvent
func NewPaymentVoucherCreatedEvent(v *PaymentVoucher) *PaymentVoucherCreatedEvent {
	return &PaymentVoucherCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePaymentVoucherCreated, "PaymentVoucher", v.ID),
		Number:          v.Number,
		Direction:       v.Direction,
		PartyID:         v.PartyID,
		TotalAmount:     v.TotalAmount,
	}
}

// PaymentVoucherConfirmedEvent is raised when a voucher is confirmed
type PaymentVoucherConfirmedEvent struct {
	shared.BaseDomainEvent
	Number        string          `json:"number"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	SurplusAmount decimal.Decimal `json:"surplus_amount"`
}

// NewPaymentVoucherConfirmedEvent creates a new PaymentVoucherConfirmedEvent
func NewPaymentVoucherConfirmedEvent(v *PaymentVoucher) *PaymentVoucherConfirmedEvent {
	return &PaymentVoucherConfirmedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePaymentVoucherConfirmed, "PaymentVoucher", v.ID),
		Number:          v.Number,
		TotalAmount:     v.TotalAmount,
		SurplusAmount:   v.SurplusAmount(),
	}
}

// PaymentVoucherUnconfirmedEvent is raised when a voucher is reverted to
// pending
type PaymentVoucherUnconfirmedEvent struct {
	shared.BaseDomainEvent
	Number string `json:"number"`
}

// NewPaymentVoucherUnconfirmedEvent creates a new PaymentVoucherUnconfirmedEvent
func NewPaymentVoucherUnconfirmedEvent(v *PaymentVoucher) *PaymentVoucherUnconfirmedEvent {
	return &PaymentVoucherUnconfirmedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePaymentVoucherUnconfirmed, "PaymentVoucher", v.ID),
		Number:          v.Number,
	}
}

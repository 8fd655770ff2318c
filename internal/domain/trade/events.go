package trade

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jovinkendrico/pos-mandor-jaya-sub002/internal/domain/shared"
)

// Event types for trade documents
const (
	EventTypePurchaseCreated     = "purchase.created"
	EventTypePurchaseConfirmed   = "purchase.confirmed"
	EventTypePurchaseUnconfirmed = "purchase.unconfirmed"

	EventTypeSaleCreated     = "sale.created"
	EventTypeSaleConfirmed   = "sale.confirmed"
	EventTypeSaleUnconfirmed = "sale.unconfirmed"

	EventTypePurchaseReturnCreated     = "purchase_return.created"
	EventTypePurchaseReturnConfirmed   = "purchase_return.confirmed"
	EventTypePurchaseReturnUnconfirmed = "purchase_return.unconfirmed"

	EventTypeSaleReturnCreated     = "sale_return.created"
	EventTypeSaleReturnConfirmed   = "sale_return.confirmed"
	EventTypeSaleReturnUnconfirmed = "sale_return.unconfirmed"
)

// PurchaseCreatedEvent is raised when a purchase is created
type PurchaseCreatedEvent struct {
	shared.BaseDomainEvent
	Number     string    `json:"number"`
	SupplierID uuid.UUID `json:"supplier_id"`
}

// NewPurchaseCreatedEvent creates a new PurchaseCreatedEvent
func NewPurchaseCreatedEvent(p *Purchase) *PurchaseCreatedEvent {
	return &PurchaseCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePurchaseCreated, "Purchase", p.ID),
		Number:          p.Number,
		SupplierID:      p.SupplierID,
	}
}

// PurchaseConfirmedEvent is raised when a purchase is confirmed
type PurchaseConfirmedEvent struct {
	shared.BaseDomainEvent
	Number     string          `json:"number"`
	GrandTotal decimal.Decimal `json:"grand_total"`
}

// NewPurchaseConfirmedEvent creates a new PurchaseConfirmedEvent
func NewPurchaseConfirmedEvent(p *Purchase) *PurchaseConfirmedEvent {
	return &PurchaseConfirmedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePurchaseConfirmed, "Purchase", p.ID),
		Number:          p.Number,
		GrandTotal:      p.GrandTotal,
	}
}

// PurchaseUnconfirmedEvent is raised when a purchase is reverted to pending
type PurchaseUnconfirmedEvent struct {
	shared.BaseDomainEvent
	Number string `json:"number"`
}

// NewPurchaseUnconfirmedEvent creates a new PurchaseUnconfirmedEvent
func NewPurchaseUnconfirmedEvent(p *Purchase) *PurchaseUnconfirmedEvent {
	return &PurchaseUnconfirmedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePurchaseUnconfirmed, "Purchase", p.ID),
		Number:          p.Number,
	}
}

// SaleCreatedEvent is raised when a sale is created
type SaleCreatedEvent struct {
	shared.BaseDomainEvent
	Number     string    `json:"number"`
	CustomerID uuid.UUID `json:"customer_id"`
}

// NewSaleCreatedEvent creates a new SaleCreatedEvent
func NewSaleCreatedEvent(s *Sale) *SaleCreatedEvent {
	return &SaleCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSaleCreated, "Sale", s.ID),
		Number:          s.Number,
		CustomerID:      s.CustomerID,
	}
}

// SaleConfirmedEvent is raised when a sale is confirmed
type SaleConfirmedEvent struct {
	shared.BaseDomainEvent
	Number     string          `json:"number"`
	GrandTotal decimal.Decimal `json:"grand_total"`
}

// NewSaleConfirmedEvent creates a new SaleConfirmedEvent
func NewSaleConfirmedEvent(s *Sale) *SaleConfirmedEvent {
	return &SaleConfirmedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSaleConfirmed, "Sale", s.ID),
		Number:          s.Number,
		GrandTotal:      s.GrandTotal,
	}
}

// SaleUnconfirmedEvent is raised when a sale is reverted to pending
type SaleUnconfirmedEvent struct {
	shared.BaseDomainEvent
	Number string `json:"number"`
}

// NewSaleUnconfirmedEvent creates a new SaleUnconfirmedEvent
func NewSaleUnconfirmedEvent(s *Sale) *SaleUnconfirmedEvent {
	return &SaleUnconfirmedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSaleUnconfirmed, "Sale", s.ID),
		Number:          s.Number,
	}
}

// PurchaseReturnCreatedEvent is raised when a purchase return is created
type PurchaseReturnCreatedEvent struct {
	shared.BaseDomainEvent
	Number     string    `json:"number"`
	PurchaseID uuid.UUID `json:"purchase_id"`
}

// NewPurchaseReturnCreatedEvent creates a new PurchaseReturnCreatedEvent
func NewPurchaseReturnCreatedEvent(r *PurchaseReturn) *PurchaseReturnCreatedEvent {
	return &PurchaseReturnCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePurchaseReturnCreated, "PurchaseReturn", r.ID),
		Number:          r.Number,
		PurchaseID:      r.PurchaseID,
	}
}

// PurchaseReturnConfirmedEvent is raised when a purchase return is confirmed
type PurchaseReturnConfirmedEvent struct {
	shared.BaseDomainEvent
	Number     string          `json:"number"`
	GrandTotal decimal.Decimal `json:"grand_total"`
}

// NewPurchaseReturnConfirmedEvent creates a new PurchaseReturnConfirmedEvent
func NewPurchaseReturnConfirmedEvent(r *PurchaseReturn) *PurchaseReturnConfirmedEvent {
	return &PurchaseReturnConfirmedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePurchaseReturnConfirmed, "PurchaseReturn", r.ID),
		Number:          r.Number,
		GrandTotal:      r.GrandTotal,
	}
}

// PurchaseReturnUnconfirmedEvent is raised when a purchase return is reverted
// to pending
type PurchaseReturnUnconfirmedEvent struct {
	shared.BaseDomainEvent
	Number string `json:"number"`
}

// NewPurchaseReturnUnconfirmedEvent creates a new PurchaseReturnUnconfirmedEvent
func NewPurchaseReturnUnconfirmedEvent(r *PurchaseReturn) *PurchaseReturnUnconfirmedEvent {
	return &PurchaseReturnUnconfirmedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePurchaseReturnUnconfirmed, "PurchaseReturn", r.ID),
		Number:          r.Number,
	}
}

// SaleReturnCreatedEvent is raised when a sale return is created
type SaleReturnCreatedEvent struct {
	shared.BaseDomainEvent
	Number string    `json:"number"`
	SaleID uuid.UUID `json:"sale_id"`
}

// NewSaleReturnCreatedEvent creates a new SaleReturnCreatedEvent
func NewSaleReturnCreatedEvent(r *SaleReturn) *SaleReturnCreatedEvent {
	return &SaleReturnCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSaleReturnCreated, "SaleReturn", r.ID),
		Number:          r.Number,
		SaleID:          r.SaleID,
	}
}

// SaleReturnConfirmedEvent is raised when a sale return is confirmed
type SaleReturnConfirmedEvent struct {
	shared.BaseDomainEvent
	Number     string          `json:"number"`
	GrandTotal decimal.Decimal `json:"grand_total"`
}

// NewSaleReturnConfirmedEvent creates a new SaleReturnConfirmedEvent
func NewSaleReturnConfirmedEvent(r *SaleReturn) *SaleReturnConfirmedEvent {
	return &SaleReturnConfirmedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSaleReturnConfirmed, "SaleReturn", r.ID),
		Number:          r.Number,
		GrandTotal:      r.GrandTotal,
	}
}

// SaleReturnUnconfirmedEvent is raised when a sale return is reverted to
// pending
type SaleReturnUnconfirmedEvent struct {
	shared.BaseDomainEvent
	Number string `json:"number"`
}

// NewSaleReturnUnconfirmedEvent creates a new SaleReturnUnconfirmedEvent
func NewSaleReturnUnconfirmedEvent(r *SaleReturn) *SaleReturnUnconfirmedEvent {
	return &SaleReturnUnconfirmedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSaleReturnUnconfirmed, "SaleReturn", r.ID),
		Number:          r.Number,
	}
}

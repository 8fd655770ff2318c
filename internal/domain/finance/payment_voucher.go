package finance

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jovinkendrico/pos-mandor-jaya-sub002/internal/domain/shared"
)

// VoucherDirection distinguishes money received from money paid out
type VoucherDirection string

const (
	VoucherDirectionIn  VoucherDirection = "IN"  // Receipt from customer
	VoucherDirectionOut VoucherDirection = "OUT" // Payment to supplier
)

// IsValid returns true if the direction is valid
func (d VoucherDirection) IsValid() bool {
	return d == VoucherDirectionIn || d == VoucherDirectionOut
}

// InvoiceDirection returns the invoice direction this voucher settles
func (d VoucherDirection) InvoiceDirection() InvoiceDirection {
	if d == VoucherDirectionIn {
		return InvoiceDirectionReceivable
	}
	return InvoiceDirectionPayable
}

// VoucherStatus represents the lifecycle state of a payment voucher
type VoucherStatus string

const (
	VoucherStatusPending   VoucherStatus = "PENDING"
	VoucherStatusConfirmed VoucherStatus = "CONFIRMED"
)

// PaymentMethod is how the money moved
type PaymentMethod string

const (
	PaymentMethodCash     PaymentMethod = "CASH"
	PaymentMethodTransfer PaymentMethod = "TRANSFER"
	PaymentMethodGiro     PaymentMethod = "GIRO"
)

// IsValid returns true if the method is valid
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodTransfer, PaymentMethodGiro:
		return true
	}
	return false
}

// PaymentAllocation assigns part of a voucher's total to one invoice
type PaymentAllocation struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key"`
	VoucherID uuid.UUID       `gorm:"type:uuid;not null;index"`
	InvoiceID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	CreatedAt time.Time       `gorm:"not null"`
	UpdatedAt time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (PaymentAllocation) TableName() string {
	return "payment_allocations"
}

// PaymentVoucher represents one payment received from a customer or sent to
// a supplier, split across invoice allocations. A voucher may deliberately
// exceed its allocations: the surplus becomes an advance for the party when
// the voucher is confirmed.
type PaymentVoucher struct {
	shared.BaseAggregateRoot
	Number      string              `gorm:"type:varchar(50);not null;uniqueIndex"`
	Direction   VoucherDirection    `gorm:"type:varchar(3);not null;index"`
	PartyID     uuid.UUID           `gorm:"type:uuid;not null;index"`
	PartyName   string              `gorm:"type:varchar(200);not null"`
	Date        time.Time           `gorm:"type:date;not null;index"`
	Method      PaymentMethod       `gorm:"type:varchar(10);not null;default:'CASH'"`
	TotalAmount decimal.Decimal     `gorm:"type:decimal(18,4);not null"`
	Allocations []PaymentAllocation `gorm:"foreignKey:VoucherID;references:ID"`
	Status      VoucherStatus       `gorm:"type:varchar(20);not null;default:'PENDING'"`
	Remark      string              `gorm:"type:text"`
	ConfirmedAt *time.Time          `gorm:"index"`
}

// TableName returns the table name for GORM
func (PaymentVoucher) TableName() string {
	return "payment_vouchers"
}

// NewPaymentVoucher creates a new pending payment voucher
func NewPaymentVoucher(number string, direction VoucherDirection, partyID uuid.UUID, partyName string, date time.Time, method PaymentMethod, totalAmount decimal.Decimal) (*PaymentVoucher, error) {
	if number == "" {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Voucher number cannot be empty")
	}
	if !direction.IsValid() {
		return nil, shared.NewDomainError("INVALID_DIRECTION", "Invalid voucher direction")
	}
	if partyID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PARTY", "Party ID cannot be empty")
	}
	if !method.IsValid() {
		return nil, shared.NewDomainError("INVALID_METHOD", "Invalid payment method")
	}
	if totalAmount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Voucher amount must be positive")
	}
	if date.IsZero() {
		date = time.Now()
	}

	voucher := &PaymentVoucher{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Number:            number,
		Direction:         direction,
		PartyID:           partyID,
		PartyName:         partyName,
		Date:              date,
		Method:            method,
		TotalAmount:       totalAmount,
		Allocations:       make([]PaymentAllocation, 0),
		Status:            VoucherStatusPending,
	}

	voucher.AddDomainEvent(NewPaymentVoucherCreatedEvent(voucher))

	return voucher, nil
}

// AllocatedAmount returns the sum of all allocations
func (v *PaymentVoucher) AllocatedAmount() decimal.Decimal {
	total := decimal.Zero
	for _, a := range v.Allocations {
		total = total.Add(a.Amount)
	}
	return total
}

// SurplusAmount returns the portion of the voucher not assigned to any
// invoice. On confirm this becomes an advance.
func (v *PaymentVoucher) SurplusAmount() decimal.Decimal {
	return v.TotalAmount.Sub(v.AllocatedAmount())
}

// AddAllocation assigns part of the voucher to an invoice. Only allowed
// while pending; the allocations can never sum past the voucher total.
func (v *PaymentVoucher) AddAllocation(invoiceID uuid.UUID, amount decimal.Decimal) (*PaymentAllocation, error) {
	if v.Status != VoucherStatusPending {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot modify a confirmed voucher")
	}
	if invoiceID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INVOICE", "Invoice ID cannot be empty")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Allocation amount must be positive")
	}
	for _, a := range v.Allocations {
		if a.InvoiceID == invoiceID {
			return nil, shared.NewDomainError("DUPLICATE_ALLOCATION", "Invoice already allocated on this voucher")
		}
	}
	if v.AllocatedAmount().Add(amount).GreaterThan(v.TotalAmount) {
		return nil, shared.ErrOverAllocation
	}

	now := time.Now()
	allocation := PaymentAllocation{
		ID:        uuid.New(),
		VoucherID: v.ID,
		InvoiceID: invoiceID,
		Amount:    amount,
		CreatedAt: now,
		UpdatedAt: now,
	}
	v.Allocations = append(v.Allocations, allocation)
	v.UpdatedAt = now
	v.IncrementVersion()

	return &v.Allocations[len(v.Allocations)-1], nil
}

// UpdateAllocation changes the amount of an existing allocation.
// Only allowed while pending.
func (v *PaymentVoucher) UpdateAllocation(allocationID uuid.UUID, amount decimal.Decimal) error {
	if v.Status != VoucherStatusPending {
		return shared.NewDomainError("INVALID_STATE", "Cannot modify a confirmed voucher")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_AMOUNT", "Allocation amount must be positive")
	}

	for idx := range v.Allocations {
		if v.Allocations[idx].ID == allocationID {
			others := v.AllocatedAmount().Sub(v.Allocations[idx].Amount)
			if others.Add(amount).GreaterThan(v.TotalAmount) {
				return shared.ErrOverAllocation
			}
			v.Allocations[idx].Amount = amount
			v.Allocations[idx].UpdatedAt = time.Now()
			v.UpdatedAt = time.Now()
			v.IncrementVersion()
			return nil
		}
	}

	return shared.NewDomainError("ALLOCATION_NOT_FOUND", "Allocation not found")
}

// RemoveAllocation removes an allocation. Only allowed while pending.
func (v *PaymentVoucher) RemoveAllocation(allocationID uuid.UUID) error {
	if v.Status != VoucherStatusPending {
		return shared.NewDomainError("INVALID_STATE", "Cannot modify a confirmed voucher")
	}

	for idx, a := range v.Allocations {
		if a.ID == allocationID {
			v.Allocations = append(v.Allocations[:idx], v.Allocations[idx+1:]...)
			v.UpdatedAt = time.Now()
			v.IncrementVersion()
			return nil
		}
	}

	return shared.NewDomainError("ALLOCATION_NOT_FOUND", "Allocation not found")
}

// SetTotalAmount changes the voucher total. Only allowed while pending and
// never below what is already allocated.
func (v *PaymentVoucher) SetTotalAmount(amount decimal.Decimal) error {
	if v.Status != VoucherStatusPending {
		return shared.NewDomainError("INVALID_STATE", "Cannot modify a confirmed voucher")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_AMOUNT", "Voucher amount must be positive")
	}
	if v.AllocatedAmount().GreaterThan(amount) {
		return shared.ErrOverAllocation
	}
	v.TotalAmount = amount
	v.UpdatedAt = time.Now()
	v.IncrementVersion()
	return nil
}

// SetRemark sets the voucher remark
func (v *PaymentVoucher) SetRemark(remark string) {
	v.Remark = remark
	v.UpdatedAt = time.Now()
	v.IncrementVersion()
}

// Confirm transitions the voucher from PENDING to CONFIRMED. The caller
// re-validates every allocation against the invoice's remaining balance and
// applies the payments in the same transaction.
func (v *PaymentVoucher) Confirm() error {
	if v.Status != VoucherStatusPending {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot confirm voucher in %s status", v.Status))
	}
	if len(v.Allocations) == 0 && v.TotalAmount.IsZero() {
		return shared.NewDomainError("NO_ALLOCATIONS", "Cannot confirm an empty voucher")
	}

	now := time.Now()
	v.Status = VoucherStatusConfirmed
	v.ConfirmedAt = &now
	v.UpdatedAt = now
	v.IncrementVersion()

	v.AddDomainEvent(NewPaymentVoucherConfirmedEvent(v))

	return nil
}

// Unconfirm transitions the voucher from CONFIRMED back to PENDING. The
// caller reverses the applied payments and removes any advance the voucher
// created.
func (v *PaymentVoucher) Unconfirm() error {
	if v.Status != VoucherStatusConfirmed {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot unconfirm voucher in %s status", v.Status))
	}

	v.Status = VoucherStatusPending
	v.ConfirmedAt = nil
	v.UpdatedAt = time.Now()
	v.IncrementVersion()

	v.AddDomainEvent(NewPaymentVoucherUnconfirmedEvent(v))

	return nil
}

// IsPending returns true if the voucher is pending
func (v *PaymentVoucher) IsPending() bool {
	return v.Status == VoucherStatusPending
}

// IsConfirmed returns true if the voucher is confirmed
func (v *PaymentVoucher) IsConfirmed() bool {
	return v.Status == VoucherStatusConfirmed
}

// GetAllocation returns an allocation by its ID
func (v *PaymentVoucher) GetAllocation(allocationID uuid.UUID) *PaymentAllocation {
	for idx := range v.Allocations {
		if v.Allocations[idx].ID == allocationID {
			return &v.Allocations[idx]
		}
	}
	return nil
}

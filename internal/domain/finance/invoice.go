package finance

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jovinkendrico/pos-mandor-jaya-sub002/internal/domain/shared"
)

// InvoiceDirection distinguishes money owed to the business from money the
// business owes
type InvoiceDirection string

const (
	InvoiceDirectionReceivable InvoiceDirection = "RECEIVABLE" // Customer owes us
	InvoiceDirectionPayable    InvoiceDirection = "PAYABLE"    // We owe supplier
)

// IsValid returns true if the direction is valid
func (d InvoiceDirection) IsValid() bool {
	return d == InvoiceDirectionReceivable || d == InvoiceDirectionPayable
}

// InvoiceSource identifies the document type that opened the invoice
type InvoiceSource string

const (
	InvoiceSourcePurchase InvoiceSource = "PURCHASE"
	InvoiceSourceSale     InvoiceSource = "SALE"
)

// InvoiceStatus represents the settlement state of an invoice
type InvoiceStatus string

const (
	InvoiceStatusUnpaid  InvoiceStatus = "UNPAID"
	InvoiceStatusPartial InvoiceStatus = "PARTIAL"
	InvoiceStatusPaid    InvoiceStatus = "PAID"
)

// AgingBucket buckets an outstanding invoice by days overdue
type AgingBucket string

const (
	AgingBucketCurrent AgingBucket = "0-30"
	AgingBucket31To60  AgingBucket = "31-60"
	AgingBucket61To90  AgingBucket = "61-90"
	AgingBucketOver90  AgingBucket = ">90"
)

// Invoice tracks the settlement of one confirmed trade document. It is
// created when a purchase or sale is confirmed for its grand total and
// deleted when the document is unconfirmed, which is only possible while no
// confirmed payments touch it.
type Invoice struct {
	shared.BaseAggregateRoot
	Number      string           `gorm:"type:varchar(50);not null;uniqueIndex"`
	Direction   InvoiceDirection `gorm:"type:varchar(10);not null;index"`
	Source      InvoiceSource    `gorm:"type:varchar(20);not null"`
	SourceID    uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex"` // One invoice per document
	PartyID     uuid.UUID        `gorm:"type:uuid;not null;index"`       // Customer or supplier
	PartyName   string           `gorm:"type:varchar(200);not null"`
	Date        time.Time        `gorm:"type:date;not null;index"`
	DueDate     time.Time        `gorm:"type:date;not null;index"`
	TotalAmount decimal.Decimal  `gorm:"type:decimal(18,4);not null"`
	PaidAmount  decimal.Decimal  `gorm:"type:decimal(18,4);not null;default:0"`
	Status      InvoiceStatus    `gorm:"type:varchar(10);not null;default:'UNPAID'"`
}

// TableName returns the table name for GORM
func (Invoice) TableName() string {
	return "invoices"
}

// NewInvoice creates a new unpaid invoice for a confirmed document
func NewInvoice(number string, direction InvoiceDirection, source InvoiceSource, sourceID, partyID uuid.UUID, partyName string, date, dueDate time.Time, totalAmount decimal.Decimal) (*Invoice, error) {
	if number == "" {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Invoice number cannot be empty")
	}
	if !direction.IsValid() {
		return nil, shared.NewDomainError("INVALID_DIRECTION", "Invalid invoice direction")
	}
	if sourceID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SOURCE", "Source document cannot be empty")
	}
	if partyID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PARTY", "Party ID cannot be empty")
	}
	if totalAmount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Invoice amount must be positive")
	}
	if date.IsZero() {
		date = time.Now()
	}
	if dueDate.IsZero() {
		dueDate = date
	}
	if dueDate.Before(date) {
		return nil, shared.NewDomainError("INVALID_DUE_DATE", "Due date cannot be before invoice date")
	}

	invoice := &Invoice{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Number:            number,
		Direction:         direction,
		Source:            source,
		SourceID:          sourceID,
		PartyID:           partyID,
		PartyName:         partyName,
		Date:              date,
		DueDate:           dueDate,
		TotalAmount:       totalAmount,
		PaidAmount:        decimal.Zero,
		Status:            InvoiceStatusUnpaid,
	}

	invoice.AddDomainEvent(NewInvoiceCreatedEvent(invoice))

	return invoice, nil
}

// RemainingAmount returns the unsettled portion of the invoice
func (i *Invoice) RemainingAmount() decimal.Decimal {
	return i.TotalAmount.Sub(i.PaidAmount)
}

// IsPaid returns true if the invoice is fully settled
func (i *Invoice) IsPaid() bool {
	return i.Status == InvoiceStatusPaid
}

// HasPayments returns true if any confirmed payment has been applied
func (i *Invoice) HasPayments() bool {
	return i.PaidAmount.GreaterThan(decimal.Zero)
}

// ApplyPayment settles part of the invoice. The amount must be positive and
// can never exceed the remaining balance; overpaying an invoice is rejected
// here, the surplus belongs on the voucher as an advance instead.
func (i *Invoice) ApplyPayment(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	if amount.GreaterThan(i.RemainingAmount()) {
		return shared.ErrOverAllocation
	}

	i.PaidAmount = i.PaidAmount.Add(amount)
	i.refreshStatus()
	i.UpdatedAt = time.Now()
	i.IncrementVersion()

	if i.Status == InvoiceStatusPaid {
		i.AddDomainEvent(NewInvoiceSettledEvent(i))
	}

	return nil
}

// ReversePayment backs out a previously applied payment, used when a payment
// voucher is unconfirmed
func (i *Invoice) ReversePayment(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	if amount.GreaterThan(i.PaidAmount) {
		return shared.NewDomainError("INVALID_REVERSAL", "Cannot reverse more than was paid")
	}

	i.PaidAmount = i.PaidAmount.Sub(amount)
	i.refreshStatus()
	i.UpdatedAt = time.Now()
	i.IncrementVersion()

	return nil
}

func (i *Invoice) refreshStatus() {
	switch {
	case i.PaidAmount.GreaterThanOrEqual(i.TotalAmount):
		i.Status = InvoiceStatusPaid
	case i.PaidAmount.GreaterThan(decimal.Zero):
		i.Status = InvoiceStatusPartial
	default:
		i.Status = InvoiceStatusUnpaid
	}
}

// AgeDays returns how many days past the due date the invoice is as of the
// given date. Invoices not yet due age zero.
func (i *Invoice) AgeDays(asOf time.Time) int {
	if !asOf.After(i.DueDate) {
		return 0
	}
	return int(asOf.Sub(i.DueDate).Hours() / 24)
}

// Bucket places the invoice in an aging bucket as of the given date
func (i *Invoice) Bucket(asOf time.Time) AgingBucket {
	age := i.AgeDays(asOf)
	switch {
	case age <= 30:
		return AgingBucketCurrent
	case age <= 60:
		return AgingBucket31To60
	case age <= 90:
		return AgingBucket61To90
	default:
		return AgingBucketOver90
	}
}

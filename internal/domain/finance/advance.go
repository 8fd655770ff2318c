package finance

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jovinkendrico/pos-mandor-jaya-sub002/internal/domain/shared"
)

// Advance records money received from (or paid to) a party beyond its open
// invoices. It is created when a confirmed payment voucher carries a surplus
// and deleted when that voucher is unconfirmed.
type Advance struct {
	shared.BaseEntity
	Direction VoucherDirection `gorm:"type:varchar(3);not null;index"`
	PartyID   uuid.UUID        `gorm:"type:uuid;not null;index"`
	PartyName string           `gorm:"type:varchar(200);not null"`
	VoucherID uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex"` // Voucher that created the surplus
	Date      time.Time        `gorm:"type:date;not null;index"`
	Amount    decimal.Decimal  `gorm:"type:decimal(18,4);not null"`
	Remark    string           `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Advance) TableName() string {
	return "advances"
}

// NewAdvance creates an advance from a voucher surplus
func NewAdvance(direction VoucherDirection, partyID uuid.UUID, partyName string, voucherID uuid.UUID, date time.Time, amount decimal.Decimal, remark string) (*Advance, error) {
	if !direction.IsValid() {
		return nil, shared.NewDomainError("INVALID_DIRECTION", "Invalid advance direction")
	}
	if partyID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PARTY", "Party ID cannot be empty")
	}
	if voucherID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_VOUCHER", "Voucher ID cannot be empty")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Advance amount must be positive")
	}
	if date.IsZero() {
		date = time.Now()
	}

	return &Advance{
		BaseEntity: shared.NewBaseEntity(),
		Direction:  direction,
		PartyID:    partyID,
		PartyName:  partyName,
		VoucherID:  voucherID,
		Date:       date,
		Amount:     amount,
		Remark:     remark,
	}, nil
}

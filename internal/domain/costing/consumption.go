package costing

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jovinkendrico/pos-mandor-jaya-sub002/internal/domain/shared"
)

// ConsumptionRecord links a confirmed sale line to the cost layer(s) it drew
// from. The records form an append-only replay log: unconfirming the sale
// folds over them in reverse to restore each layer's remaining quantity
// exactly, instead of recomputing FIFO from current state.
type ConsumptionRecord struct {
	shared.BaseEntity
	DocumentID  uuid.UUID       `gorm:"type:uuid;not null;index"` // Sale that consumed the stock
	DetailID    uuid.UUID       `gorm:"type:uuid;not null;index"` // Sale detail line
	CostLayerID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantity    decimal.Decimal `gorm:"type:decimal(18,4);not null"` // Base units consumed
	UnitCost    decimal.Decimal `gorm:"type:decimal(18,6);not null"` // Layer cost at consumption time
	Sequence    int64           `gorm:"autoIncrement"`               // Replay order within the document
}

// TableName returns the table name for GORM
func (ConsumptionRecord) TableName() string {
	return "consumption_records"
}

// NewConsumptionRecord creates a new consumption record
func NewConsumptionRecord(documentID, detailID, costLayerID uuid.UUID, quantity, unitCost decimal.Decimal) (*ConsumptionRecord, error) {
	if documentID == uuid.Nil || detailID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_DOCUMENT", "Document reference cannot be empty")
	}
	if costLayerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_LAYER", "Cost layer ID cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitCost.IsNegative() {
		return nil, shared.NewDomainError("INVALID_COST", "Unit cost cannot be negative")
	}

	return &ConsumptionRecord{
		BaseEntity:  shared.NewBaseEntity(),
		DocumentID:  documentID,
		DetailID:    detailID,
		CostLayerID: costLayerID,
		Quantity:    quantity,
		UnitCost:    unitCost,
	}, nil
}

// TotalCost returns the total cost drawn by this record
func (r *ConsumptionRecord) TotalCost() decimal.Decimal {
	return r.Quantity.Mul(r.UnitCost)
}

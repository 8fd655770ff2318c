package costing

import (
	"context"

	"github.com/google/uuid"
)

// CostLayerRepository defines persistence operations for cost layers
type CostLayerRepository interface {
	// FindByItemFIFO returns all of an item's layers in FIFO (creation)
	// order, including exhausted ones.
	FindByItemFIFO(ctx context.Context, itemID uuid.UUID) ([]*CostLayer, error)
	// FindByItemFIFOForUpdate is FindByItemFIFO with row-level locks so
	// concurrent consumers of the same item's layers serialize.
	FindByItemFIFOForUpdate(ctx context.Context, itemID uuid.UUID) ([]*CostLayer, error)
	FindBySource(ctx context.Context, sourceType ReferenceType, sourceID uuid.UUID) ([]*CostLayer, error)
	FindBySourceDetail(ctx context.Context, sourceDetailID uuid.UUID) ([]*CostLayer, error)
	Save(ctx context.Context, layer *CostLayer) error
	SaveAll(ctx context.Context, layers []*CostLayer) error
	DeleteBySource(ctx context.Context, sourceType ReferenceType, sourceID uuid.UUID) error
}

// ConsumptionRepository defines persistence operations for consumption
// records
type ConsumptionRepository interface {
	// FindByDocument returns a document's consumption records in replay
	// (insertion) order.
	FindByDocument(ctx context.Context, documentID uuid.UUID) ([]ConsumptionRecord, error)
	FindByDetail(ctx context.Context, detailID uuid.UUID) ([]ConsumptionRecord, error)
	SaveAll(ctx context.Context, records []ConsumptionRecord) error
	DeleteByDocument(ctx context.Context, documentID uuid.UUID) error
}

// StockMovementRepository defines persistence operations for the stock card
type StockMovementRepository interface {
	FindByItem(ctx context.Context, itemID uuid.UUID) ([]StockMovement, error)
	SaveAll(ctx context.Context, movements []StockMovement) error
	DeleteByReference(ctx context.Context, refType ReferenceType, refID uuid.UUID) error
}

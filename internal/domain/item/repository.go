package item

import (
	"context"

	"github.com/google/uuid"

	"github.com/jovinkendrico/pos-mandor-jaya-sub002/internal/domain/shared"
)

// Repository defines persistence operations for items
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Item, error)
	// FindByIDForUpdate loads the item with a row-level lock so concurrent
	// document confirmations touching the same item are serialized.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Item, error)
	FindByCode(ctx context.Context, code string) (*Item, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Item, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, it *Item) error
	Delete(ctx context.Context, id uuid.UUID) error
}

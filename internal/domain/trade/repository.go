package trade

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jovinkendrico/pos-mandor-jaya-sub002/internal/domain/shared"
)

// PurchaseRepository defines persistence operations for purchases
type PurchaseRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Purchase, error)
	// FindByIDForUpdate locks the purchase row for the duration of the
	// transaction so concurrent confirm/unconfirm calls serialize.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Purchase, error)
	FindByNumber(ctx context.Context, number string) (*Purchase, error)
	FindAll(ctx context.Context, filter shared.Filter) (shared.Paginated[*Purchase], error)
	Save(ctx context.Context, purchase *Purchase) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// SaleRepository defines persistence operations for sales
type SaleRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Sale, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Sale, error)
	FindByNumber(ctx context.Context, number string) (*Sale, error)
	FindAll(ctx context.Context, filter shared.Filter) (shared.Paginated[*Sale], error)
	// FindConfirmedBetween returns confirmed sales with a date inside the
	// range, used by the profit and best-seller reports.
	FindConfirmedBetween(ctx context.Context, from, to time.Time) ([]*Sale, error)
	Save(ctx context.Context, sale *Sale) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// PurchaseReturnRepository defines persistence operations for purchase returns
type PurchaseReturnRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*PurchaseReturn, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*PurchaseReturn, error)
	FindByNumber(ctx context.Context, number string) (*PurchaseReturn, error)
	FindByPurchase(ctx context.Context, purchaseID uuid.UUID) ([]*PurchaseReturn, error)
	FindAll(ctx context.Context, filter shared.Filter) (shared.Paginated[*PurchaseReturn], error)
	Save(ctx context.Context, ret *PurchaseReturn) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// SaleReturnRepository defines persistence operations for sale returns
type SaleReturnRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*SaleReturn, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*SaleReturn, error)
	FindByNumber(ctx context.Context, number string) (*SaleReturn, error)
	FindBySale(ctx context.Context, saleID uuid.UUID) ([]*SaleReturn, error)
	FindAll(ctx context.Context, filter shared.Filter) (shared.Paginated[*SaleReturn], error)
	Save(ctx context.Context, ret *SaleReturn) error
	Delete(ctx context.Context, id uuid.UUID) error
}

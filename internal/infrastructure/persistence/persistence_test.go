package persistence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	apptrade "github.com/jovinkendrico/pos-mandor-jaya-sub002/internal/application/trade"
	"github.com/jovinkendrico/pos-mandor-jaya-sub002/internal/domain/costing"
	"github.com/jovinkendrico/pos-mandor-jaya-sub002/internal/domain/finance"
	"github.com/jovinkendrico/pos-mandor-jaya-sub002/internal/domain/item"
	"github.com/jovinkendrico/pos-mandor-jaya-sub002/internal/domain/shared"
	"github.com/jovinkendrico/pos-mandor-jaya-sub002/internal/domain/trade"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&item.Item{},
		&item.ItemUOM{},
		&costing.CostLayer{},
		&costing.ConsumptionRecord{},
		&costing.StockMovement{},
		&trade.Purchase{},
		&trade.PurchaseDetail{},
		&trade.Sale{},
		&trade.SaleDetail{},
		&trade.PurchaseReturn{},
		&trade.PurchaseReturnDetail{},
		&trade.SaleReturn{},
		&trade.SaleReturnDetail{},
		&finance.Invoice{},
		&finance.PaymentVoucher{},
		&finance.PaymentAllocation{},
		&finance.Advance{},
	)
	require.NoError(t, err)

	return db
}

func newTestItem(t *testing.T, code string) *item.Item {
	it, err := item.NewItem(code, "Item "+code, "", "PCS", decimal.NewFromInt(1000))
	require.NoError(t, err)
	return it
}

func TestGormItemRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormItemRepository(db)
	ctx := context.Background()

	t.Run("save and find by id with uoms", func(t *testing.T) {
		it := newTestItem(t, "ITM-001")
		_, err := it.AddUOM("Kotak", decimal.NewFromInt(100), decimal.NewFromInt(95000))
		require.NoError(t, err)

		require.NoError(t, repo.Save(ctx, it))

		found, err := repo.FindByID(ctx, it.ID)
		require.NoError(t, err)
		assert.Equal(t, "ITM-001", found.Code)
		assert.Len(t, found.UOMs, 2)
		require.NotNil(t, found.BaseUOM())
		assert.Equal(t, "PCS", found.BaseUOM().Name)
	})

	t.Run("find by code", func(t *testing.T) {
		found, err := repo.FindByCode(ctx, "ITM-001")
		require.NoError(t, err)
		assert.Equal(t, "ITM-001", found.Code)

		_, err = repo.FindByCode(ctx, "NOPE")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("save deletes removed uoms", func(t *testing.T) {
		found, err := repo.FindByCode(ctx, "ITM-001")
		require.NoError(t, err)

		var alt *item.ItemUOM
		for idx := range found.UOMs {
			if !found.UOMs[idx].IsBase {
				alt = &found.UOMs[idx]
			}
		}
		require.NotNil(t, alt)
		require.NoError(t, found.RemoveUOM(alt.ID))
		require.NoError(t, repo.Save(ctx, found))

		reloaded, err := repo.FindByID(ctx, found.ID)
		require.NoError(t, err)
		assert.Len(t, reloaded.UOMs, 1)
	})

	t.Run("find all and count", func(t *testing.T) {
		require.NoError(t, repo.Save(ctx, newTestItem(t, "ITM-002")))

		items, err := repo.FindAll(ctx, shared.DefaultFilter())
		require.NoError(t, err)
		assert.Len(t, items, 2)

		count, err := repo.Count(ctx, shared.Filter{})
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)
	})

	t.Run("delete removes item and uoms", func(t *testing.T) {
		it := newTestItem(t, "ITM-DEL")
		require.NoError(t, repo.Save(ctx, it))
		require.NoError(t, repo.Delete(ctx, it.ID))

		_, err := repo.FindByID(ctx, it.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)

		var uomCount int64
		require.NoError(t, db.Model(&item.ItemUOM{}).Where("item_id = ?", it.ID).Count(&uomCount).Error)
		assert.Equal(t, int64(0), uomCount)

		assert.ErrorIs(t, repo.Delete(ctx, it.ID), shared.ErrNotFound)
	})
}

func TestGormCostLayerRepository_FIFOOrder(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormCostLayerRepository(db)
	ctx := context.Background()

	itemID := uuid.New()
	sourceA := uuid.New()
	sourceB := uuid.New()

	first, err := costing.NewCostLayer(itemID, costing.ReferenceTypePurchase, sourceA, uuid.New(), decimal.NewFromInt(10), decimal.NewFromInt(100))
	require.NoError(t, err)
	second, err := costing.NewCostLayer(itemID, costing.ReferenceTypePurchase, sourceB, uuid.New(), decimal.NewFromInt(12), decimal.NewFromInt(50))
	require.NoError(t, err)
	// Force distinct creation times so FIFO order is deterministic
	second.CreatedAt = first.CreatedAt.Add(time.Second)

	require.NoError(t, repo.SaveAll(ctx, []*costing.CostLayer{first, second}))

	layers, err := repo.FindByItemFIFO(ctx, itemID)
	require.NoError(t, err)
	require.Len(t, layers, 2)
	assert.Equal(t, first.ID, layers[0].ID)
	assert.Equal(t, second.ID, layers[1].ID)

	bySource, err := repo.FindBySource(ctx, costing.ReferenceTypePurchase, sourceA)
	require.NoError(t, err)
	require.Len(t, bySource, 1)
	assert.Equal(t, first.ID, bySource[0].ID)

	require.NoError(t, repo.DeleteBySource(ctx, costing.ReferenceTypePurchase, sourceA))
	layers, err = repo.FindByItemFIFO(ctx, itemID)
	require.NoError(t, err)
	assert.Len(t, layers, 1)
}

func TestGormPurchaseRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormPurchaseRepository(db)
	ctx := context.Background()

	newPurchase := func(number string) *trade.Purchase {
		p, err := trade.NewPurchase(number, uuid.New(), "Supplier", time.Now())
		require.NoError(t, err)
		_, err = p.AddDetail(uuid.New(), "ITM-001", "Item", uuid.New(), "PCS",
			decimal.NewFromInt(1), decimal.NewFromInt(10), decimal.NewFromInt(5000),
			decimal.Zero, decimal.Zero)
		require.NoError(t, err)
		return p
	}

	t.Run("save and reload with details", func(t *testing.T) {
		p := newPurchase("PO-001")
		require.NoError(t, repo.Save(ctx, p))

		found, err := repo.FindByNumber(ctx, "PO-001")
		require.NoError(t, err)
		require.Len(t, found.Details, 1)
		assert.True(t, found.GrandTotal.Equal(decimal.NewFromInt(50000)))
		assert.Equal(t, trade.DocumentStatusPending, found.Status)
	})

	t.Run("save deletes removed details", func(t *testing.T) {
		found, err := repo.FindByNumber(ctx, "PO-001")
		require.NoError(t, err)

		_, err = found.AddDetail(uuid.New(), "ITM-002", "Item 2", uuid.New(), "PCS",
			decimal.NewFromInt(1), decimal.NewFromInt(5), decimal.NewFromInt(1000),
			decimal.Zero, decimal.Zero)
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, found))

		reloaded, err := repo.FindByID(ctx, found.ID)
		require.NoError(t, err)
		require.Len(t, reloaded.Details, 2)

		require.NoError(t, reloaded.RemoveDetail(reloaded.Details[0].ID))
		require.NoError(t, repo.Save(ctx, reloaded))

		final, err := repo.FindByID(ctx, found.ID)
		require.NoError(t, err)
		assert.Len(t, final.Details, 1)

		var detailCount int64
		require.NoError(t, db.Model(&trade.PurchaseDetail{}).Where("purchase_id = ?", found.ID).Count(&detailCount).Error)
		assert.Equal(t, int64(1), detailCount)
	})

	t.Run("find all paginates", func(t *testing.T) {
		require.NoError(t, repo.Save(ctx, newPurchase("PO-002")))
		require.NoError(t, repo.Save(ctx, newPurchase("PO-003")))

		page, err := repo.FindAll(ctx, shared.Filter{Page: 1, PageSize: 2})
		require.NoError(t, err)
		assert.Equal(t, int64(3), page.Total)
		assert.Len(t, page.Items, 2)
		assert.Equal(t, 2, page.TotalPages)
	})

	t.Run("status filter", func(t *testing.T) {
		page, err := repo.FindAll(ctx, shared.Filter{
			Page: 1, PageSize: 10,
			Filters: map[string]interface{}{"status": trade.DocumentStatusPending},
		})
		require.NoError(t, err)
		assert.Equal(t, int64(3), page.Total)
	})
}

func TestGormInvoiceRepository_FindOutstanding(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormInvoiceRepository(db)
	ctx := context.Background()

	now := time.Now()
	paid, err := finance.NewInvoice("INV-001", finance.InvoiceDirectionPayable, finance.InvoiceSourcePurchase,
		uuid.New(), uuid.New(), "Supplier", now, now.AddDate(0, 0, 30), decimal.NewFromInt(1000))
	require.NoError(t, err)
	require.NoError(t, paid.ApplyPayment(decimal.NewFromInt(1000)))

	open, err := finance.NewInvoice("INV-002", finance.InvoiceDirectionPayable, finance.InvoiceSourcePurchase,
		uuid.New(), uuid.New(), "Supplier", now, now.AddDate(0, 0, 30), decimal.NewFromInt(2000))
	require.NoError(t, err)

	receivable, err := finance.NewInvoice("INV-003", finance.InvoiceDirectionReceivable, finance.InvoiceSourceSale,
		uuid.New(), uuid.New(), "Customer", now, now.AddDate(0, 0, 30), decimal.NewFromInt(3000))
	require.NoError(t, err)

	require.NoError(t, repo.Save(ctx, paid))
	require.NoError(t, repo.Save(ctx, open))
	require.NoError(t, repo.Save(ctx, receivable))

	outstanding, err := repo.FindOutstanding(ctx, finance.InvoiceDirectionPayable, now.AddDate(0, 0, 1))
	require.NoError(t, err)
	require.Len(t, outstanding, 1)
	assert.Equal(t, "INV-002", outstanding[0].Number)
}

func TestGormPaymentVoucherRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormPaymentVoucherRepository(db)
	ctx := context.Background()

	invoiceID := uuid.New()
	v, err := finance.NewPaymentVoucher("PV-001", finance.VoucherDirectionIn, uuid.New(), "Customer",
		time.Now(), finance.PaymentMethodCash, decimal.NewFromInt(50000))
	require.NoError(t, err)
	_, err = v.AddAllocation(invoiceID, decimal.NewFromInt(30000))
	require.NoError(t, err)

	require.NoError(t, repo.Save(ctx, v))

	found, err := repo.FindByNumber(ctx, "PV-001")
	require.NoError(t, err)
	require.Len(t, found.Allocations, 1)
	assert.True(t, found.SurplusAmount().Equal(decimal.NewFromInt(20000)))

	// Removing an allocation must delete the orphaned row
	require.NoError(t, found.RemoveAllocation(found.Allocations[0].ID))
	require.NoError(t, repo.Save(ctx, found))

	reloaded, err := repo.FindByID(ctx, found.ID)
	require.NoError(t, err)
	assert.Len(t, reloaded.Allocations, 0)
}

func TestGormTradeTransactionScope_RollsBackOnError(t *testing.T) {
	db := setupTestDB(t)
	scope := NewGormTradeTransactionScope(db)
	ctx := context.Background()

	itemID := uuid.New()
	boom := errors.New("boom")

	err := scope.Execute(ctx, func(repos apptrade.TransactionalRepositories) error {
		layer, err := costing.NewCostLayer(itemID, costing.ReferenceTypePurchase, uuid.New(), uuid.New(),
			decimal.NewFromInt(10), decimal.NewFromInt(100))
		require.NoError(t, err)
		if err := repos.Layers().Save(ctx, layer); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	layers, err := NewGormCostLayerRepository(db).FindByItemFIFO(ctx, itemID)
	require.NoError(t, err)
	assert.Len(t, layers, 0)
}

func TestGormTradeTransactionScope_CommitsOnSuccess(t *testing.T) {
	db := setupTestDB(t)
	scope := NewGormTradeTransactionScope(db)
	ctx := context.Background()

	it := newTestItem(t, "ITM-TX")
	err := scope.Execute(ctx, func(repos apptrade.TransactionalRepositories) error {
		return repos.Items().Save(ctx, it)
	})
	require.NoError(t, err)

	found, err := NewGormItemRepository(db).FindByID(ctx, it.ID)
	require.NoError(t, err)
	assert.Equal(t, "ITM-TX", found.Code)
}

package trade

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPurchaseReturn_Lifecycle(t *testing.T) {
	r, err := NewPurchaseReturn("RB-2025-001", uuid.New(), uuid.New(), "Toko Sumber Baja", time.Now())
	require.NoError(t, err)

	sourceDetailID := uuid.New()
	detail, err := r.AddDetail(
		sourceDetailID, uuid.New(), "PK-005", "Paku 5cm",
		uuid.New(), "Kotak", decimal.NewFromInt(100),
		decimal.NewFromInt(1), decimal.NewFromInt(900000),
		decimal.Zero, decimal.Zero,
	)
	require.NoError(t, err)
	assert.True(t, detail.BaseQuantity.Equal(decimal.NewFromInt(100)))
	assert.True(t, r.GrandTotal.Equal(decimal.NewFromInt(900000)))

	t.Run("rejects duplicate source detail", func(t *testing.T) {
		_, err := r.AddDetail(sourceDetailID, uuid.New(), "PK-005", "Paku 5cm",
			uuid.New(), "Kotak", decimal.NewFromInt(100),
			decimal.NewFromInt(1), decimal.NewFromInt(900000), decimal.Zero, decimal.Zero)
		assert.Error(t, err)
	})

	require.NoError(t, r.Confirm())
	assert.True(t, r.IsConfirmed())
	assert.Error(t, r.Confirm())

	require.NoError(t, r.Unconfirm())
	assert.True(t, r.IsPending())
}

func TestPurchaseReturn_RequiresSourceReferences(t *testing.T) {
	_, err := NewPurchaseReturn("RB-2025-001", uuid.Nil, uuid.New(), "Toko Sumber Baja", time.Now())
	assert.Error(t, err)

	r, err := NewPurchaseReturn("RB-2025-001", uuid.New(), uuid.New(), "Toko Sumber Baja", time.Now())
	require.NoError(t, err)

	_, err = r.AddDetail(uuid.Nil, uuid.New(), "PK-005", "Paku 5cm",
		uuid.New(), "PCS", decimal.NewFromInt(1),
		decimal.NewFromInt(10), decimal.NewFromInt(100), decimal.Zero, decimal.Zero)
	assert.Error(t, err)
}

func TestSaleReturn_FinalizeRestoredCosts(t *testing.T) {
	r, err := NewSaleReturn("RJ-2025-001", uuid.New(), uuid.New(), "Bpk. Hartono", time.Now())
	require.NoError(t, err)

	// 20 PCS back at the original sale price of 15.
	detail, err := r.AddDetail(
		uuid.New(), uuid.New(), "PK-005", "Paku 5cm",
		uuid.New(), "PCS", decimal.NewFromInt(1),
		decimal.NewFromInt(20), decimal.NewFromInt(15),
		decimal.Zero, decimal.Zero,
	)
	require.NoError(t, err)
	require.NoError(t, r.Confirm())

	// Stock reinstated at the historical cost of 10/unit.
	require.NoError(t, r.SetDetailRestoredCost(detail.ID, decimal.NewFromInt(200)))
	r.FinalizeRestoredCosts()

	assert.True(t, r.RestoredCost.Equal(decimal.NewFromInt(200)))
	// Refund 300 against 200 of recovered cost: profit drops by 100.
	assert.True(t, r.ProfitAdjustment.Equal(decimal.NewFromInt(-100)))
}

func TestSaleReturn_ClearRestoredCosts(t *testing.T) {
	r, err := NewSaleReturn("RJ-2025-001", uuid.New(), uuid.New(), "Bpk. Hartono", time.Now())
	require.NoError(t, err)

	detail, err := r.AddDetail(
		uuid.New(), uuid.New(), "PK-005", "Paku 5cm",
		uuid.New(), "PCS", decimal.NewFromInt(1),
		decimal.NewFromInt(20), decimal.NewFromInt(15),
		decimal.Zero, decimal.Zero,
	)
	require.NoError(t, err)
	require.NoError(t, r.Confirm())
	require.NoError(t, r.SetDetailRestoredCost(detail.ID, decimal.NewFromInt(200)))
	r.FinalizeRestoredCosts()

	require.NoError(t, r.Unconfirm())
	r.ClearRestoredCosts()

	assert.True(t, r.RestoredCost.IsZero())
	assert.True(t, r.ProfitAdjustment.IsZero())
	assert.True(t, r.GetDetail(detail.ID).RestoredCost.IsZero())
}

func TestSaleReturn_ModificationGuards(t *testing.T) {
	r, err := NewSaleReturn("RJ-2025-001", uuid.New(), uuid.New(), "Bpk. Hartono", time.Now())
	require.NoError(t, err)

	detail, err := r.AddDetail(
		uuid.New(), uuid.New(), "PK-005", "Paku 5cm",
		uuid.New(), "PCS", decimal.NewFromInt(1),
		decimal.NewFromInt(20), decimal.NewFromInt(15),
		decimal.Zero, decimal.Zero,
	)
	require.NoError(t, err)
	require.NoError(t, r.Confirm())

	assert.Error(t, r.UpdateDetailQuantity(detail.ID, decimal.NewFromInt(10)))
	assert.Error(t, r.RemoveDetail(detail.ID))
}

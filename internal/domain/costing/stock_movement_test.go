package costing

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jovinkendrico/pos-mandor-jaya-sub002/internal/domain/shared"
)

func TestNewStockMovement(t *testing.T) {
	itemID, refID := uuid.New(), uuid.New()
	now := time.Now()

	t.Run("creates inbound movement", func(t *testing.T) {
		m, err := NewStockMovement(itemID, ReferenceTypePurchase, refID, MovementIn,
			decimal.NewFromInt(100), decimal.NewFromInt(10), decimal.NewFromInt(100), now)
		require.NoError(t, err)
		assert.True(t, m.SignedQuantity().Equal(decimal.NewFromInt(100)))
	})

	t.Run("outbound movement carries negative signed quantity", func(t *testing.T) {
		m, err := NewStockMovement(itemID, ReferenceTypeSale, refID, MovementOut,
			decimal.NewFromInt(30), decimal.NewFromInt(10), decimal.NewFromInt(70), now)
		require.NoError(t, err)
		assert.True(t, m.SignedQuantity().Equal(decimal.NewFromInt(-30)))
	})

	t.Run("rejects negative balance after", func(t *testing.T) {
		_, err := NewStockMovement(itemID, ReferenceTypeSale, refID, MovementOut,
			decimal.NewFromInt(30), decimal.NewFromInt(10), decimal.NewFromInt(-5), now)
		assert.ErrorIs(t, err, shared.ErrInsufficientStock)
	})

	t.Run("rejects invalid reference type", func(t *testing.T) {
		_, err := NewStockMovement(itemID, ReferenceType("BOGUS"), refID, MovementIn,
			decimal.NewFromInt(1), decimal.Zero, decimal.NewFromInt(1), now)
		assert.Error(t, err)
	})

	t.Run("rejects zero quantity", func(t *testing.T) {
		_, err := NewStockMovement(itemID, ReferenceTypePurchase, refID, MovementIn,
			decimal.Zero, decimal.Zero, decimal.Zero, now)
		assert.Error(t, err)
	})
}

func TestReferenceType_IsValid(t *testing.T) {
	for _, rt := range []ReferenceType{
		ReferenceTypePurchase, ReferenceTypeSale,
		ReferenceTypePurchaseReturn, ReferenceTypeSaleReturn,
		ReferenceTypeStockAdjustment, ReferenceTypeOpeningBalance,
	} {
		assert.True(t, rt.IsValid(), rt.String())
	}
	assert.False(t, ReferenceType("UNKNOWN").IsValid())
}

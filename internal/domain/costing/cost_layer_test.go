package costing

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jovinkendrico/pos-mandor-jaya-sub002/internal/domain/shared"
)

func newTestLayer(t *testing.T, qty, cost int64) *CostLayer {
	layer, err := NewCostLayer(
		uuid.New(), ReferenceTypePurchase, uuid.New(), uuid.New(),
		decimal.NewFromInt(cost), decimal.NewFromInt(qty),
	)
	require.NoError(t, err)
	return layer
}

func TestNewCostLayer(t *testing.T) {
	t.Run("creates layer with full remaining quantity", func(t *testing.T) {
		layer := newTestLayer(t, 100, 10)

		assert.True(t, layer.InitialQuantity.Equal(decimal.NewFromInt(100)))
		assert.True(t, layer.RemainingQuantity.Equal(decimal.NewFromInt(100)))
		assert.True(t, layer.IsUntouched())
		assert.False(t, layer.IsExhausted())
	})

	t.Run("rejects zero quantity", func(t *testing.T) {
		_, err := NewCostLayer(uuid.New(), ReferenceTypePurchase, uuid.New(), uuid.New(), decimal.NewFromInt(10), decimal.Zero)
		assert.Error(t, err)
	})

	t.Run("rejects negative cost", func(t *testing.T) {
		_, err := NewCostLayer(uuid.New(), ReferenceTypePurchase, uuid.New(), uuid.New(), decimal.NewFromInt(-1), decimal.NewFromInt(10))
		assert.Error(t, err)
	})

	t.Run("allows zero cost", func(t *testing.T) {
		layer, err := NewCostLayer(uuid.New(), ReferenceTypeOpeningBalance, uuid.New(), uuid.New(), decimal.Zero, decimal.NewFromInt(10))
		require.NoError(t, err)
		assert.True(t, layer.RemainingValue().IsZero())
	})
}

func TestCostLayer_Consume(t *testing.T) {
	layer := newTestLayer(t, 100, 10)

	consumed := layer.Consume(decimal.NewFromInt(30))
	assert.True(t, consumed.Equal(decimal.NewFromInt(30)))
	assert.True(t, layer.RemainingQuantity.Equal(decimal.NewFromInt(70)))
	assert.False(t, layer.IsUntouched())

	// Over-draw caps at whatever remains.
	consumed = layer.Consume(decimal.NewFromInt(200))
	assert.True(t, consumed.Equal(decimal.NewFromInt(70)))
	assert.True(t, layer.IsExhausted())
	assert.True(t, layer.InitialQuantity.Equal(decimal.NewFromInt(100)))
}

func TestCostLayer_Restore(t *testing.T) {
	layer := newTestLayer(t, 100, 10)
	layer.Consume(decimal.NewFromInt(40))

	require.NoError(t, layer.Restore(decimal.NewFromInt(40)))
	assert.True(t, layer.IsUntouched())

	err := layer.Restore(decimal.NewFromInt(1))
	assert.Error(t, err)
	assert.True(t, layer.RemainingQuantity.Equal(decimal.NewFromInt(100)))
}

func TestCostLayer_ReduceInitial(t *testing.T) {
	t.Run("shrinks both quantities", func(t *testing.T) {
		layer := newTestLayer(t, 100, 10)

		require.NoError(t, layer.ReduceInitial(decimal.NewFromInt(30)))
		assert.True(t, layer.InitialQuantity.Equal(decimal.NewFromInt(70)))
		assert.True(t, layer.RemainingQuantity.Equal(decimal.NewFromInt(70)))
		assert.True(t, layer.IsUntouched())
	})

	t.Run("fails when remaining is too low", func(t *testing.T) {
		layer := newTestLayer(t, 100, 10)
		layer.Consume(decimal.NewFromInt(80))

		err := layer.ReduceInitial(decimal.NewFromInt(30))
		assert.ErrorIs(t, err, shared.ErrInsufficientStock)
		assert.True(t, layer.InitialQuantity.Equal(decimal.NewFromInt(100)))
	})
}

func TestCostLayer_ExpandInitial(t *testing.T) {
	layer := newTestLayer(t, 100, 10)
	require.NoError(t, layer.ReduceInitial(decimal.NewFromInt(30)))

	require.NoError(t, layer.ExpandInitial(decimal.NewFromInt(30)))
	assert.True(t, layer.InitialQuantity.Equal(decimal.NewFromInt(100)))
	assert.True(t, layer.RemainingQuantity.Equal(decimal.NewFromInt(100)))

	assert.Error(t, layer.ExpandInitial(decimal.Zero))
}

func TestCostLayer_RemainingValue(t *testing.T) {
	layer := newTestLayer(t, 100, 10)
	layer.Consume(decimal.NewFromInt(25))

	assert.True(t, layer.RemainingValue().Equal(decimal.NewFromInt(750)))
}

package costing

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jovinkendrico/pos-mandor-jaya-sub002/internal/domain/shared"
)

func TestConsumeFIFO(t *testing.T) {
	t.Run("draws from oldest layer first", func(t *testing.T) {
		l1 := newTestLayer(t, 100, 10)
		l2 := newTestLayer(t, 50, 12)
		layers := []*CostLayer{l1, l2}

		result, err := ConsumeFIFO(decimal.NewFromInt(120), layers)
		require.NoError(t, err)

		require.Len(t, result.Consumptions, 2)
		assert.Equal(t, l1.ID, result.Consumptions[0].CostLayerID)
		assert.True(t, result.Consumptions[0].Quantity.Equal(decimal.NewFromInt(100)))
		assert.Equal(t, l2.ID, result.Consumptions[1].CostLayerID)
		assert.True(t, result.Consumptions[1].Quantity.Equal(decimal.NewFromInt(20)))

		// 100*10 + 20*12 = 1240
		assert.True(t, result.TotalCost.Equal(decimal.NewFromInt(1240)))
		assert.True(t, l1.IsExhausted())
		assert.True(t, l2.RemainingQuantity.Equal(decimal.NewFromInt(30)))
	})

	t.Run("single layer covers the whole draw", func(t *testing.T) {
		l1 := newTestLayer(t, 100, 10)

		result, err := ConsumeFIFO(decimal.NewFromInt(40), []*CostLayer{l1})
		require.NoError(t, err)
		require.Len(t, result.Consumptions, 1)
		assert.True(t, result.TotalCost.Equal(decimal.NewFromInt(400)))
		assert.True(t, l1.RemainingQuantity.Equal(decimal.NewFromInt(60)))
	})

	t.Run("skips exhausted layers", func(t *testing.T) {
		l1 := newTestLayer(t, 100, 10)
		l1.Consume(decimal.NewFromInt(100))
		l2 := newTestLayer(t, 50, 12)

		result, err := ConsumeFIFO(decimal.NewFromInt(10), []*CostLayer{l1, l2})
		require.NoError(t, err)
		require.Len(t, result.Consumptions, 1)
		assert.Equal(t, l2.ID, result.Consumptions[0].CostLayerID)
	})

	t.Run("insufficient stock mutates nothing", func(t *testing.T) {
		l1 := newTestLayer(t, 100, 10)
		l2 := newTestLayer(t, 50, 12)

		_, err := ConsumeFIFO(decimal.NewFromInt(151), []*CostLayer{l1, l2})
		assert.ErrorIs(t, err, shared.ErrInsufficientStock)
		assert.True(t, l1.IsUntouched())
		assert.True(t, l2.IsUntouched())
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		_, err := ConsumeFIFO(decimal.Zero, nil)
		assert.Error(t, err)
	})
}

func TestRestoreConsumptions(t *testing.T) {
	t.Run("replays records in reverse to restore layers exactly", func(t *testing.T) {
		l1 := newTestLayer(t, 100, 10)
		l2 := newTestLayer(t, 50, 12)
		layers := []*CostLayer{l1, l2}

		docID, detailID := uuid.New(), uuid.New()
		result, err := ConsumeFIFO(decimal.NewFromInt(120), layers)
		require.NoError(t, err)

		records := make([]ConsumptionRecord, 0, len(result.Consumptions))
		for _, c := range result.Consumptions {
			rec, err := NewConsumptionRecord(docID, detailID, c.CostLayerID, c.Quantity, c.UnitCost)
			require.NoError(t, err)
			records = append(records, *rec)
		}

		require.NoError(t, RestoreConsumptions(records, layers))
		assert.True(t, l1.IsUntouched())
		assert.True(t, l2.IsUntouched())
	})

	t.Run("fails on unknown layer", func(t *testing.T) {
		rec, err := NewConsumptionRecord(uuid.New(), uuid.New(), uuid.New(), decimal.NewFromInt(5), decimal.NewFromInt(10))
		require.NoError(t, err)

		err = RestoreConsumptions([]ConsumptionRecord{*rec}, nil)
		assert.Error(t, err)
	})
}

func TestReduceForReturn(t *testing.T) {
	t.Run("permanently shrinks layers oldest first", func(t *testing.T) {
		l1 := newTestLayer(t, 100, 10)
		l2 := newTestLayer(t, 50, 12)

		result, err := ReduceForReturn(decimal.NewFromInt(110), []*CostLayer{l1, l2})
		require.NoError(t, err)

		// 100*10 + 10*12 = 1120
		assert.True(t, result.TotalCost.Equal(decimal.NewFromInt(1120)))
		require.Len(t, result.Consumptions, 2)
		assert.True(t, l1.InitialQuantity.IsZero())
		assert.True(t, l2.InitialQuantity.Equal(decimal.NewFromInt(40)))
		assert.True(t, l2.RemainingQuantity.Equal(decimal.NewFromInt(40)))
	})

	t.Run("fails when downstream sales already consumed the stock", func(t *testing.T) {
		l1 := newTestLayer(t, 100, 10)
		l1.Consume(decimal.NewFromInt(60))

		_, err := ReduceForReturn(decimal.NewFromInt(50), []*CostLayer{l1})
		assert.ErrorIs(t, err, shared.ErrInsufficientStock)
		assert.True(t, l1.RemainingQuantity.Equal(decimal.NewFromInt(40)))
		assert.True(t, l1.InitialQuantity.Equal(decimal.NewFromInt(100)))
	})
}

func TestReverseReduction(t *testing.T) {
	l1 := newTestLayer(t, 100, 10)
	l2 := newTestLayer(t, 50, 12)
	layers := []*CostLayer{l1, l2}

	returnID, detailID := uuid.New(), uuid.New()
	result, err := ReduceForReturn(decimal.NewFromInt(110), layers)
	require.NoError(t, err)

	records := make([]ConsumptionRecord, 0, len(result.Consumptions))
	for _, c := range result.Consumptions {
		rec, err := NewConsumptionRecord(returnID, detailID, c.CostLayerID, c.Quantity, c.UnitCost)
		require.NoError(t, err)
		records = append(records, *rec)
	}

	require.NoError(t, ReverseReduction(records, layers))
	assert.True(t, l1.InitialQuantity.Equal(decimal.NewFromInt(100)))
	assert.True(t, l1.RemainingQuantity.Equal(decimal.NewFromInt(100)))
	assert.True(t, l2.InitialQuantity.Equal(decimal.NewFromInt(50)))
}

func TestSkipConsumptions(t *testing.T) {
	docID, detailID := uuid.New(), uuid.New()
	makeRecord := func(t *testing.T, qty, cost int64) ConsumptionRecord {
		rec, err := NewConsumptionRecord(docID, detailID, uuid.New(), decimal.NewFromInt(qty), decimal.NewFromInt(cost))
		require.NoError(t, err)
		return *rec
	}
	records := []ConsumptionRecord{
		makeRecord(t, 100, 10),
		makeRecord(t, 20, 12),
	}

	t.Run("zero skip returns everything", func(t *testing.T) {
		tail := SkipConsumptions(records, decimal.Zero)
		assert.Len(t, tail, 2)
	})

	t.Run("partial skip splits the first record", func(t *testing.T) {
		tail := SkipConsumptions(records, decimal.NewFromInt(30))
		require.Len(t, tail, 2)
		assert.True(t, tail[0].Quantity.Equal(decimal.NewFromInt(70)))
		assert.True(t, tail[1].Quantity.Equal(decimal.NewFromInt(20)))
	})

	t.Run("skip past the first record", func(t *testing.T) {
		tail := SkipConsumptions(records, decimal.NewFromInt(110))
		require.Len(t, tail, 1)
		assert.True(t, tail[0].Quantity.Equal(decimal.NewFromInt(10)))
		assert.True(t, tail[0].UnitCost.Equal(decimal.NewFromInt(12)))
	})

	t.Run("skip everything", func(t *testing.T) {
		tail := SkipConsumptions(records, decimal.NewFromInt(120))
		assert.Empty(t, tail)
	})
}

func TestReinstateFromConsumptions(t *testing.T) {
	itemID := uuid.New()
	docID, detailID := uuid.New(), uuid.New()
	returnID, returnDetailID := uuid.New(), uuid.New()

	makeRecord := func(t *testing.T, qty, cost int64) ConsumptionRecord {
		rec, err := NewConsumptionRecord(docID, detailID, uuid.New(), decimal.NewFromInt(qty), decimal.NewFromInt(cost))
		require.NoError(t, err)
		return *rec
	}

	t.Run("recreates layers at historical costs", func(t *testing.T) {
		records := []ConsumptionRecord{
			makeRecord(t, 100, 10),
			makeRecord(t, 20, 12),
		}

		layers, restored, err := ReinstateFromConsumptions(itemID, returnID, returnDetailID, decimal.NewFromInt(110), records)
		require.NoError(t, err)

		require.Len(t, layers, 2)
		assert.True(t, layers[0].InitialQuantity.Equal(decimal.NewFromInt(100)))
		assert.True(t, layers[0].UnitCost.Equal(decimal.NewFromInt(10)))
		assert.True(t, layers[1].InitialQuantity.Equal(decimal.NewFromInt(10)))
		assert.True(t, layers[1].UnitCost.Equal(decimal.NewFromInt(12)))
		assert.Equal(t, ReferenceTypeSaleReturn, layers[0].SourceType)
		assert.Equal(t, returnID, layers[0].SourceID)

		// 100*10 + 10*12 = 1120
		assert.True(t, restored.Equal(decimal.NewFromInt(1120)))
	})

	t.Run("rejects returning more than was sold", func(t *testing.T) {
		records := []ConsumptionRecord{makeRecord(t, 30, 10)}

		_, _, err := ReinstateFromConsumptions(itemID, returnID, returnDetailID, decimal.NewFromInt(31), records)
		assert.Error(t, err)
	})
}

func TestAllUntouched(t *testing.T) {
	l1 := newTestLayer(t, 100, 10)
	l2 := newTestLayer(t, 50, 12)
	assert.True(t, AllUntouched([]*CostLayer{l1, l2}))

	l2.Consume(decimal.NewFromInt(1))
	assert.False(t, AllUntouched([]*CostLayer{l1, l2}))
}

func TestTotalRemaining(t *testing.T) {
	l1 := newTestLayer(t, 100, 10)
	l2 := newTestLayer(t, 50, 12)
	l1.Consume(decimal.NewFromInt(25))

	assert.True(t, TotalRemaining([]*CostLayer{l1, l2}).Equal(decimal.NewFromInt(125)))
}

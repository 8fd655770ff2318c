package trade

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestDocumentStatus_CanTransitionTo(t *testing.T) {
	assert.True(t, DocumentStatusPending.CanTransitionTo(DocumentStatusConfirmed))
	assert.True(t, DocumentStatusConfirmed.CanTransitionTo(DocumentStatusPending))
	assert.False(t, DocumentStatusPending.CanTransitionTo(DocumentStatusPending))
	assert.False(t, DocumentStatusConfirmed.CanTransitionTo(DocumentStatusConfirmed))
}

func TestCalculateLineAmounts(t *testing.T) {
	t.Run("discounts cascade in order", func(t *testing.T) {
		// 10 x 1000 = 10000; d1 10% = 1000; d2 5% of 9000 = 450
		amounts := calculateLineAmounts(
			decimal.NewFromInt(10), decimal.NewFromInt(1000),
			decimal.NewFromInt(10), decimal.NewFromInt(5),
		)

		assert.True(t, amounts.Gross.Equal(decimal.NewFromInt(10000)))
		assert.True(t, amounts.Discount1Amount.Equal(decimal.NewFromInt(1000)))
		assert.True(t, amounts.Discount2Amount.Equal(decimal.NewFromInt(450)))
		assert.True(t, amounts.Total.Equal(decimal.NewFromInt(8550)))
	})

	t.Run("cascade is not commutative", func(t *testing.T) {
		ab := calculateLineAmounts(decimal.NewFromInt(1), decimal.NewFromInt(10000), decimal.NewFromInt(10), decimal.NewFromInt(5))
		ba := calculateLineAmounts(decimal.NewFromInt(1), decimal.NewFromInt(10000), decimal.NewFromInt(5), decimal.NewFromInt(10))

		// Same net total, different per-discount attribution.
		assert.True(t, ab.Total.Equal(ba.Total))
		assert.False(t, ab.Discount1Amount.Equal(ba.Discount1Amount))
	})

	t.Run("zero discounts leave gross untouched", func(t *testing.T) {
		amounts := calculateLineAmounts(decimal.NewFromInt(3), decimal.NewFromInt(500), decimal.Zero, decimal.Zero)
		assert.True(t, amounts.Total.Equal(decimal.NewFromInt(1500)))
		assert.True(t, amounts.Discount1Amount.IsZero())
		assert.True(t, amounts.Discount2Amount.IsZero())
	})
}

func TestCalculateDocumentTotals(t *testing.T) {
	t.Run("ppn applies once on the net subtotal", func(t *testing.T) {
		lines := []lineAmounts{
			calculateLineAmounts(decimal.NewFromInt(10), decimal.NewFromInt(1000), decimal.NewFromInt(10), decimal.NewFromInt(5)),
			calculateLineAmounts(decimal.NewFromInt(2), decimal.NewFromInt(725), decimal.Zero, decimal.Zero),
		}

		totals := calculateDocumentTotals(lines, decimal.NewFromInt(11))

		// Subtotal 11450, net 8550 + 1450 = 10000, PPN 1100.
		assert.True(t, totals.Subtotal.Equal(decimal.NewFromInt(11450)))
		assert.True(t, totals.PPNAmount.Equal(decimal.NewFromInt(1100)))
		assert.True(t, totals.GrandTotal.Equal(decimal.NewFromInt(11100)))
	})

	t.Run("empty document totals to zero", func(t *testing.T) {
		totals := calculateDocumentTotals(nil, decimal.NewFromInt(11))
		assert.True(t, totals.GrandTotal.IsZero())
		assert.True(t, totals.PPNAmount.IsZero())
	})
}

package trade

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestSale(t *testing.T) *Sale {
	s, err := NewSale("PJ-2025-001", uuid.New(), "Bpk. Hartono", time.Now())
	require.NoError(t, err)
	return s
}

func addTestSaleDetail(t *testing.T, s *Sale) *SaleDetail {
	detail, err := s.AddDetail(
		uuid.New(), "PK-005", "Paku 5cm",
		uuid.New(), "PCS", decimal.NewFromInt(1),
		decimal.NewFromInt(120), decimal.NewFromInt(15),
		decimal.Zero, decimal.Zero,
	)
	require.NoError(t, err)
	return detail
}

func TestNewSale(t *testing.T) {
	s := createTestSale(t)

	assert.True(t, s.IsPending())
	assert.True(t, s.TotalCost.IsZero())
	assert.True(t, s.TotalProfit.IsZero())
}

func TestSale_AddDetail(t *testing.T) {
	s := createTestSale(t)
	detail := addTestSaleDetail(t, s)

	assert.True(t, detail.BaseQuantity.Equal(decimal.NewFromInt(120)))
	assert.True(t, s.Subtotal.Equal(decimal.NewFromInt(1800)))
	assert.True(t, s.GrandTotal.Equal(decimal.NewFromInt(1800)))
}

func TestSale_ConfirmLifecycle(t *testing.T) {
	s := createTestSale(t)
	addTestSaleDetail(t, s)

	require.NoError(t, s.Confirm())
	assert.True(t, s.IsConfirmed())

	require.NoError(t, s.Unconfirm())
	assert.True(t, s.IsPending())
	assert.Nil(t, s.ConfirmedAt)
}

func TestSale_FinalizeCosts(t *testing.T) {
	s := createTestSale(t)
	detail := addTestSaleDetail(t, s)
	require.NoError(t, s.Confirm())

	// 100 units drawn at 10 plus 20 at 12.
	require.NoError(t, s.SetDetailCost(detail.ID, decimal.NewFromInt(1240)))
	s.FinalizeCosts()

	assert.True(t, s.TotalCost.Equal(decimal.NewFromInt(1240)))
	// Net revenue 1800 - cost 1240 = 560
	assert.True(t, s.TotalProfit.Equal(decimal.NewFromInt(560)))
	assert.True(t, s.GetDetail(detail.ID).Profit().Equal(decimal.NewFromInt(560)))
}

func TestSale_ProfitExcludesPPN(t *testing.T) {
	s := createTestSale(t)
	detail := addTestSaleDetail(t, s)
	require.NoError(t, s.SetPPN(decimal.NewFromInt(11)))
	require.NoError(t, s.Confirm())

	require.NoError(t, s.SetDetailCost(detail.ID, decimal.NewFromInt(1240)))
	s.FinalizeCosts()

	// Grand total carries PPN but profit compares net revenue with cost.
	assert.True(t, s.GrandTotal.Equal(decimal.NewFromInt(1998)))
	assert.True(t, s.TotalProfit.Equal(decimal.NewFromInt(560)))
}

func TestSale_ClearCosts(t *testing.T) {
	s := createTestSale(t)
	detail := addTestSaleDetail(t, s)
	require.NoError(t, s.Confirm())
	require.NoError(t, s.SetDetailCost(detail.ID, decimal.NewFromInt(1240)))
	s.FinalizeCosts()

	require.NoError(t, s.Unconfirm())
	s.ClearCosts()

	assert.True(t, s.TotalCost.IsZero())
	assert.True(t, s.TotalProfit.IsZero())
	assert.True(t, s.GetDetail(detail.ID).Cost.IsZero())
}

func TestSale_ModificationGuards(t *testing.T) {
	s := createTestSale(t)
	detail := addTestSaleDetail(t, s)
	require.NoError(t, s.Confirm())

	assert.Error(t, s.UpdateDetail(detail.ID, decimal.NewFromInt(5), decimal.NewFromInt(15), decimal.Zero, decimal.Zero))
	assert.Error(t, s.RemoveDetail(detail.ID))
	assert.Error(t, s.SetPPN(decimal.NewFromInt(11)))
}

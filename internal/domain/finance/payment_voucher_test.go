package finance

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jovinkendrico/pos-mandor-jaya-sub002/internal/domain/shared"
)

func createTestVoucher(t *testing.T, total int64) *PaymentVoucher {
	v, err := NewPaymentVoucher("KM-2025-001", VoucherDirectionIn, uuid.New(), "Bpk. Hartono",
		time.Now(), PaymentMethodTransfer, decimal.NewFromInt(total))
	require.NoError(t, err)
	return v
}

func TestNewPaymentVoucher(t *testing.T) {
	t.Run("creates pending voucher", func(t *testing.T) {
		v := createTestVoucher(t, 60000)

		assert.True(t, v.IsPending())
		assert.True(t, v.AllocatedAmount().IsZero())
		assert.True(t, v.SurplusAmount().Equal(decimal.NewFromInt(60000)))
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		_, err := NewPaymentVoucher("KM-2025-001", VoucherDirectionIn, uuid.New(), "Bpk. Hartono",
			time.Now(), PaymentMethodCash, decimal.Zero)
		assert.Error(t, err)
	})

	t.Run("rejects invalid method", func(t *testing.T) {
		_, err := NewPaymentVoucher("KM-2025-001", VoucherDirectionIn, uuid.New(), "Bpk. Hartono",
			time.Now(), PaymentMethod("CHECK"), decimal.NewFromInt(100))
		assert.Error(t, err)
	})
}

func TestPaymentVoucher_AddAllocation(t *testing.T) {
	t.Run("overpayment leaves surplus on the voucher", func(t *testing.T) {
		// Customer pays 60000 against a 50000 invoice: allocate 50000,
		// the remaining 10000 becomes an advance at confirm.
		v := createTestVoucher(t, 60000)

		_, err := v.AddAllocation(uuid.New(), decimal.NewFromInt(50000))
		require.NoError(t, err)

		assert.True(t, v.AllocatedAmount().Equal(decimal.NewFromInt(50000)))
		assert.True(t, v.SurplusAmount().Equal(decimal.NewFromInt(10000)))
	})

	t.Run("allocations cannot exceed the voucher total", func(t *testing.T) {
		v := createTestVoucher(t, 60000)
		_, err := v.AddAllocation(uuid.New(), decimal.NewFromInt(50000))
		require.NoError(t, err)

		_, err = v.AddAllocation(uuid.New(), decimal.NewFromInt(10001))
		assert.ErrorIs(t, err, shared.ErrOverAllocation)
	})

	t.Run("rejects duplicate invoice", func(t *testing.T) {
		v := createTestVoucher(t, 60000)
		invoiceID := uuid.New()
		_, err := v.AddAllocation(invoiceID, decimal.NewFromInt(10000))
		require.NoError(t, err)

		_, err = v.AddAllocation(invoiceID, decimal.NewFromInt(10000))
		assert.Error(t, err)
	})
}

func TestPaymentVoucher_UpdateAllocation(t *testing.T) {
	v := createTestVoucher(t, 60000)
	alloc, err := v.AddAllocation(uuid.New(), decimal.NewFromInt(20000))
	require.NoError(t, err)
	_, err = v.AddAllocation(uuid.New(), decimal.NewFromInt(30000))
	require.NoError(t, err)

	require.NoError(t, v.UpdateAllocation(alloc.ID, decimal.NewFromInt(30000)))
	assert.True(t, v.AllocatedAmount().Equal(decimal.NewFromInt(60000)))

	err = v.UpdateAllocation(alloc.ID, decimal.NewFromInt(30001))
	assert.ErrorIs(t, err, shared.ErrOverAllocation)
}

func TestPaymentVoucher_RemoveAllocation(t *testing.T) {
	v := createTestVoucher(t, 60000)
	alloc, err := v.AddAllocation(uuid.New(), decimal.NewFromInt(20000))
	require.NoError(t, err)

	require.NoError(t, v.RemoveAllocation(alloc.ID))
	assert.Empty(t, v.Allocations)

	assert.Error(t, v.RemoveAllocation(uuid.New()))
}

func TestPaymentVoucher_Lifecycle(t *testing.T) {
	v := createTestVoucher(t, 60000)
	alloc, err := v.AddAllocation(uuid.New(), decimal.NewFromInt(50000))
	require.NoError(t, err)

	require.NoError(t, v.Confirm())
	assert.True(t, v.IsConfirmed())
	assert.NotNil(t, v.ConfirmedAt)

	t.Run("confirmed voucher is frozen", func(t *testing.T) {
		_, err := v.AddAllocation(uuid.New(), decimal.NewFromInt(1000))
		assert.Error(t, err)
		assert.Error(t, v.RemoveAllocation(alloc.ID))
		assert.Error(t, v.Confirm())
	})

	require.NoError(t, v.Unconfirm())
	assert.True(t, v.IsPending())
	assert.Error(t, v.Unconfirm())
}

func TestVoucherDirection_InvoiceDirection(t *testing.T) {
	assert.Equal(t, InvoiceDirectionReceivable, VoucherDirectionIn.InvoiceDirection())
	assert.Equal(t, InvoiceDirectionPayable, VoucherDirectionOut.InvoiceDirection())
}

func TestNewAdvance(t *testing.T) {
	t.Run("creates advance from surplus", func(t *testing.T) {
		adv, err := NewAdvance(VoucherDirectionIn, uuid.New(), "Bpk. Hartono", uuid.New(),
			time.Now(), decimal.NewFromInt(10000), "Overpayment on KM-2025-001")
		require.NoError(t, err)
		assert.True(t, adv.Amount.Equal(decimal.NewFromInt(10000)))
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		_, err := NewAdvance(VoucherDirectionIn, uuid.New(), "Bpk. Hartono", uuid.New(),
			time.Now(), decimal.Zero, "")
		assert.Error(t, err)
	})
}

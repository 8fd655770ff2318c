package finance

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jovinkendrico/pos-mandor-jaya-sub002/internal/domain/finance"
	"github.com/jovinkendrico/pos-mandor-jaya-sub002/internal/domain/shared"
)

type memInvoices struct {
	invoices map[uuid.UUID]*finance.Invoice
}

func newMemInvoices() *memInvoices {
	return &memInvoices{invoices: make(map[uuid.UUID]*finance.Invoice)}
}

func (m *memInvoices) FindByID(_ context.Context, id uuid.UUID) (*finance.Invoice, error) {
	if inv, ok := m.invoices[id]; ok {
		return inv, nil
	}
	return nil, shared.ErrNotFound
}

func (m *memInvoices) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*finance.Invoice, error) {
	return m.FindByID(ctx, id)
}

func (m *memInvoices) FindBySource(_ context.Context, sourceID uuid.UUID) (*finance.Invoice, error) {
	for _, inv := range m.invoices {
		if inv.SourceID == sourceID {
			return inv, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (m *memInvoices) FindAll(_ context.Context, _ shared.Filter) (shared.Paginated[*finance.Invoice], error) {
	out := make([]*finance.Invoice, 0, len(m.invoices))
	for _, inv := range m.invoices {
		out = append(out, inv)
	}
	return shared.NewPaginated(out, int64(len(out)), 1, 20), nil
}

func (m *memInvoices) FindOutstanding(_ context.Context, direction finance.InvoiceDirection, _ time.Time) ([]*finance.Invoice, error) {
	out := make([]*finance.Invoice, 0)
	for _, inv := range m.invoices {
		if inv.Direction == direction && !inv.IsPaid() {
			out = append(out, inv)
		}
	}
	return out, nil
}

func (m *memInvoices) FindOutstandingByParty(_ context.Context, direction finance.InvoiceDirection, partyID uuid.UUID) ([]*finance.Invoice, error) {
	out := make([]*finance.Invoice, 0)
	for _, inv := range m.invoices {
		if inv.Direction == direction && inv.PartyID == partyID && !inv.IsPaid() {
			out = append(out, inv)
		}
	}
	return out, nil
}

func (m *memInvoices) Save(_ context.Context, inv *finance.Invoice) error {
	m.invoices[inv.ID] = inv
	return nil
}

func (m *memInvoices) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.invoices, id)
	return nil
}

type memVouchers struct {
	vouchers map[uuid.UUID]*finance.PaymentVoucher
}

func newMemVouchers() *memVouchers {
	return &memVouchers{vouchers: make(map[uuid.UUID]*finance.PaymentVoucher)}
}

func (m *memVouchers) FindByID(_ context.Context, id uuid.UUID) (*finance.PaymentVoucher, error) {
	if v, ok := m.vouchers[id]; ok {
		return v, nil
	}
	return nil, shared.ErrNotFound
}

func (m *memVouchers) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*finance.PaymentVoucher, error) {
	return m.FindByID(ctx, id)
}

func (m *memVouchers) FindByNumber(_ context.Context, number string) (*finance.PaymentVoucher, error) {
	for _, v := range m.vouchers {
		if v.Number == number {
			return v, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (m *memVouchers) FindAll(_ context.Context, _ shared.Filter) (shared.Paginated[*finance.PaymentVoucher], error) {
	out := make([]*finance.PaymentVoucher, 0, len(m.vouchers))
	for _, v := range m.vouchers {
		out = append(out, v)
	}
	return shared.NewPaginated(out, int64(len(out)), 1, 20), nil
}

func (m *memVouchers) FindConfirmedBetween(_ context.Context, from, to time.Time) ([]*finance.PaymentVoucher, error) {
	out := make([]*finance.PaymentVoucher, 0)
	for _, v := range m.vouchers {
		if v.IsConfirmed() && !v.Date.Before(from) && !v.Date.After(to) {
			out = append(out, v)
		}
	}
	return out, nil
}

func (m *memVouchers) Save(_ context.Context, v *finance.PaymentVoucher) error {
	m.vouchers[v.ID] = v
	return nil
}

func (m *memVouchers) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.vouchers, id)
	return nil
}

type memAdvances struct {
	advances map[uuid.UUID]*finance.Advance
}

func newMemAdvances() *memAdvances {
	return &memAdvances{advances: make(map[uuid.UUID]*finance.Advance)}
}

func (m *memAdvances) FindByParty(_ context.Context, direction finance.VoucherDirection, partyID uuid.UUID) ([]*finance.Advance, error) {
	out := make([]*finance.Advance, 0)
	for _, a := range m.advances {
		if a.Direction == direction && a.PartyID == partyID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *memAdvances) FindByVoucher(_ context.Context, voucherID uuid.UUID) (*finance.Advance, error) {
	for _, a := range m.advances {
		if a.VoucherID == voucherID {
			return a, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (m *memAdvances) Save(_ context.Context, a *finance.Advance) error {
	m.advances[a.ID] = a
	return nil
}

func (m *memAdvances) DeleteByVoucher(_ context.Context, voucherID uuid.UUID) error {
	for id, a := range m.advances {
		if a.VoucherID == voucherID {
			delete(m.advances, id)
		}
	}
	return nil
}

type paymentEnv struct {
	invoices *memInvoices
	vouchers *memVouchers
	advances *memAdvances
	service  *PaymentService
}

func newPaymentEnv() *paymentEnv {
	env := &paymentEnv{
		invoices: newMemInvoices(),
		vouchers: newMemVouchers(),
		advances: newMemAdvances(),
	}
	scope := &NoOpTransactionScope{
		InvoiceRepo: env.invoices,
		VoucherRepo: env.vouchers,
		AdvanceRepo: env.advances,
	}
	env.service = NewPaymentService(scope, zap.NewNop())
	return env
}

func seedInvoice(t *testing.T, env *paymentEnv, direction finance.InvoiceDirection, amount int64) *finance.Invoice {
	t.Helper()

	source := finance.InvoiceSourceSale
	if direction == finance.InvoiceDirectionPayable {
		source = finance.InvoiceSourcePurchase
	}
	inv, err := finance.NewInvoice(
		"INV-"+uuid.NewString()[:8], direction, source,
		uuid.New(), uuid.New(), "Party",
		time.Now(), time.Now().AddDate(0, 0, 30), decimal.NewFromInt(amount),
	)
	require.NoError(t, err)
	require.NoError(t, env.invoices.Save(context.Background(), inv))
	return inv
}

func voucherInput(inv *finance.Invoice, total int64, allocations ...AllocationInput) CreateVoucherInput {
	direction := finance.VoucherDirectionIn
	if inv.Direction == finance.InvoiceDirectionPayable {
		direction = finance.VoucherDirectionOut
	}
	return CreateVoucherInput{
		Number:      "PV-" + uuid.NewString()[:8],
		Direction:   direction,
		PartyID:     inv.PartyID,
		PartyName:   inv.PartyName,
		Date:        time.Now(),
		Method:      finance.PaymentMethodTransfer,
		TotalAmount: decimal.NewFromInt(total),
		Allocations: allocations,
	}
}

func TestPaymentService_Create_RejectsAllocationPastRemaining(t *testing.T) {
	env := newPaymentEnv()
	inv := seedInvoice(t, env, finance.InvoiceDirectionReceivable, 50000)

	_, err := env.service.Create(context.Background(), voucherInput(inv, 80000,
		AllocationInput{InvoiceID: inv.ID, Amount: decimal.NewFromInt(60000)}))

	assert.ErrorIs(t, err, shared.ErrOverAllocation)
}

func TestPaymentService_Create_RejectsDirectionMismatch(t *testing.T) {
	env := newPaymentEnv()
	inv := seedInvoice(t, env, finance.InvoiceDirectionPayable, 50000)

	input := voucherInput(inv, 50000,
		AllocationInput{InvoiceID: inv.ID, Amount: decimal.NewFromInt(50000)})
	input.Direction = finance.VoucherDirectionIn

	_, err := env.service.Create(context.Background(), input)
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_DIRECTION", domainErr.Code)
}

func TestPaymentService_Confirm_SettlesInvoiceAndBooksSurplus(t *testing.T) {
	env := newPaymentEnv()
	ctx := context.Background()
	inv := seedInvoice(t, env, finance.InvoiceDirectionReceivable, 50000)

	// Customer pays 60,000 against a 50,000 invoice
	v, err := env.service.Create(ctx, voucherInput(inv, 60000,
		AllocationInput{InvoiceID: inv.ID, Amount: decimal.NewFromInt(50000)}))
	require.NoError(t, err)

	confirmed, err := env.service.Confirm(ctx, v.ID)
	require.NoError(t, err)

	assert.True(t, confirmed.IsConfirmed())
	assert.Equal(t, finance.InvoiceStatusPaid, inv.Status)
	assert.True(t, inv.RemainingAmount().IsZero())

	advance, err := env.advances.FindByVoucher(ctx, v.ID)
	require.NoError(t, err)
	assert.True(t, advance.Amount.Equal(decimal.NewFromInt(10000)))
	assert.Equal(t, finance.VoucherDirectionIn, advance.Direction)
	assert.Equal(t, inv.PartyID, advance.PartyID)
}

func TestPaymentService_Confirm_NoSurplusNoAdvance(t *testing.T) {
	env := newPaymentEnv()
	ctx := context.Background()
	inv := seedInvoice(t, env, finance.InvoiceDirectionPayable, 50000)

	v, err := env.service.Create(ctx, voucherInput(inv, 50000,
		AllocationInput{InvoiceID: inv.ID, Amount: decimal.NewFromInt(50000)}))
	require.NoError(t, err)

	_, err = env.service.Confirm(ctx, v.ID)
	require.NoError(t, err)

	assert.Empty(t, env.advances.advances)
}

func TestPaymentService_Confirm_RevalidatesAgainstCurrentBalance(t *testing.T) {
	env := newPaymentEnv()
	ctx := context.Background()
	inv := seedInvoice(t, env, finance.InvoiceDirectionReceivable, 50000)

	v, err := env.service.Create(ctx, voucherInput(inv, 50000,
		AllocationInput{InvoiceID: inv.ID, Amount: decimal.NewFromInt(50000)}))
	require.NoError(t, err)

	// Another voucher settles part of the invoice before this one confirms
	require.NoError(t, inv.ApplyPayment(decimal.NewFromInt(30000)))

	_, err = env.service.Confirm(ctx, v.ID)
	assert.ErrorIs(t, err, shared.ErrOverAllocation)
}

func TestPaymentService_Unconfirm_ReversesPaymentsAndAdvance(t *testing.T) {
	env := newPaymentEnv()
	ctx := context.Background()
	inv := seedInvoice(t, env, finance.InvoiceDirectionReceivable, 50000)

	v, err := env.service.Create(ctx, voucherInput(inv, 60000,
		AllocationInput{InvoiceID: inv.ID, Amount: decimal.NewFromInt(50000)}))
	require.NoError(t, err)
	_, err = env.service.Confirm(ctx, v.ID)
	require.NoError(t, err)

	reverted, err := env.service.Unconfirm(ctx, v.ID)
	require.NoError(t, err)

	assert.True(t, reverted.IsPending())
	assert.Equal(t, finance.InvoiceStatusUnpaid, inv.Status)
	assert.True(t, inv.PaidAmount.IsZero())
	assert.Empty(t, env.advances.advances)
}

func TestPaymentService_Update_RebuildsAllocations(t *testing.T) {
	env := newPaymentEnv()
	ctx := context.Background()
	first := seedInvoice(t, env, finance.InvoiceDirectionReceivable, 50000)
	second := seedInvoice(t, env, finance.InvoiceDirectionReceivable, 20000)

	v, err := env.service.Create(ctx, voucherInput(first, 50000,
		AllocationInput{InvoiceID: first.ID, Amount: decimal.NewFromInt(50000)}))
	require.NoError(t, err)

	updated, err := env.service.Update(ctx, v.ID, UpdateVoucherInput{
		TotalAmount: decimal.NewFromInt(60000),
		Method:      finance.PaymentMethodCash,
		Allocations: []AllocationInput{
			{InvoiceID: first.ID, Amount: decimal.NewFromInt(40000)},
			{InvoiceID: second.ID, Amount: decimal.NewFromInt(20000)},
		},
	})
	require.NoError(t, err)

	assert.Len(t, updated.Allocations, 2)
	assert.True(t, updated.AllocatedAmount().Equal(decimal.NewFromInt(60000)))
	assert.Equal(t, finance.PaymentMethodCash, updated.Method)
}

func TestPaymentService_Delete_RejectsConfirmed(t *testing.T) {
	env := newPaymentEnv()
	ctx := context.Background()
	inv := seedInvoice(t, env, finance.InvoiceDirectionReceivable, 50000)

	v, err := env.service.Create(ctx, voucherInput(inv, 50000,
		AllocationInput{InvoiceID: inv.ID, Amount: decimal.NewFromInt(50000)}))
	require.NoError(t, err)
	_, err = env.service.Confirm(ctx, v.ID)
	require.NoError(t, err)

	err = env.service.Delete(ctx, v.ID)
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_STATE", domainErr.Code)
}

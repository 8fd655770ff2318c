package trade

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jovinkendrico/pos-mandor-jaya-sub002/internal/domain/costing"
	"github.com/jovinkendrico/pos-mandor-jaya-sub002/internal/domain/finance"
	"github.com/jovinkendrico/pos-mandor-jaya-sub002/internal/domain/item"
	"github.com/jovinkendrico/pos-mandor-jaya-sub002/internal/domain/shared"
	"github.com/jovinkendrico/pos-mandor-jaya-sub002/internal/domain/trade"
)

// In-memory repositories backing the NoOp transaction scope in tests.

type memItems struct {
	items map[uuid.UUID]*item.Item
}

func newMemItems() *memItems { return &memItems{items: make(map[uuid.UUID]*item.Item)} }

func (m *memItems) FindByID(_ context.Context, id uuid.UUID) (*item.Item, error) {
	if it, ok := m.items[id]; ok {
		return it, nil
	}
	return nil, shared.ErrNotFound
}

func (m *memItems) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*item.Item, error) {
	return m.FindByID(ctx, id)
}

func (m *memItems) FindByCode(_ context.Context, code string) (*item.Item, error) {
	for _, it := range m.items {
		if it.Code == code {
			return it, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (m *memItems) FindAll(_ context.Context, _ shared.Filter) ([]item.Item, error) {
	out := make([]item.Item, 0, len(m.items))
	for _, it := range m.items {
		out = append(out, *it)
	}
	return out, nil
}

func (m *memItems) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(m.items)), nil
}

func (m *memItems) Save(_ context.Context, it *item.Item) error {
	m.items[it.ID] = it
	return nil
}

func (m *memItems) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.items, id)
	return nil
}

type memPurchases struct {
	docs map[uuid.UUID]*trade.Purchase
}

func newMemPurchases() *memPurchases {
	return &memPurchases{docs: make(map[uuid.UUID]*trade.Purchase)}
}

func (m *memPurchases) FindByID(_ context.Context, id uuid.UUID) (*trade.Purchase, error) {
	if p, ok := m.docs[id]; ok {
		return p, nil
	}
	return nil, shared.ErrNotFound
}

func (m *memPurchases) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*trade.Purchase, error) {
	return m.FindByID(ctx, id)
}

func (m *memPurchases) FindByNumber(_ context.Context, number string) (*trade.Purchase, error) {
	for _, p := range m.docs {
		if p.Number == number {
			return p, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (m *memPurchases) FindAll(_ context.Context, _ shared.Filter) (shared.Paginated[*trade.Purchase], error) {
	out := make([]*trade.Purchase, 0, len(m.docs))
	for _, p := range m.docs {
		out = append(out, p)
	}
	return shared.NewPaginated(out, int64(len(out)), 1, 20), nil
}

func (m *memPurchases) Save(_ context.Context, p *trade.Purchase) error {
	m.docs[p.ID] = p
	return nil
}

func (m *memPurchases) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.docs, id)
	return nil
}

type memSales struct {
	docs map[uuid.UUID]*trade.Sale
}

func newMemSales() *memSales { return &memSales{docs: make(map[uuid.UUID]*trade.Sale)} }

func (m *memSales) FindByID(_ context.Context, id uuid.UUID) (*trade.Sale, error) {
	if s, ok := m.docs[id]; ok {
		return s, nil
	}
	return nil, shared.ErrNotFound
}

func (m *memSales) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*trade.Sale, error) {
	return m.FindByID(ctx, id)
}

func (m *memSales) FindByNumber(_ context.Context, number string) (*trade.Sale, error) {
	for _, s := range m.docs {
		if s.Number == number {
			return s, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (m *memSales) FindAll(_ context.Context, _ shared.Filter) (shared.Paginated[*trade.Sale], error) {
	out := make([]*trade.Sale, 0, len(m.docs))
	for _, s := range m.docs {
		out = append(out, s)
	}
	return shared.NewPaginated(out, int64(len(out)), 1, 20), nil
}

func (m *memSales) FindConfirmedBetween(_ context.Context, from, to time.Time) ([]*trade.Sale, error) {
	out := make([]*trade.Sale, 0)
	for _, s := range m.docs {
		if s.IsConfirmed() && !s.Date.Before(from) && !s.Date.After(to) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *memSales) Save(_ context.Context, s *trade.Sale) error {
	m.docs[s.ID] = s
	return nil
}

func (m *memSales) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.docs, id)
	return nil
}

type memPurchaseReturns struct {
	docs map[uuid.UUID]*trade.PurchaseReturn
}

func newMemPurchaseReturns() *memPurchaseReturns {
	return &memPurchaseReturns{docs: make(map[uuid.UUID]*trade.PurchaseReturn)}
}

func (m *memPurchaseReturns) FindByID(_ context.Context, id uuid.UUID) (*trade.PurchaseReturn, error) {
	if r, ok := m.docs[id]; ok {
		return r, nil
	}
	return nil, shared.ErrNotFound
}

func (m *memPurchaseReturns) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*trade.PurchaseReturn, error) {
	return m.FindByID(ctx, id)
}

func (m *memPurchaseReturns) FindByNumber(_ context.Context, number string) (*trade.PurchaseReturn, error) {
	for _, r := range m.docs {
		if r.Number == number {
			return r, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (m *memPurchaseReturns) FindByPurchase(_ context.Context, purchaseID uuid.UUID) ([]*trade.PurchaseReturn, error) {
	out := make([]*trade.PurchaseReturn, 0)
	for _, r := range m.docs {
		if r.PurchaseID == purchaseID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memPurchaseReturns) FindAll(_ context.Context, _ shared.Filter) (shared.Paginated[*trade.PurchaseReturn], error) {
	out := make([]*trade.PurchaseReturn, 0, len(m.docs))
	for _, r := range m.docs {
		out = append(out, r)
	}
	return shared.NewPaginated(out, int64(len(out)), 1, 20), nil
}

func (m *memPurchaseReturns) Save(_ context.Context, r *trade.PurchaseReturn) error {
	m.docs[r.ID] = r
	return nil
}

func (m *memPurchaseReturns) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.docs, id)
	return nil
}

type memSaleReturns struct {
	docs map[uuid.UUID]*trade.SaleReturn
}

func newMemSaleReturns() *memSaleReturns {
	return &memSaleReturns{docs: make(map[uuid.UUID]*trade.SaleReturn)}
}

func (m *memSaleReturns) FindByID(_ context.Context, id uuid.UUID) (*trade.SaleReturn, error) {
	if r, ok := m.docs[id]; ok {
		return r, nil
	}
	return nil, shared.ErrNotFound
}

func (m *memSaleReturns) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*trade.SaleReturn, error) {
	return m.FindByID(ctx, id)
}

func (m *memSaleReturns) FindByNumber(_ context.Context, number string) (*trade.SaleReturn, error) {
	for _, r := range m.docs {
		if r.Number == number {
			return r, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (m *memSaleReturns) FindBySale(_ context.Context, saleID uuid.UUID) ([]*trade.SaleReturn, error) {
	out := make([]*trade.SaleReturn, 0)
	for _, r := range m.docs {
		if r.SaleID == saleID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memSaleReturns) FindAll(_ context.Context, _ shared.Filter) (shared.Paginated[*trade.SaleReturn], error) {
	out := make([]*trade.SaleReturn, 0, len(m.docs))
	for _, r := range m.docs {
		out = append(out, r)
	}
	return shared.NewPaginated(out, int64(len(out)), 1, 20), nil
}

func (m *memSaleReturns) Save(_ context.Context, r *trade.SaleReturn) error {
	m.docs[r.ID] = r
	return nil
}

func (m *memSaleReturns) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.docs, id)
	return nil
}

type memLayers struct {
	layers []*costing.CostLayer
}

func newMemLayers() *memLayers { return &memLayers{layers: make([]*costing.CostLayer, 0)} }

func (m *memLayers) FindByItemFIFO(_ context.Context, itemID uuid.UUID) ([]*costing.CostLayer, error) {
	out := make([]*costing.CostLayer, 0)
	for _, l := range m.layers {
		if l.ItemID == itemID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (m *memLayers) FindByItemFIFOForUpdate(ctx context.Context, itemID uuid.UUID) ([]*costing.CostLayer, error) {
	return m.FindByItemFIFO(ctx, itemID)
}

func (m *memLayers) FindBySource(_ context.Context, sourceType costing.ReferenceType, sourceID uuid.UUID) ([]*costing.CostLayer, error) {
	out := make([]*costing.CostLayer, 0)
	for _, l := range m.layers {
		if l.SourceType == sourceType && l.SourceID == sourceID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (m *memLayers) FindBySourceDetail(_ context.Context, sourceDetailID uuid.UUID) ([]*costing.CostLayer, error) {
	out := make([]*costing.CostLayer, 0)
	for _, l := range m.layers {
		if l.SourceDetailID == sourceDetailID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (m *memLayers) Save(_ context.Context, layer *costing.CostLayer) error {
	for _, l := range m.layers {
		if l.ID == layer.ID {
			return nil
		}
	}
	m.layers = append(m.layers, layer)
	return nil
}

func (m *memLayers) SaveAll(ctx context.Context, layers []*costing.CostLayer) error {
	for _, l := range layers {
		if err := m.Save(ctx, l); err != nil {
			return err
		}
	}
	return nil
}

func (m *memLayers) DeleteBySource(_ context.Context, sourceType costing.ReferenceType, sourceID uuid.UUID) error {
	kept := make([]*costing.CostLayer, 0, len(m.layers))
	for _, l := range m.layers {
		if !(l.SourceType == sourceType && l.SourceID == sourceID) {
			kept = append(kept, l)
		}
	}
	m.layers = kept
	return nil
}

type memConsumptions struct {
	records []costing.ConsumptionRecord
}

func newMemConsumptions() *memConsumptions {
	return &memConsumptions{records: make([]costing.ConsumptionRecord, 0)}
}

func (m *memConsumptions) FindByDocument(_ context.Context, documentID uuid.UUID) ([]costing.ConsumptionRecord, error) {
	out := make([]costing.ConsumptionRecord, 0)
	for _, r := range m.records {
		if r.DocumentID == documentID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memConsumptions) FindByDetail(_ context.Context, detailID uuid.UUID) ([]costing.ConsumptionRecord, error) {
	out := make([]costing.ConsumptionRecord, 0)
	for _, r := range m.records {
		if r.DetailID == detailID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memConsumptions) SaveAll(_ context.Context, records []costing.ConsumptionRecord) error {
	m.records = append(m.records, records...)
	return nil
}

func (m *memConsumptions) DeleteByDocument(_ context.Context, documentID uuid.UUID) error {
	kept := make([]costing.ConsumptionRecord, 0, len(m.records))
	for _, r := range m.records {
		if r.DocumentID != documentID {
			kept = append(kept, r)
		}
	}
	m.records = kept
	return nil
}

type memMovements struct {
	movements []costing.StockMovement
}

func newMemMovements() *memMovements {
	return &memMovements{movements: make([]costing.StockMovement, 0)}
}

func (m *memMovements) FindByItem(_ context.Context, itemID uuid.UUID) ([]costing.StockMovement, error) {
	out := make([]costing.StockMovement, 0)
	for _, mv := range m.movements {
		if mv.ItemID == itemID {
			out = append(out, mv)
		}
	}
	return out, nil
}

func (m *memMovements) SaveAll(_ context.Context, movements []costing.StockMovement) error {
	m.movements = append(m.movements, movements...)
	return nil
}

func (m *memMovements) DeleteByReference(_ context.Context, refType costing.ReferenceType, refID uuid.UUID) error {
	kept := make([]costing.StockMovement, 0, len(m.movements))
	for _, mv := range m.movements {
		if !(mv.ReferenceType == refType && mv.ReferenceID == refID) {
			kept = append(kept, mv)
		}
	}
	m.movements = kept
	return nil
}

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

func newTestScope() *NoOpTransactionScope {
	return &NoOpTransactionScope{
		ItemRepo:           newMemItems(),
		PurchaseRepo:       newMemPurchases(),
		SaleRepo:           newMemSales(),
		PurchaseReturnRepo: newMemPurchaseReturns(),
		SaleReturnRepo:     newMemSaleReturns(),
		LayerRepo:          newMemLayers(),
		ConsumptionRepo:    newMemConsumptions(),
		MovementRepo:       newMemMovements(),
		InvoiceRepo:        newMemInvoices(),
	}
}

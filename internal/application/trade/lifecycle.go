package trade

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jovinkendrico/pos-mandor-jaya-sub002/internal/domain/costing"
	"github.com/jovinkendrico/pos-mandor-jaya-sub002/internal/domain/finance"
	"github.com/jovinkendrico/pos-mandor-jaya-sub002/internal/domain/shared"
	"github.com/jovinkendrico/pos-mandor-jaya-sub002/internal/domain/trade"
)

// defaultInvoiceDueDays is the payment term applied to invoices opened by
// document confirmation when no term is configured.
const defaultInvoiceDueDays = 30

// documentEffect is the ledger and settlement footprint of one document
// type. Confirm runs apply, unconfirm runs reverse; both execute inside the
// transaction that flips the document status, so a failed effect leaves the
// document untouched.
type documentEffect interface {
	apply(ctx context.Context, repos TransactionalRepositories) error
	reverse(ctx context.Context, repos TransactionalRepositories) error
}

// refreshItemStock recomputes an item's cached stock from its cost layers
func refreshItemStock(ctx context.Context, repos TransactionalRepositories, itemID uuid.UUID) error {
	it, err := repos.Items().FindByIDForUpdate(ctx, itemID)
	if err != nil {
		return err
	}
	layers, err := repos.Layers().FindByItemFIFO(ctx, itemID)
	if err != nil {
		return err
	}
	if err := it.RecalculateStock(costing.TotalRemaining(layers)); err != nil {
		return err
	}
	return repos.Items().Save(ctx, it)
}

// itemBalance returns an item's current ledger-derived stock
func itemBalance(ctx context.Context, repos TransactionalRepositories, itemID uuid.UUID) (decimal.Decimal, error) {
	layers, err := repos.Layers().FindByItemFIFO(ctx, itemID)
	if err != nil {
		return decimal.Zero, err
	}
	return costing.TotalRemaining(layers), nil
}

func writeMovement(ctx context.Context, repos TransactionalRepositories, itemID uuid.UUID, refType costing.ReferenceType, refID uuid.UUID, direction costing.MovementDirection, quantity, unitCost, balanceAfter decimal.Decimal, date time.Time) error {
	movement, err := costing.NewStockMovement(itemID, refType, refID, direction, quantity, unitCost, balanceAfter, date)
	if err != nil {
		return err
	}
	return repos.Movements().SaveAll(ctx, []costing.StockMovement{*movement})
}

// averageUnitCost spreads a total cost over a base quantity for the stock
// card row
func averageUnitCost(totalCost, quantity decimal.Decimal) decimal.Decimal {
	if quantity.IsZero() {
		return decimal.Zero
	}
	return totalCost.Div(quantity).Round(6)
}

// guardNoConfirmedPayments blocks unconfirm while the document's invoice has
// confirmed payments, and returns the invoice for deletion otherwise
func guardNoConfirmedPayments(ctx context.Context, repos TransactionalRepositories, sourceID uuid.UUID) (*finance.Invoice, error) {
	invoice, err := repos.Invoices().FindBySource(ctx, sourceID)
	if err != nil {
		return nil, err
	}
	if invoice.HasPayments() {
		return nil, shared.ErrHasPayments
	}
	return invoice, nil
}

// purchaseEffect pushes one cost layer per line and opens a payable invoice
type purchaseEffect struct {
	doc     *trade.Purchase
	dueDays int
}

func (e *purchaseEffect) apply(ctx context.Context, repos TransactionalRepositories) error {
	p := e.doc
	for idx := range p.Details {
		detail := &p.Details[idx]

		if _, err := repos.Items().FindByIDForUpdate(ctx, detail.ItemID); err != nil {
			return err
		}

		layer, err := costing.NewCostLayer(detail.ItemID, costing.ReferenceTypePurchase, p.ID, detail.ID, detail.BaseUnitCost(), detail.BaseQuantity)
		if err != nil {
			return err
		}
		if err := repos.Layers().Save(ctx, layer); err != nil {
			return err
		}

		balance, err := itemBalance(ctx, repos, detail.ItemID)
		if err != nil {
			return err
		}
		if err := writeMovement(ctx, repos, detail.ItemID, costing.ReferenceTypePurchase, p.ID, costing.MovementIn, detail.BaseQuantity, layer.UnitCost, balance, p.Date); err != nil {
			return err
		}
		if err := refreshItemStock(ctx, repos, detail.ItemID); err != nil {
			return err
		}
	}

	invoice, err := finance.NewInvoice(
		"INV-"+p.Number, finance.InvoiceDirectionPayable, finance.InvoiceSourcePurchase,
		p.ID, p.SupplierID, p.SupplierName,
		p.Date, p.Date.AddDate(0, 0, e.dueDays), p.GrandTotal,
	)
	if err != nil {
		return err
	}
	return repos.Invoices().Save(ctx, invoice)
}

func (e *purchaseEffect) reverse(ctx context.Context, repos TransactionalRepositories) error {
	p := e.doc

	invoice, err := guardNoConfirmedPayments(ctx, repos, p.ID)
	if err != nil {
		return err
	}

	// Returns shrink layers in place, so AllUntouched alone cannot see them.
	returns, err := repos.PurchaseReturns().FindByPurchase(ctx, p.ID)
	if err != nil {
		return err
	}
	if anyConfirmedPurchaseReturn(returns) {
		return shared.ErrHasReturns
	}

	layers, err := repos.Layers().FindBySource(ctx, costing.ReferenceTypePurchase, p.ID)
	if err != nil {
		return err
	}
	if !costing.AllUntouched(layers) {
		return shared.ErrLayerInUse
	}

	if err := repos.Layers().DeleteBySource(ctx, costing.ReferenceTypePurchase, p.ID); err != nil {
		return err
	}
	if err := repos.Movements().DeleteByReference(ctx, costing.ReferenceTypePurchase, p.ID); err != nil {
		return err
	}
	if err := repos.Invoices().Delete(ctx, invoice.ID); err != nil {
		return err
	}

	return refreshStocks(ctx, repos, purchaseItemIDs(p))
}

// saleEffect consumes cost layers FIFO, records the consumption trail and
// opens a receivable invoice
type saleEffect struct {
	doc     *trade.Sale
	dueDays int
}

func (e *saleEffect) apply(ctx context.Context, repos TransactionalRepositories) error {
	s := e.doc
	records := make([]costing.ConsumptionRecord, 0, len(s.Details))

	for idx := range s.Details {
		detail := &s.Details[idx]

		it, err := repos.Items().FindByIDForUpdate(ctx, detail.ItemID)
		if err != nil {
			return err
		}
		layers, err := repos.Layers().FindByItemFIFOForUpdate(ctx, detail.ItemID)
		if err != nil {
			return err
		}

		result, err := costing.ConsumeFIFO(detail.BaseQuantity, layers)
		if err != nil {
			return err
		}
		if err := repos.Layers().SaveAll(ctx, layers); err != nil {
			return err
		}

		for _, c := range result.Consumptions {
			rec, err := costing.NewConsumptionRecord(s.ID, detail.ID, c.CostLayerID, c.Quantity, c.UnitCost)
			if err != nil {
				return err
			}
			records = append(records, *rec)
		}

		if err := s.SetDetailCost(detail.ID, result.TotalCost); err != nil {
			return err
		}

		balance := costing.TotalRemaining(layers)
		if err := writeMovement(ctx, repos, detail.ItemID, costing.ReferenceTypeSale, s.ID, costing.MovementOut, detail.BaseQuantity, averageUnitCost(result.TotalCost, detail.BaseQuantity), balance, s.Date); err != nil {
			return err
		}
		if err := it.RecalculateStock(balance); err != nil {
			return err
		}
		if err := repos.Items().Save(ctx, it); err != nil {
			return err
		}
	}

	if err := repos.Consumptions().SaveAll(ctx, records); err != nil {
		return err
	}
	s.FinalizeCosts()

	invoice, err := finance.NewInvoice(
		"INV-"+s.Number, finance.InvoiceDirectionReceivable, finance.InvoiceSourceSale,
		s.ID, s.CustomerID, s.CustomerName,
		s.Date, s.Date.AddDate(0, 0, e.dueDays), s.GrandTotal,
	)
	if err != nil {
		return err
	}
	return repos.Invoices().Save(ctx, invoice)
}

func (e *saleEffect) reverse(ctx context.Context, repos TransactionalRepositories) error {
	s := e.doc

	invoice, err := guardNoConfirmedPayments(ctx, repos, s.ID)
	if err != nil {
		return err
	}

	// A confirmed return has already reinstated part of the consumption
	// trail as new layers; restoring the trail on top would double-count it.
	returns, err := repos.SaleReturns().FindBySale(ctx, s.ID)
	if err != nil {
		return err
	}
	if anyConfirmedSaleReturn(returns) {
		return shared.ErrHasReturns
	}

	records, err := repos.Consumptions().FindByDocument(ctx, s.ID)
	if err != nil {
		return err
	}

	itemIDs := saleItemIDs(s)
	layers := make([]*costing.CostLayer, 0)
	for _, itemID := range itemIDs {
		itemLayers, err := repos.Layers().FindByItemFIFOForUpdate(ctx, itemID)
		if err != nil {
			return err
		}
		layers = append(layers, itemLayers...)
	}

	if err := costing.RestoreConsumptions(records, layers); err != nil {
		return err
	}
	if err := repos.Layers().SaveAll(ctx, layers); err != nil {
		return err
	}
	if err := repos.Consumptions().DeleteByDocument(ctx, s.ID); err != nil {
		return err
	}
	if err := repos.Movements().DeleteByReference(ctx, costing.ReferenceTypeSale, s.ID); err != nil {
		return err
	}
	if err := repos.Invoices().Delete(ctx, invoice.ID); err != nil {
		return err
	}
	s.ClearCosts()

	return refreshStocks(ctx, repos, itemIDs)
}

// purchaseReturnEffect permanently shrinks the source purchase's layers
type purchaseReturnEffect struct {
	doc *trade.PurchaseReturn
}

func (e *purchaseReturnEffect) apply(ctx context.Context, repos TransactionalRepositories) error {
	r := e.doc

	source, err := repos.Purchases().FindByID(ctx, r.PurchaseID)
	if err != nil {
		return err
	}
	if !source.IsConfirmed() {
		return shared.NewDomainError("INVALID_STATE", "Source purchase is not confirmed")
	}

	siblings, err := repos.PurchaseReturns().FindByPurchase(ctx, r.PurchaseID)
	if err != nil {
		return err
	}

	records := make([]costing.ConsumptionRecord, 0, len(r.Details))
	for idx := range r.Details {
		detail := &r.Details[idx]

		sourceDetail := source.GetDetail(detail.PurchaseDetailID)
		if sourceDetail == nil {
			return shared.NewDomainError("DETAIL_NOT_FOUND", "Source purchase detail not found")
		}

		already := returnedPurchaseQuantity(siblings, r.ID, detail.PurchaseDetailID)
		if already.Add(detail.BaseQuantity).GreaterThan(sourceDetail.BaseQuantity) {
			return shared.NewDomainError("INVALID_RETURN_QUANTITY", "Return quantity exceeds the quantity originally purchased")
		}

		if _, err := repos.Items().FindByIDForUpdate(ctx, detail.ItemID); err != nil {
			return err
		}
		layers, err := repos.Layers().FindBySourceDetail(ctx, detail.PurchaseDetailID)
		if err != nil {
			return err
		}

		result, err := costing.ReduceForReturn(detail.BaseQuantity, layers)
		if err != nil {
			return err
		}
		if err := repos.Layers().SaveAll(ctx, layers); err != nil {
			return err
		}

		for _, c := range result.Consumptions {
			rec, err := costing.NewConsumptionRecord(r.ID, detail.ID, c.CostLayerID, c.Quantity, c.UnitCost)
			if err != nil {
				return err
			}
			records = append(records, *rec)
		}

		balance, err := itemBalance(ctx, repos, detail.ItemID)
		if err != nil {
			return err
		}
		if err := writeMovement(ctx, repos, detail.ItemID, costing.ReferenceTypePurchaseReturn, r.ID, costing.MovementOut, detail.BaseQuantity, averageUnitCost(result.TotalCost, detail.BaseQuantity), balance, r.Date); err != nil {
			return err
		}
		if err := refreshItemStock(ctx, repos, detail.ItemID); err != nil {
			return err
		}
	}

	return repos.Consumptions().SaveAll(ctx, records)
}

func (e *purchaseReturnEffect) reverse(ctx context.Context, repos TransactionalRepositories) error {
	r := e.doc

	records, err := repos.Consumptions().FindByDocument(ctx, r.ID)
	if err != nil {
		return err
	}

	itemIDs := purchaseReturnItemIDs(r)
	layers := make([]*costing.CostLayer, 0)
	for _, itemID := range itemIDs {
		itemLayers, err := repos.Layers().FindByItemFIFOForUpdate(ctx, itemID)
		if err != nil {
			return err
		}
		layers = append(layers, itemLayers...)
	}

	if err := costing.ReverseReduction(records, layers); err != nil {
		return err
	}
	if err := repos.Layers().SaveAll(ctx, layers); err != nil {
		return err
	}
	if err := repos.Consumptions().DeleteByDocument(ctx, r.ID); err != nil {
		return err
	}
	if err := repos.Movements().DeleteByReference(ctx, costing.ReferenceTypePurchaseReturn, r.ID); err != nil {
		return err
	}

	return refreshStocks(ctx, repos, itemIDs)
}

// saleReturnEffect reinstates stock at the historical costs the source sale
// consumed
type saleReturnEffect struct {
	doc *trade.SaleReturn
}

func (e *saleReturnEffect) apply(ctx context.Context, repos TransactionalRepositories) error {
	r := e.doc

	source, err := repos.Sales().FindByID(ctx, r.SaleID)
	if err != nil {
		return err
	}
	if !source.IsConfirmed() {
		return shared.NewDomainError("INVALID_STATE", "Source sale is not confirmed")
	}

	siblings, err := repos.SaleReturns().FindBySale(ctx, r.SaleID)
	if err != nil {
		return err
	}

	for idx := range r.Details {
		detail := &r.Details[idx]

		sourceDetail := source.GetDetail(detail.SaleDetailID)
		if sourceDetail == nil {
			return shared.NewDomainError("DETAIL_NOT_FOUND", "Source sale detail not found")
		}

		already := returnedSaleQuantity(siblings, r.ID, detail.SaleDetailID)
		if already.Add(detail.BaseQuantity).GreaterThan(sourceDetail.BaseQuantity) {
			return shared.NewDomainError("INVALID_RETURN_QUANTITY", "Return quantity exceeds the quantity originally sold")
		}

		if _, err := repos.Items().FindByIDForUpdate(ctx, detail.ItemID); err != nil {
			return err
		}
		records, err := repos.Consumptions().FindByDetail(ctx, detail.SaleDetailID)
		if err != nil {
			return err
		}

		// Earlier returns against this line already reinstated the head
		// of its consumption log.
		tail := costing.SkipConsumptions(records, already)
		layers, restored, err := costing.ReinstateFromConsumptions(detail.ItemID, r.ID, detail.ID, detail.BaseQuantity, tail)
		if err != nil {
			return err
		}
		if err := repos.Layers().SaveAll(ctx, layers); err != nil {
			return err
		}
		if err := r.SetDetailRestoredCost(detail.ID, restored); err != nil {
			return err
		}

		balance, err := itemBalance(ctx, repos, detail.ItemID)
		if err != nil {
			return err
		}
		if err := writeMovement(ctx, repos, detail.ItemID, costing.ReferenceTypeSaleReturn, r.ID, costing.MovementIn, detail.BaseQuantity, averageUnitCost(restored, detail.BaseQuantity), balance, r.Date); err != nil {
			return err
		}
		if err := refreshItemStock(ctx, repos, detail.ItemID); err != nil {
			return err
		}
	}

	r.FinalizeRestoredCosts()
	return nil
}

func (e *saleReturnEffect) reverse(ctx context.Context, repos TransactionalRepositories) error {
	r := e.doc

	layers, err := repos.Layers().FindBySource(ctx, costing.ReferenceTypeSaleReturn, r.ID)
	if err != nil {
		return err
	}
	if !costing.AllUntouched(layers) {
		return shared.ErrLayerInUse
	}

	if err := repos.Layers().DeleteBySource(ctx, costing.ReferenceTypeSaleReturn, r.ID); err != nil {
		return err
	}
	if err := repos.Movements().DeleteByReference(ctx, costing.ReferenceTypeSaleReturn, r.ID); err != nil {
		return err
	}
	r.ClearRestoredCosts()

	return refreshStocks(ctx, repos, saleReturnItemIDs(r))
}

func refreshStocks(ctx context.Context, repos TransactionalRepositories, itemIDs []uuid.UUID) error {
	for _, itemID := range itemIDs {
		if err := refreshItemStock(ctx, repos, itemID); err != nil {
			return err
		}
	}
	return nil
}

func purchaseItemIDs(p *trade.Purchase) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(p.Details))
	seen := make(map[uuid.UUID]bool, len(p.Details))
	for _, d := range p.Details {
		if !seen[d.ItemID] {
			seen[d.ItemID] = true
			ids = append(ids, d.ItemID)
		}
	}
	return ids
}

func saleItemIDs(s *trade.Sale) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(s.Details))
	seen := make(map[uuid.UUID]bool, len(s.Details))
	for _, d := range s.Details {
		if !seen[d.ItemID] {
			seen[d.ItemID] = true
			ids = append(ids, d.ItemID)
		}
	}
	return ids
}

func purchaseReturnItemIDs(r *trade.PurchaseReturn) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(r.Details))
	seen := make(map[uuid.UUID]bool, len(r.Details))
	for _, d := range r.Details {
		if !seen[d.ItemID] {
			seen[d.ItemID] = true
			ids = append(ids, d.ItemID)
		}
	}
	return ids
}

func saleReturnItemIDs(r *trade.SaleReturn) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(r.Details))
	seen := make(map[uuid.UUID]bool, len(r.Details))
	for _, d := range r.Details {
		if !seen[d.ItemID] {
			seen[d.ItemID] = true
			ids = append(ids, d.ItemID)
		}
	}
	return ids
}

// anyConfirmedPurchaseReturn reports whether any confirmed return still
// references the purchase
func anyConfirmedPurchaseReturn(returns []*trade.PurchaseReturn) bool {
	for _, r := range returns {
		if r.IsConfirmed() {
			return true
		}
	}
	return false
}

// anyConfirmedSaleReturn reports whether any confirmed return still
// references the sale
func anyConfirmedSaleReturn(returns []*trade.SaleReturn) bool {
	for _, r := range returns {
		if r.IsConfirmed() {
			return true
		}
	}
	return false
}

// returnedPurchaseQuantity sums the base quantity other confirmed returns
// already took from one purchase detail
func returnedPurchaseQuantity(siblings []*trade.PurchaseReturn, selfID, purchaseDetailID uuid.UUID) decimal.Decimal {
	total := decimal.Zero
	for _, sib := range siblings {
		if sib.ID == selfID || !sib.IsConfirmed() {
			continue
		}
		for _, d := range sib.Details {
			if d.PurchaseDetailID == purchaseDetailID {
				total = total.Add(d.BaseQuantity)
			}
		}
	}
	return total
}

// returnedSaleQuantity sums the base quantity other confirmed returns
// already took from one sale detail
func returnedSaleQuantity(siblings []*trade.SaleReturn, selfID, saleDetailID uuid.UUID) decimal.Decimal {
	total := decimal.Zero
	for _, sib := range siblings {
		if sib.ID == selfID || !sib.IsConfirmed() {
			continue
		}
		for _, d := range sib.Details {
			if d.SaleDetailID == saleDetailID {
				total = total.Add(d.BaseQuantity)
			}
		}
	}
	return total
}

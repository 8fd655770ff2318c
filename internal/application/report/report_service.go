package report

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jovinkendrico/pos-mandor-jaya-sub002/internal/domain/costing"
	"github.com/jovinkendrico/pos-mandor-jaya-sub002/internal/domain/finance"
	"github.com/jovinkendrico/pos-mandor-jaya-sub002/internal/domain/item"
	"github.com/jovinkendrico/pos-mandor-jaya-sub002/internal/domain/shared"
	"github.com/jovinkendrico/pos-mandor-jaya-sub002/internal/domain/trade"
)

// ReportService builds read-only projections over the ledger and the
// settlement records. It never mutates state, so it reads through plain
// repositories instead of a transaction scope.
type ReportService struct {
	items     item.Repository
	layers    costing.CostLayerRepository
	movements costing.StockMovementRepository
	invoices  finance.InvoiceRepository
	vouchers  finance.PaymentVoucherRepository
	sales     trade.SaleRepository
}

// NewReportService creates a new ReportService
func NewReportService(
	items item.Repository,
	layers costing.CostLayerRepository,
	movements costing.StockMovementRepository,
	invoices finance.InvoiceRepository,
	vouchers finance.PaymentVoucherRepository,
	sales trade.SaleRepository,
) *ReportService {
	return &ReportService{
		items:     items,
		layers:    layers,
		movements: movements,
		invoices:  invoices,
		vouchers:  vouchers,
		sales:     sales,
	}
}

// StockCardRow is one movement line on an item's stock card
type StockCardRow struct {
	Date          time.Time             `json:"date"`
	ReferenceType costing.ReferenceType `json:"reference_type"`
	ReferenceID   uuid.UUID             `json:"reference_id"`
	QuantityIn    decimal.Decimal       `json:"quantity_in"`
	QuantityOut   decimal.Decimal       `json:"quantity_out"`
	UnitCost      decimal.Decimal       `json:"unit_cost"`
	Balance       decimal.Decimal       `json:"balance"`
}

// StockCardResponse is the movement history of one item inside a period
type StockCardResponse struct {
	ItemID         uuid.UUID       `json:"item_id"`
	ItemCode       string          `json:"item_code"`
	ItemName       string          `json:"item_name"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	ClosingBalance decimal.Decimal `json:"closing_balance"`
	Rows           []StockCardRow  `json:"rows"`
}

// StockCard returns an item's chronological movement ledger for a period.
// The opening balance is the balance after the last movement before the
// period.
func (s *ReportService) StockCard(ctx context.Context, itemID uuid.UUID, from, to time.Time) (*StockCardResponse, error) {
	it, err := s.items.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	movements, err := s.movements.FindByItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	opening := decimal.Zero
	rows := make([]StockCardRow, 0, len(movements))
	closing := decimal.Zero
	for _, m := range movements {
		if m.MovementDate.Before(from) {
			opening = m.BalanceAfter
			closing = m.BalanceAfter
			continue
		}
		if m.MovementDate.After(to) {
			continue
		}

		row := StockCardRow{
			Date:          m.MovementDate,
			ReferenceType: m.ReferenceType,
			ReferenceID:   m.ReferenceID,
			UnitCost:      m.UnitCost,
			Balance:       m.BalanceAfter,
		}
		if m.Direction == costing.MovementIn {
			row.QuantityIn = m.Quantity
		} else {
			row.QuantityOut = m.Quantity
		}
		rows = append(rows, row)
		closing = m.BalanceAfter
	}

	return &StockCardResponse{
		ItemID:         it.ID,
		ItemCode:       it.Code,
		ItemName:       it.Name,
		OpeningBalance: opening,
		ClosingBalance: closing,
		Rows:           rows,
	}, nil
}

// ValuationRow is one item's remaining inventory value
type ValuationRow struct {
	ItemID   uuid.UUID       `json:"item_id"`
	ItemCode string          `json:"item_code"`
	ItemName string          `json:"item_name"`
	Quantity decimal.Decimal `json:"quantity"`
	Value    decimal.Decimal `json:"value"`
}

// ValuationResponse is the inventory value across all items
type ValuationResponse struct {
	Rows       []ValuationRow  `json:"rows"`
	TotalValue decimal.Decimal `json:"total_value"`
}

// InventoryValuation values every item at the cost of its remaining layers
func (s *ReportService) InventoryValuation(ctx context.Context, filter shared.Filter) (*ValuationResponse, error) {
	items, err := s.items.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	rows := make([]ValuationRow, 0, len(items))
	total := decimal.Zero
	for idx := range items {
		it := &items[idx]
		layers, err := s.layers.FindByItemFIFO(ctx, it.ID)
		if err != nil {
			return nil, err
		}

		value := decimal.Zero
		for _, l := range layers {
			value = value.Add(l.RemainingValue())
		}
		rows = append(rows, ValuationRow{
			ItemID:   it.ID,
			ItemCode: it.Code,
			ItemName: it.Name,
			Quantity: costing.TotalRemaining(layers),
			Value:    value,
		})
		total = total.Add(value)
	}

	return &ValuationResponse{Rows: rows, TotalValue: total}, nil
}

// AgingRow is one outstanding invoice with its bucket
type AgingRow struct {
	InvoiceID   uuid.UUID           `json:"invoice_id"`
	Number      string              `json:"number"`
	PartyID     uuid.UUID           `json:"party_id"`
	PartyName   string              `json:"party_name"`
	DueDate     time.Time           `json:"due_date"`
	DaysOverdue int                 `json:"days_overdue"`
	Remaining   decimal.Decimal     `json:"remaining"`
	Bucket      finance.AgingBucket `json:"bucket"`
}

// AgingResponse groups outstanding invoices by overdue bucket
type AgingResponse struct {
	AsOf    time.Time                               `json:"as_of"`
	Rows    []AgingRow                              `json:"rows"`
	Buckets map[finance.AgingBucket]decimal.Decimal `json:"buckets"`
	Total   decimal.Decimal                         `json:"total"`
}

// InvoiceAging buckets the outstanding invoices of one direction by how far
// past due they are
func (s *ReportService) InvoiceAging(ctx context.Context, direction finance.InvoiceDirection, asOf time.Time) (*AgingResponse, error) {
	outstanding, err := s.invoices.FindOutstanding(ctx, direction, asOf)
	if err != nil {
		return nil, err
	}

	rows := make([]AgingRow, 0, len(outstanding))
	buckets := map[finance.AgingBucket]decimal.Decimal{
		finance.AgingBucketCurrent: decimal.Zero,
		finance.AgingBucket31To60:  decimal.Zero,
		finance.AgingBucket61To90:  decimal.Zero,
		finance.AgingBucketOver90:  decimal.Zero,
	}
	total := decimal.Zero
	for _, inv := range outstanding {
		remaining := inv.RemainingAmount()
		bucket := inv.Bucket(asOf)
		rows = append(rows, AgingRow{
			InvoiceID:   inv.ID,
			Number:      inv.Number,
			PartyID:     inv.PartyID,
			PartyName:   inv.PartyName,
			DueDate:     inv.DueDate,
			DaysOverdue: inv.AgeDays(asOf),
			Remaining:   remaining,
			Bucket:      bucket,
		})
		buckets[bucket] = buckets[bucket].Add(remaining)
		total = total.Add(remaining)
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].DueDate.Before(rows[j].DueDate) })

	return &AgingResponse{AsOf: asOf, Rows: rows, Buckets: buckets, Total: total}, nil
}

// BestSellerRow ranks one item by quantity sold
type BestSellerRow struct {
	Rank         int             `json:"rank"`
	ItemID       uuid.UUID       `json:"item_id"`
	ItemCode     string          `json:"item_code"`
	ItemName     string          `json:"item_name"`
	QuantitySold decimal.Decimal `json:"quantity_sold"`
	Revenue      decimal.Decimal `json:"revenue"`
	Profit       decimal.Decimal `json:"profit"`
}

// BestSellers ranks items by base quantity sold across confirmed sales in
// the period
func (s *ReportService) BestSellers(ctx context.Context, from, to time.Time, limit int) ([]BestSellerRow, error) {
	sales, err := s.sales.FindConfirmedBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}

	type accum struct {
		code     string
		name     string
		quantity decimal.Decimal
		revenue  decimal.Decimal
		profit   decimal.Decimal
	}
	byItem := make(map[uuid.UUID]*accum)
	for _, sale := range sales {
		for _, d := range sale.Details {
			a, ok := byItem[d.ItemID]
			if !ok {
				a = &accum{code: d.ItemCode, name: d.ItemName, quantity: decimal.Zero, revenue: decimal.Zero, profit: decimal.Zero}
				byItem[d.ItemID] = a
			}
			a.quantity = a.quantity.Add(d.BaseQuantity)
			a.revenue = a.revenue.Add(d.Total)
			a.profit = a.profit.Add(d.Profit())
		}
	}

	rows := make([]BestSellerRow, 0, len(byItem))
	for id, a := range byItem {
		rows = append(rows, BestSellerRow{
			ItemID:       id,
			ItemCode:     a.code,
			ItemName:     a.name,
			QuantitySold: a.quantity,
			Revenue:      a.revenue,
			Profit:       a.profit,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].QuantitySold.Equal(rows[j].QuantitySold) {
			return rows[i].QuantitySold.GreaterThan(rows[j].QuantitySold)
		}
		return rows[i].ItemCode < rows[j].ItemCode
	})

	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	for idx := range rows {
		rows[idx].Rank = idx + 1
	}

	return rows, nil
}

// CashFlowResponse sums confirmed voucher money inside a period
type CashFlowResponse struct {
	From     time.Time       `json:"from"`
	To       time.Time       `json:"to"`
	TotalIn  decimal.Decimal `json:"total_in"`
	TotalOut decimal.Decimal `json:"total_out"`
	Net      decimal.Decimal `json:"net"`
}

// CashFlow sums the confirmed payment vouchers inside the period by
// direction
func (s *ReportService) CashFlow(ctx context.Context, from, to time.Time) (*CashFlowResponse, error) {
	vouchers, err := s.vouchers.FindConfirmedBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}

	in := decimal.Zero
	out := decimal.Zero
	for _, v := range vouchers {
		if v.Direction == finance.VoucherDirectionIn {
			in = in.Add(v.TotalAmount)
		} else {
			out = out.Add(v.TotalAmount)
		}
	}

	return &CashFlowResponse{
		From:     from,
		To:       to,
		TotalIn:  in,
		TotalOut: out,
		Net:      in.Sub(out),
	}, nil
}

// ProfitRow is one confirmed sale with its cost and margin
type ProfitRow struct {
	SaleID  uuid.UUID       `json:"sale_id"`
	Number  string          `json:"number"`
	Date    time.Time       `json:"date"`
	Revenue decimal.Decimal `json:"revenue"`
	Cost    decimal.Decimal `json:"cost"`
	Profit  decimal.Decimal `json:"profit"`
}

// ProfitResponse sums sale margins inside a period
type ProfitResponse struct {
	Rows        []ProfitRow     `json:"rows"`
	TotalProfit decimal.Decimal `json:"total_profit"`
}

// Profit lists confirmed sales with the FIFO cost captured at confirm time
func (s *ReportService) Profit(ctx context.Context, from, to time.Time) (*ProfitResponse, error) {
	sales, err := s.sales.FindConfirmedBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}

	rows := make([]ProfitRow, 0, len(sales))
	total := decimal.Zero
	for _, sale := range sales {
		rows = append(rows, ProfitRow{
			SaleID:  sale.ID,
			Number:  sale.Number,
			Date:    sale.Date,
			Revenue: sale.GrandTotal.Sub(sale.PPNAmount),
			Cost:    sale.TotalCost,
			Profit:  sale.TotalProfit,
		})
		total = total.Add(sale.TotalProfit)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Date.Before(rows[j].Date) })

	return &ProfitResponse{Rows: rows, TotalProfit: total}, nil
}

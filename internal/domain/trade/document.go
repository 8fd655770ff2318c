package trade

import (
	"github.com/shopspring/decimal"
)

// DocumentStatus represents the lifecycle state of a trade document
type DocumentStatus string

const (
	DocumentStatusPending   DocumentStatus = "PENDING"
	DocumentStatusConfirmed DocumentStatus = "CONFIRMED"
)

// IsValid checks if the status is a valid DocumentStatus
func (s DocumentStatus) IsValid() bool {
	return s == DocumentStatusPending || s == DocumentStatusConfirmed
}

// String returns the string representation of DocumentStatus
func (s DocumentStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status.
// The lifecycle is a two-state machine: confirming a pending document applies
// its inventory and financial effects, unconfirming a confirmed document
// reverses them.
func (s DocumentStatus) CanTransitionTo(target DocumentStatus) bool {
	switch s {
	case DocumentStatusPending:
		return target == DocumentStatusConfirmed
	case DocumentStatusConfirmed:
		return target == DocumentStatusPending
	}
	return false
}

// DocumentType identifies the kind of trade document
type DocumentType string

const (
	DocumentTypePurchase       DocumentType = "PURCHASE"
	DocumentTypeSale           DocumentType = "SALE"
	DocumentTypePurchaseReturn DocumentType = "PURCHASE_RETURN"
	DocumentTypeSaleReturn     DocumentType = "SALE_RETURN"
)

// String returns the string representation of DocumentType
func (t DocumentType) String() string {
	return string(t)
}

var hundred = decimal.NewFromInt(100)

// lineAmounts holds the cascading discount breakdown of one document line.
// Discount 1 applies to the gross amount, discount 2 applies to what remains
// after discount 1, in that order.
type lineAmounts struct {
	Gross           decimal.Decimal
	Discount1Amount decimal.Decimal
	Discount2Amount decimal.Decimal
	Total           decimal.Decimal
}

// calculateLineAmounts computes the discount cascade for one line
func calculateLineAmounts(quantity, unitPrice, discount1Percent, discount2Percent decimal.Decimal) lineAmounts {
	gross := quantity.Mul(unitPrice)
	d1 := gross.Mul(discount1Percent).Div(hundred)
	afterD1 := gross.Sub(d1)
	d2 := afterD1.Mul(discount2Percent).Div(hundred)

	return lineAmounts{
		Gross:           gross,
		Discount1Amount: d1,
		Discount2Amount: d2,
		Total:           afterD1.Sub(d2),
	}
}

// documentTotals holds the header-level amounts derived from a document's
// lines. PPN is computed once on the document's net subtotal, never per line.
type documentTotals struct {
	Subtotal       decimal.Decimal
	TotalDiscount1 decimal.Decimal
	TotalDiscount2 decimal.Decimal
	PPNAmount      decimal.Decimal
	GrandTotal     decimal.Decimal
}

// calculateDocumentTotals folds line amounts into header totals and applies
// the document-level PPN percentage to the net amount
func calculateDocumentTotals(lines []lineAmounts, ppnPercent decimal.Decimal) documentTotals {
	totals := documentTotals{
		Subtotal:       decimal.Zero,
		TotalDiscount1: decimal.Zero,
		TotalDiscount2: decimal.Zero,
	}
	for _, l := range lines {
		totals.Subtotal = totals.Subtotal.Add(l.Gross)
		totals.TotalDiscount1 = totals.TotalDiscount1.Add(l.Discount1Amount)
		totals.TotalDiscount2 = totals.TotalDiscount2.Add(l.Discount2Amount)
	}

	net := totals.Subtotal.Sub(totals.TotalDiscount1).Sub(totals.TotalDiscount2)
	totals.PPNAmount = net.Mul(ppnPercent).Div(hundred)
	totals.GrandTotal = net.Add(totals.PPNAmount)

	return totals
}

// validPercent reports whether p is a valid percentage in [0, 100]
func validPercent(p decimal.Decimal) bool {
	return !p.IsNegative() && p.LessThanOrEqual(hundred)
}

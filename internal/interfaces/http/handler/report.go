package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	appreport "github.com/jovinkendrico/pos-mandor-jaya-sub002/internal/application/report"
	"github.com/jovinkendrico/pos-mandor-jaya-sub002/internal/domain/finance"
)

// ReportHandler handles reporting endpoints
type ReportHandler struct {
	BaseHandler
	reportService *appreport.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *appreport.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// RegisterRoutes registers all report routes
func (h *ReportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	reports := rg.Group("/reports")
	{
		reports.GET("/stock-card/:id", h.StockCard)
		reports.GET("/inventory-valuation", h.InventoryValuation)
		reports.GET("/invoice-aging", h.InvoiceAging)
		reports.GET("/best-sellers", h.BestSellers)
		reports.GET("/cash-flow", h.CashFlow)
		reports.GET("/profit", h.Profit)
	}
}

// parsePeriod reads the from/to query parameters. Missing bounds default to
// the beginning of time and now.
func (h *ReportHandler) parsePeriod(c *gin.Context) (time.Time, time.Time, error) {
	from := time.Time{}
	to := time.Now()

	if v := c.Query("from"); v != "" {
		t, err := parseDate(v)
		if err != nil {
			return from, to, err
		}
		from = t
	}
	if v := c.Query("to"); v != "" {
		t, err := parseDate(v)
		if err != nil {
			return from, to, err
		}
		to = t
	}
	return from, to, nil
}

// StockCard returns an item's chronological movement ledger for a period
func (h *ReportHandler) StockCard(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		h.BadRequest(c, "invalid item id")
		return
	}
	from, to, err := h.parsePeriod(c)
	if err != nil {
		h.ValidationError(c, err)
		return
	}

	card, err := h.reportService.StockCard(c.Request.Context(), id, from, to)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, card)
}

// InventoryValuation returns the FIFO value of stock on hand per item
func (h *ReportHandler) InventoryValuation(c *gin.Context) {
	filter, err := parseFilter(c)
	if err != nil {
		h.ValidationError(c, err)
		return
	}

	valuation, err := h.reportService.InventoryValuation(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, valuation)
}

// InvoiceAging buckets outstanding invoices by days overdue
func (h *ReportHandler) InvoiceAging(c *gin.Context) {
	direction := finance.InvoiceDirection(c.DefaultQuery("direction", string(finance.InvoiceDirectionReceivable)))
	if !direction.IsValid() {
		h.BadRequest(c, "direction must be RECEIVABLE or PAYABLE")
		return
	}

	asOf := time.Now()
	if v := c.Query("as_of"); v != "" {
		t, err := parseDate(v)
		if err != nil {
			h.ValidationError(c, err)
			return
		}
		asOf = t
	}

	aging, err := h.reportService.InvoiceAging(c.Request.Context(), direction, asOf)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, aging)
}

// BestSellers ranks items by quantity sold inside a period
func (h *ReportHandler) BestSellers(c *gin.Context) {
	from, to, err := h.parsePeriod(c)
	if err != nil {
		h.ValidationError(c, err)
		return
	}

	limit := 10
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			h.BadRequest(c, "limit must be a positive integer")
			return
		}
		limit = n
	}

	rows, err := h.reportService.BestSellers(c.Request.Context(), from, to, limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rows)
}

// CashFlow summarizes confirmed voucher totals inside a period
func (h *ReportHandler) CashFlow(c *gin.Context) {
	from, to, err := h.parsePeriod(c)
	if err != nil {
		h.ValidationError(c, err)
		return
	}

	flow, err := h.reportService.CashFlow(c.Request.Context(), from, to)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, flow)
}

// Profit summarizes revenue, cost and profit from confirmed sales inside a
// period
func (h *ReportHandler) Profit(c *gin.Context) {
	from, to, err := h.parsePeriod(c)
	if err != nil {
		h.ValidationError(c, err)
		return
	}

	profit, err := h.reportService.Profit(c.Request.Context(), from, to)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, profit)
}

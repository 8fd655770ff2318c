package handler

import (
	"github.com/gin-gonic/gin"

	appfinance "github.com/jovinkendrico/pos-mandor-jaya-sub002/internal/application/finance"
)

// PaymentHandler handles payment voucher and invoice endpoints
type PaymentHandler struct {
	BaseHandler
	paymentService *appfinance.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(paymentService *appfinance.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// RegisterRoutes registers all payment and invoice routes
func (h *PaymentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	vouchers := rg.Group("/payment-vouchers")
	{
		vouchers.POST("", h.Create)
		vouchers.GET("", h.List)
		vouchers.GET("/:id", h.GetByID)
		vouchers.PUT("/:id", h.Update)
		vouchers.DELETE("/:id", h.Delete)
		vouchers.POST("/:id/confirm", h.Confirm)
		vouchers.POST("/:id/unconfirm", h.Unconfirm)
	}

	invoices := rg.Group("/invoices")
	{
		invoices.GET("", h.ListInvoices)
		invoices.GET("/:id", h.GetInvoice)
	}
}

// Create creates a pending payment voucher with its allocations
func (h *PaymentHandler) Create(c *gin.Context) {
	var input appfinance.CreateVoucherInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.ValidationError(c, err)
		return
	}

	v, err := h.paymentService.Create(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, v)
}

// List returns payment vouchers matching the filter
func (h *PaymentHandler) List(c *gin.Context) {
	filter, err := parseFilter(c)
	if err != nil {
		h.ValidationError(c, err)
		return
	}

	page, err := h.paymentService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// GetByID returns a single payment voucher with its allocations
func (h *PaymentHandler) GetByID(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		h.BadRequest(c, "invalid voucher id")
		return
	}

	v, err := h.paymentService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, v)
}

// Update replaces the editable parts of a pending voucher
func (h *PaymentHandler) Update(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		h.BadRequest(c, "invalid voucher id")
		return
	}

	var input appfinance.UpdateVoucherInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.ValidationError(c, err)
		return
	}

	v, err := h.paymentService.Update(c.Request.Context(), id, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, v)
}

// Delete removes a pending voucher
func (h *PaymentHandler) Delete(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		h.BadRequest(c, "invalid voucher id")
		return
	}

	if err := h.paymentService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Confirm applies the voucher's allocations to their invoices; any
// unallocated remainder becomes an advance for the party
func (h *PaymentHandler) Confirm(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		h.BadRequest(c, "invalid voucher id")
		return
	}

	v, err := h.paymentService.Confirm(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, v)
}

// Unconfirm reverses a confirmed voucher back to pending
func (h *PaymentHandler) Unconfirm(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		h.BadRequest(c, "invalid voucher id")
		return
	}

	v, err := h.paymentService.Unconfirm(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, v)
}

// ListInvoices returns invoices matching the filter
func (h *PaymentHandler) ListInvoices(c *gin.Context) {
	filter, err := parseFilter(c)
	if err != nil {
		h.ValidationError(c, err)
		return
	}

	page, err := h.paymentService.ListInvoices(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// GetInvoice returns a single invoice
func (h *PaymentHandler) GetInvoice(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		h.BadRequest(c, "invalid invoice id")
		return
	}

	inv, err := h.paymentService.GetInvoice(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, inv)
}

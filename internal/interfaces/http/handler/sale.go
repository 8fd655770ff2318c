package handler

import (
	"github.com/gin-gonic/gin"

	apptrade "github.com/jovinkendrico/pos-mandor-jaya-sub002/internal/application/trade"
)

// SaleHandler handles sale document endpoints
type SaleHandler struct {
	BaseHandler
	saleService *apptrade.SaleService
}

// NewSaleHandler creates a new SaleHandler
func NewSaleHandler(saleService *apptrade.SaleService) *SaleHandler {
	return &SaleHandler{saleService: saleService}
}

// RegisterRoutes registers all sale routes
func (h *SaleHandler) RegisterRoutes(rg *gin.RouterGroup) {
	sales := rg.Group("/sales")
	{
		sales.POST("", h.Create)
		sales.GET("", h.List)
		sales.GET("/:id", h.GetByID)
		sales.PUT("/:id", h.Update)
		sales.DELETE("/:id", h.Delete)
		sales.POST("/:id/confirm", h.Confirm)
		sales.POST("/:id/unconfirm", h.Unconfirm)
	}
}

// Create creates a pending sale
func (h *SaleHandler) Create(c *gin.Context) {
	var input apptrade.CreateSaleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.ValidationError(c, err)
		return
	}

	s, err := h.saleService.Create(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, s)
}

// List returns sales matching the filter
func (h *SaleHandler) List(c *gin.Context) {
	filter, err := parseFilter(c)
	if err != nil {
		h.ValidationError(c, err)
		return
	}

	page, err := h.saleService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// GetByID returns a single sale with its details
func (h *SaleHandler) GetByID(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		h.BadRequest(c, "invalid sale id")
		return
	}

	s, err := h.saleService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, s)
}

// Update replaces the editable parts of a pending sale
func (h *SaleHandler) Update(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		h.BadRequest(c, "invalid sale id")
		return
	}

	var input apptrade.UpdateSaleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.ValidationError(c, err)
		return
	}

	s, err := h.saleService.Update(c.Request.Context(), id, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, s)
}

// Delete removes a pending sale
func (h *SaleHandler) Delete(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		h.BadRequest(c, "invalid sale id")
		return
	}

	if err := h.saleService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Confirm consumes stock FIFO, computes cost and profit, and opens the
// receivable invoice
func (h *SaleHandler) Confirm(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		h.BadRequest(c, "invalid sale id")
		return
	}

	s, err := h.saleService.Confirm(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, s)
}

// Unconfirm reverses a confirmed sale back to pending
func (h *SaleHandler) Unconfirm(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		h.BadRequest(c, "invalid sale id")
		return
	}

	s, err := h.saleService.Unconfirm(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, s)
}

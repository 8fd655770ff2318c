package handler

import (
	"github.com/gin-gonic/gin"

	apptrade "github.com/jovinkendrico/pos-mandor-jaya-sub002/internal/application/trade"
)

// SaleReturnHandler handles sale return endpoints
type SaleReturnHandler struct {
	BaseHandler
	returnService *apptrade.SaleReturnService
}

// NewSaleReturnHandler creates a new SaleReturnHandler
func NewSaleReturnHandler(returnService *apptrade.SaleReturnService) *SaleReturnHandler {
	return &SaleReturnHandler{returnService: returnService}
}

// RegisterRoutes registers all sale return routes
func (h *SaleReturnHandler) RegisterRoutes(rg *gin.RouterGroup) {
	returns := rg.Group("/sale-returns")
	{
		returns.POST("", h.Create)
		returns.GET("", h.List)
		returns.GET("/:id", h.GetByID)
		returns.DELETE("/:id", h.Delete)
		returns.POST("/:id/confirm", h.Confirm)
		returns.POST("/:id/unconfirm", h.Unconfirm)
	}
}

// Create creates a pending sale return against a confirmed sale
func (h *SaleReturnHandler) Create(c *gin.Context) {
	var input apptrade.CreateSaleReturnInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.ValidationError(c, err)
		return
	}

	r, err := h.returnService.Create(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, r)
}

// List returns sale returns matching the filter
func (h *SaleReturnHandler) List(c *gin.Context) {
	filter, err := parseFilter(c)
	if err != nil {
		h.ValidationError(c, err)
		return
	}

	page, err := h.returnService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// GetByID returns a single sale return with its details
func (h *SaleReturnHandler) GetByID(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		h.BadRequest(c, "invalid sale return id")
		return
	}

	r, err := h.returnService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, r)
}

// Delete removes a pending sale return
func (h *SaleReturnHandler) Delete(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		h.BadRequest(c, "invalid sale return id")
		return
	}

	if err := h.returnService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Confirm restores the returned stock at its original consumed cost
func (h *SaleReturnHandler) Confirm(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		h.BadRequest(c, "invalid sale return id")
		return
	}

	r, err := h.returnService.Confirm(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, r)
}

// Unconfirm reverses a confirmed sale return back to pending
func (h *SaleReturnHandler) Unconfirm(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		h.BadRequest(c, "invalid sale return id")
		return
	}

	r, err := h.returnService.Unconfirm(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, r)
}

package handler

import (
	"github.com/gin-gonic/gin"

	apptrade "github.com/jovinkendrico/pos-mandor-jaya-sub002/internal/application/trade"
)

// PurchaseHandler handles purchase document endpoints
type PurchaseHandler struct {
	BaseHandler
	purchaseService *apptrade.PurchaseService
}

// NewPurchaseHandler creates a new PurchaseHandler
func NewPurchaseHandler(purchaseService *apptrade.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{purchaseService: purchaseService}
}

// RegisterRoutes registers all purchase routes
func (h *PurchaseHandler) RegisterRoutes(rg *gin.RouterGroup) {
	purchases := rg.Group("/purchases")
	{
		purchases.POST("", h.Create)
		purchases.GET("", h.List)
		purchases.GET("/:id", h.GetByID)
		purchases.PUT("/:id", h.Update)
		purchases.DELETE("/:id", h.Delete)
		purchases.POST("/:id/confirm", h.Confirm)
		purchases.POST("/:id/unconfirm", h.Unconfirm)
	}
}

// Create creates a pending purchase
func (h *PurchaseHandler) Create(c *gin.Context) {
	var input apptrade.CreatePurchaseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.ValidationError(c, err)
		return
	}

	p, err := h.purchaseService.Create(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, p)
}

// List returns purchases matching the filter
func (h *PurchaseHandler) List(c *gin.Context) {
	filter, err := parseFilter(c)
	if err != nil {
		h.ValidationError(c, err)
		return
	}

	page, err := h.purchaseService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// GetByID returns a single purchase with its details
func (h *PurchaseHandler) GetByID(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		h.BadRequest(c, "invalid purchase id")
		return
	}

	p, err := h.purchaseService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, p)
}

// Update replaces the editable parts of a pending purchase
func (h *PurchaseHandler) Update(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		h.BadRequest(c, "invalid purchase id")
		return
	}

	var input apptrade.UpdatePurchaseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.ValidationError(c, err)
		return
	}

	p, err := h.purchaseService.Update(c.Request.Context(), id, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, p)
}

// Delete removes a pending purchase
func (h *PurchaseHandler) Delete(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		h.BadRequest(c, "invalid purchase id")
		return
	}

	if err := h.purchaseService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Confirm posts a purchase to the stock ledger and opens its invoice
func (h *PurchaseHandler) Confirm(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		h.BadRequest(c, "invalid purchase id")
		return
	}

	p, err := h.purchaseService.Confirm(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, p)
}

// Unconfirm reverses a confirmed purchase back to pending
func (h *PurchaseHandler) Unconfirm(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		h.BadRequest(c, "invalid purchase id")
		return
	}

	p, err := h.purchaseService.Unconfirm(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, p)
}

package handler

import (
	"github.com/gin-gonic/gin"

	apptrade "github.com/jovinkendrico/pos-mandor-jaya-sub002/internal/application/trade"
)

// PurchaseReturnHandler handles purchase return endpoints
type PurchaseReturnHandler struct {
	BaseHandler
	returnService *apptrade.PurchaseReturnService
}

// NewPurchaseReturnHandler creates a new PurchaseReturnHandler
func NewPurchaseReturnHandler(returnService *apptrade.PurchaseReturnService) *PurchaseReturnHandler {
	return &PurchaseReturnHandler{returnService: returnService}
}

// RegisterRoutes registers all purchase return routes
func (h *PurchaseReturnHandler) RegisterRoutes(rg *gin.RouterGroup) {
	returns := rg.Group("/purchase-returns")
	{
		returns.POST("", h.Create)
		returns.GET("", h.List)
		returns.GET("/:id", h.GetByID)
		returns.DELETE("/:id", h.Delete)
		returns.POST("/:id/confirm", h.Confirm)
		returns.POST("/:id/unconfirm", h.Unconfirm)
	}
}

// Create creates a pending purchase return against a confirmed purchase
func (h *PurchaseReturnHandler) Create(c *gin.Context) {
	var input apptrade.CreatePurchaseReturnInput
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

// List returns purchase returns matching the filter
func (h *PurchaseReturnHandler) List(c *gin.Context) {
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

// GetByID returns a single purchase return with its details
func (h *PurchaseReturnHandler) GetByID(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		h.BadRequest(c, "invalid purchase return id")
		return
	}

	r, err := h.returnService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, r)
}

// Delete removes a pending purchase return
func (h *PurchaseReturnHandler) Delete(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		h.BadRequest(c, "invalid purchase return id")
		return
	}

	if err := h.returnService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Confirm consumes the returned stock from the original purchase layers
func (h *PurchaseReturnHandler) Confirm(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		h.BadRequest(c, "invalid purchase return id")
		return
	}

	r, err := h.returnService.Confirm(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, r)
}

// Unconfirm reverses a confirmed purchase return back to pending
func (h *PurchaseReturnHandler) Unconfirm(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		h.BadRequest(c, "invalid purchase return id")
		return
	}

	r, err := h.returnService.Unconfirm(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, r)
}

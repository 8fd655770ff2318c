package handler

import (
	"github.com/gin-gonic/gin"

	appitem "github.com/jovinkendrico/pos-mandor-jaya-sub002/internal/application/item"
)

// ItemHandler handles item catalog and stock endpoints
type ItemHandler struct {
	BaseHandler
	itemService *appitem.ItemService
}

// NewItemHandler creates a new ItemHandler
func NewItemHandler(itemService *appitem.ItemService) *ItemHandler {
	return &ItemHandler{itemService: itemService}
}

// RegisterRoutes registers all item routes
func (h *ItemHandler) RegisterRoutes(rg *gin.RouterGroup) {
	items := rg.Group("/items")
	{
		items.POST("", h.Create)
		items.GET("", h.List)
		items.GET("/:id", h.GetByID)
		items.PUT("/:id", h.Update)
		items.DELETE("/:id", h.Delete)
		items.POST("/:id/uoms", h.AddUOM)
		items.PUT("/:id/uoms/:uomId", h.UpdateUOM)
		items.DELETE("/:id/uoms/:uomId", h.RemoveUOM)
		items.POST("/:id/uoms/:uomId/base", h.SetBaseUOM)
		items.POST("/opening-balances", h.SetOpeningBalance)
		items.POST("/stock-adjustments", h.AdjustStock)
	}
}

// Create creates a new item with its base UOM
func (h *ItemHandler) Create(c *gin.Context) {
	var input appitem.CreateItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.ValidationError(c, err)
		return
	}

	it, err := h.itemService.Create(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, it)
}

// List returns items matching the filter
func (h *ItemHandler) List(c *gin.Context) {
	filter, err := parseFilter(c)
	if err != nil {
		h.ValidationError(c, err)
		return
	}

	items, total, err := h.itemService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, items, total, filter.Page, filter.PageSize)
}

// GetByID returns a single item with its UOMs
func (h *ItemHandler) GetByID(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		h.BadRequest(c, "invalid item id")
		return
	}

	it, err := h.itemService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, it)
}

// Update updates an item's basic information
func (h *ItemHandler) Update(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		h.BadRequest(c, "invalid item id")
		return
	}

	var input appitem.UpdateItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.ValidationError(c, err)
		return
	}

	it, err := h.itemService.Update(c.Request.Context(), id, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, it)
}

// Delete removes an item that has no ledger history
func (h *ItemHandler) Delete(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		h.BadRequest(c, "invalid item id")
		return
	}

	if err := h.itemService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// AddUOM adds an alternative UOM to an item
func (h *ItemHandler) AddUOM(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		h.BadRequest(c, "invalid item id")
		return
	}

	var input appitem.UOMInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.ValidationError(c, err)
		return
	}

	it, err := h.itemService.AddUOM(c.Request.Context(), id, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, it)
}

// UpdateUOM updates one of an item's UOMs
func (h *ItemHandler) UpdateUOM(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		h.BadRequest(c, "invalid item id")
		return
	}
	uomID, err := parseID(c, "uomId")
	if err != nil {
		h.BadRequest(c, "invalid uom id")
		return
	}

	var input appitem.UOMInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.ValidationError(c, err)
		return
	}

	it, err := h.itemService.UpdateUOM(c.Request.Context(), id, uomID, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, it)
}

// RemoveUOM removes a non-base UOM from an item
func (h *ItemHandler) RemoveUOM(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		h.BadRequest(c, "invalid item id")
		return
	}
	uomID, err := parseID(c, "uomId")
	if err != nil {
		h.BadRequest(c, "invalid uom id")
		return
	}

	it, err := h.itemService.RemoveUOM(c.Request.Context(), id, uomID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, it)
}

// SetBaseUOM promotes one of an item's UOMs to base
func (h *ItemHandler) SetBaseUOM(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		h.BadRequest(c, "invalid item id")
		return
	}
	uomID, err := parseID(c, "uomId")
	if err != nil {
		h.BadRequest(c, "invalid uom id")
		return
	}

	it, err := h.itemService.SetBaseUOM(c.Request.Context(), id, uomID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, it)
}

// SetOpeningBalance seeds an item's ledger before trading starts
func (h *ItemHandler) SetOpeningBalance(c *gin.Context) {
	var input appitem.OpeningBalanceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.ValidationError(c, err)
		return
	}

	it, err := h.itemService.SetOpeningBalance(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, it)
}

// AdjustStock corrects an item's ledger to a counted quantity
func (h *ItemHandler) AdjustStock(c *gin.Context) {
	var input appitem.AdjustStockInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.ValidationError(c, err)
		return
	}

	it, err := h.itemService.AdjustStock(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, it)
}

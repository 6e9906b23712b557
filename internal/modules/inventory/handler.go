package inventory

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"autoshop/internal/pkg/response"
	"autoshop/internal/pkg/validator"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/inventory", h.ListItems)
	rg.POST("/inventory", h.CreateItem)
	rg.GET("/inventory/low-stock", h.LowStock)
	rg.GET("/inventory/:id", h.GetItem)
	rg.PUT("/inventory/:id", h.UpdateItem)
	rg.GET("/inventory/:id/transactions", h.ListTransactions)
}

// RegisterAdminRoutes mounts the stock mutations that are gated to
// admin/manager roles.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.POST("/inventory/:id/restock", h.Restock)
	rg.POST("/inventory/:id/adjust", h.Adjust)
}

func (h *Handler) CreateItem(c *gin.Context) {
	var req CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", validator.Fields(err))
		return
	}

	item, err := h.service.CreateItem(c.Request.Context(), req)
	if err != nil {
		writeInventoryError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, item)
}

func (h *Handler) GetItem(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	item, err := h.service.GetItem(c.Request.Context(), id)
	if err != nil {
		writeInventoryError(c, err)
		return
	}
	response.Success(c, http.StatusOK, item)
}

func (h *Handler) ListItems(c *gin.Context) {
	limit, offset := pagination(c)
	activeOnly := c.Query("active") == "true"

	items, err := h.service.ListItems(c.Request.Context(), c.Query("search"), activeOnly, limit, offset)
	if err != nil {
		writeInventoryError(c, err)
		return
	}
	response.Success(c, http.StatusOK, items)
}

func (h *Handler) UpdateItem(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", validator.Fields(err))
		return
	}

	item, err := h.service.UpdateItem(c.Request.Context(), id, req)
	if err != nil {
		writeInventoryError(c, err)
		return
	}
	response.Success(c, http.StatusOK, item)
}

func (h *Handler) Restock(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req RestockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", validator.Fields(err))
		return
	}

	item, err := h.service.Restock(c.Request.Context(), id, req.Quantity, req.Note)
	if err != nil {
		writeInventoryError(c, err)
		return
	}
	response.Success(c, http.StatusOK, item)
}

func (h *Handler) Adjust(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req AdjustRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", validator.Fields(err))
		return
	}

	item, err := h.service.AdjustQuantity(c.Request.Context(), id, req.Quantity, req.Note)
	if err != nil {
		writeInventoryError(c, err)
		return
	}
	response.Success(c, http.StatusOK, item)
}

func (h *Handler) LowStock(c *gin.Context) {
	items, err := h.service.LowStockReport(c.Request.Context())
	if err != nil {
		writeInventoryError(c, err)
		return
	}
	response.Success(c, http.StatusOK, items)
}

func (h *Handler) ListTransactions(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	limit, offset := pagination(c)
	txns, err := h.service.ListTransactions(c.Request.Context(), id, limit, offset)
	if err != nil {
		writeInventoryError(c, err)
		return
	}
	response.Success(c, http.StatusOK, txns)
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid inventory item ID")
		return 0, false
	}
	return id, true
}

func pagination(c *gin.Context) (limit, offset int) {
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	if limit < 0 {
		limit = 0
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

func writeInventoryError(c *gin.Context, err error) {
	var stockErr *InsufficientStockError
	switch {
	case errors.As(err, &stockErr):
		response.ErrorWithDetails(c, http.StatusConflict, "INSUFFICIENT_INVENTORY", stockErr.Error(), gin.H{
			"requested": stockErr.Requested,
			"available": stockErr.Available,
		})
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid inventory request")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Inventory item not found")
	case errors.Is(err, ErrDuplicateSKU):
		response.Error(c, http.StatusConflict, "DUPLICATE_SKU", "An item with this SKU already exists")
	case errors.Is(err, ErrInactiveItem):
		response.Error(c, http.StatusConflict, "INACTIVE_ITEM", "Inventory item is inactive")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Inventory operation failed")
	}
}

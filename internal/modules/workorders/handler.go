package workorders

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"autoshop/internal/domain"
	"autoshop/internal/modules/inventory"
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
	rg.GET("/work-orders", h.List)
	rg.POST("/work-orders", h.Create)
	rg.GET("/work-orders/:id", h.Get)
	rg.PUT("/work-orders/:id", h.Update)
	rg.DELETE("/work-orders/:id", h.Delete)
	rg.PUT("/work-orders/:id/status", h.UpdateStatus)
	rg.POST("/work-orders/:id/parts", h.AddPart)
	rg.PUT("/work-orders/:id/parts/:partId", h.UpdatePart)
	rg.DELETE("/work-orders/:id/parts/:partId", h.RemovePart)
	rg.POST("/work-orders/:id/services", h.AddService)
	rg.PUT("/work-orders/:id/services/:serviceId", h.UpdateService)
	rg.DELETE("/work-orders/:id/services/:serviceId", h.RemoveService)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", validator.Fields(err))
		return
	}

	order, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		writeOrderError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, order)
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}

	order, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		writeOrderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, order)
}

func (h *Handler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	clientID, _ := strconv.ParseInt(c.Query("client_id"), 10, 64)
	vehicleID, _ := strconv.ParseInt(c.Query("vehicle_id"), 10, 64)
	status := domain.WorkOrderStatus(c.Query("status"))

	orders, err := h.service.List(c.Request.Context(), status, clientID, vehicleID, limit, offset)
	if err != nil {
		writeOrderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, orders)
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}

	var req UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", validator.Fields(err))
		return
	}

	order, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		writeOrderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, order)
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", validator.Fields(err))
		return
	}

	order, err := h.service.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		writeOrderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, order)
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		writeOrderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) AddPart(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}

	var req AddPartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", validator.Fields(err))
		return
	}

	res, err := h.service.AddPart(c.Request.Context(), id, req)
	if err != nil {
		writeOrderError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, res)
}

func (h *Handler) UpdatePart(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}
	partID, ok := pathID(c, "partId")
	if !ok {
		return
	}

	var req UpdatePartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", validator.Fields(err))
		return
	}

	res, err := h.service.UpdatePart(c.Request.Context(), id, partID, req)
	if err != nil {
		writeOrderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}

func (h *Handler) RemovePart(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}
	partID, ok := pathID(c, "partId")
	if !ok {
		return
	}

	if err := h.service.RemovePart(c.Request.Context(), id, partID); err != nil {
		writeOrderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) AddService(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}

	var req AddServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", validator.Fields(err))
		return
	}

	svc, err := h.service.AddService(c.Request.Context(), id, req)
	if err != nil {
		writeOrderError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, svc)
}

func (h *Handler) UpdateService(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}
	serviceID, ok := pathID(c, "serviceId")
	if !ok {
		return
	}

	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", validator.Fields(err))
		return
	}

	svc, err := h.service.UpdateService(c.Request.Context(), id, serviceID, req)
	if err != nil {
		writeOrderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, svc)
}

func (h *Handler) RemoveService(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}
	serviceID, ok := pathID(c, "serviceId")
	if !ok {
		return
	}

	if err := h.service.RemoveService(c.Request.Context(), id, serviceID); err != nil {
		writeOrderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func orderID(c *gin.Context) (int64, bool) {
	return pathID(c, "id")
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid "+name)
		return 0, false
	}
	return id, true
}

func writeOrderError(c *gin.Context, err error) {
	var stockErr *inventory.InsufficientStockError
	switch {
	case errors.As(err, &stockErr):
		response.ErrorWithDetails(c, http.StatusConflict, "INSUFFICIENT_INVENTORY", stockErr.Error(), gin.H{
			"requested": stockErr.Requested,
			"available": stockErr.Available,
		})
	case errors.Is(err, ErrValidation), errors.Is(err, inventory.ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid work order request")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Work order not found")
	case errors.Is(err, ErrClientNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Client not found")
	case errors.Is(err, ErrVehicleNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Vehicle not found")
	case errors.Is(err, ErrPartNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Work order part not found")
	case errors.Is(err, ErrServiceNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Work order service not found")
	case errors.Is(err, ErrVehicleMismatch):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Vehicle does not belong to the client")
	case errors.Is(err, ErrInvalidTransition):
		response.Error(c, http.StatusConflict, "INVALID_TRANSITION", "Status transition is not allowed")
	case errors.Is(err, ErrInvoiceRequired):
		response.Error(c, http.StatusConflict, "INVOICE_REQUIRED", "Work order cannot be completed without an invoice")
	case errors.Is(err, ErrOrderNotOpen):
		response.Error(c, http.StatusConflict, "ORDER_CLOSED", "Work order is closed")
	case errors.Is(err, ErrNotDraft):
		response.Error(c, http.StatusConflict, "NOT_DRAFT", "Only draft work orders can be deleted")
	case errors.Is(err, inventory.ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Inventory item not found")
	case errors.Is(err, inventory.ErrInactiveItem):
		response.Error(c, http.StatusConflict, "INACTIVE_ITEM", "Inventory item is inactive")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Work order operation failed")
	}
}

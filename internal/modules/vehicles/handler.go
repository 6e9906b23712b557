package vehicles

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
	rg.GET("/vehicles", h.List)
	rg.POST("/vehicles", h.Create)
	rg.GET("/vehicles/:id", h.Get)
	rg.PUT("/vehicles/:id", h.Update)
	rg.DELETE("/vehicles/:id", h.Delete)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", validator.Fields(err))
		return
	}

	vehicle, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		writeVehicleError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, vehicle)
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	vehicle, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		writeVehicleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, vehicle)
}

func (h *Handler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	clientID, _ := strconv.ParseInt(c.Query("client_id"), 10, 64)

	list, err := h.service.List(c.Request.Context(), clientID, limit, offset)
	if err != nil {
		writeVehicleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, list)
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", validator.Fields(err))
		return
	}

	vehicle, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		writeVehicleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, vehicle)
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		writeVehicleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid vehicle ID")
		return 0, false
	}
	return id, true
}

func writeVehicleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid vehicle data")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Vehicle not found")
	case errors.Is(err, ErrClientNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Client not found")
	case errors.Is(err, ErrDuplicatePlate):
		response.Error(c, http.StatusConflict, "DUPLICATE_PLATE", "A vehicle with this plate already exists")
	case errors.Is(err, ErrHasOpenOrders):
		response.Error(c, http.StatusConflict, "VEHICLE_HAS_OPEN_ORDERS", "Vehicle cannot be deleted while it has open work orders")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Vehicle operation failed")
	}
}

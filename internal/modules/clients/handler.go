package clients

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
	rg.GET("/clients", h.List)
	rg.POST("/clients", h.Create)
	rg.GET("/clients/:id", h.Get)
	rg.PUT("/clients/:id", h.Update)
	rg.DELETE("/clients/:id", h.Delete)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", validator.Fields(err))
		return
	}

	client, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		writeClientError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, client)
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	client, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		writeClientError(c, err)
		return
	}
	response.Success(c, http.StatusOK, client)
}

func (h *Handler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	list, err := h.service.List(c.Request.Context(), c.Query("search"), limit, offset)
	if err != nil {
		writeClientError(c, err)
		return
	}
	response.Success(c, http.StatusOK, list)
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", validator.Fields(err))
		return
	}

	client, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		writeClientError(c, err)
		return
	}
	response.Success(c, http.StatusOK, client)
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		writeClientError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid client ID")
		return 0, false
	}
	return id, true
}

func writeClientError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid client data")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Client not found")
	case errors.Is(err, ErrHasVehicles):
		response.Error(c, http.StatusConflict, "CLIENT_HAS_VEHICLES", "Client cannot be deleted while owning vehicles")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Client operation failed")
	}
}

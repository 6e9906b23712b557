package invoices

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"autoshop/internal/domain"
	"autoshop/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/invoices", h.List)
	rg.GET("/invoices/:id", h.Get)
	rg.POST("/invoices/:id/cancel", h.Cancel)
	rg.POST("/work-orders/:id/invoice", h.Generate)
}

func (h *Handler) Generate(c *gin.Context) {
	workOrderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || workOrderID <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid work order ID")
		return
	}

	inv, err := h.service.Generate(c.Request.Context(), workOrderID)
	if err != nil {
		writeInvoiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, inv)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid invoice ID")
		return
	}

	inv, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		writeInvoiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, inv)
}

func (h *Handler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	clientID, _ := strconv.ParseInt(c.Query("client_id"), 10, 64)
	status := domain.InvoiceStatus(c.Query("status"))

	list, err := h.service.List(c.Request.Context(), status, clientID, limit, offset)
	if err != nil {
		writeInvoiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, list)
}

func (h *Handler) Cancel(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid invoice ID")
		return
	}

	inv, err := h.service.Cancel(c.Request.Context(), id)
	if err != nil {
		writeInvoiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, inv)
}

func writeInvoiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid invoice request")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Invoice not found")
	case errors.Is(err, ErrOrderNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Work order not found")
	case errors.Is(err, ErrOrderNotBilled):
		response.Error(c, http.StatusConflict, "ORDER_NOT_BILLABLE", "Work order cannot be invoiced in its current status")
	case errors.Is(err, ErrAlreadyExists):
		response.Error(c, http.StatusConflict, "INVOICE_EXISTS", "Work order already has an invoice")
	case errors.Is(err, ErrInvalidStatus):
		response.Error(c, http.StatusConflict, "INVALID_STATUS", "Invoice status change is not allowed")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Invoice operation failed")
	}
}

package payments

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
	rg.GET("/payments", h.List)
	rg.POST("/payments", h.Create)
	rg.GET("/payments/:id", h.Get)
	rg.POST("/payments/:id/refund", h.Refund)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", validator.Fields(err))
		return
	}

	payment, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		writePaymentError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, payment)
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	payment, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		writePaymentError(c, err)
		return
	}
	response.Success(c, http.StatusOK, payment)
}

func (h *Handler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	invoiceID, _ := strconv.ParseInt(c.Query("invoice_id"), 10, 64)

	list, err := h.service.List(c.Request.Context(), invoiceID, limit, offset)
	if err != nil {
		writePaymentError(c, err)
		return
	}
	response.Success(c, http.StatusOK, list)
}

func (h *Handler) Refund(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	payment, err := h.service.Refund(c.Request.Context(), id)
	if err != nil {
		writePaymentError(c, err)
		return
	}
	response.Success(c, http.StatusOK, payment)
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid payment ID")
		return 0, false
	}
	return id, true
}

func writePaymentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid payment data")
	case errors.Is(err, ErrOverpayment):
		response.Error(c, http.StatusBadRequest, "OVERPAYMENT", "Payment exceeds the outstanding invoice balance")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Payment not found")
	case errors.Is(err, ErrInvoiceNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Invoice not found")
	case errors.Is(err, ErrInvoiceClosed):
		response.Error(c, http.StatusConflict, "INVOICE_CLOSED", "Invoice does not accept payments")
	case errors.Is(err, ErrAlreadyRefunded):
		response.Error(c, http.StatusConflict, "ALREADY_REFUNDED", "Payment was already refunded")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Payment operation failed")
	}
}

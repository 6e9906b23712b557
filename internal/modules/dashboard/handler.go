package dashboard

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"autoshop/internal/domain"
	"autoshop/internal/pkg/response"
)

type LowStockLister interface {
	LowStockReport(ctx context.Context) ([]domain.InventoryItem, error)
}

type OverdueLister interface {
	ListOverdue(ctx context.Context) ([]domain.Invoice, error)
}

type Handler struct {
	service  *Service
	lowStock LowStockLister
	overdue  OverdueLister
}

func NewHandler(service *Service, lowStock LowStockLister, overdue OverdueLister) *Handler {
	return &Handler{service: service, lowStock: lowStock, overdue: overdue}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/dashboard/stats", h.Stats)
	rg.GET("/dashboard/revenue-trend", h.RevenueTrend)
	rg.GET("/dashboard/low-stock", h.LowStock)
	rg.GET("/dashboard/overdue-invoices", h.OverdueInvoices)
}

func (h *Handler) Stats(c *gin.Context) {
	period := Period(c.DefaultQuery("period", string(PeriodMonth)))

	stats, err := h.service.Stats(c.Request.Context(), period)
	if err != nil {
		writeDashboardError(c, err)
		return
	}
	response.Success(c, http.StatusOK, stats)
}

func (h *Handler) RevenueTrend(c *gin.Context) {
	period := Period(c.DefaultQuery("period", string(PeriodMonth)))

	points, err := h.service.RevenueTrend(c.Request.Context(), period)
	if err != nil {
		writeDashboardError(c, err)
		return
	}
	response.Success(c, http.StatusOK, points)
}

func (h *Handler) LowStock(c *gin.Context) {
	items, err := h.lowStock.LowStockReport(c.Request.Context())
	if err != nil {
		writeDashboardError(c, err)
		return
	}
	response.Success(c, http.StatusOK, items)
}

func (h *Handler) OverdueInvoices(c *gin.Context) {
	invoices, err := h.overdue.ListOverdue(c.Request.Context())
	if err != nil {
		writeDashboardError(c, err)
		return
	}
	response.Success(c, http.StatusOK, invoices)
}

func writeDashboardError(c *gin.Context, err error) {
	if errors.Is(err, ErrInvalidPeriod) {
		response.Error(c, http.StatusBadRequest, "INVALID_PERIOD", "Period must be today, week, month or year")
		return
	}
	response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Dashboard query failed")
}

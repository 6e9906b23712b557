package reports

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"autoshop/internal/domain"
	"autoshop/internal/pkg/response"
)

// Handler exports the inventory ledger and the invoice book as XLSX
// workbooks for the back office.
type Handler struct {
	db *gorm.DB
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/reports/inventory.xlsx", h.ExportInventory)
	rg.GET("/reports/invoices.xlsx", h.ExportInvoices)
}

func (h *Handler) ExportInventory(c *gin.Context) {
	q := h.db.WithContext(c.Request.Context()).Model(&domain.InventoryItem{}).Order("sku")
	if c.Query("low_stock") == "true" {
		q = q.Where("active = ? AND quantity <= min_stock", true)
	}

	var items []domain.InventoryItem
	if err := q.Find(&items).Error; err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Export failed")
		return
	}

	headers := []string{"SKU", "Name", "Category", "Quantity", "Reserved", "Available", "Min Stock", "Unit Price", "Active"}
	data := make([][]string, 0, len(items))
	for _, it := range items {
		data = append(data, []string{
			it.SKU, it.Name, it.Category,
			strconv.Itoa(it.Quantity), strconv.Itoa(it.Reserved), strconv.Itoa(it.Available()),
			strconv.Itoa(it.MinStock), fmt.Sprintf("%.2f", it.UnitPrice), strconv.FormatBool(it.Active),
		})
	}

	writeWorkbook(c, "Inventory", headers, data)
}

func (h *Handler) ExportInvoices(c *gin.Context) {
	q := h.db.WithContext(c.Request.Context()).Model(&domain.Invoice{}).Order("id")
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	var invoices []domain.Invoice
	if err := q.Find(&invoices).Error; err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Export failed")
		return
	}

	headers := []string{"Invoice", "Work Order", "Client", "Status", "Subtotal", "Tax", "Total", "Paid", "Issued", "Due"}
	data := make([][]string, 0, len(invoices))
	for _, inv := range invoices {
		data = append(data, []string{
			inv.InvoiceNumber,
			strconv.FormatInt(inv.WorkOrderID, 10),
			strconv.FormatInt(inv.ClientID, 10),
			string(inv.Status),
			fmt.Sprintf("%.2f", inv.Subtotal),
			fmt.Sprintf("%.2f", inv.TaxAmount),
			fmt.Sprintf("%.2f", inv.Total),
			fmt.Sprintf("%.2f", inv.AmountPaid),
			inv.IssueDate.Format(time.DateOnly),
			inv.DueDate.Format(time.DateOnly),
		})
	}

	writeWorkbook(c, "Invoices", headers, data)
}

func writeWorkbook(c *gin.Context, sheetName string, headers []string, data [][]string) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Export failed")
		return
	}
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#D3D3D3"}, Pattern: 1},
	})
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Export failed")
		return
	}

	for i, header := range headers {
		cell := fmt.Sprintf("%s1", string(rune('A'+i)))
		f.SetCellValue(sheetName, cell, header)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	for rowIdx, row := range data {
		for colIdx, value := range row {
			cell := fmt.Sprintf("%s%d", string(rune('A'+colIdx)), rowIdx+2)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	for i := range headers {
		col := string(rune('A' + i))
		f.SetColWidth(sheetName, col, col, 15)
	}

	f.DeleteSheet("Sheet1")

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.xlsx", strings.ToLower(sheetName)))
	c.Status(http.StatusOK)

	if err := f.Write(c.Writer); err != nil {
		return
	}
}

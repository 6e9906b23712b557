package domain

import "time"

type InvoiceStatus string

const (
	InvoiceDraft         InvoiceStatus = "draft"
	InvoiceSent          InvoiceStatus = "sent"
	InvoicePaid          InvoiceStatus = "paid"
	InvoicePartiallyPaid InvoiceStatus = "partially_paid"
	InvoiceOverdue       InvoiceStatus = "overdue"
	InvoiceCancelled     InvoiceStatus = "cancelled"
)

type Invoice struct {
	ID            int64         `gorm:"column:id;primaryKey" json:"id"`
	InvoiceNumber string        `gorm:"column:invoice_number;size:32;uniqueIndex;not null" json:"invoice_number"`
	WorkOrderID   int64         `gorm:"column:work_order_id;uniqueIndex;not null" json:"work_order_id"`
	ClientID      int64         `gorm:"column:client_id;index;not null" json:"client_id"`
	Status        InvoiceStatus `gorm:"column:status;size:32;not null;default:'draft'" json:"status"`
	Subtotal      float64       `gorm:"column:subtotal;not null" json:"subtotal"`
	TaxRate       float64       `gorm:"column:tax_rate;not null" json:"tax_rate"`
	TaxAmount     float64       `gorm:"column:tax_amount;not null" json:"tax_amount"`
	Total         float64       `gorm:"column:total;not null" json:"total"`
	AmountPaid    float64       `gorm:"column:amount_paid;not null;default:0" json:"amount_paid"`
	IssueDate     time.Time     `gorm:"column:issue_date;not null" json:"issue_date"`
	DueDate       time.Time     `gorm:"column:due_date;not null" json:"due_date"`
	CreatedAt     time.Time     `gorm:"column:created_at" json:"created_at"`
	UpdatedAt     time.Time     `gorm:"column:updated_at" json:"updated_at"`
}

func (Invoice) TableName() string { return "invoices" }

// Overdue reports whether the invoice is unpaid past its due date.
func (i Invoice) Overdue(now time.Time) bool {
	switch i.Status {
	case InvoiceSent, InvoicePartiallyPaid, InvoiceOverdue:
		return now.After(i.DueDate)
	}
	return false
}

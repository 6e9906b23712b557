package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"autoshop/internal/domain"
)

type InvoiceRepository struct {
	db *gorm.DB
}

func NewInvoiceRepository(db *gorm.DB) *InvoiceRepository {
	return &InvoiceRepository{db: db}
}

func (r *InvoiceRepository) Create(ctx context.Context, inv *domain.Invoice) error {
	return r.db.WithContext(ctx).Create(inv).Error
}

func (r *InvoiceRepository) GetByID(ctx context.Context, id int64) (*domain.Invoice, error) {
	var inv domain.Invoice
	if err := r.db.WithContext(ctx).First(&inv, id).Error; err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *InvoiceRepository) GetByWorkOrderID(ctx context.Context, workOrderID int64) (*domain.Invoice, error) {
	var inv domain.Invoice
	if err := r.db.WithContext(ctx).Where("work_order_id = ?", workOrderID).First(&inv).Error; err != nil {
		return nil, err
	}
	return &inv, nil
}

// ExistsForWorkOrder backs the completion gate on work orders.
func (r *InvoiceRepository) ExistsForWorkOrder(ctx context.Context, workOrderID int64) (bool, error) {
	var cnt int64
	err := r.db.WithContext(ctx).
		Model(&domain.Invoice{}).
		Where("work_order_id = ?", workOrderID).
		Count(&cnt).Error
	return cnt > 0, err
}

func (r *InvoiceRepository) List(ctx context.Context, status domain.InvoiceStatus, clientID int64, limit, offset int) ([]domain.Invoice, error) {
	q := r.db.WithContext(ctx).Model(&domain.Invoice{}).Order("id DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if clientID > 0 {
		q = q.Where("client_id = ?", clientID)
	}
	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}

	var invoices []domain.Invoice
	if err := q.Find(&invoices).Error; err != nil {
		return nil, err
	}
	return invoices, nil
}

func (r *InvoiceRepository) Update(ctx context.Context, inv *domain.Invoice) error {
	return r.db.WithContext(ctx).Save(inv).Error
}

// ListOverdue returns unpaid invoices past due and flips their persisted
// status to overdue as a side effect of the sweep.
func (r *InvoiceRepository) ListOverdue(ctx context.Context, now time.Time) ([]domain.Invoice, error) {
	err := r.db.WithContext(ctx).
		Model(&domain.Invoice{}).
		Where("status IN ? AND due_date < ?",
			[]domain.InvoiceStatus{domain.InvoiceSent, domain.InvoicePartiallyPaid}, now).
		Update("status", domain.InvoiceOverdue).Error
	if err != nil {
		return nil, err
	}

	var invoices []domain.Invoice
	err = r.db.WithContext(ctx).
		Where("status = ?", domain.InvoiceOverdue).
		Order("due_date").
		Find(&invoices).Error
	if err != nil {
		return nil, err
	}
	return invoices, nil
}

// NextInvoiceNumber issues INV-<year>-<seq>; call inside the creating
// transaction.
func NextInvoiceNumber(tx *gorm.DB, year int) (string, error) {
	var cnt int64
	prefix := fmt.Sprintf("INV-%d-", year)
	if err := tx.Model(&domain.Invoice{}).
		Where("invoice_number LIKE ?", prefix+"%").
		Count(&cnt).Error; err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%06d", prefix, cnt+1), nil
}

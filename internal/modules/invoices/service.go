package invoices

import (
	"context"
	"errors"
	"math"
	"time"

	"gorm.io/gorm"

	"autoshop/internal/domain"
	"autoshop/internal/repository"
)

type InvoiceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Invoice, error)
	GetByWorkOrderID(ctx context.Context, workOrderID int64) (*domain.Invoice, error)
	List(ctx context.Context, status domain.InvoiceStatus, clientID int64, limit, offset int) ([]domain.Invoice, error)
	Update(ctx context.Context, inv *domain.Invoice) error
	ListOverdue(ctx context.Context, now time.Time) ([]domain.Invoice, error)
}

type OrderReader interface {
	GetByID(ctx context.Context, id int64) (*domain.WorkOrder, error)
}

type Service struct {
	db       *gorm.DB
	invoices InvoiceRepository
	orders   OrderReader
	taxRate  float64
	netDue   time.Duration
}

func NewService(db *gorm.DB, invoices InvoiceRepository, orders OrderReader, taxRate float64, netDueDays int) *Service {
	return &Service{
		db:       db,
		invoices: invoices,
		orders:   orders,
		taxRate:  taxRate,
		netDue:   time.Duration(netDueDays) * 24 * time.Hour,
	}
}

// Generate derives an invoice from a work order's current line totals.
// One invoice per order.
func (s *Service) Generate(ctx context.Context, workOrderID int64) (*domain.Invoice, error) {
	order, err := s.orders.GetByID(ctx, workOrderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	if order.Status == domain.OrderDraft || order.Status == domain.OrderCancelled {
		return nil, ErrOrderNotBilled
	}

	if _, err := s.invoices.GetByWorkOrderID(ctx, workOrderID); err == nil {
		return nil, ErrAlreadyExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	now := time.Now()
	subtotal := round2(order.TotalCost)
	tax := round2(subtotal * s.taxRate)

	inv := &domain.Invoice{
		WorkOrderID: workOrderID,
		ClientID:    order.ClientID,
		Status:      domain.InvoiceSent,
		Subtotal:    subtotal,
		TaxRate:     s.taxRate,
		TaxAmount:   tax,
		Total:       round2(subtotal + tax),
		IssueDate:   now,
		DueDate:     now.Add(s.netDue),
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		number, err := repository.NextInvoiceNumber(tx, now.Year())
		if err != nil {
			return err
		}
		inv.InvoiceNumber = number
		return tx.Create(inv).Error
	})
	if err != nil {
		return nil, err
	}
	return inv, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Invoice, error) {
	inv, err := s.invoices.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return inv, nil
}

func (s *Service) List(ctx context.Context, status domain.InvoiceStatus, clientID int64, limit, offset int) ([]domain.Invoice, error) {
	return s.invoices.List(ctx, status, clientID, limit, offset)
}

// Cancel voids an invoice that has not collected any payment.
func (s *Service) Cancel(ctx context.Context, id int64) (*domain.Invoice, error) {
	inv, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv.Status == domain.InvoicePaid || inv.Status == domain.InvoiceCancelled || inv.AmountPaid > 0 {
		return nil, ErrInvalidStatus
	}

	inv.Status = domain.InvoiceCancelled
	if err := s.invoices.Update(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

func (s *Service) ListOverdue(ctx context.Context) ([]domain.Invoice, error) {
	return s.invoices.ListOverdue(ctx, time.Now())
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

package payments

import (
	"context"
	"errors"
	"math"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"autoshop/internal/domain"
)

type PaymentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Payment, error)
	List(ctx context.Context, invoiceID int64, limit, offset int) ([]domain.Payment, error)
}

type CreatePaymentRequest struct {
	InvoiceID int64                `json:"invoice_id" binding:"required"`
	Amount    float64              `json:"amount" binding:"required,gt=0"`
	Method    domain.PaymentMethod `json:"method" binding:"required"`
	Reference string               `json:"reference"`
}

type Service struct {
	db       *gorm.DB
	payments PaymentRepository
}

func NewService(db *gorm.DB, payments PaymentRepository) *Service {
	return &Service{db: db, payments: payments}
}

// Create records a payment and settles it against the invoice in one
// transaction: amount_paid and invoice status move together with the
// payment row.
func (s *Service) Create(ctx context.Context, req CreatePaymentRequest) (*domain.Payment, error) {
	if !req.Method.Valid() {
		return nil, ErrValidation
	}

	payment := &domain.Payment{
		InvoiceID: req.InvoiceID,
		Amount:    round2(req.Amount),
		Method:    req.Method,
		Status:    domain.PaymentCompleted,
		Reference: req.Reference,
		PaidAt:    time.Now(),
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var inv domain.Invoice
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&inv, req.InvoiceID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInvoiceNotFound
			}
			return err
		}

		switch inv.Status {
		case domain.InvoiceSent, domain.InvoicePartiallyPaid, domain.InvoiceOverdue:
		default:
			return ErrInvoiceClosed
		}

		outstanding := round2(inv.Total - inv.AmountPaid)
		if payment.Amount > outstanding {
			return ErrOverpayment
		}

		if err := tx.Create(payment).Error; err != nil {
			return err
		}

		inv.AmountPaid = round2(inv.AmountPaid + payment.Amount)
		status := domain.InvoicePartiallyPaid
		if inv.AmountPaid >= inv.Total {
			status = domain.InvoicePaid
		}
		return tx.Model(&domain.Invoice{}).
			Where("id = ?", inv.ID).
			Updates(map[string]any{
				"amount_paid": inv.AmountPaid,
				"status":      status,
			}).Error
	})
	if err != nil {
		return nil, err
	}
	return payment, nil
}

// Refund reverses a completed payment, reopening the invoice balance.
func (s *Service) Refund(ctx context.Context, id int64) (*domain.Payment, error) {
	var out domain.Payment

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&out, id).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if out.Status == domain.PaymentRefunded {
			return ErrAlreadyRefunded
		}

		var inv domain.Invoice
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&inv, out.InvoiceID).Error; err != nil {
			return err
		}

		out.Status = domain.PaymentRefunded
		if err := tx.Model(&domain.Payment{}).
			Where("id = ?", out.ID).
			Update("status", domain.PaymentRefunded).Error; err != nil {
			return err
		}

		inv.AmountPaid = round2(inv.AmountPaid - out.Amount)
		if inv.AmountPaid < 0 {
			inv.AmountPaid = 0
		}
		status := domain.InvoiceSent
		if inv.AmountPaid > 0 {
			status = domain.InvoicePartiallyPaid
		}
		return tx.Model(&domain.Invoice{}).
			Where("id = ?", inv.ID).
			Updates(map[string]any{
				"amount_paid": inv.AmountPaid,
				"status":      status,
			}).Error
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Payment, error) {
	p, err := s.payments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (s *Service) List(ctx context.Context, invoiceID int64, limit, offset int) ([]domain.Payment, error) {
	return s.payments.List(ctx, invoiceID, limit, offset)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

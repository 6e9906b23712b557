package repository

import (
	"context"

	"gorm.io/gorm"

	"autoshop/internal/domain"
)

type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) GetByID(ctx context.Context, id int64) (*domain.Payment, error) {
	var p domain.Payment
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PaymentRepository) List(ctx context.Context, invoiceID int64, limit, offset int) ([]domain.Payment, error) {
	q := r.db.WithContext(ctx).Model(&domain.Payment{}).Order("id DESC")
	if invoiceID > 0 {
		q = q.Where("invoice_id = ?", invoiceID)
	}
	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}

	var payments []domain.Payment
	if err := q.Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

package domain

import "time"

type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "cash"
	PaymentCard     PaymentMethod = "card"
	PaymentTransfer PaymentMethod = "transfer"
	PaymentCheck    PaymentMethod = "check"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentTransfer, PaymentCheck:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentCompleted PaymentStatus = "completed"
	PaymentPending   PaymentStatus = "pending"
	PaymentRefunded  PaymentStatus = "refunded"
)

type Payment struct {
	ID        int64         `gorm:"column:id;primaryKey" json:"id"`
	InvoiceID int64         `gorm:"column:invoice_id;index;not null" json:"invoice_id"`
	Amount    float64       `gorm:"column:amount;not null" json:"amount"`
	Method    PaymentMethod `gorm:"column:method;size:16;not null" json:"method"`
	Status    PaymentStatus `gorm:"column:status;size:16;not null;default:'completed'" json:"status"`
	Reference string        `gorm:"column:reference;size:64" json:"reference,omitempty"`
	PaidAt    time.Time     `gorm:"column:paid_at;not null" json:"paid_at"`
	CreatedAt time.Time     `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time     `gorm:"column:updated_at" json:"updated_at"`
}

func (Payment) TableName() string { return "payments" }

package payments

import "errors"

var (
	ErrValidation      = errors.New("validation error")
	ErrNotFound        = errors.New("payment not found")
	ErrInvoiceNotFound = errors.New("invoice not found")
	ErrInvoiceClosed   = errors.New("invoice does not accept payments")
	ErrOverpayment     = errors.New("payment exceeds outstanding balance")
	ErrAlreadyRefunded = errors.New("payment already refunded")
)

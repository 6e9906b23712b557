package invoices

import "errors"

var (
	ErrValidation     = errors.New("validation error")
	ErrNotFound       = errors.New("invoice not found")
	ErrOrderNotFound  = errors.New("work order not found")
	ErrOrderNotBilled = errors.New("work order cannot be invoiced in its current status")
	ErrAlreadyExists  = errors.New("work order already has an invoice")
	ErrInvalidStatus  = errors.New("invalid invoice status change")
)

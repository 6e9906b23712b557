package workorders

import "errors"

var (
	ErrValidation        = errors.New("validation error")
	ErrNotFound          = errors.New("work order not found")
	ErrClientNotFound    = errors.New("client not found")
	ErrVehicleNotFound   = errors.New("vehicle not found")
	ErrVehicleMismatch   = errors.New("vehicle does not belong to client")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrInvoiceRequired   = errors.New("work order has no invoice")
	ErrOrderNotOpen      = errors.New("work order is closed")
	ErrNotDraft          = errors.New("work order is not in draft")
	ErrPartNotFound      = errors.New("work order part not found")
	ErrServiceNotFound   = errors.New("work order service not found")
)

package vehicles

import "errors"

var (
	ErrValidation     = errors.New("validation error")
	ErrNotFound       = errors.New("vehicle not found")
	ErrClientNotFound = errors.New("client not found")
	ErrDuplicatePlate = errors.New("plate already registered")
	ErrHasOpenOrders  = errors.New("vehicle has open work orders")
)

package clients

import "errors"

var (
	ErrValidation  = errors.New("validation error")
	ErrNotFound    = errors.New("client not found")
	ErrHasVehicles = errors.New("client still owns vehicles")
)

package inventory

import (
	"errors"
	"fmt"
)

var (
	ErrValidation   = errors.New("validation error")
	ErrNotFound     = errors.New("inventory item not found")
	ErrDuplicateSKU = errors.New("sku already exists")
	ErrInactiveItem = errors.New("inventory item is inactive")
)

// InsufficientStockError reports requested vs available amounts for a
// reservation that would overcommit the item.
type InsufficientStockError struct {
	ItemID    int64
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient inventory for item %d: requested %d, available %d",
		e.ItemID, e.Requested, e.Available)
}

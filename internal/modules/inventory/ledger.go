package inventory

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"autoshop/internal/domain"
)

// Ledger primitives. Each one locks the item row, checks the counters,
// applies the mutation, and appends a ledger row — all on the caller's
// transaction, so a part-line insert and its reservation commit or roll
// back together.

func lockItem(tx *gorm.DB, itemID int64, item *domain.InventoryItem) error {
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(item, itemID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func saveCounters(tx *gorm.DB, item *domain.InventoryItem) error {
	return tx.Model(&domain.InventoryItem{}).
		Where("id = ?", item.ID).
		Updates(map[string]any{
			"quantity": item.Quantity,
			"reserved": item.Reserved,
		}).Error
}

func appendLedger(tx *gorm.DB, itemID int64, typ domain.InventoryTransactionType, qty int, ref, note string) error {
	return tx.Create(&domain.InventoryTransaction{
		InventoryItemID: itemID,
		Type:            typ,
		Quantity:        qty,
		Reference:       ref,
		Note:            note,
	}).Error
}

// Reserve places a soft hold of qty units on the item. Fails with
// *InsufficientStockError when available stock does not cover it.
func Reserve(tx *gorm.DB, itemID int64, qty int, ref string) (*domain.InventoryItem, error) {
	if qty <= 0 {
		return nil, ErrValidation
	}

	var item domain.InventoryItem
	if err := lockItem(tx, itemID, &item); err != nil {
		return nil, err
	}
	if !item.Active {
		return nil, ErrInactiveItem
	}
	if item.Available() < qty {
		return nil, &InsufficientStockError{ItemID: itemID, Requested: qty, Available: item.Available()}
	}

	item.Reserved += qty
	if err := saveCounters(tx, &item); err != nil {
		return nil, err
	}
	if err := appendLedger(tx, itemID, domain.TxnReserve, qty, ref, ""); err != nil {
		return nil, err
	}
	return &item, nil
}

// AdjustReservation moves an existing hold from oldQty to newQty.
func AdjustReservation(tx *gorm.DB, itemID int64, oldQty, newQty int, ref string) (*domain.InventoryItem, error) {
	if oldQty <= 0 || newQty <= 0 {
		return nil, ErrValidation
	}

	var item domain.InventoryItem
	if err := lockItem(tx, itemID, &item); err != nil {
		return nil, err
	}
	if item.Available()+oldQty < newQty {
		return nil, &InsufficientStockError{
			ItemID:    itemID,
			Requested: newQty,
			Available: item.Available() + oldQty,
		}
	}

	delta := newQty - oldQty
	item.Reserved += delta
	if err := saveCounters(tx, &item); err != nil {
		return nil, err
	}

	typ := domain.TxnReserve
	if delta < 0 {
		typ = domain.TxnRelease
		delta = -delta
	}
	if delta == 0 {
		return &item, nil
	}
	if err := appendLedger(tx, itemID, typ, delta, ref, "reservation adjusted"); err != nil {
		return nil, err
	}
	return &item, nil
}

// Release returns qty reserved units to the available pool.
func Release(tx *gorm.DB, itemID int64, qty int, ref string) (*domain.InventoryItem, error) {
	if qty <= 0 {
		return nil, ErrValidation
	}

	var item domain.InventoryItem
	if err := lockItem(tx, itemID, &item); err != nil {
		return nil, err
	}
	if item.Reserved < qty {
		// Releasing more than is held would drive the counter negative.
		return nil, ErrValidation
	}

	item.Reserved -= qty
	if err := saveCounters(tx, &item); err != nil {
		return nil, err
	}
	if err := appendLedger(tx, itemID, domain.TxnRelease, qty, ref, ""); err != nil {
		return nil, err
	}
	return &item, nil
}

// Deduct converts qty reserved units into a permanent removal: both
// quantity and reserved drop together, never one side alone.
func Deduct(tx *gorm.DB, itemID int64, qty int, ref string) (*domain.InventoryItem, error) {
	if qty <= 0 {
		return nil, ErrValidation
	}

	var item domain.InventoryItem
	if err := lockItem(tx, itemID, &item); err != nil {
		return nil, err
	}
	if item.Reserved < qty || item.Quantity < qty {
		return nil, ErrValidation
	}

	item.Quantity -= qty
	item.Reserved -= qty
	if err := saveCounters(tx, &item); err != nil {
		return nil, err
	}
	if err := appendLedger(tx, itemID, domain.TxnDeduct, qty, ref, ""); err != nil {
		return nil, err
	}
	return &item, nil
}

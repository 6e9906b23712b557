package inventory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"autoshop/internal/database"
	"autoshop/internal/domain"
	"autoshop/internal/repository"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := database.Connect(":memory:")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func newTestService(t *testing.T) (*Service, *gorm.DB) {
	db := setupTestDB(t)
	return NewService(db, repository.NewInventoryRepository(db), nil), db
}

func seedItem(t *testing.T, db *gorm.DB, qty, reserved, minStock int) *domain.InventoryItem {
	item := &domain.InventoryItem{
		SKU:       "BRK-PAD-F01",
		Name:      "Front Brake Pads",
		Category:  "brakes",
		Quantity:  qty,
		Reserved:  reserved,
		MinStock:  minStock,
		UnitPrice: 45.0,
		Active:    true,
	}
	require.NoError(t, db.Create(item).Error)
	return item
}

func reloadItem(t *testing.T, db *gorm.DB, id int64) domain.InventoryItem {
	var item domain.InventoryItem
	require.NoError(t, db.First(&item, id).Error)
	return item
}

func countLedger(t *testing.T, db *gorm.DB, itemID int64, typ domain.InventoryTransactionType) int64 {
	var n int64
	require.NoError(t, db.Model(&domain.InventoryTransaction{}).
		Where("inventory_item_id = ? AND type = ?", itemID, typ).
		Count(&n).Error)
	return n
}

func TestReserve_InsufficientStock(t *testing.T) {
	db := setupTestDB(t)
	item := seedItem(t, db, 100, 95, 0)

	_, err := Reserve(db, item.ID, 10, "WO-2026-000001")
	require.Error(t, err)

	var stockErr *InsufficientStockError
	require.True(t, errors.As(err, &stockErr))
	assert.Equal(t, 10, stockErr.Requested)
	assert.Equal(t, 5, stockErr.Available)

	// failed reservation must leave counters and ledger untouched
	got := reloadItem(t, db, item.ID)
	assert.Equal(t, 100, got.Quantity)
	assert.Equal(t, 95, got.Reserved)
	assert.Zero(t, countLedger(t, db, item.ID, domain.TxnReserve))
}

func TestReserve_ExactlyAvailable(t *testing.T) {
	db := setupTestDB(t)
	item := seedItem(t, db, 100, 90, 0)

	got, err := Reserve(db, item.ID, 10, "WO-2026-000001")
	require.NoError(t, err)
	assert.Equal(t, 100, got.Quantity)
	assert.Equal(t, 100, got.Reserved)
	assert.Equal(t, 0, got.Available())
	assert.EqualValues(t, 1, countLedger(t, db, item.ID, domain.TxnReserve))
}

func TestReserve_InactiveItem(t *testing.T) {
	db := setupTestDB(t)
	item := seedItem(t, db, 10, 0, 0)
	require.NoError(t, db.Model(item).Update("active", false).Error)

	_, err := Reserve(db, item.ID, 1, "WO-2026-000001")
	assert.ErrorIs(t, err, ErrInactiveItem)
}

func TestAdjustReservation(t *testing.T) {
	db := setupTestDB(t)
	item := seedItem(t, db, 10, 4, 0)

	// grow the hold within available stock
	got, err := AdjustReservation(db, item.ID, 4, 8, "WO-2026-000001")
	require.NoError(t, err)
	assert.Equal(t, 8, got.Reserved)

	// shrink it back
	got, err = AdjustReservation(db, item.ID, 8, 2, "WO-2026-000001")
	require.NoError(t, err)
	assert.Equal(t, 2, got.Reserved)

	// growing past quantity fails: available(8) + old(2) < new(11)
	_, err = AdjustReservation(db, item.ID, 2, 11, "WO-2026-000001")
	var stockErr *InsufficientStockError
	require.True(t, errors.As(err, &stockErr))
	assert.Equal(t, 11, stockErr.Requested)
	assert.Equal(t, 10, stockErr.Available)
}

func TestRelease_MoreThanHeld(t *testing.T) {
	db := setupTestDB(t)
	item := seedItem(t, db, 10, 3, 0)

	_, err := Release(db, item.ID, 5, "WO-2026-000001")
	assert.ErrorIs(t, err, ErrValidation)

	got := reloadItem(t, db, item.ID)
	assert.Equal(t, 3, got.Reserved)
}

func TestDeduct_DropsBothCounters(t *testing.T) {
	db := setupTestDB(t)
	item := seedItem(t, db, 10, 4, 0)

	got, err := Deduct(db, item.ID, 4, "WO-2026-000001")
	require.NoError(t, err)
	assert.Equal(t, 6, got.Quantity)
	assert.Equal(t, 0, got.Reserved)
	assert.EqualValues(t, 1, countLedger(t, db, item.ID, domain.TxnDeduct))
}

func TestDeduct_MoreThanReserved(t *testing.T) {
	db := setupTestDB(t)
	item := seedItem(t, db, 10, 2, 0)

	_, err := Deduct(db, item.ID, 3, "WO-2026-000001")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateItem_DuplicateSKU(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	req := CreateItemRequest{SKU: "OIL-5W30-1L", Name: "Engine Oil", Quantity: 10}
	_, err := svc.CreateItem(ctx, req)
	require.NoError(t, err)

	_, err = svc.CreateItem(ctx, req)
	assert.ErrorIs(t, err, ErrDuplicateSKU)
}

func TestRestock(t *testing.T) {
	svc, db := newTestService(t)
	item := seedItem(t, db, 5, 0, 0)

	got, err := svc.Restock(context.Background(), item.ID, 20, "weekly delivery")
	require.NoError(t, err)
	assert.Equal(t, 25, got.Quantity)
	assert.EqualValues(t, 1, countLedger(t, db, item.ID, domain.TxnRestock))

	_, err = svc.Restock(context.Background(), item.ID, 0, "")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestAdjustQuantity_CannotUndercutReserved(t *testing.T) {
	svc, db := newTestService(t)
	item := seedItem(t, db, 10, 6, 0)

	_, err := svc.AdjustQuantity(context.Background(), item.ID, 4, "stocktake")
	var stockErr *InsufficientStockError
	require.True(t, errors.As(err, &stockErr))

	got, err := svc.AdjustQuantity(context.Background(), item.ID, 6, "stocktake")
	require.NoError(t, err)
	assert.Equal(t, 6, got.Quantity)
	assert.Equal(t, 6, got.Reserved)
}

func TestLowStockReport(t *testing.T) {
	svc, db := newTestService(t)

	low := seedItem(t, db, 2, 0, 5)
	ok := &domain.InventoryItem{SKU: "FLT-AIR-U01", Name: "Air Filter", Quantity: 50, MinStock: 5, Active: true}
	require.NoError(t, db.Create(ok).Error)
	inactive := &domain.InventoryItem{SKU: "OLD-PART-01", Name: "Discontinued", Quantity: 0, MinStock: 5, Active: false}
	require.NoError(t, db.Create(inactive).Error)

	items, err := svc.LowStockReport(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, low.ID, items[0].ID)
}

func TestListTransactions_UnknownItem(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.ListTransactions(context.Background(), 999, 50, 0)
	assert.ErrorIs(t, err, ErrNotFound)
}

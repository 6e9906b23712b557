package repository

import (
	"context"

	"gorm.io/gorm"

	"autoshop/internal/domain"
)

type InventoryRepository struct {
	db *gorm.DB
}

func NewInventoryRepository(db *gorm.DB) *InventoryRepository {
	return &InventoryRepository{db: db}
}

func (r *InventoryRepository) Create(ctx context.Context, item *domain.InventoryItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *InventoryRepository) GetByID(ctx context.Context, id int64) (*domain.InventoryItem, error) {
	var item domain.InventoryItem
	if err := r.db.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *InventoryRepository) GetBySKU(ctx context.Context, sku string) (*domain.InventoryItem, error) {
	var item domain.InventoryItem
	if err := r.db.WithContext(ctx).Where("sku = ?", sku).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *InventoryRepository) List(ctx context.Context, search string, activeOnly bool, limit, offset int) ([]domain.InventoryItem, error) {
	q := r.db.WithContext(ctx).Model(&domain.InventoryItem{}).Order("id")
	if search != "" {
		like := "%" + search + "%"
		q = q.Where("name LIKE ? OR sku LIKE ?", like, like)
	}
	if activeOnly {
		q = q.Where("active = ?", true)
	}
	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}

	var items []domain.InventoryItem
	if err := q.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *InventoryRepository) Update(ctx context.Context, item *domain.InventoryItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

// LowStock is derived, never stored: active items with quantity at or
// below their minimum.
func (r *InventoryRepository) LowStock(ctx context.Context) ([]domain.InventoryItem, error) {
	var items []domain.InventoryItem
	err := r.db.WithContext(ctx).
		Where("active = ? AND quantity <= min_stock", true).
		Order("quantity - min_stock").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *InventoryRepository) ListTransactions(ctx context.Context, itemID int64, limit, offset int) ([]domain.InventoryTransaction, error) {
	q := r.db.WithContext(ctx).
		Where("inventory_item_id = ?", itemID).
		Order("id DESC")
	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}

	var txns []domain.InventoryTransaction
	if err := q.Find(&txns).Error; err != nil {
		return nil, err
	}
	return txns, nil
}

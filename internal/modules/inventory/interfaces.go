package inventory

import (
	"context"

	"autoshop/internal/domain"
)

// ItemRepository covers the read/CRUD side of the inventory catalog.
// The counter mutations go through the ledger primitives instead.
type ItemRepository interface {
	Create(ctx context.Context, item *domain.InventoryItem) error
	GetByID(ctx context.Context, id int64) (*domain.InventoryItem, error)
	GetBySKU(ctx context.Context, sku string) (*domain.InventoryItem, error)
	List(ctx context.Context, search string, activeOnly bool, limit, offset int) ([]domain.InventoryItem, error)
	Update(ctx context.Context, item *domain.InventoryItem) error
	LowStock(ctx context.Context) ([]domain.InventoryItem, error)
	ListTransactions(ctx context.Context, itemID int64, limit, offset int) ([]domain.InventoryTransaction, error)
}

// EventPublisher pushes shop-floor events to connected dashboards.
type EventPublisher interface {
	Publish(eventType string, payload any)
}

package inventory

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"autoshop/internal/domain"
)

type Service struct {
	db     *gorm.DB
	items  ItemRepository
	events EventPublisher
}

func NewService(db *gorm.DB, items ItemRepository, events EventPublisher) *Service {
	return &Service{db: db, items: items, events: events}
}

func (s *Service) CreateItem(ctx context.Context, req CreateItemRequest) (*domain.InventoryItem, error) {
	if req.MaxStock > 0 && req.MinStock > req.MaxStock {
		return nil, ErrValidation
	}

	if _, err := s.items.GetBySKU(ctx, req.SKU); err == nil {
		return nil, ErrDuplicateSKU
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	item := &domain.InventoryItem{
		SKU:       req.SKU,
		Name:      req.Name,
		Category:  req.Category,
		Quantity:  req.Quantity,
		MinStock:  req.MinStock,
		MaxStock:  req.MaxStock,
		UnitPrice: req.UnitPrice,
		Active:    true,
	}
	if err := s.items.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *Service) GetItem(ctx context.Context, id int64) (*domain.InventoryItem, error) {
	item, err := s.items.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return item, nil
}

func (s *Service) ListItems(ctx context.Context, search string, activeOnly bool, limit, offset int) ([]domain.InventoryItem, error) {
	return s.items.List(ctx, search, activeOnly, limit, offset)
}

func (s *Service) UpdateItem(ctx context.Context, id int64, req UpdateItemRequest) (*domain.InventoryItem, error) {
	item, err := s.GetItem(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Category != nil {
		item.Category = *req.Category
	}
	if req.MinStock != nil {
		if *req.MinStock < 0 {
			return nil, ErrValidation
		}
		item.MinStock = *req.MinStock
	}
	if req.MaxStock != nil {
		if *req.MaxStock < 0 {
			return nil, ErrValidation
		}
		item.MaxStock = *req.MaxStock
	}
	if req.UnitPrice != nil {
		if *req.UnitPrice < 0 {
			return nil, ErrValidation
		}
		item.UnitPrice = *req.UnitPrice
	}
	if req.Active != nil {
		item.Active = *req.Active
	}

	if err := s.items.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// Restock adds qty units of on-hand stock with a restock ledger row.
func (s *Service) Restock(ctx context.Context, id int64, qty int, note string) (*domain.InventoryItem, error) {
	if qty <= 0 {
		return nil, ErrValidation
	}

	var out domain.InventoryItem
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockItem(tx, id, &out); err != nil {
			return err
		}
		out.Quantity += qty
		if err := saveCounters(tx, &out); err != nil {
			return err
		}
		return appendLedger(tx, id, domain.TxnRestock, qty, "", note)
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// AdjustQuantity sets the on-hand quantity to an absolute value, e.g.
// after a physical count. The new quantity can never undercut what is
// already committed to open orders.
func (s *Service) AdjustQuantity(ctx context.Context, id int64, quantity int, note string) (*domain.InventoryItem, error) {
	if quantity < 0 {
		return nil, ErrValidation
	}

	var out domain.InventoryItem
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockItem(tx, id, &out); err != nil {
			return err
		}
		if quantity < out.Reserved {
			return &InsufficientStockError{ItemID: id, Requested: out.Reserved, Available: quantity}
		}

		delta := quantity - out.Quantity
		if delta == 0 {
			return nil
		}
		out.Quantity = quantity
		if err := saveCounters(tx, &out); err != nil {
			return err
		}
		return appendLedger(tx, id, domain.TxnAdjust, delta, "", note)
	})
	if err != nil {
		return nil, err
	}

	if out.LowStock() && s.events != nil {
		s.events.Publish("low_stock", out)
	}
	return &out, nil
}

func (s *Service) LowStockReport(ctx context.Context) ([]domain.InventoryItem, error) {
	return s.items.LowStock(ctx)
}

func (s *Service) ListTransactions(ctx context.Context, itemID int64, limit, offset int) ([]domain.InventoryTransaction, error) {
	if _, err := s.GetItem(ctx, itemID); err != nil {
		return nil, err
	}
	return s.items.ListTransactions(ctx, itemID, limit, offset)
}

package workorders

import (
	"context"
	"errors"
	"math"
	"time"

	"gorm.io/gorm"

	"autoshop/internal/domain"
	"autoshop/internal/modules/inventory"
	"autoshop/internal/repository"
)

type Service struct {
	db       *gorm.DB
	orders   OrderRepository
	clients  ClientReader
	vehicles VehicleReader
	invoices InvoiceChecker
	events   EventPublisher
}

func NewService(
	db *gorm.DB,
	orders OrderRepository,
	clients ClientReader,
	vehicles VehicleReader,
	invoices InvoiceChecker,
	events EventPublisher,
) *Service {
	return &Service{
		db:       db,
		orders:   orders,
		clients:  clients,
		vehicles: vehicles,
		invoices: invoices,
		events:   events,
	}
}

func (s *Service) Create(ctx context.Context, req CreateOrderRequest) (*domain.WorkOrder, error) {
	if _, err := s.clients.GetByID(ctx, req.ClientID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, err
	}

	vehicle, err := s.vehicles.GetByID(ctx, req.VehicleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVehicleNotFound
		}
		return nil, err
	}
	if vehicle.ClientID != req.ClientID {
		return nil, ErrVehicleMismatch
	}

	order := &domain.WorkOrder{
		ClientID:    req.ClientID,
		VehicleID:   req.VehicleID,
		Status:      domain.OrderDraft,
		Description: req.Description,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		number, err := repository.NextOrderNumber(tx, time.Now().Year())
		if err != nil {
			return err
		}
		order.OrderNumber = number
		return tx.Create(order).Error
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.WorkOrder, error) {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return order, nil
}

func (s *Service) List(ctx context.Context, status domain.WorkOrderStatus, clientID, vehicleID int64, limit, offset int) ([]domain.WorkOrder, error) {
	if status != "" && !status.Valid() {
		return nil, ErrValidation
	}
	return s.orders.List(ctx, status, clientID, vehicleID, limit, offset)
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateOrderRequest) (*domain.WorkOrder, error) {
	order, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.Status.Terminal() {
		return nil, ErrOrderNotOpen
	}

	if req.Description != nil {
		order.Description = *req.Description
		err = s.db.WithContext(ctx).
			Model(&domain.WorkOrder{}).
			Where("id = ?", id).
			Update("description", *req.Description).Error
		if err != nil {
			return nil, err
		}
	}
	return order, nil
}

// UpdateStatus moves the order forward through its lifecycle. Completion
// deducts every reservation; cancellation releases them. Both run in one
// transaction with the status flip.
func (s *Service) UpdateStatus(ctx context.Context, id int64, next domain.WorkOrderStatus) (*domain.WorkOrder, error) {
	if !next.Valid() || next == domain.OrderDraft {
		return nil, ErrValidation
	}

	order, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !order.Status.CanTransitionTo(next) {
		return nil, ErrInvalidTransition
	}

	if next == domain.OrderCompleted {
		has, err := s.invoices.ExistsForWorkOrder(ctx, id)
		if err != nil {
			return nil, err
		}
		if !has {
			return nil, ErrInvoiceRequired
		}
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		switch next {
		case domain.OrderCompleted:
			for _, p := range order.Parts {
				if _, err := inventory.Deduct(tx, p.InventoryItemID, p.Quantity, order.OrderNumber); err != nil {
					return err
				}
			}
		case domain.OrderCancelled:
			for _, p := range order.Parts {
				if _, err := inventory.Release(tx, p.InventoryItemID, p.Quantity, order.OrderNumber); err != nil {
					return err
				}
			}
		}

		return tx.Model(&domain.WorkOrder{}).
			Where("id = ?", id).
			Update("status", next).Error
	})
	if err != nil {
		return nil, err
	}

	order.Status = next
	if s.events != nil {
		s.events.Publish("order_status", order)
	}
	return order, nil
}

// Delete removes a draft order, returning any reserved stock it holds.
func (s *Service) Delete(ctx context.Context, id int64) error {
	order, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if order.Status != domain.OrderDraft {
		return ErrNotDraft
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, p := range order.Parts {
			if _, err := inventory.Release(tx, p.InventoryItemID, p.Quantity, order.OrderNumber); err != nil {
				return err
			}
		}
		if err := tx.Where("work_order_id = ?", id).Delete(&domain.WorkOrderPart{}).Error; err != nil {
			return err
		}
		if err := tx.Where("work_order_id = ?", id).Delete(&domain.WorkOrderService{}).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.WorkOrder{}, id).Error
	})
}

// AddPart reserves stock and attaches the line in a single transaction;
// an insufficient-inventory failure leaves both sides untouched.
func (s *Service) AddPart(ctx context.Context, orderID int64, req AddPartRequest) (*PartResult, error) {
	order, err := s.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status.Terminal() {
		return nil, ErrOrderNotOpen
	}

	var (
		part domain.WorkOrderPart
		item *domain.InventoryItem
	)
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		item, err = inventory.Reserve(tx, req.InventoryItemID, req.Quantity, order.OrderNumber)
		if err != nil {
			return err
		}

		part = domain.WorkOrderPart{
			WorkOrderID:     orderID,
			InventoryItemID: req.InventoryItemID,
			Quantity:        req.Quantity,
			UnitPrice:       item.UnitPrice,
			TotalPrice:      round2(float64(req.Quantity) * item.UnitPrice),
		}
		if err := tx.Create(&part).Error; err != nil {
			return err
		}
		return repository.RecalculateTotals(tx, orderID)
	})
	if err != nil {
		return nil, err
	}

	res := &PartResult{
		Part:            &part,
		Item:            item,
		LowStockWarning: item.Available() <= item.MinStock,
	}
	if res.LowStockWarning && s.events != nil {
		s.events.Publish("low_stock", item)
	}
	return res, nil
}

func (s *Service) UpdatePart(ctx context.Context, orderID, partID int64, req UpdatePartRequest) (*PartResult, error) {
	order, err := s.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status.Terminal() {
		return nil, ErrOrderNotOpen
	}

	part, err := s.orders.GetPart(ctx, orderID, partID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPartNotFound
		}
		return nil, err
	}

	var item *domain.InventoryItem
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		item, err = inventory.AdjustReservation(tx, part.InventoryItemID, part.Quantity, req.Quantity, order.OrderNumber)
		if err != nil {
			return err
		}

		part.Quantity = req.Quantity
		part.TotalPrice = round2(float64(req.Quantity) * part.UnitPrice)
		if err := tx.Model(&domain.WorkOrderPart{}).
			Where("id = ?", part.ID).
			Updates(map[string]any{
				"quantity":    part.Quantity,
				"total_price": part.TotalPrice,
			}).Error; err != nil {
			return err
		}
		return repository.RecalculateTotals(tx, orderID)
	})
	if err != nil {
		return nil, err
	}

	return &PartResult{
		Part:            part,
		Item:            item,
		LowStockWarning: item.Available() <= item.MinStock,
	}, nil
}

func (s *Service) RemovePart(ctx context.Context, orderID, partID int64) error {
	order, err := s.Get(ctx, orderID)
	if err != nil {
		return err
	}
	if order.Status.Terminal() {
		return ErrOrderNotOpen
	}

	part, err := s.orders.GetPart(ctx, orderID, partID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPartNotFound
		}
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := inventory.Release(tx, part.InventoryItemID, part.Quantity, order.OrderNumber); err != nil {
			return err
		}
		if err := tx.Delete(&domain.WorkOrderPart{}, part.ID).Error; err != nil {
			return err
		}
		return repository.RecalculateTotals(tx, orderID)
	})
}

func (s *Service) AddService(ctx context.Context, orderID int64, req AddServiceRequest) (*domain.WorkOrderService, error) {
	order, err := s.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status.Terminal() {
		return nil, ErrOrderNotOpen
	}

	svc := domain.WorkOrderService{
		WorkOrderID: orderID,
		Name:        req.Name,
		Description: req.Description,
		Hours:       req.Hours,
		Rate:        req.Rate,
		Total:       round2(req.Hours * req.Rate),
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&svc).Error; err != nil {
			return err
		}
		return repository.RecalculateTotals(tx, orderID)
	})
	if err != nil {
		return nil, err
	}
	return &svc, nil
}

func (s *Service) UpdateService(ctx context.Context, orderID, serviceID int64, req UpdateServiceRequest) (*domain.WorkOrderService, error) {
	order, err := s.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status.Terminal() {
		return nil, ErrOrderNotOpen
	}

	svc, err := s.orders.GetService(ctx, orderID, serviceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		svc.Name = *req.Name
	}
	if req.Description != nil {
		svc.Description = *req.Description
	}
	if req.Hours != nil {
		if *req.Hours <= 0 {
			return nil, ErrValidation
		}
		svc.Hours = *req.Hours
	}
	if req.Rate != nil {
		if *req.Rate < 0 {
			return nil, ErrValidation
		}
		svc.Rate = *req.Rate
	}
	svc.Total = round2(svc.Hours * svc.Rate)

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(svc).Error; err != nil {
			return err
		}
		return repository.RecalculateTotals(tx, orderID)
	})
	if err != nil {
		return nil, err
	}
	return svc, nil
}

func (s *Service) RemoveService(ctx context.Context, orderID, serviceID int64) error {
	order, err := s.Get(ctx, orderID)
	if err != nil {
		return err
	}
	if order.Status.Terminal() {
		return ErrOrderNotOpen
	}

	svc, err := s.orders.GetService(ctx, orderID, serviceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrServiceNotFound
		}
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&domain.WorkOrderService{}, svc.ID).Error; err != nil {
			return err
		}
		return repository.RecalculateTotals(tx, orderID)
	})
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

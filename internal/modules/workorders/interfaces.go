package workorders

import (
	"context"

	"autoshop/internal/domain"
)

type OrderRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.WorkOrder, error)
	List(ctx context.Context, status domain.WorkOrderStatus, clientID, vehicleID int64, limit, offset int) ([]domain.WorkOrder, error)
	GetPart(ctx context.Context, workOrderID, partID int64) (*domain.WorkOrderPart, error)
	GetService(ctx context.Context, workOrderID, serviceID int64) (*domain.WorkOrderService, error)
}

type ClientReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Client, error)
}

type VehicleReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Vehicle, error)
}

// InvoiceChecker gates the transition to completed.
type InvoiceChecker interface {
	ExistsForWorkOrder(ctx context.Context, workOrderID int64) (bool, error)
}

// EventPublisher pushes shop-floor events to connected dashboards.
type EventPublisher interface {
	Publish(eventType string, payload any)
}

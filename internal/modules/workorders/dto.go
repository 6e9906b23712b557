package workorders

import "autoshop/internal/domain"

type CreateOrderRequest struct {
	ClientID    int64  `json:"client_id" binding:"required"`
	VehicleID   int64  `json:"vehicle_id" binding:"required"`
	Description string `json:"description"`
}

type UpdateOrderRequest struct {
	Description *string `json:"description"`
}

type UpdateStatusRequest struct {
	Status domain.WorkOrderStatus `json:"status" binding:"required"`
}

type AddPartRequest struct {
	InventoryItemID int64 `json:"inventory_item_id" binding:"required"`
	Quantity        int   `json:"quantity" binding:"required,gt=0"`
}

type UpdatePartRequest struct {
	Quantity int `json:"quantity" binding:"required,gt=0"`
}

type AddServiceRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Hours       float64 `json:"hours" binding:"required,gt=0"`
	Rate        float64 `json:"rate" binding:"required,gte=0"`
}

type UpdateServiceRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Hours       *float64 `json:"hours"`
	Rate        *float64 `json:"rate"`
}

// PartResult carries the mutated line plus the item state after the
// reservation, so handlers can surface the soft low-stock warning.
type PartResult struct {
	Part            *domain.WorkOrderPart `json:"part"`
	Item            *domain.InventoryItem `json:"item"`
	LowStockWarning bool                  `json:"low_stock_warning"`
}

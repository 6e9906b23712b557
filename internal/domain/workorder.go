package domain

import "time"

type WorkOrderStatus string

const (
	OrderDraft          WorkOrderStatus = "draft"
	OrderPending        WorkOrderStatus = "pending"
	OrderInProgress     WorkOrderStatus = "in_progress"
	OrderWaitingParts   WorkOrderStatus = "waiting_parts"
	OrderReadyForPickup WorkOrderStatus = "ready_for_pickup"
	OrderCompleted      WorkOrderStatus = "completed"
	OrderCancelled      WorkOrderStatus = "cancelled"
)

// statusRank orders the forward-only lifecycle. cancelled sits outside
// the ordering and is handled separately.
var statusRank = map[WorkOrderStatus]int{
	OrderDraft:          0,
	OrderPending:        1,
	OrderInProgress:     2,
	OrderWaitingParts:   3,
	OrderReadyForPickup: 4,
	OrderCompleted:      5,
}

func (s WorkOrderStatus) Valid() bool {
	if s == OrderCancelled {
		return true
	}
	_, ok := statusRank[s]
	return ok
}

func (s WorkOrderStatus) Terminal() bool {
	return s == OrderCompleted || s == OrderCancelled
}

// CanTransitionTo reports whether the lifecycle allows moving from s to
// next. Intermediate states may be skipped but never revisited.
func (s WorkOrderStatus) CanTransitionTo(next WorkOrderStatus) bool {
	if s.Terminal() {
		return false
	}
	if next == OrderCancelled {
		return true
	}
	from, ok := statusRank[s]
	if !ok {
		return false
	}
	to, ok := statusRank[next]
	if !ok {
		return false
	}
	return to > from
}

type WorkOrder struct {
	ID          int64           `gorm:"column:id;primaryKey" json:"id"`
	OrderNumber string          `gorm:"column:order_number;size:32;uniqueIndex;not null" json:"order_number"`
	ClientID    int64           `gorm:"column:client_id;index;not null" json:"client_id"`
	VehicleID   int64           `gorm:"column:vehicle_id;index;not null" json:"vehicle_id"`
	Status      WorkOrderStatus `gorm:"column:status;size:32;not null;default:'draft'" json:"status"`
	Description string          `gorm:"column:description;type:text" json:"description"`
	LaborCost   float64         `gorm:"column:labor_cost;not null;default:0" json:"labor_cost"`
	PartsCost   float64         `gorm:"column:parts_cost;not null;default:0" json:"parts_cost"`
	TotalCost   float64         `gorm:"column:total_cost;not null;default:0" json:"total_cost"`
	CreatedAt   time.Time       `gorm:"column:created_at" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"column:updated_at" json:"updated_at"`

	Services []WorkOrderService `gorm:"foreignKey:WorkOrderID" json:"services,omitempty"`
	Parts    []WorkOrderPart    `gorm:"foreignKey:WorkOrderID" json:"parts,omitempty"`
}

func (WorkOrder) TableName() string { return "work_orders" }

type WorkOrderService struct {
	ID          int64     `gorm:"column:id;primaryKey" json:"id"`
	WorkOrderID int64     `gorm:"column:work_order_id;index;not null" json:"work_order_id"`
	Name        string    `gorm:"column:name;size:255;not null" json:"name"`
	Description string    `gorm:"column:description;type:text" json:"description,omitempty"`
	Hours       float64   `gorm:"column:hours;not null" json:"hours"`
	Rate        float64   `gorm:"column:rate;not null" json:"rate"`
	Total       float64   `gorm:"column:total;not null" json:"total"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (WorkOrderService) TableName() string { return "work_order_services" }

// WorkOrderPart is a reservation of inventory against an open order.
type WorkOrderPart struct {
	ID              int64     `gorm:"column:id;primaryKey" json:"id"`
	WorkOrderID     int64     `gorm:"column:work_order_id;index;not null" json:"work_order_id"`
	InventoryItemID int64     `gorm:"column:inventory_item_id;index;not null" json:"inventory_item_id"`
	Quantity        int       `gorm:"column:quantity;not null" json:"quantity"`
	UnitPrice       float64   `gorm:"column:unit_price;not null" json:"unit_price"`
	TotalPrice      float64   `gorm:"column:total_price;not null" json:"total_price"`
	CreatedAt       time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (WorkOrderPart) TableName() string { return "work_order_parts" }

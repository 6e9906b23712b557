package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWorkOrderStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name string
		from WorkOrderStatus
		to   WorkOrderStatus
		want bool
	}{
		{"draft to pending", OrderDraft, OrderPending, true},
		{"draft to in_progress skips pending", OrderDraft, OrderInProgress, true},
		{"pending to ready_for_pickup skips two", OrderPending, OrderReadyForPickup, true},
		{"in_progress to waiting_parts", OrderInProgress, OrderWaitingParts, true},
		{"waiting_parts back to in_progress", OrderWaitingParts, OrderInProgress, false},
		{"pending back to draft", OrderPending, OrderDraft, false},
		{"same status", OrderInProgress, OrderInProgress, false},
		{"ready_for_pickup to completed", OrderReadyForPickup, OrderCompleted, true},
		{"draft to cancelled", OrderDraft, OrderCancelled, true},
		{"ready_for_pickup to cancelled", OrderReadyForPickup, OrderCancelled, true},
		{"completed to cancelled", OrderCompleted, OrderCancelled, false},
		{"completed to anything", OrderCompleted, OrderPending, false},
		{"cancelled to pending", OrderCancelled, OrderPending, false},
		{"unknown target", OrderPending, WorkOrderStatus("bogus"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestWorkOrderStatus_Terminal(t *testing.T) {
	assert.True(t, OrderCompleted.Terminal())
	assert.True(t, OrderCancelled.Terminal())
	assert.False(t, OrderDraft.Terminal())
	assert.False(t, OrderReadyForPickup.Terminal())
}

func TestInventoryItem_Available(t *testing.T) {
	item := InventoryItem{Quantity: 100, Reserved: 95}
	assert.Equal(t, 5, item.Available())
}

func TestInventoryItem_LowStock(t *testing.T) {
	assert.True(t, InventoryItem{Active: true, Quantity: 3, MinStock: 5}.LowStock())
	assert.True(t, InventoryItem{Active: true, Quantity: 5, MinStock: 5}.LowStock())
	assert.False(t, InventoryItem{Active: true, Quantity: 6, MinStock: 5}.LowStock())
	// inactive items never count as low stock
	assert.False(t, InventoryItem{Active: false, Quantity: 0, MinStock: 5}.LowStock())
}

func TestInvoice_Overdue(t *testing.T) {
	now := time.Now()
	due := now.AddDate(0, 0, -1)

	assert.True(t, Invoice{Status: InvoiceSent, DueDate: due}.Overdue(now))
	assert.True(t, Invoice{Status: InvoicePartiallyPaid, DueDate: due}.Overdue(now))
	assert.False(t, Invoice{Status: InvoicePaid, DueDate: due}.Overdue(now))
	assert.False(t, Invoice{Status: InvoiceCancelled, DueDate: due}.Overdue(now))
	assert.False(t, Invoice{Status: InvoiceSent, DueDate: now.AddDate(0, 0, 1)}.Overdue(now))
}

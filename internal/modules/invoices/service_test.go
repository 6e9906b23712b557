package invoices

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"autoshop/internal/database"
	"autoshop/internal/domain"
	"autoshop/internal/repository"
)

func setupTest(t *testing.T) (*Service, *gorm.DB) {
	db, err := database.Connect(":memory:")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	svc := NewService(db, repository.NewInvoiceRepository(db), repository.NewWorkOrderRepository(db), 0.20, 14)
	return svc, db
}

func seedOrder(t *testing.T, db *gorm.DB, status domain.WorkOrderStatus, total float64) *domain.WorkOrder {
	client := &domain.Client{Name: "Beth Tanaka"}
	require.NoError(t, db.Create(client).Error)

	order := &domain.WorkOrder{
		OrderNumber: fmt.Sprintf("WO-2026-%06d", time.Now().UnixNano()%1000000),
		ClientID:    client.ID,
		VehicleID:   1,
		Status:      status,
		TotalCost:   total,
	}
	require.NoError(t, db.Create(order).Error)
	return order
}

func TestGenerate(t *testing.T) {
	svc, db := setupTest(t)
	ctx := context.Background()
	order := seedOrder(t, db, domain.OrderReadyForPickup, 171.00)

	inv, err := svc.Generate(ctx, order.ID)
	require.NoError(t, err)

	assert.Equal(t, fmt.Sprintf("INV-%d-%06d", time.Now().Year(), 1), inv.InvoiceNumber)
	assert.Equal(t, domain.InvoiceSent, inv.Status)
	assert.Equal(t, 171.00, inv.Subtotal)
	assert.Equal(t, 34.20, inv.TaxAmount)
	assert.Equal(t, 205.20, inv.Total)
	assert.Equal(t, order.ClientID, inv.ClientID)
	assert.WithinDuration(t, time.Now().AddDate(0, 0, 14), inv.DueDate, time.Minute)
}

func TestGenerate_OnePerOrder(t *testing.T) {
	svc, db := setupTest(t)
	ctx := context.Background()
	order := seedOrder(t, db, domain.OrderInProgress, 100)

	_, err := svc.Generate(ctx, order.ID)
	require.NoError(t, err)

	_, err = svc.Generate(ctx, order.ID)
	assert.ErrorIs(t, err, ErrAlreadyExists)
}

func TestGenerate_RejectsDraftAndCancelled(t *testing.T) {
	svc, db := setupTest(t)
	ctx := context.Background()

	draft := seedOrder(t, db, domain.OrderDraft, 100)
	_, err := svc.Generate(ctx, draft.ID)
	assert.ErrorIs(t, err, ErrOrderNotBilled)

	cancelled := seedOrder(t, db, domain.OrderCancelled, 100)
	_, err = svc.Generate(ctx, cancelled.ID)
	assert.ErrorIs(t, err, ErrOrderNotBilled)

	_, err = svc.Generate(ctx, 999)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestCancel(t *testing.T) {
	svc, db := setupTest(t)
	ctx := context.Background()
	order := seedOrder(t, db, domain.OrderInProgress, 100)

	inv, err := svc.Generate(ctx, order.ID)
	require.NoError(t, err)

	got, err := svc.Cancel(ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.InvoiceCancelled, got.Status)

	// cancelling twice fails
	_, err = svc.Cancel(ctx, inv.ID)
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestCancel_RejectedAfterPayment(t *testing.T) {
	svc, db := setupTest(t)
	ctx := context.Background()
	order := seedOrder(t, db, domain.OrderInProgress, 100)

	inv, err := svc.Generate(ctx, order.ID)
	require.NoError(t, err)

	require.NoError(t, db.Model(&domain.Invoice{}).
		Where("id = ?", inv.ID).
		Update("amount_paid", 50.0).Error)

	_, err = svc.Cancel(ctx, inv.ID)
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestListOverdue_FlipsStatus(t *testing.T) {
	svc, db := setupTest(t)
	ctx := context.Background()
	order := seedOrder(t, db, domain.OrderInProgress, 100)

	inv, err := svc.Generate(ctx, order.ID)
	require.NoError(t, err)

	require.NoError(t, db.Model(&domain.Invoice{}).
		Where("id = ?", inv.ID).
		Update("due_date", time.Now().AddDate(0, 0, -3)).Error)

	overdue, err := svc.ListOverdue(ctx)
	require.NoError(t, err)
	require.Len(t, overdue, 1)
	assert.Equal(t, domain.InvoiceOverdue, overdue[0].Status)

	var stored domain.Invoice
	require.NoError(t, db.First(&stored, inv.ID).Error)
	assert.Equal(t, domain.InvoiceOverdue, stored.Status)
}

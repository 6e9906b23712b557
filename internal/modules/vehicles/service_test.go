package vehicles

import (
	"context"
	"testing"

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
	return NewService(repository.NewVehicleRepository(db), repository.NewClientRepository(db)), db
}

func seedClient(t *testing.T, db *gorm.DB) *domain.Client {
	c := &domain.Client{Name: "John Reilly"}
	require.NoError(t, db.Create(c).Error)
	return c
}

func TestCreate(t *testing.T) {
	svc, db := setupTest(t)
	ctx := context.Background()
	client := seedClient(t, db)

	v, err := svc.Create(ctx, CreateVehicleRequest{
		ClientID: client.ID,
		Brand:    "Toyota",
		Model:    "Corolla",
		Year:     2018,
		Plate:    "ABC-100",
		Mileage:  64000,
	})
	require.NoError(t, err)
	assert.Equal(t, client.ID, v.ClientID)

	// unknown owner
	_, err = svc.Create(ctx, CreateVehicleRequest{ClientID: 999, Brand: "Honda", Model: "Civic", Plate: "ABC-101"})
	assert.ErrorIs(t, err, ErrClientNotFound)

	// duplicate plate
	_, err = svc.Create(ctx, CreateVehicleRequest{ClientID: client.ID, Brand: "Honda", Model: "Civic", Plate: "ABC-100"})
	assert.ErrorIs(t, err, ErrDuplicatePlate)
}

func TestUpdate_TransferAndPlate(t *testing.T) {
	svc, db := setupTest(t)
	ctx := context.Background()
	client := seedClient(t, db)

	other := &domain.Client{Name: "Amanda Cole"}
	require.NoError(t, db.Create(other).Error)

	v, err := svc.Create(ctx, CreateVehicleRequest{ClientID: client.ID, Brand: "Toyota", Model: "Corolla", Plate: "ABC-100"})
	require.NoError(t, err)
	taken, err := svc.Create(ctx, CreateVehicleRequest{ClientID: client.ID, Brand: "Ford", Model: "F-150", Plate: "ABC-200"})
	require.NoError(t, err)

	// transfer to the other client
	got, err := svc.Update(ctx, v.ID, UpdateVehicleRequest{ClientID: &other.ID})
	require.NoError(t, err)
	assert.Equal(t, other.ID, got.ClientID)

	// plate collision with another vehicle
	_, err = svc.Update(ctx, v.ID, UpdateVehicleRequest{Plate: &taken.Plate})
	assert.ErrorIs(t, err, ErrDuplicatePlate)

	// keeping the own plate is not a collision
	_, err = svc.Update(ctx, v.ID, UpdateVehicleRequest{Plate: &v.Plate})
	assert.NoError(t, err)
}

func TestList_ByClient(t *testing.T) {
	svc, db := setupTest(t)
	ctx := context.Background()
	client := seedClient(t, db)
	other := &domain.Client{Name: "Amanda Cole"}
	require.NoError(t, db.Create(other).Error)

	_, err := svc.Create(ctx, CreateVehicleRequest{ClientID: client.ID, Brand: "Toyota", Model: "Corolla", Plate: "ABC-100"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateVehicleRequest{ClientID: other.ID, Brand: "Honda", Model: "Civic", Plate: "ABC-101"})
	require.NoError(t, err)

	mine, err := svc.List(ctx, client.ID, 50, 0)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	all, err := svc.List(ctx, 0, 50, 0)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestDelete_GuardedByOpenOrders(t *testing.T) {
	svc, db := setupTest(t)
	ctx := context.Background()
	client := seedClient(t, db)

	v, err := svc.Create(ctx, CreateVehicleRequest{ClientID: client.ID, Brand: "Toyota", Model: "Corolla", Plate: "ABC-100"})
	require.NoError(t, err)

	order := &domain.WorkOrder{
		OrderNumber: "WO-2026-000001",
		ClientID:    client.ID,
		VehicleID:   v.ID,
		Status:      domain.OrderInProgress,
	}
	require.NoError(t, db.Create(order).Error)

	assert.ErrorIs(t, svc.Delete(ctx, v.ID), ErrHasOpenOrders)

	// closed orders do not block deletion
	require.NoError(t, db.Model(order).Update("status", domain.OrderCompleted).Error)
	require.NoError(t, svc.Delete(ctx, v.ID))
}

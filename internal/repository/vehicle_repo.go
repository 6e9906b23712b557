package repository

import (
	"context"

	"gorm.io/gorm"

	"autoshop/internal/domain"
)

type VehicleRepository struct {
	db *gorm.DB
}

func NewVehicleRepository(db *gorm.DB) *VehicleRepository {
	return &VehicleRepository{db: db}
}

func (r *VehicleRepository) Create(ctx context.Context, v *domain.Vehicle) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *VehicleRepository) GetByID(ctx context.Context, id int64) (*domain.Vehicle, error) {
	var v domain.Vehicle
	if err := r.db.WithContext(ctx).First(&v, id).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *VehicleRepository) GetByPlate(ctx context.Context, plate string) (*domain.Vehicle, error) {
	var v domain.Vehicle
	if err := r.db.WithContext(ctx).Where("plate = ?", plate).First(&v).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *VehicleRepository) List(ctx context.Context, clientID int64, limit, offset int) ([]domain.Vehicle, error) {
	q := r.db.WithContext(ctx).Model(&domain.Vehicle{}).Order("id")
	if clientID > 0 {
		q = q.Where("client_id = ?", clientID)
	}
	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}

	var vehicles []domain.Vehicle
	if err := q.Find(&vehicles).Error; err != nil {
		return nil, err
	}
	return vehicles, nil
}

func (r *VehicleRepository) Update(ctx context.Context, v *domain.Vehicle) error {
	return r.db.WithContext(ctx).Save(v).Error
}

func (r *VehicleRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&domain.Vehicle{}, id).Error
}

// CountOpenWorkOrders backs the delete guard: a vehicle with open orders
// cannot be removed.
func (r *VehicleRepository) CountOpenWorkOrders(ctx context.Context, vehicleID int64) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).
		Model(&domain.WorkOrder{}).
		Where("vehicle_id = ? AND status NOT IN ?", vehicleID,
			[]domain.WorkOrderStatus{domain.OrderCompleted, domain.OrderCancelled}).
		Count(&cnt).Error
	return cnt, err
}

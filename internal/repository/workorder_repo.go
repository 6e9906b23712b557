package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"autoshop/internal/domain"
)

type WorkOrderRepository struct {
	db *gorm.DB
}

func NewWorkOrderRepository(db *gorm.DB) *WorkOrderRepository {
	return &WorkOrderRepository{db: db}
}

func (r *WorkOrderRepository) GetByID(ctx context.Context, id int64) (*domain.WorkOrder, error) {
	var o domain.WorkOrder
	err := r.db.WithContext(ctx).
		Preload("Services").
		Preload("Parts").
		First(&o, id).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *WorkOrderRepository) List(ctx context.Context, status domain.WorkOrderStatus, clientID, vehicleID int64, limit, offset int) ([]domain.WorkOrder, error) {
	q := r.db.WithContext(ctx).Model(&domain.WorkOrder{}).Order("id DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if clientID > 0 {
		q = q.Where("client_id = ?", clientID)
	}
	if vehicleID > 0 {
		q = q.Where("vehicle_id = ?", vehicleID)
	}
	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}

	var orders []domain.WorkOrder
	if err := q.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// NextOrderNumber issues WO-<year>-<seq> from the per-year row count.
// Call inside the creating transaction so concurrent creates cannot
// observe the same count.
func NextOrderNumber(tx *gorm.DB, year int) (string, error) {
	var cnt int64
	prefix := fmt.Sprintf("WO-%d-", year)
	if err := tx.Model(&domain.WorkOrder{}).
		Where("order_number LIKE ?", prefix+"%").
		Count(&cnt).Error; err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%06d", prefix, cnt+1), nil
}

func (r *WorkOrderRepository) GetPart(ctx context.Context, workOrderID, partID int64) (*domain.WorkOrderPart, error) {
	var p domain.WorkOrderPart
	err := r.db.WithContext(ctx).
		Where("id = ? AND work_order_id = ?", partID, workOrderID).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *WorkOrderRepository) GetService(ctx context.Context, workOrderID, serviceID int64) (*domain.WorkOrderService, error) {
	var s domain.WorkOrderService
	err := r.db.WithContext(ctx).
		Where("id = ? AND work_order_id = ?", serviceID, workOrderID).
		First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// RecalculateTotals refreshes the order's cost columns from its lines.
// Runs on the given tx so it can participate in line mutations.
func RecalculateTotals(tx *gorm.DB, workOrderID int64) error {
	var labor, parts float64

	err := tx.Model(&domain.WorkOrderService{}).
		Where("work_order_id = ?", workOrderID).
		Select("COALESCE(SUM(total), 0)").
		Scan(&labor).Error
	if err != nil {
		return err
	}

	err = tx.Model(&domain.WorkOrderPart{}).
		Where("work_order_id = ?", workOrderID).
		Select("COALESCE(SUM(total_price), 0)").
		Scan(&parts).Error
	if err != nil {
		return err
	}

	return tx.Model(&domain.WorkOrder{}).
		Where("id = ?", workOrderID).
		Updates(map[string]any{
			"labor_cost": labor,
			"parts_cost": parts,
			"total_cost": labor + parts,
		}).Error
}

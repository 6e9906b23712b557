package repository

import (
	"context"

	"gorm.io/gorm"

	"autoshop/internal/domain"
)

type ClientRepository struct {
	db *gorm.DB
}

func NewClientRepository(db *gorm.DB) *ClientRepository {
	return &ClientRepository{db: db}
}

func (r *ClientRepository) Create(ctx context.Context, c *domain.Client) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *ClientRepository) GetByID(ctx context.Context, id int64) (*domain.Client, error) {
	var c domain.Client
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ClientRepository) List(ctx context.Context, search string, limit, offset int) ([]domain.Client, error) {
	q := r.db.WithContext(ctx).Model(&domain.Client{}).Order("id")
	if search != "" {
		like := "%" + search + "%"
		q = q.Where("name LIKE ? OR email LIKE ? OR phone LIKE ?", like, like, like)
	}
	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}

	var clients []domain.Client
	if err := q.Find(&clients).Error; err != nil {
		return nil, err
	}
	return clients, nil
}

func (r *ClientRepository) Update(ctx context.Context, c *domain.Client) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *ClientRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&domain.Client{}, id).Error
}

// CountVehicles backs the delete guard: a client owning vehicles cannot
// be removed.
func (r *ClientRepository) CountVehicles(ctx context.Context, clientID int64) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).
		Model(&domain.Vehicle{}).
		Where("client_id = ?", clientID).
		Count(&cnt).Error
	return cnt, err
}

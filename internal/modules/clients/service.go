package clients

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"autoshop/internal/domain"
)

type ClientRepository interface {
	Create(ctx context.Context, c *domain.Client) error
	GetByID(ctx context.Context, id int64) (*domain.Client, error)
	List(ctx context.Context, search string, limit, offset int) ([]domain.Client, error)
	Update(ctx context.Context, c *domain.Client) error
	Delete(ctx context.Context, id int64) error
	CountVehicles(ctx context.Context, clientID int64) (int64, error)
}

type CreateClientRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"omitempty,email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Notes   string `json:"notes"`
}

type UpdateClientRequest struct {
	Name    *string `json:"name"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
	Notes   *string `json:"notes"`
}

type Service struct {
	clients ClientRepository
}

func NewService(clients ClientRepository) *Service {
	return &Service{clients: clients}
}

func (s *Service) Create(ctx context.Context, req CreateClientRequest) (*domain.Client, error) {
	client := &domain.Client{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
		Notes:   req.Notes,
	}
	if err := s.clients.Create(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Client, error) {
	client, err := s.clients.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return client, nil
}

func (s *Service) List(ctx context.Context, search string, limit, offset int) ([]domain.Client, error) {
	return s.clients.List(ctx, search, limit, offset)
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateClientRequest) (*domain.Client, error) {
	client, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, ErrValidation
		}
		client.Name = *req.Name
	}
	if req.Email != nil {
		client.Email = *req.Email
	}
	if req.Phone != nil {
		client.Phone = *req.Phone
	}
	if req.Address != nil {
		client.Address = *req.Address
	}
	if req.Notes != nil {
		client.Notes = *req.Notes
	}

	if err := s.clients.Update(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}

// Delete refuses to remove a client that still owns vehicles.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	cnt, err := s.clients.CountVehicles(ctx, id)
	if err != nil {
		return err
	}
	if cnt > 0 {
		return ErrHasVehicles
	}

	return s.clients.Delete(ctx, id)
}

package vehicles

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"autoshop/internal/domain"
)

type VehicleRepository interface {
	Create(ctx context.Context, v *domain.Vehicle) error
	GetByID(ctx context.Context, id int64) (*domain.Vehicle, error)
	GetByPlate(ctx context.Context, plate string) (*domain.Vehicle, error)
	List(ctx context.Context, clientID int64, limit, offset int) ([]domain.Vehicle, error)
	Update(ctx context.Context, v *domain.Vehicle) error
	Delete(ctx context.Context, id int64) error
	CountOpenWorkOrders(ctx context.Context, vehicleID int64) (int64, error)
}

type ClientReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Client, error)
}

type CreateVehicleRequest struct {
	ClientID int64  `json:"client_id" binding:"required"`
	Brand    string `json:"brand" binding:"required"`
	Model    string `json:"model" binding:"required"`
	Year     int    `json:"year" binding:"omitempty,gte=1900"`
	Plate    string `json:"plate" binding:"required"`
	VIN      string `json:"vin"`
	Mileage  int64  `json:"mileage" binding:"omitempty,gte=0"`
	Notes    string `json:"notes"`
}

type UpdateVehicleRequest struct {
	// ClientID transfers the vehicle to another client.
	ClientID *int64  `json:"client_id"`
	Brand    *string `json:"brand"`
	Model    *string `json:"model"`
	Year     *int    `json:"year"`
	Plate    *string `json:"plate"`
	VIN      *string `json:"vin"`
	Mileage  *int64  `json:"mileage"`
	Notes    *string `json:"notes"`
}

type Service struct {
	vehicles VehicleRepository
	clients  ClientReader
}

func NewService(vehicles VehicleRepository, clients ClientReader) *Service {
	return &Service{vehicles: vehicles, clients: clients}
}

func (s *Service) Create(ctx context.Context, req CreateVehicleRequest) (*domain.Vehicle, error) {
	if _, err := s.clients.GetByID(ctx, req.ClientID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, err
	}

	if _, err := s.vehicles.GetByPlate(ctx, req.Plate); err == nil {
		return nil, ErrDuplicatePlate
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	vehicle := &domain.Vehicle{
		ClientID: req.ClientID,
		Brand:    req.Brand,
		Model:    req.Model,
		Year:     req.Year,
		Plate:    req.Plate,
		VIN:      req.VIN,
		Mileage:  req.Mileage,
		Notes:    req.Notes,
	}
	if err := s.vehicles.Create(ctx, vehicle); err != nil {
		// the plate pre-check races with concurrent inserts; the unique
		// index has the last word
		if isUniqueViolation(err) {
			return nil, ErrDuplicatePlate
		}
		return nil, err
	}
	return vehicle, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Vehicle, error) {
	vehicle, err := s.vehicles.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return vehicle, nil
}

func (s *Service) List(ctx context.Context, clientID int64, limit, offset int) ([]domain.Vehicle, error) {
	return s.vehicles.List(ctx, clientID, limit, offset)
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateVehicleRequest) (*domain.Vehicle, error) {
	vehicle, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.ClientID != nil && *req.ClientID != vehicle.ClientID {
		if _, err := s.clients.GetByID(ctx, *req.ClientID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrClientNotFound
			}
			return nil, err
		}
		vehicle.ClientID = *req.ClientID
	}
	if req.Brand != nil {
		vehicle.Brand = *req.Brand
	}
	if req.Model != nil {
		vehicle.Model = *req.Model
	}
	if req.Year != nil {
		vehicle.Year = *req.Year
	}
	if req.Plate != nil && *req.Plate != vehicle.Plate {
		if _, err := s.vehicles.GetByPlate(ctx, *req.Plate); err == nil {
			return nil, ErrDuplicatePlate
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		vehicle.Plate = *req.Plate
	}
	if req.VIN != nil {
		vehicle.VIN = *req.VIN
	}
	if req.Mileage != nil {
		if *req.Mileage < 0 {
			return nil, ErrValidation
		}
		vehicle.Mileage = *req.Mileage
	}
	if req.Notes != nil {
		vehicle.Notes = *req.Notes
	}

	if err := s.vehicles.Update(ctx, vehicle); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicatePlate
		}
		return nil, err
	}
	return vehicle, nil
}

// isUniqueViolation matches the postgres duplicate-key SQLSTATE.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// Delete refuses to remove a vehicle with open work orders.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	cnt, err := s.vehicles.CountOpenWorkOrders(ctx, id)
	if err != nil {
		return err
	}
	if cnt > 0 {
		return ErrHasOpenOrders
	}

	return s.vehicles.Delete(ctx, id)
}

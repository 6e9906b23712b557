package domain

import "time"

type Vehicle struct {
	ID        int64     `gorm:"column:id;primaryKey" json:"id"`
	ClientID  int64     `gorm:"column:client_id;index;not null" json:"client_id"`
	Brand     string    `gorm:"column:brand;size:64;not null" json:"brand"`
	Model     string    `gorm:"column:model;size:64;not null" json:"model"`
	Year      int       `gorm:"column:year" json:"year"`
	Plate     string    `gorm:"column:plate;size:32;uniqueIndex;not null" json:"plate"`
	VIN       string    `gorm:"column:vin;size:64;uniqueIndex" json:"vin,omitempty"`
	Mileage   int64     `gorm:"column:mileage" json:"mileage"`
	Notes     string    `gorm:"column:notes;type:text" json:"notes,omitempty"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Vehicle) TableName() string { return "vehicles" }

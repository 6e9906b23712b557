package domain

import "time"

type Client struct {
	ID        int64     `gorm:"column:id;primaryKey" json:"id"`
	Name      string    `gorm:"column:name;size:255;not null" json:"name"`
	Email     string    `gorm:"column:email;size:255" json:"email"`
	Phone     string    `gorm:"column:phone;size:64" json:"phone"`
	Address   string    `gorm:"column:address;size:512" json:"address"`
	Notes     string    `gorm:"column:notes;type:text" json:"notes,omitempty"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Client) TableName() string { return "clients" }

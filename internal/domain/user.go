package domain

import "time"

type Role string

const (
	RoleAdmin        Role = "ADMIN"
	RoleManager      Role = "MANAGER"
	RoleTechnician   Role = "TECHNICIAN"
	RoleReceptionist Role = "RECEPTIONIST"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleTechnician, RoleReceptionist:
		return true
	}
	return false
}

type User struct {
	ID           int64     `gorm:"column:id;primaryKey" json:"id"`
	Name         string    `gorm:"column:name;size:255;not null" json:"name"`
	Email        string    `gorm:"column:email;size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"column:password_hash;size:255;not null" json:"-"`
	Role         Role      `gorm:"column:role;size:32;not null" json:"role"`
	Active       bool      `gorm:"column:active;not null;default:true" json:"active"`
	CreatedAt    time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (User) TableName() string { return "users" }

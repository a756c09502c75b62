package models

import "gorm.io/gorm"

// User roles.
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// User represents a registered marketplace user.
type User struct {
	ID         string       `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Username   string       `json:"username" gorm:"uniqueIndex;type:varchar(100)" validate:"required,min=3,max=100"`
	Email      string       `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Password   string       `gorm:"type:varchar(255)" validate:"required,min=6"` // No json tag for security
	Role       string       `json:"role" gorm:"type:varchar(20);default:'USER'" validate:"omitempty,oneof=USER ADMIN"`
	AddressID  *string      `json:"address_id,omitempty" gorm:"type:varchar(36)"`
	Address    *AddressBook `json:"address,omitempty" gorm:"foreignKey:AddressID"`
	gorm.Model              // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}

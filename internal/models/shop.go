package models

import "gorm.io/gorm"

// Shop represents an independent seller. Each shop is a distinct shipping
// origin, so checkout creates one order per shop.
type Shop struct {
	ID         string       `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	OwnerID    string       `json:"owner_id" gorm:"type:varchar(36);index" validate:"required,uuid"`
	Name       string       `json:"name" validate:"required,min=3,max=100"`
	AddressID  *string      `json:"address_id,omitempty" gorm:"type:varchar(36)"`
	Address    *AddressBook `json:"address,omitempty" gorm:"foreignKey:AddressID"`
	gorm.Model              // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}

package models

import "gorm.io/gorm"

// Product represents a product offered by a shop.
// Weight is in grams and feeds the shipping rate calculation at checkout.
type Product struct {
	ID          string  `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name        string  `json:"name" validate:"required,min=3,max=100"`
	Description string  `json:"description" validate:"omitempty,max=500"`
	Brand       string  `json:"brand" validate:"omitempty,max=100"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	Weight      float64 `json:"weight" validate:"gte=0"` // grams per unit, 0 when unknown
	Stock       int     `json:"stock" validate:"gte=0"`
	ShopID      string  `json:"shop_id" gorm:"type:varchar(36);index" validate:"required,uuid"`
	Shop        *Shop   `json:"shop,omitempty" gorm:"foreignKey:ShopID"`
	gorm.Model          // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}

package models

import "gorm.io/gorm"

// Cart is a user's pre-purchase staging area. One cart per user, created
// lazily on first access. TotalAmount is denormalized and recomputed inside
// the same transaction as every mutation; the line items remain the source
// of truth.
type Cart struct {
	ID          string     `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	UserID      string     `json:"user_id" gorm:"type:varchar(36);uniqueIndex" validate:"required,uuid"`
	TotalAmount float64    `json:"total_amount"`
	Items       []CartItem `json:"items" gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
	gorm.Model             // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}

// CartItem is a single product line in a cart. At most one line per
// (cart, product) pair; adding the same product again increments Quantity.
type CartItem struct {
	ID        string   `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	CartID    string   `json:"cart_id" gorm:"type:varchar(36);index:idx_cart_product,unique" validate:"required,uuid"`
	ProductID string   `json:"product_id" gorm:"type:varchar(36);index:idx_cart_product,unique" validate:"required,uuid"`
	Product   *Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	Quantity  int      `json:"quantity" validate:"required,gt=0"`
	gorm.Model
}

// ComputeTotal sums quantity x live product price over the cart's items.
// Items whose product is not loaded contribute nothing.
func (c *Cart) ComputeTotal() float64 {
	var total float64
	for _, item := range c.Items {
		if item.Product != nil {
			total += item.Product.Price * float64(item.Quantity)
		}
	}
	return total
}

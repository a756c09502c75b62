package models

import "time"

// OrderStatus enumerates the order lifecycle.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusPaid      OrderStatus = "PAID"
	OrderStatusDelivered OrderStatus = "DELIVERED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// ValidOrderStatus reports whether s is a known order status.
func ValidOrderStatus(s OrderStatus) bool {
	switch s {
	case OrderStatusPending, OrderStatusPaid, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// Order is one shop's share of a checkout. TotalAmount is the item subtotal
// plus the shipment's fee, fixed at creation; only Status (and the owned
// shipment's status) changes afterwards.
type Order struct {
	ID          string      `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	UserID      string      `json:"user_id" gorm:"type:varchar(36);index" validate:"required,uuid"`
	Status      OrderStatus `json:"status" gorm:"type:varchar(20)"`
	TotalAmount float64     `json:"total_amount"`
	Items       []OrderItem `json:"items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Shipment    *Shipment   `json:"shipment,omitempty" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Payment     *Payment    `json:"payment,omitempty" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// OrderItem is a purchased product line. PriceAtPurchase snapshots the
// product price at checkout time and is never recomputed.
type OrderItem struct {
	ID              string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	OrderID         string    `json:"order_id" gorm:"type:varchar(36);index" validate:"required,uuid"`
	ProductID       string    `json:"product_id" gorm:"type:varchar(36);index" validate:"required,uuid"`
	Product         *Product  `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	Quantity        int       `json:"quantity" validate:"required,gt=0"`
	PriceAtPurchase float64   `json:"price_at_purchase"`
	CreatedAt       time.Time `json:"created_at"`
}

package models

import "time"

// Shipment statuses. Status is free text in the schema; these are the two
// values this system itself writes.
const (
	ShipmentStatusPreparing = "PREPARING"
	ShipmentStatusCancelled = "CANCELLED"
)

// Shipment is the delivery record owned one-to-one by an order.
type Shipment struct {
	ID                    string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	OrderID               string    `json:"order_id" gorm:"type:varchar(36);uniqueIndex" validate:"required,uuid"`
	ShippingFee           float64   `json:"shipping_fee" validate:"gte=0"`
	Status                string    `json:"status" gorm:"type:varchar(50)"`
	TrackingNumber        string    `json:"tracking_number" gorm:"type:varchar(100)"`
	EstimatedDeliveryDate time.Time `json:"estimated_delivery_date"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

// Payment is owned by the payment subsystem; the checkout core persists the
// schema but never creates or mutates rows.
type Payment struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OrderID   string    `json:"order_id" gorm:"type:varchar(36);uniqueIndex"`
	Method    string    `json:"method" gorm:"type:varchar(50)"`
	Status    string    `json:"status" gorm:"type:varchar(50)"`
	Amount    float64   `json:"amount"`
	CreatedAt time.Time `json:"created_at"`
}

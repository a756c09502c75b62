package repositories

import (
	"marketplace/internal/models"
)

// OrderRepository defines the interface for order data access.
type OrderRepository interface {
	// Create persists an order together with its owned items and shipment.
	Create(order *models.Order) error
	// GetByID loads an order with items (and their products) and shipment.
	GetByID(id string) (*models.Order, error)
	GetAllByUserID(userID string) ([]models.Order, error)
	UpdateStatus(id string, status models.OrderStatus) error
	UpdateShipmentStatus(orderID string, status string) error
}

package services

import (
	"errors"
	"fmt"
	"log"

	"marketplace/internal/apperrors"
	"marketplace/internal/models"
	"marketplace/internal/repositories"
	"marketplace/pkg/rabbitmq"
)

// OrderService handles order reads and status transitions. Transitions are
// driven externally (payment subsystem, administrative action); the only
// dependent-state rule owned here is that cancelling an order also cancels
// its shipment.
type OrderService struct {
	tx        repositories.TransactionManager
	orderRepo repositories.OrderRepository
	mqClient  rabbitmq.Publisher // may be nil
}

// NewOrderService creates a new OrderService.
func NewOrderService(tx repositories.TransactionManager, orderRepo repositories.OrderRepository, mqClient rabbitmq.Publisher) *OrderService {
	return &OrderService{
		tx:        tx,
		orderRepo: orderRepo,
		mqClient:  mqClient,
	}
}

// GetOrderByID retrieves a single order with its items and shipment.
func (s *OrderService) GetOrderByID(id string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order %s: %w", id, err)
	}
	return order, nil
}

// GetOrdersByUser retrieves all orders belonging to a user.
func (s *OrderService) GetOrdersByUser(userID string) ([]models.Order, error) {
	return s.orderRepo.GetAllByUserID(userID)
}

// UpdateOrderStatus transitions an order to the given status. When the new
// status is CANCELLED the owned shipment is forced to CANCELLED in the
// same transaction.
func (s *OrderService) UpdateOrderStatus(id string, status models.OrderStatus) (*models.Order, error) {
	if !models.ValidOrderStatus(status) {
		return nil, apperrors.ErrInvalidValue
	}

	err := s.tx.WithinTx(func(r repositories.TxRepositories) error {
		if err := r.Orders().UpdateStatus(id, status); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return apperrors.ErrOrderNotFound
			}
			return err
		}
		if status == models.OrderStatusCancelled {
			if err := r.Orders().UpdateShipmentStatus(id, models.ShipmentStatusCancelled); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	order, err := s.GetOrderByID(id)
	if err != nil {
		return nil, err
	}

	if s.mqClient != nil {
		event := map[string]interface{}{
			"orderID": order.ID,
			"userID":  order.UserID,
			"status":  string(order.Status),
		}
		if err := s.mqClient.Publish(rabbitmq.RoutingKeyOrderStatusUpdated, event); err != nil {
			log.Printf("Warning: Failed to publish order status update event for order %s: %v", order.ID, err)
		}
	}
	return order, nil
}

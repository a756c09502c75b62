package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"marketplace/internal/apperrors"
	"marketplace/internal/models"
	"marketplace/internal/repositories"
	"marketplace/pkg/rabbitmq"
	"marketplace/pkg/shipping"

	"github.com/google/uuid"
)

// DefaultParcelWeightGram replaces a computed group weight of zero so the
// rate lookup never sends a degenerate request.
const DefaultParcelWeightGram = 200

// EstimatedDeliveryOffsetDays is added to the checkout date for each
// shipment's delivery estimate.
const EstimatedDeliveryOffsetDays = 3

// TrackingNumberIssuer registers a shipment with the carrier and returns
// its tracking number.
type TrackingNumberIssuer interface {
	CreateShippingOrder(orderID string) string
}

// OrderSummaryItem is one purchased line in a checkout summary.
type OrderSummaryItem struct {
	ProductID       string  `json:"product_id"`
	ProductName     string  `json:"product_name"`
	Quantity        int     `json:"quantity"`
	PriceAtPurchase float64 `json:"price_at_purchase"`
}

// OrderSummary describes one order created by a checkout.
type OrderSummary struct {
	OrderID               string             `json:"order_id"`
	ShopID                string             `json:"shop_id"`
	Status                string             `json:"status"`
	TotalAmount           float64            `json:"total_amount"`
	ShippingFee           float64            `json:"shipping_fee"`
	EstimatedDeliveryDate time.Time          `json:"estimated_delivery_date"`
	Items                 []OrderSummaryItem `json:"items"`
}

// CheckoutService converts selected cart items into one persisted order
// per originating shop, pricing each shipment through the rate gateway
// with a fixed-fee fallback, then trims the cart. All writes for one
// checkout share a single transaction.
type CheckoutService struct {
	tx       repositories.TransactionManager
	userRepo repositories.UserRepository
	rates    shipping.RateLookup
	fallback shipping.RateLookup
	tracker  TrackingNumberIssuer
	mqClient rabbitmq.Publisher // may be nil
}

// NewCheckoutService creates a new CheckoutService. rates may be nil, in
// which case every group uses the fallback fee; tracker and mqClient are
// optional as well.
func NewCheckoutService(
	tx repositories.TransactionManager,
	userRepo repositories.UserRepository,
	rates shipping.RateLookup,
	tracker TrackingNumberIssuer,
	mqClient rabbitmq.Publisher,
) *CheckoutService {
	return &CheckoutService{
		tx:       tx,
		userRepo: userRepo,
		rates:    rates,
		fallback: shipping.NewFallbackRate(),
		tracker:  tracker,
		mqClient: mqClient,
	}
}

// shopGroup is one shop's slice of the selected cart items.
type shopGroup struct {
	shop  *models.Shop
	items []models.CartItem
}

// CheckoutSelectedItems is the checkout entry point. Preconditions are
// checked in order: user exists, user has a shipping address, cart is
// non-empty, selection intersects the cart. Then one order (with items and
// shipment) is created per shop, the consumed lines are removed from the
// cart, and the remaining total is recomputed; everything commits or rolls
// back together.
func (s *CheckoutService) CheckoutSelectedItems(ctx context.Context, userID string, productIDs []string) ([]OrderSummary, error) {
	user, err := s.userRepo.GetByIDWithAddress(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to resolve user %s: %w", userID, err)
	}
	if user.Address == nil {
		return nil, apperrors.ErrAddressNotFound
	}

	selectedSet := make(map[string]bool, len(productIDs))
	for _, id := range productIDs {
		selectedSet[id] = true
	}

	var summaries []OrderSummary
	err = s.tx.WithinTx(func(r repositories.TxRepositories) error {
		cart, err := r.Carts().GetByUserID(userID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return apperrors.ErrCartEmpty
			}
			return fmt.Errorf("failed to load cart for user %s: %w", userID, err)
		}
		if len(cart.Items) == 0 {
			return apperrors.ErrCartEmpty
		}

		var selected []models.CartItem
		for _, item := range cart.Items {
			if selectedSet[item.ProductID] {
				selected = append(selected, item)
			}
		}
		if len(selected) == 0 {
			return apperrors.ErrItemNotInCart
		}

		groups, err := groupByShop(selected)
		if err != nil {
			return err
		}

		now := time.Now()
		for _, group := range groups {
			summary, err := s.placeShopOrder(ctx, r, user, group, now)
			if err != nil {
				return err
			}
			summaries = append(summaries, *summary)
		}

		// Remove the consumed lines and recompute the remaining total.
		consumed := make([]string, 0, len(selected))
		for _, item := range selected {
			consumed = append(consumed, item.ProductID)
		}
		if err := r.Carts().RemoveItems(cart.ID, consumed); err != nil {
			return err
		}

		var remainingTotal float64
		for _, item := range cart.Items {
			if !selectedSet[item.ProductID] && item.Product != nil {
				remainingTotal += item.Product.Price * float64(item.Quantity)
			}
		}
		return r.Carts().UpdateTotal(cart.ID, remainingTotal)
	})
	if err != nil {
		return nil, err
	}

	s.publishOrderCreated(userID, summaries)
	return summaries, nil
}

// groupByShop buckets the selected items by owning shop, preserving the
// first-occurrence order so the returned summaries are deterministic.
func groupByShop(selected []models.CartItem) ([]shopGroup, error) {
	index := make(map[string]int)
	var groups []shopGroup
	for _, item := range selected {
		if item.Product == nil {
			return nil, apperrors.ErrProductNotFound
		}
		if item.Product.Shop == nil {
			return nil, apperrors.ErrShopNotFound
		}
		shopID := item.Product.ShopID
		i, ok := index[shopID]
		if !ok {
			i = len(groups)
			index[shopID] = i
			groups = append(groups, shopGroup{shop: item.Product.Shop})
		}
		groups[i].items = append(groups[i].items, item)
	}
	return groups, nil
}

// placeShopOrder prices, builds and persists one shop's order with its
// items and shipment.
func (s *CheckoutService) placeShopOrder(ctx context.Context, r repositories.TxRepositories, user *models.User, group shopGroup, now time.Time) (*OrderSummary, error) {
	var itemTotal float64
	var weight float64
	for _, item := range group.items {
		itemTotal += item.Product.Price * float64(item.Quantity)
		weight += item.Product.Weight * float64(item.Quantity)
	}
	weightGram := int(math.Floor(weight))
	if weightGram == 0 {
		weightGram = DefaultParcelWeightGram
	}

	fee := s.resolveShippingFee(ctx, group.shop, user, weightGram)

	order := &models.Order{
		UserID:      user.ID,
		Status:      models.OrderStatusPending,
		TotalAmount: itemTotal + fee.Fee,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for _, item := range group.items {
		order.Items = append(order.Items, models.OrderItem{
			ProductID:       item.ProductID,
			Quantity:        item.Quantity,
			PriceAtPurchase: item.Product.Price, // snapshot, never recomputed
			CreatedAt:       now,
		})
	}
	order.Shipment = &models.Shipment{
		ShippingFee:           fee.Fee,
		Status:                models.ShipmentStatusPreparing,
		EstimatedDeliveryDate: now.AddDate(0, 0, EstimatedDeliveryOffsetDays),
		CreatedAt:             now,
		UpdatedAt:             now,
	}

	order.ID = uuid.New().String()
	if s.tracker != nil {
		order.Shipment.TrackingNumber = s.tracker.CreateShippingOrder(order.ID)
	}
	if err := r.Orders().Create(order); err != nil {
		return nil, err
	}

	summary := &OrderSummary{
		OrderID:               order.ID,
		ShopID:                group.shop.ID,
		Status:                string(order.Status),
		TotalAmount:           order.TotalAmount,
		ShippingFee:           fee.Fee,
		EstimatedDeliveryDate: order.Shipment.EstimatedDeliveryDate,
	}
	for _, item := range group.items {
		summary.Items = append(summary.Items, OrderSummaryItem{
			ProductID:       item.ProductID,
			ProductName:     item.Product.Name,
			Quantity:        item.Quantity,
			PriceAtPurchase: item.Product.Price,
		})
	}
	return summary, nil
}

// resolveShippingFee prices one group. The gateway is only consulted when
// both the shop's and the user's address resolve to a district; any
// gateway failure degrades to the fixed fallback fee. An order must be
// created even when pricing is approximate, so no error escapes here.
func (s *CheckoutService) resolveShippingFee(ctx context.Context, shop *models.Shop, user *models.User, weightGram int) *shipping.FeeResponse {
	fallback, _ := s.fallback.CalculateFee(ctx, shipping.FeeRequest{})

	if s.rates == nil {
		return fallback
	}
	shopDistrict := shop.Address.District()
	userDistrict := user.Address.District()
	if shopDistrict == nil || userDistrict == nil || user.Address.WardCode == nil {
		return fallback
	}

	resp, err := s.rates.CalculateFee(ctx, shipping.FeeRequest{
		FromDistrictCode: shopDistrict.Code,
		ToDistrictCode:   userDistrict.Code,
		ToWardCode:       *user.Address.WardCode,
		WeightGram:       weightGram,
	})
	if err != nil {
		log.Printf("Failed to calculate shipping fee for shop %s: %v", shop.ID, err)
		return fallback
	}
	return resp
}

// publishOrderCreated emits one order.created event per order after the
// checkout transaction has committed. Publishing is best effort.
func (s *CheckoutService) publishOrderCreated(userID string, summaries []OrderSummary) {
	if s.mqClient == nil {
		log.Println("RabbitMQ client is not initialized. Skipping message publication.")
		return
	}
	for _, summary := range summaries {
		event := map[string]interface{}{
			"orderID": summary.OrderID,
			"userID":  userID,
			"shopID":  summary.ShopID,
			"status":  summary.Status,
			"total":   summary.TotalAmount,
		}
		if err := s.mqClient.Publish(rabbitmq.RoutingKeyOrderCreated, event); err != nil {
			log.Printf("Warning: Failed to publish order created event for order %s: %v", summary.OrderID, err)
		} else {
			log.Printf("Successfully published order created event for order %s", summary.OrderID)
		}
	}
}

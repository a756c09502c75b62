package services_test

import (
	"testing"
	"time"

	"marketplace/internal/apperrors"
	"marketplace/internal/models"
	"marketplace/internal/repositories"
	"marketplace/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newOrderService(db *gorm.DB) *services.OrderService {
	tx := repositories.NewGORMTransactionManager(db)
	return services.NewOrderService(tx, repositories.NewGORMOrderRepository(db), nil)
}

// capturePublisher records published events instead of talking to a broker.
type capturePublisher struct {
	keys     []string
	payloads []interface{}
}

func (p *capturePublisher) Publish(routingKey string, payload interface{}) error {
	p.keys = append(p.keys, routingKey)
	p.payloads = append(p.payloads, payload)
	return nil
}

// passthroughTxManager runs the function directly against a fixed set of
// repositories, with no transactional scope.
type passthroughTxManager struct {
	repos repositories.TxRepositories
}

func (m *passthroughTxManager) WithinTx(fn func(r repositories.TxRepositories) error) error {
	return fn(m.repos)
}

type fixedTxRepos struct {
	orders repositories.OrderRepository
}

func (r fixedTxRepos) Users() repositories.UserRepository       { return nil }
func (r fixedTxRepos) Products() repositories.ProductRepository { return nil }
func (r fixedTxRepos) Carts() repositories.CartRepository       { return nil }
func (r fixedTxRepos) Orders() repositories.OrderRepository     { return r.orders }

// seedOrder persists a pending order with one item and a preparing shipment.
func seedOrder(t *testing.T, db *gorm.DB, userID string, createdAt time.Time) *models.Order {
	t.Helper()
	shop := seedShop(t, db, "Order Shop", nil)
	product := seedProduct(t, db, shop.ID, "Ordered Product", 100000, 200)
	order := &models.Order{
		UserID:      userID,
		Status:      models.OrderStatusPending,
		TotalAmount: 130000,
		Items: []models.OrderItem{
			{ProductID: product.ID, Quantity: 1, PriceAtPurchase: 100000, CreatedAt: createdAt},
		},
		Shipment: &models.Shipment{
			ShippingFee:           30000,
			Status:                models.ShipmentStatusPreparing,
			EstimatedDeliveryDate: createdAt.AddDate(0, 0, 3),
			CreatedAt:             createdAt,
			UpdatedAt:             createdAt,
		},
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
	require.NoError(t, repositories.NewGORMOrderRepository(db).Create(order))
	return order
}

func TestOrderService_GetOrderByID(t *testing.T) {
	db := setupTestDB(t)
	svc := newOrderService(db)
	user := seedUser(t, db, nil)
	order := seedOrder(t, db, user.ID, time.Now())

	got, err := svc.GetOrderByID(order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, got.ID)
	require.Len(t, got.Items, 1)
	require.NotNil(t, got.Items[0].Product)
	assert.Equal(t, "Ordered Product", got.Items[0].Product.Name)
	require.NotNil(t, got.Shipment)
	assert.Equal(t, models.ShipmentStatusPreparing, got.Shipment.Status)

	_, err = svc.GetOrderByID("missing")
	assert.ErrorIs(t, err, apperrors.ErrOrderNotFound)
}

func TestOrderService_GetOrdersByUser(t *testing.T) {
	db := setupTestDB(t)
	svc := newOrderService(db)
	user := seedUser(t, db, nil)

	older := seedOrder(t, db, user.ID, time.Now().Add(-2*time.Hour))
	newer := seedOrder(t, db, user.ID, time.Now())
	seedOrder(t, db, "someone-else", time.Now())

	orders, err := svc.GetOrdersByUser(user.ID)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, newer.ID, orders[0].ID, "orders are returned newest first")
	assert.Equal(t, older.ID, orders[1].ID)
}

func TestOrderService_UpdateOrderStatus(t *testing.T) {
	db := setupTestDB(t)
	svc := newOrderService(db)
	user := seedUser(t, db, nil)
	order := seedOrder(t, db, user.ID, time.Now())

	updated, err := svc.UpdateOrderStatus(order.ID, models.OrderStatusPaid)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPaid, updated.Status)
	// A non-cancelling transition leaves the shipment alone
	assert.Equal(t, models.ShipmentStatusPreparing, updated.Shipment.Status)
}

func TestOrderService_CancelCascadesToShipment(t *testing.T) {
	db := setupTestDB(t)
	svc := newOrderService(db)
	user := seedUser(t, db, nil)
	order := seedOrder(t, db, user.ID, time.Now())

	updated, err := svc.UpdateOrderStatus(order.ID, models.OrderStatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCancelled, updated.Status)
	require.NotNil(t, updated.Shipment)
	assert.Equal(t, models.ShipmentStatusCancelled, updated.Shipment.Status)
}

func TestOrderService_PublishesStatusEvent(t *testing.T) {
	orderRepo := repositories.NewMockOrderRepository()
	publisher := &capturePublisher{}
	tx := &passthroughTxManager{repos: fixedTxRepos{orders: orderRepo}}
	svc := services.NewOrderService(tx, orderRepo, publisher)

	order := &models.Order{
		UserID:      "buyer-1",
		Status:      models.OrderStatusPending,
		TotalAmount: 130000,
		Shipment:    &models.Shipment{Status: models.ShipmentStatusPreparing},
	}
	require.NoError(t, orderRepo.Create(order))

	updated, err := svc.UpdateOrderStatus(order.ID, models.OrderStatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCancelled, updated.Status)
	assert.Equal(t, models.ShipmentStatusCancelled, updated.Shipment.Status)

	require.Len(t, publisher.keys, 1)
	assert.Equal(t, "order.status.updated", publisher.keys[0])
	event := publisher.payloads[0].(map[string]interface{})
	assert.Equal(t, order.ID, event["orderID"])
	assert.Equal(t, "CANCELLED", event["status"])
}

func TestOrderService_UpdateOrderStatus_Invalid(t *testing.T) {
	db := setupTestDB(t)
	svc := newOrderService(db)

	_, err := svc.UpdateOrderStatus("any", models.OrderStatus("SHIPPED_TO_MARS"))
	assert.ErrorIs(t, err, apperrors.ErrInvalidValue)

	_, err = svc.UpdateOrderStatus("missing", models.OrderStatusPaid)
	assert.ErrorIs(t, err, apperrors.ErrOrderNotFound)
}

package repositories

import "marketplace/internal/models"

// CartRepository defines the interface for cart data access. Every mutating
// method commits before returning so a concurrent caller observes the
// updated cart immediately.
type CartRepository interface {
	// GetByUserID loads the user's cart with items, their products and the
	// products' shops (including shop address chains) eagerly loaded.
	GetByUserID(userID string) (*models.Cart, error)
	Create(cart *models.Cart) error
	// SaveItem inserts or updates a single line item.
	SaveItem(item *models.CartItem) error
	RemoveItem(cartID, productID string) error
	// RemoveItems deletes every line whose product id is in productIDs.
	// A second call with the same set is a no-op.
	RemoveItems(cartID string, productIDs []string) error
	ClearItems(cartID string) error
	UpdateTotal(cartID string, total float64) error
}

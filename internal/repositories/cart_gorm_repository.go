package repositories

import (
	"fmt"
	"marketplace/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMCartRepository is a GORM implementation of CartRepository.
type GORMCartRepository struct {
	db *gorm.DB
}

// NewGORMCartRepository creates a new instance of GORMCartRepository.
func NewGORMCartRepository(db *gorm.DB) *GORMCartRepository {
	return &GORMCartRepository{
		db: db,
	}
}

// GetByUserID retrieves the cart for a user with the full read path
// checkout needs: items, products, owning shops and the shops' address
// chains down to district.
func (r *GORMCartRepository) GetByUserID(userID string) (*models.Cart, error) {
	var cart models.Cart
	err := r.db.
		Preload("Items").
		Preload("Items.Product").
		Preload("Items.Product.Shop").
		Preload("Items.Product.Shop.Address").
		Preload("Items.Product.Shop.Address.Ward").
		Preload("Items.Product.Shop.Address.Ward.District").
		First(&cart, "user_id = ?", userID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("cart for user %s: %w", userID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get cart for user %s: %w", userID, err)
	}
	return &cart, nil
}

// Create creates a new cart in the database.
func (r *GORMCartRepository) Create(cart *models.Cart) error {
	if cart.ID == "" {
		cart.ID = uuid.New().String()
	}
	if err := r.db.Create(cart).Error; err != nil {
		return fmt.Errorf("failed to create cart: %w", err)
	}
	return nil
}

// SaveItem inserts a new line item or updates the quantity of an existing
// one.
func (r *GORMCartRepository) SaveItem(item *models.CartItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	if err := r.db.Save(item).Error; err != nil {
		return fmt.Errorf("failed to save cart item: %w", err)
	}
	return nil
}

// RemoveItem deletes a single line item by (cart, product).
func (r *GORMCartRepository) RemoveItem(cartID, productID string) error {
	res := r.db.Unscoped().Where("cart_id = ? AND product_id = ?", cartID, productID).Delete(&models.CartItem{})
	if res.Error != nil {
		return fmt.Errorf("failed to remove cart item: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("cart item for product %s: %w", productID, ErrNotFound)
	}
	return nil
}

// RemoveItems deletes every line whose product id is in productIDs.
// Deleting an already-removed set affects zero rows and is not an error.
func (r *GORMCartRepository) RemoveItems(cartID string, productIDs []string) error {
	if len(productIDs) == 0 {
		return nil
	}
	err := r.db.Unscoped().Where("cart_id = ? AND product_id IN ?", cartID, productIDs).Delete(&models.CartItem{}).Error
	if err != nil {
		return fmt.Errorf("failed to remove cart items: %w", err)
	}
	return nil
}

// ClearItems deletes all line items of a cart.
func (r *GORMCartRepository) ClearItems(cartID string) error {
	err := r.db.Unscoped().Where("cart_id = ?", cartID).Delete(&models.CartItem{}).Error
	if err != nil {
		return fmt.Errorf("failed to clear cart %s: %w", cartID, err)
	}
	return nil
}

// UpdateTotal persists the recomputed denormalized total for a cart.
func (r *GORMCartRepository) UpdateTotal(cartID string, total float64) error {
	res := r.db.Model(&models.Cart{}).Where("id = ?", cartID).Update("total_amount", total)
	if res.Error != nil {
		return fmt.Errorf("failed to update cart total: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("cart with ID %s: %w", cartID, ErrNotFound)
	}
	return nil
}

package services

import (
	"errors"
	"fmt"

	"marketplace/internal/apperrors"
	"marketplace/internal/models"
	"marketplace/internal/repositories"
)

// CartService handles the user's cart: lazy creation, line mutations and
// the denormalized total. Every mutation runs in its own committed
// transaction, so a concurrent caller (a checkout racing an add from
// another tab) always observes committed state.
type CartService struct {
	tx       repositories.TransactionManager
	userRepo repositories.UserRepository
	cartRepo repositories.CartRepository
}

// NewCartService creates a new CartService.
func NewCartService(tx repositories.TransactionManager, userRepo repositories.UserRepository, cartRepo repositories.CartRepository) *CartService {
	return &CartService{
		tx:       tx,
		userRepo: userRepo,
		cartRepo: cartRepo,
	}
}

// authorizeCartAccess resolves the target user and checks that the caller
// is either that user or an administrator.
func (s *CartService) authorizeCartAccess(caller Caller, userID string) error {
	if _, err := s.userRepo.GetByID(userID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("failed to resolve user %s: %w", userID, err)
	}
	if !caller.IsAdmin() && caller.UserID != userID {
		return apperrors.ErrUnauthorized
	}
	return nil
}

// GetCartByUser returns the user's cart, creating an empty one on first
// access.
func (s *CartService) GetCartByUser(caller Caller, userID string) (*models.Cart, error) {
	if err := s.authorizeCartAccess(caller, userID); err != nil {
		return nil, err
	}

	cart, err := s.cartRepo.GetByUserID(userID)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("failed to load cart for user %s: %w", userID, err)
	}

	cart = &models.Cart{UserID: userID, TotalAmount: 0}
	if err := s.cartRepo.Create(cart); err != nil {
		return nil, fmt.Errorf("failed to create cart for user %s: %w", userID, err)
	}
	return cart, nil
}

// AddToCart adds quantity units of a product to the user's cart. A line
// for the same product is incremented rather than duplicated. The cart
// total is recomputed and the whole mutation is committed before return.
func (s *CartService) AddToCart(caller Caller, userID, productID string, quantity int) (*models.Cart, error) {
	if err := s.authorizeCartAccess(caller, userID); err != nil {
		return nil, err
	}
	if quantity <= 0 {
		return nil, apperrors.ErrInvalidValue
	}

	var updated *models.Cart
	err := s.tx.WithinTx(func(r repositories.TxRepositories) error {
		if _, err := r.Products().GetByID(productID); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return apperrors.ErrProductNotFound
			}
			return fmt.Errorf("failed to resolve product %s: %w", productID, err)
		}

		cart, err := r.Carts().GetByUserID(userID)
		if err != nil {
			if !errors.Is(err, repositories.ErrNotFound) {
				return fmt.Errorf("failed to load cart for user %s: %w", userID, err)
			}
			cart = &models.Cart{UserID: userID, TotalAmount: 0}
			if err := r.Carts().Create(cart); err != nil {
				return fmt.Errorf("failed to create cart for user %s: %w", userID, err)
			}
		}

		var line *models.CartItem
		for i := range cart.Items {
			if cart.Items[i].ProductID == productID {
				line = &cart.Items[i]
				break
			}
		}
		if line != nil {
			line.Quantity += quantity
			if err := r.Carts().SaveItem(line); err != nil {
				return err
			}
		} else {
			item := models.CartItem{CartID: cart.ID, ProductID: productID, Quantity: quantity}
			if err := r.Carts().SaveItem(&item); err != nil {
				return err
			}
		}

		// Reload for the recompute so the new line carries its product.
		cart, err = r.Carts().GetByUserID(userID)
		if err != nil {
			return fmt.Errorf("failed to reload cart for user %s: %w", userID, err)
		}
		cart.TotalAmount = cart.ComputeTotal()
		if err := r.Carts().UpdateTotal(cart.ID, cart.TotalAmount); err != nil {
			return err
		}
		updated = cart
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// RemoveFromCart removes one product line from the user's cart and
// recomputes the total.
func (s *CartService) RemoveFromCart(caller Caller, userID, productID string) (*models.Cart, error) {
	if err := s.authorizeCartAccess(caller, userID); err != nil {
		return nil, err
	}

	var updated *models.Cart
	err := s.tx.WithinTx(func(r repositories.TxRepositories) error {
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

		if err := r.Carts().RemoveItem(cart.ID, productID); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return apperrors.ErrItemNotInCart
			}
			return err
		}

		cart, err = r.Carts().GetByUserID(userID)
		if err != nil {
			return fmt.Errorf("failed to reload cart for user %s: %w", userID, err)
		}
		cart.TotalAmount = cart.ComputeTotal()
		if err := r.Carts().UpdateTotal(cart.ID, cart.TotalAmount); err != nil {
			return err
		}
		updated = cart
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// ClearCart removes every line from the user's cart and resets the total.
func (s *CartService) ClearCart(caller Caller, userID string) (*models.Cart, error) {
	if err := s.authorizeCartAccess(caller, userID); err != nil {
		return nil, err
	}

	var updated *models.Cart
	err := s.tx.WithinTx(func(r repositories.TxRepositories) error {
		cart, err := r.Carts().GetByUserID(userID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return apperrors.ErrCartEmpty
			}
			return fmt.Errorf("failed to load cart for user %s: %w", userID, err)
		}
		if err := r.Carts().ClearItems(cart.ID); err != nil {
			return err
		}
		if err := r.Carts().UpdateTotal(cart.ID, 0); err != nil {
			return err
		}
		cart.Items = nil
		cart.TotalAmount = 0
		updated = cart
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

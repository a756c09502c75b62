package repositories

import "marketplace/internal/models"

// UserRepository defines the interface for user data access.
type UserRepository interface {
	Create(user *models.User) error
	GetByUsername(username string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByID(id string) (*models.User, error)
	// GetByIDWithAddress loads the user together with the full
	// address -> ward -> district chain needed by checkout.
	GetByIDWithAddress(id string) (*models.User, error)
	SetAddress(userID string, address *models.AddressBook) error
}

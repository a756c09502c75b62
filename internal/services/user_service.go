package services

import (
	"errors"
	"fmt"

	"marketplace/internal/apperrors"
	"marketplace/internal/models"
	"marketplace/internal/repositories"
)

// UserService handles profile-level operations: reading a user and saving
// the shipping address checkout depends on.
type UserService struct {
	userRepo repositories.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repositories.UserRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
	}
}

// GetUserByID retrieves a user with their shipping address. Only the user
// themselves or an administrator may read the profile.
func (s *UserService) GetUserByID(caller Caller, userID string) (*models.User, error) {
	if !caller.IsAdmin() && caller.UserID != userID {
		return nil, apperrors.ErrUnauthorized
	}
	user, err := s.userRepo.GetByIDWithAddress(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user %s: %w", userID, err)
	}
	user.Password = ""
	return user, nil
}

// SetShippingAddress saves the user's delivery address. A user cannot
// check out without one.
func (s *UserService) SetShippingAddress(caller Caller, userID string, address *models.AddressBook) error {
	if !caller.IsAdmin() && caller.UserID != userID {
		return apperrors.ErrUnauthorized
	}
	if address.Name == "" || address.Phone == "" {
		return apperrors.ErrInvalidValue
	}
	if err := s.userRepo.SetAddress(userID, address); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("failed to set address for user %s: %w", userID, err)
	}
	return nil
}

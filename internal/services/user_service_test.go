package services_test

import (
	"testing"

	"marketplace/internal/apperrors"
	"marketplace/internal/models"
	"marketplace/internal/repositories"
	"marketplace/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService_GetUserByID(t *testing.T) {
	db := setupTestDB(t)
	svc := services.NewUserService(repositories.NewGORMUserRepository(db))
	user := seedUser(t, db, nil)

	got, err := svc.GetUserByID(asCaller(user.ID), user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Username, got.Username)
	assert.Empty(t, got.Password, "password hash must never leave the service")

	_, err = svc.GetUserByID(asCaller("someone-else"), user.ID)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)

	admin := services.Caller{UserID: "admin-id", Role: models.RoleAdmin}
	_, err = svc.GetUserByID(admin, user.ID)
	assert.NoError(t, err)

	_, err = svc.GetUserByID(admin, "ghost")
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestUserService_SetShippingAddress(t *testing.T) {
	db := setupTestDB(t)
	svc := services.NewUserService(repositories.NewGORMUserRepository(db))
	user := seedUser(t, db, nil)
	ward := seedGeoChain(t, db, "79", "760", "26734")

	addr := &models.AddressBook{
		Name:          "Receiver",
		Phone:         "0900000000",
		AddressDetail: "42 Elm Street",
		WardCode:      &ward,
	}
	require.NoError(t, svc.SetShippingAddress(asCaller(user.ID), user.ID, addr))

	got, err := svc.GetUserByID(asCaller(user.ID), user.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Address)
	assert.Equal(t, "42 Elm Street", got.Address.AddressDetail)
	require.NotNil(t, got.Address.District())
	assert.Equal(t, "760", got.Address.District().Code)

	// Replacing the address wins over the old one
	newer := &models.AddressBook{Name: "Receiver", Phone: "0911111111"}
	require.NoError(t, svc.SetShippingAddress(asCaller(user.ID), user.ID, newer))
	got, err = svc.GetUserByID(asCaller(user.ID), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "0911111111", got.Address.Phone)
}

func TestUserService_SetShippingAddress_Validation(t *testing.T) {
	db := setupTestDB(t)
	svc := services.NewUserService(repositories.NewGORMUserRepository(db))
	user := seedUser(t, db, nil)

	err := svc.SetShippingAddress(asCaller(user.ID), user.ID, &models.AddressBook{Phone: "0900000000"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidValue)

	err = svc.SetShippingAddress(asCaller("intruder"), user.ID, &models.AddressBook{Name: "X", Phone: "1"})
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)

	err = svc.SetShippingAddress(services.Caller{UserID: "a", Role: models.RoleAdmin}, "ghost", &models.AddressBook{Name: "X", Phone: "1"})
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

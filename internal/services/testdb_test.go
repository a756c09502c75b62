package services_test

import (
	"fmt"
	"strings"
	"testing"

	"marketplace/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens a uniquely named in-memory SQLite database so tests
// never share state, and migrates the full schema.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:test_%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.Province{},
		&models.District{},
		&models.Ward{},
		&models.AddressBook{},
		&models.User{},
		&models.Shop{},
		&models.Product{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Shipment{},
		&models.Payment{},
	)
	require.NoError(t, err)
	return db
}

// seedGeoChain creates a province -> district -> ward chain and returns the
// ward code.
func seedGeoChain(t *testing.T, db *gorm.DB, provinceCode, districtCode, wardCode string) string {
	t.Helper()
	require.NoError(t, db.Create(&models.Province{Code: provinceCode, FullName: "Province " + provinceCode}).Error)
	require.NoError(t, db.Create(&models.District{Code: districtCode, FullName: "District " + districtCode, ProvinceCode: provinceCode}).Error)
	require.NoError(t, db.Create(&models.Ward{Code: wardCode, FullName: "Ward " + wardCode, DistrictCode: districtCode}).Error)
	return wardCode
}

// seedAddress creates an address book entry, optionally anchored to a ward.
func seedAddress(t *testing.T, db *gorm.DB, wardCode *string) *models.AddressBook {
	t.Helper()
	addr := &models.AddressBook{
		ID:            uuid.New().String(),
		Name:          "Receiver",
		Phone:         "0900000000",
		AddressDetail: "123 Test Street",
		WardCode:      wardCode,
	}
	require.NoError(t, db.Create(addr).Error)
	return addr
}

// seedUser creates a user, optionally with a shipping address.
func seedUser(t *testing.T, db *gorm.DB, addressID *string) *models.User {
	t.Helper()
	id := uuid.New().String()
	user := &models.User{
		ID:        id,
		Username:  "user_" + id[:8],
		Email:     id[:8] + "@example.com",
		Password:  "hashed",
		Role:      models.RoleUser,
		AddressID: addressID,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// seedShop creates a shop, optionally with an address.
func seedShop(t *testing.T, db *gorm.DB, name string, addressID *string) *models.Shop {
	t.Helper()
	shop := &models.Shop{
		ID:        uuid.New().String(),
		OwnerID:   uuid.New().String(),
		Name:      name,
		AddressID: addressID,
	}
	require.NoError(t, db.Create(shop).Error)
	return shop
}

// seedProduct creates a product belonging to a shop.
func seedProduct(t *testing.T, db *gorm.DB, shopID, name string, price, weight float64) *models.Product {
	t.Helper()
	product := &models.Product{
		ID:     uuid.New().String(),
		Name:   name,
		Price:  price,
		Weight: weight,
		Stock:  100,
		ShopID: shopID,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

package service

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/JonathanDVZ/CRMGraphQL/internal/models"
)

func initTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to connect to in-memory db")

	err = db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Client{},
		&models.Order{},
		&models.OrderLine{},
	)
	require.NoError(t, err, "failed to migrate tables")

	return db
}

func createSeller(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	user := models.User{
		Name:         "Test",
		LastName:     "Seller",
		Email:        email,
		PasswordHash: "irrelevant",
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func createClient(t *testing.T, db *gorm.DB, sellerID uint, email string) *models.Client {
	t.Helper()

	client := models.Client{
		Name:     "Test",
		LastName: "Client",
		Company:  "ACME",
		Email:    email,
		SellerID: sellerID,
	}
	require.NoError(t, db.Create(&client).Error)
	return &client
}

func createProduct(t *testing.T, db *gorm.DB, name string, price float64, stock uint) *models.Product {
	t.Helper()

	product := models.Product{Name: name, Price: price, Stock: stock}
	require.NoError(t, db.Create(&product).Error)
	return &product
}

func productStock(t *testing.T, db *gorm.DB, id uint) uint {
	t.Helper()

	var product models.Product
	require.NoError(t, db.First(&product, id).Error)
	return product.Stock
}

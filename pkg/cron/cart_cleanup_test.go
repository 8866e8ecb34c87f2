package cron

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"easyhousing_backend/internal/model"
	"easyhousing_backend/pkg/database"
)

func TestCleanupOrphanedCarts(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file:cartcleanup?mode=memory&cache=shared"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Buyer{},
		&model.Seller{},
		&model.Property{},
		&model.Cart{},
	))
	database.DB = db

	user := model.User{Username: "seller1", Password: "x", UserType: model.UserTypeSeller}
	require.NoError(t, db.Create(&user).Error)
	seller := model.Seller{UserID: user.ID, FirstName: "S", Phone: "1", Email: "s@example.com", Address: "a", StateID: 1, CityID: 1}
	require.NoError(t, db.Create(&seller).Error)
	buyerUser := model.User{Username: "buyer1", Password: "x", UserType: model.UserTypeBuyer}
	require.NoError(t, db.Create(&buyerUser).Error)
	buyer := model.Buyer{UserID: buyerUser.ID, FirstName: "B", Phone: "2", Email: "b@example.com"}
	require.NoError(t, db.Create(&buyer).Error)

	kept := model.Property{
		Name: "Kept", Type: model.PropertyTypeHouse, Option: model.PropertyOptionSell,
		Address: "a", Region: "r", PriceRange: 1, SellerID: seller.ID, IsActive: true,
	}
	doomed := model.Property{
		Name: "Doomed", Type: model.PropertyTypeHouse, Option: model.PropertyOptionSell,
		Address: "a", Region: "r", PriceRange: 1, SellerID: seller.ID, IsActive: true,
	}
	require.NoError(t, db.Create(&kept).Error)
	require.NoError(t, db.Create(&doomed).Error)

	require.NoError(t, db.Create(&model.Cart{BuyerID: buyer.ID, PropertyID: kept.ID}).Error)
	require.NoError(t, db.Create(&model.Cart{BuyerID: buyer.ID, PropertyID: doomed.ID}).Error)

	require.NoError(t, db.Delete(&doomed).Error)

	CleanupOrphanedCarts()

	var carts []model.Cart
	require.NoError(t, db.Find(&carts).Error)
	require.Len(t, carts, 1)
	require.Equal(t, kept.ID, carts[0].PropertyID)
}

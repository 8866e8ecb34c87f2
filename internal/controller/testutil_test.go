package controller_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"easyhousing_backend/internal/controller"
	"easyhousing_backend/internal/middleware"
	"easyhousing_backend/internal/model"
	"easyhousing_backend/pkg/database"
	"easyhousing_backend/pkg/utils/jwt"
)

// setupTestDB points the package-level connection at a fresh in-memory
// database, one per test.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Buyer{},
		&model.Seller{},
		&model.State{},
		&model.City{},
		&model.Property{},
		&model.PropertyImage{},
		&model.Cart{},
	))

	database.DB = db
	return db
}

func testApp() *fiber.App {
	app := fiber.New()
	api := app.Group("/api")

	api.Post("/auth/register", controller.Register)
	api.Post("/auth/login", controller.Login)
	api.Get("/me", middleware.AuthMiddleware(), controller.GetMe)
	api.Get("/locations/states", controller.GetStates)
	api.Get("/locations/states/:stateID/cities", controller.GetCitiesByState)
	api.Get("/images/:id", controller.GetPropertyImage)
	api.Get("/cart/count", middleware.OptionalAuth(), controller.GetCartCount)

	buyer := api.Group("/buyer", middleware.AuthMiddleware(), middleware.RequireRole(string(model.UserTypeBuyer)))
	buyer.Get("/dashboard", controller.GetBuyerDashboard)
	buyer.Get("/search", controller.SearchProperties)
	buyer.Get("/properties/:id", controller.GetPropertyDetails)
	buyer.Post("/cart", controller.AddToCart)
	buyer.Get("/cart", controller.ViewCart)
	buyer.Delete("/cart/:id", controller.RemoveFromCart)
	buyer.Post("/compare", controller.CompareProperties)

	seller := api.Group("/seller", middleware.AuthMiddleware(), middleware.RequireRole(string(model.UserTypeSeller)))
	seller.Get("/dashboard", controller.GetSellerDashboard)
	seller.Post("/properties", controller.CreateProperty)
	seller.Get("/properties/verified", controller.ListVerifiedProperties)
	seller.Get("/properties/pending", controller.ListPendingProperties)
	seller.Get("/properties/deactivated", controller.ListDeactivatedProperties)
	seller.Get("/properties/:id", controller.GetSellerProperty)
	seller.Put("/properties/:id", controller.UpdateProperty)

	admin := api.Group("/admin", middleware.AuthMiddleware(), middleware.RequireRole(string(model.UserTypeAdmin)))
	admin.Get("/dashboard", controller.GetAdminDashboard)
	admin.Get("/properties/pending", controller.ListAllPendingProperties)
	admin.Get("/properties/verified", controller.ListAllVerifiedProperties)
	admin.Get("/properties/:id", controller.GetAdminPropertyDetails)
	admin.Post("/properties/:id/approve", controller.ApproveProperty)
	admin.Post("/properties/:id/deactivate", controller.DeactivateProperty)

	return app
}

func createUser(t *testing.T, db *gorm.DB, username string, userType model.UserType) (model.User, string) {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte("Passw0rd!"), bcrypt.MinCost)
	require.NoError(t, err)

	user := model.User{Username: username, Password: string(hashed), UserType: userType}
	require.NoError(t, db.Create(&user).Error)

	token, err := jwt.GenerateToken(user.ID, user.Username, string(user.UserType))
	require.NoError(t, err)

	return user, token
}

func createBuyer(t *testing.T, db *gorm.DB, username string) (model.Buyer, string) {
	t.Helper()

	user, token := createUser(t, db, username, model.UserTypeBuyer)
	buyer := model.Buyer{
		UserID:    user.ID,
		FirstName: "Test",
		LastName:  "Buyer",
		Phone:     "5550001",
		Email:     username + "@example.com",
	}
	require.NoError(t, db.Create(&buyer).Error)
	return buyer, token
}

func createSeller(t *testing.T, db *gorm.DB, username string) (model.Seller, string) {
	t.Helper()

	user, token := createUser(t, db, username, model.UserTypeSeller)
	seller := model.Seller{
		UserID:    user.ID,
		FirstName: "Test",
		LastName:  "Seller",
		Phone:     "5550002",
		Email:     username + "@example.com",
		Address:   "12 Market Road",
		StateID:   1,
		CityID:    1,
	}
	require.NoError(t, db.Create(&seller).Error)
	return seller, token
}

func createAdmin(t *testing.T, db *gorm.DB) string {
	t.Helper()

	_, token := createUser(t, db, "admin", model.UserTypeAdmin)
	return token
}

func createProperty(t *testing.T, db *gorm.DB, sellerID uint, name string, mutate func(*model.Property)) model.Property {
	t.Helper()

	property := model.Property{
		Name:       name,
		Type:       model.PropertyTypeHouse,
		Option:     model.PropertyOptionSell,
		Address:    "1 Residency Road, Bangalore",
		Region:     "Bangalore",
		PriceRange: 500000,
		Landmark:   "Near park",
		SellerID:   sellerID,
	}
	if mutate != nil {
		mutate(&property)
	}
	require.NoError(t, db.Create(&property).Error)
	return property
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

// pngBytes encodes a minimal valid PNG for upload tests.
func pngBytes(t *testing.T) []byte {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 1, 1))))
	return buf.Bytes()
}

// multipartProperty builds a listing submission with n attached images.
func multipartProperty(t *testing.T, fields map[string]string, imageCount int) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}

	img := pngBytes(t)
	for i := 0; i < imageCount; i++ {
		part, err := writer.CreateFormFile("images", fmt.Sprintf("photo%d.png", i))
		require.NoError(t, err)
		_, err = part.Write(img)
		require.NoError(t, err)
	}

	require.NoError(t, writer.Close())
	return &buf, writer.FormDataContentType()
}

package main

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"easyhousing_backend/internal/controller"
	"easyhousing_backend/internal/middleware"
	"easyhousing_backend/internal/model"
	"easyhousing_backend/pkg/config"
	"easyhousing_backend/pkg/cron"
	"easyhousing_backend/pkg/database"
	"easyhousing_backend/pkg/seed"
	"easyhousing_backend/pkg/utils/jwt"
)

func setupRoutes(app *fiber.App) {
	api := app.Group("/api")

	// Auth Routes
	auth := api.Group("/auth")
	auth.Post("/register", controller.Register)
	auth.Post("/login", limiter.New(limiter.Config{
		Max:        10,
		Expiration: time.Minute,
	}), controller.Login)

	api.Get("/me", middleware.AuthMiddleware(), controller.GetMe)

	// Location lookups for the registration form
	api.Get("/locations/states", controller.GetStates)
	api.Get("/locations/states/:stateID/cities", controller.GetCitiesByState)

	// Image blobs served inline from the database
	api.Get("/images/:id", controller.GetPropertyImage)

	// Cart badge count tolerates anonymous callers
	api.Get("/cart/count", middleware.OptionalAuth(), controller.GetCartCount)

	// Buyer Routes
	buyer := api.Group("/buyer", middleware.AuthMiddleware(), middleware.RequireRole(string(model.UserTypeBuyer)))
	buyer.Get("/dashboard", controller.GetBuyerDashboard)
	buyer.Get("/search", controller.SearchProperties)
	buyer.Get("/properties/:id", controller.GetPropertyDetails)
	buyer.Post("/cart", controller.AddToCart)
	buyer.Get("/cart", controller.ViewCart)
	buyer.Delete("/cart/:id", controller.RemoveFromCart)
	buyer.Post("/compare", controller.CompareProperties)

	// Seller Routes
	seller := api.Group("/seller", middleware.AuthMiddleware(), middleware.RequireRole(string(model.UserTypeSeller)))
	seller.Get("/dashboard", controller.GetSellerDashboard)
	seller.Post("/properties", controller.CreateProperty)
	seller.Get("/properties/verified", controller.ListVerifiedProperties)
	seller.Get("/properties/pending", controller.ListPendingProperties)
	seller.Get("/properties/deactivated", controller.ListDeactivatedProperties)
	seller.Get("/properties/:id", controller.GetSellerProperty)
	seller.Put("/properties/:id", controller.UpdateProperty)

	// Admin Routes
	admin := api.Group("/admin", middleware.AuthMiddleware(), middleware.RequireRole(string(model.UserTypeAdmin)))
	admin.Get("/dashboard", controller.GetAdminDashboard)
	admin.Get("/properties/pending", controller.ListAllPendingProperties)
	admin.Get("/properties/verified", controller.ListAllVerifiedProperties)
	admin.Get("/properties/:id", controller.GetAdminPropertyDetails)
	admin.Post("/properties/:id/approve", controller.ApproveProperty)
	admin.Post("/properties/:id/deactivate", controller.DeactivateProperty)
}

func main() {
	cfg := config.Load()

	jwt.Init(cfg.JWT.Secret)

	database.InitDB(cfg.Database.URL)
	err := database.MigrateDatabase(
		&model.User{},
		&model.Buyer{},
		&model.Seller{},
		&model.State{},
		&model.City{},
		&model.Property{},
		&model.PropertyImage{},
		&model.Cart{},
	)
	if err != nil {
		log.Printf("Migration warning: %v", err)
	}

	seed.SeedLocations(database.GetDB())
	seed.SeedAdmin(database.GetDB(), cfg.Admin.Username, cfg.Admin.Password)

	cron.InitCartCleanupCron()

	app := fiber.New(fiber.Config{
		BodyLimit: 32 * 1024 * 1024, // six images at 5MB each plus form fields
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	app.Use(logger.New())
	app.Use(cors.New())

	setupRoutes(app)

	log.Printf("Server is running on port %s", cfg.Server.Port)
	log.Fatal(app.Listen(":" + cfg.Server.Port))
}

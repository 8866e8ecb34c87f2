package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"easyhousing_backend/internal/model"
	"easyhousing_backend/pkg/database"
	"easyhousing_backend/pkg/utils/jwt"
)

// currentBuyer resolves the buyer profile for the authenticated user.
func currentBuyer(c *fiber.Ctx) (*model.Buyer, error) {
	claims, ok := c.Locals("user").(*jwt.Claims)
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}

	var buyer model.Buyer
	if err := database.GetDB().Where("user_id = ?", claims.UserID).First(&buyer).Error; err != nil {
		return nil, err
	}
	return &buyer, nil
}

// GetBuyerDashboard returns the buyer's cart badge count.
func GetBuyerDashboard(c *fiber.Ctx) error {
	buyer, err := currentBuyer(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Buyer profile not found",
		})
	}

	var count int64
	database.GetDB().Model(&model.Cart{}).Where("buyer_id = ?", buyer.ID).Count(&count)

	return c.JSON(fiber.Map{
		"cart_item_count": count,
	})
}

// SearchProperties filters and sorts the live listing set. Region is a
// substring match against the address, type is exact, and sorting is
// ascending by price or name (default name).
func SearchProperties(c *fiber.Ctx) error {
	region := c.Query("region")
	propertyType := c.Query("type")
	sortOrder := c.Query("sort", "name")

	query := database.GetDB().
		Where("is_active = ?", true).
		Preload("Seller").
		Preload("Images")

	if region != "" {
		query = query.Where("address LIKE ?", "%"+region+"%")
	}
	if propertyType != "" {
		query = query.Where("type = ?", propertyType)
	}

	if sortOrder == "price" {
		query = query.Order("price_range asc")
	} else {
		query = query.Order("name asc")
	}

	var properties []model.Property
	if err := query.Find(&properties).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch properties",
		})
	}

	return c.JSON(properties)
}

// GetPropertyDetails returns the full listing with the seller's contact
// details for the enquiry panel.
func GetPropertyDetails(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid property ID",
		})
	}

	var property model.Property
	if err := database.GetDB().
		Preload("Seller").
		Preload("Images").
		First(&property, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Property not found",
		})
	}

	return c.JSON(fiber.Map{
		"property": property,
		"seller":   property.Seller.GetContactInfo(),
	})
}

type AddToCartInput struct {
	PropertyID uint `json:"property_id"`
}

// AddToCart saves a property for the buyer. The composite unique index on
// (buyer_id, property_id) makes the insert the duplicate check: a second
// identical add reports success with a distinct message and no new row.
func AddToCart(c *fiber.Ctx) error {
	buyer, err := currentBuyer(c)
	if err != nil {
		return c.JSON(fiber.Map{
			"success": false,
			"message": "You must be logged in as a buyer to add items to the cart.",
		})
	}

	input := new(AddToCartInput)
	if err := c.BodyParser(input); err != nil || input.PropertyID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid property ID.",
		})
	}

	var property model.Property
	if err := database.GetDB().Where("is_active = ?", true).First(&property, input.PropertyID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": "Property not found.",
		})
	}

	cartItem := model.Cart{BuyerID: buyer.ID, PropertyID: property.ID}
	if err := database.GetDB().Create(&cartItem).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.JSON(fiber.Map{
				"success": true,
				"message": "This property is already in your cart.",
			})
		}
		return c.JSON(fiber.Map{
			"success": false,
			"message": "An error occurred while saving to your cart.",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Property successfully added to your cart.",
	})
}

type CartItemView struct {
	CartID       uint    `json:"cart_id"`
	PropertyID   uint    `json:"property_id"`
	PropertyName string  `json:"property_name"`
	PropertyType string  `json:"property_type"`
	Option       string  `json:"option"`
	PriceRange   float64 `json:"price_range"`
	FirstImageID *uint   `json:"first_image_id"`
}

// ViewCart lists the buyer's saved properties with key display fields and
// the id of each property's first image. The inner join hides cart rows
// whose property has been deleted; the nightly cleanup reclaims them.
func ViewCart(c *fiber.Ctx) error {
	buyer, err := currentBuyer(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Buyer profile not found",
		})
	}

	items := []CartItemView{}
	err = database.GetDB().Table("carts").
		Select(`carts.id AS cart_id,
			properties.id AS property_id,
			properties.name AS property_name,
			properties.type AS property_type,
			properties.option AS option,
			properties.price_range AS price_range,
			(SELECT MIN(property_images.id) FROM property_images
			 WHERE property_images.property_id = properties.id
			   AND property_images.deleted_at IS NULL) AS first_image_id`).
		Joins("JOIN properties ON properties.id = carts.property_id AND properties.deleted_at IS NULL").
		Where("carts.buyer_id = ?", buyer.ID).
		Order("carts.id asc").
		Scan(&items).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch cart",
		})
	}

	return c.JSON(items)
}

// RemoveFromCart deletes a cart row only when it belongs to the caller.
// A missing or foreign id is a no-op success: the end state the buyer
// asked for already holds.
func RemoveFromCart(c *fiber.Ctx) error {
	buyer, err := currentBuyer(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Buyer profile not found",
		})
	}

	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid cart ID",
		})
	}

	database.GetDB().Where("buyer_id = ? AND id = ?", buyer.ID, id).Delete(&model.Cart{})

	return c.JSON(fiber.Map{
		"success": true,
	})
}

type CompareInput struct {
	IDs []uint `json:"ids"`
}

// CompareProperties returns exactly two listings side by side.
func CompareProperties(c *fiber.Ctx) error {
	input := new(CompareInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	if len(input.IDs) != 2 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Please select exactly two properties to compare.",
		})
	}

	var properties []model.Property
	if err := database.GetDB().
		Preload("Seller").
		Preload("Images").
		Where("id IN ?", input.IDs).
		Find(&properties).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch properties",
		})
	}

	return c.JSON(properties)
}

// GetCartCount reports the cart badge count. Anonymous or non-buyer
// callers get zero rather than an error; the navbar polls this endpoint
// before login completes.
func GetCartCount(c *fiber.Ctx) error {
	buyer, err := currentBuyer(c)
	if err != nil {
		return c.JSON(fiber.Map{"count": 0})
	}

	var count int64
	database.GetDB().Model(&model.Cart{}).Where("buyer_id = ?", buyer.ID).Count(&count)

	return c.JSON(fiber.Map{"count": count})
}

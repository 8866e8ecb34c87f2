package controller

import (
	"io"
	"mime/multipart"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"easyhousing_backend/internal/model"
	"easyhousing_backend/pkg/database"
	"easyhousing_backend/pkg/utils/jwt"
	"easyhousing_backend/pkg/utils/validation"
)

// MaxPropertyImages caps how many images a listing carries. Extra files
// in a submission are dropped, not rejected.
const MaxPropertyImages = 6

type PropertyInput struct {
	Name           string   `json:"name"`
	Type           string   `json:"type"`
	Option         string   `json:"option"`
	Description    string   `json:"description"`
	Address        string   `json:"address"`
	Region         string   `json:"region"`
	PriceRange     float64  `json:"price_range"`
	InitialDeposit *float64 `json:"initial_deposit"`
	Landmark       string   `json:"landmark"`
}

func validatePropertyInput(input *PropertyInput) map[string]string {
	fieldErrors := map[string]string{}

	if input.Name == "" {
		fieldErrors["name"] = "Property name is required."
	}
	if input.Type == "" {
		fieldErrors["type"] = "Property type is required."
	}
	if input.Option != string(model.PropertyOptionSell) && input.Option != string(model.PropertyOptionRent) {
		fieldErrors["option"] = "Please select an option (Sell or Rent)."
	}
	if input.Address == "" {
		fieldErrors["address"] = "Address is required."
	}
	if input.Region == "" {
		fieldErrors["region"] = "Region is required."
	}
	if input.PriceRange <= 0 {
		fieldErrors["price_range"] = "Price must be a positive number."
	}
	if input.InitialDeposit != nil && *input.InitialDeposit < 0 {
		fieldErrors["initial_deposit"] = "Initial deposit cannot be negative."
	}
	if input.Landmark == "" {
		fieldErrors["landmark"] = "Landmark is required."
	}

	return fieldErrors
}

// propertyInputFromForm reads the multipart form fields of a listing
// submission.
func propertyInputFromForm(c *fiber.Ctx) (*PropertyInput, error) {
	input := &PropertyInput{
		Name:        c.FormValue("name"),
		Type:        c.FormValue("type"),
		Option:      c.FormValue("option"),
		Description: c.FormValue("description"),
		Address:     c.FormValue("address"),
		Region:      c.FormValue("region"),
		Landmark:    c.FormValue("landmark"),
	}

	if v := c.FormValue("price_range"); v != "" {
		price, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, err
		}
		input.PriceRange = price
	}

	if v := c.FormValue("initial_deposit"); v != "" {
		deposit, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, err
		}
		input.InitialDeposit = &deposit
	}

	return input, nil
}

// currentSeller resolves the seller profile for the authenticated user.
func currentSeller(c *fiber.Ctx) (*model.Seller, error) {
	claims := c.Locals("user").(*jwt.Claims)

	var seller model.Seller
	if err := database.GetDB().Where("user_id = ?", claims.UserID).First(&seller).Error; err != nil {
		return nil, err
	}
	return &seller, nil
}

// GetSellerDashboard returns the per-state listing counts for the seller.
func GetSellerDashboard(c *fiber.Ctx) error {
	seller, err := currentSeller(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Seller profile not found",
		})
	}

	db := database.GetDB()
	var verified, pending, deactivated int64

	db.Model(&model.Property{}).
		Where("seller_id = ? AND is_active = ?", seller.ID, true).
		Count(&verified)
	db.Model(&model.Property{}).
		Where("seller_id = ? AND is_active = ? AND deactivation_reason IS NULL", seller.ID, false).
		Count(&pending)
	db.Model(&model.Property{}).
		Where("seller_id = ? AND is_active = ? AND deactivation_reason IS NOT NULL", seller.ID, false).
		Count(&deactivated)

	return c.JSON(fiber.Map{
		"verified_count":    verified,
		"pending_count":     pending,
		"deactivated_count": deactivated,
	})
}

// CreateProperty persists a new listing in the pending state, then its
// images referencing the fresh id, all in one transaction. At most six
// images are kept.
func CreateProperty(c *fiber.Ctx) error {
	seller, err := currentSeller(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Seller profile not found",
		})
	}

	input, err := propertyInputFromForm(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	if fieldErrors := validatePropertyInput(input); len(fieldErrors) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"errors": fieldErrors,
		})
	}

	var files []*multipart.FileHeader
	if form, err := c.MultipartForm(); err == nil && form != nil {
		files = form.File["images"]
	}
	if len(files) > MaxPropertyImages {
		files = files[:MaxPropertyImages]
	}

	property := model.Property{
		Name:           input.Name,
		Type:           model.PropertyType(input.Type),
		Option:         model.PropertyOption(input.Option),
		Description:    input.Description,
		Address:        input.Address,
		Region:         input.Region,
		PriceRange:     input.PriceRange,
		InitialDeposit: input.InitialDeposit,
		Landmark:       input.Landmark,
		IsActive:       false,
		SellerID:       seller.ID,
	}

	tx := database.GetDB().Begin()

	if err := tx.Create(&property).Error; err != nil {
		tx.Rollback()
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not create property",
		})
	}

	for _, file := range files {
		image, err := imageFromUpload(file, property.ID)
		if err != nil {
			tx.Rollback()
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		if err := tx.Create(image).Error; err != nil {
			tx.Rollback()
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Could not save images",
			})
		}
	}

	if err := tx.Commit().Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not complete the property creation",
		})
	}

	database.GetDB().Preload("Images").First(&property, property.ID)

	return c.Status(fiber.StatusCreated).JSON(property)
}

// imageFromUpload validates an uploaded file and reads it into an inline
// blob row.
func imageFromUpload(file *multipart.FileHeader, propertyID uint) (*model.PropertyImage, error) {
	contentType, err := validation.ValidateImage(file)
	if err != nil {
		return nil, err
	}

	f, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}

	return &model.PropertyImage{
		PropertyID:  propertyID,
		Data:        data,
		ContentType: contentType,
	}, nil
}

// GetSellerProperty returns one of the seller's own listings, for the
// edit form.
func GetSellerProperty(c *fiber.Ctx) error {
	seller, err := currentSeller(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Seller profile not found",
		})
	}

	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid property ID",
		})
	}

	var property model.Property
	if err := database.GetDB().
		Where("seller_id = ?", seller.ID).
		Preload("Images").
		First(&property, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Property not found",
		})
	}

	return c.JSON(property)
}

// UpdateProperty applies a seller's edit. Edited listings always go back
// to pending with the deactivation reason cleared, so every change is
// re-verified by an admin.
func UpdateProperty(c *fiber.Ctx) error {
	seller, err := currentSeller(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Seller profile not found",
		})
	}

	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid property ID",
		})
	}

	var property model.Property
	if err := database.GetDB().Where("seller_id = ?", seller.ID).First(&property, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Property not found",
		})
	}

	input := new(PropertyInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	if fieldErrors := validatePropertyInput(input); len(fieldErrors) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"errors": fieldErrors,
		})
	}

	property.Name = input.Name
	property.Type = model.PropertyType(input.Type)
	property.Option = model.PropertyOption(input.Option)
	property.Description = input.Description
	property.Address = input.Address
	property.Region = input.Region
	property.PriceRange = input.PriceRange
	property.InitialDeposit = input.InitialDeposit
	property.Landmark = input.Landmark
	property.ResetToPending()

	if err := database.GetDB().Save(&property).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to save changes. Please try again.",
		})
	}

	return c.JSON(fiber.Map{
		"message":  "Property has been updated and resubmitted for verification.",
		"property": property,
	})
}

// listSellerProperties fetches the seller's listings filtered to one
// moderation state.
func listSellerProperties(c *fiber.Ctx, scope func(*gorm.DB) *gorm.DB) error {
	seller, err := currentSeller(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Seller profile not found",
		})
	}

	var properties []model.Property
	query := scope(database.GetDB().Where("seller_id = ?", seller.ID)).
		Preload("Images").
		Order("created_at desc")
	if err := query.Find(&properties).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch properties",
		})
	}

	return c.JSON(properties)
}

// ListVerifiedProperties lists the seller's live listings.
func ListVerifiedProperties(c *fiber.Ctx) error {
	return listSellerProperties(c, func(db *gorm.DB) *gorm.DB {
		return db.Where("is_active = ?", true)
	})
}

// ListPendingProperties lists the seller's listings awaiting review.
func ListPendingProperties(c *fiber.Ctx) error {
	return listSellerProperties(c, func(db *gorm.DB) *gorm.DB {
		return db.Where("is_active = ? AND deactivation_reason IS NULL", false)
	})
}

// ListDeactivatedProperties lists the seller's listings an admin took down.
func ListDeactivatedProperties(c *fiber.Ctx) error {
	return listSellerProperties(c, func(db *gorm.DB) *gorm.DB {
		return db.Where("is_active = ? AND deactivation_reason IS NOT NULL", false)
	})
}

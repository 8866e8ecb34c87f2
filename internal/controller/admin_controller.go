package controller

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"easyhousing_backend/internal/model"
	"easyhousing_backend/pkg/database"
)

// AdminDashboard holds the moderation queue overview.
type AdminDashboard struct {
	PendingCount  int64            `json:"pending_count"`
	LiveCount     int64            `json:"live_count"`
	SellerCount   int64            `json:"seller_count"`
	BuyerCount    int64            `json:"buyer_count"`
	RecentPending []model.Property `json:"recent_pending"`
}

// GetAdminDashboard returns site counts and the five most recently
// submitted pending properties.
func GetAdminDashboard(c *fiber.Ctx) error {
	db := database.GetDB()

	var stats AdminDashboard

	db.Model(&model.Property{}).
		Where("is_active = ? AND deactivation_reason IS NULL", false).
		Count(&stats.PendingCount)
	db.Model(&model.Property{}).
		Where("is_active = ?", true).
		Count(&stats.LiveCount)
	db.Model(&model.Seller{}).Count(&stats.SellerCount)
	db.Model(&model.Buyer{}).Count(&stats.BuyerCount)

	if err := db.
		Where("is_active = ? AND deactivation_reason IS NULL", false).
		Preload("Seller").
		Order("id desc").
		Limit(5).
		Find(&stats.RecentPending).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch dashboard",
		})
	}

	return c.JSON(stats)
}

// ListAllPendingProperties returns the full moderation queue.
func ListAllPendingProperties(c *fiber.Ctx) error {
	var properties []model.Property
	if err := database.GetDB().
		Where("is_active = ? AND deactivation_reason IS NULL", false).
		Preload("Seller").
		Order("created_at desc").
		Find(&properties).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch properties",
		})
	}

	return c.JSON(properties)
}

// ListAllVerifiedProperties returns the live set with optional exact
// seller and substring region filters.
func ListAllVerifiedProperties(c *fiber.Ctx) error {
	query := database.GetDB().
		Where("is_active = ?", true).
		Preload("Seller")

	if sellerID := c.QueryInt("seller_id"); sellerID > 0 {
		query = query.Where("seller_id = ?", sellerID)
	}
	if region := c.Query("region"); region != "" {
		query = query.Where("region LIKE ?", "%"+region+"%")
	}

	var properties []model.Property
	if err := query.Order("created_at desc").Find(&properties).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch properties",
		})
	}

	return c.JSON(properties)
}

// GetAdminPropertyDetails returns the full listing for moderation review.
func GetAdminPropertyDetails(c *fiber.Ctx) error {
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

	return c.JSON(property)
}

// ApproveProperty makes a pending property live, clearing any previous
// rejection reason.
func ApproveProperty(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid property ID",
		})
	}

	var property model.Property
	if err := database.GetDB().First(&property, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Property not found",
		})
	}

	property.Approve()

	if err := database.GetDB().Save(&property).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "An error occurred while approving the property.",
		})
	}

	return c.JSON(fiber.Map{
		"message":  fmt.Sprintf("Property '%s' has been approved.", property.Name),
		"property": property,
	})
}

type DeactivateInput struct {
	Reason string `json:"reason"`
}

// DeactivateProperty takes a listing off the live set. A non-empty reason
// is required; without one the property is left untouched.
func DeactivateProperty(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid property ID",
		})
	}

	input := new(DeactivateInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	if strings.TrimSpace(input.Reason) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"errors": map[string]string{"reason": "A reason for deactivation is required."},
		})
	}

	var property model.Property
	if err := database.GetDB().First(&property, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Property not found",
		})
	}

	property.Deactivate(input.Reason)

	if err := database.GetDB().Save(&property).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "An error occurred while deactivating the property.",
		})
	}

	return c.JSON(fiber.Map{
		"message":  fmt.Sprintf("Property '%s' has been deactivated.", property.Name),
		"property": property,
	})
}

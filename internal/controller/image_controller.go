package controller

import (
	"github.com/gofiber/fiber/v2"

	"easyhousing_backend/internal/model"
	"easyhousing_backend/pkg/database"
)

// GetPropertyImage serves an image blob straight from the database.
func GetPropertyImage(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid image ID",
		})
	}

	var image model.PropertyImage
	if err := database.GetDB().First(&image, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Image not found",
		})
	}

	c.Set(fiber.HeaderContentType, image.ContentType)
	return c.Send(image.Data)
}

package controller

import (
	"github.com/gofiber/fiber/v2"

	"easyhousing_backend/internal/model"
	"easyhousing_backend/pkg/database"
)

// GetStates lists the states for the registration address dropdown.
func GetStates(c *fiber.Ctx) error {
	var states []model.State
	if err := database.GetDB().Order("name asc").Find(&states).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch states",
		})
	}

	return c.JSON(fiber.Map{
		"states": states,
	})
}

// GetCitiesByState returns {value, text} pairs for the dependent city
// dropdown.
func GetCitiesByState(c *fiber.Ctx) error {
	stateID, err := c.ParamsInt("stateID")
	if err != nil || stateID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid state ID",
		})
	}

	var cities []model.City
	if err := database.GetDB().Where("state_id = ?", stateID).Order("name asc").Find(&cities).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch cities",
		})
	}

	options := make([]fiber.Map, 0, len(cities))
	for _, city := range cities {
		options = append(options, fiber.Map{
			"value": city.ID,
			"text":  city.Name,
		})
	}

	return c.JSON(options)
}

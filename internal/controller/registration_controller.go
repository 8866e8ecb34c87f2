package controller

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"easyhousing_backend/internal/model"
	"easyhousing_backend/pkg/database"
)

type RegisterInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
	UserType string `json:"user_type" validate:"required"`

	FirstName   string `json:"first_name" validate:"required"`
	LastName    string `json:"last_name"`
	DateOfBirth string `json:"date_of_birth"`
	Phone       string `json:"phone" validate:"required"`
	Email       string `json:"email" validate:"required,email"`

	// Required only when registering as a seller.
	Address string `json:"address"`
	StateID uint   `json:"state_id"`
	CityID  uint   `json:"city_id"`
}

// validateRegisterInput returns field-level validation errors. Seller
// address fields are conditionally required.
func validateRegisterInput(input *RegisterInput) map[string]string {
	fieldErrors := map[string]string{}

	if input.Username == "" {
		fieldErrors["username"] = "Username is required."
	}
	if len(input.Password) < 6 {
		fieldErrors["password"] = "Password must be at least 6 characters."
	}
	if input.UserType != string(model.UserTypeBuyer) && input.UserType != string(model.UserTypeSeller) {
		fieldErrors["user_type"] = "User type must be buyer or seller."
	}
	if input.FirstName == "" {
		fieldErrors["first_name"] = "First name is required."
	}
	if input.Phone == "" {
		fieldErrors["phone"] = "Phone number is required."
	}
	if input.Email == "" {
		fieldErrors["email"] = "Email is required."
	}

	if input.UserType == string(model.UserTypeSeller) {
		if input.Address == "" {
			fieldErrors["address"] = "The Address field is required for Sellers."
		}
		if input.StateID == 0 {
			fieldErrors["state_id"] = "The State field is required for Sellers."
		}
		if input.CityID == 0 {
			fieldErrors["city_id"] = "The City field is required for Sellers."
		}
	}

	return fieldErrors
}

// Register creates the User row plus the role-specific profile in one
// transaction. Username uniqueness is enforced by the store; a duplicate
// surfaces as gorm.ErrDuplicatedKey rather than a racy pre-check.
func Register(c *fiber.Ctx) error {
	input := new(RegisterInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	if fieldErrors := validateRegisterInput(input); len(fieldErrors) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"errors": fieldErrors,
		})
	}

	var dob datatypes.Date
	if input.DateOfBirth != "" {
		parsed, err := time.Parse("2006-01-02", input.DateOfBirth)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"errors": map[string]string{"date_of_birth": "Date of birth must be YYYY-MM-DD."},
			})
		}
		dob = datatypes.Date(parsed)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not hash password",
		})
	}

	user := model.User{
		Username: input.Username,
		Password: string(hashedPassword),
		UserType: model.UserType(input.UserType),
	}

	txErr := database.GetDB().Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}

		if user.UserType == model.UserTypeSeller {
			seller := model.Seller{
				UserID:      user.ID,
				FirstName:   input.FirstName,
				LastName:    input.LastName,
				DateOfBirth: dob,
				Phone:       input.Phone,
				Email:       input.Email,
				Address:     input.Address,
				StateID:     input.StateID,
				CityID:      input.CityID,
			}
			return tx.Create(&seller).Error
		}

		buyer := model.Buyer{
			UserID:      user.ID,
			FirstName:   input.FirstName,
			LastName:    input.LastName,
			DateOfBirth: dob,
			Phone:       input.Phone,
			Email:       input.Email,
		}
		return tx.Create(&buyer).Error
	})

	if txErr != nil {
		if errors.Is(txErr, gorm.ErrDuplicatedKey) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"errors": map[string]string{"username": "Username already exists."},
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "An error occurred while saving. Please try again.",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Registration successful! Please login.",
		"user":    user.GetPublicProfile(),
	})
}

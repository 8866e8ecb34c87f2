package model

import (
	"strings"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Seller struct {
	gorm.Model
	UserID      uint           `json:"user_id" gorm:"uniqueIndex;not null"`
	FirstName   string         `json:"first_name" gorm:"not null"`
	LastName    string         `json:"last_name"`
	DateOfBirth datatypes.Date `json:"date_of_birth"`
	Phone       string         `json:"phone" gorm:"not null"`
	Email       string         `json:"email" gorm:"not null"`
	Address     string         `json:"address" gorm:"not null"`
	StateID     uint           `json:"state_id" gorm:"not null"`
	CityID      uint           `json:"city_id" gorm:"not null"`

	User       User       `json:"-" gorm:"foreignKey:UserID"`
	Properties []Property `json:"-" gorm:"foreignKey:SellerID"`
}

func (s *Seller) GetFullName() string {
	return strings.TrimSpace(s.FirstName + " " + s.LastName)
}

func (s *Seller) GetContactInfo() map[string]interface{} {
	return map[string]interface{}{
		"name":  s.GetFullName(),
		"phone": s.Phone,
		"email": s.Email,
	}
}

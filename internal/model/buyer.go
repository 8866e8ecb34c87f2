package model

import (
	"strings"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Buyer struct {
	gorm.Model
	UserID      uint           `json:"user_id" gorm:"uniqueIndex;not null"`
	FirstName   string         `json:"first_name" gorm:"not null"`
	LastName    string         `json:"last_name"`
	DateOfBirth datatypes.Date `json:"date_of_birth"`
	Phone       string         `json:"phone" gorm:"not null"`
	Email       string         `json:"email" gorm:"not null"`

	User User `json:"-" gorm:"foreignKey:UserID"`
}

func (b *Buyer) GetFullName() string {
	return strings.TrimSpace(b.FirstName + " " + b.LastName)
}

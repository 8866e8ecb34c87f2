package model

import (
	"gorm.io/gorm"
)

type UserType string

const (
	UserTypeBuyer  UserType = "buyer"
	UserTypeSeller UserType = "seller"
	UserTypeAdmin  UserType = "admin"
)

type User struct {
	gorm.Model
	Username string   `json:"username" gorm:"uniqueIndex;not null"`
	Password string   `json:"-" gorm:"not null"`
	UserType UserType `json:"user_type" gorm:"not null"`
}

func (u *User) GetPublicProfile() map[string]interface{} {
	return map[string]interface{}{
		"id":        u.ID,
		"username":  u.Username,
		"user_type": u.UserType,
	}
}

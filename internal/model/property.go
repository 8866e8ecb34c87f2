package model

import (
	"fmt"

	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

// Property Options
type PropertyOption string

const (
	PropertyOptionSell PropertyOption = "Sell"
	PropertyOptionRent PropertyOption = "Rent"
)

// Property Types
type PropertyType string

const (
	PropertyTypeHouse      PropertyType = "House"
	PropertyTypeApartment  PropertyType = "Apartment"
	PropertyTypeVilla      PropertyType = "Villa"
	PropertyTypeLand       PropertyType = "Land"
	PropertyTypeCommercial PropertyType = "Commercial"
)

// PropertyStatus is derived from IsActive and DeactivationReason, never stored.
type PropertyStatus string

const (
	PropertyStatusPending     PropertyStatus = "pending"
	PropertyStatusLive        PropertyStatus = "live"
	PropertyStatusDeactivated PropertyStatus = "deactivated"
)

type Property struct {
	gorm.Model
	Name           string         `json:"name" gorm:"not null"`
	Slug           string         `json:"slug" gorm:"uniqueIndex:idx_seller_property_slug;not null"`
	Type           PropertyType   `json:"type" gorm:"not null"`
	Option         PropertyOption `json:"option" gorm:"not null"`
	Description    string         `json:"description" gorm:"type:text"`
	Address        string         `json:"address" gorm:"not null"`
	Region         string         `json:"region" gorm:"not null"`
	PriceRange     float64        `json:"price_range" gorm:"not null"`
	InitialDeposit *float64       `json:"initial_deposit"`
	Landmark       string         `json:"landmark"`

	// Moderation state. IsActive=true means live; inactive with a nil
	// reason means pending review, inactive with a reason means the
	// property was deactivated by an admin.
	IsActive           bool    `json:"is_active" gorm:"not null;default:false"`
	DeactivationReason *string `json:"deactivation_reason"`

	SellerID uint `json:"seller_id" gorm:"uniqueIndex:idx_seller_property_slug;not null"`

	Seller Seller          `json:"-" gorm:"foreignKey:SellerID"`
	Images []PropertyImage `json:"images" gorm:"foreignKey:PropertyID;constraint:OnDelete:CASCADE"`
}

// PropertyImage holds the image bytes inline. Blobs live in the database
// rather than object storage so a property and its images share one store.
type PropertyImage struct {
	gorm.Model
	PropertyID  uint   `json:"property_id" gorm:"index;not null"`
	Data        []byte `json:"-" gorm:"not null"`
	ContentType string `json:"content_type" gorm:"not null"`

	Property Property `json:"-" gorm:"foreignKey:PropertyID"`
}

func (p *Property) Status() PropertyStatus {
	switch {
	case p.IsActive:
		return PropertyStatusLive
	case p.DeactivationReason != nil:
		return PropertyStatusDeactivated
	default:
		return PropertyStatusPending
	}
}

// Approve makes the property live and clears any previous rejection reason.
func (p *Property) Approve() {
	p.IsActive = true
	p.DeactivationReason = nil
}

// Deactivate takes the property off the live set with the admin's reason.
func (p *Property) Deactivate(reason string) {
	p.IsActive = false
	p.DeactivationReason = &reason
}

// ResetToPending forces re-verification after a seller edit.
func (p *Property) ResetToPending() {
	p.IsActive = false
	p.DeactivationReason = nil
}

// BeforeCreate generates the slug from the property name.
func (p *Property) BeforeCreate(tx *gorm.DB) error {
	if p.Slug == "" {
		s := slug.Make(p.Name)

		// Unscoped: soft-deleted rows still occupy the unique slug index.
		var count int64
		tx.Unscoped().Model(&Property{}).Where("seller_id = ? AND slug = ?", p.SellerID, s).Count(&count)
		if count > 0 {
			s = fmt.Sprintf("%s-%d", s, count+1)
		}

		p.Slug = s
	}
	return nil
}

package model

import (
	"time"
)

// Cart is a buyer's saved property. The composite unique index makes the
// database the arbiter of the at-most-one-row-per-pair invariant; a
// concurrent duplicate insert surfaces as gorm.ErrDuplicatedKey instead
// of a second row.
//
// Carts delete hard, not soft. A soft-deleted row would still occupy the
// unique index and block the buyer from re-adding the property.
type Cart struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	CreatedAt  time.Time `json:"created_at"`
	BuyerID    uint      `json:"buyer_id" gorm:"uniqueIndex:idx_buyer_property;not null"`
	PropertyID uint      `json:"property_id" gorm:"uniqueIndex:idx_buyer_property;not null"`

	Buyer    Buyer    `json:"-" gorm:"foreignKey:BuyerID"`
	Property Property `json:"-" gorm:"foreignKey:PropertyID"`
}

package model

// State and City are static reference data for address dropdowns,
// seeded at startup. They have no lifecycle of their own.

type State struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"uniqueIndex;not null"`

	Cities []City `json:"-" gorm:"foreignKey:StateID"`
}

type City struct {
	ID      uint   `json:"id" gorm:"primaryKey"`
	StateID uint   `json:"state_id" gorm:"index;not null"`
	Name    string `json:"name" gorm:"not null"`

	State State `json:"-" gorm:"foreignKey:StateID"`
}

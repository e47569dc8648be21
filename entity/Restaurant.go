package entity

import (
	"gorm.io/gorm"
)

type Restaurant struct {
	gorm.Model
	Name        string  `json:"name"`
	Address     string  `json:"address"`
	PhoneNumber string  `json:"phoneNumber"`
	Email       string  `json:"email"`
	Category    string  `json:"category"` // salad, breakfast, lunch, dinner, snacks, shakes, desert, ice-cream
	Rating      float64 `gorm:"default:0" json:"rating"`

	UserID uint `json:"ownerId"` // owner (users.id)
	User   User `json:"-"`

	MenuItems []MenuItem `json:"-"`
	Reviews   []Review   `json:"-"`
}

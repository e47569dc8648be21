package entity

import (
	"gorm.io/gorm"
)

// Cart is created lazily on the first add and holds at most one line per
// menu item. One cart per user.
type Cart struct {
	gorm.Model
	UserID uint `gorm:"uniqueIndex" json:"userId"`
	User   User `json:"-"`

	Items []CartItem `json:"items" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

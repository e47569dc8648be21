package entity

import (
	"time"

	"gorm.io/gorm"
)

// Review is unique per (user, restaurant); a second submission updates the
// existing row instead of creating a new one.
type Review struct {
	gorm.Model
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment"`
	ReviewDate time.Time `json:"reviewDate"`

	UserID       uint       `gorm:"uniqueIndex:idx_user_restaurant,priority:1" json:"userId"`
	User         User       `json:"-"`
	RestaurantID uint       `gorm:"uniqueIndex:idx_user_restaurant,priority:2" json:"restaurantId"`
	Restaurant   Restaurant `json:"-"`
}

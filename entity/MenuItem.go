package entity

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type MenuItem struct {
	gorm.Model
	Name        string          `json:"name"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2)" json:"price"`
	IsAvailable bool            `gorm:"default:true" json:"isAvailable"`
	FoodType    string          `json:"foodType"` // veg, non-veg

	RestaurantID uint       `json:"restaurantId"`
	Restaurant   Restaurant `json:"-"` // preload when the detail needs it

	OrderItems []OrderItem `json:"-"`
}

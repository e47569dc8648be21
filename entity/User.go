package entity

import (
	"gorm.io/gorm"
)

// Platform roles, mirrored in the auth token claims. An actor flagged as
// superuser skips role checks entirely.
const (
	RoleAdmin           = "ADMIN"
	RoleRestaurantOwner = "RESTAURANT_OWNER"
	RoleDeliveryPartner = "DELIVERY_PARTNER"
	RoleCustomer        = "CUSTOMER"
)

type User struct {
	gorm.Model
	Email       string `gorm:"uniqueIndex;not null" json:"email"`
	Password    string `json:"-"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	PhoneNumber string `json:"phoneNumber"`
	Address     string `json:"address"`
	Role        string `gorm:"not null;default:CUSTOMER" json:"role"`
	IsSuperuser bool   `gorm:"default:false" json:"-"`

	// Relations, preload only when needed
	RestaurantsOwned []Restaurant `gorm:"foreignKey:UserID" json:"-"`
	Orders           []Order      `json:"-"`
	Reviews          []Review     `json:"-"`
}

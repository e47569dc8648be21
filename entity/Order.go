package entity

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Order is created atomically from a non-empty cart. TotalAmount is frozen
// at checkout and never recomputed afterwards; only Status mutates.
type Order struct {
	gorm.Model
	TotalAmount decimal.Decimal `gorm:"type:decimal(10,2)" json:"totalAmount"`
	Status      OrderStatus     `gorm:"type:varchar(30);not null;default:PENDING" json:"status"`

	UserID uint `json:"userId"`
	User   User `json:"-"` // preload only for user detail

	// preload only on the detail endpoint
	OrderItems []OrderItem `json:"-"`
	Payment    *Payment    `json:"-"`
}

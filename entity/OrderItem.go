package entity

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderItem is immutable once created. Price is the unit price captured at
// checkout, decoupled from later menu price changes.
type OrderItem struct {
	gorm.Model
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `gorm:"type:decimal(10,2)" json:"price"`

	OrderID uint  `json:"orderId"`
	Order   Order `json:"-"`

	MenuItemID uint     `json:"menuItemId"`
	MenuItem   MenuItem `json:"-"` // preload only when the item name is needed
}

package entity

import (
	"time"
)

// CartItem deliberately skips gorm.Model: lines are hard-deleted on checkout
// and the (cart_id, menu_item_id) unique index must never collide with a
// soft-deleted row.
type CartItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`

	CartID uint `gorm:"uniqueIndex:idx_cart_menu_item,priority:1" json:"cartId"`
	Cart   Cart `json:"-"`

	MenuItemID uint     `gorm:"uniqueIndex:idx_cart_menu_item,priority:2" json:"menuItemId"`
	MenuItem   MenuItem `json:"-"`

	Quantity int `gorm:"not null" json:"quantity"`
}

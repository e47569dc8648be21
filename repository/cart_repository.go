package repository

import (
	"errors"
	"time"

	"github.com/adithyaaneesh/swiggy-api/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CartRepository struct{ DB *gorm.DB }

func NewCartRepository(db *gorm.DB) *CartRepository { return &CartRepository{DB: db} }

// GetCartWithItems returns the user's cart with lines and menu items
// preloaded. A user without a cart gets an empty one back without error so
// the view endpoint can render it.
func (r *CartRepository) GetCartWithItems(userID uint) (*entity.Cart, error) {
	var c entity.Cart
	err := r.DB.Where("user_id = ?", userID).
		Preload("Items").
		Preload("Items.MenuItem").
		First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &entity.Cart{UserID: userID}, nil
	}
	return &c, err
}

// GetOrCreateCart reads the user's cart, creating it lazily on first use.
// The unique index on user_id keeps concurrent first-adds down to one row.
func (r *CartRepository) GetOrCreateCart(tx *gorm.DB, userID uint) (*entity.Cart, error) {
	var c entity.Cart
	err := tx.Where("user_id = ?", userID).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c = entity.Cart{UserID: userID}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoNothing: true,
		}).Create(&c).Error; err != nil {
			return nil, err
		}
		if c.ID == 0 {
			// lost the insert race; the winner's row is ours
			err = tx.Where("user_id = ?", userID).First(&c).Error
		}
		return &c, err
	}
	return &c, err
}

// UpsertItem inserts a cart line or, when the (cart, menu item) line already
// exists, increments its quantity in one statement, so concurrent adds never
// lose an increment.
func (r *CartRepository) UpsertItem(tx *gorm.DB, cartID, menuItemID uint, qty int) error {
	row := entity.CartItem{CartID: cartID, MenuItemID: menuItemID, Quantity: qty}
	return tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "cart_id"}, {Name: "menu_item_id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"quantity":   gorm.Expr("quantity + ?", qty),
			"updated_at": time.Now(),
		}),
	}).Create(&row).Error
}

// RemoveItem deletes the line only when it belongs to the user's cart and
// reports how many rows went away.
func (r *CartRepository) RemoveItem(tx *gorm.DB, userID, itemID uint) (int64, error) {
	res := tx.
		Where("id = ? AND cart_id IN (SELECT id FROM carts WHERE user_id = ?)", itemID, userID).
		Delete(&entity.CartItem{})
	return res.RowsAffected, res.Error
}

// ClearCart drops every line of the cart. Runs inside the checkout
// transaction.
func (r *CartRepository) ClearCart(tx *gorm.DB, cartID uint) error {
	return tx.Where("cart_id = ?", cartID).Delete(&entity.CartItem{}).Error
}

package services

import (
	"errors"

	"github.com/adithyaaneesh/swiggy-api/pkg/apperr"
	"github.com/adithyaaneesh/swiggy-api/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CartService struct {
	DB        *gorm.DB
	CartRepo  *repository.CartRepository
	OrderRepo *repository.OrderRepository // menu lookups share the order repo
}

func NewCartService(db *gorm.DB, cr *repository.CartRepository, or *repository.OrderRepository) *CartService {
	return &CartService{DB: db, CartRepo: cr, OrderRepo: or}
}

type AddToCartIn struct {
	MenuItemID uint `json:"menuItemId" binding:"required"`
	Quantity   int  `json:"quantity"`
}

// AddItem gets-or-creates the cart and its line for the menu item. A second
// add of the same item merges into the existing line by incrementing its
// quantity; the upsert is a single statement so parallel adds all land.
func (s *CartService) AddItem(userID uint, in *AddToCartIn) error {
	if in.Quantity == 0 {
		in.Quantity = 1
	}
	if in.Quantity < 0 {
		return apperr.Validation("quantity must be at least 1")
	}

	m, err := s.OrderRepo.GetMenuBasics(in.MenuItemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.ErrNotFound
		}
		return err
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		c, err := s.CartRepo.GetOrCreateCart(tx, userID)
		if err != nil {
			return err
		}
		return s.CartRepo.UpsertItem(tx, c.ID, m.ID, in.Quantity)
	})
}

// RemoveItem deletes the named line if it belongs to the caller's cart.
func (s *CartService) RemoveItem(userID, lineID uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		affected, err := s.CartRepo.RemoveItem(tx, userID, lineID)
		if err != nil {
			return err
		}
		if affected == 0 {
			return apperr.ErrNotFound
		}
		return nil
	})
}

type CartLineView struct {
	LineID   uint            `json:"lineId"`
	Item     string          `json:"item"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

type CartView struct {
	Lines []CartLineView  `json:"lines"`
	Total decimal.Decimal `json:"total"`
}

// View prices every line from the current menu price. Subtotals are never
// cached, so the cart tracks price changes until the checkout freeze.
func (s *CartService) View(userID uint) (*CartView, error) {
	c, err := s.CartRepo.GetCartWithItems(userID)
	if err != nil {
		return nil, err
	}

	out := &CartView{Lines: make([]CartLineView, 0, len(c.Items)), Total: decimal.Zero}
	for _, it := range c.Items {
		subtotal := it.MenuItem.Price.Mul(decimal.NewFromInt(int64(it.Quantity)))
		out.Lines = append(out.Lines, CartLineView{
			LineID:   it.ID,
			Item:     it.MenuItem.Name,
			Price:    it.MenuItem.Price,
			Quantity: it.Quantity,
			Subtotal: subtotal,
		})
		out.Total = out.Total.Add(subtotal)
	}
	return out, nil
}

package services

import (
	"errors"

	"github.com/adithyaaneesh/swiggy-api/entity"
	"github.com/adithyaaneesh/swiggy-api/pkg/apperr"
	"github.com/adithyaaneesh/swiggy-api/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Actor is the authenticated identity behind a request, as decoded from the
// token claims.
type Actor struct {
	UserID    uint
	Role      string
	Superuser bool
}

// StatusNotifier receives transition events; the websocket hub implements it.
type StatusNotifier interface {
	OrderStatusChanged(orderID uint, previous, next entity.OrderStatus)
}

type OrderService struct {
	DB       *gorm.DB
	Repo     *repository.OrderRepository
	CartRepo *repository.CartRepository

	Notifier StatusNotifier // optional
}

func NewOrderService(db *gorm.DB, repo *repository.OrderRepository, cartRepo *repository.CartRepository) *OrderService {
	return &OrderService{DB: db, Repo: repo, CartRepo: cartRepo}
}

type CheckoutRes struct {
	OrderID uint            `json:"orderId"`
	Total   decimal.Decimal `json:"total"`
}

// Checkout converts the customer's cart into an order. This is the price
// freeze moment: each line captures the menu price as of now, and the total
// is the sum of those snapshots. Order, order items and the cart clear are
// one transaction: either all of it lands or none of it does.
func (s *OrderService) Checkout(userID uint) (*CheckoutRes, error) {
	var out CheckoutRes
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		// read the cart inside the transaction so two concurrent checkouts
		// cannot both spend the same lines
		var cart entity.Cart
		err := tx.Where("user_id = ?", userID).
			Preload("Items").
			Preload("Items.MenuItem").
			First(&cart).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.ErrEmptyCart
		}
		if err != nil {
			return err
		}
		if len(cart.Items) == 0 {
			return apperr.ErrEmptyCart
		}

		total := decimal.Zero
		for _, it := range cart.Items {
			total = total.Add(it.MenuItem.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
		}

		order := entity.Order{
			UserID:      userID,
			Status:      entity.StatusPending,
			TotalAmount: total,
		}
		if err := s.Repo.CreateOrder(tx, &order); err != nil {
			return err
		}

		for _, it := range cart.Items {
			oi := entity.OrderItem{
				OrderID:    order.ID,
				MenuItemID: it.MenuItemID,
				Quantity:   it.Quantity,
				Price:      it.MenuItem.Price,
			}
			if err := s.Repo.CreateOrderItem(tx, &oi); err != nil {
				return err
			}
		}

		if err := s.CartRepo.ClearCart(tx, cart.ID); err != nil {
			return err
		}

		out = CheckoutRes{OrderID: order.ID, Total: order.TotalAmount}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *OrderService) ListForUser(userID uint, limit int) ([]repository.OrderSummary, error) {
	return s.Repo.ListOrdersForUser(userID, limit)
}

type OrderDetail struct {
	ID          uint               `json:"id"`
	TotalAmount decimal.Decimal    `json:"totalAmount"`
	Status      entity.OrderStatus `json:"status"`
	Items       []entity.OrderItem `json:"items"`
}

func (s *OrderService) DetailForUser(userID, orderID uint) (*OrderDetail, error) {
	o, err := s.Repo.GetOrderForUser(userID, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	items, err := s.Repo.GetOrderItems(o.ID)
	if err != nil {
		return nil, err
	}
	return &OrderDetail{
		ID: o.ID, TotalAmount: o.TotalAmount, Status: o.Status, Items: items,
	}, nil
}

func (s *OrderService) notify(orderID uint, previous, next entity.OrderStatus) {
	if s.Notifier != nil {
		s.Notifier.OrderStatusChanged(orderID, previous, next)
	}
}

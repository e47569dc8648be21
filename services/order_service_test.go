package services

import (
	"testing"

	"github.com/adithyaaneesh/swiggy-api/entity"
	"github.com/adithyaaneesh/swiggy-api/pkg/apperr"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckout(t *testing.T) {
	t.Run("should fail with EmptyCart and create no order", func(t *testing.T) {
		db := newTestDB(t)
		user := seedUser(t, db, "a@example.com", entity.RoleCustomer)
		svc := newOrderService(db)

		_, err := svc.Checkout(user.ID)
		assert.ErrorIs(t, err, apperr.ErrEmptyCart)

		var count int64
		require.NoError(t, db.Model(&entity.Order{}).Count(&count).Error)
		assert.Zero(t, count)
	})

	t.Run("should freeze prices and clear the cart atomically", func(t *testing.T) {
		db := newTestDB(t)
		user := seedUser(t, db, "a@example.com", entity.RoleCustomer)
		rest := seedRestaurant(t, db, 99)
		dosa := seedMenuItem(t, db, rest.ID, "Dosa", "10.00")
		coffee := seedMenuItem(t, db, rest.ID, "Coffee", "5.50")
		cartSvc := newCartService(db)
		svc := newOrderService(db)

		require.NoError(t, cartSvc.AddItem(user.ID, &AddToCartIn{MenuItemID: dosa.ID, Quantity: 2}))
		require.NoError(t, cartSvc.AddItem(user.ID, &AddToCartIn{MenuItemID: coffee.ID, Quantity: 1}))

		view, err := cartSvc.View(user.ID)
		require.NoError(t, err)
		require.True(t, view.Total.Equal(decimal.RequireFromString("25.50")), view.Total.String())

		out, err := svc.Checkout(user.ID)
		require.NoError(t, err)
		assert.True(t, out.Total.Equal(decimal.RequireFromString("25.50")), out.Total.String())

		detail, err := svc.DetailForUser(user.ID, out.OrderID)
		require.NoError(t, err)
		assert.Equal(t, entity.StatusPending, detail.Status)
		assert.Len(t, detail.Items, 2)

		// cart is empty afterwards
		view, err = cartSvc.View(user.ID)
		require.NoError(t, err)
		assert.Empty(t, view.Lines)

		// a later menu price change never touches the frozen total
		require.NoError(t, db.Model(&entity.MenuItem{}).Where("id = ?", dosa.ID).
			Update("price", "99.00").Error)

		detail, err = svc.DetailForUser(user.ID, out.OrderID)
		require.NoError(t, err)
		assert.True(t, detail.TotalAmount.Equal(decimal.RequireFromString("25.50")), detail.TotalAmount.String())

		sum := decimal.Zero
		for _, it := range detail.Items {
			sum = sum.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
		}
		assert.True(t, detail.TotalAmount.Equal(sum))
	})

	t.Run("second checkout sees an empty cart", func(t *testing.T) {
		db := newTestDB(t)
		user := seedUser(t, db, "a@example.com", entity.RoleCustomer)
		rest := seedRestaurant(t, db, 99)
		item := seedMenuItem(t, db, rest.ID, "Dosa", "10.00")
		cartSvc := newCartService(db)
		svc := newOrderService(db)

		require.NoError(t, cartSvc.AddItem(user.ID, &AddToCartIn{MenuItemID: item.ID, Quantity: 1}))

		_, err := svc.Checkout(user.ID)
		require.NoError(t, err)

		_, err = svc.Checkout(user.ID)
		assert.ErrorIs(t, err, apperr.ErrEmptyCart)

		var count int64
		require.NoError(t, db.Model(&entity.Order{}).Count(&count).Error)
		assert.EqualValues(t, 1, count)
	})
}

func seedOrder(t *testing.T, svc *OrderService, cartSvc *CartService, userID, menuItemID uint) uint {
	t.Helper()
	require.NoError(t, cartSvc.AddItem(userID, &AddToCartIn{MenuItemID: menuItemID, Quantity: 1}))
	out, err := svc.Checkout(userID)
	require.NoError(t, err)
	return out.OrderID
}

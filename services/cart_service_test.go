package services

import (
	"sync"
	"testing"

	"github.com/adithyaaneesh/swiggy-api/entity"
	"github.com/adithyaaneesh/swiggy-api/pkg/apperr"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddItem(t *testing.T) {
	t.Run("should merge quantities into one line per menu item", func(t *testing.T) {
		db := newTestDB(t)
		user := seedUser(t, db, "a@example.com", entity.RoleCustomer)
		rest := seedRestaurant(t, db, 99)
		item := seedMenuItem(t, db, rest.ID, "Dosa", "10.00")
		svc := newCartService(db)

		require.NoError(t, svc.AddItem(user.ID, &AddToCartIn{MenuItemID: item.ID, Quantity: 2}))
		require.NoError(t, svc.AddItem(user.ID, &AddToCartIn{MenuItemID: item.ID, Quantity: 3}))

		var lines []entity.CartItem
		require.NoError(t, db.Find(&lines).Error)
		require.Len(t, lines, 1)
		assert.Equal(t, 5, lines[0].Quantity)
	})

	t.Run("should default quantity to 1", func(t *testing.T) {
		db := newTestDB(t)
		user := seedUser(t, db, "a@example.com", entity.RoleCustomer)
		rest := seedRestaurant(t, db, 99)
		item := seedMenuItem(t, db, rest.ID, "Dosa", "10.00")
		svc := newCartService(db)

		require.NoError(t, svc.AddItem(user.ID, &AddToCartIn{MenuItemID: item.ID}))

		view, err := svc.View(user.ID)
		require.NoError(t, err)
		require.Len(t, view.Lines, 1)
		assert.Equal(t, 1, view.Lines[0].Quantity)
	})

	t.Run("should fail with NotFound for an unknown menu item", func(t *testing.T) {
		db := newTestDB(t)
		user := seedUser(t, db, "a@example.com", entity.RoleCustomer)
		svc := newCartService(db)

		err := svc.AddItem(user.ID, &AddToCartIn{MenuItemID: 12345, Quantity: 1})
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})

	t.Run("should reject a negative quantity", func(t *testing.T) {
		db := newTestDB(t)
		user := seedUser(t, db, "a@example.com", entity.RoleCustomer)
		rest := seedRestaurant(t, db, 99)
		item := seedMenuItem(t, db, rest.ID, "Dosa", "10.00")
		svc := newCartService(db)

		err := svc.AddItem(user.ID, &AddToCartIn{MenuItemID: item.ID, Quantity: -1})
		var vErr *apperr.ValidationError
		assert.ErrorAs(t, err, &vErr)
	})

	t.Run("should not lose concurrent increments", func(t *testing.T) {
		db := newTestDB(t)
		user := seedUser(t, db, "a@example.com", entity.RoleCustomer)
		rest := seedRestaurant(t, db, 99)
		item := seedMenuItem(t, db, rest.ID, "Dosa", "10.00")
		svc := newCartService(db)

		var wg sync.WaitGroup
		errs := make(chan error, 10)
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				errs <- svc.AddItem(user.ID, &AddToCartIn{MenuItemID: item.ID, Quantity: 1})
			}()
		}
		wg.Wait()
		close(errs)
		for err := range errs {
			require.NoError(t, err)
		}

		var lines []entity.CartItem
		require.NoError(t, db.Find(&lines).Error)
		require.Len(t, lines, 1)
		assert.Equal(t, 10, lines[0].Quantity)
	})
}

func TestRemoveItem(t *testing.T) {
	t.Run("should remove an owned line", func(t *testing.T) {
		db := newTestDB(t)
		user := seedUser(t, db, "a@example.com", entity.RoleCustomer)
		rest := seedRestaurant(t, db, 99)
		item := seedMenuItem(t, db, rest.ID, "Dosa", "10.00")
		svc := newCartService(db)

		require.NoError(t, svc.AddItem(user.ID, &AddToCartIn{MenuItemID: item.ID, Quantity: 1}))
		var line entity.CartItem
		require.NoError(t, db.First(&line).Error)

		require.NoError(t, svc.RemoveItem(user.ID, line.ID))

		view, err := svc.View(user.ID)
		require.NoError(t, err)
		assert.Empty(t, view.Lines)
	})

	t.Run("should fail with NotFound for another customer's line", func(t *testing.T) {
		db := newTestDB(t)
		owner := seedUser(t, db, "a@example.com", entity.RoleCustomer)
		other := seedUser(t, db, "b@example.com", entity.RoleCustomer)
		rest := seedRestaurant(t, db, 99)
		item := seedMenuItem(t, db, rest.ID, "Dosa", "10.00")
		svc := newCartService(db)

		require.NoError(t, svc.AddItem(owner.ID, &AddToCartIn{MenuItemID: item.ID, Quantity: 1}))
		var line entity.CartItem
		require.NoError(t, db.First(&line).Error)

		err := svc.RemoveItem(other.ID, line.ID)
		assert.ErrorIs(t, err, apperr.ErrNotFound)

		// owner's line untouched
		view, err := svc.View(owner.ID)
		require.NoError(t, err)
		assert.Len(t, view.Lines, 1)
	})
}

func TestViewCart(t *testing.T) {
	t.Run("empty cart yields empty lines and zero total", func(t *testing.T) {
		db := newTestDB(t)
		user := seedUser(t, db, "a@example.com", entity.RoleCustomer)
		svc := newCartService(db)

		view, err := svc.View(user.ID)
		require.NoError(t, err)
		assert.Empty(t, view.Lines)
		assert.True(t, view.Total.IsZero())
	})

	t.Run("subtotals always use the current menu price", func(t *testing.T) {
		db := newTestDB(t)
		user := seedUser(t, db, "a@example.com", entity.RoleCustomer)
		rest := seedRestaurant(t, db, 99)
		item := seedMenuItem(t, db, rest.ID, "Dosa", "10.00")
		svc := newCartService(db)

		require.NoError(t, svc.AddItem(user.ID, &AddToCartIn{MenuItemID: item.ID, Quantity: 2}))

		view, err := svc.View(user.ID)
		require.NoError(t, err)
		assert.True(t, view.Total.Equal(decimal.RequireFromString("20.00")), view.Total.String())

		// a price change shows up in the cart immediately
		require.NoError(t, db.Model(&entity.MenuItem{}).Where("id = ?", item.ID).
			Update("price", "12.50").Error)

		view, err = svc.View(user.ID)
		require.NoError(t, err)
		assert.True(t, view.Total.Equal(decimal.RequireFromString("25.00")), view.Total.String())
	})
}

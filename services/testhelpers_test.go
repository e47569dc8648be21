package services

import (
	"testing"

	"github.com/adithyaaneesh/swiggy-api/entity"
	"github.com/adithyaaneesh/swiggy-api/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a private in-memory sqlite database. A single pooled
// connection keeps the database alive and serializes concurrent writers the
// way a real server-side database would.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&entity.User{},
		&entity.Restaurant{}, &entity.MenuItem{},
		&entity.Cart{}, &entity.CartItem{},
		&entity.Order{}, &entity.OrderItem{},
		&entity.Payment{},
		&entity.Review{},
	))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, email, role string) entity.User {
	t.Helper()
	u := entity.User{Email: email, Password: "x", Role: role}
	require.NoError(t, db.Create(&u).Error)
	return u
}

func seedRestaurant(t *testing.T, db *gorm.DB, ownerID uint) entity.Restaurant {
	t.Helper()
	r := entity.Restaurant{Name: "Test Kitchen", Category: "lunch", UserID: ownerID}
	require.NoError(t, db.Create(&r).Error)
	return r
}

func seedMenuItem(t *testing.T, db *gorm.DB, restaurantID uint, name, price string) entity.MenuItem {
	t.Helper()
	p, err := decimal.NewFromString(price)
	require.NoError(t, err)
	m := entity.MenuItem{RestaurantID: restaurantID, Name: name, Price: p, FoodType: "veg", IsAvailable: true}
	require.NoError(t, db.Create(&m).Error)
	return m
}

func newCartService(db *gorm.DB) *CartService {
	return NewCartService(db, repository.NewCartRepository(db), repository.NewOrderRepository(db))
}

func newOrderService(db *gorm.DB) *OrderService {
	return NewOrderService(db, repository.NewOrderRepository(db), repository.NewCartRepository(db))
}

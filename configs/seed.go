package configs

import (
	"log"

	"github.com/adithyaaneesh/swiggy-api/entity"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

// SeedAdmin creates the platform admin on first boot.
func SeedAdmin(cfg *Config) error {
	db := DB()
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		log.Println("skip seeding admin: missing ADMIN_EMAIL/ADMIN_PASSWORD")
		return nil
	}

	var count int64
	db.Model(&entity.User{}).Where("email = ?", cfg.AdminEmail).Count(&count)
	if count > 0 {
		log.Println("admin already exists:", cfg.AdminEmail)
		return nil
	}

	hash, _ := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	admin := entity.User{
		Email:       cfg.AdminEmail,
		Password:    string(hash),
		FirstName:   "Admin",
		LastName:    "Seed",
		Role:        entity.RoleAdmin,
		IsSuperuser: true,
	}
	return db.Create(&admin).Error
}

// SeedDemo inserts a demo restaurant and menu when the catalog is empty.
func SeedDemo() error {
	db := DB()

	var count int64
	if err := db.Model(&entity.Restaurant{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	rest := entity.Restaurant{
		Name:        "Annapoorna",
		Address:     "12 MG Road",
		PhoneNumber: "9876543210",
		Email:       "hello@annapoorna.example",
		Category:    "lunch",
	}
	if err := db.Create(&rest).Error; err != nil {
		return err
	}

	items := []entity.MenuItem{
		{Name: "Masala Dosa", Price: decimal.NewFromFloat(10.00), FoodType: "veg", IsAvailable: true, RestaurantID: rest.ID},
		{Name: "Filter Coffee", Price: decimal.NewFromFloat(5.50), FoodType: "veg", IsAvailable: true, RestaurantID: rest.ID},
	}
	if err := db.Create(&items).Error; err != nil {
		return err
	}

	log.Println("demo catalog seeded")
	return nil
}

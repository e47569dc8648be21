package controllers

import (
	"errors"
	"strconv"
	"strings"

	"github.com/adithyaaneesh/swiggy-api/entity"
	"github.com/adithyaaneesh/swiggy-api/pkg/resp"
	"github.com/adithyaaneesh/swiggy-api/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type MenuController struct{ DB *gorm.DB }

func NewMenuController(db *gorm.DB) *MenuController { return &MenuController{DB: db} }

// GET /menu (?minPrice&maxPrice&category&minRating filter the catalog)
func (mc *MenuController) List(c *gin.Context) {
	q := mc.DB.Model(&entity.MenuItem{}).
		Joins("JOIN restaurants r ON r.id = menu_items.restaurant_id")

	if v := c.Query("minPrice"); v != "" {
		q = q.Where("menu_items.price >= ?", v)
	}
	if v := c.Query("maxPrice"); v != "" {
		q = q.Where("menu_items.price <= ?", v)
	}
	if v := c.Query("category"); v != "" {
		q = q.Where("LOWER(r.category) = ?", strings.ToLower(v))
	}
	if v := c.Query("minRating"); v != "" {
		q = q.Where("r.rating >= ?", v)
	}

	var items []entity.MenuItem
	if err := q.Order("menu_items.id").Limit(200).Find(&items).Error; err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"items": items})
}

type menuItemReq struct {
	RestaurantID uint    `json:"restaurantId" binding:"required"`
	Name         string  `json:"name" binding:"required"`
	Price        string  `json:"price" binding:"required"`
	FoodType     string  `json:"foodType" binding:"required,oneof=veg non-veg"`
	IsAvailable  *bool   `json:"isAvailable"`
}

// ownsRestaurant enforces the ownership half of the gate: the role check
// already ran in the middleware.
func (mc *MenuController) ownsRestaurant(c *gin.Context, restaurantID uint) bool {
	if utils.IsSuperuser(c) {
		return true
	}
	var r entity.Restaurant
	if err := mc.DB.Select("id, user_id").First(&r, restaurantID).Error; err != nil {
		resp.NotFound(c, "restaurant not found")
		return false
	}
	if r.UserID != utils.CurrentUserID(c) {
		resp.Forbidden(c, "not your restaurant")
		return false
	}
	return true
}

// POST /menu (RESTAURANT_OWNER, own restaurant only)
func (mc *MenuController) Create(c *gin.Context) {
	var req menuItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if !mc.ownsRestaurant(c, req.RestaurantID) {
		return
	}

	price, err := decimal.NewFromString(req.Price)
	if err != nil || price.IsNegative() {
		resp.BadRequest(c, "invalid price")
		return
	}

	item := entity.MenuItem{
		RestaurantID: req.RestaurantID,
		Name:         req.Name,
		Price:        price,
		FoodType:     req.FoodType,
		IsAvailable:  true,
	}
	if req.IsAvailable != nil {
		item.IsAvailable = *req.IsAvailable
	}
	if err := mc.DB.Create(&item).Error; err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.Created(c, item)
}

type menuItemPatch struct {
	Name        *string `json:"name"`
	Price       *string `json:"price"`
	FoodType    *string `json:"foodType"`
	IsAvailable *bool   `json:"isAvailable"`
}

// PATCH /menu/:id
func (mc *MenuController) Update(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var item entity.MenuItem
	if err := mc.DB.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			resp.NotFound(c, "menu item not found")
			return
		}
		resp.ServerError(c, err)
		return
	}
	if !mc.ownsRestaurant(c, item.RestaurantID) {
		return
	}

	var req menuItemPatch
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Price != nil {
		price, err := decimal.NewFromString(*req.Price)
		if err != nil || price.IsNegative() {
			resp.BadRequest(c, "invalid price")
			return
		}
		item.Price = price
	}
	if req.FoodType != nil {
		if *req.FoodType != "veg" && *req.FoodType != "non-veg" {
			resp.BadRequest(c, "invalid food type")
			return
		}
		item.FoodType = *req.FoodType
	}
	if req.IsAvailable != nil {
		item.IsAvailable = *req.IsAvailable
	}

	if err := mc.DB.Save(&item).Error; err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, item)
}

// DELETE /menu/:id
func (mc *MenuController) Delete(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var item entity.MenuItem
	if err := mc.DB.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			resp.NotFound(c, "menu item not found")
			return
		}
		resp.ServerError(c, err)
		return
	}
	if !mc.ownsRestaurant(c, item.RestaurantID) {
		return
	}

	if err := mc.DB.Delete(&item).Error; err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"message": "item deleted"})
}

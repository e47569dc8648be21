package controllers

import (
	"errors"
	"strconv"
	"strings"

	"github.com/adithyaaneesh/swiggy-api/entity"
	"github.com/adithyaaneesh/swiggy-api/pkg/resp"
	"github.com/adithyaaneesh/swiggy-api/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type RestaurantController struct{ DB *gorm.DB }

func NewRestaurantController(db *gorm.DB) *RestaurantController {
	return &RestaurantController{DB: db}
}

var restaurantCategories = map[string]bool{
	"salad": true, "breakfast": true, "lunch": true, "dinner": true,
	"snacks": true, "shakes": true, "desert": true, "ice-cream": true,
}

// GET /restaurants (?name= searches by name, case-insensitive)
func (rc *RestaurantController) List(c *gin.Context) {
	q := rc.DB.Model(&entity.Restaurant{})

	if name := strings.TrimSpace(c.Query("name")); name != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(name)+"%")
	}

	var items []entity.Restaurant
	if err := q.Order("id").Limit(100).Find(&items).Error; err != nil {
		resp.ServerError(c, err)
		return
	}
	if len(items) == 0 && c.Query("name") != "" {
		resp.OK(c, gin.H{"items": items, "message": "no restaurant found matching the search"})
		return
	}
	resp.OK(c, gin.H{"items": items})
}

// GET /restaurants/:id
func (rc *RestaurantController) Detail(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var r entity.Restaurant
	if err := rc.DB.Preload("MenuItems").First(&r, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			resp.NotFound(c, "restaurant not found")
			return
		}
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"restaurant": r, "menuItems": r.MenuItems})
}

type createRestaurantReq struct {
	Name        string `json:"name" binding:"required"`
	Address     string `json:"address" binding:"required"`
	PhoneNumber string `json:"phoneNumber"`
	Email       string `json:"email"`
	Category    string `json:"category" binding:"required"`
}

// POST /restaurants (RESTAURANT_OWNER)
func (rc *RestaurantController) Create(c *gin.Context) {
	uid := utils.CurrentUserID(c)

	var req createRestaurantReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if !restaurantCategories[req.Category] {
		resp.BadRequest(c, "unknown category")
		return
	}

	r := entity.Restaurant{
		Name:        req.Name,
		Address:     req.Address,
		PhoneNumber: req.PhoneNumber,
		Email:       req.Email,
		Category:    req.Category,
		UserID:      uid,
	}
	if err := rc.DB.Create(&r).Error; err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.Created(c, r)
}

type updateRestaurantReq struct {
	Name        *string `json:"name"`
	Address     *string `json:"address"`
	PhoneNumber *string `json:"phoneNumber"`
	Email       *string `json:"email"`
	Category    *string `json:"category"`
}

// PATCH /restaurants/:id (RESTAURANT_OWNER, own restaurant only)
func (rc *RestaurantController) Update(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var r entity.Restaurant
	if err := rc.DB.First(&r, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			resp.NotFound(c, "restaurant not found")
			return
		}
		resp.ServerError(c, err)
		return
	}
	if r.UserID != utils.CurrentUserID(c) && !utils.IsSuperuser(c) {
		resp.Forbidden(c, "not your restaurant")
		return
	}

	var req updateRestaurantReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if req.Name != nil {
		r.Name = *req.Name
	}
	if req.Address != nil {
		r.Address = *req.Address
	}
	if req.PhoneNumber != nil {
		r.PhoneNumber = *req.PhoneNumber
	}
	if req.Email != nil {
		r.Email = *req.Email
	}
	if req.Category != nil {
		if !restaurantCategories[*req.Category] {
			resp.BadRequest(c, "unknown category")
			return
		}
		r.Category = *req.Category
	}

	if err := rc.DB.Save(&r).Error; err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, r)
}

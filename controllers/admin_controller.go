package controllers

import (
	"strconv"

	"github.com/adithyaaneesh/swiggy-api/entity"
	"github.com/adithyaaneesh/swiggy-api/pkg/resp"
	"github.com/adithyaaneesh/swiggy-api/repository"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AdminController struct {
	DB        *gorm.DB
	OrderRepo *repository.OrderRepository
	UserRepo  *repository.UserRepository
}

func NewAdminController(db *gorm.DB, or *repository.OrderRepository, ur *repository.UserRepository) *AdminController {
	return &AdminController{DB: db, OrderRepo: or, UserRepo: ur}
}

// GET /admin/orders (?status= filters, ?page=&limit= paginate)
func (ac *AdminController) Orders(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	var status *entity.OrderStatus
	if v := c.Query("status"); v != "" {
		s := entity.OrderStatus(v)
		if !s.Valid() {
			resp.BadRequest(c, "unknown status")
			return
		}
		status = &s
	}

	items, total, err := ac.OrderRepo.ListAllOrders(status, page, limit)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"items": items, "total": total, "page": page, "limit": limit})
}

// GET /admin/users
func (ac *AdminController) Users(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	users, err := ac.UserRepo.List(limit, offset)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"items": users})
}

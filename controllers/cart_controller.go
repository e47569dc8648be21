package controllers

import (
	"github.com/adithyaaneesh/swiggy-api/pkg/resp"
	"github.com/adithyaaneesh/swiggy-api/services"
	"github.com/adithyaaneesh/swiggy-api/utils"

	"github.com/gin-gonic/gin"
)

type CartController struct{ Svc *services.CartService }

func NewCartController(s *services.CartService) *CartController { return &CartController{Svc: s} }

// GET /cart
func (h *CartController) View(c *gin.Context) {
	uid := utils.CurrentUserID(c)

	view, err := h.Svc.View(uid)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, view)
}

// POST /cart/add
func (h *CartController) Add(c *gin.Context) {
	uid := utils.CurrentUserID(c)

	var req services.AddToCartIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if err := h.Svc.AddItem(uid, &req); err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, gin.H{"message": "item added to cart"})
}

// POST /cart/remove
func (h *CartController) Remove(c *gin.Context) {
	uid := utils.CurrentUserID(c)

	var body struct {
		LineID uint `json:"lineId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if err := h.Svc.RemoveItem(uid, body.LineID); err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"message": "item removed from cart"})
}

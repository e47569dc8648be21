package controllers

import (
	"strconv"

	"github.com/adithyaaneesh/swiggy-api/entity"
	"github.com/adithyaaneesh/swiggy-api/pkg/apperr"
	"github.com/adithyaaneesh/swiggy-api/pkg/resp"
	"github.com/adithyaaneesh/swiggy-api/services"
	"github.com/adithyaaneesh/swiggy-api/utils"

	"github.com/gin-gonic/gin"
)

type OrderController struct{ Svc *services.OrderService }

func NewOrderController(s *services.OrderService) *OrderController { return &OrderController{Svc: s} }

// POST /order/place
func (h *OrderController) Place(c *gin.Context) {
	uid := utils.CurrentUserID(c)

	out, err := h.Svc.Checkout(uid)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, out)
}

// GET /order
func (h *OrderController) ListForMe(c *gin.Context) {
	uid := utils.CurrentUserID(c)
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	items, err := h.Svc.ListForUser(uid, limit)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"items": items})
}

// GET /order/:id (order owner only)
func (h *OrderController) Detail(c *gin.Context) {
	uid := utils.CurrentUserID(c)
	id, _ := strconv.Atoi(c.Param("id"))

	detail, err := h.Svc.DetailForUser(uid, uint(id))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, detail)
}

type transitionReq struct {
	Status string `json:"status" binding:"required"`
}

// POST /order/:id/transition: the requested status must be the single next
// step; which roles may trigger it depends on the step.
func (h *OrderController) Transition(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var req transitionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	requested := entity.OrderStatus(req.Status)
	if !requested.Valid() {
		resp.Error(c, apperr.Validation("unknown status %q", req.Status))
		return
	}

	actor := services.Actor{
		UserID:    utils.CurrentUserID(c),
		Role:      utils.CurrentRole(c),
		Superuser: utils.IsSuperuser(c),
	}

	out, err := h.Svc.Transition(actor, uint(id), requested)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, out)
}

package controllers

import (
	"strconv"

	"github.com/adithyaaneesh/swiggy-api/pkg/resp"
	"github.com/adithyaaneesh/swiggy-api/services"
	"github.com/adithyaaneesh/swiggy-api/utils"

	"github.com/gin-gonic/gin"
)

type PaymentController struct{ Svc *services.PaymentService }

func NewPaymentController(s *services.PaymentService) *PaymentController {
	return &PaymentController{Svc: s}
}

// POST /order/:id/payment/create. Owner-only, PENDING-only.
func (h *PaymentController) CreateIntent(c *gin.Context) {
	uid := utils.CurrentUserID(c)
	id, _ := strconv.Atoi(c.Param("id"))

	out, err := h.Svc.CreateIntent(c.Request.Context(), uid, uint(id))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, out)
}

// GET /order/:id/payment/confirm?token=
func (h *PaymentController) Confirm(c *gin.Context) {
	uid := utils.CurrentUserID(c)
	id, _ := strconv.Atoi(c.Param("id"))
	token := c.Query("token")

	out, err := h.Svc.Confirm(c.Request.Context(), uid, uint(id), token)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, out)
}

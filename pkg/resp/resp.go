package resp

import (
	"errors"
	"net/http"

	"github.com/adithyaaneesh/swiggy-api/pkg/apperr"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "data": data})
}
func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, gin.H{"ok": true, "data": data})
}
func BadRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": msg})
}
func Unauthorized(c *gin.Context, msg string) {
	c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": msg})
}
func Forbidden(c *gin.Context, msg string) {
	c.JSON(http.StatusForbidden, gin.H{"ok": false, "error": msg})
}
func NotFound(c *gin.Context, msg string) {
	c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": msg})
}
func ServerError(c *gin.Context, err error) {
	c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
}

// Error maps a service error onto its HTTP-equivalent status code.
// Illegal transitions additionally report the one legal next status.
func Error(c *gin.Context, err error) {
	var vErr *apperr.ValidationError
	var itErr *apperr.IllegalTransitionError

	switch {
	case errors.As(err, &itErr):
		c.JSON(http.StatusBadRequest, gin.H{
			"ok":                false,
			"error":             "invalid status update",
			"allowedNextStatus": itErr.Allowed,
		})
	case errors.As(err, &vErr):
		BadRequest(c, vErr.Msg)
	case errors.Is(err, apperr.ErrNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		NotFound(c, "not found")
	case errors.Is(err, apperr.ErrEmptyCart):
		BadRequest(c, apperr.ErrEmptyCart.Error())
	case errors.Is(err, apperr.ErrPermissionDenied):
		Forbidden(c, apperr.ErrPermissionDenied.Error())
	case errors.Is(err, apperr.ErrInvalidState):
		BadRequest(c, apperr.ErrInvalidState.Error())
	case errors.Is(err, apperr.ErrPaymentProvider):
		c.JSON(http.StatusBadGateway, gin.H{"ok": false, "error": err.Error()})
	default:
		ServerError(c, err)
	}
}

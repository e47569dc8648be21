package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/adithyaaneesh/swiggy-api/entity"
	"github.com/adithyaaneesh/swiggy-api/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func newAuthRouter(requiredRoles ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", AuthMiddleware(testSecret, requiredRoles...), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"userId": utils.CurrentUserID(c),
			"role":   utils.CurrentRole(c),
		})
	})
	return r
}

func doGet(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	t.Run("rejects a missing token", func(t *testing.T) {
		w := doGet(newAuthRouter(), "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("rejects a garbage token", func(t *testing.T) {
		w := doGet(newAuthRouter(), "not-a-jwt")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("rejects a token signed with another secret", func(t *testing.T) {
		token, err := utils.GenerateToken(1, entity.RoleCustomer, false, "other-secret", time.Hour)
		require.NoError(t, err)
		w := doGet(newAuthRouter(), token)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("accepts a valid token without role requirements", func(t *testing.T) {
		token, err := utils.GenerateToken(42, entity.RoleCustomer, false, testSecret, time.Hour)
		require.NoError(t, err)
		w := doGet(newAuthRouter(), token)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("enforces the required role set", func(t *testing.T) {
		token, err := utils.GenerateToken(42, entity.RoleCustomer, false, testSecret, time.Hour)
		require.NoError(t, err)

		w := doGet(newAuthRouter(entity.RoleAdmin), token)
		assert.Equal(t, http.StatusForbidden, w.Code)

		w = doGet(newAuthRouter(entity.RoleAdmin, entity.RoleCustomer), token)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("superuser bypasses the role check", func(t *testing.T) {
		token, err := utils.GenerateToken(42, entity.RoleCustomer, true, testSecret, time.Hour)
		require.NoError(t, err)

		w := doGet(newAuthRouter(entity.RoleAdmin), token)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

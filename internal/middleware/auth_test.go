// internal/middleware/auth_test.go
package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resalex/backend/internal/models"
	"github.com/resalex/backend/internal/utils"
)

func setupAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	utils.SetJWTSecret("test-secret")

	r := gin.New()
	r.GET("/private", AuthRequired(), func(c *gin.Context) {
		userID, _ := c.Get("user_id")
		c.JSON(http.StatusOK, gin.H{"user_id": userID})
	})
	r.GET("/staff", AuthRequired(), StaffRequired(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	r.GET("/sellers", AuthRequired(), RoleRequired(models.RoleSeller, models.RoleAdmin, models.RoleRoot), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func bearerToken(t *testing.T, role models.UserRole) string {
	t.Helper()
	token, err := utils.GenerateJWT(uuid.New(), "tester", string(role), 1)
	require.NoError(t, err)
	return "Bearer " + token
}

func TestAuthRequiredRejectsMissingHeader(t *testing.T) {
	r := setupAuthRouter()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/private", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRequiredRejectsMalformedHeader(t *testing.T) {
	r := setupAuthRouter()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/private", nil)
	req.Header.Set("Authorization", "Token abc")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRequiredRejectsBadToken(t *testing.T) {
	r := setupAuthRouter()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/private", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRequiredAcceptsValidToken(t *testing.T) {
	r := setupAuthRouter()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/private", nil)
	req.Header.Set("Authorization", bearerToken(t, models.RoleUser))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestStaffRequired(t *testing.T) {
	r := setupAuthRouter()

	cases := []struct {
		role models.UserRole
		code int
	}{
		{models.RoleUser, http.StatusForbidden},
		{models.RoleSeller, http.StatusForbidden},
		{models.RoleModerator, http.StatusOK},
		{models.RoleAdmin, http.StatusOK},
		{models.RoleRoot, http.StatusOK},
	}

	for _, tc := range cases {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/staff", nil)
		req.Header.Set("Authorization", bearerToken(t, tc.role))
		r.ServeHTTP(w, req)

		assert.Equal(t, tc.code, w.Code, "role %s", tc.role)
	}
}

func TestRoleRequiredSellerRoutes(t *testing.T) {
	r := setupAuthRouter()

	cases := []struct {
		role models.UserRole
		code int
	}{
		{models.RoleUser, http.StatusForbidden},
		{models.RoleModerator, http.StatusForbidden},
		{models.RoleSeller, http.StatusOK},
		{models.RoleAdmin, http.StatusOK},
	}

	for _, tc := range cases {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/sellers", nil)
		req.Header.Set("Authorization", bearerToken(t, tc.role))
		r.ServeHTTP(w, req)

		assert.Equal(t, tc.code, w.Code, "role %s", tc.role)
	}
}

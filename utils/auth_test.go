package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	require.NotEqual(t, "correct horse battery staple", hash)

	assert.True(t, CheckPasswordHash("correct horse battery staple", hash))
	assert.False(t, CheckPasswordHash("wrong password", hash))
}

func TestTokenExpiryHours(t *testing.T) {
	t.Run("defaults to 24", func(t *testing.T) {
		t.Setenv("JWT_EXPIRY_HOURS", "")
		assert.Equal(t, 24, TokenExpiryHours())
	})

	t.Run("reads the override", func(t *testing.T) {
		t.Setenv("JWT_EXPIRY_HOURS", "72")
		assert.Equal(t, 72, TokenExpiryHours())
	})

	t.Run("ignores garbage and non-positive values", func(t *testing.T) {
		t.Setenv("JWT_EXPIRY_HOURS", "soon")
		assert.Equal(t, 24, TokenExpiryHours())

		t.Setenv("JWT_EXPIRY_HOURS", "0")
		assert.Equal(t, 24, TokenExpiryHours())
	})
}

func TestGenerateToken(t *testing.T) {
	t.Run("fails without a secret", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "")

		_, err := GenerateToken("user-1", "admin")
		assert.Error(t, err)
	})

	t.Run("issues a signed token", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "test-secret")

		token, err := GenerateToken("user-1", "admin")
		require.NoError(t, err)
		assert.NotEmpty(t, token)
	})
}

func authTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", AuthMiddleware(), func(c *gin.Context) {
		userID, _ := c.Get("userId")
		role, _ := c.Get("role")
		c.JSON(http.StatusOK, gin.H{"userId": userID, "role": role})
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	r := authTestRouter()

	t.Run("rejects a missing header", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("rejects a malformed token", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer not-a-token")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("accepts a valid token and exposes the claims", func(t *testing.T) {
		token, err := GenerateToken("user-1", "sales_officer")
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "user-1")
		assert.Contains(t, w.Body.String(), "sales_officer")
	})
}

package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dvelez-dev/travelbook/config"
	"github.com/dvelez-dev/travelbook/internal/auth"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestAuthRequired(t *testing.T) {
	cfg := config.AuthConfig{JWTSecret: "test-secret", TokenTTLMinutes: 5}

	token, err := auth.GenerateToken(7, "ana@example.com", "CLIENT", cfg)
	assert.NoError(t, err)

	gin.SetMode(gin.TestMode)

	t.Run("valid token passes and sets claims", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest("GET", "/api/bookings", nil)
		c.Request.Header.Set("Authorization", "Bearer "+token)

		AuthRequired(cfg)(c)

		assert.False(t, c.IsAborted())
		userID, ok := c.Get("userID")
		assert.True(t, ok)
		assert.Equal(t, int64(7), userID)
	})

	t.Run("missing header rejected", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest("GET", "/api/bookings", nil)

		AuthRequired(cfg)(c)

		assert.True(t, c.IsAborted())
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("garbage token rejected", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest("GET", "/api/bookings", nil)
		c.Request.Header.Set("Authorization", "Bearer not-a-token")

		AuthRequired(cfg)(c)

		assert.True(t, c.IsAborted())
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

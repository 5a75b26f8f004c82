package api

import (
	"net/http"
	"strings"

	"github.com/dvelez-dev/travelbook/config"
	"github.com/dvelez-dev/travelbook/internal/auth"
	"github.com/gin-gonic/gin"
)

// AuthRequired validates the bearer token and stores its claims on the
// request context.
func AuthRequired(cfg config.AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or malformed authorization header"})
			return
		}

		claims, err := auth.ValidateToken(strings.TrimPrefix(header, "Bearer "), cfg)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set("userID", claims.UserID)
		c.Set("userRole", claims.Role)
		c.Next()
	}
}

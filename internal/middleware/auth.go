package middleware

import (
	"net/http"
	"strings"

	"association-site-api/internal/auth"

	"github.com/gin-gonic/gin"
)

// Context keys set by AdminAuth.
const (
	AdminIDKey       = "admin_id"
	AdminUsernameKey = "admin_username"
)

// AdminAuth rejects requests without a valid admin token.
func AdminAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Authorization token is required",
			})
			return
		}

		claims, err := auth.ValidateToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired token",
			})
			return
		}

		c.Set(AdminIDKey, claims.UserID)
		c.Set(AdminUsernameKey, claims.Username)
		c.Next()
	}
}

// AdminID returns the authenticated admin, or "" outside AdminAuth.
func AdminID(c *gin.Context) string {
	return c.GetString(AdminIDKey)
}

// bearerToken reads "Authorization: Bearer <token>". Browsers cannot set
// headers on a websocket upgrade, so ?token= is accepted as well.
func bearerToken(c *gin.Context) string {
	if token, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer "); ok {
		if token = strings.TrimSpace(token); token != "" {
			return token
		}
	}
	return c.Query("token")
}

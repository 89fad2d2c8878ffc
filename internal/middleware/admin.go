package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"campusfix/internal/authz"
)

// RequireAdmin gates write endpoints to authenticated admin roles.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, _ := c.Get("role")
		roleStr, _ := role.(string)
		if !authz.IsAdmin(roleStr) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin role required"})
			return
		}
		c.Next()
	}
}

package middleware

import (
	"net/http"

	"appealapp/src/models"
	"appealapp/src/types"

	"github.com/gin-gonic/gin"
)

// Admin allows only accounts carrying the admin role claim.
func Admin() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := c.MustGet("claims").(*types.Claims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
			return
		}

		if claims.Role != string(models.UserRoleAdmin) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin only"})
			return
		}
		c.Next()
	}
}

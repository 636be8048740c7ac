package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// OrganizationGuard returns middleware that ensures organization context is
// present. It relies on AuthMiddleware having already set the organization_id.
func OrganizationGuard() gin.HandlerFunc {
	return func(c *gin.Context) {
		_, exists := c.Get(ContextKeyOrgID)
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   gin.H{"code": "UNAUTHORIZED", "message": "organization context required"},
			})
			return
		}
		c.Next()
	}
}

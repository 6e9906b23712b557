package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"autoshop/internal/domain"
	"autoshop/internal/pkg/response"
)

// RequireRole ensures that the authenticated user has one of the given roles.
func RequireRole(roles ...domain.Role) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[string(r)] = true
	}

	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Role not found in token")
			c.Abort()
			return
		}

		if !allowed[role.(string)] {
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Access denied: insufficient permissions")
			c.Abort()
			return
		}

		c.Next()
	}
}

// AdminOnly middleware requires the ADMIN role
func AdminOnly() gin.HandlerFunc {
	return RequireRole(domain.RoleAdmin)
}

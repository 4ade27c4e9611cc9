package middleware

import (
	"net/http"

	"fitbook/internal/domain"
	"fitbook/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// RequireRole lets the request through only when the authenticated
// user carries one of the given roles.
func RequireRole(roles ...domain.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists {
			response.Error(c, http.StatusUnauthorized, "Role not found in token")
			c.Abort()
			return
		}

		for _, allowed := range roles {
			if role.(string) == string(allowed) {
				c.Next()
				return
			}
		}

		response.Error(c, http.StatusForbidden, "Access denied: insufficient permissions")
		c.Abort()
	}
}

// AdminOnly requires the ADMIN role.
func AdminOnly() gin.HandlerFunc {
	return RequireRole(domain.RoleAdmin)
}

// TraineeOnly requires the TRAINEE role.
func TraineeOnly() gin.HandlerFunc {
	return RequireRole(domain.RoleTrainee)
}

package middleware

import (
	"net/http"

	"relief_map/internal/model"

	"github.com/gin-gonic/gin"
)

// AuthUser returns the user resolved by AuthMiddleware, or nil when
// the request was not authenticated.
func AuthUser(c *gin.Context) *model.User {
	val, exists := c.Get(AuthUserKey)
	if !exists {
		return nil
	}
	user, ok := val.(*model.User)
	if !ok {
		return nil
	}
	return user
}

// RoleMiddleware creates a middleware to check for specific user roles.
// It must run after AuthMiddleware.
func RoleMiddleware(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := AuthUser(c)
		if user == nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "User not resolved, ensure auth middleware runs first"})
			return
		}

		for _, allowedRole := range allowedRoles {
			if user.Role == allowedRole {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "You do not have permission to access this resource"})
	}
}

// AdminMiddleware checks if the user is an admin
func AdminMiddleware() gin.HandlerFunc {
	return RoleMiddleware(model.RoleAdmin)
}

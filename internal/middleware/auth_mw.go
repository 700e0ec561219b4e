package middleware

import (
	"net/http"
	"strings"

	"relief_map/internal/service"

	"github.com/gin-gonic/gin"
)

// AuthUserKey is the gin context key under which the resolved user is stored
const AuthUserKey = "authUser"

// AuthMiddleware authenticates requests carrying "Authorization: Bearer <token>".
// The token is resolved all the way to a database user, so a role change or a
// deleted account takes effect on the very next request, not at token expiry.
func AuthMiddleware(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			return
		}

		userID, err := authService.VerifyToken(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		user, err := authService.GetUserByID(c.Request.Context(), userID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set(AuthUserKey, user)
		c.Next()
	}
}

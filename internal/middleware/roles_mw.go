package middleware

import (
	"net/http"

	"cyber_portal/internal/model"

	"github.com/gin-gonic/gin"
)

// RoleMiddleware creates a middleware that only lets logged-in users with one of allowedRoles through.
// Anonymous requests and wrong roles get the same 403.
func RoleMiddleware(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied. Please login first"})
			return
		}

		isAllowed := false
		for _, allowedRole := range allowedRoles {
			if user.Role == allowedRole {
				isAllowed = true
				break
			}
		}

		if !isAllowed {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied. You do not have permission to access this resource"})
			return
		}

		c.Next()
	}
}

// PoliceMiddleware checks if the user is a police officer
func PoliceMiddleware() gin.HandlerFunc {
	return RoleMiddleware(model.RolePolice)
}

// CitizenMiddleware checks if the user has the 'user' role
func CitizenMiddleware() gin.HandlerFunc {
	return RoleMiddleware(model.RoleUser)
}

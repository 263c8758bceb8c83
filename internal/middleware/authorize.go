package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"autoshop/api/internal/models"
)

// RequireRoles rejects callers whose role is not in the allow list. The 403
// body names the roles the route requires and the role the caller holds.
func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	roleSet := make(map[models.UserRole]struct{}, len(roles))
	required := make([]string, 0, len(roles))
	for _, role := range roles {
		roleSet[role] = struct{}{}
		required = append(required, string(role))
	}

	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "NO_AUTH",
				"message": "authentication required",
			})
			return
		}

		if _, ok := roleSet[user.Role]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":    "INSUFFICIENT_ROLE",
				"message":  "access denied",
				"required": required,
				"current":  string(user.Role),
			})
			return
		}

		c.Next()
	}
}

package middleware

import (
	"net/http"
	"strings"

	"skillbridge/models"
	"skillbridge/utils"

	"github.com/gin-gonic/gin"
)

// RequireRoles must run after JWTAuthMiddleware.
func RequireRoles(roles ...models.Role) gin.HandlerFunc {
	allowed := make(map[models.Role]bool, len(roles))
	names := make([]string, 0, len(roles))
	for _, r := range roles {
		allowed[r] = true
		names = append(names, strings.ToLower(string(r)))
	}
	message := "This endpoint is restricted to " + strings.Join(names, ", ")

	return func(c *gin.Context) {
		principal, ok := GetPrincipal(c)
		if !ok {
			utils.JSONError(c, http.StatusUnauthorized, utils.KindUnauthenticated, "Authentication required")
			return
		}
		if !allowed[principal.Role] {
			utils.JSONError(c, http.StatusForbidden, utils.KindUnauthorized, message)
			return
		}
		c.Next()
	}
}

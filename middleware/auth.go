package middleware

import (
	"context"
	"net/http"
	"strings"

	"skillbridge/models"
	"skillbridge/utils"

	"github.com/gin-gonic/gin"
)

// TokenValidator turns a bearer token into the principal it names.
type TokenValidator interface {
	ValidateToken(token string) (models.Principal, error)
}

// StatusResolver reports the current account status of a user.
type StatusResolver interface {
	ResolveStatus(ctx context.Context, userID string) (models.UserStatus, error)
}

// JWTAuthMiddleware is the single authentication mechanism: Authorization: Bearer <JWT>.
// On success the request carries a models.Principal under utils.PrincipalKey.
func JWTAuthMiddleware(tokens TokenValidator, statuses StatusResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			utils.JSONError(c, http.StatusUnauthorized, utils.KindUnauthenticated, "Missing or invalid Authorization header")
			return
		}
		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if tokenString == "" {
			utils.JSONError(c, http.StatusUnauthorized, utils.KindUnauthenticated, "Missing or invalid Authorization header")
			return
		}

		principal, err := tokens.ValidateToken(tokenString)
		if err != nil {
			utils.JSONError(c, http.StatusUnauthorized, utils.KindUnauthenticated, "Invalid or expired token")
			return
		}

		status, err := statuses.ResolveStatus(c.Request.Context(), principal.UserID)
		if err != nil {
			utils.RespondError(c, err)
			return
		}
		if status == models.UserBanned {
			utils.JSONError(c, http.StatusForbidden, utils.KindUnauthorized, "Account is banned")
			return
		}

		c.Set(utils.PrincipalKey, principal)
		c.Next()
	}
}

// GetPrincipal returns the authenticated actor of the request.
func GetPrincipal(c *gin.Context) (models.Principal, bool) {
	v, ok := c.Get(utils.PrincipalKey)
	if !ok {
		return models.Principal{}, false
	}
	p, ok := v.(models.Principal)
	return p, ok
}

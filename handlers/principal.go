package handlers

import (
	"net/http"

	"skillbridge/middleware"
	"skillbridge/models"
	"skillbridge/utils"

	"github.com/gin-gonic/gin"
)

// currentPrincipal aborts with 401 when the auth middleware did not run.
func currentPrincipal(c *gin.Context) (models.Principal, bool) {
	p, ok := middleware.GetPrincipal(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, utils.KindUnauthenticated, "Authentication required")
		return models.Principal{}, false
	}
	return p, true
}

func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		utils.RespondError(c, utils.BindError(err))
		return false
	}
	return true
}

func bindQuery(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindQuery(dst); err != nil {
		utils.RespondError(c, utils.BindError(err))
		return false
	}
	return true
}

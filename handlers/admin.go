package handlers

import (
	"net/http"

	"skillbridge/models"
	"skillbridge/services/admin"
	"skillbridge/utils"

	"github.com/gin-gonic/gin"
)

// AdminHandler handles account moderation.
type AdminHandler struct {
	Admin admin.AdminService
}

func NewAdminHandler(svc admin.AdminService) *AdminHandler {
	return &AdminHandler{Admin: svc}
}

func (ah *AdminHandler) ListUsersHandler(c *gin.Context) {
	var filter models.UserFilter
	if !bindQuery(c, &filter) {
		return
	}
	page, err := ah.Admin.ListUsers(c.Request.Context(), filter)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// SetUserStatusHandler bans or reinstates an account.
func (ah *AdminHandler) SetUserStatusHandler(c *gin.Context) {
	p, ok := currentPrincipal(c)
	if !ok {
		return
	}
	var req models.UserStatusRequest
	if !bindJSON(c, &req) {
		return
	}
	u, err := ah.Admin.SetUserStatus(c.Request.Context(), p, c.Param("id"), req.Status)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

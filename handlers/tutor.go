package handlers

import (
	"net/http"
	"strings"

	"skillbridge/models"
	"skillbridge/services/tutor"
	"skillbridge/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const maxAvatarBytes = 5 << 20

type TutorHandler struct {
	Tutors tutor.TutorService
}

func NewTutorHandler(tutors tutor.TutorService) *TutorHandler {
	return &TutorHandler{Tutors: tutors}
}

// ListTutorsHandler is the public directory search.
func (h *TutorHandler) ListTutorsHandler(c *gin.Context) {
	var filter models.TutorFilter
	if !bindQuery(c, &filter) {
		return
	}
	page, err := h.Tutors.SearchTutors(c.Request.Context(), filter)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *TutorHandler) GetTutorHandler(c *gin.Context) {
	card, err := h.Tutors.GetTutor(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, card)
}

func (h *TutorHandler) GetOwnProfileHandler(c *gin.Context) {
	p, ok := currentPrincipal(c)
	if !ok {
		return
	}
	card, err := h.Tutors.GetOwnProfile(c.Request.Context(), p.UserID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, card)
}

func (h *TutorHandler) UpdateProfileHandler(c *gin.Context) {
	p, ok := currentPrincipal(c)
	if !ok {
		return
	}
	var upd models.TutorProfileUpdate
	if !bindJSON(c, &upd) {
		return
	}

	card, err := h.Tutors.UpdateProfile(c.Request.Context(), p.UserID, upd)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Profile updated", "tutor": card})
}

// UploadAvatarHandler expects a multipart image under the "avatar" field.
func (h *TutorHandler) UploadAvatarHandler(c *gin.Context) {
	p, ok := currentPrincipal(c)
	if !ok {
		return
	}
	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		utils.RespondError(c, utils.Validation("avatar file is required"))
		return
	}
	if fileHeader.Size > maxAvatarBytes {
		utils.RespondError(c, utils.Validation("avatar must be at most 5MB"))
		return
	}
	if ct := fileHeader.Header.Get("Content-Type"); ct != "" && !strings.HasPrefix(ct, "image/") {
		utils.RespondError(c, utils.Validation("avatar must be an image"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		utils.RequestLogger(c).Error("Failed to open avatar upload", zap.Error(err))
		utils.RespondError(c, utils.Internal(err, "failed to read upload"))
		return
	}
	defer file.Close()

	card, err := h.Tutors.UploadAvatar(c.Request.Context(), p.UserID, file)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Avatar updated", "tutor": card})
}

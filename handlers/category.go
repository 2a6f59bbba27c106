package handlers

import (
	"net/http"

	"skillbridge/models"
	"skillbridge/services/admin"
	"skillbridge/utils"

	"github.com/gin-gonic/gin"
)

type CategoryHandler struct {
	Categories admin.CategoryService
}

func NewCategoryHandler(categories admin.CategoryService) *CategoryHandler {
	return &CategoryHandler{Categories: categories}
}

func (h *CategoryHandler) ListCategoriesHandler(c *gin.Context) {
	cats, err := h.Categories.ListCategories(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	if cats == nil {
		cats = []models.Category{}
	}
	c.JSON(http.StatusOK, gin.H{"categories": cats})
}

func (h *CategoryHandler) CreateCategoryHandler(c *gin.Context) {
	var req models.CategoryRequest
	if !bindJSON(c, &req) {
		return
	}
	cat, err := h.Categories.CreateCategory(c.Request.Context(), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, cat)
}

func (h *CategoryHandler) UpdateCategoryHandler(c *gin.Context) {
	var upd models.CategoryUpdate
	if !bindJSON(c, &upd) {
		return
	}
	cat, err := h.Categories.UpdateCategory(c.Request.Context(), c.Param("id"), upd)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cat)
}

func (h *CategoryHandler) DeleteCategoryHandler(c *gin.Context) {
	if err := h.Categories.DeleteCategory(c.Request.Context(), c.Param("id")); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Category deleted"})
}

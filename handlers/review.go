package handlers

import (
	"net/http"

	"skillbridge/models"
	"skillbridge/services/review"
	"skillbridge/utils"

	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	Reviews review.ReviewService
}

func NewReviewHandler(reviews review.ReviewService) *ReviewHandler {
	return &ReviewHandler{Reviews: reviews}
}

func (h *ReviewHandler) SubmitReviewHandler(c *gin.Context) {
	p, ok := currentPrincipal(c)
	if !ok {
		return
	}
	var req models.ReviewRequest
	if !bindJSON(c, &req) {
		return
	}
	r, err := h.Reviews.SubmitReview(c.Request.Context(), p, req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, r)
}

func (h *ReviewHandler) ListTutorReviewsHandler(c *gin.Context) {
	reviews, err := h.Reviews.ListReviews(c.Request.Context(), c.Param("tutorId"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	if reviews == nil {
		reviews = []models.Review{}
	}
	c.JSON(http.StatusOK, gin.H{"reviews": reviews})
}

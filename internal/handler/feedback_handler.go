package handler

import (
	"net/http"

	"cyber_portal/internal/model"
	"cyber_portal/internal/service"

	"github.com/gin-gonic/gin"
)

// FeedbackHandler handles the public feedback form and listing
type FeedbackHandler struct {
	service service.FeedbackService
}

func NewFeedbackHandler(s service.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{service: s}
}

func (h *FeedbackHandler) SubmitFeedback(c *gin.Context) {
	var req model.FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	feedback, err := h.service.Submit(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to save feedback")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Thank you for your valuable feedback!", "feedback": feedback})
}

func (h *FeedbackHandler) ListFeedback(c *gin.Context) {
	feedbacks, err := h.service.List(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to retrieve feedback")
		return
	}
	c.JSON(http.StatusOK, feedbacks)
}

func (h *FeedbackHandler) RegisterFeedbackRoutes(rg *gin.RouterGroup) {
	rg.POST("/feedback", h.SubmitFeedback)
	rg.GET("/feedback", h.ListFeedback)
}

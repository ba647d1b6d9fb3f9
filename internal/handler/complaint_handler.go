package handler

import (
	"fmt"
	"net/http"

	"cyber_portal/internal/middleware"
	"cyber_portal/internal/model"
	"cyber_portal/internal/service"

	"github.com/gin-gonic/gin"
)

// ComplaintHandler handles complaint filing, tracking and police triage
type ComplaintHandler struct {
	service service.ComplaintService
}

// NewComplaintHandler creates a new ComplaintHandler
func NewComplaintHandler(s service.ComplaintService) *ComplaintHandler {
	return &ComplaintHandler{service: s}
}

func (h *ComplaintHandler) CreateComplaint(c *gin.Context) {
	var req model.CreateComplaintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	complaint, err := h.service.FileComplaint(c.Request.Context(), middleware.CurrentUser(c), req)
	if err != nil {
		respondError(c, err, "Failed to submit complaint")
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":   fmt.Sprintf("Complaint submitted. Your Complaint ID: %s", complaint.ID),
		"id":        complaint.ID,
		"complaint": complaint,
	})
}

// GetComplaint is the public status check
func (h *ComplaintHandler) GetComplaint(c *gin.Context) {
	complaint, err := h.service.LookupComplaint(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve complaint")
		return
	}
	c.JSON(http.StatusOK, complaint)
}

// --- Police Routes ---

func (h *ComplaintHandler) ListComplaints(c *gin.Context) {
	complaints, err := h.service.ListComplaints(c.Request.Context(), middleware.CurrentUser(c))
	if err != nil {
		respondError(c, err, "Failed to retrieve complaints")
		return
	}
	c.JSON(http.StatusOK, complaints)
}

func (h *ComplaintHandler) Dashboard(c *gin.Context) {
	dashboard, err := h.service.Dashboard(c.Request.Context(), middleware.CurrentUser(c))
	if err != nil {
		respondError(c, err, "Failed to load dashboard")
		return
	}
	c.JSON(http.StatusOK, dashboard)
}

func (h *ComplaintHandler) UpdateStatus(c *gin.Context) {
	var req model.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	complaint, err := h.service.SetStatus(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"), req.Status)
	if err != nil {
		respondError(c, err, "Failed to update complaint status")
		return
	}
	c.JSON(http.StatusOK, complaint)
}

// RegisterComplaintRoutes registers complaint routes
func (h *ComplaintHandler) RegisterComplaintRoutes(rg *gin.RouterGroup, citizenMW gin.HandlerFunc, policeMW gin.HandlerFunc) {
	complaintRoutes := rg.Group("/complaints")
	{
		complaintRoutes.POST("", citizenMW, h.CreateComplaint)
		complaintRoutes.GET("/:id", h.GetComplaint) // public tracking
	}

	policeRoutes := rg.Group("/police")
	policeRoutes.Use(policeMW)
	{
		policeRoutes.GET("/dashboard", h.Dashboard)
		policeRoutes.GET("/complaints", h.ListComplaints)
		policeRoutes.PUT("/complaints/:id/status", h.UpdateStatus)
	}
}

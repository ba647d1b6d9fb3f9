package handler

import (
	"net/http"

	"cyber_portal/internal/service"

	"github.com/gin-gonic/gin"
)

type AlertHandler struct {
	service service.AlertService
}

func NewAlertHandler(s service.AlertService) *AlertHandler {
	return &AlertHandler{service: s}
}

func (h *AlertHandler) ListAlerts(c *gin.Context) {
	alerts, source := h.service.Load(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"alerts": alerts, "source": source})
}

func (h *AlertHandler) RegisterAlertRoutes(rg *gin.RouterGroup) {
	rg.GET("/alerts", h.ListAlerts)
}
